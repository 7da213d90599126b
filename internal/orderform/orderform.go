// Package orderform holds the order-entry workflow: the draft order, the
// customer's credit snapshot, and the load/select/add/remove/submit
// operations against the backend.
//
// A Controller is safe for concurrent use. Its mutex is never held across a
// backend call. Load and credit fetches carry a sequence number, and a
// response that a newer request has superseded is dropped.
package orderform

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iurnickita/creditorder/internal/balance"
	"github.com/iurnickita/creditorder/internal/model"
	"github.com/iurnickita/creditorder/internal/service"
)

var (
	ErrNoCustomer       = errors.New("no customer selected")
	ErrNoItems          = errors.New("order has no items")
	ErrInvalidSelection = errors.New("product or quantity not valid")
	ErrUnknownCustomer  = errors.New("unknown customer")
	ErrUnknownProduct   = errors.New("unknown product")
	ErrSubmitting       = errors.New("order submission in progress")
	ErrStale            = errors.New("superseded by a newer request")
)

// Длительность уведомлений
const (
	durationDefault     = 6 * time.Second
	durationLoaded      = 4 * time.Second
	durationLoadError   = 10 * time.Second
	durationReloadError = 8 * time.Second
	durationOutcome     = 8 * time.Second
	durationSubmitError = 12 * time.Second
	durationSubmitting  = 3 * time.Second
	durationOnline      = 3 * time.Second
	durationOffline     = 5 * time.Second
)

// Notifier получает уведомления формы. Вызывается после снятия блокировки
// контроллера, поэтому может обращаться к State.
type Notifier interface {
	Notify(n model.Notification)
}

type NotifierFunc func(n model.Notification)

func (f NotifierFunc) Notify(n model.Notification) { f(n) }

// Journal записывает завершённые отправки заказов.
type Journal interface {
	SubmissionPost(ctx context.Context, submission model.Submission) error
}

type Controller struct {
	svc      *service.Service
	journal  Journal
	notifier Notifier
	zaplog   *zap.Logger
	now      func() time.Time

	mu sync.Mutex

	// справочники
	customers []model.Customer
	products  []model.Product
	loaded    bool
	retrying  bool
	loadSeq   uint64

	// сеть
	online       bool
	networkError bool

	// черновик и кредит
	draft     Draft
	credit    balance.Snapshot
	creditSeq uint64

	// поля выбора продукта
	selectedProduct int64
	quantity        int

	submission SubmissionState
	lastOrder  *model.Order
	message    model.Message

	// загрузка справочников не удалась; сбрасывает только успешная загрузка
	loadFailed bool

	// уведомления, накопленные под c.mu
	pending []model.Notification
}

// NewController; journal и notifier могут быть nil.
func NewController(svc *service.Service, journal Journal, notifier Notifier, zaplog *zap.Logger) *Controller {
	if notifier == nil {
		notifier = NotifierFunc(func(model.Notification) {})
	}
	if zaplog == nil {
		zaplog = zap.NewNop()
	}
	return &Controller{
		svc:        svc,
		journal:    journal,
		notifier:   notifier,
		zaplog:     zaplog,
		now:        time.Now,
		online:     true,
		quantity:   1,
		submission: SubmissionIdle,
	}
}

// unlock снимает c.mu и отправляет накопленные уведомления.
func (c *Controller) unlock() {
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()
	for _, n := range pending {
		c.notifier.Notify(n)
	}
}

// setMessage и notify вызываются под c.mu.
func (c *Controller) setMessage(severity model.Severity, text string) {
	c.message = model.Message{Type: severity, Text: text}
}

func (c *Controller) notify(severity model.Severity, text string, d time.Duration) {
	if d == 0 {
		d = durationDefault
	}
	c.pending = append(c.pending, model.Notification{Severity: severity, Text: text, Duration: d})
}

// SetOnline применяет внешнее событие о появлении или потере сети.
func (c *Controller) SetOnline(online bool) {
	c.mu.Lock()
	defer c.unlock()

	c.online = online
	if online {
		c.networkError = false
		c.notify(model.SeveritySuccess, "Conexão restaurada!", durationOnline)
		return
	}
	c.networkError = true
	c.notify(model.SeverityWarning, "Conexão perdida. Verificando...", durationOffline)
}

// DismissMessage закрывает постоянное сообщение формы.
func (c *Controller) DismissMessage() {
	c.mu.Lock()
	defer c.unlock()
	c.message = model.Message{}
}

func (c *Controller) findCustomer(id int64) (model.Customer, bool) {
	for _, customer := range c.customers {
		if customer.ID == id {
			return customer, true
		}
	}
	return model.Customer{}, false
}

func (c *Controller) findProduct(id int64) (model.Product, bool) {
	for _, product := range c.products {
		if product.ID == id {
			return product, true
		}
	}
	return model.Product{}, false
}

// recompute вызывается под c.mu после каждого изменения строк.
func (c *Controller) recompute() {
	if c.draft.Customer == nil {
		return
	}
	c.credit = c.credit.Recompute(c.draft.Customer.LimiteCredito)
}

// resetDraft очищает черновик, выбор клиента и снимок кредита.
func (c *Controller) resetDraft() {
	c.draft = Draft{}
	c.credit = balance.Snapshot{}
	c.creditSeq++
	c.selectedProduct = 0
	c.quantity = 1
}
