package handler

import (
	"sync"

	"github.com/iurnickita/creditorder/internal/model"
)

const defaultNotificationLimit = 100

// Notifications - буфер уведомлений формы до следующего опроса.
// При переполнении отбрасываются самые старые.
type Notifications struct {
	mu    sync.Mutex
	items []model.Notification
	limit int
}

func NewNotifications(limit int) *Notifications {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	return &Notifications{limit: limit}
}

func (n *Notifications) Notify(notification model.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, notification)
	if over := len(n.items) - n.limit; over > 0 {
		n.items = append(n.items[:0:0], n.items[over:]...)
	}
}

// Drain возвращает накопленные уведомления и очищает буфер.
func (n *Notifications) Drain() []model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	items := n.items
	n.items = nil
	return items
}
