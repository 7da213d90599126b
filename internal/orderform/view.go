package orderform

import (
	"github.com/shopspring/decimal"

	"github.com/iurnickita/creditorder/internal/balance"
	"github.com/iurnickita/creditorder/internal/model"
)

type NetworkStatus string

const (
	NetworkOnline            NetworkStatus = "online"
	NetworkOffline           NetworkStatus = "offline"
	NetworkServerUnavailable NetworkStatus = "server_unavailable"
)

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
)

// View - снимок формы для отображения. Производные поля считаются при каждом вызове State.
type View struct {
	Phase     Phase            `json:"phase"`
	Network   NetworkStatus    `json:"network"`
	Retrying  bool             `json:"retrying"`
	Customers []model.Customer `json:"clientes"`
	Products  []model.Product  `json:"produtos"`

	Customer *model.Customer  `json:"cliente,omitempty"`
	Items    []LineItem       `json:"itens"`
	Credit   balance.Snapshot `json:"credito"`

	SelectedProduct int64 `json:"produtoSelecionado"`
	Quantity        int   `json:"quantidade"`

	Total            decimal.Decimal `json:"total"`
	Utilization      decimal.Decimal `json:"utilizacao"`
	UtilizationLevel model.Severity  `json:"nivelUtilizacao"`
	CreditCovers     bool            `json:"creditoSuficiente"`
	CanSubmit        bool            `json:"podeEnviar"`
	RetryAvailable   bool            `json:"podeTentarNovamente"`

	Submission SubmissionState `json:"envio"`
	LastOrder  *model.Order    `json:"ultimoPedido,omitempty"`
	Message    model.Message   `json:"mensagem"`
}

func (c *Controller) State() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	draft := c.draft.clone()
	total := draft.Total()

	view := View{
		Phase:           PhaseReady,
		Network:         NetworkOnline,
		Retrying:        c.retrying,
		Customers:       append([]model.Customer(nil), c.customers...),
		Products:        append([]model.Product(nil), c.products...),
		Customer:        draft.Customer,
		Items:           draft.Items,
		Credit:          c.credit,
		SelectedProduct: c.selectedProduct,
		Quantity:        c.quantity,
		Total:           total,
		Submission:      c.submission,
		Message:         c.message,
	}
	if !c.loaded {
		view.Phase = PhaseLoading
	}
	switch {
	case !c.online:
		view.Network = NetworkOffline
	case c.networkError:
		view.Network = NetworkServerUnavailable
	}

	if draft.Customer != nil {
		view.Utilization = c.credit.Utilization(draft.Customer.LimiteCredito, total)
		view.UtilizationLevel = balance.Level(view.Utilization)
		view.CreditCovers = c.credit.Covers(total)
	}
	view.CanSubmit = draft.Customer != nil &&
		len(draft.Items) > 0 &&
		c.submission != SubmissionSubmitting &&
		c.online
	view.RetryAvailable = c.loadFailed

	if c.lastOrder != nil {
		order := *c.lastOrder
		view.LastOrder = &order
	}
	return view
}
