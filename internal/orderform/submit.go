package orderform

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iurnickita/creditorder/internal/model"
)

type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionApproved   SubmissionState = "approved"
	SubmissionRejected   SubmissionState = "rejected"
	SubmissionOther      SubmissionState = "other"
	SubmissionFailed     SubmissionState = "failed"
)

// Submit отправляет черновик на проверку кредита.
// Одобрение, отказ и любой другой статус - успешный ответ API: черновик сбрасывается.
// При сбое транспорта или сервера черновик остаётся для повторной отправки.
func (c *Controller) Submit(ctx context.Context) (model.Order, error) {
	c.mu.Lock()

	if c.draft.Customer == nil {
		c.rejectLocally("Selecione um cliente!")
		c.unlock()
		return model.Order{}, ErrNoCustomer
	}
	if len(c.draft.Items) == 0 {
		c.rejectLocally("Adicione pelo menos um produto ao pedido!")
		c.unlock()
		return model.Order{}, ErrNoItems
	}
	if c.submission == SubmissionSubmitting {
		c.unlock()
		return model.Order{}, ErrSubmitting
	}

	c.submission = SubmissionSubmitting
	c.setMessage(model.SeverityInfo, "Criando pedido...")
	c.notify(model.SeverityInfo, "Processando pedido... Aguarde!", durationSubmitting)

	customer := *c.draft.Customer
	total := c.draft.Total()
	req := c.draft.request()
	c.unlock()

	order, err := c.svc.Orders.Create(ctx, req)

	c.mu.Lock()
	if err != nil {
		c.zaplog.Error("error creating order", zap.Int64("customer", customer.ID), zap.Error(err))
		c.submission = SubmissionFailed
		text, severity := submitErrorText(err, c.online)
		c.setMessage(model.SeverityError, text)
		c.notify(severity, text, durationSubmitError)
		c.unlock()
		return model.Order{}, err
	}

	text, severity, state := outcomeText(order, customer.Nome, total)
	c.resetDraft()
	c.submission = state
	c.lastOrder = &order
	if state == SubmissionApproved {
		c.setMessage(model.SeveritySuccess, text)
	} else {
		c.setMessage(model.SeverityError, text)
	}
	c.notify(severity, text, durationOutcome)
	c.unlock()

	c.record(ctx, order, customer, total)
	return order, nil
}

func (c *Controller) rejectLocally(text string) {
	c.setMessage(model.SeverityError, text)
	c.notify(model.SeverityWarning, text, 0)
}

func (c *Controller) record(ctx context.Context, order model.Order, customer model.Customer, total decimal.Decimal) {
	if c.journal == nil {
		return
	}
	orderTotal := order.ValorTotal
	if orderTotal.IsZero() {
		orderTotal = total
	}
	submission := model.Submission{
		OrderID:         order.ID,
		CustomerID:      customer.ID,
		CustomerName:    customer.Nome,
		Status:          order.Status,
		OrderTotal:      orderTotal,
		CreditLimit:     order.LimiteCredito,
		UsedAmount:      order.UsedAmount(),
		AvailableAmount: order.SaldoDisponivel,
		SettledAt:       c.now(),
	}
	if err := c.journal.SubmissionPost(ctx, submission); err != nil {
		c.zaplog.Error("error writing submission journal", zap.Int64("order", order.ID), zap.Error(err))
	}
}

// Суммы в сообщениях о результате - с точкой и двумя знаками.
func money(d decimal.Decimal) string {
	return "R$ " + d.StringFixed(2)
}

func orderNumber(id int64) string {
	if id == 0 {
		return "N/A"
	}
	return strconv.FormatInt(id, 10)
}

// Shortfall - на сколько сумма заказа превышает доступный остаток.
func Shortfall(order model.Order) decimal.Decimal {
	return order.ValorTotal.Sub(order.SaldoDisponivel)
}

func outcomeText(order model.Order, customerName string, localTotal decimal.Decimal) (string, model.Severity, SubmissionState) {
	switch order.Status {
	case model.OrderStatusApproved:
		return fmt.Sprintf("Pedido APROVADO com sucesso!\n\n"+
			"Cliente: %s\n"+
			"Limite de crédito: %s\n"+
			"Valor utilizado: %s\n"+
			"Saldo restante: %s\n"+
			"Valor do pedido: %s\n"+
			"ID do Pedido: #%s",
			customerName,
			money(order.LimiteCredito),
			money(order.UsedAmount()),
			money(order.SaldoDisponivel),
			money(order.ValorTotal),
			orderNumber(order.ID),
		), model.SeveritySuccess, SubmissionApproved
	case model.OrderStatusRejected:
		return fmt.Sprintf("Pedido REJEITADO por limite de crédito insuficiente!\n\n"+
			"Cliente: %s\n"+
			"Limite de crédito: %s\n"+
			"Valor já utilizado: %s\n"+
			"Saldo disponível: %s\n"+
			"Valor do pedido: %s\n\n"+
			"Você precisa de %s a mais de crédito disponível.",
			customerName,
			money(order.LimiteCredito),
			money(order.UsedAmount()),
			money(order.SaldoDisponivel),
			money(order.ValorTotal),
			money(Shortfall(order)),
		), model.SeverityError, SubmissionRejected
	default:
		return fmt.Sprintf("Pedido criado com status: %s\n"+
			"Cliente: %s\n"+
			"Total: %s",
			order.Status,
			customerName,
			money(localTotal),
		), model.SeverityInfo, SubmissionOther
	}
}
