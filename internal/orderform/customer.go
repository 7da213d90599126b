package orderform

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/iurnickita/creditorder/internal/balance"
)

// SelectCustomer выбирает клиента; id 0 снимает выбор.
// Смена клиента очищает строки черновика, чтобы не смешивать кредит разных клиентов.
func (c *Controller) SelectCustomer(ctx context.Context, id int64) error {
	c.mu.Lock()

	if id == 0 {
		c.resetDraft()
		c.unlock()
		return nil
	}

	customer, ok := c.findCustomer(id)
	if !ok {
		c.unlock()
		return ErrUnknownCustomer
	}

	if c.draft.Customer == nil || c.draft.Customer.ID != id {
		c.draft.Items = nil
	}
	c.draft.Customer = &customer

	if !c.online || c.networkError {
		// без сети - приближение по лимиту, не подтверждённое backend
		c.creditSeq++
		c.credit = balance.Degraded(customer)
		c.unlock()
		return nil
	}
	c.unlock()

	return c.FetchCredit(ctx, id)
}

// FetchCredit запрашивает использованный и доступный кредит выбранного клиента.
// Ошибка запроса только логируется: снимок остаётся прежним, флаг загрузки снимается.
func (c *Controller) FetchCredit(ctx context.Context, id int64) error {
	c.mu.Lock()
	if c.draft.Customer == nil || c.draft.Customer.ID != id {
		c.unlock()
		return ErrUnknownCustomer
	}
	c.creditSeq++
	seq := c.creditSeq
	c.credit = balance.Pending(id, c.credit)
	c.unlock()

	info, err := c.svc.Customers.Credit(ctx, id)

	c.mu.Lock()
	defer c.unlock()

	// пока шёл запрос, клиента сменили или запросили заново
	if seq != c.creditSeq || c.draft.Customer == nil || c.draft.Customer.ID != id {
		c.zaplog.Debug("discarding stale credit usage", zap.Int64("customer", id), zap.Uint64("seq", seq))
		return ErrStale
	}

	if err != nil {
		c.zaplog.Error("error fetching credit usage", zap.Int64("customer", id), zap.Error(err))
		c.credit = c.credit.Failed()
		return nil
	}

	c.credit = c.credit.Loaded(info)
	c.draft.Customer.ValorUtilizado = decimal.NewNullDecimal(info.ValorUtilizado)
	c.draft.Customer.SaldoDisponivel = decimal.NewNullDecimal(info.SaldoDisponivel)
	return nil
}
