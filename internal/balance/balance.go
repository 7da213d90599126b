package balance

import (
	"github.com/shopspring/decimal"

	"github.com/iurnickita/creditorder/internal/model"
)

// Пороги индикатора использования кредита, в процентах.
var (
	warningThreshold = decimal.NewFromInt(80)
	errorThreshold   = decimal.NewFromInt(95)
	hundred          = decimal.NewFromInt(100)
)

// Snapshot - использованный и доступный кредит клиента, как их последний раз подтвердил backend.
// Сумма текущего черновика сюда не входит.
type Snapshot struct {
	CustomerID int64           `json:"clienteId"`
	Used       decimal.Decimal `json:"valorUtilizado"`
	Available  decimal.Decimal `json:"saldoDisponivel"`
	Loading    bool            `json:"loading"`
	// значения получены от backend, а не приближены по лимиту
	Confirmed bool `json:"confirmed"`
}

// Pending начинает загрузку для клиента. Значения предыдущего клиента не переносятся.
func Pending(customerID int64, prev Snapshot) Snapshot {
	if prev.CustomerID == customerID {
		prev.Loading = true
		return prev
	}
	return Snapshot{CustomerID: customerID, Loading: true}
}

// Degraded - приближение без сети: ничего не использовано, доступен весь лимит.
func Degraded(customer model.Customer) Snapshot {
	return Snapshot{
		CustomerID: customer.ID,
		Used:       decimal.Zero,
		Available:  customer.LimiteCredito,
	}
}

func (s Snapshot) Loaded(info model.CreditInfo) Snapshot {
	return Snapshot{
		CustomerID: s.CustomerID,
		Used:       info.ValorUtilizado,
		Available:  info.SaldoDisponivel,
		Confirmed:  true,
	}
}

// Failed снимает флаг загрузки, значения не меняются.
func (s Snapshot) Failed() Snapshot {
	s.Loading = false
	return s
}

// Recompute пересчитывает доступный остаток как лимит минус использованное.
// Во время загрузки снимок не трогается.
func (s Snapshot) Recompute(limit decimal.Decimal) Snapshot {
	if s.Loading {
		return s
	}
	s.Available = limit.Sub(s.Used)
	return s
}

// Utilization - (использовано + черновик) / лимит в процентах; нулевой лимит считается единицей.
func (s Snapshot) Utilization(limit, draftTotal decimal.Decimal) decimal.Decimal {
	if limit.IsZero() {
		limit = decimal.NewFromInt(1)
	}
	return s.Used.Add(draftTotal).Div(limit).Mul(hundred)
}

// Covers сообщает, хватает ли доступного остатка на сумму черновика.
func (s Snapshot) Covers(draftTotal decimal.Decimal) bool {
	return s.Available.GreaterThanOrEqual(draftTotal)
}

func Level(utilization decimal.Decimal) model.Severity {
	switch {
	case utilization.LessThanOrEqual(warningThreshold):
		return model.SeveritySuccess
	case utilization.LessThanOrEqual(errorThreshold):
		return model.SeverityWarning
	default:
		return model.SeverityError
	}
}
