// Package format converts amounts, dates and statuses to the Brazilian
// display format of the order form and back.
package format

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iurnickita/creditorder/internal/model"
)

const (
	currencySymbol = "R$"
	decimalSep     = ","
	groupSep       = "."

	DateTimeLayout = "02/01/2006 15:04"
	DateLayout     = "02/01/2006"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency: 1234.5 -> "R$ 1.234,50".
func FormatCurrency(value decimal.Decimal) string {
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Neg()
	}
	fixed := value.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + currencySymbol + " " + group(intPart) + decimalSep + frac
}

// FormatNullCurrency - отсутствующее значение форматируется как ноль.
func FormatNullCurrency(value decimal.NullDecimal) string {
	if !value.Valid {
		return FormatCurrency(decimal.Zero)
	}
	return FormatCurrency(value.Decimal)
}

// FormatAmount - число без символа валюты: 1234.5 -> "1.234,50".
func FormatAmount(value decimal.Decimal) string {
	s := FormatCurrency(value)
	s = strings.Replace(s, currencySymbol+" ", "", 1)
	return s
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(groupSep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseCurrency обратна FormatCurrency: "R$ 1.234,50" -> 1234.5.
// Пустая строка даёт ноль.
func ParseCurrency(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimSpace(strings.Replace(s, currencySymbol, "", 1))
	// "R$ -1,00"
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	s = strings.ReplaceAll(s, groupSep, "")
	s = strings.Replace(s, decimalSep, ".", 1)
	s = strings.TrimSpace(s)

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		value = value.Neg()
	}
	return value, nil
}

// FormatPercent: 12.345 -> "12,3%".
func FormatPercent(value decimal.Decimal) string {
	return strings.Replace(value.StringFixed(1), ".", decimalSep, 1) + "%"
}

// Ratio выражает долю в процентах.
func Ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		whole = decimal.NewFromInt(1)
	}
	return part.Div(whole).Mul(hundred)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}

func FormatDateOnly(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

var statusLabels = map[string]string{
	model.OrderStatusApproved: "Aprovado",
	model.OrderStatusRejected: "Rejeitado",
	model.OrderStatusPending:  "Pendente",
}

// FormatOrderStatus: неизвестный статус возвращается как есть.
func FormatOrderStatus(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

var statusColors = map[string]model.Severity{
	model.OrderStatusApproved: model.SeveritySuccess,
	model.OrderStatusRejected: model.SeverityError,
	model.OrderStatusPending:  model.SeverityWarning,
}

// StatusColor returns the severity used to paint a status, or "default".
func StatusColor(status string) string {
	if color, ok := statusColors[status]; ok {
		return string(color)
	}
	return "default"
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidCPF проверяет только количество цифр.
func IsValidCPF(cpf string) bool {
	digits := 0
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits == 11
}
