package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.5", "R$ 1.234,50"},
		{"0", "R$ 0,00"},
		{"7.999", "R$ 8,00"},
		{"999.99", "R$ 999,99"},
		{"1000", "R$ 1.000,00"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"-1", "-R$ 1,00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatNullCurrency(t *testing.T) {
	assert.Equal(t, "R$ 0,00", FormatNullCurrency(decimal.NullDecimal{}))
	assert.Equal(t, "R$ 12,00", FormatNullCurrency(decimal.NewNullDecimal(decimal.NewFromInt(12))))
	assert.Equal(t, "1.234,50", FormatAmount(decimal.RequireFromString("1234.5")))
}

func TestParseCurrency(t *testing.T) {
	v, err := ParseCurrency("R$ 1.234,50")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1234.5").Equal(v))

	v, err = ParseCurrency("R$ 1.234.567,89")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1234567.89").Equal(v))

	v, err = ParseCurrency("-R$ 1,00")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-1).Equal(v))

	v, err = ParseCurrency("")
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	_, err = ParseCurrency("R$ abc")
	require.Error(t, err)
}

func TestCurrencyRoundTrip(t *testing.T) {
	for _, s := range []string{"0.01", "10", "1234.5", "98765432.10", "-45.6"} {
		value := decimal.RequireFromString(s)
		parsed, err := ParseCurrency(FormatCurrency(value))
		require.NoError(t, err)
		assert.True(t, value.Equal(parsed), s)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "23,0%", FormatPercent(Ratio(decimal.NewFromInt(230), decimal.NewFromInt(1000))))
	// нулевой лимит считается единицей
	assert.Equal(t, "500,0%", FormatPercent(Ratio(decimal.NewFromInt(5), decimal.Zero)))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, 10, 16, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "16/10/2026 09:05", FormatDate(ts))
	assert.Equal(t, "16/10/2026", FormatDateOnly(ts))
	assert.Equal(t, "", FormatDate(time.Time{}))
	assert.Equal(t, "", FormatDateOnly(time.Time{}))
}

func TestFormatOrderStatus(t *testing.T) {
	assert.Equal(t, "Aprovado", FormatOrderStatus("APROVADO"))
	assert.Equal(t, "Rejeitado", FormatOrderStatus("REJEITADO"))
	assert.Equal(t, "Pendente", FormatOrderStatus("PENDENTE"))
	assert.Equal(t, "EM_ANALISE", FormatOrderStatus("EM_ANALISE"))

	assert.Equal(t, "success", StatusColor("APROVADO"))
	assert.Equal(t, "error", StatusColor("REJEITADO"))
	assert.Equal(t, "warning", StatusColor("PENDENTE"))
	assert.Equal(t, "default", StatusColor("EM_ANALISE"))
}

func TestValidators(t *testing.T) {
	assert.True(t, IsValidEmail("compras@mercadosol.com.br"))
	assert.False(t, IsValidEmail("compras@mercadosol"))
	assert.True(t, IsValidCPF("123.456.789-09"))
	assert.False(t, IsValidCPF("123.456.789"))
}
