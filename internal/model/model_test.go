package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPageUnmarshal(t *testing.T) {
	var page Page[Product]
	err := json.Unmarshal([]byte(`{"content":[{"id":1,"nome":"Arroz","preco":"10.50"}],"totalElements":31,"totalPages":2,"number":1,"size":20}`), &page)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	require.EqualValues(t, 31, page.TotalElements)
	require.Equal(t, 1, page.Number)
	require.Equal(t, "10.5", page.Content[0].Preco.String())

	// backend без пагинации отдаёт массив
	err = json.Unmarshal([]byte(`[{"id":1,"nome":"Arroz","preco":10},{"id":2,"nome":"Feijão","preco":7.5}]`), &page)
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	require.EqualValues(t, 2, page.TotalElements)
	require.Equal(t, 1, page.TotalPages)
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: `"2025-03-01 14:30:00"`, want: time.Date(2025, 3, 1, 14, 30, 0, 0, time.Local)},
		{in: `"2025-03-01T14:30:00"`, want: time.Date(2025, 3, 1, 14, 30, 0, 0, time.Local)},
		{in: `"2025-03-01T14:30:00Z"`, want: time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC)},
		{in: `null`},
		{in: `""`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &ts))
			require.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}

	var ts Timestamp
	require.Error(t, json.Unmarshal([]byte(`"01/03/2025"`), &ts))

	out, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	require.Equal(t, "null", string(out))
}

func TestOrderUsedAmount(t *testing.T) {
	var order Order
	require.NoError(t, json.Unmarshal([]byte(`{"status":"REJEITADO","valorJaUtilizado":"200.00"}`), &order))
	require.Equal(t, "200", order.UsedAmount().String())

	require.NoError(t, json.Unmarshal([]byte(`{"status":"APROVADO","valorUtilizado":230}`), &order))
	require.Equal(t, "230", order.UsedAmount().String())
}

func TestMessageEmpty(t *testing.T) {
	require.True(t, Message{}.Empty())
	require.True(t, Message{Text: "  "}.Empty())
	require.False(t, Message{Text: "ok"}.Empty())
}
