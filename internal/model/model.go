package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Справочники

type Customer struct {
	ID              int64               `json:"id"`
	Nome            string              `json:"nome" validate:"required"`
	LimiteCredito   decimal.Decimal     `json:"limiteCredito"`
	ValorUtilizado  decimal.NullDecimal `json:"valorUtilizado"`
	SaldoDisponivel decimal.NullDecimal `json:"saldoDisponivel"`
	TotalPedidos    *int                `json:"totalPedidos,omitempty"`
}

type Product struct {
	ID    int64           `json:"id"`
	Nome  string          `json:"nome" validate:"required"`
	Preco decimal.Decimal `json:"preco"`
}

// JSON ответ GET /clientes/{id}/credito
type CreditInfo struct {
	ClienteID       int64           `json:"clienteId"`
	ClienteNome     string          `json:"clienteNome"`
	LimiteCredito   decimal.Decimal `json:"limiteCredito"`
	ValorUtilizado  decimal.Decimal `json:"valorUtilizado"`
	SaldoDisponivel decimal.Decimal `json:"saldoDisponivel"`
}

// Заказы

type OrderRequest struct {
	ClienteID int64              `json:"clienteId" validate:"required,gt=0"`
	Itens     []OrderItemRequest `json:"itens" validate:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProdutoID  int64 `json:"produtoId" validate:"required,gt=0"`
	Quantidade int   `json:"quantidade" validate:"required,gt=0"`
}

const (
	OrderStatusApproved = "APROVADO"
	OrderStatusRejected = "REJEITADO"
	OrderStatusPending  = "PENDENTE"
)

// Order - ответ POST /pedidos и GET /pedidos/{id}.
// Поля кредита заполняются только при создании.
type Order struct {
	ID               int64               `json:"id"`
	ClienteID        int64               `json:"clienteId"`
	ClienteNome      string              `json:"clienteNome"`
	DataPedido       Timestamp           `json:"dataPedido"`
	Status           string              `json:"status"`
	ValorTotal       decimal.Decimal     `json:"valorTotal"`
	Itens            []OrderItem         `json:"itens"`
	LimiteCredito    decimal.Decimal     `json:"limiteCredito"`
	ValorUtilizado   decimal.NullDecimal `json:"valorUtilizado"`
	ValorJaUtilizado decimal.NullDecimal `json:"valorJaUtilizado"`
	SaldoDisponivel  decimal.Decimal     `json:"saldoDisponivel"`
}

// UsedAmount returns the used credit under either of the names the backend emits.
func (o Order) UsedAmount() decimal.Decimal {
	if o.ValorUtilizado.Valid {
		return o.ValorUtilizado.Decimal
	}
	return o.ValorJaUtilizado.Decimal
}

type OrderItem struct {
	ID            int64           `json:"id,omitempty"`
	PedidoID      int64           `json:"pedidoId,omitempty"`
	ProdutoID     int64           `json:"produtoId"`
	ProdutoNome   string          `json:"produtoNome,omitempty"`
	Quantidade    int             `json:"quantidade"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PrecoUnitario decimal.Decimal `json:"precoUnitario"`
}

// Timestamp reads both "2006-01-02 15:04:05" and RFC 3339 dates.
type Timestamp struct {
	time.Time
}

const timestampLayout = "2006-01-02 15:04:05"

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{timestampLayout, "2006-01-02T15:04:05", time.RFC3339Nano} {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported date format: %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(timestampLayout))
}

// Page - страница Spring Data либо простой массив.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*p = Page[T]{Content: items, TotalElements: int64(len(items)), TotalPages: 1, Size: len(items)}
		return nil
	}
	var raw pageJSON[T]
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	*p = Page[T](raw)
	return nil
}

// pageJSON has Page's layout without its UnmarshalJSON.
type pageJSON[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// Уведомления

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Notification struct {
	Severity Severity      `json:"severity"`
	Text     string        `json:"text"`
	Duration time.Duration `json:"duration"`
}

// Message - постоянное сообщение формы (в отличие от уведомления).
type Message struct {
	Type Severity `json:"type"`
	Text string   `json:"text"`
}

func (m Message) Empty() bool {
	return strings.TrimSpace(m.Text) == ""
}

// Журнал отправленных заказов

type Submission struct {
	OrderID         int64
	CustomerID      int64
	CustomerName    string
	Status          string
	OrderTotal      decimal.Decimal
	CreditLimit     decimal.Decimal
	UsedAmount      decimal.Decimal
	AvailableAmount decimal.Decimal
	SettledAt       time.Time
}
