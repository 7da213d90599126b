package orderform

import (
	"github.com/shopspring/decimal"

	"github.com/iurnickita/creditorder/internal/model"
)

// LineItem - строка черновика: один продукт и его количество.
type LineItem struct {
	Product    model.Product   `json:"produto"`
	Quantidade int             `json:"quantidade"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// Draft - неотправленный заказ. Итог не хранится, а всегда считается по строкам.
type Draft struct {
	Customer *model.Customer
	Items    []LineItem
}

func (d Draft) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range d.Items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// add увеличивает количество существующей строки или добавляет новую в конец.
func (d *Draft) add(product model.Product, quantity int) (LineItem, bool) {
	for i := range d.Items {
		if d.Items[i].Product.ID == product.ID {
			d.Items[i].Quantidade += quantity
			d.Items[i].Subtotal = product.Preco.Mul(decimal.NewFromInt(int64(d.Items[i].Quantidade)))
			return d.Items[i], true
		}
	}
	item := LineItem{
		Product:    product,
		Quantidade: quantity,
		Subtotal:   product.Preco.Mul(decimal.NewFromInt(int64(quantity))),
	}
	d.Items = append(d.Items, item)
	return item, false
}

func (d *Draft) remove(productID int64) bool {
	for i := range d.Items {
		if d.Items[i].Product.ID == productID {
			d.Items = append(d.Items[:i:i], d.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (d Draft) request() model.OrderRequest {
	req := model.OrderRequest{ClienteID: d.Customer.ID}
	for _, item := range d.Items {
		req.Itens = append(req.Itens, model.OrderItemRequest{
			ProdutoID:  item.Product.ID,
			Quantidade: item.Quantidade,
		})
	}
	return req
}

func (d Draft) clone() Draft {
	out := Draft{Items: append([]LineItem(nil), d.Items...)}
	if d.Customer != nil {
		customer := *d.Customer
		out.Customer = &customer
	}
	return out
}
