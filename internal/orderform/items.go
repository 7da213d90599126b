package orderform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iurnickita/creditorder/internal/model"
)

// SelectProduct заполняет поле выбора продукта; 0 очищает его.
func (c *Controller) SelectProduct(id int64) error {
	c.mu.Lock()
	defer c.unlock()

	if id != 0 {
		if _, ok := c.findProduct(id); !ok {
			return ErrUnknownProduct
		}
	}
	c.selectedProduct = id
	return nil
}

func (c *Controller) SetQuantity(quantity int) {
	c.mu.Lock()
	defer c.unlock()
	c.quantity = quantity
}

// AddProduct добавляет в черновик выбранный продукт с выбранным количеством.
func (c *Controller) AddProduct() (LineItem, error) {
	c.mu.Lock()
	defer c.unlock()
	return c.addSelected()
}

// Add - выбор продукта, количества и добавление одним действием.
func (c *Controller) Add(productID int64, quantity int) (LineItem, error) {
	c.mu.Lock()
	defer c.unlock()
	c.selectedProduct = productID
	c.quantity = quantity
	return c.addSelected()
}

func (c *Controller) addSelected() (LineItem, error) {
	product, ok := c.findProduct(c.selectedProduct)
	if c.selectedProduct == 0 || !ok || c.quantity <= 0 {
		const text = "Selecione um produto e quantidade válida!"
		c.setMessage(model.SeverityError, text)
		c.notify(model.SeverityWarning, text, 0)
		return LineItem{}, ErrInvalidSelection
	}

	item, merged := c.draft.add(product, c.quantity)
	if merged {
		c.notify(model.SeverityInfo, fmt.Sprintf("Quantidade do produto %s atualizada!", product.Nome), 0)
	} else {
		c.notify(model.SeveritySuccess, fmt.Sprintf("Produto %s adicionado ao pedido!", product.Nome), 0)
	}

	c.selectedProduct = 0
	c.quantity = 1
	c.setMessage(model.SeveritySuccess, "Produto adicionado ao pedido!")
	c.recompute()
	return item, nil
}

// RemoveProduct удаляет строку продукта; отсутствующий продукт - не ошибка.
func (c *Controller) RemoveProduct(productID int64) bool {
	c.mu.Lock()
	defer c.unlock()

	name := "desconhecido"
	if product, ok := c.findProduct(productID); ok {
		name = product.Nome
	}

	removed := c.draft.remove(productID)
	if removed {
		c.recompute()
	}
	c.setMessage(model.SeverityInfo, "Produto removido do pedido!")
	c.notify(model.SeverityInfo, fmt.Sprintf("Produto %s removido do pedido!", name), 0)
	return removed
}

// Total - сумма подытогов строк черновика на текущий момент.
func (c *Controller) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.unlock()
	return c.draft.Total()
}
