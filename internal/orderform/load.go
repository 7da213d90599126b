package orderform

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iurnickita/creditorder/internal/model"
)

// Load загружает клиентов и продукты параллельно. Частичный успех считается ошибкой:
// списки остаются пустыми.
func (c *Controller) Load(ctx context.Context) error {
	return c.load(ctx, false)
}

// Reload - повторная загрузка по запросу оператора.
func (c *Controller) Reload(ctx context.Context) error {
	return c.load(ctx, true)
}

func (c *Controller) load(ctx context.Context, retry bool) error {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.networkError = false
	if retry {
		c.retrying = true
		c.message = model.Message{}
	}
	listSize := c.svc.ListSize
	c.unlock()

	var customers []model.Customer
	var products []model.Product

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		customers, err = listAll(gctx, listSize, c.svc.Customers.List)
		return err
	})
	g.Go(func() (err error) {
		products, err = listAll(gctx, listSize, c.svc.Products.List)
		return err
	})
	err := g.Wait()

	c.mu.Lock()
	defer c.unlock()

	if seq != c.loadSeq {
		c.zaplog.Debug("discarding superseded reference data load", zap.Uint64("seq", seq))
		return ErrStale
	}
	c.retrying = false
	c.loaded = true

	if err != nil {
		c.zaplog.Error("error loading reference data", zap.Bool("retry", retry), zap.Error(err))
		c.customers = nil
		c.products = nil
		c.networkError = true
		c.loadFailed = true
		if retry {
			text := reloadErrorText(err, c.online)
			c.setMessage(model.SeverityError, text)
			c.notify(model.SeverityError, text, durationReloadError)
		} else {
			text := loadErrorText(err, c.online)
			c.setMessage(model.SeverityError, text)
			c.notify(model.SeverityError, text, durationLoadError)
		}
		return err
	}

	c.customers = customers
	c.products = products
	c.loadFailed = false
	if retry {
		c.setMessage(model.SeveritySuccess, "Dados recarregados com sucesso!")
		c.notify(model.SeveritySuccess, "Conexão restaurada! Dados carregados com sucesso.", durationLoaded)
	} else {
		c.setMessage(model.SeveritySuccess, "Dados carregados com sucesso!")
		c.notify(model.SeveritySuccess, "Dados de clientes e produtos carregados com sucesso!", durationLoaded)
	}
	return nil
}

// ErrTooManyPages - справочник не уместился в maxPages страниц.
var ErrTooManyPages = errors.New("reference list exceeds page limit")

const maxPages = 100

type listFunc[T any] func(ctx context.Context, page, size int) (model.Page[T], error)

// listAll читает справочник целиком, следуя TotalPages ответа.
func listAll[T any](ctx context.Context, size int, list listFunc[T]) ([]T, error) {
	var items []T
	for page := 0; ; page++ {
		if page == maxPages {
			return nil, ErrTooManyPages
		}
		resp, err := list(ctx, page, size)
		if err != nil {
			return nil, err
		}
		items = append(items, resp.Content...)
		if len(resp.Content) == 0 || page+1 >= resp.TotalPages {
			return items, nil
		}
	}
}
