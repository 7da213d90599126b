package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iurnickita/creditorder/internal/model"
	"github.com/iurnickita/creditorder/internal/service/apiclient"
)

type ProductService interface {
	List(ctx context.Context, page, size int) (model.Page[model.Product], error)
	Get(ctx context.Context, id int64) (model.Product, error)
	Search(ctx context.Context, nome string, page, size int) (model.Page[model.Product], error)
	// нулевая граница не передаётся
	FilterByPrice(ctx context.Context, min, max decimal.NullDecimal, page, size int) (model.Page[model.Product], error)
	Create(ctx context.Context, product model.Product) (model.Product, error)
	Update(ctx context.Context, id int64, product model.Product) (model.Product, error)
	Delete(ctx context.Context, id int64) error
}

var ErrNonPositivePrice = errors.New("price must be positive")

type productService struct {
	api      apiclient.APIClient
	validate *validator.Validate
}

func productPath(id int64) string {
	return "/produtos/" + strconv.FormatInt(id, 10)
}

func (service *productService) List(ctx context.Context, page, size int) (model.Page[model.Product], error) {
	var out model.Page[model.Product]
	err := service.api.Send(ctx, http.MethodGet, "/produtos", pageQuery(page, size), nil, &out)
	return out, err
}

func (service *productService) Get(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, ErrInsufficientData
	}
	var out model.Product
	err := service.api.Send(ctx, http.MethodGet, productPath(id), nil, nil, &out)
	return out, err
}

func (service *productService) Search(ctx context.Context, nome string, page, size int) (model.Page[model.Product], error) {
	query := pageQuery(page, size)
	query["nome"] = nome
	var out model.Page[model.Product]
	err := service.api.Send(ctx, http.MethodGet, "/produtos/search", query, nil, &out)
	return out, err
}

func (service *productService) FilterByPrice(ctx context.Context, min, max decimal.NullDecimal, page, size int) (model.Page[model.Product], error) {
	query := pageQuery(page, size)
	if min.Valid {
		query["precoMin"] = min.Decimal.String()
	}
	if max.Valid {
		query["precoMax"] = max.Decimal.String()
	}
	var out model.Page[model.Product]
	err := service.api.Send(ctx, http.MethodGet, "/produtos/preco", query, nil, &out)
	return out, err
}

func (service *productService) Create(ctx context.Context, product model.Product) (model.Product, error) {
	if err := service.check(product); err != nil {
		return model.Product{}, err
	}
	var out model.Product
	err := service.api.Send(ctx, http.MethodPost, "/produtos", nil, product, &out)
	return out, err
}

func (service *productService) Update(ctx context.Context, id int64, product model.Product) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, ErrInsufficientData
	}
	if err := service.check(product); err != nil {
		return model.Product{}, err
	}
	var out model.Product
	err := service.api.Send(ctx, http.MethodPut, productPath(id), nil, product, &out)
	return out, err
}

func (service *productService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInsufficientData
	}
	return service.api.Send(ctx, http.MethodDelete, productPath(id), nil, nil, nil)
}

func (service *productService) check(product model.Product) error {
	if err := validatePayload(service.validate, product); err != nil {
		return err
	}
	if !product.Preco.IsPositive() {
		return errors.Join(ErrInvalidPayload, ErrNonPositivePrice)
	}
	return nil
}
