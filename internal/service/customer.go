package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/iurnickita/creditorder/internal/model"
	"github.com/iurnickita/creditorder/internal/service/apiclient"
)

type CustomerService interface {
	List(ctx context.Context, page, size int) (model.Page[model.Customer], error)
	Get(ctx context.Context, id int64) (model.Customer, error)
	Search(ctx context.Context, nome string, page, size int) (model.Page[model.Customer], error)
	Credit(ctx context.Context, id int64) (model.CreditInfo, error)
	Create(ctx context.Context, customer model.Customer) (model.Customer, error)
	Update(ctx context.Context, id int64, customer model.Customer) (model.Customer, error)
	Delete(ctx context.Context, id int64) error
}

var ErrNonPositiveLimit = errors.New("credit limit must be positive")

type customerService struct {
	api      apiclient.APIClient
	validate *validator.Validate
}

func customerPath(id int64) string {
	return "/clientes/" + strconv.FormatInt(id, 10)
}

func (service *customerService) List(ctx context.Context, page, size int) (model.Page[model.Customer], error) {
	var out model.Page[model.Customer]
	err := service.api.Send(ctx, http.MethodGet, "/clientes", pageQuery(page, size), nil, &out)
	return out, err
}

func (service *customerService) Get(ctx context.Context, id int64) (model.Customer, error) {
	if id <= 0 {
		return model.Customer{}, ErrInsufficientData
	}
	var out model.Customer
	err := service.api.Send(ctx, http.MethodGet, customerPath(id), nil, nil, &out)
	return out, err
}

func (service *customerService) Search(ctx context.Context, nome string, page, size int) (model.Page[model.Customer], error) {
	query := pageQuery(page, size)
	query["nome"] = nome
	var out model.Page[model.Customer]
	err := service.api.Send(ctx, http.MethodGet, "/clientes/search", query, nil, &out)
	return out, err
}

func (service *customerService) Credit(ctx context.Context, id int64) (model.CreditInfo, error) {
	if id <= 0 {
		return model.CreditInfo{}, ErrInsufficientData
	}
	var out model.CreditInfo
	err := service.api.Send(ctx, http.MethodGet, customerPath(id)+"/credito", nil, nil, &out)
	return out, err
}

func (service *customerService) Create(ctx context.Context, customer model.Customer) (model.Customer, error) {
	if err := service.check(customer); err != nil {
		return model.Customer{}, err
	}
	var out model.Customer
	err := service.api.Send(ctx, http.MethodPost, "/clientes", nil, customer, &out)
	return out, err
}

func (service *customerService) Update(ctx context.Context, id int64, customer model.Customer) (model.Customer, error) {
	if id <= 0 {
		return model.Customer{}, ErrInsufficientData
	}
	if err := service.check(customer); err != nil {
		return model.Customer{}, err
	}
	var out model.Customer
	err := service.api.Send(ctx, http.MethodPut, customerPath(id), nil, customer, &out)
	return out, err
}

func (service *customerService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInsufficientData
	}
	return service.api.Send(ctx, http.MethodDelete, customerPath(id), nil, nil, nil)
}

func (service *customerService) check(customer model.Customer) error {
	if err := validatePayload(service.validate, customer); err != nil {
		return err
	}
	if !customer.LimiteCredito.IsPositive() {
		return errors.Join(ErrInvalidPayload, ErrNonPositiveLimit)
	}
	return nil
}
