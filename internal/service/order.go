package service

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iurnickita/creditorder/internal/model"
	"github.com/iurnickita/creditorder/internal/service/apiclient"
)

type OrderService interface {
	List(ctx context.Context, page, size int) (model.Page[model.Order], error)
	Get(ctx context.Context, id int64) (model.Order, error)
	ByCustomer(ctx context.Context, customerID int64, page, size int) (model.Page[model.Order], error)
	ByStatus(ctx context.Context, status string, page, size int) (model.Page[model.Order], error)
	ByPeriod(ctx context.Context, from, to time.Time, page, size int) (model.Page[model.Order], error)
	CustomerTotal(ctx context.Context, customerID int64, from, to time.Time) (decimal.Decimal, error)
	// Create отправляет заказ на проверку кредитного лимита.
	Create(ctx context.Context, order model.OrderRequest) (model.Order, error)
	Update(ctx context.Context, id int64, order model.OrderRequest) (model.Order, error)
	Delete(ctx context.Context, id int64) error
}

// формат LocalDateTime backend
const queryTimeLayout = "2006-01-02T15:04:05"

type orderService struct {
	api      apiclient.APIClient
	validate *validator.Validate
}

func orderPath(id int64) string {
	return "/pedidos/" + strconv.FormatInt(id, 10)
}

func (service *orderService) List(ctx context.Context, page, size int) (model.Page[model.Order], error) {
	var out model.Page[model.Order]
	err := service.api.Send(ctx, http.MethodGet, "/pedidos", pageQuery(page, size), nil, &out)
	return out, err
}

func (service *orderService) Get(ctx context.Context, id int64) (model.Order, error) {
	if id <= 0 {
		return model.Order{}, ErrInsufficientData
	}
	var out model.Order
	err := service.api.Send(ctx, http.MethodGet, orderPath(id), nil, nil, &out)
	return out, err
}

func (service *orderService) ByCustomer(ctx context.Context, customerID int64, page, size int) (model.Page[model.Order], error) {
	if customerID <= 0 {
		return model.Page[model.Order]{}, ErrInsufficientData
	}
	var out model.Page[model.Order]
	err := service.api.Send(ctx, http.MethodGet, "/pedidos/cliente/"+strconv.FormatInt(customerID, 10), pageQuery(page, size), nil, &out)
	return out, err
}

func (service *orderService) ByStatus(ctx context.Context, status string, page, size int) (model.Page[model.Order], error) {
	if status == "" {
		return model.Page[model.Order]{}, ErrInsufficientData
	}
	var out model.Page[model.Order]
	err := service.api.Send(ctx, http.MethodGet, "/pedidos/status/"+status, pageQuery(page, size), nil, &out)
	return out, err
}

func (service *orderService) ByPeriod(ctx context.Context, from, to time.Time, page, size int) (model.Page[model.Order], error) {
	query := pageQuery(page, size)
	query["inicio"] = from.Format(queryTimeLayout)
	query["fim"] = to.Format(queryTimeLayout)
	var out model.Page[model.Order]
	err := service.api.Send(ctx, http.MethodGet, "/pedidos/periodo", query, nil, &out)
	return out, err
}

func (service *orderService) CustomerTotal(ctx context.Context, customerID int64, from, to time.Time) (decimal.Decimal, error) {
	if customerID <= 0 {
		return decimal.Zero, ErrInsufficientData
	}
	query := map[string]string{
		"dataInicio": from.Format(queryTimeLayout),
		"dataFim":    to.Format(queryTimeLayout),
	}
	var out decimal.Decimal
	err := service.api.Send(ctx, http.MethodGet, "/pedidos/cliente/"+strconv.FormatInt(customerID, 10)+"/total", query, nil, &out)
	return out, err
}

func (service *orderService) Create(ctx context.Context, order model.OrderRequest) (model.Order, error) {
	if err := validatePayload(service.validate, order); err != nil {
		return model.Order{}, err
	}
	var out model.Order
	err := service.api.Send(ctx, http.MethodPost, "/pedidos", nil, order, &out)
	return out, err
}

// Update заменяет состав заказа; backend заново проверяет кредит.
func (service *orderService) Update(ctx context.Context, id int64, order model.OrderRequest) (model.Order, error) {
	if id <= 0 {
		return model.Order{}, ErrInsufficientData
	}
	if err := validatePayload(service.validate, order); err != nil {
		return model.Order{}, err
	}
	var out model.Order
	err := service.api.Send(ctx, http.MethodPut, orderPath(id), nil, order, &out)
	return out, err
}

func (service *orderService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInsufficientData
	}
	return service.api.Send(ctx, http.MethodDelete, orderPath(id), nil, nil, nil)
}
