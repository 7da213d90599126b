package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iurnickita/creditorder/internal/service/apiclient"
	"github.com/iurnickita/creditorder/internal/service/config"
)

const (
	DefaultPage = 0
	DefaultSize = 20
)

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidPayload   = errors.New("invalid payload")
)

// Service - типизированные обёртки над REST backend, по одной группе на ресурс.
// Ошибки адаптера возвращаются без изменений, кэша и повторов нет.
type Service struct {
	Customers CustomerService
	Products  ProductService
	Orders    OrderService
	Health    HealthService
	// размер страницы для загрузки справочника целиком
	ListSize int
}

func NewService(cfg config.Config, api apiclient.APIClient) *Service {
	listSize := cfg.ListSize
	if listSize <= 0 {
		listSize = DefaultSize
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	return &Service{
		Customers: &customerService{api: api, validate: validate},
		Products:  &productService{api: api, validate: validate},
		Orders:    &orderService{api: api, validate: validate},
		Health:    &healthService{api: api},
		ListSize:  listSize,
	}
}

func pageQuery(page, size int) map[string]string {
	if page < 0 {
		page = DefaultPage
	}
	if size <= 0 {
		size = DefaultSize
	}
	return map[string]string{
		"page": strconv.Itoa(page),
		"size": strconv.Itoa(size),
	}
}

// FieldErrors - поле JSON -> сообщение.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

func validatePayload(validate *validator.Validate, payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	out := FieldErrors{}
	for _, fe := range ve {
		out[fe.Namespace()] = messageForTag(fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%w: %w", ErrInvalidPayload, out)
}

func messageForTag(tag, param string) string {
	switch tag {
	case "required":
		return "campo obrigatório"
	case "gt":
		return "deve ser maior que " + param
	case "min":
		return "deve ter pelo menos " + param + " item(ns)"
	default:
		return "valor inválido"
	}
}
