package service

import (
	"context"
	"net/http"

	"github.com/iurnickita/creditorder/internal/service/apiclient"
)

// HealthService - диагностика доступности backend, в форме заказа не используется.
type HealthService interface {
	Health(ctx context.Context) error
}

type healthService struct {
	api apiclient.APIClient
}

func (service *healthService) Health(ctx context.Context) error {
	return service.api.Send(ctx, http.MethodGet, "/health", nil, nil, nil)
}
