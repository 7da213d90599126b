package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iurnickita/creditorder/internal/auth"
)

const (
	HeaderRequestID = "X-Request-ID"
	DefaultTimeout  = 10 * time.Second
)

type APIClient interface {
	// Send выполняет запрос и, если result != nil, разбирает JSON ответа в result.
	Send(ctx context.Context, method, path string, query map[string]string, body any, result any) error
	BaseURL() string
}

type apiClient struct {
	client *resty.Client
	zaplog *zap.Logger
}

func NewAPIClient(baseURL string, timeout time.Duration, auth auth.Auth, zaplog *zap.Logger) APIClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(zaplog.Sugar()).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			if r.Header.Get(HeaderRequestID) == "" {
				r.SetHeader(HeaderRequestID, uuid.NewString())
			}
			return nil
		}).
		OnBeforeRequest(auth.Middleware(zaplog))

	return &apiClient{client: client, zaplog: zaplog}
}

func (client *apiClient) BaseURL() string {
	return client.client.BaseURL
}

// Send никогда не повторяет запрос и не преобразует ошибку: только логирует её.
func (client *apiClient) Send(ctx context.Context, method, path string, query map[string]string, body any, result any) error {
	req := client.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		apiErr := &Error{
			Kind:    kindOf(err),
			Method:  method,
			Path:    path,
			Message: err.Error(),
			Err:     err,
		}
		client.zaplog.Error("API error",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", req.Header.Get(HeaderRequestID)),
			zap.Error(err),
		)
		return apiErr
	}

	if resp.IsError() {
		apiErr := &Error{
			Kind:       kindOfStatus(resp.StatusCode()),
			Method:     method,
			Path:       path,
			Status:     resp.StatusCode(),
			StatusText: statusText(resp),
			Message:    bodyMessage(resp.Body()),
			Body:       resp.Body(),
		}
		client.zaplog.Error("API error",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", req.Header.Get(HeaderRequestID)),
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Body()),
		)
		return apiErr
	}

	if result == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		client.zaplog.Error("API response decode error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func kindOf(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}

func kindOfStatus(status int) Kind {
	if status >= http.StatusInternalServerError {
		return KindServer
	}
	return KindClient
}

// "404 Not Found" -> "Not Found"
func statusText(resp *resty.Response) string {
	status := resp.Status()
	if _, text, ok := strings.Cut(status, " "); ok {
		return text
	}
	return http.StatusText(resp.StatusCode())
}

// JSON ошибки backend: {"status":400,"error":"...","message":"..."}
func bodyMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
