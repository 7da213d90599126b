package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iurnickita/creditorder/internal/auth"
	authConfig "github.com/iurnickita/creditorder/internal/auth/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string, timeout time.Duration) (APIClient, *observer.ObservedLogs) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	core, logs := observer.New(zapcore.DebugLevel)
	a := auth.NewAuth(authConfig.Config{Token: token})
	return NewAPIClient(srv.URL+"/api/", timeout, a, zap.New(core)), logs
}

func TestSendDecodesResultAndSetsHeaders(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/clientes/7", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get(HeaderRequestID))
		require.Equal(t, "0", r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"nome":"Loja Centro"}`))
	}, "tok", 0)

	var out struct {
		ID   int64  `json:"id"`
		Nome string `json:"nome"`
	}
	err := client.Send(context.Background(), http.MethodGet, "/clientes/7", map[string]string{"page": "0"}, nil, &out)
	require.NoError(t, err)
	require.Equal(t, int64(7), out.ID)
	require.Equal(t, "Loja Centro", out.Nome)
}

func TestSendPostsJSONBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Empty(t, r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.EqualValues(t, 3, body["clienteId"])
		w.WriteHeader(http.StatusCreated)
	}, "", 0)

	err := client.Send(context.Background(), http.MethodPost, "/pedidos", nil, map[string]int{"clienteId": 3}, nil)
	require.NoError(t, err)
}

func TestSendClassifiesStatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		target  error
		kind    Kind
		message string
	}{
		{name: "validation", status: http.StatusBadRequest, body: `{"message":"Pedido deve ter pelo menos um item"}`, target: ErrClientStatus, kind: KindClient, message: "Pedido deve ter pelo menos um item"},
		{name: "not found", status: http.StatusNotFound, body: `not json`, target: ErrClientStatus, kind: KindClient},
		{name: "server", status: http.StatusServiceUnavailable, body: `{"message":"down"}`, target: ErrServerStatus, kind: KindServer, message: "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, logs := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, "", 0)

			err := client.Send(context.Background(), http.MethodGet, "/clientes", nil, nil, nil)
			require.ErrorIs(t, err, tt.target)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tt.kind, apiErr.Kind)
			require.Equal(t, tt.status, apiErr.Status)
			require.Equal(t, http.StatusText(tt.status), apiErr.StatusText)
			require.Equal(t, tt.message, apiErr.Message)
			require.Equal(t, tt.body, string(apiErr.Body))

			// каждая ошибка логируется вместе с телом ответа
			entries := logs.FilterMessage("API error").All()
			require.Len(t, entries, 1)
			require.Equal(t, tt.body, entries[0].ContextMap()["body"])
		})
	}
}

func TestSendTimeout(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, "", 50*time.Millisecond)
	defer close(release)

	err := client.Send(context.Background(), http.MethodGet, "/produtos", nil, nil, nil)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestSendNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewAPIClient(url, time.Second, auth.NewAuth(authConfig.Config{}), zap.NewNop())
	err := client.Send(context.Background(), http.MethodGet, "/clientes", nil, nil, nil)
	require.ErrorIs(t, err, ErrNetwork)
	require.NotErrorIs(t, err, ErrTimeout)
}
