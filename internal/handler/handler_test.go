package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iurnickita/creditorder/internal/auth"
	authConfig "github.com/iurnickita/creditorder/internal/auth/config"
	"github.com/iurnickita/creditorder/internal/model"
	"github.com/iurnickita/creditorder/internal/orderform"
	"github.com/iurnickita/creditorder/internal/service"
	"github.com/iurnickita/creditorder/internal/service/apiclient"
	serviceConfig "github.com/iurnickita/creditorder/internal/service/config"
)

// backend с фиксированными ответами
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/clientes", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"content":[{"id":1,"nome":"Mercado Sol","limiteCredito":"1000.00"}]}`)
	})
	mux.HandleFunc("GET /api/produtos", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":10,"nome":"Arroz","preco":"10.00"}]`)
	})
	mux.HandleFunc("GET /api/clientes/1/credito", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"clienteId":1,"limiteCredito":"1000.00","valorUtilizado":"200.00","saldoDisponivel":"800.00"}`)
	})
	mux.HandleFunc("POST /api/pedidos", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"clienteId":1,"itens":[{"produtoId":10,"quantidade":3}]}`, string(body))
		io.WriteString(w, `{"id":42,"clienteId":1,"status":"APROVADO","valorTotal":30,"limiteCredito":1000,"valorUtilizado":230,"saldoDisponivel":770}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T, backendURL string) (http.Handler, *Notifications) {
	t.Helper()
	api := apiclient.NewAPIClient(backendURL+"/api", time.Second, auth.NewAuth(authConfig.Config{}), zap.NewNop())
	svc := service.NewService(serviceConfig.Config{ListSize: 100}, api)
	notifications := NewNotifications(0)
	controller := orderform.NewController(svc, nil, notifications, zap.NewNop())
	return newHandler(controller, notifications, zap.NewNop()).newRouter(), notifications
}

func do(t *testing.T, router http.Handler, method, path, body string) (*http.Response, orderform.View) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	res := rec.Result()
	t.Cleanup(func() { res.Body.Close() })

	var view orderform.View
	if res.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&view))
	}
	return res, view
}

func TestFormWorkflow(t *testing.T) {
	backend := newBackend(t)
	router, notifications := newTestRouter(t, backend.URL)

	res, view := do(t, router, http.MethodGet, "/api/form", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, orderform.PhaseLoading, view.Phase)

	res, view = do(t, router, http.MethodPost, "/api/form/reload", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, view.Customers, 1)
	require.Len(t, view.Products, 1)

	res, _ = do(t, router, http.MethodPut, "/api/form/customer", `{"clienteId":7}`)
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	res, view = do(t, router, http.MethodPut, "/api/form/customer", `{"clienteId":1}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.True(t, view.Credit.Confirmed)
	require.Equal(t, "800", view.Credit.Available.String())

	res, _ = do(t, router, http.MethodPost, "/api/form/items", "")
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	res, view = do(t, router, http.MethodPut, "/api/form/product", `{"produtoId":10,"quantidade":3}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.EqualValues(t, 10, view.SelectedProduct)
	require.Equal(t, 3, view.Quantity)

	res, view = do(t, router, http.MethodPost, "/api/form/items", "")
	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Len(t, view.Items, 1)
	require.Equal(t, "30", view.Total.String())

	res, view = do(t, router, http.MethodPost, "/api/form/items", `{"produtoId":10,"quantidade":1}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Equal(t, 4, view.Items[0].Quantidade)

	res, view = do(t, router, http.MethodDelete, "/api/form/items/10", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Empty(t, view.Items)

	res, _ = do(t, router, http.MethodDelete, "/api/form/items/abc", "")
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = do(t, router, http.MethodPost, "/api/form/submit", "")
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	do(t, router, http.MethodPost, "/api/form/items", `{"produtoId":10,"quantidade":3}`)
	res, view = do(t, router, http.MethodPost, "/api/form/submit", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, orderform.SubmissionApproved, view.Submission)
	require.Contains(t, view.Message.Text, "#42")
	require.Nil(t, view.Customer)
	require.EqualValues(t, 42, view.LastOrder.ID)

	res, _ = do(t, router, http.MethodDelete, "/api/form/message", "")
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	require.NotEmpty(t, notifications.Drain())
	res, _ = do(t, router, http.MethodGet, "/api/form/notifications", "")
	require.Equal(t, http.StatusNoContent, res.StatusCode)
}

func TestReloadFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	}))
	defer backend.Close()
	router, _ := newTestRouter(t, backend.URL)

	res, view := do(t, router, http.MethodPost, "/api/form/reload", "")
	require.Equal(t, http.StatusBadGateway, res.StatusCode)
	require.True(t, view.RetryAvailable)
	require.Equal(t, orderform.NetworkServerUnavailable, view.Network)
	require.Contains(t, view.Message.Text, "Erro interno do servidor")
}

func TestConnectivityAndNotifications(t *testing.T) {
	backend := newBackend(t)
	router, _ := newTestRouter(t, backend.URL)

	res, view := do(t, router, http.MethodPut, "/api/form/connectivity", `{"online":false}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, orderform.NetworkOffline, view.Network)

	req := httptest.NewRequest(http.MethodGet, "/api/form/notifications", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var notifications []model.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	require.Equal(t, model.SeverityWarning, notifications[0].Severity)
	require.Equal(t, "Conexão perdida. Verificando...", notifications[0].Text)
}

func TestNotificationsLimit(t *testing.T) {
	n := NewNotifications(2)
	n.Notify(model.Notification{Text: "a"})
	n.Notify(model.Notification{Text: "b"})
	n.Notify(model.Notification{Text: "c"})

	items := n.Drain()
	require.Len(t, items, 2)
	require.Equal(t, "b", items[0].Text)
	require.Equal(t, "c", items[1].Text)
	require.Empty(t, n.Drain())
}
