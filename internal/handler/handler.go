package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/iurnickita/creditorder/internal/handler/config"
	"github.com/iurnickita/creditorder/internal/logger"
	"github.com/iurnickita/creditorder/internal/orderform"
)

const shutdownTimeout = 5 * time.Second

// Serve публикует действия формы заказа как локальный JSON API до отмены ctx.
func Serve(ctx context.Context, cfg config.Config, controller *orderform.Controller, notifications *Notifications, zaplog *zap.Logger) error {
	h := newHandler(controller, notifications, zaplog)
	router := h.newRouter()

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: router,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	zaplog.Info("form api listening", zap.String("address", cfg.ServerAddr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type handler struct {
	controller    *orderform.Controller
	notifications *Notifications
	zaplog        *zap.Logger
}

func newHandler(controller *orderform.Controller, notifications *Notifications, zaplog *zap.Logger) *handler {
	return &handler{
		controller:    controller,
		notifications: notifications,
		zaplog:        zaplog,
	}
}

func (h *handler) newRouter() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/form", logger.RequestLogMdlw(h.GetForm, h.zaplog))
	mux.HandleFunc("POST /api/form/reload", logger.RequestLogMdlw(h.PostReload, h.zaplog))
	mux.HandleFunc("PUT /api/form/customer", logger.RequestLogMdlw(h.PutCustomer, h.zaplog))
	mux.HandleFunc("PUT /api/form/product", logger.RequestLogMdlw(h.PutProduct, h.zaplog))
	mux.HandleFunc("POST /api/form/items", logger.RequestLogMdlw(h.PostItem, h.zaplog))
	mux.HandleFunc("DELETE /api/form/items/{id}", logger.RequestLogMdlw(h.DeleteItem, h.zaplog))
	mux.HandleFunc("POST /api/form/submit", logger.RequestLogMdlw(h.PostSubmit, h.zaplog))
	mux.HandleFunc("PUT /api/form/connectivity", logger.RequestLogMdlw(h.PutConnectivity, h.zaplog))
	mux.HandleFunc("DELETE /api/form/message", logger.RequestLogMdlw(h.DeleteMessage, h.zaplog))
	mux.HandleFunc("GET /api/form/notifications", logger.RequestLogMdlw(h.GetNotifications, h.zaplog))

	return mux
}

// writeState отвечает текущим снимком формы.
func (h *handler) writeState(w http.ResponseWriter, status int) {
	h.writeJSON(w, status, h.controller.State())
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(responseJSON)
}

func decodeBody(r *http.Request, v any) error {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r.Body); err != nil {
		return err
	}
	if buf.Len() == 0 {
		return nil
	}
	return json.Unmarshal(buf.Bytes(), v)
}

// statusFor - код ответа для ошибки действия формы.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, orderform.ErrUnknownCustomer), errors.Is(err, orderform.ErrUnknownProduct):
		return http.StatusNotFound
	case errors.Is(err, orderform.ErrNoCustomer),
		errors.Is(err, orderform.ErrNoItems),
		errors.Is(err, orderform.ErrInvalidSelection):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orderform.ErrSubmitting), errors.Is(err, orderform.ErrStale):
		return http.StatusConflict
	default:
		// сбой backend, текст уже в сообщении формы
		return http.StatusBadGateway
	}
}

func (h *handler) GetForm(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, http.StatusOK)
}

func (h *handler) PostReload(w http.ResponseWriter, r *http.Request) {
	err := h.controller.Reload(r.Context())
	h.writeState(w, statusFor(err))
}

type PutCustomerJSONRequest struct {
	ClienteID int64 `json:"clienteId"`
}

func (h *handler) PutCustomer(w http.ResponseWriter, r *http.Request) {
	var req PutCustomerJSONRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.controller.SelectCustomer(r.Context(), req.ClienteID)
	if errors.Is(err, orderform.ErrStale) {
		// выбор уже заменён более новым
		err = nil
	}
	h.writeState(w, statusFor(err))
}

type ItemJSONRequest struct {
	ProdutoID  int64 `json:"produtoId"`
	Quantidade *int  `json:"quantidade,omitempty"`
}

func (h *handler) PutProduct(w http.ResponseWriter, r *http.Request) {
	var req ItemJSONRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.controller.SelectProduct(req.ProdutoID); err != nil {
		h.writeState(w, statusFor(err))
		return
	}
	if req.Quantidade != nil {
		h.controller.SetQuantity(*req.Quantidade)
	}
	h.writeState(w, http.StatusOK)
}

// PostItem без тела добавляет то, что выбрано в полях формы.
func (h *handler) PostItem(w http.ResponseWriter, r *http.Request) {
	var req ItemJSONRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var err error
	if req.ProdutoID == 0 && req.Quantidade == nil {
		_, err = h.controller.AddProduct()
	} else {
		quantity := 1
		if req.Quantidade != nil {
			quantity = *req.Quantidade
		}
		_, err = h.controller.Add(req.ProdutoID, quantity)
	}
	if err != nil {
		h.writeState(w, statusFor(err))
		return
	}
	h.writeState(w, http.StatusCreated)
}

func (h *handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.controller.RemoveProduct(id)
	h.writeState(w, http.StatusOK)
}

func (h *handler) PostSubmit(w http.ResponseWriter, r *http.Request) {
	_, err := h.controller.Submit(r.Context())
	h.writeState(w, statusFor(err))
}

type PutConnectivityJSONRequest struct {
	Online bool `json:"online"`
}

func (h *handler) PutConnectivity(w http.ResponseWriter, r *http.Request) {
	var req PutConnectivityJSONRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.controller.SetOnline(req.Online)
	h.writeState(w, http.StatusOK)
}

func (h *handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	h.controller.DismissMessage()
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	notifications := h.notifications.Drain()
	if len(notifications) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusOK, notifications)
}
