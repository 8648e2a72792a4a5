// Package http provides HTTP handlers for the orders module.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/edinson0810/pruebaCasa/modules/orders/application/commands"
	"github.com/edinson0810/pruebaCasa/modules/orders/application/queries"
	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
)

// Handlers bundles the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder      *commands.CreateOrderHandler
	UpdateOrder      *commands.UpdateOrderHandler
	TransitionStatus *commands.TransitionStatusHandler
	CancelOrder      *commands.CancelOrderHandler
	DeleteOrder      *commands.DeleteOrderHandler
	GetOrder         *queries.GetOrderHandler
	ListOrders       *queries.ListOrdersHandler
	ListByStatus     *queries.ListByStatusHandler
	GetOrderHistory  *queries.GetOrderHistoryHandler
}

type Handler struct {
	h      Handlers
	logger *slog.Logger
}

// RegisterRoutes registers the orders module routes to the given mux.
func RegisterRoutes(mux *http.ServeMux, handlers Handlers, logger *slog.Logger) {
	h := &Handler{h: handlers, logger: logger}

	mux.HandleFunc("POST /orders", h.handleCreateOrder)
	mux.HandleFunc("GET /orders", h.handleListOrders)
	mux.HandleFunc("GET /orders/{id}", h.handleGetOrder)
	mux.HandleFunc("PUT /orders/{id}", h.handleUpdateOrder)
	mux.HandleFunc("DELETE /orders/{id}", h.handleDeleteOrder)
	mux.HandleFunc("PUT /orders/{id}/status", h.handleTransitionStatus)
	mux.HandleFunc("POST /orders/{id}/cancel", h.handleCancelOrder)
	mux.HandleFunc("GET /orders/{id}/history", h.handleGetOrderHistory)
	mux.HandleFunc("GET /kitchen/orders", h.handleKitchenBoard)
}

// Request/Response DTOs

type itemRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

type createOrderRequest struct {
	ServerID int64         `json:"server_id"`
	TableID  int64         `json:"table_id"`
	Status   string        `json:"status,omitempty"`
	Items    []itemRequest `json:"items"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// updateOrderRequest uses pointers so absent fields stay untouched.
// total accepts either a JSON number or a decimal string.
type updateOrderRequest struct {
	ServerID *int64        `json:"server_id"`
	TableID  *int64        `json:"table_id"`
	Status   *string       `json:"status"`
	Total    *json.Number  `json:"total"`
	Items    []itemRequest `json:"items"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handlers

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decode(w, r, &req) {
		return
	}

	id, err := h.h.CreateOrder.Handle(r.Context(), commands.CreateOrderCommand{
		ServerID: req.ServerID,
		TableID:  req.TableID,
		Status:   req.Status,
		Items:    toItemRequests(req.Items),
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createOrderResponse{ID: id})
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := queries.ListOrdersQuery{}

	for _, v := range params["status"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				query.Statuses = append(query.Statuses, s)
			}
		}
	}
	var ok bool
	if query.Limit, ok = intParam(w, params.Get("limit"), "limit"); !ok {
		return
	}
	if query.Offset, ok = intParam(w, params.Get("offset"), "offset"); !ok {
		return
	}

	result, err := h.h.ListOrders.Handle(r.Context(), query)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.h.GetOrder.Handle(r.Context(), queries.GetOrderQuery{OrderID: r.PathValue("id")})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if !decode(w, r, &req) {
		return
	}

	cmd := commands.UpdateOrderCommand{
		OrderID:  r.PathValue("id"),
		ServerID: req.ServerID,
		TableID:  req.TableID,
		Status:   req.Status,
	}
	if req.Total != nil {
		total := req.Total.String()
		cmd.Total = &total
	}
	if req.Items != nil {
		cmd.Items = toItemRequests(req.Items)
	}

	if err := h.h.UpdateOrder.Handle(r.Context(), cmd); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeOrder(w, r, cmd.OrderID)
}

func (h *Handler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteOrderCommand{OrderID: r.PathValue("id")}
	if err := h.h.DeleteOrder.Handle(r.Context(), cmd); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleTransitionStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}

	cmd := commands.TransitionStatusCommand{OrderID: r.PathValue("id"), Status: req.Status}
	if err := h.h.TransitionStatus.Handle(r.Context(), cmd); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeOrder(w, r, cmd.OrderID)
}

func (h *Handler) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	cmd := commands.CancelOrderCommand{OrderID: r.PathValue("id")}
	if err := h.h.CancelOrder.Handle(r.Context(), cmd); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeOrder(w, r, cmd.OrderID)
}

func (h *Handler) handleGetOrderHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.h.GetOrderHistory.Handle(r.Context(), queries.GetOrderHistoryQuery{OrderID: r.PathValue("id")})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) handleKitchenBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.h.ListByStatus.Handle(r.Context(), queries.ListByStatusQuery{})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, board)
}

// writeOrder responds with the current detail of an order after a write.
func (h *Handler) writeOrder(w http.ResponseWriter, r *http.Request, id string) {
	order, err := h.h.GetOrder.Handle(r.Context(), queries.GetOrderQuery{OrderID: id})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Helper functions

func toItemRequests(items []itemRequest) []commands.ItemRequest {
	out := make([]commands.ItemRequest, len(items))
	for i, item := range items {
		out[i] = commands.ItemRequest{MenuItemID: item.MenuItemID, Quantity: item.Quantity}
	}
	return out
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body: "+err.Error())
		return false
	}
	return true
}

func intParam(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "validation", name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, domain.ErrReference):
		writeError(w, http.StatusBadRequest, "reference", err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition", err.Error())
	default:
		h.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		writeError(w, http.StatusInternalServerError, "persistence", "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: kind, Message: message})
}
