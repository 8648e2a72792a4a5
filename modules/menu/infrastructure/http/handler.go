// Package http provides HTTP handlers for the menu module.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/edinson0810/pruebaCasa/modules/menu/application/commands"
	"github.com/edinson0810/pruebaCasa/modules/menu/application/queries"
	"github.com/edinson0810/pruebaCasa/modules/menu/domain"
)

// Handler handles HTTP requests for the menu module.
type Handler struct {
	createItem   *commands.CreateMenuItemHandler
	updateItem   *commands.UpdateMenuItemHandler
	withdrawItem *commands.WithdrawMenuItemHandler
	getItem      *queries.GetMenuItemHandler
	listItems    *queries.ListMenuItemsHandler
	logger       *slog.Logger
}

// RegisterRoutes registers the menu module routes to the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	createItem *commands.CreateMenuItemHandler,
	updateItem *commands.UpdateMenuItemHandler,
	withdrawItem *commands.WithdrawMenuItemHandler,
	getItem *queries.GetMenuItemHandler,
	listItems *queries.ListMenuItemsHandler,
	logger *slog.Logger,
) {
	h := &Handler{
		createItem:   createItem,
		updateItem:   updateItem,
		withdrawItem: withdrawItem,
		getItem:      getItem,
		listItems:    listItems,
		logger:       logger,
	}

	mux.HandleFunc("GET /menu", h.handleListItems)
	mux.HandleFunc("POST /menu", h.handleCreateItem)
	mux.HandleFunc("GET /menu/{id}", h.handleGetItem)
	mux.HandleFunc("PUT /menu/{id}", h.handleUpdateItem)
	mux.HandleFunc("DELETE /menu/{id}", h.handleWithdrawItem)
}

// Request/Response DTOs

// menuItemRequest accepts the price either as a JSON number or a decimal string.
type menuItemRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
	Currency    string      `json:"currency"`
	Available   *bool       `json:"available,omitempty"`
}

type createItemResponse struct {
	ID int64 `json:"id"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handlers

func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	id, err := h.createItem.Handle(r.Context(), commands.CreateMenuItemCommand{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price.String(),
		Currency:    req.Currency,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createItemResponse{ID: id})
}

func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.getItem.Handle(r.Context(), queries.GetMenuItemQuery{MenuItemID: r.PathValue("id")})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	cmd := commands.UpdateMenuItemCommand{
		MenuItemID:  r.PathValue("id"),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price.String(),
		Currency:    req.Currency,
		Available:   req.Available,
	}
	if err := h.updateItem.Handle(r.Context(), cmd); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleWithdrawItem(w http.ResponseWriter, r *http.Request) {
	cmd := commands.WithdrawMenuItemCommand{MenuItemID: r.PathValue("id")}
	if err := h.withdrawItem.Handle(r.Context(), cmd); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := queries.ListMenuItemsQuery{Category: params.Get("category")}
	if raw := params.Get("available"); raw != "" {
		available, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation", "available must be a boolean")
			return
		}
		query.AvailableOnly = available
	}

	result, err := h.listItems.Handle(r.Context(), query)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Helper functions

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMenuItemNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case domain.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "validation", err.Error())
	default:
		h.logger.Error("menu request failed", slog.Any("error", err))
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
