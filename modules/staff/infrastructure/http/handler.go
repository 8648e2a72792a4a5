// Package http provides HTTP handlers for the staff module.
// Handlers translate HTTP requests into commands/queries and format responses.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/edinson0810/pruebaCasa/modules/staff/application/commands"
	"github.com/edinson0810/pruebaCasa/modules/staff/application/queries"
	"github.com/edinson0810/pruebaCasa/modules/staff/domain"
)

// Handlers bundles the staff use cases exposed over HTTP.
type Handlers struct {
	CreateStaff *commands.CreateStaffHandler
	UpdateStaff *commands.UpdateStaffHandler
	DeleteStaff *commands.DeleteStaffHandler
	GetStaff    *queries.GetStaffHandler
	ListStaff   *queries.ListStaffHandler
	CreateTable *commands.CreateTableHandler
	ListTables  *queries.ListTablesHandler
}

// Handler handles HTTP requests for the staff module.
type Handler struct {
	h      Handlers
	logger *slog.Logger
}

// RegisterRoutes registers the staff module routes to the given mux.
func RegisterRoutes(mux *http.ServeMux, handlers Handlers, logger *slog.Logger) {
	h := &Handler{h: handlers, logger: logger}

	mux.HandleFunc("GET /staff", h.handleListStaff)
	mux.HandleFunc("POST /staff", h.handleCreateStaff)
	mux.HandleFunc("GET /staff/{id}", h.handleGetStaff)
	mux.HandleFunc("PUT /staff/{id}", h.handleUpdateStaff)
	mux.HandleFunc("DELETE /staff/{id}", h.handleDeleteStaff)
	mux.HandleFunc("GET /tables", h.handleListTables)
	mux.HandleFunc("POST /tables", h.handleCreateTable)
}

// Request/Response DTOs

type createStaffRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type updateStaffRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active *bool  `json:"active,omitempty"`
}

type createTableRequest struct {
	Number int `json:"number"`
	Seats  int `json:"seats"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Handlers

func (h *Handler) handleCreateStaff(w http.ResponseWriter, r *http.Request) {
	var req createStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	id, err := h.h.CreateStaff.Handle(r.Context(), commands.CreateStaffCommand{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) handleGetStaff(w http.ResponseWriter, r *http.Request) {
	member, err := h.h.GetStaff.Handle(r.Context(), queries.GetStaffQuery{StaffID: r.PathValue("id")})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) handleUpdateStaff(w http.ResponseWriter, r *http.Request) {
	var req updateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	cmd := commands.UpdateStaffCommand{
		StaffID: r.PathValue("id"),
		Name:    req.Name,
		Email:   req.Email,
		Role:    req.Role,
		Active:  req.Active,
	}
	if err := h.h.UpdateStaff.Handle(r.Context(), cmd); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDeleteStaff(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteStaffCommand{StaffID: r.PathValue("id")}
	if err := h.h.DeleteStaff.Handle(r.Context(), cmd); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListStaff(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.h.ListStaff.Handle(r.Context(), queries.ListStaffQuery{Offset: offset, Limit: limit})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	var req createTableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation", "invalid request body")
		return
	}

	id, err := h.h.CreateTable.Handle(r.Context(), commands.CreateTableCommand{Number: req.Number, Seats: req.Seats})
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) handleListTables(w http.ResponseWriter, r *http.Request) {
	result, err := h.h.ListTables.Handle(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Helper functions

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrStaffNotFound),
		errors.Is(err, domain.ErrTableNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrTableNumberUsed):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrStaffDeleted):
		writeError(w, http.StatusGone, "gone", err.Error())
	case errors.Is(err, domain.ErrInvalidStaffID),
		errors.Is(err, domain.ErrEmailInvalid),
		errors.Is(err, domain.ErrEmailRequired),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrNameLength),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrTableNumber),
		errors.Is(err, domain.ErrTableSeats):
		writeError(w, http.StatusBadRequest, "validation", err.Error())
	default:
		h.logger.Error("staff request failed", slog.Any("error", err))
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
