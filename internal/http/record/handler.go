package record

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lux2ube/Customer-service-sub002/internal/client"
	"github.com/lux2ube/Customer-service-sub002/internal/reconcile"
	"github.com/lux2ube/Customer-service-sub002/internal/record"
)

type Handler struct {
	records   *record.Service
	reconcile *reconcile.Service
}

func NewHandler(records *record.Service, rec *reconcile.Service) *Handler {
	return &Handler{records: records, reconcile: rec}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/assign", h.assign)
	r.Post("/{id}/unassign", h.unassign)
	r.Post("/{id}/cancel", h.cancel)
	r.Post("/{id}/use", h.markUsed)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := record.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		status := record.Status(s)
		filter.Status = &status
	}

	if s := r.URL.Query().Get("kind"); s != "" {
		kind := record.Kind(s)
		filter.Kind = &kind
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			http.Error(w, "invalid client_id", http.StatusBadRequest)
			return
		}

		filter.ClientID = &id
	}

	if s := r.URL.Query().Get("flagged"); s != "" {
		flagged, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "invalid flagged", http.StatusBadRequest)
			return
		}

		filter.Flagged = &flagged
	}

	recs, err := h.records.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(recs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.records.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, record.ErrNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type assignRequest struct {
	ClientID int64 `json:"client_id"`
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.reconcile.Assign(r.Context(), chi.URLParam(r, "id"), req.ClientID)
	if err != nil {
		switch {
		case errors.Is(err, record.ErrNotFound), errors.Is(err, client.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, record.ErrAlreadyMatched), errors.Is(err, record.ErrTerminal):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) unassign(w http.ResponseWriter, r *http.Request) {
	rec, err := h.reconcile.Unassign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, record.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, record.ErrNotAssigned), errors.Is(err, record.ErrTerminal):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.records.Cancel)
}

func (h *Handler) markUsed(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.records.MarkUsed)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id string) error) {
	id := chi.URLParam(r, "id")

	if err := fn(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, record.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, record.ErrTerminal):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	rec, err := h.records.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(rec)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
