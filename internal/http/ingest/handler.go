package ingest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lux2ube/Customer-service-sub002/internal/ingest"
	"github.com/lux2ube/Customer-service-sub002/internal/matching"
	"github.com/lux2ube/Customer-service-sub002/internal/obs"
)

type Handler struct {
	svc *ingest.Service
}

func NewHandler(svc *ingest.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.ingest)
	r.Post("/dump", h.ingestDump)
	r.Get("/failures", h.listFailures)
	r.Post("/failures/{id}/resolve", h.resolveFailure)
}

type ingestRequest struct {
	Message string `json:"message"`
}

type ingestResponse struct {
	RecordID    string        `json:"record_id,omitempty"`
	Status      string        `json:"status,omitempty"`
	FailureID   string        `json:"failure_id,omitempty"`
	MatchedRule matching.Rule `json:"matched_rule,omitempty"`
	Assigned    bool          `json:"assigned"`
	Blacklisted bool          `json:"blacklisted,omitempty"`
}

func toResponse(outcome *ingest.Outcome) ingestResponse {
	resp := ingestResponse{
		Assigned:    outcome.Assigned,
		Blacklisted: outcome.Blacklisted,
	}

	if outcome.Record != nil {
		resp.RecordID = outcome.Record.ID
		resp.Status = string(outcome.Record.Status)
	}

	if outcome.Failure != nil {
		resp.FailureID = outcome.Failure.ID.String()
	}

	if outcome.Match != nil {
		resp.MatchedRule = outcome.Match.Rule
	}

	return resp
}

func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	outcome, err := h.svc.Ingest(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, ingest.ErrUnknownCurrency) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	switch {
	case outcome.Failure != nil:
		obs.ParseFailure()
	case outcome.Record != nil:
		obs.RecordIngested(string(outcome.Record.Kind))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(outcome)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// ingestDump accepts the raw export file as the request body. Encoding
// detection happens downstream, so the body is passed through untouched.
func (h *Handler) ingestDump(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.IngestDump(r.Context(), r.Body)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summary); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type failureResponse struct {
	ID         uuid.UUID `json:"id"`
	RawMessage string    `json:"raw_message"`
	Reason     string    `json:"reason"`
	Resolved   bool      `json:"resolved"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handler) listFailures(w http.ResponseWriter, r *http.Request) {
	includeResolved := r.URL.Query().Get("include_resolved") == "true"

	failures, err := h.svc.Failures(r.Context(), includeResolved)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]failureResponse, len(failures))
	for i, f := range failures {
		resp[i] = failureResponse{
			ID:         f.ID,
			RawMessage: f.RawMessage,
			Reason:     f.Reason,
			Resolved:   f.Resolved,
			CreatedAt:  f.CreatedAt,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) resolveFailure(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Resolve(r.Context(), id); err != nil {
		if errors.Is(err, ingest.ErrFailureNotFound) {
			http.Error(w, "parsing failure not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
