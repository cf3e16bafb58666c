package period

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lux2ube/Customer-service-sub002/internal/period"
)

type Handler struct {
	svc *period.Service
}

func NewHandler(svc *period.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.boundary)
	r.Post("/close", h.close)
	r.Get("/closed-balances", h.closedBalances)
}

type boundaryResponse struct {
	PeriodStart *time.Time `json:"period_start"`
}

func (h *Handler) boundary(w http.ResponseWriter, r *http.Request) {
	start, err := h.svc.Boundary(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(boundaryResponse{PeriodStart: start}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type snapshotResponse struct {
	AccountID string    `json:"account_id"`
	Balance   int64     `json:"balance"` // USD cents
	ClosedAt  time.Time `json:"closed_at"`
}

type closeResponse struct {
	ClosedAt  time.Time          `json:"closed_at"`
	Snapshots []snapshotResponse `json:"snapshots"`
}

func toSnapshots(snaps []period.Snapshot) []snapshotResponse {
	resp := make([]snapshotResponse, len(snaps))
	for i, snap := range snaps {
		resp[i] = snapshotResponse{
			AccountID: snap.AccountID,
			Balance:   snap.Balance,
			ClosedAt:  snap.ClosedAt,
		}
	}

	return resp
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Close(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(closeResponse{
		ClosedAt:  result.ClosedAt,
		Snapshots: toSnapshots(result.Snapshots),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) closedBalances(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.svc.ClosedBalances(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSnapshots(snaps)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
