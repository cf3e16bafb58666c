package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lux2ube/Customer-service-sub002/internal/ledger"
	"github.com/lux2ube/Customer-service-sub002/internal/obs"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.post)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type entryResponse struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Description     string    `json:"description"`
	DebitAccountID  string    `json:"debit_account_id"`
	CreditAccountID string    `json:"credit_account_id"`
	DebitAmount     int64     `json:"debit_amount"`
	CreditAmount    int64     `json:"credit_amount"`
	AmountUSD       int64     `json:"amount_usd"`
	CreatedAt       time.Time `json:"created_at"`
}

func toResponse(entry *ledger.Entry) entryResponse {
	return entryResponse{
		ID:              entry.ID,
		Date:            entry.Date,
		Description:     entry.Description,
		DebitAccountID:  entry.DebitAccountID,
		CreditAccountID: entry.CreditAccountID,
		DebitAmount:     entry.DebitAmount,
		CreditAmount:    entry.CreditAmount,
		AmountUSD:       entry.AmountUSD,
		CreatedAt:       entry.CreatedAt,
	}
}

type postEntryRequest struct {
	Date            time.Time `json:"date"`
	Description     string    `json:"description"`
	DebitAccountID  string    `json:"debit_account_id"`
	CreditAccountID string    `json:"credit_account_id"`
	DebitAmount     int64     `json:"debit_amount"`
	CreditAmount    int64     `json:"credit_amount"`
	AmountUSD       int64     `json:"amount_usd"`
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	var req postEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	entry, err := h.svc.Post(r.Context(), ledger.PostParams{
		Date:            req.Date,
		Description:     req.Description,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		DebitAmount:     req.DebitAmount,
		CreditAmount:    req.CreditAmount,
		AmountUSD:       req.AmountUSD,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount),
			errors.Is(err, ledger.ErrSameAccount),
			errors.Is(err, ledger.ErrUnknownAccount),
			errors.Is(err, ledger.ErrGroupAccount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	obs.EntryPosted()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(entry)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := ledger.ListFilter{}

	if s := r.URL.Query().Get("account_id"); s != "" {
		filter.AccountID = &s
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = &t
		}
	}

	entries, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]entryResponse, len(entries))
	for i, entry := range entries {
		resp[i] = toResponse(entry)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(entry)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
