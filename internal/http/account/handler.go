package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lux2ube/Customer-service-sub002/internal/account"
	"github.com/lux2ube/Customer-service-sub002/internal/ledger"
	"github.com/lux2ube/Customer-service-sub002/internal/period"
)

type Handler struct {
	accounts *account.Service
	ledger   *ledger.Service
	periods  *period.Service
}

func NewHandler(accounts *account.Service, ldg *ledger.Service, periods *period.Service) *Handler {
	return &Handler{accounts: accounts, ledger: ldg, periods: periods}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/balance", h.balance)
	r.Get("/{id}/breakdown", h.breakdown)
}

type accountResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      account.Type `json:"type"`
	IsGroup   bool         `json:"is_group"`
	Currency  string       `json:"currency,omitempty"`
	ParentID  string       `json:"parent_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func toResponse(acct *account.Account) accountResponse {
	return accountResponse{
		ID:        acct.ID,
		Name:      acct.Name,
		Type:      acct.Type,
		IsGroup:   acct.IsGroup,
		Currency:  acct.Currency,
		ParentID:  acct.ParentID,
		CreatedAt: acct.CreatedAt,
	}
}

type createAccountRequest struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     account.Type `json:"type"`
	IsGroup  bool         `json:"is_group"`
	Currency string       `json:"currency"`
	ParentID string       `json:"parent_id"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	acct, err := h.accounts.Create(r.Context(), account.CreateParams{
		ID:       req.ID,
		Name:     req.Name,
		Type:     req.Type,
		IsGroup:  req.IsGroup,
		Currency: req.Currency,
		ParentID: req.ParentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, account.ErrExists):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, account.ErrInvalid),
			errors.Is(err, account.ErrInvalidType),
			errors.Is(err, account.ErrParentNotGroup):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, account.ErrNotFound):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(acct)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := account.ListFilter{}

	if s := r.URL.Query().Get("type"); s != "" {
		t := account.Type(s)
		filter.Type = &t
	}

	if s := r.URL.Query().Get("is_group"); s != "" {
		isGroup := s == "true"
		filter.IsGroup = &isGroup
	}

	accts, err := h.accounts.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := make([]accountResponse, len(accts))
	for i, acct := range accts {
		resp[i] = toResponse(acct)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	acct, err := h.accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(acct)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// boundary resolves the balance window for a request. The default is the
// current financial period; "since" overrides it and "all=true" scans full
// history.
func (h *Handler) boundary(r *http.Request) (*time.Time, error) {
	if r.URL.Query().Get("all") == "true" {
		return nil, nil
	}

	if s := r.URL.Query().Get("since"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, err
		}

		return &t, nil
	}

	return h.periods.Boundary(r.Context())
}

type balanceResponse struct {
	AccountID string     `json:"account_id"`
	Balance   int64      `json:"balance"` // USD cents
	Since     *time.Time `json:"since,omitempty"`
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	since, err := h.boundary(r)
	if err != nil {
		http.Error(w, "invalid since date", http.StatusBadRequest)
		return
	}

	bal, err := h.ledger.Balance(r.Context(), id, ledger.BalanceOptions{Since: since})
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownAccount) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(balanceResponse{AccountID: id, Balance: bal, Since: since}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type breakdownLineResponse struct {
	EntryID     string       `json:"entry_id"`
	Date        time.Time    `json:"date"`
	Description string       `json:"description"`
	Side        account.Side `json:"side"`
	Delta       int64        `json:"delta"`
	Running     int64        `json:"running"`
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	since, err := h.boundary(r)
	if err != nil {
		http.Error(w, "invalid since date", http.StatusBadRequest)
		return
	}

	lines, err := h.ledger.Breakdown(r.Context(), id, ledger.BalanceOptions{Since: since})
	if err != nil {
		if errors.Is(err, ledger.ErrUnknownAccount) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]breakdownLineResponse, len(lines))
	for i, line := range lines {
		resp[i] = breakdownLineResponse{
			EntryID:     line.Entry.ID,
			Date:        line.Entry.Date,
			Description: line.Entry.Description,
			Side:        line.Side,
			Delta:       line.Delta,
			Running:     line.Running,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
