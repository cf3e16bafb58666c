package record

import (
	"context"
	"fmt"
	"time"

	"github.com/lux2ube/Customer-service-sub002/internal/ids"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=record
type Repository interface {
	CreateRecord(ctx context.Context, rec *Record) error
	GetRecord(ctx context.Context, id string) (*Record, error)
	ListRecords(ctx context.Context, filter ListFilter) ([]*Record, error)

	// TransitionStatus updates a record's status only when it currently has
	// one of the expected statuses; returns ErrTerminal otherwise.
	TransitionStatus(ctx context.Context, id string, from []Status, to Status) error

	FlagRecord(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Kind       Kind
	Type       Type
	Date       time.Time
	Amount     int64
	Currency   string
	AmountUSD  int64
	SenderName string
	RawMessage string
}

type ListFilter struct {
	Status   *Status
	Kind     *Kind
	ClientID *int64
	Flagged  *bool
}

// Create stores a new unmatched record. Ingestion calls this after posting
// the suspense entry.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Record, error) {
	if !params.Kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, params.Kind)
	}

	if params.Amount <= 0 || params.AmountUSD <= 0 {
		return nil, fmt.Errorf("%w: amount=%d usd=%d", ErrInvalidAmount, params.Amount, params.AmountUSD)
	}

	rec := &Record{
		ID:         ids.New(),
		Kind:       params.Kind,
		Type:       params.Type,
		Date:       params.Date,
		Amount:     params.Amount,
		Currency:   params.Currency,
		AmountUSD:  params.AmountUSD,
		Status:     StatusUnmatched,
		SenderName: params.SenderName,
		RawMessage: params.RawMessage,
	}
	if err := s.repo.CreateRecord(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.GetRecord(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	return s.repo.ListRecords(ctx, filter)
}

// Flag marks a record for manual review. Set by ingestion when the sender
// is blacklisted; the flag survives on the row so the manual queue can still
// see it after the ingest response is gone.
func (s *Service) Flag(ctx context.Context, id string) error {
	return s.repo.FlagRecord(ctx, id)
}

// Cancel moves an unmatched record to the cancelled terminal state. Matched
// records must be unassigned first so the ledger transfer is reversed.
func (s *Service) Cancel(ctx context.Context, id string) error {
	return s.repo.TransitionStatus(ctx, id, []Status{StatusUnmatched}, StatusCancelled)
}

// MarkUsed finalizes a matched record once the attributed funds have been
// consumed downstream.
func (s *Service) MarkUsed(ctx context.Context, id string) error {
	return s.repo.TransitionStatus(ctx, id, []Status{StatusMatched}, StatusUsed)
}
