package account

import (
	"context"
	"errors"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	CreateAccount(ctx context.Context, acct *Account) error
	GetAccount(ctx context.Context, id string) (*Account, error)
	ListAccounts(ctx context.Context, filter ListFilter) ([]*Account, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ID       string
	Name     string
	Type     Type
	IsGroup  bool
	Currency string
	ParentID string
}

type ListFilter struct {
	IsGroup  *bool
	Type     *Type
	Currency *string
}

// Create registers a new account. The parent, when given, must exist and be a
// group account.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	if params.ID == "" || params.Name == "" {
		return nil, fmt.Errorf("%w: id and name are required", ErrInvalid)
	}

	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, params.Type)
	}

	if params.ParentID != "" {
		parent, err := s.repo.GetAccount(ctx, params.ParentID)
		if err != nil {
			return nil, fmt.Errorf("resolving parent %s: %w", params.ParentID, err)
		}

		if !parent.IsGroup {
			return nil, fmt.Errorf("%w: %s", ErrParentNotGroup, params.ParentID)
		}
	}

	acct := &Account{
		ID:       params.ID,
		Name:     params.Name,
		Type:     params.Type,
		IsGroup:  params.IsGroup,
		Currency: params.Currency,
		ParentID: params.ParentID,
	}
	if err := s.repo.CreateAccount(ctx, acct); err != nil {
		return nil, err
	}

	return acct, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, filter)
}

// EnsureChart seeds any missing accounts of the default chart. Safe to call on
// every startup.
func (s *Service) EnsureChart(ctx context.Context) error {
	for _, params := range DefaultChart {
		_, err := s.repo.GetAccount(ctx, params.ID)
		if err == nil {
			continue
		}

		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("checking account %s: %w", params.ID, err)
		}

		if _, err := s.Create(ctx, params); err != nil && !errors.Is(err, ErrExists) {
			return fmt.Errorf("seeding account %s: %w", params.ID, err)
		}
	}

	return nil
}

// SuspenseAccount returns the holding account for unattributed funds of the
// given record kind ("cash" or "usdt").
func (s *Service) SuspenseAccount(ctx context.Context, kind string) (*Account, error) {
	var id string

	switch kind {
	case "usdt":
		id = CodeUSDTSuspense
	case "cash":
		id = CodeCashSuspense
	default:
		return nil, fmt.Errorf("%w: no suspense account for kind %q", ErrNotFound, kind)
	}

	return s.repo.GetAccount(ctx, id)
}

// ClientAccount resolves the liability account for a client, creating the leaf
// under the clients group on first use.
func (s *Service) ClientAccount(ctx context.Context, clientID int64, clientName string) (*Account, error) {
	id := ClientAccountID(clientID)

	acct, err := s.repo.GetAccount(ctx, id)
	if err == nil {
		return acct, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return s.Create(ctx, CreateParams{
		ID:       id,
		Name:     clientName,
		Type:     TypeLiabilities,
		ParentID: CodeClientsGroup,
	})
}
