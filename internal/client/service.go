package client

import (
	"context"
	"fmt"
	"strings"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	GetClient(ctx context.Context, id int64) (*Client, error)
	UpdateAccountID(ctx context.Context, id int64, accountID string) error
	ListClients(ctx context.Context) ([]*Client, error)

	FindByPhone(ctx context.Context, phone string) (*Client, error)
	FindByName(ctx context.Context, name string) (*Client, error)
	SearchByName(ctx context.Context, fragment string) ([]*Client, error)

	AddBlacklistEntry(ctx context.Context, entry *BlacklistEntry) error
	FindBlacklistEntry(ctx context.Context, kind BlacklistKind, value string) (*BlacklistEntry, error)
	ListBlacklist(ctx context.Context) ([]*BlacklistEntry, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name  string
	Phone string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	c := &Client{Name: name, Phone: strings.TrimSpace(params.Phone)}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.ListClients(ctx)
}

// LinkAccount records the liability account assigned to a client. Called by
// reconciliation the first time funds are attributed to the client.
func (s *Service) LinkAccount(ctx context.Context, id int64, accountID string) error {
	return s.repo.UpdateAccountID(ctx, id, accountID)
}

func (s *Service) FindByPhone(ctx context.Context, phone string) (*Client, error) {
	return s.repo.FindByPhone(ctx, phone)
}

func (s *Service) FindByName(ctx context.Context, name string) (*Client, error) {
	return s.repo.FindByName(ctx, name)
}

func (s *Service) SearchByName(ctx context.Context, fragment string) ([]*Client, error) {
	return s.repo.SearchByName(ctx, fragment)
}

func (s *Service) Blacklist(ctx context.Context, kind BlacklistKind, value, reason string) (*BlacklistEntry, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("blacklist value is required")
	}

	entry := &BlacklistEntry{Kind: kind, Value: value, Reason: reason}
	if err := s.repo.AddBlacklistEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// IsBlacklisted reports whether a sender name or phone is flagged.
func (s *Service) IsBlacklisted(ctx context.Context, kind BlacklistKind, value string) (bool, error) {
	entry, err := s.repo.FindBlacklistEntry(ctx, kind, value)
	if err != nil {
		return false, err
	}

	return entry != nil, nil
}

func (s *Service) ListBlacklist(ctx context.Context) ([]*BlacklistEntry, error) {
	return s.repo.ListBlacklist(ctx)
}
