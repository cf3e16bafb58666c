package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lux2ube/Customer-service-sub002/internal/client"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=matching

// ClientDirectory is the slice of the client service the matcher uses.
type ClientDirectory interface {
	FindByPhone(ctx context.Context, phone string) (*client.Client, error)
	FindByName(ctx context.Context, name string) (*client.Client, error)
	SearchByName(ctx context.Context, fragment string) ([]*client.Client, error)
	IsBlacklisted(ctx context.Context, kind client.BlacklistKind, value string) (bool, error)
}

type Service struct {
	clients ClientDirectory
}

func NewService(clients ClientDirectory) *Service {
	return &Service{clients: clients}
}

// Match runs the rule sequence: blacklist check, exact phone, exact full
// name, first+last name, partial name. It returns nil without error when no
// rule produces exactly one candidate.
func (s *Service) Match(ctx context.Context, q Query) (*Match, error) {
	phone := strings.TrimSpace(q.Phone)
	person := strings.Join(strings.Fields(q.Person), " ")

	if phone != "" {
		blocked, err := s.clients.IsBlacklisted(ctx, client.BlacklistPhone, phone)
		if err != nil {
			return nil, err
		}

		if blocked {
			return nil, fmt.Errorf("%w: phone %s", ErrBlacklisted, phone)
		}
	}

	if person != "" {
		blocked, err := s.clients.IsBlacklisted(ctx, client.BlacklistName, person)
		if err != nil {
			return nil, err
		}

		if blocked {
			return nil, fmt.Errorf("%w: %s", ErrBlacklisted, person)
		}
	}

	if phone != "" {
		c, err := s.clients.FindByPhone(ctx, phone)
		if err == nil {
			return &Match{Client: c, Rule: RuleExactPhone}, nil
		}

		if !errors.Is(err, client.ErrNotFound) {
			return nil, err
		}
	}

	if person == "" {
		return nil, nil
	}

	c, err := s.clients.FindByName(ctx, person)
	if err == nil {
		return &Match{Client: c, Rule: RuleExactName}, nil
	}

	if !errors.Is(err, client.ErrNotFound) {
		return nil, err
	}

	if m, err := s.matchFirstLast(ctx, person); m != nil || err != nil {
		return m, err
	}

	return s.matchPartial(ctx, person)
}

// matchFirstLast looks for exactly one client whose name contains both the
// first and last token of the sender name.
func (s *Service) matchFirstLast(ctx context.Context, person string) (*Match, error) {
	tokens := strings.Fields(person)
	if len(tokens) < 2 {
		return nil, nil
	}

	first, last := tokens[0], tokens[len(tokens)-1]

	candidates, err := s.clients.SearchByName(ctx, first)
	if err != nil {
		return nil, err
	}

	var hits []*client.Client

	for _, c := range candidates {
		name := strings.ToLower(c.Name)
		if strings.Contains(name, strings.ToLower(first)) && strings.Contains(name, strings.ToLower(last)) {
			hits = append(hits, c)
		}
	}

	if len(hits) == 1 {
		return &Match{Client: hits[0], Rule: RuleFirstLast}, nil
	}

	return nil, nil
}

// matchPartial accepts a substring hit only when it is unique; several
// candidates mean a human has to pick.
func (s *Service) matchPartial(ctx context.Context, person string) (*Match, error) {
	candidates, err := s.clients.SearchByName(ctx, person)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 1 {
		return &Match{Client: candidates[0], Rule: RulePartialName}, nil
	}

	return nil, nil
}
