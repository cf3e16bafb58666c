// Package matching resolves the sender of a parsed message to a known client.
// Rules run in a fixed priority order and only a single unambiguous candidate
// counts as a match; anything less confident is left for manual handling.
package matching

import (
	"errors"

	"github.com/lux2ube/Customer-service-sub002/internal/client"
)

// Rule identifies which matching rule produced a result, for audit.
type Rule string

const (
	RuleExactPhone  Rule = "exact_phone"
	RuleExactName   Rule = "exact_name"
	RuleFirstLast   Rule = "first_last_name"
	RulePartialName Rule = "partial_name"
)

// Query is the sender information extracted from a message.
type Query struct {
	Person string
	Phone  string
}

// Match is a successful resolution.
type Match struct {
	Client *client.Client
	Rule   Rule
}

// ErrBlacklisted short-circuits matching: the record must be flagged instead
// of assigned.
var ErrBlacklisted = errors.New("sender is blacklisted")
