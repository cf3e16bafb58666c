package sms

import (
	"errors"
	"regexp"
)

// Type is the direction a message describes, from the business's side.
type Type string

const (
	TypeCredit Type = "credit" // money received
	TypeDebit  Type = "debit"  // money sent out
)

// Source is the asset the message describes a movement on.
type Source string

const (
	SourceCash   Source = "cash"
	SourceBank   Source = "bank"
	SourceWallet Source = "wallet"
)

// ParsedSMS is the structured result of a matched message. Amount is in minor
// units of Currency. Input comes from untrusted sources and is validated
// before anything is posted.
type ParsedSMS struct {
	Type     Type
	Source   Source
	Amount   int64
	Currency string
	Person   string
}

// Rule pairs a pattern with the meaning of its captures. Patterns use the
// named groups "amount", "person" and optionally "currency"; Type, Source and
// Currency supply whatever the pattern does not capture.
type Rule struct {
	Name     string
	Pattern  *regexp.Regexp
	Type     Type
	Source   Source
	Currency string
}

// ErrNoRuleMatched marks a message no rule recognized. Callers record these
// for manual resolution; they are never silently dropped.
var ErrNoRuleMatched = errors.New("no parsing rule matched")
