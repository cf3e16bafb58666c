package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Client is a known customer of the exchange. AccountID references the
// client's liability account in the chart of accounts.
type Client struct {
	ID        int64
	Name      string
	Phone     string
	AccountID string
	CreatedAt time.Time
}

// BlacklistKind distinguishes what a blacklist entry matches against.
type BlacklistKind string

const (
	BlacklistName  BlacklistKind = "name"
	BlacklistPhone BlacklistKind = "phone"
)

// BlacklistEntry flags a sender name or phone so the matcher refuses to
// auto-assign records from it.
type BlacklistEntry struct {
	ID        uuid.UUID
	Kind      BlacklistKind
	Value     string
	Reason    string
	CreatedAt time.Time
}

var (
	ErrNotFound = errors.New("client not found")
	ErrExists   = errors.New("client already exists")
)
