package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lux2ube/Customer-service-sub002/internal/account"
	"github.com/lux2ube/Customer-service-sub002/internal/ids"
	"github.com/lux2ube/Customer-service-sub002/internal/ledger"
	"github.com/lux2ube/Customer-service-sub002/internal/record"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=reconcile

// Repository performs the atomic writes of the protocol. Assign and Unassign
// run the journal-entry insert and the guarded record update as one store
// transaction; the conditional update on the record row is the idempotency
// guard, so concurrent calls for the same record cannot both post.
type Repository interface {
	Assign(ctx context.Context, update AssignUpdate) error
	Unassign(ctx context.Context, update UnassignUpdate) error
}

// AccountResolver maps records and clients to their ledger accounts.
// Satisfied by account.Service.
type AccountResolver interface {
	SuspenseAccount(ctx context.Context, kind string) (*account.Account, error)
	ClientAccount(ctx context.Context, clientID int64, clientName string) (*account.Account, error)
}

// Ledger supplies derived balances for the audit snapshots.
type Ledger interface {
	Balance(ctx context.Context, accountID string, opts ledger.BalanceOptions) (int64, error)
}

// Records loads records for validation; all mutation goes through Repository.
type Records interface {
	Get(ctx context.Context, id string) (*record.Record, error)
}

// Clients resolves clients and remembers their liability account.
type Clients interface {
	Get(ctx context.Context, id int64) (*Client, error)
	LinkAccount(ctx context.Context, id int64, accountID string) error
}

// Client is the slice of client state the protocol needs.
type Client struct {
	ID        int64
	Name      string
	AccountID string
}

// Notifier is told about terminal protocol outcomes after they are durable.
// Failures are logged and never affect ledger state.
type Notifier interface {
	RecordAssigned(ctx context.Context, rec *record.Record)
	RecordUnassigned(ctx context.Context, rec *record.Record)
}

type AssignUpdate struct {
	Entry          *ledger.Entry
	RecordID       string
	ClientID       int64
	SuspenseBefore int64
	SuspenseAfter  int64
}

type UnassignUpdate struct {
	Entry    *ledger.Entry
	RecordID string
}

type Service struct {
	repo     Repository
	accounts AccountResolver
	ledger   Ledger
	records  Records
	clients  Clients
	notifier Notifier
}

func NewService(repo Repository, accounts AccountResolver, ldg Ledger, records Records, clients Clients, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		ledger:   ldg,
		records:  records,
		clients:  clients,
		notifier: notifier,
	}
}

// Assign attributes an unmatched record to a client by posting one transfer
// entry between the suspense account and the client's liability account.
// A record can be assigned at most once: if it already carries a client or a
// transfer entry the call fails with record.ErrAlreadyMatched and no entry is
// posted, which makes retries safe.
func (s *Service) Assign(ctx context.Context, recordID string, clientID int64) (*record.Record, error) {
	rec, err := s.records.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if rec.ClientID != nil || rec.TransferEntryID != nil {
		return nil, fmt.Errorf("%w: %s", record.ErrAlreadyMatched, recordID)
	}

	if rec.Status != record.StatusUnmatched {
		return nil, fmt.Errorf("%w: %s is %s", record.ErrTerminal, recordID, rec.Status)
	}

	c, err := s.clients.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}

	suspense, err := s.accounts.SuspenseAccount(ctx, string(rec.Kind))
	if err != nil {
		return nil, err
	}

	clientAcct, err := s.accounts.ClientAccount(ctx, c.ID, c.Name)
	if err != nil {
		return nil, err
	}

	if c.AccountID == "" {
		if err := s.clients.LinkAccount(ctx, c.ID, clientAcct.ID); err != nil {
			return nil, err
		}
	}

	before, err := s.ledger.Balance(ctx, suspense.ID, ledger.BalanceOptions{})
	if err != nil {
		return nil, err
	}

	entry := transferEntry(rec, suspense.ID, clientAcct.ID, false)

	after := before - entry.AmountUSD
	if rec.Type == record.TypeDebit {
		after = before + entry.AmountUSD
	}

	if err := s.repo.Assign(ctx, AssignUpdate{
		Entry:          entry,
		RecordID:       rec.ID,
		ClientID:       c.ID,
		SuspenseBefore: before,
		SuspenseAfter:  after,
	}); err != nil {
		return nil, err
	}

	rec.ClientID = &c.ID
	rec.Status = record.StatusMatched
	rec.TransferEntryID = &entry.ID
	rec.SuspenseBefore = &before
	rec.SuspenseAfter = &after

	s.notify(ctx, rec, true)

	return rec, nil
}

// Unassign reverses an assignment. The original transfer entry stays in the
// journal — the ledger is append-only — and a reversing entry restores both
// balances before the record returns to unmatched.
func (s *Service) Unassign(ctx context.Context, recordID string) (*record.Record, error) {
	rec, err := s.records.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if rec.TransferEntryID == nil || rec.ClientID == nil {
		return nil, fmt.Errorf("%w: %s", record.ErrNotAssigned, recordID)
	}

	// Used and cancelled records keep their transfer entry but are done;
	// only a matched record can come back to the queue.
	if rec.Status != record.StatusMatched {
		return nil, fmt.Errorf("%w: %s is %s", record.ErrTerminal, recordID, rec.Status)
	}

	c, err := s.clients.Get(ctx, *rec.ClientID)
	if err != nil {
		return nil, err
	}

	suspense, err := s.accounts.SuspenseAccount(ctx, string(rec.Kind))
	if err != nil {
		return nil, err
	}

	clientAcct, err := s.accounts.ClientAccount(ctx, c.ID, c.Name)
	if err != nil {
		return nil, err
	}

	entry := transferEntry(rec, suspense.ID, clientAcct.ID, true)

	if err := s.repo.Unassign(ctx, UnassignUpdate{Entry: entry, RecordID: rec.ID}); err != nil {
		return nil, err
	}

	rec.ClientID = nil
	rec.Status = record.StatusUnmatched
	rec.TransferEntryID = nil
	rec.SuspenseBefore = nil
	rec.SuspenseAfter = nil

	s.notify(ctx, rec, false)

	return rec, nil
}

// transferEntry builds the transfer between suspense and client accounts.
// Credit records (money received) move value suspense -> client; debit records
// the opposite. Reversing swaps the legs.
func transferEntry(rec *record.Record, suspenseID, clientAccountID string, reversing bool) *ledger.Entry {
	debit, credit := suspenseID, clientAccountID
	description := fmt.Sprintf("assign %s record %s", rec.Kind, rec.ID)

	if rec.Type == record.TypeDebit {
		debit, credit = credit, debit
	}

	if reversing {
		debit, credit = credit, debit
		description = fmt.Sprintf("unassign %s record %s", rec.Kind, rec.ID)
	}

	return &ledger.Entry{
		ID:              ids.New(),
		Date:            time.Now().UTC(),
		Description:     description,
		DebitAccountID:  debit,
		CreditAccountID: credit,
		DebitAmount:     rec.Amount,
		CreditAmount:    rec.Amount,
		AmountUSD:       rec.AmountUSD,
	}
}

func (s *Service) notify(ctx context.Context, rec *record.Record, assigned bool) {
	if s.notifier == nil {
		return
	}

	// Notifications run after the write is durable; they can fail freely.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("notifier panicked", "record", rec.ID, "panic", r)
		}
	}()

	if assigned {
		s.notifier.RecordAssigned(ctx, rec)
	} else {
		s.notifier.RecordUnassigned(ctx, rec)
	}
}
