package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lux2ube/Customer-service-sub002/internal/account"
	"github.com/lux2ube/Customer-service-sub002/internal/ledger"
	"github.com/lux2ube/Customer-service-sub002/internal/reconcile"
	"github.com/lux2ube/Customer-service-sub002/internal/record"
)

type fixture struct {
	repo     *reconcile.MockRepository
	accounts *reconcile.MockAccountResolver
	ledger   *reconcile.MockLedger
	records  *reconcile.MockRecords
	clients  *reconcile.MockClients
	notifier *reconcile.MockNotifier
	svc      *reconcile.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		repo:     reconcile.NewMockRepository(ctrl),
		accounts: reconcile.NewMockAccountResolver(ctrl),
		ledger:   reconcile.NewMockLedger(ctrl),
		records:  reconcile.NewMockRecords(ctrl),
		clients:  reconcile.NewMockClients(ctrl),
		notifier: reconcile.NewMockNotifier(ctrl),
	}
	f.svc = reconcile.NewService(f.repo, f.accounts, f.ledger, f.records, f.clients, f.notifier)

	return f
}

func unmatchedRecord() *record.Record {
	return &record.Record{
		ID:        "01REC",
		Kind:      record.KindCash,
		Type:      record.TypeCredit,
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:    500000,
		Currency:  "YER",
		AmountUSD: 1000,
		Status:    record.StatusUnmatched,
	}
}

func TestService_Assign(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		rec := unmatchedRecord()

		f.records.EXPECT().Get(gomock.Any(), "01REC").Return(rec, nil)
		f.clients.EXPECT().Get(gomock.Any(), int64(42)).
			Return(&reconcile.Client{ID: 42, Name: "Mohammed Ali", AccountID: "600042"}, nil)
		f.accounts.EXPECT().SuspenseAccount(gomock.Any(), "cash").
			Return(&account.Account{ID: account.CodeCashSuspense, Type: account.TypeLiabilities}, nil)
		f.accounts.EXPECT().ClientAccount(gomock.Any(), int64(42), "Mohammed Ali").
			Return(&account.Account{ID: "600042", Type: account.TypeLiabilities}, nil)
		f.ledger.EXPECT().Balance(gomock.Any(), account.CodeCashSuspense, ledger.BalanceOptions{}).
			Return(int64(1000), nil)

		f.repo.EXPECT().
			Assign(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update reconcile.AssignUpdate) error {
				assert.Equal(t, "01REC", update.RecordID)
				assert.Equal(t, int64(42), update.ClientID)
				// Suspense is debited, client credited.
				assert.Equal(t, account.CodeCashSuspense, update.Entry.DebitAccountID)
				assert.Equal(t, "600042", update.Entry.CreditAccountID)
				assert.Equal(t, int64(500000), update.Entry.DebitAmount)
				assert.Equal(t, int64(1000), update.Entry.AmountUSD)
				// Audit snapshots: suspense drops by the transferred value.
				assert.Equal(t, int64(1000), update.SuspenseBefore)
				assert.Equal(t, int64(0), update.SuspenseAfter)
				return nil
			})
		f.notifier.EXPECT().RecordAssigned(gomock.Any(), gomock.Any())

		got, err := f.svc.Assign(context.Background(), "01REC", 42)
		require.NoError(t, err)
		assert.Equal(t, record.StatusMatched, got.Status)
		require.NotNil(t, got.ClientID)
		assert.Equal(t, int64(42), *got.ClientID)
		require.NotNil(t, got.TransferEntryID)
		assert.NotEmpty(t, *got.TransferEntryID)
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture(t)

		f.records.EXPECT().Get(gomock.Any(), "missing").Return(nil, record.ErrNotFound)

		_, err := f.svc.Assign(context.Background(), "missing", 42)
		assert.ErrorIs(t, err, record.ErrNotFound)
	})

	t.Run("AlreadyMatched", func(t *testing.T) {
		f := newFixture(t)

		rec := unmatchedRecord()
		entryID := "01OLD"
		clientID := int64(7)
		rec.Status = record.StatusMatched
		rec.ClientID = &clientID
		rec.TransferEntryID = &entryID

		f.records.EXPECT().Get(gomock.Any(), "01REC").Return(rec, nil)

		// No entry is posted; the repository is never touched.
		_, err := f.svc.Assign(context.Background(), "01REC", 42)
		assert.ErrorIs(t, err, record.ErrAlreadyMatched)
	})

	t.Run("CancelledRecord", func(t *testing.T) {
		f := newFixture(t)

		rec := unmatchedRecord()
		rec.Status = record.StatusCancelled

		f.records.EXPECT().Get(gomock.Any(), "01REC").Return(rec, nil)

		_, err := f.svc.Assign(context.Background(), "01REC", 42)
		assert.ErrorIs(t, err, record.ErrTerminal)
	})

	t.Run("ConcurrentClaimLost", func(t *testing.T) {
		f := newFixture(t)
		rec := unmatchedRecord()

		f.records.EXPECT().Get(gomock.Any(), "01REC").Return(rec, nil)
		f.clients.EXPECT().Get(gomock.Any(), int64(42)).
			Return(&reconcile.Client{ID: 42, Name: "Mohammed Ali", AccountID: "600042"}, nil)
		f.accounts.EXPECT().SuspenseAccount(gomock.Any(), "cash").
			Return(&account.Account{ID: account.CodeCashSuspense}, nil)
		f.accounts.EXPECT().ClientAccount(gomock.Any(), int64(42), "Mohammed Ali").
			Return(&account.Account{ID: "600042"}, nil)
		f.ledger.EXPECT().Balance(gomock.Any(), account.CodeCashSuspense, ledger.BalanceOptions{}).
			Return(int64(1000), nil)
		// Another handler won the conditional update.
		f.repo.EXPECT().Assign(gomock.Any(), gomock.Any()).
			Return(record.ErrAlreadyMatched)

		_, err := f.svc.Assign(context.Background(), "01REC", 42)
		assert.ErrorIs(t, err, record.ErrAlreadyMatched)
	})

	t.Run("LinksAccountOnFirstAssignment", func(t *testing.T) {
		f := newFixture(t)
		rec := unmatchedRecord()

		f.records.EXPECT().Get(gomock.Any(), "01REC").Return(rec, nil)
		f.clients.EXPECT().Get(gomock.Any(), int64(42)).
			Return(&reconcile.Client{ID: 42, Name: "Mohammed Ali"}, nil)
		f.accounts.EXPECT().SuspenseAccount(gomock.Any(), "cash").
			Return(&account.Account{ID: account.CodeCashSuspense}, nil)
		f.accounts.EXPECT().ClientAccount(gomock.Any(), int64(42), "Mohammed Ali").
			Return(&account.Account{ID: "600042"}, nil)
		f.clients.EXPECT().LinkAccount(gomock.Any(), int64(42), "600042").Return(nil)
		f.ledger.EXPECT().Balance(gomock.Any(), account.CodeCashSuspense, ledger.BalanceOptions{}).
			Return(int64(1000), nil)
		f.repo.EXPECT().Assign(gomock.Any(), gomock.Any()).Return(nil)
		f.notifier.EXPECT().RecordAssigned(gomock.Any(), gomock.Any())

		_, err := f.svc.Assign(context.Background(), "01REC", 42)
		require.NoError(t, err)
	})
}

func TestService_Unassign(t *testing.T) {
	t.Run("PostsReversingEntry", func(t *testing.T) {
		f := newFixture(t)

		rec := unmatchedRecord()
		entryID := "01FWD"
		clientID := int64(42)
		rec.Status = record.StatusMatched
		rec.ClientID = &clientID
		rec.TransferEntryID = &entryID

		f.records.EXPECT().Get(gomock.Any(), "01REC").Return(rec, nil)
		f.clients.EXPECT().Get(gomock.Any(), int64(42)).
			Return(&reconcile.Client{ID: 42, Name: "Mohammed Ali", AccountID: "600042"}, nil)
		f.accounts.EXPECT().SuspenseAccount(gomock.Any(), "cash").
			Return(&account.Account{ID: account.CodeCashSuspense}, nil)
		f.accounts.EXPECT().ClientAccount(gomock.Any(), int64(42), "Mohammed Ali").
			Return(&account.Account{ID: "600042"}, nil)

		f.repo.EXPECT().
			Unassign(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update reconcile.UnassignUpdate) error {
				// Reversed legs: client debited, suspense credited. The
				// original entry is untouched.
				assert.Equal(t, "600042", update.Entry.DebitAccountID)
				assert.Equal(t, account.CodeCashSuspense, update.Entry.CreditAccountID)
				assert.Equal(t, int64(1000), update.Entry.AmountUSD)
				assert.NotEqual(t, entryID, update.Entry.ID)
				return nil
			})
		f.notifier.EXPECT().RecordUnassigned(gomock.Any(), gomock.Any())

		got, err := f.svc.Unassign(context.Background(), "01REC")
		require.NoError(t, err)
		assert.Equal(t, record.StatusUnmatched, got.Status)
		assert.Nil(t, got.ClientID)
		assert.Nil(t, got.TransferEntryID)
	})

	t.Run("NotAssigned", func(t *testing.T) {
		f := newFixture(t)

		f.records.EXPECT().Get(gomock.Any(), "01REC").Return(unmatchedRecord(), nil)

		_, err := f.svc.Unassign(context.Background(), "01REC")
		assert.ErrorIs(t, err, record.ErrNotAssigned)
	})

	t.Run("UsedRecord", func(t *testing.T) {
		f := newFixture(t)

		rec := unmatchedRecord()
		entryID := "01FWD"
		clientID := int64(42)
		rec.Status = record.StatusUsed
		rec.ClientID = &clientID
		rec.TransferEntryID = &entryID

		f.records.EXPECT().Get(gomock.Any(), "01REC").Return(rec, nil)

		// No reversing entry is posted for a consumed record.
		_, err := f.svc.Unassign(context.Background(), "01REC")
		assert.ErrorIs(t, err, record.ErrTerminal)
	})
}

func TestService_AssignDebitRecord(t *testing.T) {
	// An outflow record moves value the other way: client -> suspense.
	f := newFixture(t)

	rec := unmatchedRecord()
	rec.Type = record.TypeDebit

	f.records.EXPECT().Get(gomock.Any(), "01REC").Return(rec, nil)
	f.clients.EXPECT().Get(gomock.Any(), int64(42)).
		Return(&reconcile.Client{ID: 42, Name: "Mohammed Ali", AccountID: "600042"}, nil)
	f.accounts.EXPECT().SuspenseAccount(gomock.Any(), "cash").
		Return(&account.Account{ID: account.CodeCashSuspense}, nil)
	f.accounts.EXPECT().ClientAccount(gomock.Any(), int64(42), "Mohammed Ali").
		Return(&account.Account{ID: "600042"}, nil)
	f.ledger.EXPECT().Balance(gomock.Any(), account.CodeCashSuspense, ledger.BalanceOptions{}).
		Return(int64(0), nil)

	f.repo.EXPECT().
		Assign(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update reconcile.AssignUpdate) error {
			assert.Equal(t, "600042", update.Entry.DebitAccountID)
			assert.Equal(t, account.CodeCashSuspense, update.Entry.CreditAccountID)
			assert.Equal(t, int64(0), update.SuspenseBefore)
			assert.Equal(t, int64(1000), update.SuspenseAfter)
			return nil
		})
	f.notifier.EXPECT().RecordAssigned(gomock.Any(), gomock.Any())

	_, err := f.svc.Assign(context.Background(), "01REC", 42)
	require.NoError(t, err)
}
