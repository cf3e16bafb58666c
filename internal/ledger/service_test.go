package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lux2ube/Customer-service-sub002/internal/account"
	"github.com/lux2ube/Customer-service-sub002/internal/ledger"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func leafAccount(id string, typ account.Type) *account.Account {
	return &account.Account{ID: id, Name: id, Type: typ}
}

func TestService_Post(t *testing.T) {
	validParams := ledger.PostParams{
		Date:            date(2024, 3, 1),
		Description:     "cash received",
		DebitAccountID:  account.CodeCashBox,
		CreditAccountID: account.CodeCashSuspense,
		DebitAmount:     500000,
		CreditAmount:    500000,
		AmountUSD:       1000,
	}

	type testCase struct {
		name      string
		params    ledger.PostParams
		setupMock func(repo *ledger.MockRepository, accts *ledger.MockAccountDirectory)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: validParams,
			setupMock: func(repo *ledger.MockRepository, accts *ledger.MockAccountDirectory) {
				accts.EXPECT().
					Get(gomock.Any(), account.CodeCashBox).
					Return(leafAccount(account.CodeCashBox, account.TypeAssets), nil)
				accts.EXPECT().
					Get(gomock.Any(), account.CodeCashSuspense).
					Return(leafAccount(account.CodeCashSuspense, account.TypeLiabilities), nil)
				repo.EXPECT().
					CreateEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, entry *ledger.Entry) error {
						entry.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "NonPositiveAmount",
			params: func() ledger.PostParams {
				p := validParams
				p.DebitAmount = 0
				return p
			}(),
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name: "NonPositiveUSD",
			params: func() ledger.PostParams {
				p := validParams
				p.AmountUSD = -5
				return p
			}(),
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name: "SameAccount",
			params: func() ledger.PostParams {
				p := validParams
				p.CreditAccountID = p.DebitAccountID
				return p
			}(),
			wantErr: ledger.ErrSameAccount,
		},
		{
			name: "UnknownDebitAccount",
			params: func() ledger.PostParams {
				p := validParams
				p.DebitAccountID = "404"
				return p
			}(),
			setupMock: func(repo *ledger.MockRepository, accts *ledger.MockAccountDirectory) {
				accts.EXPECT().
					Get(gomock.Any(), "404").
					Return(nil, account.ErrNotFound)
			},
			wantErr: ledger.ErrUnknownAccount,
		},
		{
			name: "GroupAccountTarget",
			params: func() ledger.PostParams {
				p := validParams
				p.CreditAccountID = account.CodeLiabilitiesGroup
				return p
			}(),
			setupMock: func(repo *ledger.MockRepository, accts *ledger.MockAccountDirectory) {
				accts.EXPECT().
					Get(gomock.Any(), account.CodeCashBox).
					Return(leafAccount(account.CodeCashBox, account.TypeAssets), nil)
				accts.EXPECT().
					Get(gomock.Any(), account.CodeLiabilitiesGroup).
					Return(&account.Account{ID: account.CodeLiabilitiesGroup, Type: account.TypeLiabilities, IsGroup: true}, nil)
			},
			wantErr: ledger.ErrGroupAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			accts := ledger.NewMockAccountDirectory(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, accts)
			}

			svc := ledger.NewService(repo, accts)
			entry, err := svc.Post(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, entry)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, entry.ID)
			assert.Equal(t, tt.params.AmountUSD, entry.AmountUSD)
		})
	}
}

func TestService_TransientLookupFailure(t *testing.T) {
	// A store failure while resolving an account is not the same thing as
	// the account not existing: the caller may retry the former, never the
	// latter.
	errTransient := errors.New("connection reset")

	t.Run("Post", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		accts := ledger.NewMockAccountDirectory(ctrl)
		accts.EXPECT().
			Get(gomock.Any(), account.CodeCashBox).
			Return(nil, errTransient)

		svc := ledger.NewService(repo, accts)
		_, err := svc.Post(context.Background(), ledger.PostParams{
			Date:            date(2024, 3, 1),
			DebitAccountID:  account.CodeCashBox,
			CreditAccountID: account.CodeCashSuspense,
			DebitAmount:     500000,
			CreditAmount:    500000,
			AmountUSD:       1000,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errTransient)
		assert.NotErrorIs(t, err, ledger.ErrUnknownAccount)
	})

	t.Run("Breakdown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		accts := ledger.NewMockAccountDirectory(ctrl)
		accts.EXPECT().
			Get(gomock.Any(), account.CodeCashBox).
			Return(nil, errTransient)

		svc := ledger.NewService(repo, accts)
		_, err := svc.Breakdown(context.Background(), account.CodeCashBox, ledger.BalanceOptions{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errTransient)
		assert.NotErrorIs(t, err, ledger.ErrUnknownAccount)
	})
}

func TestService_Balance_SignConventions(t *testing.T) {
	// Bank receives $10, suspense holds it, then $10 moves to a client.
	entries := []*ledger.Entry{
		{
			ID: "01A", Date: date(2024, 3, 1),
			DebitAccountID: account.CodeBank, CreditAccountID: account.CodeCashSuspense,
			DebitAmount: 1000, CreditAmount: 1000, AmountUSD: 1000,
		},
		{
			ID: "01B", Date: date(2024, 3, 2),
			DebitAccountID: account.CodeCashSuspense, CreditAccountID: "600042",
			DebitAmount: 1000, CreditAmount: 1000, AmountUSD: 1000,
		},
	}

	onAccount := func(id string) []*ledger.Entry {
		var out []*ledger.Entry
		for _, e := range entries {
			if e.DebitAccountID == id || e.CreditAccountID == id {
				out = append(out, e)
			}
		}
		return out
	}

	type testCase struct {
		name      string
		accountID string
		typ       account.Type
		want      int64
	}

	tests := []testCase{
		// Debit-normal: the bank asset grew by the incoming $10.
		{name: "AssetDebitIncreases", accountID: account.CodeBank, typ: account.TypeAssets, want: 1000},
		// Credit-normal: suspense was credited then debited back to zero.
		{name: "SuspenseCreditedThenCleared", accountID: account.CodeCashSuspense, typ: account.TypeLiabilities, want: 0},
		// Credit-normal: client liability grew by the transfer.
		{name: "ClientCreditIncreases", accountID: "600042", typ: account.TypeLiabilities, want: 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			accts := ledger.NewMockAccountDirectory(ctrl)

			accts.EXPECT().
				Get(gomock.Any(), tt.accountID).
				Return(leafAccount(tt.accountID, tt.typ), nil)
			repo.EXPECT().
				EntriesForAccount(gomock.Any(), tt.accountID, nil).
				Return(onAccount(tt.accountID), nil)

			svc := ledger.NewService(repo, accts)
			bal, err := svc.Balance(context.Background(), tt.accountID, ledger.BalanceOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, bal)
		})
	}
}

func TestService_Balance_PeriodBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	accts := ledger.NewMockAccountDirectory(ctrl)

	boundary := date(2024, 4, 1)

	accts.EXPECT().
		Get(gomock.Any(), "600042").
		Return(leafAccount("600042", account.TypeLiabilities), nil)
	// Only entries on/after the boundary are scanned; the repository applies
	// the date restriction it is given.
	repo.EXPECT().
		EntriesForAccount(gomock.Any(), "600042", &boundary).
		Return(nil, nil)

	svc := ledger.NewService(repo, accts)
	bal, err := svc.Balance(context.Background(), "600042", ledger.BalanceOptions{Since: &boundary})
	require.NoError(t, err)
	assert.Zero(t, bal)
}

func TestService_Breakdown_RunningTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	accts := ledger.NewMockAccountDirectory(ctrl)

	entries := []*ledger.Entry{
		{ID: "01A", Date: date(2024, 3, 1), DebitAccountID: account.CodeBank, CreditAccountID: account.CodeCashSuspense, AmountUSD: 1000},
		{ID: "01B", Date: date(2024, 3, 1), DebitAccountID: account.CodeBank, CreditAccountID: account.CodeCashSuspense, AmountUSD: 500},
		{ID: "01C", Date: date(2024, 3, 3), DebitAccountID: account.CodeCashSuspense, CreditAccountID: "600042", AmountUSD: 700},
	}

	accts.EXPECT().
		Get(gomock.Any(), account.CodeCashSuspense).
		Return(leafAccount(account.CodeCashSuspense, account.TypeLiabilities), nil)
	repo.EXPECT().
		EntriesForAccount(gomock.Any(), account.CodeCashSuspense, nil).
		Return(entries, nil)

	svc := ledger.NewService(repo, accts)
	lines, err := svc.Breakdown(context.Background(), account.CodeCashSuspense, ledger.BalanceOptions{})
	require.NoError(t, err)
	require.Len(t, lines, 3)

	assert.Equal(t, account.SideCredit, lines[0].Side)
	assert.Equal(t, int64(1000), lines[0].Running)
	assert.Equal(t, int64(1500), lines[1].Running)
	assert.Equal(t, account.SideDebit, lines[2].Side)
	assert.Equal(t, int64(-700), lines[2].Delta)
	assert.Equal(t, int64(800), lines[2].Running)
}
