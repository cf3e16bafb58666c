package period_test

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
	"github.com/lux2ube/Customer-service-sub002/internal/period"
)

func TestService_Close(t *testing.T) {
	t.Run("SnapshotsEveryLeaf", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := period.NewMockRepository(ctrl)
		accounts := period.NewMockAccounts(ctrl)
		ldg := period.NewMockLedger(ctrl)

		leaves := []*account.Account{
			{ID: account.CodeBank, Type: account.TypeAssets},
			{ID: account.CodeCashSuspense, Type: account.TypeLiabilities},
			{ID: "600042", Type: account.TypeLiabilities},
		}

		repo.EXPECT().PeriodStart(gomock.Any()).Return(nil, nil)
		accounts.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter account.ListFilter) ([]*account.Account, error) {
				require.NotNil(t, filter.IsGroup)
				assert.False(t, *filter.IsGroup)
				return leaves, nil
			})

		ldg.EXPECT().Balance(gomock.Any(), account.CodeBank, ledger.BalanceOptions{}).Return(int64(1000), nil)
		ldg.EXPECT().Balance(gomock.Any(), account.CodeCashSuspense, ledger.BalanceOptions{}).Return(int64(0), nil)
		ldg.EXPECT().Balance(gomock.Any(), "600042", ledger.BalanceOptions{}).Return(int64(1000), nil)

		repo.EXPECT().
			Close(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, closedAt time.Time, snapshots []period.Snapshot) error {
				require.Len(t, snapshots, 3)
				assert.Equal(t, "600042", snapshots[2].AccountID)
				assert.Equal(t, int64(1000), snapshots[2].Balance)
				assert.Equal(t, closedAt, snapshots[2].ClosedAt)
				return nil
			})

		svc := period.NewService(repo, accounts, ldg)
		result, err := svc.Close(context.Background())
		require.NoError(t, err)
		assert.Len(t, result.Snapshots, 3)
		assert.WithinDuration(t, time.Now(), result.ClosedAt, time.Minute)
	})

	t.Run("UsesCurrentBoundary", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := period.NewMockRepository(ctrl)
		accounts := period.NewMockAccounts(ctrl)
		ldg := period.NewMockLedger(ctrl)

		boundary := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		repo.EXPECT().PeriodStart(gomock.Any()).Return(&boundary, nil)
		accounts.EXPECT().List(gomock.Any(), gomock.Any()).
			Return([]*account.Account{{ID: account.CodeBank}}, nil)
		// A second close snapshots only the balance accrued since the last
		// boundary; earlier history stays behind prior snapshots.
		ldg.EXPECT().Balance(gomock.Any(), account.CodeBank, ledger.BalanceOptions{Since: &boundary}).
			Return(int64(250), nil)
		repo.EXPECT().Close(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		svc := period.NewService(repo, accounts, ldg)
		result, err := svc.Close(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(250), result.Snapshots[0].Balance)
	})

	t.Run("StoreError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := period.NewMockRepository(ctrl)
		accounts := period.NewMockAccounts(ctrl)
		ldg := period.NewMockLedger(ctrl)

		repo.EXPECT().PeriodStart(gomock.Any()).Return(nil, nil)
		accounts.EXPECT().List(gomock.Any(), gomock.Any()).
			Return([]*account.Account{{ID: account.CodeBank}}, nil)
		ldg.EXPECT().Balance(gomock.Any(), account.CodeBank, gomock.Any()).Return(int64(0), nil)
		repo.EXPECT().Close(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("connection reset"))

		svc := period.NewService(repo, accounts, ldg)
		_, err := svc.Close(context.Background())
		assert.Error(t, err)
	})
}

func TestService_Boundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := period.NewMockRepository(ctrl)
	boundary := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().PeriodStart(gomock.Any()).Return(&boundary, nil)

	svc := period.NewService(repo, nil, nil)
	got, err := svc.Boundary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &boundary, got)
}
