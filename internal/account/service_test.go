package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lux2ube/Customer-service-sub002/internal/account"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    account.CreateParams
		setupMock func(m *account.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: account.CreateParams{
				ID:       "1300",
				Name:     "Exchange Office",
				Type:     account.TypeAssets,
				Currency: "YER",
				ParentID: account.CodeAssetsGroup,
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					GetAccount(gomock.Any(), account.CodeAssetsGroup).
					Return(&account.Account{ID: account.CodeAssetsGroup, IsGroup: true}, nil)
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "MissingIDAndName",
			params: account.CreateParams{
				Type: account.TypeAssets,
			},
			wantErr: account.ErrInvalid,
		},
		{
			name: "InvalidType",
			params: account.CreateParams{
				ID:   "9999",
				Name: "Bad",
				Type: account.Type("weird"),
			},
			wantErr: account.ErrInvalidType,
		},
		{
			name: "ParentNotGroup",
			params: account.CreateParams{
				ID:       "1400",
				Name:     "Nested Leaf",
				Type:     account.TypeAssets,
				ParentID: account.CodeCashBox,
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					GetAccount(gomock.Any(), account.CodeCashBox).
					Return(&account.Account{ID: account.CodeCashBox, IsGroup: false}, nil)
			},
			wantErr: account.ErrParentNotGroup,
		},
		{
			name: "ParentMissing",
			params: account.CreateParams{
				ID:       "1400",
				Name:     "Orphan",
				Type:     account.TypeAssets,
				ParentID: "404",
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					GetAccount(gomock.Any(), "404").
					Return(nil, account.ErrNotFound)
			},
			wantErr: account.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.ID, got.ID)
			assert.Equal(t, tt.params.Type, got.Type)
		})
	}
}

func TestService_SuspenseAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	repo.EXPECT().
		GetAccount(gomock.Any(), account.CodeUSDTSuspense).
		Return(&account.Account{ID: account.CodeUSDTSuspense, Type: account.TypeLiabilities}, nil)

	acct, err := svc.SuspenseAccount(context.Background(), "usdt")
	require.NoError(t, err)
	assert.Equal(t, account.CodeUSDTSuspense, acct.ID)

	_, err = svc.SuspenseAccount(context.Background(), "gold")
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestService_ClientAccount(t *testing.T) {
	t.Run("ExistingAccount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := account.NewMockRepository(ctrl)
		svc := account.NewService(repo)

		repo.EXPECT().
			GetAccount(gomock.Any(), "600042").
			Return(&account.Account{ID: "600042", Type: account.TypeLiabilities}, nil)

		acct, err := svc.ClientAccount(context.Background(), 42, "Mohammed Ali")
		require.NoError(t, err)
		assert.Equal(t, "600042", acct.ID)
	})

	t.Run("CreatesOnFirstUse", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := account.NewMockRepository(ctrl)
		svc := account.NewService(repo)

		repo.EXPECT().
			GetAccount(gomock.Any(), "600042").
			Return(nil, account.ErrNotFound)
		repo.EXPECT().
			GetAccount(gomock.Any(), account.CodeClientsGroup).
			Return(&account.Account{ID: account.CodeClientsGroup, IsGroup: true}, nil)
		repo.EXPECT().
			CreateAccount(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, acct *account.Account) error {
				assert.Equal(t, "600042", acct.ID)
				assert.Equal(t, account.TypeLiabilities, acct.Type)
				assert.Equal(t, account.CodeClientsGroup, acct.ParentID)
				return nil
			})

		acct, err := svc.ClientAccount(context.Background(), 42, "Mohammed Ali")
		require.NoError(t, err)
		assert.Equal(t, "Mohammed Ali", acct.Name)
	})

	t.Run("StoreError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := account.NewMockRepository(ctrl)
		svc := account.NewService(repo)

		repo.EXPECT().
			GetAccount(gomock.Any(), "6007").
			Return(nil, errors.New("db down"))

		_, err := svc.ClientAccount(context.Background(), 7, "X")
		assert.Error(t, err)
	})
}

func TestType_NormalBalance(t *testing.T) {
	assert.Equal(t, account.SideDebit, account.TypeAssets.NormalBalance())
	assert.Equal(t, account.SideDebit, account.TypeExpenses.NormalBalance())
	assert.Equal(t, account.SideCredit, account.TypeLiabilities.NormalBalance())
	assert.Equal(t, account.SideCredit, account.TypeEquity.NormalBalance())
	assert.Equal(t, account.SideCredit, account.TypeIncome.NormalBalance())
}
