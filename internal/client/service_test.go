package client_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lux2ube/Customer-service-sub002/internal/client"
)

func TestService_Create_TrimsInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := client.NewMockRepository(ctrl)

	repo.EXPECT().CreateClient(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c *client.Client) error {
			assert.Equal(t, "محمد صالح", c.Name)
			assert.Equal(t, "777123456", c.Phone)
			c.ID = 1
			return nil
		})

	svc := client.NewService(repo)

	c, err := svc.Create(context.Background(), client.CreateParams{
		Name:  "  محمد صالح ",
		Phone: " 777123456 ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
}

func TestService_Create_RequiresName(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := client.NewMockRepository(ctrl)

	svc := client.NewService(repo)

	_, err := svc.Create(context.Background(), client.CreateParams{Name: "   "})
	assert.Error(t, err)
}

func TestService_IsBlacklisted(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := client.NewMockRepository(ctrl)

	entry := &client.BlacklistEntry{Kind: client.BlacklistPhone, Value: "711000111"}

	repo.EXPECT().FindBlacklistEntry(gomock.Any(), client.BlacklistPhone, "711000111").Return(entry, nil)
	repo.EXPECT().FindBlacklistEntry(gomock.Any(), client.BlacklistName, "محمد").Return(nil, nil)

	svc := client.NewService(repo)

	blocked, err := svc.IsBlacklisted(context.Background(), client.BlacklistPhone, "711000111")
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = svc.IsBlacklisted(context.Background(), client.BlacklistName, "محمد")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestService_Blacklist(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := client.NewMockRepository(ctrl)

	repo.EXPECT().AddBlacklistEntry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry *client.BlacklistEntry) error {
			assert.Equal(t, client.BlacklistName, entry.Kind)
			assert.Equal(t, "خالد سيف", entry.Value)
			return nil
		})

	svc := client.NewService(repo)

	entry, err := svc.Blacklist(context.Background(), client.BlacklistName, "خالد سيف", "chargeback fraud")
	require.NoError(t, err)
	assert.Equal(t, "chargeback fraud", entry.Reason)
}

func TestService_LinkAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := client.NewMockRepository(ctrl)

	repo.EXPECT().UpdateAccountID(gomock.Any(), int64(7), "6007").Return(nil)

	svc := client.NewService(repo)
	require.NoError(t, svc.LinkAccount(context.Background(), 7, "6007"))
}
