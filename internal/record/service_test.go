package record_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lux2ube/Customer-service-sub002/internal/record"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := record.NewMockRepository(ctrl)

	repo.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec *record.Record) error {
			assert.NotEmpty(t, rec.ID)
			assert.Equal(t, record.StatusUnmatched, rec.Status)
			assert.Nil(t, rec.ClientID)
			assert.Nil(t, rec.TransferEntryID)
			return nil
		})

	svc := record.NewService(repo)

	rec, err := svc.Create(context.Background(), record.CreateParams{
		Kind:       record.KindCash,
		Type:       record.TypeCredit,
		Date:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:     500000,
		Currency:   "YER",
		AmountUSD:  1000,
		SenderName: "محمد",
		RawMessage: "استلمت 5000 من محمد",
	})
	require.NoError(t, err)
	assert.Equal(t, record.StatusUnmatched, rec.Status)
}

func TestService_Create_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := record.NewMockRepository(ctrl)

	svc := record.NewService(repo)

	_, err := svc.Create(context.Background(), record.CreateParams{
		Kind: record.Kind("crypto"), Type: record.TypeCredit, Amount: 100, AmountUSD: 100,
	})
	assert.ErrorIs(t, err, record.ErrInvalidKind)

	_, err = svc.Create(context.Background(), record.CreateParams{
		Kind: record.KindCash, Type: record.TypeCredit, Amount: 0, AmountUSD: 100,
	})
	assert.ErrorIs(t, err, record.ErrInvalidAmount)

	_, err = svc.Create(context.Background(), record.CreateParams{
		Kind: record.KindUSDT, Type: record.TypeDebit, Amount: 100, AmountUSD: -5,
	})
	assert.ErrorIs(t, err, record.ErrInvalidAmount)
}

func TestService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := record.NewMockRepository(ctrl)

	repo.EXPECT().TransitionStatus(gomock.Any(), "rec1",
		[]record.Status{record.StatusUnmatched}, record.StatusCancelled).Return(nil)

	svc := record.NewService(repo)
	require.NoError(t, svc.Cancel(context.Background(), "rec1"))
}

func TestService_Cancel_MatchedRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := record.NewMockRepository(ctrl)

	// A matched record must be unassigned first; the guarded transition
	// rejects it.
	repo.EXPECT().TransitionStatus(gomock.Any(), "rec1",
		[]record.Status{record.StatusUnmatched}, record.StatusCancelled).
		Return(record.ErrTerminal)

	svc := record.NewService(repo)
	assert.ErrorIs(t, svc.Cancel(context.Background(), "rec1"), record.ErrTerminal)
}

func TestService_MarkUsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := record.NewMockRepository(ctrl)

	repo.EXPECT().TransitionStatus(gomock.Any(), "rec1",
		[]record.Status{record.StatusMatched}, record.StatusUsed).Return(nil)

	svc := record.NewService(repo)
	require.NoError(t, svc.MarkUsed(context.Background(), "rec1"))
}
