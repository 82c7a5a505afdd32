package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"logichain.backend/internal/domain/entities"
	domainerrors "logichain.backend/internal/domain/errors"
)

func TestUnitOfWorkCommits(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	contractRepo := NewContractRepository(db)
	eventRepo := NewContractEventRepository(db)
	ctx := context.Background()

	c := newContract(t, "LC-2026-001")
	err := uow.Do(ctx, func(ctx context.Context) error {
		if err := contractRepo.Create(ctx, c); err != nil {
			return err
		}
		return eventRepo.Create(ctx, &entities.ContractEvent{
			ContractID: c.ID,
			EventType:  entities.EventCreated,
		})
	})
	require.NoError(t, err)

	got, err := contractRepo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "LC-2026-001", got.ContractNumber)

	events, err := eventRepo.ListByContractID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestUnitOfWorkRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	contractRepo := NewContractRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	c := newContract(t, "LC-2026-001")
	err := uow.Do(ctx, func(ctx context.Context) error {
		if err := contractRepo.Create(ctx, c); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = contractRepo.GetByID(ctx, c.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUnitOfWorkNestedDoReusesTransaction(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	contractRepo := NewContractRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	c := newContract(t, "LC-2026-001")
	err := uow.Do(ctx, func(ctx context.Context) error {
		if err := contractRepo.Create(ctx, c); err != nil {
			return err
		}
		// the inner Do joins the outer transaction, so the outer error
		// discards this write too
		if err := uow.Do(ctx, func(ctx context.Context) error {
			return contractRepo.Touch(ctx, c.ID)
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = contractRepo.GetByID(ctx, c.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
