package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"logichain.backend/internal/domain/entities"
	domainerrors "logichain.backend/internal/domain/errors"
	"logichain.backend/internal/infrastructure/models"
)

func TestComplianceUpsertKeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewComplianceRepository(db)
	ctx := context.Background()
	c := seedEventContract(t, db, "LC-2026-001")

	require.NoError(t, repo.Upsert(ctx, &entities.ComplianceCheck{
		ContractID:              c.ID,
		MandatoryClausesScore:   80,
		RegulatoryCompliancePct: 90,
		Audited:                 false,
		NonconformitiesCount:    2,
		RiskScore:               55,
	}))
	require.NoError(t, repo.Upsert(ctx, &entities.ComplianceCheck{
		ContractID:              c.ID,
		MandatoryClausesScore:   95,
		RegulatoryCompliancePct: 100,
		Audited:                 true,
		NonconformitiesCount:    0,
		RiskScore:               30,
	}))

	var rows int64
	require.NoError(t, db.Model(&models.ComplianceCheck{}).Count(&rows).Error)
	require.Equal(t, int64(1), rows)

	got, err := repo.GetByContractID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, 95.0, got.MandatoryClausesScore)
	require.Equal(t, 100.0, got.RegulatoryCompliancePct)
	require.True(t, got.Audited)
	require.Equal(t, 0, got.NonconformitiesCount)
	require.Equal(t, 30.0, got.RiskScore)
}

func TestComplianceGetByContractIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewComplianceRepository(db)

	_, err := repo.GetByContractID(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestComplianceSnapshotScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewComplianceRepository(db)
	ctx := context.Background()
	a := seedEventContract(t, db, "LC-2026-001")
	b := seedEventContract(t, db, "LC-2026-002")

	require.NoError(t, repo.Upsert(ctx, &entities.ComplianceCheck{ContractID: a.ID, RiskScore: 40}))
	require.NoError(t, repo.Upsert(ctx, &entities.ComplianceCheck{ContractID: b.ID, RiskScore: 80}))

	all, err := repo.Snapshot(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	scoped, err := repo.Snapshot(ctx, []uuid.UUID{b.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, 80.0, scoped[0].RiskScore)
}

func TestSupplierPerformanceUpsertKeepsSingleRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewSupplierPerformanceRepository(db)
	ctx := context.Background()
	c := seedEventContract(t, db, "LC-2026-001")

	require.NoError(t, repo.Upsert(ctx, &entities.SupplierPerformance{
		ContractID:        c.ID,
		SLAPct:            92,
		OnTimePct:         85,
		QualityScore:      7.5,
		SatisfactionScore: 8,
	}))
	require.NoError(t, repo.Upsert(ctx, &entities.SupplierPerformance{
		ContractID:        c.ID,
		SLAPct:            97,
		OnTimePct:         93,
		QualityScore:      9,
		SatisfactionScore: 9.5,
	}))

	var rows int64
	require.NoError(t, db.Model(&models.SupplierPerformance{}).Count(&rows).Error)
	require.Equal(t, int64(1), rows)

	got, err := repo.GetByContractID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, 97.0, got.SLAPct)
	require.Equal(t, 93.0, got.OnTimePct)
	require.Equal(t, 9.0, got.QualityScore)
	require.Equal(t, 9.5, got.SatisfactionScore)
}

func TestSupplierPerformanceSnapshotScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewSupplierPerformanceRepository(db)
	ctx := context.Background()
	a := seedEventContract(t, db, "LC-2026-001")
	b := seedEventContract(t, db, "LC-2026-002")

	require.NoError(t, repo.Upsert(ctx, &entities.SupplierPerformance{ContractID: a.ID, SLAPct: 90}))
	require.NoError(t, repo.Upsert(ctx, &entities.SupplierPerformance{ContractID: b.ID, SLAPct: 70}))

	scoped, err := repo.Snapshot(ctx, []uuid.UUID{a.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, 90.0, scoped[0].SLAPct)
}
