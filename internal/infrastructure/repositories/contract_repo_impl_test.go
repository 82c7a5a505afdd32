package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"logichain.backend/internal/domain/entities"
	domainerrors "logichain.backend/internal/domain/errors"
)

func TestContractCreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	c := newContract(t, "LC-2026-001")
	c.Milestones = []entities.Milestone{{Date: "2026-06-30", Description: "entrega parcial"}}
	c.Signatures = entities.Signatures{ContractorSign: "Ana", ContractedSign: "Bruno"}
	c.SignedDate = testDate(t, "2026-01-15")
	require.NoError(t, repo.Create(ctx, c))
	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", c.ID.String())

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "LC-2026-001", got.ContractNumber)
	require.Equal(t, entities.StatusGerado, got.Status)
	require.Equal(t, []string{"logística"}, got.Tags)
	require.Equal(t, "Madeireira Sul", got.Contracted.Name)
	require.Equal(t, "2026-01-01", got.StartDate.Time.Format(entities.DateLayout))
	require.Equal(t, "2026-12-31", got.EndDate.Time.Format(entities.DateLayout))
	require.True(t, got.SignedDate.Valid)
	require.Equal(t, "2026-01-15", got.SignedDate.Time.Format(entities.DateLayout))
	require.Len(t, got.Milestones, 1)
	require.Equal(t, "Ana", got.Signatures.ContractorSign)
	require.Equal(t, 1, got.Version)
}

func TestContractGetByNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newContract(t, "LC-2026-007")))

	got, err := repo.GetByNumber(ctx, "LC-2026-007")
	require.NoError(t, err)
	require.Equal(t, "LC-2026-007", got.ContractNumber)

	_, err = repo.GetByNumber(ctx, "LC-2026-999")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestContractCreateDuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newContract(t, "LC-2026-001")))
	err := repo.Create(ctx, newContract(t, "LC-2026-001"))
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestContractCountByNumberPrefix(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newContract(t, "LC-2026-001")))
	require.NoError(t, repo.Create(ctx, newContract(t, "LC-2026-002")))
	require.NoError(t, repo.Create(ctx, newContract(t, "LC-2025-001")))

	total, err := repo.CountByNumberPrefix(ctx, "LC-2026-")
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
}

func TestContractListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	a := newContract(t, "LC-2026-001")
	a.Type = "Fornecimento"
	a.Department = "Logística"
	a.ContractValue = 50000
	require.NoError(t, repo.Create(ctx, a))

	b := newContract(t, "LC-2026-002")
	b.Type = "Serviço"
	b.Department = "TI"
	b.Contracted.Name = "Transportadora Azul"
	b.ContractValue = 200000
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.List(ctx, entities.ListFilters{Type: "Serviço"}, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "LC-2026-002", got[0].ContractNumber)

	got, err = repo.List(ctx, entities.ListFilters{Department: "Logística"}, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "LC-2026-001", got[0].ContractNumber)

	got, err = repo.List(ctx, entities.ListFilters{ContractedLike: "Azul"}, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "LC-2026-002", got[0].ContractNumber)

	min := 100000.0
	got, err = repo.List(ctx, entities.ListFilters{MinValue: &min}, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "LC-2026-002", got[0].ContractNumber)

	max := 100000.0
	got, err = repo.List(ctx, entities.ListFilters{MaxValue: &max}, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "LC-2026-001", got[0].ContractNumber)
}

func TestContractListDateRange(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	old := newContract(t, "LC-2025-001")
	old.CreatedAt = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	old.UpdatedAt = old.CreatedAt
	require.NoError(t, repo.Create(ctx, old))

	recent := newContract(t, "LC-2026-001")
	recent.CreatedAt = time.Date(2026, 2, 1, 12, 0, 0, 0, time.Local)
	recent.UpdatedAt = recent.CreatedAt
	require.NoError(t, repo.Create(ctx, recent))

	from := null.TimeFrom(time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local))
	got, err := repo.List(ctx, entities.ListFilters{DateFrom: from}, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "LC-2026-001", got[0].ContractNumber)

	// DateTo is inclusive of the whole named day
	to := null.TimeFrom(time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local))
	got, err = repo.List(ctx, entities.ListFilters{DateTo: to}, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "LC-2025-001", got[0].ContractNumber)
}

func TestContractListExcludesFinalized(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	active := newContract(t, "LC-2026-001")
	require.NoError(t, repo.Create(ctx, active))

	done := newContract(t, "LC-2026-002")
	done.Status = entities.StatusFinalizado
	done.IsFinalized = true
	require.NoError(t, repo.Create(ctx, done))

	got, err := repo.List(ctx, entities.ListFilters{}, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "LC-2026-001", got[0].ContractNumber)

	got, err = repo.List(ctx, entities.ListFilters{}, true)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestContractListOrderFallback(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	first := newContract(t, "LC-2026-001")
	first.CreatedAt = time.Date(2026, 1, 1, 10, 0, 0, 0, time.Local)
	first.UpdatedAt = first.CreatedAt
	require.NoError(t, repo.Create(ctx, first))

	second := newContract(t, "LC-2026-002")
	second.CreatedAt = time.Date(2026, 2, 1, 10, 0, 0, 0, time.Local)
	second.UpdatedAt = second.CreatedAt
	require.NoError(t, repo.Create(ctx, second))

	// injection attempts fall back to newest-first
	got, err := repo.List(ctx, entities.ListFilters{OrderBy: "id; DROP TABLE contracts"}, true)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "LC-2026-002", got[0].ContractNumber)

	got, err = repo.List(ctx, entities.ListFilters{OrderBy: "created_at ASC"}, true)
	require.NoError(t, err)
	require.Equal(t, "LC-2026-001", got[0].ContractNumber)
}

func TestContractListPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.Local)
	for i, number := range []string{"LC-2026-001", "LC-2026-002", "LC-2026-003"} {
		c := newContract(t, number)
		c.CreatedAt = base.AddDate(0, 0, i)
		c.UpdatedAt = c.CreatedAt
		require.NoError(t, repo.Create(ctx, c))
	}

	got, err := repo.List(ctx, entities.ListFilters{OrderBy: "created_at ASC", Limit: 2}, true)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "LC-2026-001", got[0].ContractNumber)

	got, err = repo.List(ctx, entities.ListFilters{OrderBy: "created_at ASC", Limit: 2, Offset: 2}, true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "LC-2026-003", got[0].ContractNumber)

	total, err := repo.Count(ctx, entities.ListFilters{Limit: 2}, true)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
}

func TestContractUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	c := newContract(t, "LC-2026-001")
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.UpdateStatus(ctx, c.ID, entities.StatusFinalizado, true))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, entities.StatusFinalizado, got.Status)
	require.True(t, got.IsFinalized)

	err = repo.UpdateStatus(ctx, uuid.New(), entities.StatusAssinado, false)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestContractUpdateVersioned(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	c := newContract(t, "LC-2026-001")
	require.NoError(t, repo.Create(ctx, c))

	changes := map[string]interface{}{
		"title":          "Novo título",
		"contract_value": 99000.0,
		"end_date":       "2027-06-30",
	}
	require.NoError(t, repo.UpdateVersioned(ctx, c.ID, changes, 2))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "Novo título", got.Title)
	require.Equal(t, 99000.0, got.ContractValue)
	require.Equal(t, "2027-06-30", got.EndDate.Time.Format(entities.DateLayout))
	require.Equal(t, 2, got.Version)
}

func TestContractUpdateKeepsVersion(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	c := newContract(t, "LC-2026-001")
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.Update(ctx, c.ID, map[string]interface{}{"executed_value": 35000.0}))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, 35000.0, got.ExecutedValue)
	require.Equal(t, 1, got.Version)
}

func TestContractTouch(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	c := newContract(t, "LC-2026-001")
	c.UpdatedAt = time.Date(2026, 1, 1, 10, 0, 0, 0, time.Local)
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.Touch(ctx, c.ID))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, got.UpdatedAt.After(c.UpdatedAt))
}

func TestContractUpdatePDFPath(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	c := newContract(t, "LC-2026-001")
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.UpdatePDFPath(ctx, c.ID, "/data/pdfs/LC-2026-001_v1.pdf"))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, "/data/pdfs/LC-2026-001_v1.pdf", got.PDFPath)
}

func TestContractSnapshotScoping(t *testing.T) {
	db := newTestDB(t)
	repo := NewContractRepository(db)
	ctx := context.Background()

	a := newContract(t, "LC-2026-001")
	require.NoError(t, repo.Create(ctx, a))
	b := newContract(t, "LC-2026-002")
	require.NoError(t, repo.Create(ctx, b))

	all, err := repo.Snapshot(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	scoped, err := repo.Snapshot(ctx, []uuid.UUID{a.ID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, "LC-2026-001", scoped[0].ContractNumber)
}
