package repositories

import (
	"context"

	"github.com/google/uuid"
	"logichain.backend/internal/domain/entities"
)

// SupplierPerformanceRepository defines supplier metric operations.
// Upsert keeps at most one row per contract.
type SupplierPerformanceRepository interface {
	Upsert(ctx context.Context, perf *entities.SupplierPerformance) error
	GetByContractID(ctx context.Context, contractID uuid.UUID) (*entities.SupplierPerformance, error)
	Snapshot(ctx context.Context, ids []uuid.UUID) ([]*entities.SupplierPerformance, error)
}
