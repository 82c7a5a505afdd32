package repositories

import (
	"context"

	"github.com/google/uuid"
	"logichain.backend/internal/domain/entities"
)

// ComplianceRepository defines compliance check operations.
// Upsert keeps at most one row per contract.
type ComplianceRepository interface {
	Upsert(ctx context.Context, check *entities.ComplianceCheck) error
	GetByContractID(ctx context.Context, contractID uuid.UUID) (*entities.ComplianceCheck, error)
	Snapshot(ctx context.Context, ids []uuid.UUID) ([]*entities.ComplianceCheck, error)
}
