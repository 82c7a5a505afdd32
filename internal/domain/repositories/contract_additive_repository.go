package repositories

import (
	"context"

	"github.com/google/uuid"
	"logichain.backend/internal/domain/entities"
)

// ContractAdditiveRepository defines financial amendment operations
type ContractAdditiveRepository interface {
	Create(ctx context.Context, additive *entities.ContractAdditive) error
	ListByContractID(ctx context.Context, contractID uuid.UUID) ([]*entities.ContractAdditive, error)
	Snapshot(ctx context.Context, ids []uuid.UUID) ([]*entities.ContractAdditive, error)
}
