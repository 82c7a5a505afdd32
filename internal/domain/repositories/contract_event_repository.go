package repositories

import (
	"context"

	"github.com/google/uuid"
	"logichain.backend/internal/domain/entities"
)

// ContractEventRepository defines audit trail operations. Events are
// append-only; there are no update or delete operations by design of the
// audit log.
type ContractEventRepository interface {
	Create(ctx context.Context, event *entities.ContractEvent) error
	ListByContractID(ctx context.Context, contractID uuid.UUID) ([]*entities.ContractEvent, error)
	Snapshot(ctx context.Context, ids []uuid.UUID) ([]*entities.ContractEvent, error)
}
