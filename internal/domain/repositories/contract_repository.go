package repositories

import (
	"context"

	"github.com/google/uuid"
	"logichain.backend/internal/domain/entities"
)

// ContractRepository defines contract data operations
type ContractRepository interface {
	Create(ctx context.Context, contract *entities.Contract) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error)
	GetByNumber(ctx context.Context, number string) (*entities.Contract, error)
	List(ctx context.Context, filters entities.ListFilters, includeFinalized bool) ([]*entities.Contract, error)
	Count(ctx context.Context, filters entities.ListFilters, includeFinalized bool) (int64, error)
	CountByNumberPrefix(ctx context.Context, prefix string) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ContractStatus, isFinalized bool) error
	// Update applies already-filtered column changes. Allow-list filtering
	// happens in the usecase layer via the typed edit/activity inputs.
	Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error
	UpdateVersioned(ctx context.Context, id uuid.UUID, changes map[string]interface{}, newVersion int) error
	UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error
	Touch(ctx context.Context, id uuid.UUID) error
	// Snapshot loads the contract rows scoped to the given IDs.
	// A nil scope means the whole portfolio.
	Snapshot(ctx context.Context, ids []uuid.UUID) ([]*entities.Contract, error)
}
