package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"logichain.backend/internal/domain/entities"
	"logichain.backend/internal/infrastructure/models"
	"logichain.backend/pkg/utils"
)

// ContractAdditiveRepository implements financial amendment storage
type ContractAdditiveRepository struct {
	db *gorm.DB
}

// NewContractAdditiveRepository creates a new additive repository
func NewContractAdditiveRepository(db *gorm.DB) *ContractAdditiveRepository {
	return &ContractAdditiveRepository{db: db}
}

// Create inserts a new additive row
func (r *ContractAdditiveRepository) Create(ctx context.Context, additive *entities.ContractAdditive) error {
	if additive.ID == uuid.Nil {
		additive.ID = utils.GenerateUUIDv7()
	}
	if additive.CreatedAt.IsZero() {
		additive.CreatedAt = time.Now()
	}
	m := &models.ContractAdditive{
		ID:            additive.ID,
		ContractID:    additive.ContractID,
		AdditiveDate:  formatDate(additive.AdditiveDate),
		AdditiveValue: additive.AdditiveValue,
		Reason:        additive.Reason,
		CreatedAt:     additive.CreatedAt,
	}
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(m).Error
}

// ListByContractID returns a contract's additives, oldest first
func (r *ContractAdditiveRepository) ListByContractID(ctx context.Context, contractID uuid.UUID) ([]*entities.ContractAdditive, error) {
	var ms []models.ContractAdditive
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// Snapshot loads additive rows scoped to the given contract IDs; nil means all
func (r *ContractAdditiveRepository) Snapshot(ctx context.Context, ids []uuid.UUID) ([]*entities.ContractAdditive, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.ContractAdditive{})
	if ids != nil {
		q = q.Where("contract_id IN ?", ids)
	}
	var ms []models.ContractAdditive
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

func (r *ContractAdditiveRepository) toEntities(ms []models.ContractAdditive) []*entities.ContractAdditive {
	out := make([]*entities.ContractAdditive, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		out = append(out, &entities.ContractAdditive{
			ID:            m.ID,
			ContractID:    m.ContractID,
			AdditiveDate:  parseDate(m.AdditiveDate),
			AdditiveValue: m.AdditiveValue,
			Reason:        m.Reason,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out
}
