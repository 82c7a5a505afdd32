package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"logichain.backend/internal/domain/entities"
	domainerrors "logichain.backend/internal/domain/errors"
	"logichain.backend/internal/infrastructure/models"
	"logichain.backend/pkg/utils"
)

// SupplierPerformanceRepository implements supplier metric storage
type SupplierPerformanceRepository struct {
	db *gorm.DB
}

// NewSupplierPerformanceRepository creates a new supplier performance repository
func NewSupplierPerformanceRepository(db *gorm.DB) *SupplierPerformanceRepository {
	return &SupplierPerformanceRepository{db: db}
}

// Upsert inserts or replaces the single supplier performance row of a contract
func (r *SupplierPerformanceRepository) Upsert(ctx context.Context, perf *entities.SupplierPerformance) error {
	db := GetDB(ctx, r.db)
	now := time.Now()

	var existing models.SupplierPerformance
	err := db.WithContext(ctx).Where("contract_id = ?", perf.ContractID).First(&existing).Error
	switch {
	case err == nil:
		return db.WithContext(ctx).Model(&models.SupplierPerformance{}).
			Where("contract_id = ?", perf.ContractID).
			Updates(map[string]interface{}{
				"sla_pct":              perf.SLAPct,
				"delivery_fail_rate":   perf.DeliveryFailRate,
				"on_time_pct":          perf.OnTimePct,
				"quality_score":        perf.QualityScore,
				"supplier_switch_rate": perf.SupplierSwitchRate,
				"satisfaction_score":   perf.SatisfactionScore,
				"updated_at":           now,
			}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		if perf.ID == uuid.Nil {
			perf.ID = utils.GenerateUUIDv7()
		}
		m := &models.SupplierPerformance{
			ID:                 perf.ID,
			ContractID:         perf.ContractID,
			SLAPct:             perf.SLAPct,
			DeliveryFailRate:   perf.DeliveryFailRate,
			OnTimePct:          perf.OnTimePct,
			QualityScore:       perf.QualityScore,
			SupplierSwitchRate: perf.SupplierSwitchRate,
			SatisfactionScore:  perf.SatisfactionScore,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		return db.WithContext(ctx).Create(m).Error
	default:
		return err
	}
}

// GetByContractID returns the supplier performance row of one contract
func (r *SupplierPerformanceRepository) GetByContractID(ctx context.Context, contractID uuid.UUID) (*entities.SupplierPerformance, error) {
	var m models.SupplierPerformance
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("contract_id = ?", contractID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Snapshot loads supplier rows scoped to the given contract IDs; nil means all
func (r *SupplierPerformanceRepository) Snapshot(ctx context.Context, ids []uuid.UUID) ([]*entities.SupplierPerformance, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.SupplierPerformance{})
	if ids != nil {
		q = q.Where("contract_id IN ?", ids)
	}
	var ms []models.SupplierPerformance
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.SupplierPerformance, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out, nil
}

func (r *SupplierPerformanceRepository) toEntity(m *models.SupplierPerformance) *entities.SupplierPerformance {
	return &entities.SupplierPerformance{
		ID:                 m.ID,
		ContractID:         m.ContractID,
		SLAPct:             m.SLAPct,
		DeliveryFailRate:   m.DeliveryFailRate,
		OnTimePct:          m.OnTimePct,
		QualityScore:       m.QualityScore,
		SupplierSwitchRate: m.SupplierSwitchRate,
		SatisfactionScore:  m.SatisfactionScore,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
