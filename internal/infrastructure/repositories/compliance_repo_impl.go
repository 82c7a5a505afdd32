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

// ComplianceRepository implements compliance check storage
type ComplianceRepository struct {
	db *gorm.DB
}

// NewComplianceRepository creates a new compliance repository
func NewComplianceRepository(db *gorm.DB) *ComplianceRepository {
	return &ComplianceRepository{db: db}
}

// Upsert inserts or replaces the single compliance row of a contract
func (r *ComplianceRepository) Upsert(ctx context.Context, check *entities.ComplianceCheck) error {
	db := GetDB(ctx, r.db)
	now := time.Now()

	var existing models.ComplianceCheck
	err := db.WithContext(ctx).Where("contract_id = ?", check.ContractID).First(&existing).Error
	switch {
	case err == nil:
		return db.WithContext(ctx).Model(&models.ComplianceCheck{}).
			Where("contract_id = ?", check.ContractID).
			Updates(map[string]interface{}{
				"mandatory_clauses_score":   check.MandatoryClausesScore,
				"out_of_standard":           check.OutOfStandard,
				"has_guarantee":             check.HasGuarantee,
				"has_insurance":             check.HasInsurance,
				"regulatory_compliance_pct": check.RegulatoryCompliancePct,
				"audited":                   check.Audited,
				"nonconformities_count":     check.NonconformitiesCount,
				"risk_score":                check.RiskScore,
				"updated_at":                now,
			}).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		if check.ID == uuid.Nil {
			check.ID = utils.GenerateUUIDv7()
		}
		m := &models.ComplianceCheck{
			ID:                      check.ID,
			ContractID:              check.ContractID,
			MandatoryClausesScore:   check.MandatoryClausesScore,
			OutOfStandard:           check.OutOfStandard,
			HasGuarantee:            check.HasGuarantee,
			HasInsurance:            check.HasInsurance,
			RegulatoryCompliancePct: check.RegulatoryCompliancePct,
			Audited:                 check.Audited,
			NonconformitiesCount:    check.NonconformitiesCount,
			RiskScore:               check.RiskScore,
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		return db.WithContext(ctx).Create(m).Error
	default:
		return err
	}
}

// GetByContractID returns the compliance row of one contract
func (r *ComplianceRepository) GetByContractID(ctx context.Context, contractID uuid.UUID) (*entities.ComplianceCheck, error) {
	var m models.ComplianceCheck
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("contract_id = ?", contractID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Snapshot loads compliance rows scoped to the given contract IDs; nil means all
func (r *ComplianceRepository) Snapshot(ctx context.Context, ids []uuid.UUID) ([]*entities.ComplianceCheck, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.ComplianceCheck{})
	if ids != nil {
		q = q.Where("contract_id IN ?", ids)
	}
	var ms []models.ComplianceCheck
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.ComplianceCheck, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out, nil
}

func (r *ComplianceRepository) toEntity(m *models.ComplianceCheck) *entities.ComplianceCheck {
	return &entities.ComplianceCheck{
		ID:                      m.ID,
		ContractID:              m.ContractID,
		MandatoryClausesScore:   m.MandatoryClausesScore,
		OutOfStandard:           m.OutOfStandard,
		HasGuarantee:            m.HasGuarantee,
		HasInsurance:            m.HasInsurance,
		RegulatoryCompliancePct: m.RegulatoryCompliancePct,
		Audited:                 m.Audited,
		NonconformitiesCount:    m.NonconformitiesCount,
		RiskScore:               m.RiskScore,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}
