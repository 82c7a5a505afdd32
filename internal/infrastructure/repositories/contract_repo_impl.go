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

// ContractRepository implements contract data operations
type ContractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create inserts a new contract row
func (r *ContractRepository) Create(ctx context.Context, contract *entities.Contract) error {
	if contract.ID == uuid.Nil {
		contract.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(contract)

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	contract.CreatedAt = m.CreatedAt
	contract.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a contract by ID
func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	var m models.Contract
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByNumber gets a contract by its human-readable number
func (r *ContractRepository) GetByNumber(ctx context.Context, number string) (*entities.Contract, error) {
	var m models.Contract
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("contract_number = ?", number).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

var allowedOrder = map[string]string{
	"created_at DESC":     "created_at DESC",
	"created_at ASC":      "created_at ASC",
	"end_date ASC":        "end_date ASC",
	"contract_value DESC": "contract_value DESC",
	"status ASC":          "status ASC",
}

func applyListFilters(q *gorm.DB, filters entities.ListFilters, includeFinalized bool) *gorm.DB {
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", string(filters.Status))
	}
	if filters.Department != "" {
		q = q.Where("department = ?", filters.Department)
	}
	if filters.ContractedLike != "" {
		q = q.Where("contracted_json LIKE ?", "%"+filters.ContractedLike+"%")
	}
	if filters.MinValue != nil {
		q = q.Where("contract_value >= ?", *filters.MinValue)
	}
	if filters.MaxValue != nil {
		q = q.Where("contract_value <= ?", *filters.MaxValue)
	}
	if filters.DateFrom.Valid {
		q = q.Where("created_at >= ?", startOfDay(filters.DateFrom.Time))
	}
	if filters.DateTo.Valid {
		q = q.Where("created_at < ?", startOfDay(filters.DateTo.Time).AddDate(0, 0, 1))
	}
	if !includeFinalized {
		q = q.Where("status <> ?", string(entities.StatusFinalizado))
	}
	return q
}

// List returns contracts matching the filters. Ordering is restricted to a
// whitelist; anything else falls back to newest-first.
func (r *ContractRepository) List(ctx context.Context, filters entities.ListFilters, includeFinalized bool) ([]*entities.Contract, error) {
	db := GetDB(ctx, r.db)
	q := applyListFilters(db.WithContext(ctx).Model(&models.Contract{}), filters, includeFinalized)

	order, ok := allowedOrder[filters.OrderBy]
	if !ok {
		order = "created_at DESC"
	}
	q = q.Order(order)
	if filters.Limit > 0 {
		q = q.Limit(filters.Limit).Offset(filters.Offset)
	}

	var ms []models.Contract
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	out := make([]*entities.Contract, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out, nil
}

// Count counts contracts matching the filters, ignoring pagination
func (r *ContractRepository) Count(ctx context.Context, filters entities.ListFilters, includeFinalized bool) (int64, error) {
	var total int64
	db := GetDB(ctx, r.db)
	q := applyListFilters(db.WithContext(ctx).Model(&models.Contract{}), filters, includeFinalized)
	err := q.Count(&total).Error
	return total, err
}

// CountByNumberPrefix counts contracts whose number starts with prefix.
// Used to derive the next sequence for LC-<year>-NNN numbering.
func (r *ContractRepository) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	var total int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Contract{}).
		Where("contract_number LIKE ?", prefix+"%").
		Count(&total).Error
	return total, err
}

// UpdateStatus moves the contract to a new lifecycle stage
func (r *ContractRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ContractStatus, isFinalized bool) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Contract{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       string(status),
			"is_finalized": isFinalized,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Update applies pre-filtered column changes without touching the version
func (r *ContractRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error {
	return r.applyChanges(ctx, id, changes, nil)
}

// UpdateVersioned applies pre-filtered column changes and sets the new version
func (r *ContractRepository) UpdateVersioned(ctx context.Context, id uuid.UUID, changes map[string]interface{}, newVersion int) error {
	return r.applyChanges(ctx, id, changes, &newVersion)
}

func (r *ContractRepository) applyChanges(ctx context.Context, id uuid.UUID, changes map[string]interface{}, version *int) error {
	cols := make(map[string]interface{}, len(changes)+2)
	for k, v := range changes {
		cols[k] = v
	}
	if version != nil {
		cols["version"] = *version
	}
	cols["updated_at"] = time.Now()

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Contract{}).
		Where("id = ?", id).
		Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePDFPath stores the rendered document path
func (r *ContractRepository) UpdatePDFPath(ctx context.Context, id uuid.UUID, path string) error {
	return r.applyChanges(ctx, id, map[string]interface{}{"pdf_path": path}, nil)
}

// Touch bumps updated_at only (used by additive inserts)
func (r *ContractRepository) Touch(ctx context.Context, id uuid.UUID) error {
	return r.applyChanges(ctx, id, map[string]interface{}{}, nil)
}

// Snapshot loads the contract rows scoped to the given IDs; nil means all
func (r *ContractRepository) Snapshot(ctx context.Context, ids []uuid.UUID) ([]*entities.Contract, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.Contract{})
	if ids != nil {
		q = q.Where("id IN ?", ids)
	}
	var ms []models.Contract
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Contract, 0, len(ms))
	for i := range ms {
		out = append(out, r.toEntity(&ms[i]))
	}
	return out, nil
}

func (r *ContractRepository) toModel(c *entities.Contract) *models.Contract {
	return &models.Contract{
		ID:                  c.ID,
		ContractNumber:      c.ContractNumber,
		Type:                c.Type,
		Title:               c.Title,
		Department:          c.Department,
		CostCenter:          c.CostCenter,
		Status:              string(c.Status),
		Tags:                marshalJSON(c.Tags),
		ContractorJSON:      marshalJSON(c.Contractor),
		ContractedJSON:      marshalJSON(c.Contracted),
		ScopeText:           c.ScopeText,
		DeliverablesText:    c.DeliverablesText,
		SLATargetsJSON:      marshalJSON(c.SLATargets),
		AcceptanceRulesText: c.AcceptanceRules,
		ClausesText:         c.ClausesText,
		CriticalClauses:     c.CriticalClauses,
		CriticalClausesText: c.CriticalClausesText,
		MandatoryClausesJSON: marshalJSON(c.MandatoryClauses),
		LegalNotes:          c.LegalNotes,
		StartDate:           formatDate(c.StartDate),
		EndDate:             formatDate(c.EndDate),
		MilestonesJSON:      marshalJSON(c.Milestones),
		PaymentTerms:        c.PaymentTerms,
		ReajustIndex:        c.ReajustIndex,
		PenaltiesText:       c.PenaltiesText,
		PenaltiesValue:      c.PenaltiesValue,
		SignaturesJSON:      marshalJSON(c.Signatures),
		ContractValue:       c.ContractValue,
		ExecutedValue:       c.ExecutedValue,
		SavingsValue:        c.SavingsValue,
		ROIValue:            c.ROIValue,
		RequestDate:         formatDatePtr(c.RequestDate),
		SignedDate:          formatDatePtr(c.SignedDate),
		ArchivedDate:        formatDatePtr(c.ArchivedDate),
		DigitallySigned:     c.DigitallySigned,

		StrategicAlignment:           c.StrategicAlignment,
		RevenueContribution:          c.RevenueContribution,
		OperationCritical:            c.OperationCritical,
		SupplierKeyDependency:        c.SupplierKeyDependency,
		SupplierDiversificationScore: c.SupplierDiversificationScore,
		MaturityScore:                c.MaturityScore,
		GovernanceIndex:              c.GovernanceIndex,
		AutomationPct:                c.AutomationPct,
		DefaultProbability:           c.DefaultProbability,
		AggregateFinancialRisk:       c.AggregateFinancialRisk,
		DisruptionPredictiveScore:    c.DisruptionPredictiveScore,

		PDFPath:     c.PDFPath,
		IsArchived:  c.IsArchived,
		IsFinalized: c.IsFinalized,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func (r *ContractRepository) toEntity(m *models.Contract) *entities.Contract {
	c := &entities.Contract{
		ID:                  m.ID,
		ContractNumber:      m.ContractNumber,
		Type:                m.Type,
		Title:               m.Title,
		Department:          m.Department,
		CostCenter:          m.CostCenter,
		Status:              entities.ContractStatus(m.Status),
		ScopeText:           m.ScopeText,
		DeliverablesText:    m.DeliverablesText,
		AcceptanceRules:     m.AcceptanceRulesText,
		ClausesText:         m.ClausesText,
		CriticalClauses:     m.CriticalClauses,
		CriticalClausesText: m.CriticalClausesText,
		LegalNotes:          m.LegalNotes,
		StartDate:           parseDate(m.StartDate),
		EndDate:             parseDate(m.EndDate),
		PaymentTerms:        m.PaymentTerms,
		ReajustIndex:        m.ReajustIndex,
		PenaltiesText:       m.PenaltiesText,
		PenaltiesValue:      m.PenaltiesValue,
		ContractValue:       m.ContractValue,
		ExecutedValue:       m.ExecutedValue,
		SavingsValue:        m.SavingsValue,
		ROIValue:            m.ROIValue,
		RequestDate:         parseDatePtr(m.RequestDate),
		SignedDate:          parseDatePtr(m.SignedDate),
		ArchivedDate:        parseDatePtr(m.ArchivedDate),
		DigitallySigned:     m.DigitallySigned,

		StrategicAlignment:           m.StrategicAlignment,
		RevenueContribution:          m.RevenueContribution,
		OperationCritical:            m.OperationCritical,
		SupplierKeyDependency:        m.SupplierKeyDependency,
		SupplierDiversificationScore: m.SupplierDiversificationScore,
		MaturityScore:                m.MaturityScore,
		GovernanceIndex:              m.GovernanceIndex,
		AutomationPct:                m.AutomationPct,
		DefaultProbability:           m.DefaultProbability,
		AggregateFinancialRisk:       m.AggregateFinancialRisk,
		DisruptionPredictiveScore:    m.DisruptionPredictiveScore,

		PDFPath:     m.PDFPath,
		IsArchived:  m.IsArchived,
		IsFinalized: m.IsFinalized,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	unmarshalJSON(m.Tags, &c.Tags)
	unmarshalJSON(m.ContractorJSON, &c.Contractor)
	unmarshalJSON(m.ContractedJSON, &c.Contracted)
	unmarshalJSON(m.SLATargetsJSON, &c.SLATargets)
	unmarshalJSON(m.MandatoryClausesJSON, &c.MandatoryClauses)
	unmarshalJSON(m.MilestonesJSON, &c.Milestones)
	unmarshalJSON(m.SignaturesJSON, &c.Signatures)
	return c
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
