package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"logichain.backend/internal/domain/entities"
	"logichain.backend/internal/infrastructure/models"
	"logichain.backend/pkg/utils"
)

// ContractEventRepository implements the append-only audit trail
type ContractEventRepository struct {
	db *gorm.DB
}

// NewContractEventRepository creates a new contract event repository
func NewContractEventRepository(db *gorm.DB) *ContractEventRepository {
	return &ContractEventRepository{db: db}
}

// Create appends an audit event
func (r *ContractEventRepository) Create(ctx context.Context, event *entities.ContractEvent) error {
	if event.ID == uuid.Nil {
		event.ID = utils.GenerateUUIDv7()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	data := event.EventData
	if data == nil {
		data = map[string]interface{}{}
	}
	m := &models.ContractEvent{
		ID:            event.ID,
		ContractID:    event.ContractID,
		EventType:     event.EventType,
		EventDataJSON: marshalJSON(data),
		CreatedAt:     event.CreatedAt,
	}
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(m).Error
}

// ListByContractID returns a contract's audit trail, newest first
func (r *ContractEventRepository) ListByContractID(ctx context.Context, contractID uuid.UUID) ([]*entities.ContractEvent, error) {
	var ms []models.ContractEvent
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// Snapshot loads event rows scoped to the given contract IDs; nil means all
func (r *ContractEventRepository) Snapshot(ctx context.Context, ids []uuid.UUID) ([]*entities.ContractEvent, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.ContractEvent{})
	if ids != nil {
		q = q.Where("contract_id IN ?", ids)
	}
	var ms []models.ContractEvent
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

func (r *ContractEventRepository) toEntities(ms []models.ContractEvent) []*entities.ContractEvent {
	out := make([]*entities.ContractEvent, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		data := map[string]interface{}{}
		if m.EventDataJSON != "" {
			// malformed payloads degrade to an empty mapping
			_ = json.Unmarshal([]byte(m.EventDataJSON), &data)
		}
		out = append(out, &entities.ContractEvent{
			ID:         m.ID,
			ContractID: m.ContractID,
			EventType:  m.EventType,
			EventData:  data,
			CreatedAt:  m.CreatedAt,
		})
	}
	return out
}
