package models

import (
	"time"

	"github.com/google/uuid"
)

type ContractEvent struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EventType     string    `gorm:"type:varchar(50);not null;index"`
	EventDataJSON string    `gorm:"column:event_data_json;type:text;default:'{}'"`
	CreatedAt     time.Time

	Contract Contract `gorm:"foreignKey:ContractID"`
}
