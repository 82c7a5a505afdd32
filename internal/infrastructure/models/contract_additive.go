package models

import (
	"time"

	"github.com/google/uuid"
)

type ContractAdditive struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AdditiveDate  string    `gorm:"type:varchar(30);not null"`
	AdditiveValue float64   `gorm:"not null"`
	Reason        string    `gorm:"type:text;not null"`
	CreatedAt     time.Time

	Contract Contract `gorm:"foreignKey:ContractID"`
}
