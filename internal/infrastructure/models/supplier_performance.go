package models

import (
	"time"

	"github.com/google/uuid"
)

type SupplierPerformance struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	SLAPct             float64   `gorm:"column:sla_pct;default:0"`
	DeliveryFailRate   float64   `gorm:"default:0"`
	OnTimePct          float64   `gorm:"default:0"`
	QualityScore       float64   `gorm:"default:0"`
	SupplierSwitchRate float64   `gorm:"default:0"`
	SatisfactionScore  float64   `gorm:"default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Contract Contract `gorm:"foreignKey:ContractID"`
}

// TableName keeps the original singular-ish table name
func (SupplierPerformance) TableName() string {
	return "supplier_performance"
}
