package models

import (
	"time"

	"github.com/google/uuid"
)

type ComplianceCheck struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	MandatoryClausesScore   float64   `gorm:"default:0"`
	OutOfStandard           bool      `gorm:"default:false"`
	HasGuarantee            bool      `gorm:"default:false"`
	HasInsurance            bool      `gorm:"default:false"`
	RegulatoryCompliancePct float64   `gorm:"default:0"`
	Audited                 bool      `gorm:"default:false"`
	NonconformitiesCount    int       `gorm:"default:0"`
	RiskScore               float64   `gorm:"default:0"`
	CreatedAt               time.Time
	UpdatedAt               time.Time

	Contract Contract `gorm:"foreignKey:ContractID"`
}
