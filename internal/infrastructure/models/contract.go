package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract is the storage model. Nested structures (parties, SLA targets,
// milestones, signatures, clause/tag lists) are JSON-serialized text
// columns; date-only fields are ISO text so dirty historical values degrade
// instead of failing the row.
type Contract struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractNumber      string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Type                string    `gorm:"type:varchar(100);not null;index"`
	Title               string    `gorm:"type:varchar(255);not null"`
	Department          string    `gorm:"type:varchar(100);not null"`
	CostCenter          string    `gorm:"type:varchar(100)"`
	Status              string    `gorm:"type:varchar(50);not null;index"`
	Tags                string    `gorm:"type:text"`
	ContractorJSON      string    `gorm:"type:text;not null"`
	ContractedJSON      string    `gorm:"type:text;not null"`
	ScopeText           string    `gorm:"type:text"`
	DeliverablesText    string    `gorm:"type:text"`
	SLATargetsJSON      string    `gorm:"column:sla_targets_json;type:text"`
	AcceptanceRulesText string    `gorm:"type:text"`
	ClausesText         string    `gorm:"type:text"`
	CriticalClauses     bool      `gorm:"default:false"`
	CriticalClausesText string    `gorm:"type:text"`
	MandatoryClausesJSON string   `gorm:"type:text"`
	LegalNotes          string    `gorm:"type:text"`
	StartDate           string    `gorm:"type:varchar(30);not null"`
	EndDate             string    `gorm:"type:varchar(30);not null;index"`
	MilestonesJSON      string    `gorm:"type:text"`
	PaymentTerms        string    `gorm:"type:text"`
	ReajustIndex        string    `gorm:"type:varchar(100)"`
	PenaltiesText       string    `gorm:"type:text"`
	PenaltiesValue      float64   `gorm:"default:0"`
	SignaturesJSON      string    `gorm:"type:text"`
	ContractValue       float64   `gorm:"default:0"`
	ExecutedValue       float64   `gorm:"default:0"`
	SavingsValue        float64   `gorm:"default:0"`
	ROIValue            float64   `gorm:"column:roi_value;default:0"`
	RequestDate         *string   `gorm:"type:varchar(30)"`
	SignedDate          *string   `gorm:"type:varchar(30)"`
	ArchivedDate        *string   `gorm:"type:varchar(30)"`
	DigitallySigned     bool      `gorm:"default:false"`

	StrategicAlignment           bool    `gorm:"default:false"`
	RevenueContribution          float64 `gorm:"default:0"`
	OperationCritical            bool    `gorm:"default:false"`
	SupplierKeyDependency        bool    `gorm:"default:false"`
	SupplierDiversificationScore float64 `gorm:"default:0"`
	MaturityScore                float64 `gorm:"default:0"`
	GovernanceIndex              float64 `gorm:"default:0"`
	AutomationPct                float64 `gorm:"default:0"`
	DefaultProbability           float64 `gorm:"default:0"`
	AggregateFinancialRisk       float64 `gorm:"default:0"`
	DisruptionPredictiveScore    float64 `gorm:"default:0"`

	PDFPath     string `gorm:"column:pdf_path;type:varchar(500)"`
	IsArchived  bool   `gorm:"default:false"`
	IsFinalized bool   `gorm:"default:false"`
	Version     int    `gorm:"default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
