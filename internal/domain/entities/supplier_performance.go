package entities

import (
	"time"

	"github.com/google/uuid"
)

// SupplierPerformance holds the delivery metrics captured for the supplier
// of one contract. At most one row exists per contract (upsert semantics).
type SupplierPerformance struct {
	ID                 uuid.UUID `json:"id"`
	ContractID         uuid.UUID `json:"contractId"`
	SLAPct             float64   `json:"slaPct"`
	DeliveryFailRate   float64   `json:"deliveryFailRate"`
	OnTimePct          float64   `json:"onTimePct"`
	QualityScore       float64   `json:"qualityScore"`
	SupplierSwitchRate float64   `json:"supplierSwitchRate"`
	SatisfactionScore  float64   `json:"satisfactionScore"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}
