package entities

import (
	"time"

	"github.com/google/uuid"
)

// ComplianceCheck holds the compliance snapshot of one contract.
// At most one row exists per contract (upsert semantics).
type ComplianceCheck struct {
	ID                      uuid.UUID `json:"id"`
	ContractID              uuid.UUID `json:"contractId"`
	MandatoryClausesScore   float64   `json:"mandatoryClausesScore"`
	OutOfStandard           bool      `json:"outOfStandard"`
	HasGuarantee            bool      `json:"hasGuarantee"`
	HasInsurance            bool      `json:"hasInsurance"`
	RegulatoryCompliancePct float64   `json:"regulatoryCompliancePct"`
	Audited                 bool      `json:"audited"`
	NonconformitiesCount    int       `json:"nonconformitiesCount"`
	RiskScore               float64   `json:"riskScore"`
	CreatedAt               time.Time `json:"createdAt"`
	UpdatedAt               time.Time `json:"updatedAt"`
}
