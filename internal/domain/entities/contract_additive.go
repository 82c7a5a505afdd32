package entities

import (
	"time"

	"github.com/google/uuid"

	"github.com/volatiletech/null/v8"
)

// ContractAdditive is a financial amendment record tied to one contract.
// Additives are append-only.
type ContractAdditive struct {
	ID            uuid.UUID `json:"id"`
	ContractID    uuid.UUID `json:"contractId"`
	AdditiveDate  null.Time `json:"additiveDate"`
	AdditiveValue float64   `json:"additiveValue"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"createdAt"`
}
