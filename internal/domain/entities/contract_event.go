package entities

import (
	"time"

	"github.com/google/uuid"
)

// Event type tags used by the audit trail. The column is a free string;
// these are the tags the system itself writes.
const (
	EventCreated        = "created"
	EventStatusChange   = "status_change"
	EventEdit           = "edit"
	EventAdditive       = "aditivo"
	EventPDFGenerated   = "pdf_generated"
	EventActivityUpdate = "activity_update"
)

// ContractEvent is an append-only audit log entry. Events are never
// updated or deleted; ordering is by creation time.
type ContractEvent struct {
	ID         uuid.UUID              `json:"id"`
	ContractID uuid.UUID              `json:"contractId"`
	EventType  string                 `json:"eventType"`
	EventData  map[string]interface{} `json:"eventData"`
	CreatedAt  time.Time              `json:"createdAt"`
}
