package events

import (
	"time"

	"github.com/spec-kit/bank-crm-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventClientCreated  EventType = "client_created"
	EventClientUpdated  EventType = "client_updated"
	EventClientVerified EventType = "client_verified"
	EventClientDeleted  EventType = "client_deleted"

	EventAccountCreated EventType = "account_created"
	EventAccountUpdated EventType = "account_updated"
	EventAccountDeleted EventType = "account_deleted"

	EventStaffProvisioned EventType = "staff_provisioned"
	EventStaffUpdated     EventType = "staff_updated"
	EventStaffDeactivated EventType = "staff_deactivated"
)

// Actor identifies the staff member who triggered the event.
type Actor struct {
	StaffID string           `json:"staff_id"`
	Role    domain.StaffRole `json:"role,omitempty"`
}

// Event represents a domain event emitted by services after a successful
// mutation. RecipientEmail is where the customer-facing notification goes;
// empty means no email is owed.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	ResourceID     string      `json:"resource_id"`
	RecipientEmail string      `json:"recipient_email,omitempty"`
	Actor          Actor       `json:"actor"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload,omitempty"`
}

// ClientEventPayload payload.
type ClientEventPayload struct {
	AgentID string `json:"agent_id"`
}

// AccountEventPayload payload.
type AccountEventPayload struct {
	ClientID string               `json:"client_id"`
	AgentID  string               `json:"agent_id"`
	Status   domain.AccountStatus `json:"status"`
}

// StaffEventPayload payload.
type StaffEventPayload struct {
	Email string           `json:"email"`
	Role  domain.StaffRole `json:"role"`
}
