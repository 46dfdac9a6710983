package events

import (
	"time"

	"github.com/spec-kit/ticket-connection/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCustomerDrafted     EventType = "customer_drafted"
	EventConnectionAssembled EventType = "connection_assembled"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	ActorID   string    `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// CustomerDraftedPayload describes a customer built from request fields.
type CustomerDraftedPayload struct {
	CustomerID          string              `json:"customer_id"`
	CustomerType        domain.CustomerType `json:"customer_type"`
	WithoutPassportData bool                `json:"without_passport_data"`
}

// ConnectionAssembledPayload summarizes a resolved connection bundle.
type ConnectionAssembledPayload struct {
	HouseID     string  `json:"house_id"`
	ITServiceID string  `json:"itservice_id"`
	WorkTypeID  string  `json:"work_type_id"`
	CustomerID  *string `json:"customer_id,omitempty"`
	ProviderID  *string `json:"provider_id,omitempty"`
}
