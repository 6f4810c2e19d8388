package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the kind of change an event announces
type EventType string

const (
	EventTypeCreated  EventType = "created"
	EventTypeUpdated  EventType = "updated"
	EventTypeRecorded EventType = "recorded"
	EventTypeSettled  EventType = "settled"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeTenant     EntityType = "tenant"
	EntityTypeRecord     EntityType = "monthly_record"
	EntityTypePayment    EntityType = "payment"
	EntityTypeSettlement EntityType = "settlement"
)

// Event represents a message pushed to connected staff dashboards
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "payment.recorded"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "payment"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TenantCreated creates a tenant.created event
func TenantCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeTenant, payload)
}

// RecordUpdated creates a monthly_record.updated event
func RecordUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeRecord, payload)
}

// PaymentRecorded creates a payment.recorded event
func PaymentRecorded(payload interface{}) Event {
	return NewEvent(EventTypeRecorded, EntityTypePayment, payload)
}

// SettlementCreated creates a settlement.created event
func SettlementCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeSettlement, payload)
}
