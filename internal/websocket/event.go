package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is the change that happened to an entity
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypeSaved   EventType = "saved"
)

// EntityType is the kind of record an event refers to
type EntityType string

const (
	EntityTypeExpense       EntityType = "expense"
	EntityTypeMonthlyBudget EntityType = "monthly_budget"
)

// Event is the message pushed to dashboard clients.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"` // e.g. "expense.created"
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent builds an event stamped with the current UTC time
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ExpenseCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeExpense, payload)
}

func ExpenseUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeExpense, payload)
}

func ExpenseDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeExpense, payload)
}

// MonthlyBudgetSaved covers both insert and overwrite of a month's budget
func MonthlyBudgetSaved(payload interface{}) Event {
	return NewEvent(EventTypeSaved, EntityTypeMonthlyBudget, payload)
}

func MonthlyBudgetDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeMonthlyBudget, payload)
}
