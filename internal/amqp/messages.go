package amqp

import (
	"encoding/json"
	"time"
)

// EntityEvent describes one committed mutation on an owned resource.
// Consumers use it for audit trails and cache invalidation hints; the
// services themselves never read it back.
type EntityEvent struct {
	Resource string    `json:"resource"` // accounts, categories, transactions, subscriptions
	Action   string    `json:"action"`   // created, updated, deleted
	ID       string    `json:"id"`
	Owner    string    `json:"owner"`
	At       time.Time `json:"at"`
}

// NewEntityEvent stamps an event with the current time.
func NewEntityEvent(resource, action, id, owner string) EntityEvent {
	return EntityEvent{
		Resource: resource,
		Action:   action,
		ID:       id,
		Owner:    owner,
		At:       time.Now().UTC(),
	}
}

// ToJSON serializes the event for publishing.
func (e EntityEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EntityEventFromJSON deserializes a published event.
func EntityEventFromJSON(body []byte) (*EntityEvent, error) {
	var e EntityEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
