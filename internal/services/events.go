package services

import "log"

// Event types published after successful writes.
const (
	EventUserRegistered = "user.registered"
	EventDataCreated    = "data.created"
	EventDataUpdated    = "data.updated"
	EventDataDeleted    = "data.deleted"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishEvent(eventType string, payload interface{}) error
}

// publish sends an event if a publisher is configured. Failures are logged
// and never fail the caller.
func publish(p EventPublisher, eventType string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
