// Package shared holds domain building blocks used by every aggregate.
package shared

import "time"

// DomainEvent represents an event that has occurred in the domain.
type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
}

// EventHandler handles domain events.
type EventHandler func(event DomainEvent) error

// AggregateRoot is the base type for aggregate roots. It collects domain
// events raised during a unit of work so the application layer can
// dispatch them after persistence succeeds.
type AggregateRoot struct {
	events []DomainEvent
}

// AddEvent records a domain event for later dispatch.
func (a *AggregateRoot) AddEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// Events returns and clears pending domain events.
func (a *AggregateRoot) Events() []DomainEvent {
	events := a.events
	a.events = nil
	return events
}
