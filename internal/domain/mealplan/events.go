package mealplan

import (
	"time"

	"github.com/google/uuid"
)

// PlanCreatedEvent is raised when a plan is assembled from an
// assignment run.
type PlanCreatedEvent struct {
	PlanID    uuid.UUID
	Name      string
	Slots     int
	CreatedAt time.Time
}

// EventName implements shared.DomainEvent.
func (e PlanCreatedEvent) EventName() string { return "mealplan.created" }

// OccurredAt implements shared.DomainEvent.
func (e PlanCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }
