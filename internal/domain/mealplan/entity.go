// Package mealplan contains the meal plan aggregate: the shape of a
// planning request and the slot assignments produced for it.
package mealplan

import (
	"time"

	"github.com/google/uuid"

	"github.com/kitchensage/v2/internal/domain/shared"
)

// MealPlan is the aggregate root for one assembled plan.
type MealPlan struct {
	shared.AggregateRoot

	id           uuid.UUID
	name         string
	shape        PlanShape
	assignments  []SlotAssignment
	varietyScore float64
	createdAt    time.Time
}

// NewMealPlan assembles a plan from an assignment run. An empty
// assignment list is allowed: it represents a degraded-but-valid plan
// produced from an exhausted pool.
func NewMealPlan(name string, shape PlanShape, assignments []SlotAssignment) (*MealPlan, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	plan := &MealPlan{
		id:           uuid.New(),
		name:         name,
		shape:        shape,
		assignments:  assignments,
		varietyScore: varietyScore(assignments),
		createdAt:    time.Now(),
	}

	plan.AddEvent(PlanCreatedEvent{
		PlanID:    plan.id,
		Name:      name,
		Slots:     len(assignments),
		CreatedAt: plan.createdAt,
	})

	return plan, nil
}

// Reconstruct rebuilds a plan from persisted state without raising events.
func Reconstruct(id uuid.UUID, name string, shape PlanShape, assignments []SlotAssignment, createdAt time.Time) *MealPlan {
	return &MealPlan{
		id:           id,
		name:         name,
		shape:        shape,
		assignments:  assignments,
		varietyScore: varietyScore(assignments),
		createdAt:    createdAt,
	}
}

// ID returns the plan's unique identifier.
func (p *MealPlan) ID() uuid.UUID {
	return p.id
}

// Name returns the synthesized plan title.
func (p *MealPlan) Name() string {
	return p.name
}

// Shape returns the request shape the plan was built for.
func (p *MealPlan) Shape() PlanShape {
	return p.shape
}

// Assignments returns the slot assignments in (day, meal type) order.
func (p *MealPlan) Assignments() []SlotAssignment {
	return p.assignments
}

// VarietyScore reports unique recipes used / total slots. Observability
// only; nothing enforces a minimum.
func (p *MealPlan) VarietyScore() float64 {
	return p.varietyScore
}

// CreatedAt returns when the plan was assembled.
func (p *MealPlan) CreatedAt() time.Time {
	return p.createdAt
}

// RecipeIDs returns the distinct recipe ids referenced by the plan.
func (p *MealPlan) RecipeIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(p.assignments))
	ids := make([]uuid.UUID, 0, len(p.assignments))
	for _, a := range p.assignments {
		if _, ok := seen[a.RecipeID]; ok {
			continue
		}
		seen[a.RecipeID] = struct{}{}
		ids = append(ids, a.RecipeID)
	}
	return ids
}

func varietyScore(assignments []SlotAssignment) float64 {
	if len(assignments) == 0 {
		return 0
	}
	unique := make(map[uuid.UUID]struct{}, len(assignments))
	for _, a := range assignments {
		unique[a.RecipeID] = struct{}{}
	}
	return float64(len(unique)) / float64(len(assignments))
}
