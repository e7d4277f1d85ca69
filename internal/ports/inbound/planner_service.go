// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/domain/recipe"
)

// PlannerService defines the use cases for composing meal plans.
// This is the primary port that HTTP handlers and other driving adapters will use
type PlannerService interface {
	// ComposePlan runs the full pipeline synchronously: pool retrieval,
	// categorization, assignment, title synthesis, persistence.
	ComposePlan(ctx context.Context, cmd ComposePlanCommand) (*PlanResult, error)

	// StreamPlan runs the same pipeline on a worker goroutine and emits
	// progress events on the returned channel. The channel is closed
	// when the run finishes, fails, or is cancelled; closure is the only
	// completion signal.
	StreamPlan(ctx context.Context, cmd ComposePlanCommand) (<-chan ProgressEvent, error)

	// Queries
	GetPlanByID(ctx context.Context, planID uuid.UUID) (*MealPlanDTO, error)
	ListRecentPlans(ctx context.Context, limit int) ([]MealPlanDTO, error)
	DeletePlan(ctx context.Context, planID uuid.UUID) error
}

// ComposePlanCommand contains data for one planning run.
type ComposePlanCommand struct {
	Days             int
	People           int
	DietaryTags      []recipe.DietaryTag
	Hint             string
	Budget           float64
	ServingsOverride int
}

// Shape converts the command into the domain request shape.
func (c ComposePlanCommand) Shape() mealplan.PlanShape {
	return mealplan.PlanShape{
		Days:             c.Days,
		People:           c.People,
		DietaryTags:      c.DietaryTags,
		Hint:             c.Hint,
		Budget:           c.Budget,
		ServingsOverride: c.ServingsOverride,
	}
}

// PlanOutcome tags the three terminal states of a planning run.
type PlanOutcome string

const (
	// OutcomeSuccess means every slot was filled from the pool.
	OutcomeSuccess PlanOutcome = "success"
	// OutcomeDegraded means the plan is usable but some slots fell back
	// to the full pool or stayed empty.
	OutcomeDegraded PlanOutcome = "degraded"
	// OutcomeFailed means no plan was produced.
	OutcomeFailed PlanOutcome = "failed"
)

// PlanResult is the tagged outcome of a planning run. Callers branch on
// Outcome instead of probing the payload.
type PlanResult struct {
	Outcome PlanOutcome  `json:"outcome"`
	Plan    *MealPlanDTO `json:"plan,omitempty"`
	Reason  string       `json:"reason,omitempty"`
}

// ProgressEventType enumerates the events a streaming run emits.
type ProgressEventType string

const (
	EventThinking     ProgressEventType = "thinking"
	EventToolStart    ProgressEventType = "tool_start"
	EventToolResult   ProgressEventType = "tool_result"
	EventTaskComplete ProgressEventType = "task_complete"
	EventComplete     ProgressEventType = "complete"
	EventError        ProgressEventType = "error"
)

// ProgressEvent is one unit of streaming progress. Result is set only
// on EventComplete; Err only on EventError.
type ProgressEvent struct {
	Type      ProgressEventType `json:"type"`
	Stage     string            `json:"stage,omitempty"`
	Message   string            `json:"message,omitempty"`
	Result    *PlanResult       `json:"result,omitempty"`
	Err       string            `json:"error,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Response DTOs

// MealPlanDTO is the data transfer object for meal plans.
type MealPlanDTO struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Days         int                 `json:"days"`
	People       int                 `json:"people"`
	DietaryTags  []recipe.DietaryTag `json:"dietary_tags,omitempty"`
	Assignments  []SlotAssignmentDTO `json:"assignments"`
	VarietyScore float64             `json:"variety_score"`
	CreatedAt    string              `json:"created_at"`
}

// SlotAssignmentDTO for one (day, meal type) slot.
type SlotAssignmentDTO struct {
	Day               int       `json:"day"`
	MealType          string    `json:"meal_type"`
	RecipeID          uuid.UUID `json:"recipe_id"`
	RecipeName        string    `json:"recipe_name"`
	EffectiveServings int       `json:"effective_servings"`
	PrepTimeMinutes   int       `json:"prep_time_minutes"`
	CookTimeMinutes   int       `json:"cook_time_minutes"`
}
