package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/infrastructure/monitoring"
	"github.com/kitchensage/v2/internal/ports/inbound"
	"github.com/kitchensage/v2/internal/ports/outbound"
	"github.com/kitchensage/v2/pkg/errors"
)

// PlannerService implements the meal plan composition use cases.
type PlannerService struct {
	catalog     outbound.RecipeCatalog
	planStore   outbound.MealPlanStore
	categorizer *Categorizer
	assigner    *Assigner
	titles      *TitleSynthesizer
	bridge      *StreamBridge
	metrics     *monitoring.Metrics
	logger      *zap.Logger
}

// NewPlannerService creates a new planner service.
func NewPlannerService(
	catalog outbound.RecipeCatalog,
	planStore outbound.MealPlanStore,
	categorizer *Categorizer,
	assigner *Assigner,
	titles *TitleSynthesizer,
	bridge *StreamBridge,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) inbound.PlannerService {
	return &PlannerService{
		catalog:     catalog,
		planStore:   planStore,
		categorizer: categorizer,
		assigner:    assigner,
		titles:      titles,
		bridge:      bridge,
		metrics:     metrics,
		logger:      logger.Named("planner-service"),
	}
}

// ComposePlan runs the full pipeline synchronously.
func (s *PlannerService) ComposePlan(ctx context.Context, cmd inbound.ComposePlanCommand) (*inbound.PlanResult, error) {
	return s.compose(ctx, cmd, nil)
}

// StreamPlan runs the pipeline on a worker goroutine, emitting progress
// events. The channel closes after the terminal event.
func (s *PlannerService) StreamPlan(ctx context.Context, cmd inbound.ComposePlanCommand) (<-chan inbound.ProgressEvent, error) {
	if err := cmd.Shape().Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	events := s.bridge.Run(ctx, func(ctx context.Context, emit func(inbound.ProgressEvent) bool) (*inbound.PlanResult, error) {
		return s.compose(ctx, cmd, emit)
	})
	return events, nil
}

// compose is the shared pipeline. emit is nil for synchronous runs.
func (s *PlannerService) compose(ctx context.Context, cmd inbound.ComposePlanCommand, emit func(inbound.ProgressEvent) bool) (*inbound.PlanResult, error) {
	shape := cmd.Shape()
	if err := shape.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	progress := func(evType inbound.ProgressEventType, stage, message string) bool {
		if emit == nil {
			return true
		}
		return emit(inbound.ProgressEvent{Type: evType, Stage: stage, Message: message})
	}

	if !progress(inbound.EventThinking, "pool", "Gathering candidate recipes") {
		return nil, ctx.Err()
	}

	pool, err := s.catalog.Search(ctx, outbound.SearchCriteria{
		DietaryTags: shape.DietaryTags,
		Limit:       100,
	})
	if err != nil {
		return nil, errors.NewDatabaseError("search recipe pool", err)
	}

	progress(inbound.EventToolResult, "pool", fmt.Sprintf("Found %d candidate recipes", len(pool)))

	degradedReason := ""
	if len(pool) == 0 {
		tags := make([]string, 0, len(shape.DietaryTags))
		for _, t := range shape.DietaryTags {
			tags = append(tags, string(t))
		}
		s.logger.Warn("recipe pool exhausted", zap.Strings("dietary_tags", tags))
		degradedReason = "no recipes match the requested constraints"
	} else if len(pool) < shape.TotalSlots() {
		degradedReason = fmt.Sprintf("limited recipes available (%d); plan may have repetitions", len(pool))
	}

	if !progress(inbound.EventToolStart, "assign", "Assigning recipes to meal slots") {
		return nil, ctx.Err()
	}

	assignments, variety := s.assigner.Assign(pool, shape)
	progress(inbound.EventTaskComplete, "assign",
		fmt.Sprintf("Filled %d of %d slots", len(assignments), shape.TotalSlots()))

	title := s.titles.Synthesize(assignments, shape, pool)

	plan, err := mealplan.NewMealPlan(title, shape, assignments)
	if err != nil {
		return nil, errors.Wrap(err, "failed to assemble meal plan")
	}

	if err := s.planStore.Save(ctx, plan); err != nil {
		return nil, errors.NewDatabaseError("save meal plan", err)
	}

	outcome := inbound.OutcomeSuccess
	if degradedReason != "" {
		outcome = inbound.OutcomeDegraded
	}
	if s.metrics != nil {
		s.metrics.RecordPlanCreated(string(outcome), variety)
	}

	s.logger.Info("meal plan composed",
		zap.String("plan_id", plan.ID().String()),
		zap.String("title", title),
		zap.String("outcome", string(outcome)),
		zap.Float64("variety_score", variety))

	return &inbound.PlanResult{
		Outcome: outcome,
		Plan:    toPlanDTO(plan),
		Reason:  degradedReason,
	}, nil
}

// GetPlanByID returns one plan.
func (s *PlannerService) GetPlanByID(ctx context.Context, planID uuid.UUID) (*inbound.MealPlanDTO, error) {
	plan, err := s.planStore.FindByID(ctx, planID)
	if err != nil {
		return nil, errors.NewPlanNotFoundError(planID.String())
	}
	return toPlanDTO(plan), nil
}

// ListRecentPlans returns the most recently created plans.
func (s *PlannerService) ListRecentPlans(ctx context.Context, limit int) ([]inbound.MealPlanDTO, error) {
	if limit <= 0 {
		limit = 10
	}
	plans, err := s.planStore.FindRecent(ctx, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("list recent plans", err)
	}
	dtos := make([]inbound.MealPlanDTO, 0, len(plans))
	for _, plan := range plans {
		dtos = append(dtos, *toPlanDTO(plan))
	}
	return dtos, nil
}

// DeletePlan removes a plan.
func (s *PlannerService) DeletePlan(ctx context.Context, planID uuid.UUID) error {
	if err := s.planStore.Delete(ctx, planID); err != nil {
		return errors.NewDatabaseError("delete meal plan", err)
	}
	return nil
}

func toPlanDTO(plan *mealplan.MealPlan) *inbound.MealPlanDTO {
	assignments := make([]inbound.SlotAssignmentDTO, 0, len(plan.Assignments()))
	for _, a := range plan.Assignments() {
		assignments = append(assignments, inbound.SlotAssignmentDTO{
			Day:               a.Day,
			MealType:          string(a.MealType),
			RecipeID:          a.RecipeID,
			RecipeName:        a.RecipeName,
			EffectiveServings: a.EffectiveServings,
			PrepTimeMinutes:   a.PrepTimeMinutes,
			CookTimeMinutes:   a.CookTimeMinutes,
		})
	}
	return &inbound.MealPlanDTO{
		ID:           plan.ID(),
		Name:         plan.Name(),
		Days:         plan.Shape().Days,
		People:       plan.Shape().People,
		DietaryTags:  plan.Shape().DietaryTags,
		Assignments:  assignments,
		VarietyScore: plan.VarietyScore(),
		CreatedAt:    plan.CreatedAt().Format(time.RFC3339),
	}
}
