// Package grocery provides the application layer for grocery list
// generation: deterministic ingredient consolidation with optional
// external enrichment, and merging into the persistent list.
package grocery

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitchensage/v2/internal/domain/grocery"
	"github.com/kitchensage/v2/internal/infrastructure/monitoring"
	"github.com/kitchensage/v2/internal/ports/outbound"
)

// ConsolidationEngine merges raw ingredient occurrences into grocery
// lines. Consolidate never returns an error: enrichment failures fall
// back to the deterministic merge.
type ConsolidationEngine struct {
	enricher outbound.EnrichmentService
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewConsolidationEngine creates an engine. enricher may be nil, in
// which case only the deterministic merge runs.
func NewConsolidationEngine(enricher outbound.EnrichmentService, metrics *monitoring.Metrics, logger *zap.Logger) *ConsolidationEngine {
	return &ConsolidationEngine{
		enricher: enricher,
		metrics:  metrics,
		logger:   logger.Named("consolidation-engine"),
	}
}

// Consolidate merges raw items by case-insensitive (name, unit),
// summing quantities and joining distinct notes. When an enrichment
// service is configured and skipEnrichment is false, the merged list is
// sent for semantic cleanup; an invalid or failed response falls back
// to the deterministic result. The Enriched flag reports which path
// produced the output.
func (e *ConsolidationEngine) Consolidate(ctx context.Context, rawItems []grocery.RawItem, skipEnrichment bool) grocery.ConsolidationResult {
	merged := e.deterministicMerge(rawItems)
	if len(merged) == 0 {
		return grocery.ConsolidationResult{Items: merged}
	}

	if e.enricher == nil || skipEnrichment {
		return grocery.ConsolidationResult{Items: merged}
	}

	enriched, err := e.tryEnrich(ctx, merged)
	if err != nil {
		e.logger.Warn("enrichment failed, using deterministic merge", zap.Error(err))
		if e.metrics != nil {
			e.metrics.RecordConsolidationFallback()
		}
		return grocery.ConsolidationResult{Items: merged}
	}

	return grocery.ConsolidationResult{Items: enriched, Enriched: true}
}

// deterministicMerge groups by lowercased (name, unit), sums
// quantities, and joins distinct notes with "; ". Output is sorted by
// name for stable results.
func (e *ConsolidationEngine) deterministicMerge(rawItems []grocery.RawItem) []grocery.ConsolidatedItem {
	type bucket struct {
		item  grocery.ConsolidatedItem
		notes []string
	}

	buckets := make(map[grocery.MergeKey]*bucket)
	order := make([]grocery.MergeKey, 0, len(rawItems))

	for _, raw := range rawItems {
		if err := raw.Validate(); err != nil {
			e.logger.Debug("skipping invalid raw item",
				zap.String("name", raw.Name), zap.Error(err))
			continue
		}

		key := raw.MergeKey()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{item: grocery.ConsolidatedItem{
				IngredientID: raw.IngredientID,
				Name:         raw.Name,
				Unit:         raw.Unit,
			}}
			buckets[key] = b
			order = append(order, key)
		}
		b.item.Quantity += raw.Quantity
		if b.item.IngredientID == uuid.Nil {
			b.item.IngredientID = raw.IngredientID
		}
		if raw.Notes != "" && !contains(b.notes, raw.Notes) {
			b.notes = append(b.notes, raw.Notes)
		}
	}

	items := make([]grocery.ConsolidatedItem, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		b.item.Notes = strings.Join(b.notes, "; ")
		items = append(items, b.item)
	}

	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items
}

// tryEnrich posts the merged list to the enrichment service and
// validates the response: every item needs a name and positive
// quantity, and must correspond to an input line. A response that
// validates down to nothing is a failure.
func (e *ConsolidationEngine) tryEnrich(ctx context.Context, merged []grocery.ConsolidatedItem) ([]grocery.ConsolidatedItem, error) {
	start := time.Now()
	response, err := e.enricher.EnrichItems(ctx, merged)
	if e.metrics != nil {
		e.metrics.RecordEnrichmentDuration(time.Since(start))
	}
	if err != nil {
		return nil, err
	}

	known := make(map[string]uuid.UUID, len(merged))
	for _, item := range merged {
		known[strings.ToLower(strings.TrimSpace(item.Name))] = item.IngredientID
	}

	valid := make([]grocery.ConsolidatedItem, 0, len(response))
	for _, item := range response {
		if item.Validate() != nil {
			e.logger.Debug("dropping structurally invalid enriched item",
				zap.String("name", item.Name))
			continue
		}
		// Enrichment may merge or drop lines, never invent them.
		ingredientID, ok := known[strings.ToLower(strings.TrimSpace(item.Name))]
		if !ok {
			e.logger.Debug("dropping enriched item absent from input",
				zap.String("name", item.Name))
			continue
		}
		// Restore the catalog identity; the model's copy is not trusted.
		item.IngredientID = ingredientID
		valid = append(valid, item)
	}

	if len(valid) == 0 {
		return nil, errEmptyEnrichment
	}
	if len(valid) > len(merged) {
		return nil, errEnrichmentGrew
	}
	return valid, nil
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
