package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/domain/recipe"
)

const maxTitleLength = 50

// dominantCuisineThreshold: a cuisine must cover more than this share
// of used recipes to count toward the title.
const dominantCuisineThreshold = 0.30

// TitleSynthesizer derives a short human-readable plan name from the
// cuisine distribution, dietary filters, and free-text hint. Pure.
type TitleSynthesizer struct{}

// NewTitleSynthesizer creates a title synthesizer.
func NewTitleSynthesizer() *TitleSynthesizer {
	return &TitleSynthesizer{}
}

// Synthesize builds the title. Heuristics fire in priority order:
// dietary prefix, dominant cuisine, time theme, hint keywords; the
// fallback is "{days}-Day Meal Plan". Output is capped at 50 chars.
func (t *TitleSynthesizer) Synthesize(assignments []mealplan.SlotAssignment, shape mealplan.PlanShape, pool []*recipe.Recipe) string {
	var parts []string

	prefix := dietaryPrefix(shape.DietaryTags)
	if prefix != "" {
		parts = append(parts, prefix)
	}

	if cuisine := cuisineTheme(assignments, pool, prefix != ""); cuisine != "" {
		parts = append(parts, cuisine)
	} else if theme := timeTheme(assignments, shape.Hint); theme != "" {
		parts = append(parts, theme)
	}

	if special := hintTheme(shape.Hint); special != "" && len(parts) < 2 {
		parts = append(parts, special)
	}

	title := strings.Join(parts, " ")
	if title == "" {
		title = fmt.Sprintf("%d-Day Meal Plan", shape.Days)
	}

	return truncate(title, maxTitleLength)
}

func dietaryPrefix(tags []recipe.DietaryTag) string {
	// Priority order mirrors how users describe plans.
	for _, candidate := range []recipe.DietaryTag{
		recipe.DietaryTagVegan,
		recipe.DietaryTagVegetarian,
		recipe.DietaryTagKeto,
		recipe.DietaryTagPaleo,
	} {
		for _, tag := range tags {
			if tag == candidate {
				return titleCase(string(candidate))
			}
		}
	}
	return ""
}

// cuisineTheme names the cuisines covering more than 30% of used
// recipes: one yields "{Cuisine} Week", two "{A} & {B}", three or more
// "International". With a dietary prefix already in place the single
// cuisine stands alone ("Vegetarian Italian", not "Vegetarian Italian
// Week").
func cuisineTheme(assignments []mealplan.SlotAssignment, pool []*recipe.Recipe, withPrefix bool) string {
	if len(assignments) == 0 {
		return ""
	}

	byID := make(map[string]*recipe.Recipe, len(pool))
	for _, rec := range pool {
		byID[rec.ID().String()] = rec
	}

	counts := make(map[recipe.CuisineType]int)
	total := 0
	seen := make(map[string]struct{})
	for _, a := range assignments {
		if _, ok := seen[a.RecipeID.String()]; ok {
			continue
		}
		seen[a.RecipeID.String()] = struct{}{}
		rec, ok := byID[a.RecipeID.String()]
		if !ok {
			continue
		}
		counts[rec.Cuisine()]++
		total++
	}
	if total == 0 {
		return ""
	}

	var dominant []string
	for cuisine, n := range counts {
		if float64(n)/float64(total) > dominantCuisineThreshold {
			dominant = append(dominant, titleCase(string(cuisine)))
		}
	}
	// Stable order for deterministic titles.
	sort.Strings(dominant)

	switch len(dominant) {
	case 0:
		return ""
	case 1:
		if withPrefix {
			return dominant[0]
		}
		return dominant[0] + " Week"
	case 2:
		return dominant[0] + " & " + dominant[1]
	default:
		return "International"
	}
}

func timeTheme(assignments []mealplan.SlotAssignment, hint string) string {
	if len(assignments) == 0 {
		return ""
	}
	totalPrep := 0
	for _, a := range assignments {
		totalPrep += a.PrepTimeMinutes
	}
	avgPrep := totalPrep / len(assignments)

	lower := strings.ToLower(hint)
	if avgPrep <= 15 || strings.Contains(lower, "quick") || strings.Contains(lower, "fast") {
		return "Quick Meals"
	}
	if strings.Contains(lower, "weeknight") || strings.Contains(lower, "easy") {
		return "Weeknight Dinners"
	}
	return ""
}

func hintTheme(hint string) string {
	lower := strings.ToLower(hint)
	switch {
	case strings.Contains(lower, "family"):
		return "Family Favorites"
	case strings.Contains(lower, "budget"):
		return "Budget Eats"
	case strings.Contains(lower, "healthy"):
		return "Healthy Picks"
	case strings.Contains(lower, "comfort"):
		return "Comfort Food"
	}
	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func titleCase(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
