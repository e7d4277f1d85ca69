package gorm

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kitchensage/v2/internal/domain/grocery"
	"github.com/kitchensage/v2/internal/domain/mealplan"
	"github.com/kitchensage/v2/internal/domain/recipe"
)

// toRecipeModel converts a domain recipe to its persistence model
func toRecipeModel(rec *recipe.Recipe) *RecipeModel {
	ingredients := make([]IngredientModel, 0, len(rec.Ingredients()))
	for i, ing := range rec.Ingredients() {
		ingredients = append(ingredients, IngredientModel{
			ID:       ing.ID,
			RecipeID: rec.ID(),
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     string(ing.Unit),
			Notes:    ing.Notes,
			Position: i,
		})
	}

	tags := make(StringSlice, 0, len(rec.DietaryTags()))
	for _, tag := range rec.DietaryTags() {
		tags = append(tags, string(tag))
	}

	return &RecipeModel{
		ID:              rec.ID(),
		Name:            rec.Name(),
		Cuisine:         string(rec.Cuisine()),
		DietaryTags:     tags,
		PrepTimeMinutes: int(rec.PrepTime().Minutes()),
		CookTimeMinutes: int(rec.CookTime().Minutes()),
		Servings:        rec.Servings(),
		CreatedAt:       rec.CreatedAt(),
		Ingredients:     ingredients,
	}
}

// toRecipeDomain converts a persistence model to a domain recipe
func toRecipeDomain(model *RecipeModel) *recipe.Recipe {
	tags := make([]recipe.DietaryTag, 0, len(model.DietaryTags))
	for _, tag := range model.DietaryTags {
		tags = append(tags, recipe.DietaryTag(tag))
	}

	ingredients := make([]recipe.Ingredient, 0, len(model.Ingredients))
	for _, ing := range model.Ingredients {
		ingredients = append(ingredients, recipe.Ingredient{
			ID:       ing.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     recipe.MeasurementUnit(ing.Unit),
			Notes:    ing.Notes,
		})
	}

	return recipe.Reconstruct(
		model.ID,
		model.Name,
		recipe.CuisineType(model.Cuisine),
		tags,
		time.Duration(model.PrepTimeMinutes)*time.Minute,
		time.Duration(model.CookTimeMinutes)*time.Minute,
		model.Servings,
		ingredients,
		model.CreatedAt,
	)
}

// toMealPlanModel converts a domain meal plan to its persistence model
func toMealPlanModel(plan *mealplan.MealPlan) *MealPlanModel {
	meals := make([]MealModel, 0, len(plan.Assignments()))
	for _, a := range plan.Assignments() {
		meals = append(meals, MealModel{
			ID:              uuid.New(),
			MealPlanID:      plan.ID(),
			Day:             a.Day,
			MealType:        string(a.MealType),
			RecipeID:        a.RecipeID,
			RecipeName:      a.RecipeName,
			Servings:        a.EffectiveServings,
			PrepTimeMinutes: a.PrepTimeMinutes,
			CookTimeMinutes: a.CookTimeMinutes,
		})
	}

	shape := plan.Shape()
	tags := make(StringSlice, 0, len(shape.DietaryTags))
	for _, tag := range shape.DietaryTags {
		tags = append(tags, string(tag))
	}

	return &MealPlanModel{
		ID:          plan.ID(),
		Name:        plan.Name(),
		Days:        shape.Days,
		People:      shape.People,
		DietaryTags: tags,
		Hint:        shape.Hint,
		Budget:      shape.Budget,
		CreatedAt:   plan.CreatedAt(),
		Meals:       meals,
	}
}

// toMealPlanDomain converts a persistence model to a domain meal plan
func toMealPlanDomain(model *MealPlanModel) *mealplan.MealPlan {
	tags := make([]recipe.DietaryTag, 0, len(model.DietaryTags))
	for _, tag := range model.DietaryTags {
		tags = append(tags, recipe.DietaryTag(tag))
	}

	assignments := make([]mealplan.SlotAssignment, 0, len(model.Meals))
	for _, meal := range model.Meals {
		assignments = append(assignments, mealplan.SlotAssignment{
			Day:               meal.Day,
			MealType:          mealplan.MealType(meal.MealType),
			RecipeID:          meal.RecipeID,
			RecipeName:        meal.RecipeName,
			EffectiveServings: meal.Servings,
			PrepTimeMinutes:   meal.PrepTimeMinutes,
			CookTimeMinutes:   meal.CookTimeMinutes,
		})
	}

	// Alphabetical meal_type ordering from the query puts dinner before
	// lunch; restore breakfast, lunch, dinner within each day.
	sort.SliceStable(assignments, func(i, j int) bool {
		if assignments[i].Day != assignments[j].Day {
			return assignments[i].Day < assignments[j].Day
		}
		return mealTypeRank(assignments[i].MealType) < mealTypeRank(assignments[j].MealType)
	})

	shape := mealplan.PlanShape{
		Days:        model.Days,
		People:      model.People,
		DietaryTags: tags,
		Hint:        model.Hint,
		Budget:      model.Budget,
	}

	return mealplan.Reconstruct(model.ID, model.Name, shape, assignments, model.CreatedAt)
}

func mealTypeRank(mt mealplan.MealType) int {
	for i, known := range mealplan.MealTypes() {
		if known == mt {
			return i
		}
	}
	return len(mealplan.MealTypes())
}

// toGroceryListModel converts a domain grocery list to its persistence model
func toGroceryListModel(list *grocery.GroceryList) *GroceryListModel {
	items := make([]GroceryItemModel, 0, len(list.Items()))
	for _, item := range list.Items() {
		items = append(items, GroceryItemModel{
			ID:           item.ID,
			ListID:       list.ID(),
			IngredientID: item.IngredientID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			Notes:        item.Notes,
			Category:     item.Category,
			Purchased:    item.Purchased,
		})
	}

	return &GroceryListModel{
		ID:        list.ID(),
		Name:      list.Name(),
		CreatedAt: list.CreatedAt(),
		UpdatedAt: list.UpdatedAt(),
		Items:     items,
	}
}

// toGroceryListDomain converts a persistence model to a domain grocery list
func toGroceryListDomain(model *GroceryListModel) *grocery.GroceryList {
	items := make([]grocery.GroceryItem, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, grocery.GroceryItem{
			ID:           item.ID,
			IngredientID: item.IngredientID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			Notes:        item.Notes,
			Category:     item.Category,
			Purchased:    item.Purchased,
		})
	}

	return grocery.ReconstructList(model.ID, model.Name, items, model.CreatedAt, model.UpdatedAt)
}
