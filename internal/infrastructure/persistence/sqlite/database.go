// Package sqlite provides database setup, migration, and seed data.
// Despite the package name it also opens PostgreSQL connections; SQLite
// is simply the default driver for local development.
package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kitchensage/v2/internal/domain/recipe"
	"github.com/kitchensage/v2/internal/infrastructure/config"
	gormModels "github.com/kitchensage/v2/internal/infrastructure/persistence/gorm"
)

// SetupDatabase opens the configured database and runs auto-migration
func SetupDatabase(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.App.Debug {
		logLevel = gormlogger.Info
	}

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return db, nil
}

func openDialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return postgres.Open(cfg.GetDSN()), nil
	case "sqlite":
		dsn := cfg.GetDSN()
		if dsn == "" {
			dsn = ":memory:"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// SeedDatabase populates the catalog with sample recipes on first run
func SeedDatabase(db *gorm.DB) error {
	var count int64
	db.Model(&gormModels.RecipeModel{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	for _, sample := range sampleRecipes() {
		rec, err := recipe.New(sample.name, sample.cuisine, sample.servings,
			time.Duration(sample.prepMinutes)*time.Minute,
			time.Duration(sample.cookMinutes)*time.Minute)
		if err != nil {
			return fmt.Errorf("invalid sample recipe %q: %w", sample.name, err)
		}
		model := sampleToModel(rec, sample)
		if err := db.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create sample recipe %q: %w", sample.name, err)
		}
	}

	return nil
}

type sampleIngredient struct {
	name     string
	quantity float64
	unit     recipe.MeasurementUnit
	notes    string
}

type sampleRecipe struct {
	name        string
	cuisine     recipe.CuisineType
	tags        []recipe.DietaryTag
	prepMinutes int
	cookMinutes int
	servings    int
	ingredients []sampleIngredient
}

func sampleToModel(rec *recipe.Recipe, sample sampleRecipe) *gormModels.RecipeModel {
	tags := make(gormModels.StringSlice, 0, len(sample.tags))
	for _, tag := range sample.tags {
		tags = append(tags, string(tag))
	}

	ingredients := make([]gormModels.IngredientModel, 0, len(sample.ingredients))
	for i, ing := range sample.ingredients {
		ingredients = append(ingredients, gormModels.IngredientModel{
			ID:       uuid.New(),
			RecipeID: rec.ID(),
			Name:     ing.name,
			Quantity: ing.quantity,
			Unit:     string(ing.unit),
			Notes:    ing.notes,
			Position: i,
		})
	}

	return &gormModels.RecipeModel{
		ID:              rec.ID(),
		Name:            rec.Name(),
		Cuisine:         string(rec.Cuisine()),
		DietaryTags:     tags,
		PrepTimeMinutes: sample.prepMinutes,
		CookTimeMinutes: sample.cookMinutes,
		Servings:        sample.servings,
		CreatedAt:       rec.CreatedAt(),
		Ingredients:     ingredients,
	}
}

func sampleRecipes() []sampleRecipe {
	return []sampleRecipe{
		{
			name:        "Overnight Oatmeal with Berries",
			cuisine:     recipe.CuisineAmerican,
			tags:        []recipe.DietaryTag{recipe.DietaryTagVegetarian},
			prepMinutes: 5, cookMinutes: 0, servings: 2,
			ingredients: []sampleIngredient{
				{"Rolled oats", 1, recipe.MeasurementUnitCup, ""},
				{"Milk", 250, recipe.MeasurementUnitMilliliter, ""},
				{"Mixed berries", 0.5, recipe.MeasurementUnitCup, "fresh or frozen"},
				{"Honey", 1, recipe.MeasurementUnitTablespoon, ""},
			},
		},
		{
			name:        "Scrambled Eggs on Toast",
			cuisine:     recipe.CuisineAmerican,
			tags:        []recipe.DietaryTag{recipe.DietaryTagVegetarian},
			prepMinutes: 5, cookMinutes: 10, servings: 2,
			ingredients: []sampleIngredient{
				{"Eggs", 4, recipe.MeasurementUnitPiece, ""},
				{"Butter", 1, recipe.MeasurementUnitTablespoon, ""},
				{"Bread", 2, recipe.MeasurementUnitPiece, "sliced"},
				{"Chives", 1, recipe.MeasurementUnitTablespoon, "chopped"},
			},
		},
		{
			name:        "Banana Pancakes",
			cuisine:     recipe.CuisineAmerican,
			tags:        []recipe.DietaryTag{recipe.DietaryTagVegetarian},
			prepMinutes: 10, cookMinutes: 10, servings: 4,
			ingredients: []sampleIngredient{
				{"Flour", 1.5, recipe.MeasurementUnitCup, ""},
				{"Bananas", 2, recipe.MeasurementUnitPiece, "ripe"},
				{"Eggs", 2, recipe.MeasurementUnitPiece, ""},
				{"Milk", 300, recipe.MeasurementUnitMilliliter, ""},
			},
		},
		{
			name:        "Green Smoothie Bowl",
			cuisine:     recipe.CuisineAmerican,
			tags:        []recipe.DietaryTag{recipe.DietaryTagVegan, recipe.DietaryTagGlutenFree},
			prepMinutes: 10, cookMinutes: 0, servings: 1,
			ingredients: []sampleIngredient{
				{"Spinach", 2, recipe.MeasurementUnitCup, ""},
				{"Bananas", 1, recipe.MeasurementUnitPiece, "frozen"},
				{"Almond milk", 200, recipe.MeasurementUnitMilliliter, ""},
				{"Granola", 0.25, recipe.MeasurementUnitCup, ""},
			},
		},
		{
			name:        "Caesar Salad with Grilled Chicken",
			cuisine:     recipe.CuisineAmerican,
			prepMinutes: 15, cookMinutes: 15, servings: 2,
			ingredients: []sampleIngredient{
				{"Romaine lettuce", 1, recipe.MeasurementUnitPiece, "chopped"},
				{"Chicken breast", 300, recipe.MeasurementUnitGram, ""},
				{"Parmesan", 50, recipe.MeasurementUnitGram, "shaved"},
				{"Croutons", 1, recipe.MeasurementUnitCup, ""},
			},
		},
		{
			name:        "Tomato Basil Soup",
			cuisine:     recipe.CuisineItalian,
			tags:        []recipe.DietaryTag{recipe.DietaryTagVegetarian, recipe.DietaryTagGlutenFree},
			prepMinutes: 10, cookMinutes: 25, servings: 4,
			ingredients: []sampleIngredient{
				{"Tomatoes", 800, recipe.MeasurementUnitGram, "canned"},
				{"Onion", 1, recipe.MeasurementUnitPiece, "diced"},
				{"Basil", 0.25, recipe.MeasurementUnitCup, "fresh"},
				{"Vegetable stock", 500, recipe.MeasurementUnitMilliliter, ""},
			},
		},
		{
			name:        "Turkey Club Sandwich",
			cuisine:     recipe.CuisineAmerican,
			prepMinutes: 10, cookMinutes: 5, servings: 1,
			ingredients: []sampleIngredient{
				{"Bread", 3, recipe.MeasurementUnitPiece, "toasted"},
				{"Turkey", 100, recipe.MeasurementUnitGram, "sliced"},
				{"Bacon", 2, recipe.MeasurementUnitPiece, ""},
				{"Tomatoes", 1, recipe.MeasurementUnitPiece, "sliced"},
			},
		},
		{
			name:        "Quinoa Veggie Bowl",
			cuisine:     recipe.CuisineMediterranean,
			tags:        []recipe.DietaryTag{recipe.DietaryTagVegan, recipe.DietaryTagGlutenFree},
			prepMinutes: 15, cookMinutes: 20, servings: 2,
			ingredients: []sampleIngredient{
				{"Quinoa", 1, recipe.MeasurementUnitCup, ""},
				{"Chickpeas", 1, recipe.MeasurementUnitCup, "drained"},
				{"Cucumber", 1, recipe.MeasurementUnitPiece, "diced"},
				{"Tahini", 2, recipe.MeasurementUnitTablespoon, ""},
			},
		},
		{
			name:        "Chicken Wrap with Hummus",
			cuisine:     recipe.CuisineMediterranean,
			prepMinutes: 15, cookMinutes: 10, servings: 2,
			ingredients: []sampleIngredient{
				{"Tortillas", 2, recipe.MeasurementUnitPiece, ""},
				{"Chicken breast", 250, recipe.MeasurementUnitGram, "grilled"},
				{"Hummus", 0.5, recipe.MeasurementUnitCup, ""},
				{"Lettuce", 1, recipe.MeasurementUnitCup, "shredded"},
			},
		},
		{
			name:        "Pasta Primavera",
			cuisine:     recipe.CuisineItalian,
			tags:        []recipe.DietaryTag{recipe.DietaryTagVegetarian},
			prepMinutes: 15, cookMinutes: 20, servings: 4,
			ingredients: []sampleIngredient{
				{"Penne", 400, recipe.MeasurementUnitGram, ""},
				{"Zucchini", 1, recipe.MeasurementUnitPiece, "sliced"},
				{"Bell pepper", 1, recipe.MeasurementUnitPiece, "sliced"},
				{"Parmesan", 50, recipe.MeasurementUnitGram, "grated"},
			},
		},
		{
			name:        "Beef Stew with Root Vegetables",
			cuisine:     recipe.CuisineFrench,
			prepMinutes: 20, cookMinutes: 120, servings: 6,
			ingredients: []sampleIngredient{
				{"Beef chuck", 1, recipe.MeasurementUnitKilogram, "cubed"},
				{"Carrots", 4, recipe.MeasurementUnitPiece, "chopped"},
				{"Potatoes", 500, recipe.MeasurementUnitGram, "quartered"},
				{"Beef stock", 1, recipe.MeasurementUnitLiter, ""},
			},
		},
		{
			name:        "Chicken Tikka Curry",
			cuisine:     recipe.CuisineIndian,
			tags:        []recipe.DietaryTag{recipe.DietaryTagGlutenFree},
			prepMinutes: 20, cookMinutes: 40, servings: 4,
			ingredients: []sampleIngredient{
				{"Chicken thighs", 600, recipe.MeasurementUnitGram, "cubed"},
				{"Yogurt", 1, recipe.MeasurementUnitCup, ""},
				{"Tomatoes", 400, recipe.MeasurementUnitGram, "canned"},
				{"Garam masala", 2, recipe.MeasurementUnitTablespoon, ""},
			},
		},
		{
			name:        "Vegetable Green Curry",
			cuisine:     recipe.CuisineThai,
			tags:        []recipe.DietaryTag{recipe.DietaryTagVegan, recipe.DietaryTagGlutenFree},
			prepMinutes: 15, cookMinutes: 25, servings: 4,
			ingredients: []sampleIngredient{
				{"Coconut milk", 400, recipe.MeasurementUnitMilliliter, ""},
				{"Green curry paste", 3, recipe.MeasurementUnitTablespoon, ""},
				{"Broccoli", 1, recipe.MeasurementUnitPiece, "cut into florets"},
				{"Rice", 2, recipe.MeasurementUnitCup, "jasmine"},
			},
		},
		{
			name:        "Grilled Salmon with Asparagus",
			cuisine:     recipe.CuisineAmerican,
			tags:        []recipe.DietaryTag{recipe.DietaryTagGlutenFree, recipe.DietaryTagKeto},
			prepMinutes: 10, cookMinutes: 20, servings: 2,
			ingredients: []sampleIngredient{
				{"Salmon fillets", 2, recipe.MeasurementUnitPiece, ""},
				{"Asparagus", 300, recipe.MeasurementUnitGram, "trimmed"},
				{"Lemon", 1, recipe.MeasurementUnitPiece, ""},
				{"Olive oil", 2, recipe.MeasurementUnitTablespoon, ""},
			},
		},
		{
			name:        "Sunday Roast Chicken Dinner",
			cuisine:     recipe.CuisineAmerican,
			prepMinutes: 25, cookMinutes: 90, servings: 6,
			ingredients: []sampleIngredient{
				{"Whole chicken", 1.5, recipe.MeasurementUnitKilogram, ""},
				{"Potatoes", 1, recipe.MeasurementUnitKilogram, "quartered"},
				{"Carrots", 4, recipe.MeasurementUnitPiece, ""},
				{"Rosemary", 2, recipe.MeasurementUnitTablespoon, "fresh"},
			},
		},
		{
			name:        "Baked Ziti Casserole",
			cuisine:     recipe.CuisineItalian,
			tags:        []recipe.DietaryTag{recipe.DietaryTagVegetarian},
			prepMinutes: 20, cookMinutes: 45, servings: 6,
			ingredients: []sampleIngredient{
				{"Ziti", 500, recipe.MeasurementUnitGram, ""},
				{"Marinara sauce", 700, recipe.MeasurementUnitMilliliter, ""},
				{"Mozzarella", 250, recipe.MeasurementUnitGram, "shredded"},
				{"Ricotta", 250, recipe.MeasurementUnitGram, ""},
			},
		},
		{
			name:        "Beef and Broccoli Stir Fry",
			cuisine:     recipe.CuisineChinese,
			tags:        []recipe.DietaryTag{recipe.DietaryTagDairyFree},
			prepMinutes: 15, cookMinutes: 15, servings: 4,
			ingredients: []sampleIngredient{
				{"Flank steak", 500, recipe.MeasurementUnitGram, "thinly sliced"},
				{"Broccoli", 1, recipe.MeasurementUnitPiece, "cut into florets"},
				{"Soy sauce", 3, recipe.MeasurementUnitTablespoon, ""},
				{"Rice", 2, recipe.MeasurementUnitCup, ""},
			},
		},
		{
			name:        "Black Bean Tacos",
			cuisine:     recipe.CuisineMexican,
			tags:        []recipe.DietaryTag{recipe.DietaryTagVegan},
			prepMinutes: 10, cookMinutes: 15, servings: 4,
			ingredients: []sampleIngredient{
				{"Black beans", 2, recipe.MeasurementUnitCup, "cooked"},
				{"Tortillas", 8, recipe.MeasurementUnitPiece, "corn"},
				{"Avocado", 1, recipe.MeasurementUnitPiece, "sliced"},
				{"Lime", 1, recipe.MeasurementUnitPiece, ""},
			},
		},
	}
}
