package main

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebox/internal/config"
	"recipebox/internal/db"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

const (
	demoEmail    = "demo@recipebox.local"
	demoPassword = "demo-password"
)

type seedRecipe struct {
	Title       string
	TimeMinutes uint
	Price       string
	Description string
	Link        string
	Tags        []string
	Ingredients []string
}

var sampleRecipes = []seedRecipe{
	{
		Title:       "Thai Prawn Curry",
		TimeMinutes: 30,
		Price:       "9.50",
		Description: "Fragrant red curry with king prawns.",
		Link:        "https://example.com/thai-prawn-curry",
		Tags:        []string{"Thai", "Dinner"},
		Ingredients: []string{"Prawns", "Coconut Milk", "Red Curry Paste"},
	},
	{
		Title:       "Green Eggs on Toast",
		TimeMinutes: 10,
		Price:       "2.50",
		Description: "Quick breakfast with herbed scrambled eggs.",
		Tags:        []string{"Breakfast"},
		Ingredients: []string{"Eggs", "Bread", "Parsley"},
	},
	{
		Title:       "Apple Crumble",
		TimeMinutes: 45,
		Price:       "4.50",
		Description: "Classic dessert, best served warm.",
		Tags:        []string{"Dessert"},
		Ingredients: []string{"Apples", "Flour", "Butter", "Sugar"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	ingredientRepo := repository.NewIngredientRepository(gormDB)

	user, created, err := ensureDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	if created {
		log.Printf("Created demo user %s (password: %s)", demoEmail, demoPassword)
	} else {
		log.Printf("Demo user %s already exists", demoEmail)
	}

	seeded, skipped := 0, 0
	for _, sample := range sampleRecipes {
		ok, err := seedOne(ctx, recipeRepo, tagRepo, ingredientRepo, user, sample)
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", sample.Title, err)
		}
		if ok {
			seeded++
		} else {
			skipped++
		}
	}

	log.Printf("Seed completed: %d recipes created, %d already present", seeded, skipped)
}

func ensureDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, bool, error) {
	existing, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}
	user := &model.User{
		Name:         "Demo User",
		Email:        demoEmail,
		PasswordHash: string(hashed),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// seedOne creates a sample recipe for user unless a recipe with the same
// title already exists, reusing tags/ingredients by name.
func seedOne(
	ctx context.Context,
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	user *model.User,
	sample seedRecipe,
) (bool, error) {
	existing, err := recipeRepo.ListByUser(ctx, user.ID, repository.RecipeFilter{})
	if err != nil {
		return false, err
	}
	for _, r := range existing {
		if r.Title == sample.Title {
			return false, nil
		}
	}

	price, err := decimal.NewFromString(sample.Price)
	if err != nil {
		return false, err
	}

	recipe := &model.Recipe{
		UserID:      user.ID,
		Title:       sample.Title,
		TimeMinutes: sample.TimeMinutes,
		Price:       price,
		Description: sample.Description,
		Link:        sample.Link,
	}

	tags, err := tagRepo.FindByUserAndNames(ctx, user.ID, sample.Tags)
	if err != nil {
		return false, err
	}
	recipe.Tags = mergeTagNames(user.ID, sample.Tags, tags)

	ingredients, err := ingredientRepo.FindByUserAndNames(ctx, user.ID, sample.Ingredients)
	if err != nil {
		return false, err
	}
	recipe.Ingredients = mergeIngredientNames(user.ID, sample.Ingredients, ingredients)

	if err := recipeRepo.Create(ctx, recipe); err != nil {
		return false, err
	}
	return true, nil
}

func mergeTagNames(userID uint, names []string, existing []model.Tag) []model.Tag {
	byName := make(map[string]model.Tag, len(existing))
	for _, t := range existing {
		byName[t.Name] = t
	}
	out := make([]model.Tag, 0, len(names))
	for _, name := range names {
		if t, ok := byName[name]; ok {
			out = append(out, t)
		} else {
			out = append(out, model.Tag{UserID: userID, Name: name})
		}
	}
	return out
}

func mergeIngredientNames(userID uint, names []string, existing []model.Ingredient) []model.Ingredient {
	byName := make(map[string]model.Ingredient, len(existing))
	for _, in := range existing {
		byName[in.Name] = in
	}
	out := make([]model.Ingredient, 0, len(names))
	for _, name := range names {
		if in, ok := byName[name]; ok {
			out = append(out, in)
		} else {
			out = append(out, model.Ingredient{UserID: userID, Name: name})
		}
	}
	return out
}
