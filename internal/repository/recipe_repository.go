package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipebox/internal/model"
)

// RecipeFilter narrows a recipe listing. A recipe matches when it carries at
// least one tag from TagIDs or one ingredient from IngredientIDs; when both
// lists are set the conditions combine with OR.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

func (f RecipeFilter) empty() bool {
	return len(f.TagIDs) == 0 && len(f.IngredientIDs) == 0
}

// RecipeRepository defines recipe persistence operations. Every lookup is
// scoped to a user id; rows owned by anyone else behave as absent.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Save(ctx context.Context, recipe *model.Recipe) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Recipe, error)
	ListByUser(ctx context.Context, userID uint, filter RecipeFilter) ([]model.Recipe, error)
	Delete(ctx context.Context, recipe *model.Recipe) error
	ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error
	ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create persists a recipe together with any attached tags/ingredients.
// Association rows and brand-new tag/ingredient rows (zero ID) are written
// in the same transaction GORM opens for the create.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// Save updates the recipe row only. Relationship sets are replaced
// explicitly via ReplaceTags/ReplaceIngredients, never implicitly on save.
func (r *recipeRepository) Save(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error
}

func (r *recipeRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) ListByUser(ctx context.Context, userID uint, filter RecipeFilter) ([]model.Recipe, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("recipes.user_id = ?", userID)

	if !filter.empty() {
		// DISTINCT because a recipe matching through several attached
		// tags/ingredients must appear exactly once.
		q = q.Distinct("recipes.*")
		switch {
		case len(filter.TagIDs) > 0 && len(filter.IngredientIDs) > 0:
			q = q.
				Joins("LEFT JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
				Joins("LEFT JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
				Where("recipe_tags.tag_id IN ? OR recipe_ingredients.ingredient_id IN ?",
					filter.TagIDs, filter.IngredientIDs)
		case len(filter.TagIDs) > 0:
			q = q.
				Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
				Where("recipe_tags.tag_id IN ?", filter.TagIDs)
		default:
			q = q.
				Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
				Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
		}
	}

	var recipes []model.Recipe
	if err := q.
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.id DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Delete removes the recipe and its association rows. Tag and ingredient
// records themselves are left untouched.
func (r *recipeRepository) Delete(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Select("Tags", "Ingredients").Delete(recipe).Error
}

// ReplaceTags sets the recipe's tag set to exactly the given list. Entries
// with a zero ID are created first; anything previously attached but not
// listed is detached.
func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
	assoc := r.db.WithContext(ctx).Model(recipe).Association("Tags")
	if len(tags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(toAnySlice(tags)...)
}

// ReplaceIngredients mirrors ReplaceTags for the ingredient relation.
func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error {
	assoc := r.db.WithContext(ctx).Model(recipe).Association("Ingredients")
	if len(ingredients) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(toAnySlice(ingredients)...)
}

// toAnySlice converts a typed slice into the variadic form Association.Replace
// expects.
func toAnySlice[T any](in []T) []interface{} {
	out := make([]interface{}, 0, len(in))
	for i := range in {
		out = append(out, &in[i])
	}
	return out
}
