package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// IngredientRepository defines ingredient persistence operations, all scoped
// to an owner.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *model.Ingredient) error
	Save(ctx context.Context, ingredient *model.Ingredient) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Ingredient, error)
	FindByUserAndNames(ctx context.Context, userID uint, names []string) ([]model.Ingredient, error)
	ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error)
	Delete(ctx context.Context, ingredient *model.Ingredient) error
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *ingredientRepository) Save(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *ingredientRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByUserAndNames(ctx context.Context, userID uint, names []string) ([]model.Ingredient, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var ingredients []model.Ingredient
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name IN ?", userID, names).
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// ListByUser lists the user's ingredients ordered by name descending. With
// assignedOnly set, only ingredients attached to at least one of the user's
// recipes are returned, each exactly once.
func (r *ingredientRepository) ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Ingredient{}).
		Where("ingredients.user_id = ?", userID)

	if assignedOnly {
		q = q.Distinct("ingredients.*").
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ?", userID)
	}

	var ingredients []model.Ingredient
	if err := q.Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Delete removes the ingredient and detaches it from every recipe
// referencing it.
func (r *ingredientRepository) Delete(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", ingredient.ID).Error; err != nil {
			return err
		}
		return tx.Delete(ingredient).Error
	})
}
