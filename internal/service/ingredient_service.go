package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// IngredientService exposes owner-scoped ingredient operations.
type IngredientService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error)
	Get(ctx context.Context, userID, id uint) (*model.Ingredient, error)
	Create(ctx context.Context, userID uint, name string) (*model.Ingredient, error)
	Update(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error)
	Delete(ctx context.Context, userID, id uint) error
}

type ingredientService struct {
	ingredientRepo repository.IngredientRepository
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(ingredientRepo repository.IngredientRepository) IngredientService {
	return &ingredientService{ingredientRepo: ingredientRepo}
}

func (s *ingredientService) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error) {
	return s.ingredientRepo.ListByUser(ctx, userID, assignedOnly)
}

func (s *ingredientService) Get(ctx context.Context, userID, id uint) (*model.Ingredient, error) {
	return s.find(ctx, userID, id)
}

func (s *ingredientService) Create(ctx context.Context, userID uint, name string) (*model.Ingredient, error) {
	ingredient := &model.Ingredient{UserID: userID, Name: name}
	if err := s.ingredientRepo.Create(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) Update(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error) {
	ingredient, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	ingredient.Name = name
	if err := s.ingredientRepo.Save(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("save ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) Delete(ctx context.Context, userID, id uint) error {
	ingredient, err := s.find(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.ingredientRepo.Delete(ctx, ingredient); err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}

func (s *ingredientService) find(ctx context.Context, userID, id uint) (*model.Ingredient, error) {
	ingredient, err := s.ingredientRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}
