package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
	"recipebox/internal/storage"
)

const recipeCacheTTL = 5 * time.Minute

// Cache is the subset of the redis client the recipe service needs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CreateRecipeInput carries a new recipe. Nil Tags/Ingredients mean none.
type CreateRecipeInput struct {
	Title       string
	TimeMinutes uint
	Price       decimal.Decimal
	Description string
	Link        string
	Tags        []NamedInput
	Ingredients []NamedInput
}

// UpdateRecipeInput carries a recipe update. Nil pointers mean "leave
// unchanged"; for Tags/Ingredients a non-nil empty list clears the relation
// while nil leaves it untouched.
type UpdateRecipeInput struct {
	Title       *string
	TimeMinutes *uint
	Price       *decimal.Decimal
	Description *string
	Link        *string
	Tags        *[]NamedInput
	Ingredients *[]NamedInput
}

// RecipeService exposes owner-scoped recipe operations.
type RecipeService interface {
	List(ctx context.Context, userID uint, filter repository.RecipeFilter) ([]model.Recipe, error)
	Get(ctx context.Context, userID, id uint) (*model.Recipe, error)
	Create(ctx context.Context, userID uint, in CreateRecipeInput) (*model.Recipe, error)
	Update(ctx context.Context, userID, id uint, in UpdateRecipeInput) (*model.Recipe, error)
	Delete(ctx context.Context, userID, id uint) error
	AttachImage(ctx context.Context, userID, id uint, upload io.Reader) (*model.Recipe, error)
}

type recipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
	files          storage.Storage
	cache          Cache
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
	files storage.Storage,
	cache Cache,
) RecipeService {
	return &recipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		files:          files,
		cache:          cache,
	}
}

func recipeCacheKey(userID, id uint) string {
	return fmt.Sprintf("recipe:%d:user:%d", id, userID)
}

func (s *recipeService) List(ctx context.Context, userID uint, filter repository.RecipeFilter) ([]model.Recipe, error) {
	return s.recipeRepo.ListByUser(ctx, userID, filter)
}

func (s *recipeService) Get(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	if data, _ := s.cache.Get(ctx, recipeCacheKey(userID, id)); data != nil {
		var cached model.Recipe
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	recipe, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(recipe); err == nil {
		_ = s.cache.Set(ctx, recipeCacheKey(userID, id), payload, recipeCacheTTL)
	}
	return recipe, nil
}

// find loads an owned recipe, translating "owned by someone else" into the
// same not-found error as "does not exist".
func (s *recipeService) find(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) Create(ctx context.Context, userID uint, in CreateRecipeInput) (*model.Recipe, error) {
	recipe := &model.Recipe{
		UserID:      userID,
		Title:       in.Title,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Description: in.Description,
		Link:        in.Link,
	}

	var err error
	if recipe.Tags, err = s.resolveTags(ctx, userID, in.Tags); err != nil {
		return nil, err
	}
	if recipe.Ingredients, err = s.resolveIngredients(ctx, userID, in.Ingredients); err != nil {
		return nil, err
	}

	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return recipe, nil
}

func (s *recipeService) Update(ctx context.Context, userID, id uint, in UpdateRecipeInput) (*model.Recipe, error) {
	recipe, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// Drop the cached copy even when a later step fails: Save may already
	// have written by the time a relation replace errors out.
	defer func() {
		_ = s.cache.Delete(ctx, recipeCacheKey(userID, id))
	}()

	if in.Title != nil {
		recipe.Title = *in.Title
	}
	if in.TimeMinutes != nil {
		recipe.TimeMinutes = *in.TimeMinutes
	}
	if in.Price != nil {
		recipe.Price = *in.Price
	}
	if in.Description != nil {
		recipe.Description = *in.Description
	}
	if in.Link != nil {
		recipe.Link = *in.Link
	}

	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		return nil, fmt.Errorf("save recipe: %w", err)
	}

	// A nil list leaves the relation untouched; a present list (empty
	// included) replaces the attached set with exactly the resolved records.
	if in.Tags != nil {
		tags, err := s.resolveTags(ctx, userID, *in.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceTags(ctx, recipe, tags); err != nil {
			return nil, fmt.Errorf("replace tags: %w", err)
		}
		recipe.Tags = tags
	}
	if in.Ingredients != nil {
		ingredients, err := s.resolveIngredients(ctx, userID, *in.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
			return nil, fmt.Errorf("replace ingredients: %w", err)
		}
		recipe.Ingredients = ingredients
	}

	return recipe, nil
}

func (s *recipeService) Delete(ctx context.Context, userID, id uint) error {
	recipe, err := s.find(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.recipeRepo.Delete(ctx, recipe); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if recipe.ImagePath != "" {
		_ = s.files.Delete(ctx, recipe.ImagePath)
	}
	_ = s.cache.Delete(ctx, recipeCacheKey(userID, id))
	return nil
}

// AttachImage validates the upload by decoding it, stores it, and swaps it in
// as the recipe's image. The previous image file, if any, is released.
func (s *recipeService) AttachImage(ctx context.Context, userID, id uint, upload io.Reader) (*model.Recipe, error) {
	recipe, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(upload)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	format, err := storage.DetectImage(data)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("recipes/%d/%s.%s", recipe.ID, uuid.New().String(), imageExt(format))
	if err := s.files.Save(ctx, key, data, storage.ContentType(format)); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	previous := recipe.ImagePath
	recipe.ImagePath = key
	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		_ = s.files.Delete(ctx, key)
		return nil, fmt.Errorf("save recipe: %w", err)
	}
	if previous != "" {
		_ = s.files.Delete(ctx, previous)
	}

	_ = s.cache.Delete(ctx, recipeCacheKey(userID, id))
	return recipe, nil
}

func imageExt(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}

// resolveTags maps inline descriptors onto the user's tag records, reusing
// rows by (user, name) and minting zero-ID records for names seen for the
// first time. The persistence layer creates those while attaching.
func (s *recipeService) resolveTags(ctx context.Context, userID uint, inputs []NamedInput) ([]model.Tag, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	names := inputNames(inputs)
	existing, err := s.tagRepo.FindByUserAndNames(ctx, userID, names)
	if err != nil {
		return nil, fmt.Errorf("look up tags: %w", err)
	}

	byName := make(map[string]model.Tag, len(existing))
	existingSet := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		if _, ok := byName[t.Name]; !ok {
			byName[t.Name] = t
			existingSet[t.Name] = struct{}{}
		}
	}

	ordered, _ := reconcileNames(names, existingSet)
	resolved := make([]model.Tag, 0, len(ordered))
	for _, name := range ordered {
		if t, ok := byName[name]; ok {
			resolved = append(resolved, t)
		} else {
			resolved = append(resolved, model.Tag{UserID: userID, Name: name})
		}
	}
	return resolved, nil
}

func (s *recipeService) resolveIngredients(ctx context.Context, userID uint, inputs []NamedInput) ([]model.Ingredient, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	names := inputNames(inputs)
	existing, err := s.ingredientRepo.FindByUserAndNames(ctx, userID, names)
	if err != nil {
		return nil, fmt.Errorf("look up ingredients: %w", err)
	}

	byName := make(map[string]model.Ingredient, len(existing))
	existingSet := make(map[string]struct{}, len(existing))
	for _, in := range existing {
		if _, ok := byName[in.Name]; !ok {
			byName[in.Name] = in
			existingSet[in.Name] = struct{}{}
		}
	}

	ordered, _ := reconcileNames(names, existingSet)
	resolved := make([]model.Ingredient, 0, len(ordered))
	for _, name := range ordered {
		if in, ok := byName[name]; ok {
			resolved = append(resolved, in)
		} else {
			resolved = append(resolved, model.Ingredient{UserID: userID, Name: name})
		}
	}
	return resolved, nil
}
