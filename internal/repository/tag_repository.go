package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// TagRepository defines tag persistence operations, all scoped to an owner.
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	Save(ctx context.Context, tag *model.Tag) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Tag, error)
	FindByUserAndNames(ctx context.Context, userID uint, names []string) ([]model.Tag, error)
	ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error)
	Delete(ctx context.Context, tag *model.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) Save(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *tagRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) FindByUserAndNames(ctx context.Context, userID uint, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var tags []model.Tag
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND name IN ?", userID, names).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ListByUser lists the user's tags ordered by name descending. With
// assignedOnly set, only tags attached to at least one of the user's recipes
// are returned, each exactly once.
func (r *tagRepository) ListByUser(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Tag{}).
		Where("tags.user_id = ?", userID)

	if assignedOnly {
		q = q.Distinct("tags.*").
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id").
			Where("recipes.user_id = ?", userID)
	}

	var tags []model.Tag
	if err := q.Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Delete removes the tag and detaches it from every recipe referencing it.
func (r *tagRepository) Delete(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
}
