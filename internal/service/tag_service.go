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

// TagService exposes owner-scoped tag operations.
type TagService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error)
	Get(ctx context.Context, userID, id uint) (*model.Tag, error)
	Create(ctx context.Context, userID uint, name string) (*model.Tag, error)
	Update(ctx context.Context, userID, id uint, name string) (*model.Tag, error)
	Delete(ctx context.Context, userID, id uint) error
}

type tagService struct {
	tagRepo repository.TagRepository
}

// NewTagService creates a new tag service.
func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	return s.tagRepo.ListByUser(ctx, userID, assignedOnly)
}

func (s *tagService) Get(ctx context.Context, userID, id uint) (*model.Tag, error) {
	return s.find(ctx, userID, id)
}

func (s *tagService) Create(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	tag := &model.Tag{UserID: userID, Name: name}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Update(ctx context.Context, userID, id uint, name string) (*model.Tag, error) {
	tag, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	tag.Name = name
	if err := s.tagRepo.Save(ctx, tag); err != nil {
		return nil, fmt.Errorf("save tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, userID, id uint) error {
	tag, err := s.find(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.tagRepo.Delete(ctx, tag); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}

func (s *tagService) find(ctx context.Context, userID, id uint) (*model.Tag, error) {
	tag, err := s.tagRepo.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}
