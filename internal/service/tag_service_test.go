package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "recipebox/internal/errors"
	"recipebox/internal/model"
)

func TestTagService_List(t *testing.T) {
	tests := []struct {
		name         string
		assignedOnly bool
	}{
		{name: "all tags", assignedOnly: false},
		{name: "assigned only", assignedOnly: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tagRepo := new(MockTagRepository)
			tagRepo.On("ListByUser", mock.Anything, uint(1), tt.assignedOnly).
				Return([]model.Tag{{ID: 2, Name: "Vegan"}, {ID: 1, Name: "Dessert"}}, nil)

			svc := NewTagService(tagRepo)
			tags, err := svc.List(context.Background(), 1, tt.assignedOnly)

			assert.NoError(t, err)
			assert.Len(t, tags, 2)
			tagRepo.AssertExpectations(t)
		})
	}
}

func TestTagService_Get(t *testing.T) {
	t.Run("own tag", func(t *testing.T) {
		tagRepo := new(MockTagRepository)
		tagRepo.On("FindByIDAndUser", mock.Anything, uint(3), uint(1)).
			Return(&model.Tag{ID: 3, UserID: 1, Name: "Dessert"}, nil)

		svc := NewTagService(tagRepo)
		tag, err := svc.Get(context.Background(), 1, 3)

		assert.NoError(t, err)
		assert.Equal(t, "Dessert", tag.Name)
	})

	t.Run("someone else's tag reads as missing", func(t *testing.T) {
		tagRepo := new(MockTagRepository)
		tagRepo.On("FindByIDAndUser", mock.Anything, uint(3), uint(2)).
			Return(nil, gorm.ErrRecordNotFound)

		svc := NewTagService(tagRepo)
		tag, err := svc.Get(context.Background(), 2, 3)

		assert.ErrorIs(t, err, apperrors.ErrTagNotFound)
		assert.Nil(t, tag)
	})
}

func TestTagService_Create(t *testing.T) {
	tagRepo := new(MockTagRepository)
	tagRepo.On("Create", mock.Anything, mock.MatchedBy(func(tag *model.Tag) bool {
		return tag.UserID == 1 && tag.Name == "Comfort Food"
	})).Return(nil)

	svc := NewTagService(tagRepo)
	tag, err := svc.Create(context.Background(), 1, "Comfort Food")

	assert.NoError(t, err)
	assert.Equal(t, "Comfort Food", tag.Name)
	tagRepo.AssertExpectations(t)
}

func TestTagService_Update(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockTagRepository)
		wantErr   error
	}{
		{
			name: "rename own tag",
			setupMock: func(m *MockTagRepository) {
				m.On("FindByIDAndUser", mock.Anything, uint(3), uint(1)).
					Return(&model.Tag{ID: 3, UserID: 1, Name: "Old"}, nil)
				m.On("Save", mock.Anything, mock.MatchedBy(func(tag *model.Tag) bool {
					return tag.ID == 3 && tag.Name == "New"
				})).Return(nil)
			},
		},
		{
			name: "someone else's tag reads as missing",
			setupMock: func(m *MockTagRepository) {
				m.On("FindByIDAndUser", mock.Anything, uint(3), uint(1)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrTagNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tagRepo := new(MockTagRepository)
			tt.setupMock(tagRepo)

			svc := NewTagService(tagRepo)
			tag, err := svc.Update(context.Background(), 1, 3, "New")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tag)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "New", tag.Name)
			}
			tagRepo.AssertExpectations(t)
		})
	}
}

func TestTagService_Delete(t *testing.T) {
	tagRepo := new(MockTagRepository)
	existing := &model.Tag{ID: 3, UserID: 1, Name: "Dessert"}
	tagRepo.On("FindByIDAndUser", mock.Anything, uint(3), uint(1)).Return(existing, nil)
	tagRepo.On("Delete", mock.Anything, existing).Return(nil)

	svc := NewTagService(tagRepo)
	assert.NoError(t, svc.Delete(context.Background(), 1, 3))
	tagRepo.AssertExpectations(t)
}
