package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestTagRepository_ListByUser_OrdersByNameDesc(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	mock.ExpectQuery(`SELECT \* FROM .tags. WHERE tags\.user_id = \? ORDER BY tags\.name DESC`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(2, 1, "Vegan").
			AddRow(1, 1, "Dessert"))

	tags, err := repo.ListByUser(context.Background(), 1, false)

	assert.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Equal(t, "Vegan", tags[0].Name)
	assert.Equal(t, "Dessert", tags[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_ListByUser_AssignedOnlyDeduplicates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTagRepository(db)

	// DISTINCT through the join: a tag attached to several of the user's
	// recipes still comes back once, and the recipe side is owner-scoped too.
	mock.ExpectQuery(`SELECT DISTINCT tags\.\* FROM .tags. JOIN recipe_tags ON recipe_tags\.tag_id = tags\.id JOIN recipes ON recipes\.id = recipe_tags\.recipe_id WHERE tags\.user_id = \? AND \(?recipes\.user_id = \?\)? ORDER BY tags\.name DESC`).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(3, 1, "Thai"))

	tags, err := repo.ListByUser(context.Background(), 1, true)

	assert.NoError(t, err)
	assert.Len(t, tags, 1)
	assert.Equal(t, "Thai", tags[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
