package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestIngredientRepository_ListByUser_OrdersByNameDesc(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIngredientRepository(db)

	mock.ExpectQuery(`SELECT \* FROM .ingredients. WHERE ingredients\.user_id = \? ORDER BY ingredients\.name DESC`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(2, 1, "Salt").
			AddRow(1, 1, "Pepper"))

	ingredients, err := repo.ListByUser(context.Background(), 1, false)

	assert.NoError(t, err)
	assert.Len(t, ingredients, 2)
	assert.Equal(t, "Salt", ingredients[0].Name)
	assert.Equal(t, "Pepper", ingredients[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngredientRepository_ListByUser_AssignedOnlyDeduplicates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIngredientRepository(db)

	mock.ExpectQuery(`SELECT DISTINCT ingredients\.\* FROM .ingredients. JOIN recipe_ingredients ON recipe_ingredients\.ingredient_id = ingredients\.id JOIN recipes ON recipes\.id = recipe_ingredients\.recipe_id WHERE ingredients\.user_id = \? AND \(?recipes\.user_id = \?\)? ORDER BY ingredients\.name DESC`).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).
			AddRow(4, 1, "Prawns"))

	ingredients, err := repo.ListByUser(context.Background(), 1, true)

	assert.NoError(t, err)
	assert.Len(t, ingredients, 1)
	assert.Equal(t, "Prawns", ingredients[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
