package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB opens gorm against a sqlmock connection so repository methods can
// be exercised as SQL dry-runs.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	assert.NoError(t, err)
	return db, mock
}

func emptyRecipeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "title"})
}

func TestRecipeRepository_ListByUser_NoFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepository(db)

	mock.ExpectQuery(`SELECT \* FROM .recipes. WHERE recipes\.user_id = \? ORDER BY recipes\.id DESC`).
		WithArgs(int64(1)).
		WillReturnRows(emptyRecipeRows())

	recipes, err := repo.ListByUser(context.Background(), 1, RecipeFilter{})

	assert.NoError(t, err)
	assert.Empty(t, recipes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_ListByUser_TagFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepository(db)

	// DISTINCT because a recipe carrying both requested tags must still
	// appear once.
	mock.ExpectQuery(`SELECT DISTINCT recipes\.\* FROM .recipes. JOIN recipe_tags ON recipe_tags\.recipe_id = recipes\.id WHERE recipes\.user_id = \? AND \(?recipe_tags\.tag_id IN \(\?,\?\)\)? ORDER BY recipes\.id DESC`).
		WithArgs(int64(1), int64(3), int64(4)).
		WillReturnRows(emptyRecipeRows())

	recipes, err := repo.ListByUser(context.Background(), 1, RecipeFilter{TagIDs: []uint{3, 4}})

	assert.NoError(t, err)
	assert.Empty(t, recipes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_ListByUser_IngredientFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepository(db)

	mock.ExpectQuery(`SELECT DISTINCT recipes\.\* FROM .recipes. JOIN recipe_ingredients ON recipe_ingredients\.recipe_id = recipes\.id WHERE recipes\.user_id = \? AND \(?recipe_ingredients\.ingredient_id IN \(\?\)\)? ORDER BY recipes\.id DESC`).
		WithArgs(int64(1), int64(7)).
		WillReturnRows(emptyRecipeRows())

	recipes, err := repo.ListByUser(context.Background(), 1, RecipeFilter{IngredientIDs: []uint{7}})

	assert.NoError(t, err)
	assert.Empty(t, recipes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecipeRepository_ListByUser_BothFiltersUnionWithOwnerScope(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecipeRepository(db)

	// Both lists set: LEFT JOINs and an OR union, parenthesized so the owner
	// scope stays ANDed around the whole disjunction.
	mock.ExpectQuery(`SELECT DISTINCT recipes\.\* FROM .recipes. LEFT JOIN recipe_tags ON recipe_tags\.recipe_id = recipes\.id LEFT JOIN recipe_ingredients ON recipe_ingredients\.recipe_id = recipes\.id WHERE recipes\.user_id = \? AND \(recipe_tags\.tag_id IN \(\?,\?\) OR recipe_ingredients\.ingredient_id IN \(\?\)\) ORDER BY recipes\.id DESC`).
		WithArgs(int64(1), int64(3), int64(4), int64(7)).
		WillReturnRows(emptyRecipeRows())

	recipes, err := repo.ListByUser(context.Background(), 1, RecipeFilter{
		TagIDs:        []uint{3, 4},
		IngredientIDs: []uint{7},
	})

	assert.NoError(t, err)
	assert.Empty(t, recipes)
	assert.NoError(t, mock.ExpectationsWereMet())
}
