package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"menuhub/internal/db"
	apperrors "menuhub/internal/errors"
	"menuhub/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := db.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB, false))
	t.Cleanup(func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormDB
}

func createRestaurant(t *testing.T, repo RestaurantRepository, name string) *model.Restaurant {
	t.Helper()
	restaurant := &model.Restaurant{Name: name}
	require.NoError(t, repo.Create(context.Background(), restaurant))
	return restaurant
}

func countRows(t *testing.T, gormDB *gorm.DB, value interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, gormDB.Model(value).Count(&count).Error)
	return count
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	first := &model.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)

	second := &model.User{Name: "Other Ana", Email: "ana@example.com", PasswordHash: "hash"}
	err := repo.Create(ctx, second)

	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
	assert.Equal(t, int64(1), countRows(t, gormDB, &model.User{}))
}

func TestUserRepository_Find(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewUserRepository(gormDB)
	ctx := context.Background()

	user := &model.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "hash", Admin: true}
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.True(t, byEmail.Admin)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Ana", byID.Name)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = repo.FindByID(ctx, 4242)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRestaurantRepository_DuplicateName(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewRestaurantRepository(gormDB)
	ctx := context.Background()

	createRestaurant(t, repo, "Pizza Place")
	err := repo.Create(ctx, &model.Restaurant{Name: "Pizza Place"})

	assert.ErrorIs(t, err, apperrors.ErrDuplicateName)
	assert.Equal(t, int64(1), countRows(t, gormDB, &model.Restaurant{}))
}

func TestRestaurantRepository_ListByName(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewRestaurantRepository(gormDB)

	createRestaurant(t, repo, "Sushi Bar")
	createRestaurant(t, repo, "Burger Joint")
	createRestaurant(t, repo, "Pizza Place")

	restaurants, err := repo.ListByName(context.Background())
	require.NoError(t, err)
	require.Len(t, restaurants, 3)
	assert.Equal(t, "Burger Joint", restaurants[0].Name)
	assert.Equal(t, "Pizza Place", restaurants[1].Name)
	assert.Equal(t, "Sushi Bar", restaurants[2].Name)
}

func TestDishRepository_MissingRestaurant(t *testing.T) {
	gormDB := newTestDB(t)
	repo := NewDishRepository(gormDB)

	err := repo.Create(context.Background(), &model.Dish{
		Name:         "Ghost Soup",
		Category:     "Soup",
		Price:        decimal.RequireFromString("4.50"),
		RestaurantID: 9999,
	})

	assert.ErrorIs(t, err, apperrors.ErrMissingRestaurant)
	assert.Equal(t, int64(0), countRows(t, gormDB, &model.Dish{}))
}

func TestDishRepository_ListByPrice(t *testing.T) {
	gormDB := newTestDB(t)
	restaurant := createRestaurant(t, NewRestaurantRepository(gormDB), "Pizza Place")
	repo := NewDishRepository(gormDB)
	ctx := context.Background()

	for _, price := range []string{"9.5", "3.0", "7.25", "3.0"} {
		require.NoError(t, repo.Create(ctx, &model.Dish{
			Name:         "Dish " + price,
			Category:     "Main",
			Price:        decimal.RequireFromString(price),
			RestaurantID: restaurant.ID,
		}))
	}

	dishes, err := repo.ListByPrice(ctx)
	require.NoError(t, err)
	require.Len(t, dishes, 4)

	expected := []string{"3", "3", "7.25", "9.5"}
	for i, dish := range dishes {
		assert.True(t, dish.Price.Equal(decimal.RequireFromString(expected[i])), "position %d: got %s", i, dish.Price)
		assert.Equal(t, "Pizza Place", dish.Restaurant.Name)
	}
	// equal prices keep insertion order
	assert.Less(t, dishes[0].ID, dishes[1].ID)
}

func TestDishRepository_Update(t *testing.T) {
	gormDB := newTestDB(t)
	restaurant := createRestaurant(t, NewRestaurantRepository(gormDB), "Pizza Place")
	repo := NewDishRepository(gormDB)
	ctx := context.Background()

	dish := &model.Dish{Name: "Margherita", Category: "Pizza", Price: decimal.RequireFromString("8"), RestaurantID: restaurant.ID}
	require.NoError(t, repo.Create(ctx, dish))

	updated, err := repo.Update(ctx, dish.ID, model.DishChanges{
		Name:     "Margherita DOP",
		Category: "Pizza Classica",
		Price:    decimal.RequireFromString("10.5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Margherita DOP", updated.Name)
	assert.Equal(t, restaurant.ID, updated.RestaurantID)

	stored, err := repo.FindByID(ctx, dish.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Margherita DOP", stored.Name)
	assert.Equal(t, "Pizza Classica", stored.Category)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("10.5")))
}

func TestDishRepository_UpdateMissing(t *testing.T) {
	gormDB := newTestDB(t)
	restaurant := createRestaurant(t, NewRestaurantRepository(gormDB), "Pizza Place")
	repo := NewDishRepository(gormDB)
	ctx := context.Background()

	dish := &model.Dish{Name: "Calzone", Category: "Pizza", Price: decimal.RequireFromString("9"), RestaurantID: restaurant.ID}
	require.NoError(t, repo.Create(ctx, dish))

	updated, err := repo.Update(ctx, 4242, model.DishChanges{Name: "X", Category: "Y", Price: decimal.Zero})

	assert.ErrorIs(t, err, apperrors.ErrDishNotFound)
	assert.Nil(t, updated)

	stored, err := repo.FindByID(ctx, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Calzone", stored.Name)
}

func TestDishRepository_Delete(t *testing.T) {
	gormDB := newTestDB(t)
	restaurant := createRestaurant(t, NewRestaurantRepository(gormDB), "Pizza Place")
	repo := NewDishRepository(gormDB)
	ctx := context.Background()

	dish := &model.Dish{Name: "Calzone", Category: "Pizza", Price: decimal.RequireFromString("9"), RestaurantID: restaurant.ID}
	keep := &model.Dish{Name: "Marinara", Category: "Pizza", Price: decimal.RequireFromString("7"), RestaurantID: restaurant.ID}
	require.NoError(t, repo.Create(ctx, dish))
	require.NoError(t, repo.Create(ctx, keep))

	require.NoError(t, repo.Delete(ctx, dish.ID))

	gone, err := repo.FindByID(ctx, dish.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	err = repo.Delete(ctx, dish.ID)
	assert.ErrorIs(t, err, apperrors.ErrDishNotFound)
	assert.Equal(t, int64(1), countRows(t, gormDB, &model.Dish{}))
}

func TestTranslateWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, apperrors.ErrDuplicateEmail},
		{"mysql foreign key", &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, apperrors.ErrMissingRestaurant},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, apperrors.ErrDuplicateEmail},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, apperrors.ErrMissingRestaurant},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), apperrors.ErrDuplicateEmail},
		{"sqlite foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), apperrors.ErrMissingRestaurant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateWriteError(tt.err, apperrors.ConstraintDuplicateEmail, apperrors.ConstraintMissingRestaurant)
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	other := errors.New("connection refused")
	assert.Equal(t, other, translateWriteError(other, apperrors.ConstraintDuplicateEmail, ""))
	assert.NoError(t, translateWriteError(nil, apperrors.ConstraintDuplicateEmail, ""))
}
