package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "menuhub/internal/errors"
	"menuhub/internal/model"
)

// RestaurantRepository defines restaurant persistence operations.
type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error
	ListByName(ctx context.Context) ([]model.Restaurant, error)
}

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository.
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

// Create inserts a restaurant; a taken name yields a duplicate_name ConstraintError.
func (r *restaurantRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(restaurant).Error
	})
	return translateWriteError(err, apperrors.ConstraintDuplicateName, "")
}

// ListByName lists all restaurants ordered by name.
func (r *restaurantRepository) ListByName(ctx context.Context) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}
