package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "menuhub/internal/errors"
	"menuhub/internal/model"
)

// DishRepository defines dish persistence operations.
type DishRepository interface {
	Create(ctx context.Context, dish *model.Dish) error
	ListByPrice(ctx context.Context) ([]model.Dish, error)
	FindByID(ctx context.Context, id uint) (*model.Dish, error)
	Update(ctx context.Context, id uint, changes model.DishChanges) (*model.Dish, error)
	Delete(ctx context.Context, id uint) error
}

type dishRepository struct {
	db *gorm.DB
}

// NewDishRepository creates a new dish repository.
func NewDishRepository(db *gorm.DB) DishRepository {
	return &dishRepository{db: db}
}

// Create inserts a dish. The restaurant reference is checked by the datastore's foreign key.
func (r *dishRepository) Create(ctx context.Context, dish *model.Dish) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Restaurant").Create(dish).Error
	})
	return translateWriteError(err, "", apperrors.ConstraintMissingRestaurant)
}

// ListByPrice lists all dishes by ascending price, ties in insertion order.
func (r *dishRepository) ListByPrice(ctx context.Context) ([]model.Dish, error) {
	var dishes []model.Dish
	if err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Order("price ASC").
		Order("id ASC").
		Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// FindByID returns nil without an error when the dish does not exist.
func (r *dishRepository) FindByID(ctx context.Context, id uint) (*model.Dish, error) {
	var dish model.Dish
	if err := r.db.WithContext(ctx).Preload("Restaurant").First(&dish, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dish, nil
}

// Update applies changes to the dish with the given id inside one transaction.
func (r *dishRepository) Update(ctx context.Context, id uint, changes model.DishChanges) (*model.Dish, error) {
	var dish model.Dish
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&dish, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrDishNotFound
			}
			return err
		}

		dish.Name = changes.Name
		dish.Category = changes.Category
		dish.Price = changes.Price

		return tx.Model(&dish).Select("Name", "Category", "Price").Updates(&dish).Error
	})
	if err != nil {
		return nil, translateWriteError(err, "", apperrors.ConstraintMissingRestaurant)
	}
	return &dish, nil
}

// Delete removes the dish; deleting an absent dish returns ErrDishNotFound.
func (r *dishRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Dish{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrDishNotFound
		}
		return nil
	})
}
