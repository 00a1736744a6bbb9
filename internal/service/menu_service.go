package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	apperrors "menuhub/internal/errors"
	"menuhub/internal/model"
	"menuhub/internal/repository"
)

// Column limits of the menu tables.
const (
	maxRestaurantName = 120
	maxDishName       = 60
	maxDishCategory   = 40
	maxPriceDecimals  = 2
)

// maxPrice is the first value that no longer fits decimal(10,2).
var maxPrice = decimal.New(1, 8)

// DishInput carries the fields of a new dish.
type DishInput struct {
	Name         string
	Category     string
	Price        decimal.Decimal
	RestaurantID uint
}

// MenuOverview is everything the index page lists.
type MenuOverview struct {
	Dishes      []model.Dish
	Restaurants []model.Restaurant
}

// MenuService handles restaurant and dish operations.
type MenuService interface {
	CreateRestaurant(ctx context.Context, name string) (*model.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	CreateDish(ctx context.Context, in DishInput) (*model.Dish, error)
	ListDishes(ctx context.Context) ([]model.Dish, error)
	GetDish(ctx context.Context, id uint) (*model.Dish, error)
	UpdateDish(ctx context.Context, id uint, changes model.DishChanges) (*model.Dish, error)
	DeleteDish(ctx context.Context, id uint) error
	Overview(ctx context.Context) (*MenuOverview, error)
}

type menuService struct {
	restaurantRepo repository.RestaurantRepository
	dishRepo       repository.DishRepository
}

// NewMenuService creates a new menu service.
func NewMenuService(restaurantRepo repository.RestaurantRepository, dishRepo repository.DishRepository) MenuService {
	return &menuService{
		restaurantRepo: restaurantRepo,
		dishRepo:       dishRepo,
	}
}

func (s *menuService) CreateRestaurant(ctx context.Context, name string) (*model.Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("restaurant name", "is required")
	}
	if utf8.RuneCountInString(name) > maxRestaurantName {
		return nil, apperrors.NewValidationError("restaurant name", fmt.Sprintf("must be at most %d characters", maxRestaurantName))
	}

	restaurant := &model.Restaurant{Name: name}
	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *menuService) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := s.restaurantRepo.ListByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

// CreateDish stores a new dish. A restaurant id that does not exist yields a
// missing_restaurant ConstraintError from the datastore.
func (s *menuService) CreateDish(ctx context.Context, in DishInput) (*model.Dish, error) {
	changes, err := normalizeDish(in.Name, in.Category, in.Price)
	if err != nil {
		return nil, err
	}

	dish := &model.Dish{
		Name:         changes.Name,
		Category:     changes.Category,
		Price:        changes.Price,
		RestaurantID: in.RestaurantID,
	}
	if err := s.dishRepo.Create(ctx, dish); err != nil {
		return nil, fmt.Errorf("create dish: %w", err)
	}
	return dish, nil
}

func (s *menuService) ListDishes(ctx context.Context) ([]model.Dish, error) {
	dishes, err := s.dishRepo.ListByPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	return dishes, nil
}

// GetDish returns ErrDishNotFound when the id does not exist.
func (s *menuService) GetDish(ctx context.Context, id uint) (*model.Dish, error) {
	dish, err := s.dishRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get dish: %w", err)
	}
	if dish == nil {
		return nil, apperrors.ErrDishNotFound
	}
	return dish, nil
}

func (s *menuService) UpdateDish(ctx context.Context, id uint, changes model.DishChanges) (*model.Dish, error) {
	normalized, err := normalizeDish(changes.Name, changes.Category, changes.Price)
	if err != nil {
		return nil, err
	}

	dish, err := s.dishRepo.Update(ctx, id, normalized)
	if err != nil {
		return nil, fmt.Errorf("update dish: %w", err)
	}
	return dish, nil
}

func (s *menuService) DeleteDish(ctx context.Context, id uint) error {
	if err := s.dishRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	return nil
}

func (s *menuService) Overview(ctx context.Context) (*MenuOverview, error) {
	dishes, err := s.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	restaurants, err := s.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	return &MenuOverview{Dishes: dishes, Restaurants: restaurants}, nil
}

func normalizeDish(name, category string, price decimal.Decimal) (model.DishChanges, error) {
	changes := model.DishChanges{
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
		Price:    price,
	}
	switch {
	case changes.Name == "":
		return changes, apperrors.NewValidationError("dish name", "is required")
	case changes.Category == "":
		return changes, apperrors.NewValidationError("category", "is required")
	case utf8.RuneCountInString(changes.Name) > maxDishName:
		return changes, apperrors.NewValidationError("dish name", fmt.Sprintf("must be at most %d characters", maxDishName))
	case utf8.RuneCountInString(changes.Category) > maxDishCategory:
		return changes, apperrors.NewValidationError("category", fmt.Sprintf("must be at most %d characters", maxDishCategory))
	case price.IsNegative():
		return changes, apperrors.NewValidationError("price", "must not be negative")
	case !price.Equal(price.Round(maxPriceDecimals)):
		return changes, apperrors.NewValidationError("price", "must have at most 2 decimal places")
	case price.GreaterThanOrEqual(maxPrice):
		return changes, apperrors.NewValidationError("price", "must be less than 100000000")
	}
	return changes, nil
}
