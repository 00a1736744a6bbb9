package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	apperrors "menuhub/internal/errors"
	"menuhub/internal/service"
)

// File describes the rows inserted by the seed command.
type File struct {
	Users       []UserData       `yaml:"users"`
	Restaurants []RestaurantData `yaml:"restaurants"`
}

// UserData is one account to register.
type UserData struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Admin    bool   `yaml:"admin"`
}

// RestaurantData is a restaurant with its dishes.
type RestaurantData struct {
	Name   string     `yaml:"name"`
	Dishes []DishData `yaml:"dishes"`
}

// DishData is one menu entry. Price is kept as text so no precision is lost.
type DishData struct {
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Price    string `yaml:"price"`
}

// Result counts what Apply did.
type Result struct {
	Created int
	Skipped int
}

// Load reads a YAML seed file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &file, nil
}

// Apply inserts the seed rows through the services. Rows rejected by a uniqueness
// constraint already exist and are skipped; any other failure aborts.
func Apply(ctx context.Context, file *File, authService service.AuthService, menuService service.MenuService, log logrus.FieldLogger) (Result, error) {
	var res Result

	for _, u := range file.Users {
		_, err := authService.Register(ctx, service.RegisterInput{
			Name:     u.Name,
			Email:    u.Email,
			Password: u.Password,
			Admin:    u.Admin,
		})
		if err := res.track(err, log.WithField("email", u.Email)); err != nil {
			return res, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	// dishes carry no unique key, so only restaurants new in this run get their menu
	created := make(map[string]bool, len(file.Restaurants))
	for _, r := range file.Restaurants {
		restaurant, err := menuService.CreateRestaurant(ctx, r.Name)
		if err := res.track(err, log.WithField("restaurant", r.Name)); err != nil {
			return res, fmt.Errorf("seed restaurant %s: %w", r.Name, err)
		}
		if restaurant != nil {
			created[r.Name] = true
		}
	}

	restaurantIDs, err := restaurantsByName(ctx, menuService)
	if err != nil {
		return res, err
	}

	for _, r := range file.Restaurants {
		if !created[r.Name] {
			continue
		}
		for _, d := range r.Dishes {
			price, err := decimal.NewFromString(d.Price)
			if err != nil {
				return res, fmt.Errorf("seed dish %s: invalid price %q", d.Name, d.Price)
			}
			_, err = menuService.CreateDish(ctx, service.DishInput{
				Name:         d.Name,
				Category:     d.Category,
				Price:        price,
				RestaurantID: restaurantIDs[strings.TrimSpace(r.Name)],
			})
			if err := res.track(err, log.WithFields(logrus.Fields{"restaurant": r.Name, "dish": d.Name})); err != nil {
				return res, fmt.Errorf("seed dish %s: %w", d.Name, err)
			}
		}
	}

	return res, nil
}

func (r *Result) track(err error, log logrus.FieldLogger) error {
	switch {
	case err == nil:
		r.Created++
		return nil
	case errors.Is(err, apperrors.ErrDuplicateEmail), errors.Is(err, apperrors.ErrDuplicateName):
		r.Skipped++
		log.Info("already present, skipped")
		return nil
	default:
		return err
	}
}

func restaurantsByName(ctx context.Context, menuService service.MenuService) (map[string]uint, error) {
	restaurants, err := menuService.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	ids := make(map[string]uint, len(restaurants))
	for _, r := range restaurants {
		ids[r.Name] = r.ID
	}
	return ids, nil
}
