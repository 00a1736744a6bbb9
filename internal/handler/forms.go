package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "menuhub/internal/errors"
)

// LoginForm represents the login form submission.
type LoginForm struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"userPassword" validate:"required"`
}

func (f *LoginForm) normalize() {
	f.Email = strings.TrimSpace(f.Email)
}

// RegisterForm represents the registration form submission.
// The admin flag is taken from the presence of the isAdmin field, not its value.
type RegisterForm struct {
	Name     string `form:"userName" validate:"required,max=120"`
	Email    string `form:"email" validate:"required,email,max=120"`
	Password string `form:"userPassword" validate:"required,min=6,max=72"`
}

func (f *RegisterForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
}

// RestaurantForm represents the restaurant registration form.
type RestaurantForm struct {
	Name string `form:"restaurantName" validate:"required,max=120"`
}

func (f *RestaurantForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
}

// DishForm represents the new-dish form on the index page.
type DishForm struct {
	Name         string `form:"dish_name" validate:"required,max=60"`
	Category     string `form:"category" validate:"required,max=40"`
	Price        string `form:"price" validate:"required,numeric"`
	RestaurantID string `form:"restaurant" validate:"required,numeric"`
}

func (f *DishForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)
	f.Price = strings.TrimSpace(f.Price)
	f.RestaurantID = strings.TrimSpace(f.RestaurantID)
}

// DishUpdateForm represents the edit-dish form.
type DishUpdateForm struct {
	DishID   string `form:"dish_id" validate:"required,numeric"`
	Name     string `form:"dish_name" validate:"required,max=60"`
	Category string `form:"category" validate:"required,max=40"`
	Price    string `form:"price" validate:"required,numeric"`
}

func (f *DishUpdateForm) normalize() {
	f.DishID = strings.TrimSpace(f.DishID)
	f.Name = strings.TrimSpace(f.Name)
	f.Category = strings.TrimSpace(f.Category)
	f.Price = strings.TrimSpace(f.Price)
}

// normalizer is implemented by forms whose text fields are trimmed before validation.
// Passwords are never trimmed.
type normalizer interface {
	normalize()
}

// bindForm binds and validates a form payload, reporting problems as a ValidationError.
func bindForm(c echo.Context, form interface{}) error {
	if err := c.Bind(form); err != nil {
		return apperrors.NewValidationError("form", "could not be read")
	}
	if n, ok := form.(normalizer); ok {
		n.normalize()
	}
	if err := c.Validate(form); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return apperrors.NewValidationError("form", err.Error())
	}

	fe := validationErrs[0]
	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "email":
		reason = "must be a valid e-mail address"
	case "min":
		reason = fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		reason = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "numeric":
		reason = "must be a number"
	default:
		reason = "is invalid"
	}
	return apperrors.NewValidationError(fe.Field(), reason)
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, apperrors.NewValidationError("price", "must be a number")
	}
	return price, nil
}

func parseID(field, raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError(field, "must be a positive whole number")
	}
	return uint(id), nil
}

// FormValidator wraps validator for Echo, naming fields after their form keys.
type FormValidator struct {
	validator *validator.Validate
}

// NewFormValidator builds the validator used by echo's c.Validate.
func NewFormValidator() *FormValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &FormValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (fv *FormValidator) Validate(i interface{}) error {
	return fv.validator.Struct(i)
}
