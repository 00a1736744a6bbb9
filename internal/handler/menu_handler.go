package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "menuhub/internal/errors"
	"menuhub/internal/model"
	"menuhub/internal/service"
	"menuhub/internal/view"
)

// MenuHandler handles the restaurant and dish pages.
type MenuHandler struct {
	responder
	menuService service.MenuService
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(menuService service.MenuService, flashes *FlashStore, log logrus.FieldLogger) *MenuHandler {
	return &MenuHandler{
		responder:   responder{flashes: flashes, log: log},
		menuService: menuService,
	}
}

// Index lists dishes by price and restaurants by name.
func (h *MenuHandler) Index(c echo.Context) error {
	overview, err := h.menuService.Overview(c.Request().Context())
	if err != nil {
		return h.render(c, view.PageIndex, view.Page{Title: "Dishes"}, h.flashFor(c, err))
	}
	return h.render(c, view.PageIndex, view.Page{
		Title:       "Dishes",
		Dishes:      overview.Dishes,
		Restaurants: overview.Restaurants,
	})
}

// CreateDish adds a dish from the index page form.
func (h *MenuHandler) CreateDish(c echo.Context) error {
	var form DishForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, err, "/index")
	}
	price, err := parsePrice(form.Price)
	if err != nil {
		return h.fail(c, err, "/index")
	}
	restaurantID, err := parseID("restaurant", form.RestaurantID)
	if err != nil {
		return h.fail(c, err, "/index")
	}

	if _, err := h.menuService.CreateDish(c.Request().Context(), service.DishInput{
		Name:         form.Name,
		Category:     form.Category,
		Price:        price,
		RestaurantID: restaurantID,
	}); err != nil {
		return h.fail(c, err, "/index")
	}
	return h.redirect(c, "/index", apperrors.Success("Success! The dish was added."))
}

// RestaurantsPage renders the restaurant registration form.
func (h *MenuHandler) RestaurantsPage(c echo.Context) error {
	return h.render(c, view.PageRestaurants, view.Page{Title: "New restaurant"})
}

// CreateRestaurant registers a restaurant.
func (h *MenuHandler) CreateRestaurant(c echo.Context) error {
	var form RestaurantForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, err, "/restaurants")
	}

	if _, err := h.menuService.CreateRestaurant(c.Request().Context(), form.Name); err != nil {
		return h.fail(c, err, "/restaurants")
	}
	return h.redirect(c, "/index", apperrors.Success("Success! The restaurant was registered."))
}

// UpdateDishPage renders the edit form for the dish in the path.
func (h *MenuHandler) UpdateDishPage(c echo.Context) error {
	id, err := parseID("dish id", c.Param("dish_id"))
	if err != nil {
		return h.fail(c, err, "/index")
	}
	dish, err := h.menuService.GetDish(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "/index")
	}
	return h.render(c, view.PageUpdateDish, view.Page{Title: "Edit dish", Dish: dish})
}

// UpdateDish applies the edit form. On failure the form is shown again with the stored dish.
func (h *MenuHandler) UpdateDish(c echo.Context) error {
	var form DishUpdateForm
	bindErr := bindForm(c, &form)

	id, err := parseID("dish id", form.DishID)
	if err != nil {
		if bindErr != nil {
			err = bindErr
		}
		return h.fail(c, err, "/index")
	}
	if bindErr != nil {
		return h.rerenderUpdate(c, id, bindErr)
	}

	price, err := parsePrice(form.Price)
	if err != nil {
		return h.rerenderUpdate(c, id, err)
	}

	_, err = h.menuService.UpdateDish(c.Request().Context(), id, model.DishChanges{
		Name:     form.Name,
		Category: form.Category,
		Price:    price,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDishNotFound) {
			return h.fail(c, err, "/index")
		}
		return h.rerenderUpdate(c, id, err)
	}
	return h.redirect(c, "/index", apperrors.Success("Success! The dish was updated."))
}

func (h *MenuHandler) rerenderUpdate(c echo.Context, id uint, cause error) error {
	flash := h.flashFor(c, cause)
	dish, err := h.menuService.GetDish(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "/index")
	}
	return h.render(c, view.PageUpdateDish, view.Page{Title: "Edit dish", Dish: dish}, flash)
}

// DeleteDish removes the dish in the path.
func (h *MenuHandler) DeleteDish(c echo.Context) error {
	id, err := parseID("dish id", c.Param("dish_id"))
	if err != nil {
		return h.fail(c, err, "/index")
	}
	if err := h.menuService.DeleteDish(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "/index")
	}
	return h.redirect(c, "/index", apperrors.Success("Success! The dish was deleted."))
}

// Health reports liveness.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
