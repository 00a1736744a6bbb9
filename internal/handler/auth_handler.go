package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"menuhub/internal/auth"
	apperrors "menuhub/internal/errors"
	"menuhub/internal/service"
	"menuhub/internal/view"
)

// AuthHandler handles login, registration and logout.
type AuthHandler struct {
	responder
	authService service.AuthService
	sessions    *auth.SessionService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sessions *auth.SessionService, flashes *FlashStore, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		responder:   responder{flashes: flashes, log: log},
		authService: authService,
		sessions:    sessions,
	}
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return h.render(c, view.PageLogin, view.Page{Title: "Log in"})
}

// Login checks credentials and starts a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, err, "/login")
	}

	session, user, err := h.authService.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		return h.fail(c, err, "/login")
	}

	c.SetCookie(h.sessions.Cookie(session))
	h.log.WithField("user_id", user.ID).Info("user logged in")
	return c.Redirect(http.StatusSeeOther, "/index")
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return h.render(c, view.PageRegister, view.Page{Title: "Register"})
}

// Register creates an account; the admin flag is set iff isAdmin was submitted.
func (h *AuthHandler) Register(c echo.Context) error {
	var form RegisterForm
	if err := bindForm(c, &form); err != nil {
		return h.fail(c, err, "/register")
	}

	params, err := c.FormParams()
	if err != nil {
		return h.fail(c, apperrors.NewValidationError("form", "could not be read"), "/register")
	}
	_, isAdmin := params["isAdmin"]

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Admin:    isAdmin,
	})
	if err != nil {
		return h.fail(c, err, "/register")
	}

	h.log.WithFields(logrus.Fields{"user_id": user.ID, "admin": user.Admin}).Info("user registered")
	return h.redirect(c, "/login", apperrors.Success("Success! The user was registered."))
}

// Logout revokes the current session and clears its cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		h.log.WithError(err).Warn("revoke session")
	}
	c.SetCookie(h.sessions.ExpiredCookie())
	return h.redirect(c, "/login", apperrors.Success("You have been logged out."))
}

// RequireIdentity resolves the user behind the validated session token. It must run after
// the token middleware; requests without a live user are sent to the login page.
func (h *AuthHandler) RequireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get("user").(*auth.Claims)
		if !ok {
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		identity, err := h.authService.CurrentUser(c.Request().Context(), claims)
		if err != nil {
			return err
		}
		if identity == nil {
			c.SetCookie(h.sessions.ExpiredCookie())
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		c.Set(identityKey, identity)
		c.Set(claimsKey, claims)
		return next(c)
	}
}
