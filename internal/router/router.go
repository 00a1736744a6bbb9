package router

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"menuhub/internal/auth"
	"menuhub/internal/config"
	"menuhub/internal/handler"
	"menuhub/internal/logging"
	"menuhub/internal/metrics"
)

// Register wires routes and middleware. m may be nil when metrics are disabled.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log logrus.FieldLogger,
	m *metrics.Metrics,
	sessionService *auth.SessionService,
	authHandler *handler.AuthHandler,
	menuHandler *handler.MenuHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(log))
	e.Use(middleware.Recover())
	if m != nil {
		e.Use(m.Middleware())
	}
	e.Use(session.Middleware(flashStore(cfg)))

	e.Validator = handler.NewFormValidator()

	e.GET("/healthz", handler.Health)
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	// Public routes
	limited := loginLimiter(cfg.LoginRateLimit)
	for _, path := range []string{"/", "/login"} {
		e.GET(path, authHandler.LoginPage)
		e.POST(path, authHandler.Login, limited...)
	}
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register, limited...)

	// Secured routes (require a live session cookie)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + auth.SessionCookieName,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return sessionService.Validate(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.Redirect(http.StatusSeeOther, "/login")
		},
	}), authHandler.RequireIdentity)

	for _, path := range []string{"/index", "/home"} {
		secured.GET(path, menuHandler.Index)
		secured.POST(path, menuHandler.CreateDish)
	}
	secured.GET("/restaurants", menuHandler.RestaurantsPage)
	secured.POST("/restaurants", menuHandler.CreateRestaurant)
	secured.GET("/update_dish/:dish_id", menuHandler.UpdateDishPage)
	secured.POST("/update_dish", menuHandler.UpdateDish)
	secured.POST("/delete_dish/:dish_id", menuHandler.DeleteDish)
	secured.POST("/logout", authHandler.Logout)
}

func flashStore(cfg *config.Config) sessions.Store {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(time.Hour / time.Second),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// loginLimiter throttles credential posts per client IP. A non-positive limit disables it.
func loginLimiter(perSecond float64) []echo.MiddlewareFunc {
	if perSecond <= 0 {
		return nil
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return []echo.MiddlewareFunc{middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, "too many attempts, slow down")
		},
	})}
}
