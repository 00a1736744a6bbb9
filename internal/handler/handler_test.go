package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "menuhub/internal/errors"
)

func newFormContext(t *testing.T, form url.Values) echo.Context {
	t.Helper()
	e := echo.New()
	e.Validator = NewFormValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindForm(t *testing.T) {
	tests := []struct {
		name   string
		form   url.Values
		field  string
		reason string
	}{
		{
			name:   "missing name",
			form:   url.Values{"email": {"ana@example.com"}, "userPassword": {"secret123"}},
			field:  "userName",
			reason: "is required",
		},
		{
			name:   "malformed e-mail",
			form:   url.Values{"userName": {"Ana"}, "email": {"not-an-email"}, "userPassword": {"secret123"}},
			field:  "email",
			reason: "must be a valid e-mail address",
		},
		{
			name:   "short password",
			form:   url.Values{"userName": {"Ana"}, "email": {"ana@example.com"}, "userPassword": {"abc"}},
			field:  "userPassword",
			reason: "must be at least 6 characters",
		},
		{
			name:   "password longer than bcrypt accepts",
			form:   url.Values{"userName": {"Ana"}, "email": {"ana@example.com"}, "userPassword": {strings.Repeat("p", 80)}},
			field:  "userPassword",
			reason: "must be at most 72 characters",
		},
		{
			name:   "name longer than the column",
			form:   url.Values{"userName": {strings.Repeat("n", 121)}, "email": {"ana@example.com"}, "userPassword": {"secret123"}},
			field:  "userName",
			reason: "must be at most 120 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form RegisterForm
			err := bindForm(newFormContext(t, tt.form), &form)

			var validationErr *apperrors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Equal(t, tt.reason, validationErr.Reason)
		})
	}

	t.Run("valid dish form", func(t *testing.T) {
		var form DishForm
		err := bindForm(newFormContext(t, url.Values{
			"dish_name": {"Soup"}, "category": {"Starter"}, "price": {"4.5"}, "restaurant": {"2"},
		}), &form)

		require.NoError(t, err)
		assert.Equal(t, "Soup", form.Name)
		assert.Equal(t, "2", form.RestaurantID)
	})

	t.Run("e-mail is trimmed before validation", func(t *testing.T) {
		var form RegisterForm
		err := bindForm(newFormContext(t, url.Values{
			"userName": {" Ana "}, "email": {" ana@example.com "}, "userPassword": {" secret123 "},
		}), &form)

		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", form.Email)
		assert.Equal(t, "Ana", form.Name)
		assert.Equal(t, " secret123 ", form.Password)
	})

	t.Run("dish category longer than the column", func(t *testing.T) {
		var form DishUpdateForm
		err := bindForm(newFormContext(t, url.Values{
			"dish_id": {"1"}, "dish_name": {"Soup"}, "category": {strings.Repeat("c", 41)}, "price": {"4"},
		}), &form)

		var validationErr *apperrors.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "category", validationErr.Field)
		assert.Equal(t, "must be at most 40 characters", validationErr.Reason)
	})

	t.Run("non numeric price", func(t *testing.T) {
		var form DishForm
		err := bindForm(newFormContext(t, url.Values{
			"dish_name": {"Soup"}, "category": {"Starter"}, "price": {"cheap"}, "restaurant": {"2"},
		}), &form)

		var validationErr *apperrors.ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, "price", validationErr.Field)
	})
}

func TestParsePriceAndID(t *testing.T) {
	price, err := parsePrice(" 7.25 ")
	require.NoError(t, err)
	assert.Equal(t, "7.25", price.String())

	_, err = parsePrice("seven")
	assert.Error(t, err)

	id, err := parseID("dish id", "42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		_, err := parseID("dish id", raw)
		assert.Error(t, err, raw)
	}
}

func TestFlashStore_RoundTrip(t *testing.T) {
	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("flash-test-key"))))
	flashes := NewFlashStore(nil)

	e.GET("/add", func(c echo.Context) error {
		if err := flashes.Add(c, apperrors.Success("saved")); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/pop", func(c echo.Context) error {
		var texts []string
		for _, f := range flashes.Pop(c) {
			texts = append(texts, f.Category+":"+f.Text)
		}
		return c.String(http.StatusOK, strings.Join(texts, ","))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/add", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "success:saved", rec.Body.String())

	// the popped session cookie no longer carries the flash
	req = httptest.NewRequest(http.MethodGet, "/pop", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Empty(t, rec.Body.String())
}
