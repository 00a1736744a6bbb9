package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "menuhub/internal/errors"
	"menuhub/internal/service"
	"menuhub/internal/view"
)

const (
	identityKey = "identity"
	claimsKey   = "session_claims"
)

// responder holds what every page handler needs to answer a request.
type responder struct {
	flashes *FlashStore
	log     logrus.FieldLogger
}

// IdentityFrom returns the identity resolved by RequireIdentity, or nil.
func IdentityFrom(c echo.Context) *service.Identity {
	identity, _ := c.Get(identityKey).(*service.Identity)
	return identity
}

// render draws page with the pending flashes, plus extra ones for this response only.
func (r *responder) render(c echo.Context, name string, page view.Page, extra ...apperrors.Flash) error {
	page.User = IdentityFrom(c)
	page.Flashes = append(r.flashes.Pop(c), extra...)
	return c.Render(http.StatusOK, name, page)
}

// redirect answers a form post with a flash and a 303 to location.
func (r *responder) redirect(c echo.Context, location string, flash apperrors.Flash) error {
	if err := r.flashes.Add(c, flash); err != nil {
		r.log.WithError(err).Warn("store flash message")
	}
	return c.Redirect(http.StatusSeeOther, location)
}

// fail translates err into a danger flash and redirects to location.
func (r *responder) fail(c echo.Context, err error, location string) error {
	return r.redirect(c, location, r.flashFor(c, err))
}

func (r *responder) flashFor(c echo.Context, err error) apperrors.Flash {
	flash, known := apperrors.MapErrorToFlash(err)
	entry := r.log.WithError(err).WithField("path", c.Path())
	if known {
		entry.Debug("request rejected")
	} else {
		entry.Error("request failed")
	}
	return flash
}
