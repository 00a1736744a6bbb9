package handler

import (
	"encoding/gob"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	apperrors "menuhub/internal/errors"
	"menuhub/internal/metrics"
)

// FlashSessionName is the cookie session holding pending flash messages.
const FlashSessionName = "menuhub_flash"

func init() {
	gob.Register(apperrors.Flash{})
}

// FlashStore keeps one-time messages in the flash session until the next rendered page.
type FlashStore struct {
	metrics *metrics.Metrics
}

// NewFlashStore creates a flash store. m may be nil.
func NewFlashStore(m *metrics.Metrics) *FlashStore {
	return &FlashStore{metrics: m}
}

// Add queues a flash for the next rendered page.
func (f *FlashStore) Add(c echo.Context, flash apperrors.Flash) error {
	sess, err := session.Get(FlashSessionName, c)
	if err != nil {
		return err
	}
	sess.AddFlash(flash)
	f.metrics.ObserveFlash(flash.Category)
	return sess.Save(c.Request(), c.Response())
}

// Pop returns and discards the queued flashes.
func (f *FlashStore) Pop(c echo.Context) []apperrors.Flash {
	sess, err := session.Get(FlashSessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(c.Request(), c.Response())

	flashes := make([]apperrors.Flash, 0, len(raw))
	for _, v := range raw {
		if flash, ok := v.(apperrors.Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}
