// Package services implements the microblog core: the post store, like ledger,
// follow graph and feed assembler. Every operation takes the acting user explicitly.
package services

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/anonto42/microblog/backend/internal/cache"
	"github.com/anonto42/microblog/backend/internal/events"
	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators shared by every service
type Deps struct {
	Store     *repositories.Store
	Events    events.Publisher
	LikeCache cache.LikeCounter
	Log       logrus.FieldLogger
	Now       func() time.Time
}

func (d *Deps) defaults() {
	if d.Events == nil {
		d.Events = events.Nop{}
	}
	if d.LikeCache == nil {
		d.LikeCache = cache.NopLikeCounter{}
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
}

// publish delivers ev once the mutation has committed. Delivery failures are logged,
// never returned: the mutation already happened.
func (d *Deps) publish(ctx context.Context, ev events.Event) {
	ev.At = d.Now()
	if err := d.Events.Publish(ctx, ev); err != nil {
		d.Log.WithError(err).WithField("event", ev.Type).Warn("failed to publish event")
	}
}

func validateContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n == 0 {
		return apperr.Invalid("content", "this field is required")
	}
	if n > models.MaxPostLength {
		return apperr.Invalid("content", "ensure this value has at most %d characters (it has %d)", models.MaxPostLength, n)
	}
	return nil
}
