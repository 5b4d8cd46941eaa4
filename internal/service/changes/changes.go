// Package changes announces committed catalog changes: the cached copies of
// an experience are dropped and subscribers are told to refresh.
package changes

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type Cache interface {
	InvalidateExperience(ctx context.Context, id uuid.UUID) error
}

type Publisher interface {
	PublishExperienceChanged(ctx context.Context, id uuid.UUID) error
}

// Announcer is safe to use with a nil cache or publisher.
type Announcer struct {
	cache Cache
	pub   Publisher
	log   *slog.Logger
}

func NewAnnouncer(cache Cache, pub Publisher, log *slog.Logger) *Announcer {
	if log == nil {
		log = slog.Default()
	}
	return &Announcer{cache: cache, pub: pub, log: log}
}

// ExperienceChanged is meant to run as an after-commit hook. Failures are
// logged: the write already happened and cached entries expire on their own.
func (a *Announcer) ExperienceChanged(ctx context.Context, id uuid.UUID) {
	if a == nil {
		return
	}

	if a.cache != nil {
		if err := a.cache.InvalidateExperience(ctx, id); err != nil {
			a.log.Warn("cache invalidation failed",
				slog.String("experience_id", id.String()),
				slog.Any("error", err),
			)
		}
	}

	if a.pub != nil {
		if err := a.pub.PublishExperienceChanged(ctx, id); err != nil {
			a.log.Warn("change event publish failed",
				slog.String("experience_id", id.String()),
				slog.Any("error", err),
			)
		}
	}
}
