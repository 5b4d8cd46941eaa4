package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/tripslot/internal/domain"
	"github.com/kirinyoku/tripslot/internal/repository"
	redisrepo "github.com/kirinyoku/tripslot/internal/repository/redis"
)

type Config struct {
	ExperienceTTL time.Duration
	ListTTL       time.Duration
}

type Service struct {
	experiences repository.ExperienceRepository
	cache       *redisrepo.Cache
	cfg         Config
}

// New returns a catalog reader. A nil cache reads straight from the store.
func New(experiences repository.ExperienceRepository, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.ExperienceTTL <= 0 {
		cfg.ExperienceTTL = 60 * time.Second
	}

	if cfg.ListTTL <= 0 {
		cfg.ListTTL = 30 * time.Second
	}

	return &Service{
		experiences: experiences,
		cache:       cache,
		cfg:         cfg,
	}
}

// ListExperiences returns the catalog, newest first.
func (s *Service) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	const op = "service.query.ListExperiences"

	load := func(ctx context.Context) ([]domain.Experience, error) {
		return s.experiences.List(ctx)
	}

	if s.cache == nil {
		list, err := load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return list, nil
	}

	list, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyExperienceList(), s.cfg.ListTTL, load)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// GetExperience retrieves an experience with its schedule.
//
// Parameters:
//   - ctx: request-scoped context.
//   - id: ID of the experience to retrieve.
//
// Returns:
//   - *domain.Experience: the experience.
//   - error: query.ErrExperienceNotFound if the experience is not found.
func (s *Service) GetExperience(ctx context.Context, id uuid.UUID) (*domain.Experience, error) {
	const op = "service.query.GetExperience"

	load := func(ctx context.Context) (domain.Experience, error) {
		e, err := s.experiences.Get(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.Experience{}, ErrExperienceNotFound
			}
			return domain.Experience{}, err
		}
		return *e, nil
	}

	var (
		e   domain.Experience
		err error
	)
	if s.cache == nil {
		e, err = load(ctx)
	} else {
		e, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyExperience(id), s.cfg.ExperienceTTL, load)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &e, nil
}

// Availability reads the schedule from the store, bypassing the cache, for
// live availability updates.
func (s *Service) Availability(ctx context.Context, id uuid.UUID) ([]domain.AvailableDate, error) {
	const op = "service.query.Availability"

	e, err := s.experiences.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrExperienceNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return e.AvailableDates, nil
}
