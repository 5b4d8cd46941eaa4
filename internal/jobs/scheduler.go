// Package jobs runs periodic maintenance in the background.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/kirinyoku/tripslot/internal/repository"
)

type Config struct {
	PromoSweepInterval time.Duration
	// PromoSweepGrace keeps expired codes active for a while so customers
	// still get "promo code expired" rather than "invalid promo code".
	PromoSweepGrace time.Duration
	RunTimeout      time.Duration
}

type Scheduler struct {
	cron   gocron.Scheduler
	promos repository.PromoCodeRepository
	cfg    Config
	log    *slog.Logger
	now    func() time.Time
}

func New(promos repository.PromoCodeRepository, cfg Config, log *slog.Logger) (*Scheduler, error) {
	if cfg.PromoSweepInterval <= 0 {
		cfg.PromoSweepInterval = time.Hour
	}

	if cfg.PromoSweepGrace < 0 {
		cfg.PromoSweepGrace = 0
	}

	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = time.Minute
	}

	if log == nil {
		log = slog.Default()
	}

	cron, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("jobs.New: %w", err)
	}

	s := &Scheduler{
		cron:   cron,
		promos: promos,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}

	_, err = cron.NewJob(
		gocron.DurationJob(cfg.PromoSweepInterval),
		gocron.NewTask(s.runPromoSweep),
		gocron.WithName("promo-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = cron.Shutdown()
		return nil, fmt.Errorf("jobs.New: %w", err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", slog.Duration("promo_sweep_interval", s.cfg.PromoSweepInterval))
}

// Shutdown stops scheduling and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	return s.cron.Shutdown()
}

// SweepPromoCodes deactivates codes that expired more than the grace period
// ago and returns how many were switched off.
func (s *Scheduler) SweepPromoCodes(ctx context.Context) (int64, error) {
	const op = "jobs.Scheduler.SweepPromoCodes"

	n, err := s.promos.DeactivateExpired(ctx, s.now().Add(-s.cfg.PromoSweepGrace))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (s *Scheduler) runPromoSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RunTimeout)
	defer cancel()

	n, err := s.SweepPromoCodes(ctx)
	if err != nil {
		s.log.Error("promo sweep failed", slog.Any("error", err))
		return
	}

	if n > 0 {
		s.log.Info("expired promo codes deactivated", slog.Int64("count", n))
	}
}
