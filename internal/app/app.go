package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/tripslot/internal/config"
	"github.com/kirinyoku/tripslot/internal/jobs"
	"github.com/kirinyoku/tripslot/internal/notify"
	"github.com/kirinyoku/tripslot/internal/obs"
	"github.com/kirinyoku/tripslot/internal/postgres"
	"github.com/kirinyoku/tripslot/internal/redis"
	postgresrepo "github.com/kirinyoku/tripslot/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/tripslot/internal/repository/redis"
	"github.com/kirinyoku/tripslot/internal/service"
	"github.com/kirinyoku/tripslot/internal/service/changes"
	"github.com/kirinyoku/tripslot/internal/service/query"
	httpgin "github.com/kirinyoku/tripslot/internal/transport/http/gin"
	"github.com/kirinyoku/tripslot/internal/uow"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const txAttempts = 3

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	scheduler  *jobs.Scheduler
	dispatcher *notify.Dispatcher

	pool           *pgxpool.Pool
	rdb            *goredis.Client
	broker         *notify.Broker
	shutdownTracer func(context.Context) error
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx := context.Background()

	a := &App{cfg: cfg, logger: logger}

	shutdownTracer, err := obs.InitTracer(ctx, obs.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Env,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.shutdownTracer = shutdownTracer

	// Initialize dependencies
	a.pool, err = postgres.New(ctx, postgres.Config{
		DSN:         cfg.Postgres.DSN(),
		MaxConns:    cfg.Postgres.MaxConns,
		MinConns:    cfg.Postgres.MinConns,
		AutoMigrate: cfg.Postgres.AutoMigrate,
	})
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	a.rdb, err = redis.New(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	notifier, err := a.notifier()
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to initialize notifications: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(a.pool)
	repos := store.Repositories(nil)
	cache := redisrepo.New(a.rdb)
	pubsub := redisrepo.NewEventsPubSub(a.rdb)

	a.dispatcher = notify.NewDispatcher(notifier, logger, 30*time.Second)

	// Initialize services
	services := service.NewServices(service.Deps{
		Repos:     repos,
		UoW:       uow.NewUoW(store.Runner(), uow.WithRetry(txAttempts, postgresrepo.IsRetryable)),
		Cache:     cache,
		Announcer: changes.NewAnnouncer(cache, pubsub, logger),
		Notifier:  a.dispatcher,
		Logger:    logger,
	}, service.Config{
		Query: query.Config{
			ExperienceTTL: cfg.Cache.ExperienceTTL,
			ListTTL:       cfg.Cache.ListTTL,
		},
	})

	a.scheduler, err = jobs.New(repos.PromoCodes, jobs.Config{
		PromoSweepInterval: cfg.Jobs.Interval,
		PromoSweepGrace:    cfg.Jobs.Grace,
	}, logger)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	// Initialize Gin router
	router := httpgin.NewRouter(services, httpgin.Options{
		Idempotency:    redisrepo.NewIdempotencyStore(a.rdb, cfg.Cache.IdempotencyTTL),
		BookingLimiter: redisrepo.NewRateLimiter(a.rdb, "bookings", cfg.Limits.Bookings, cfg.Limits.Window),
		PromoLimiter:   redisrepo.NewRateLimiter(a.rdb, "promo", cfg.Limits.Promo, cfg.Limits.Window),
		Subscriber:     pubsub,
		CORSOrigins:    cfg.Server.CORSOrigins,
	}, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// notifier collects the confirmation channels that are configured. It
// returns nil when there are none.
func (a *App) notifier() (notify.Notifier, error) {
	var out notify.Multi

	if a.cfg.SMTP.Host != "" {
		out = append(out, notify.NewMailer(notify.MailConfig{
			Host:     a.cfg.SMTP.Host,
			Port:     a.cfg.SMTP.Port,
			Username: a.cfg.SMTP.Username,
			Password: a.cfg.SMTP.Password,
			From:     a.cfg.SMTP.From,
		}))
	}

	if a.cfg.Rabbit.URL != "" {
		broker, err := notify.NewBroker(a.cfg.Rabbit.URL, a.cfg.Rabbit.Exchange)
		if err != nil {
			return nil, err
		}
		a.broker = broker
		out = append(out, broker)
	}

	if len(out) == 0 {
		return nil, nil
	}

	return out, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	a.scheduler.Start()

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		err := a.httpServer.Shutdown(ctx)
		if serr := a.scheduler.Shutdown(); serr != nil {
			a.logger.Error("scheduler shutdown", "error", serr)
		}
		if derr := a.dispatcher.Wait(ctx); derr != nil {
			a.logger.Error("pending notifications dropped", "error", derr)
		}
		a.close(ctx)
		return err
	})

	return g.Wait()
}

// close releases whatever New managed to open.
func (a *App) close(ctx context.Context) {
	if a.broker != nil {
		if err := a.broker.Close(); err != nil {
			a.logger.Error("broker close", "error", err)
		}
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.shutdownTracer != nil {
		if err := a.shutdownTracer(ctx); err != nil {
			a.logger.Error("tracer shutdown", "error", err)
		}
	}
}
