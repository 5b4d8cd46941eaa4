package service

import (
	"log/slog"

	"github.com/kirinyoku/tripslot/internal/notify"
	"github.com/kirinyoku/tripslot/internal/repository"
	redisrepo "github.com/kirinyoku/tripslot/internal/repository/redis"
	"github.com/kirinyoku/tripslot/internal/service/admin"
	"github.com/kirinyoku/tripslot/internal/service/bookings"
	"github.com/kirinyoku/tripslot/internal/service/changes"
	"github.com/kirinyoku/tripslot/internal/service/promo"
	"github.com/kirinyoku/tripslot/internal/service/query"
	"github.com/kirinyoku/tripslot/internal/service/reservation"
	"github.com/kirinyoku/tripslot/internal/uow"
)

type Services struct {
	Reservation *reservation.Service
	Promo       *promo.Service
	Query       *query.Service
	Admin       *admin.Service
	Bookings    *bookings.Service
}

type Config struct {
	Query query.Config
}

// Deps are the collaborators shared by the services. Cache, Announcer and
// Notifier may be nil.
type Deps struct {
	Repos     repository.Repositories
	UoW       *uow.UoW
	Cache     *redisrepo.Cache
	Announcer *changes.Announcer
	Notifier  *notify.Dispatcher
	Logger    *slog.Logger
}

func NewServices(d Deps, cfg Config) *Services {
	return &Services{
		Reservation: reservation.New(d.UoW, d.Announcer, d.Notifier, d.Logger),
		Promo:       promo.New(d.Repos.PromoCodes),
		Query:       query.New(d.Repos.Experiences, d.Cache, cfg.Query),
		Admin:       admin.New(d.Repos, d.UoW, d.Announcer, d.Logger),
		Bookings:    bookings.New(d.Repos.Bookings),
	}
}
