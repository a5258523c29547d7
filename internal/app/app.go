package app

import (
	"go.uber.org/zap"

	"staybook/internal/api"
	"staybook/internal/config"
	"staybook/internal/modules/booking"
	"staybook/internal/modules/catalog"
	"staybook/internal/modules/profile"
	"staybook/internal/querycache"
	"staybook/internal/store"
)

// App owns all client state for one session. Screens receive it instead of
// reaching for globals, so a test can build as many independent sessions as
// it needs.
type App struct {
	Config *config.Client
	Log    *zap.Logger

	Client *api.Client
	Cache  *querycache.Cache

	Bookings *store.BookingStore
	Users    *store.UserStore

	Booking *booking.Service
	Catalog *catalog.Service
	Profile *profile.Service
}

type UI interface {
	booking.Notifier
	booking.Navigator
}

func New(cfg *config.Client, client *api.Client, ui UI, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}

	cache := querycache.New(log.Named("querycache"))
	bookings := store.NewBookingStore(log.Named("store"))
	users := store.NewUserStore()

	bookingSvc := booking.NewService(
		api.NewBookingService(client),
		bookings,
		cache,
		ui,
		ui,
		booking.Config{UserID: cfg.DemoUserID, Reconcile: true},
		log.Named("booking"),
	)

	return &App{
		Config:   cfg,
		Log:      log,
		Client:   client,
		Cache:    cache,
		Bookings: bookings,
		Users:    users,
		Booking:  bookingSvc,
		Catalog: catalog.NewService(
			api.NewPropertyService(client),
			bookingSvc,
			bookings,
			cache,
			log.Named("catalog"),
		),
		Profile: profile.NewService(
			api.NewProfileService(client),
			users,
			cache,
			cfg.DemoUserID,
			log.Named("profile"),
		),
	}
}

// Close waits for background reconciliation and flushes the logger.
func (a *App) Close() {
	a.Booking.Wait()
	_ = a.Log.Sync()
}
