package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/vendortrack/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/vendortrack/internal/catalog/store"
	"github.com/MrJamesThe3rd/vendortrack/internal/config"
	"github.com/MrJamesThe3rd/vendortrack/internal/database"
	"github.com/MrJamesThe3rd/vendortrack/internal/event"
	eventStore "github.com/MrJamesThe3rd/vendortrack/internal/event/store"
	"github.com/MrJamesThe3rd/vendortrack/internal/export"
	"github.com/MrJamesThe3rd/vendortrack/internal/importer"
	"github.com/MrJamesThe3rd/vendortrack/internal/storage"
	"github.com/MrJamesThe3rd/vendortrack/internal/user"
	userStore "github.com/MrJamesThe3rd/vendortrack/internal/user/store"
)

// App holds the services shared by the API server and the terminal client.
type App struct {
	Products *catalog.Service
	Events   *event.Service
	Users    *user.Service
	Import   *importer.Service
	Export   *export.Service

	closers []io.Closer
}

// New opens the configured storage backend, builds every service on top of
// it and loads the persisted state.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	backend, err := a.openBackend(ctx, cfg)
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}

	a.Products = catalog.NewService(catalogStore.New(backend))
	a.Events = event.NewService(eventStore.New(backend), a.Products)
	a.Users = user.NewService(userStore.New(backend))
	a.Import = importer.NewService()
	a.Export = export.NewService(a.Events)

	a.Products.Load(ctx)
	a.Events.Load(ctx)
	a.Users.Load(ctx)

	return a, nil
}

func (a *App) openBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return storage.NewMemory(), nil

	case config.DriverFile:
		backend, err := storage.NewFile(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening file storage: %w", err)
		}

		return backend, nil

	case config.DriverRedis:
		backend := storage.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		a.closers = append(a.closers, backend)

		if err := backend.Ping(ctx); err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}

		return backend, nil

	case config.DriverPostgres:
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}

		a.closers = append(a.closers, db)

		backend := storage.NewPostgres(db)
		if err := backend.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("preparing schema: %w", err)
		}

		return backend, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Close releases backend connections.
func (a *App) Close() error {
	var errs []error

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	a.closers = nil

	return errors.Join(errs...)
}
