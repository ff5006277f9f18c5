// Package monolith provides the application container and module interface.
package monolith

import (
	"context"

	"github.com/tokenlens/tokenlens/internal/cache"
	"github.com/tokenlens/tokenlens/internal/config"
	"github.com/tokenlens/tokenlens/internal/di"
	"github.com/tokenlens/tokenlens/internal/logger"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	PriceCache() cache.Store
	SearchCache() cache.Store
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config      *config.Config
	logger      logger.LoggerInterface
	priceCache  *cache.TTLStore
	searchCache *cache.TTLStore
	container   di.Container
}

// New creates a new Monolith instance.
func New(cfg *config.Config, log logger.LoggerInterface) (*app, error) {
	priceCache := cache.New(cfg.Cache.MaxEntries, cfg.Cache.PriceTTL)
	searchCache := cache.New(cfg.Cache.MaxEntries, cfg.Cache.SearchTTL)

	container := di.NewContainer()

	// Register global services
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("priceCache", priceCache)
	container.Register("searchCache", searchCache)

	return &app{
		config:      cfg,
		logger:      log,
		priceCache:  priceCache,
		searchCache: searchCache,
		container:   container,
	}, nil
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) PriceCache() cache.Store {
	return a.priceCache
}

func (a *app) SearchCache() cache.Store {
	return a.searchCache
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all resources.
func (a *app) Close() error {
	a.priceCache.Clear()
	a.searchCache.Clear()
	return nil
}
