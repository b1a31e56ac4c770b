package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/datacat-dev/datacat/internal/api"
	"github.com/datacat-dev/datacat/pkg/catalog"
	"github.com/datacat-dev/datacat/pkg/config"
	"github.com/datacat-dev/datacat/pkg/registry"
	"github.com/datacat-dev/datacat/pkg/telemetry"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultReadTimeout    = 10 * time.Second
	// Must be > request timeout so the timeout middleware can respond.
	defaultWriteTimeout = 15 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// CatalogAppOption configures the catalog app builder
type CatalogAppOption func(*catalogAppConfig) error

// catalogAppConfig builds a CatalogApp with sensible production defaults
// and injection points for testing.
type catalogAppConfig struct {
	config *config.Config

	// Optional component overrides (primarily for testing)
	types   *registry.TypeRegistry
	metrics *telemetry.Metrics

	// HTTP server options
	address        string
	middlewares    []func(http.Handler) http.Handler
	requestTimeout time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
}

// WithAppConfig sets the loaded configuration
func WithAppConfig(cfg *config.Config) CatalogAppOption {
	return func(c *catalogAppConfig) error {
		if cfg == nil {
			return fmt.Errorf("config cannot be nil")
		}
		c.config = cfg
		return nil
	}
}

// WithAddress overrides the listen address from configuration
func WithAddress(address string) CatalogAppOption {
	return func(c *catalogAppConfig) error {
		c.address = address
		return nil
	}
}

// WithTypeRegistry overrides the dataset type registry
func WithTypeRegistry(types *registry.TypeRegistry) CatalogAppOption {
	return func(c *catalogAppConfig) error {
		if types == nil {
			return fmt.Errorf("type registry cannot be nil")
		}
		c.types = types
		return nil
	}
}

// WithMiddlewares adds extra HTTP middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) CatalogAppOption {
	return func(c *catalogAppConfig) error {
		c.middlewares = append(c.middlewares, mw...)
		return nil
	}
}

func baseConfig(opts ...CatalogAppOption) (*catalogAppConfig, error) {
	cfg := &catalogAppConfig{
		requestTimeout: defaultRequestTimeout,
		readTimeout:    defaultReadTimeout,
		writeTimeout:   defaultWriteTimeout,
		idleTimeout:    defaultIdleTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if cfg.address == "" {
		cfg.address = cfg.config.Address()
	}
	if cfg.types == nil {
		cfg.types = registry.NewBuiltinTypeRegistry()
	}
	if cfg.metrics == nil {
		cfg.metrics = telemetry.NewMetrics()
	}

	return cfg, nil
}

// NewCatalogApp assembles config, registry, catalog and HTTP server into a
// runnable application.
func NewCatalogApp(ctx context.Context, opts ...CatalogAppOption) (*CatalogApp, error) {
	cfg, err := baseConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build base configuration: %w", err)
	}

	cat, err := catalog.FromConfig(cfg.config, cfg.types, catalog.WithMetrics(cfg.metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog: %w", err)
	}

	middlewares := append([]func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Timeout(cfg.requestTimeout),
		api.LoggingMiddleware,
	}, cfg.middlewares...)

	router := api.NewServer(cat,
		api.WithMiddlewares(middlewares...),
		api.WithMetrics(cfg.metrics),
	)

	appCtx, cancel := context.WithCancel(ctx)

	httpServer := &http.Server{
		Addr:         cfg.address,
		Handler:      router,
		ReadTimeout:  cfg.readTimeout,
		WriteTimeout: cfg.writeTimeout,
		IdleTimeout:  cfg.idleTimeout,
	}

	return &CatalogApp{
		config:     cfg.config,
		catalog:    cat,
		httpServer: httpServer,
		ctx:        appCtx,
		cancelFunc: cancel,
	}, nil
}
