// Package app provides application lifecycle management for the catalog
// server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/datacat-dev/datacat/pkg/catalog"
	"github.com/datacat-dev/datacat/pkg/config"
	"github.com/datacat-dev/datacat/internal/logger"
)

// CatalogApp encapsulates all components needed to run the catalog API
// server. It provides lifecycle management and graceful shutdown.
type CatalogApp struct {
	config     *config.Config
	catalog    *catalog.Catalog
	httpServer *http.Server

	// Lifecycle management
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// Start starts the HTTP server. This method blocks until the server stops
// or encounters an error.
func (app *CatalogApp) Start() error {
	logger.Infof("Server listening on %s", app.httpServer.Addr)
	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Stop gracefully stops the application with the given timeout.
func (app *CatalogApp) Stop(timeout time.Duration) error {
	logger.Info("Shutting down server...")

	if app.cancelFunc != nil {
		app.cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server shutdown complete")
	return nil
}

// GetConfig returns the application configuration
func (app *CatalogApp) GetConfig() *config.Config {
	return app.config
}

// GetCatalog returns the catalog facade
func (app *CatalogApp) GetCatalog() *catalog.Catalog {
	return app.catalog
}

// GetHTTPServer returns the HTTP server (useful for testing)
func (app *CatalogApp) GetHTTPServer() *http.Server {
	return app.httpServer
}
