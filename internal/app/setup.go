// Package app contains the application setup for the product service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/avelichko/prodcatalog/internal/config"
	"github.com/avelichko/prodcatalog/internal/service"
	"github.com/avelichko/prodcatalog/internal/store"
	"github.com/avelichko/prodcatalog/internal/transport/rest"
	"github.com/avelichko/prodcatalog/pkg/server"
	"github.com/avelichko/prodcatalog/pkg/web"
	"github.com/go-chi/chi/v5"
)

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
}

// SetupDependencies creates the in-memory store, populates it with the seed
// products and wires the product service on top.
func SetupDependencies(logger *slog.Logger) (*Dependencies, error) {
	pStore := store.NewMemoryStore()
	if err := seed(pStore); err != nil {
		return nil, fmt.Errorf("failed to seed product store: %w", err)
	}
	pService := service.NewService(pStore)

	return &Dependencies{
		ProductService: pService,
		Logger:         logger,
	}, nil
}

// SetupHTTPHandler initializes the router and routes for the product service.
// Also used by tests to exercise the full middleware and routing stack.
func SetupHTTPHandler(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := server.NewChiRouter(deps.Logger, cfg.Production())
	wireRoutes(mux, deps, cfg)
	return mux
}

// wireRoutes sets up the HTTP routes for the product service.
func wireRoutes(mux *chi.Mux, deps *Dependencies, cfg *config.Config) {
	productHandler := rest.NewHandler(deps.ProductService, deps.Logger)
	productHandler.RegisterRoutes(mux, web.APIKeyAuth(cfg.Auth.APIKey, deps.Logger))
}

// SetupHTTPServer creates and configures an HTTP server for the product service.
func SetupHTTPServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHTTPHandler(deps, cfg)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

// seed inserts the sample product set into the store.
func seed(pStore store.ProductStore) error {
	ctx := context.Background()
	for _, p := range store.SeedProducts() {
		if _, err := pStore.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
