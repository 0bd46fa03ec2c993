// Package server assembles the router, middleware stack and huma API, and runs
// the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/tasker-api/internal/http/routes"
	"github.com/janisto/tasker-api/internal/platform/config"
	applog "github.com/janisto/tasker-api/internal/platform/logging"
	appmiddleware "github.com/janisto/tasker-api/internal/platform/middleware"
	"github.com/janisto/tasker-api/internal/platform/respond"
)

// OpenAPI document metadata.
const (
	Title       = "Tasker API"
	Version     = "1.0.0"
	Description = "API for Tasker"

	serverDescription = "Local server"
	openAPIPath       = "/openapi"
	maxHeaderBytes    = 64 << 10
)

// NewRouter returns a chi router carrying the base middleware stack and the
// problem-details fallbacks for unknown routes and methods.
func NewRouter(cfg config.Config) chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(cfg.DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.CORSAllowedOrigins...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For. Only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(cfg.RequestBodyLimit),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)
	return router
}

// NewAPI creates the huma API on router and registers every route once.
func NewAPI(router chi.Router, cfg config.Config) huma.API {
	respond.Install()

	hcfg := huma.DefaultConfig(Title, Version)
	hcfg.Info.Description = Description
	hcfg.Servers = []*huma.Server{{URL: cfg.ServerURL, Description: serverDescription}}
	hcfg.OpenAPIPath = openAPIPath
	hcfg.DocsPath = cfg.DocsPath
	// Bodies stay exactly as declared, without a $schema link.
	hcfg.CreateHooks = nil

	api := humachi.New(router, hcfg)
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		respond.DocumentBadRequest,
		respond.DocumentCBOR,
	)

	routes.Register(api)
	return api
}

// NewHandler builds the complete request handler.
func NewHandler(cfg config.Config) http.Handler {
	router := NewRouter(cfg)
	NewAPI(router, cfg)
	return router
}

// New returns an http.Server for handler using the configured timeouts.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}
}

// Run serves on ln until ctx is done, then shuts srv down within shutdownTimeout.
// A serve failure is returned as is; a clean shutdown returns nil.
func Run(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", ln.Addr().String()))
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", ln.Addr(), err)
	case <-ctx.Done():
		applog.LogInfo(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-serveErr
	applog.LogInfo(shutdownCtx, "server exited")
	return nil
}
