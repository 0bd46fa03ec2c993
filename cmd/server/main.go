package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/janisto/tasker-api/internal/platform/config"
	applog "github.com/janisto/tasker-api/internal/platform/logging"
	"github.com/janisto/tasker-api/internal/server"
)

func main() {
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		applog.LogError(context.Background(), "server failed", err)
	}
	if syncErr := applog.Sync(); syncErr != nil {
		applog.LogError(context.Background(), "logger sync error", syncErr)
	}
	if err != nil {
		os.Exit(1)
	}
}

// run loads configuration, builds the handler, binds the listener and serves
// until ctx is done. Routes are registered before the port is bound.
func run(ctx context.Context) error {
	undo, err := maxprocs.Set(maxprocs.Logger(applog.Sugar().Infof))
	defer undo()
	if err != nil {
		applog.LogWarn(ctx, "failed to set GOMAXPROCS", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	handler := server.NewHandler(cfg)
	srv := server.New(cfg, handler)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}
	return server.Run(ctx, srv, ln, cfg.ShutdownTimeout)
}
