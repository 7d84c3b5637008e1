// Package server wires the dashboard together: configuration, logging,
// credential store and registry providers, the session table, and the gRPC
// endpoint. It handles graceful shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/selfhostdash/internal/logging"
	"github.com/dmitrijs2005/selfhostdash/internal/server/config"
	"github.com/dmitrijs2005/selfhostdash/internal/server/dashboard"
	"github.com/dmitrijs2005/selfhostdash/internal/server/providers"
	"github.com/dmitrijs2005/selfhostdash/internal/server/services"
	"github.com/dmitrijs2005/selfhostdash/internal/server/sessions"

	gs "github.com/dmitrijs2005/selfhostdash/internal/server/grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	providers *providers.Providers
	sessions  *sessions.Manager
	facade    *dashboard.Facade
}

// NewApp builds every component from c. Log output goes to stdout.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(c.LogBackend, c.LogLevel, logOut)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	p, err := providers.New(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("providers init error: %w", err)
	}

	sm := sessions.NewManager(sessions.Options{
		TTL:           c.SessionTTL,
		SingleSession: c.SingleSession,
		Logger:        logger,
	})
	auth := services.NewAuthService(p.Store, sm, c.BootstrapOnly, logger)

	return &App{
		config:    c,
		logger:    logger,
		providers: p,
		sessions:  sm,
		facade:    dashboard.New(auth, p.Registry),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.facade)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a signal arrives, then releases the
// providers.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...",
		"credential_backend", app.config.CredentialBackend,
		"registry_backend", app.config.RegistryBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.sessions.Run(ctx, app.config.SessionSweepInterval)
	}()

	wg.Wait()

	if err := app.providers.Close(); err != nil {
		app.logger.Error(ctx, "close providers", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
