// Package server wires configuration, storage, business services and the
// HTTP and gRPC endpoints together and runs them until shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/promptmarket/internal/logging"
	"github.com/dmitrijs2005/promptmarket/internal/server/config"
	"github.com/dmitrijs2005/promptmarket/internal/server/records"
	"github.com/dmitrijs2005/promptmarket/internal/server/repositories/liststore"
	"github.com/dmitrijs2005/promptmarket/internal/server/repositories/prompts"
	"github.com/dmitrijs2005/promptmarket/internal/server/rest"
	"github.com/dmitrijs2005/promptmarket/internal/server/services"
	"github.com/dmitrijs2005/promptmarket/internal/textguard"

	gs "github.com/dmitrijs2005/promptmarket/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	store   liststore.Store
	prompts *services.PromptService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	guard, err := textguard.New(c.BlockedTerms)
	if err != nil {
		return nil, fmt.Errorf("text guard init error: %w", err)
	}

	store, err := OpenStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	repo := prompts.NewListRepository(store, c.ListKey, c.MaxRecords, logger)
	ps := services.NewPromptService(repo, records.NewBuilder(guard), logger)

	return &App{config: c, logger: logger, store: store, prompts: ps}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.prompts, app.config.AllowedOrigin)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	pinger, _ := app.store.(liststore.Pinger)
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, pinger, app.config.HealthProbeInterval)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a termination signal arrives or one of
// the servers fails, then closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "store", app.config.StoreBackend)

	app.initSignalHandler(ctx, cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := CloseStore(app.store); err != nil {
		app.logger.Error(ctx, "store close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
