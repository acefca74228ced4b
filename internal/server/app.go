// Package server initializes and runs the identity service. It builds
// the configuration, the two-tier credential directory, the user
// service and the HTTP transport, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/talenthub/talenthub/internal/logging"
	"github.com/talenthub/talenthub/internal/server/config"
	"github.com/talenthub/talenthub/internal/server/httpapi"
	"github.com/talenthub/talenthub/internal/server/metrics"
	"github.com/talenthub/talenthub/internal/server/repositories/users"
	"github.com/talenthub/talenthub/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *services.UserService
	server      *httpapi.Server
}

// NewApp wires every component once. The backend client and the signing
// secret are initialized here and treated as read-only afterwards.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	client, err := users.NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("backend client init error: %w", err)
	}

	collector := metrics.NewCollector()
	durable := users.NewDynamoDBRepository(client, cfg.UsersTable)
	fallback := users.NewInMemoryRepository()
	directory := users.NewTwoTierRepository(durable, fallback, cfg.DurableTimeout, logger, collector.RecordFallback)

	userService := services.NewUserService(directory, cfg)
	server := httpapi.NewServer(cfg, logger, userService, collector)

	return &App{config: cfg, logger: logger, userService: userService, server: server}, nil
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

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting identity service...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

}
