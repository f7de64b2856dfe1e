package main

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"incomfort/internal/config"
	"incomfort/internal/gateway"
	"incomfort/internal/handlers"
	"incomfort/internal/logger"
	"incomfort/internal/metrics"
	"incomfort/internal/mqtt"
	"incomfort/internal/repository"
	"incomfort/internal/repository/db"
	"incomfort/internal/server"
	"incomfort/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API with the background poller, metrics and MQTT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

// serve blocks until ctx is canceled or the HTTP server fails.
func (a *app) serve(ctx context.Context) error {
	cfg, log := a.cfg, a.log

	client, err := gateway.NewClient(config.NewResolver(cfg.Gateway.Host, false),
		gateway.WithTimeout(cfg.Gateway.Timeout))
	if err != nil {
		return err
	}

	// open DB
	sqlDB, err := openDB(cfg.DB.Path, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	exporter := metrics.NewExporter()
	opts := service.Options{
		Observers: []service.Observer{exporter},
		OnError: func(op string, heater int, err error) {
			exporter.CountError(op)
			log.ForHeater(heater).Warnw("background operation failed", "op", op, "err", err)
		},
	}
	if cfg.Auth.Enabled {
		opts.Auth = &service.AuthSettings{
			Username:     cfg.Auth.Username,
			PasswordHash: cfg.Auth.PasswordHash,
			SigningKey:   cfg.Auth.SigningKey,
			TokenTTL:     cfg.Auth.TokenTTL,
		}
	}
	if cfg.MQTT.Broker != "" {
		pub, err := mqtt.Connect(mqtt.Options{
			Broker:      cfg.MQTT.Broker,
			ClientID:    cfg.MQTT.ClientID,
			TopicPrefix: cfg.MQTT.TopicPrefix,
			Retain:      cfg.MQTT.Retain,
		}, log)
		if err != nil {
			return err
		}
		defer pub.Close()
		opts.Observers = append(opts.Observers, pub)
	}

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(client, repos, opts)

	heaters, err := services.Open(ctx)
	if err != nil {
		// Run retries the listing on its first tick.
		log.Warnw("heater discovery failed", "gateway", client.Endpoint(), "err", err)
	} else {
		log.Infow("heaters discovered", "gateway", client.Endpoint(), "heaters", heaters)
	}

	pollCtx, cancelPoll := context.WithCancel(ctx)
	defer cancelPoll()
	pollDone := startPoller(pollCtx, services, cfg.Poll.Interval)

	if cfg.Log.Level != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	apiHandler := handlers.NewHandler(services, log, handlers.WithMetrics(exporter.Handler()))
	srv := server.New(cfg.HTTP.Port, apiHandler.InitRoutes())

	errCh := make(chan error, 1)
	go func() {
		log.Infow("http server listening", "addr", srv.Addr())
		errCh <- srv.Run()
	}()

	err = waitForShutdown(ctx, cancelPoll, srv, errCh, log)
	// the cache must outlive the last poll
	<-pollDone
	return err
}

// startPoller runs p until ctx is canceled. The returned channel is closed
// once Run has returned.
func startPoller(ctx context.Context, p service.Poller, tick time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx, tick)
	}()
	return done
}

// openDB initializes the SQLite snapshot cache.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set; using default file", "default", "incomfort.db")
		path = "incomfort.db"
	}
	sqlDB, err := db.InitDB(path)
	if err != nil {
		return nil, fmt.Errorf("init sqlite: %w", err)
	}
	return sqlDB, nil
}

// waitForShutdown returns when ctx is done or the server stops on its own,
// stopping the poller and draining in-flight requests.
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, srv *server.Server, errCh <-chan error, log *logger.Logger) error {
	select {
	case err := <-errCh:
		cancel()
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-errCh
}
