// Package platform boots bridge daemons with shared dependencies.
package platform

import (
	"context"
	"database/sql"
	"errors"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/skyhawk-robotics/interop-bridge/internal/interop"
	"github.com/skyhawk-robotics/interop-bridge/pkg/bus"
	"github.com/skyhawk-robotics/interop-bridge/pkg/config"
	"github.com/skyhawk-robotics/interop-bridge/pkg/httpserver"
	"github.com/skyhawk-robotics/interop-bridge/pkg/logging"
	"github.com/skyhawk-robotics/interop-bridge/pkg/storage"
)

// Deps bundles everything a daemon's run function may need.
type Deps struct {
	Cfg    config.Config
	Logger zerolog.Logger
	Client *interop.Client
	NATS   *nats.Conn
	Redis  *redis.Client
	DB     *sql.DB
}

// Options selects optional dependencies.
type Options struct {
	WithPostgres bool
}

// Run loads config, connects shared dependencies, waits for the judge
// server, logs in, and hands control to run. It returns when run returns or
// the process receives SIGINT/SIGTERM.
func Run(serviceName string, opts Options, run func(ctx context.Context, d Deps) error) error {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.AppName, cfg.ServiceName, cfg.Env)
	logger.Info().Msg("loading shared dependencies")

	client, err := interop.New(interop.Config{
		BaseURL:  cfg.InteropURL,
		Username: cfg.InteropUsername,
		Password: cfg.InteropPassword,
		Timeout:  cfg.RequestTimeout,
	}, logger)
	if err != nil {
		return err
	}

	natsConn, err := bus.Connect(cfg.NATSURL)
	if err != nil {
		return err
	}
	defer natsConn.Close()

	redisClient := storage.NewRedis(cfg.RedisAddr)
	defer redisClient.Close()

	deps := Deps{
		Cfg:    cfg,
		Logger: logger,
		Client: client,
		NATS:   natsConn,
		Redis:  redisClient,
	}

	if opts.WithPostgres {
		db, err := storage.NewPostgres(cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer db.Close()
		deps.DB = db
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		mux := httpserver.NewMux(cfg.ServiceName)
		if err := httpserver.Run(ctx, logger, cfg.HTTPPort, mux, cfg.ShutdownTimeout); err != nil {
			logger.Warn().Err(err).Msg("diagnostics server stopped")
		}
	}()

	logger.Info().Str("url", cfg.InteropURL).Msg("waiting for interoperability server")
	if err := client.WaitForServer(ctx); err != nil {
		return shutdownErr(err)
	}
	if err := client.Login(ctx); err != nil {
		return err
	}
	logger.Info().Msg("authenticated with interoperability server")

	return shutdownErr(run(ctx, deps))
}

// shutdownErr maps a signal-driven cancellation onto a clean exit.
func shutdownErr(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
