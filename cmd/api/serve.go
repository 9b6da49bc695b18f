package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/redislock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "Run schema migrations before serving")
	return cmd
}

// loadEnv reads and validates config and builds the logger.
func loadEnv() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logger.New(cfg), nil
}

func runServer(migrate bool) error {
	cfg, log, err := loadEnv()
	if err != nil {
		return err
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --------------------------------------------------
	// Database
	// --------------------------------------------------
	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()

	if migrate {
		if err := dbpkg.Migrate(db); err != nil {
			return err
		}
	}

	checks := map[string]handlers.Check{
		"database": dbCheck(db),
	}

	// --------------------------------------------------
	// Redis (optional)
	// --------------------------------------------------
	var (
		locker  domain.SlotLocker        = redislock.NopLocker{}
		limiter redislock.AttemptLimiter = redislock.NopLimiter{}
	)
	if cfg.RedisURL != "" {
		rdb, err := redislock.NewClient(rootCtx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("close redis")
			}
		}()

		locker = redislock.NewSlotLocker(rdb, cfg.LockTTL)
		limiter = redislock.NewAttemptLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)
		checks["redis"] = redisCheck(rdb)
		log.Info().Msg("connected to redis")
	} else {
		log.Warn().Msg("REDIS_URL not set, slot locking and login limiting disabled")
	}

	// --------------------------------------------------
	// Mail
	// --------------------------------------------------
	var sender notify.Sender = notify.NewLogSender(log)
	if cfg.SMTPEnabled() {
		sender = notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.SMTPFrom,
		})
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Log:     log,
		Audit:   dispatcher,
		Locker:  locker,
		Limiter: limiter,
		Sender:  sender,
		Checks:  checks,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-rootCtx.Done():
	}

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(ctx)
}

func dbCheck(db *gorm.DB) handlers.Check {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func redisCheck(rdb *redis.Client) handlers.Check {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
