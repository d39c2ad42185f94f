package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storefront/configs"
	"storefront/middlewares"
	"storefront/repository"
	"storefront/routes"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	shutdownTimeout    = 10 * time.Second
	sessionPurgePeriod = time.Hour
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// DB
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		return err
	}
	if err := configs.SetupDatabase(db); err != nil {
		return err
	}

	deps := routes.Dependencies{Config: cfg, DB: db}

	// Redis is optional: sessions fall back to the database and ranking is uncached
	rdb, err := configs.ConnectRedis(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		deps.Sessions = repository.NewRedisSessionStore(rdb)
		deps.Cache = repository.NewRankingCache(rdb, cfg.MostBoughtTTL)
	} else {
		sessions := repository.NewSessionRepository(db)
		deps.Sessions = sessions
		go purgeSessions(ctx, sessions)
	}

	if w := configs.NewKafkaWriter(cfg); w != nil {
		defer w.Close()
		deps.Events = services.NewKafkaEventPublisher(w)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("order events enabled")
	}

	otp, err := services.NewStaticOTPVerifier(cfg.OTPCode, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("otp verifier: %w", err)
	}
	deps.OTP = otp

	// HTTP
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return closeDB(db)
}

// purgeSessions deletes expired database sessions until ctx is done.
func purgeSessions(ctx context.Context, sessions *repository.SessionRepository) {
	t := time.NewTicker(sessionPurgePeriod)
	defer t.Stop()
	for {
		n, err := sessions.PurgeExpired(ctx)
		if err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Msg("purge expired sessions failed")
		} else if n > 0 {
			log.Info().Int64("sessions", n).Msg("expired sessions purged")
		}

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
