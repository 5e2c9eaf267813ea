package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/authz"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/db/migrate"
	"github.com/BruksfildServices01/barbershop-booking/internal/events"
	"github.com/BruksfildServices01/barbershop-booking/internal/identity"
	"github.com/BruksfildServices01/barbershop-booking/internal/identity/local"
	"github.com/BruksfildServices01/barbershop-booking/internal/identity/supabase"
	infraRepo "github.com/BruksfildServices01/barbershop-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-booking/internal/logging"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/storage"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {

	cfg, err := config.Load()
	if err != nil {
		logging.New("info", "text").WithError(err).Fatal("load config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	timezone.SetDefault(cfg.DefaultTimezone)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.MigrateOnStart {
		if err := migrate.Run(cfg.DBUrl, migrate.Up); err != nil {
			log.WithError(err).Fatal("migrations failed")
		}
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("connect database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy, err := authz.New(ctx)
	if err != nil {
		log.WithError(err).Fatal("compile authorization policy")
	}

	templates, err := web.Templates()
	if err != nil {
		log.WithError(err).Fatal("parse templates")
	}

	// ------------------------------
	// OPTIONAL BACKENDS
	// ------------------------------
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, limiter falls back to in-process buckets")
		}
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		rabbit := events.NewRabbitPublisher(cfg.RabbitMQURL, log)
		defer rabbit.Close()
		async := events.NewAsync(rabbit, log)
		defer async.Close()
		publisher = async
	}

	var uploader storage.Uploader
	if cfg.StorageEnabled() {
		uploader = storage.NewS3(storage.Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			Endpoint:      cfg.S3Endpoint,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	}

	dispatcher := audit.NewDispatcher(audit.New(infraRepo.NewAuditGormRepository(db)), log)

	r, err := routes.NewEngine(cfg.TrustedProxyList())
	if err != nil {
		log.WithError(err).Fatal("invalid TRUSTED_PROXIES")
	}

	if err := routes.RegisterRoutes(r, db, cfg, routes.Dependencies{
		Log:       log,
		Identity:  identityProvider(cfg, infraRepo.NewUserGormRepository(db), log),
		Authz:     policy,
		Audit:     dispatcher,
		Publisher: publisher,
		Uploader:  uploader,
		Redis:     rdb,
		Templates: templates,
	}); err != nil {
		log.WithError(err).Fatal("register routes")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":     cfg.Addr(),
			"identity": cfg.IdentityProvider,
		}).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	dispatcher.Close()
}

func identityProvider(cfg *config.Config, users local.Store, log *logrus.Logger) identity.Provider {
	if cfg.IdentityProvider == config.IdentitySupabase {
		return supabase.New(supabase.Config{
			URL:       cfg.SupabaseURL,
			AnonKey:   cfg.SupabaseAnonKey,
			JWTSecret: cfg.SupabaseJWTSecret,
			Timeout:   10 * time.Second,
		}, log)
	}
	return local.New(users, cfg.JWTSecret, cfg.AccessTTL(), log)
}
