package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/microblog/backend/internal/cache"
	"github.com/anonto42/microblog/backend/internal/events"
	"github.com/anonto42/microblog/backend/internal/repositories"
	"github.com/anonto42/microblog/backend/internal/router"
	"github.com/anonto42/microblog/backend/internal/services"
	"github.com/anonto42/microblog/backend/pkg/config"
	"github.com/anonto42/microblog/backend/pkg/firebase"
	"github.com/anonto42/microblog/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "microblog",
		Short:        "Microblog API server",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), migrateCmd())
	return root
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := logger.Init(cfg.LogLevel, cfg.LogFormat)

			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := repositories.NewStore(db.SQL).AutoMigrate(cmd.Context()); err != nil {
				return err
			}
			if db.Mongo != nil {
				journal := events.NewMongoJournal(db.Mongo.Database(cfg.MongoDatabase))
				if err := journal.EnsureIndexes(cmd.Context()); err != nil {
					return err
				}
			}
			log.Info("Migrations completed.")
			return nil
		},
	}
}

func serveCmd() *cobra.Command {
	var autoMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), autoMigrate)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "migrate the schema before serving")
	return cmd
}

func serve(ctx context.Context, autoMigrate bool) error {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)

	scope, err := services.ParseScope(cfg.FeedScope)
	if err != nil {
		return err
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	store := repositories.NewStore(db.SQL)
	if autoMigrate {
		if err := store.AutoMigrate(ctx); err != nil {
			return err
		}
	}

	opts := router.Options{
		FeedScope: scope,
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.JWTTTL,
		Log:       log,
	}

	sinks := events.Multi{events.NewLogPublisher(log)}
	if len(cfg.KafkaBrokers) > 0 {
		sinks = append(sinks, events.NewKafkaPublisher(events.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			Timeout: cfg.KafkaTimeout,
		}))
		log.WithField("topic", cfg.KafkaTopic).Info("Kafka event sink enabled.")
	}
	if cfg.NatsURL != "" {
		nc, err := events.ConnectNats(cfg.NatsURL, cfg.NatsSubjectPrefix)
		if err != nil {
			return err
		}
		sinks = append(sinks, nc)
		log.WithField("url", cfg.NatsURL).Info("NATS event sink enabled.")
	}
	if db.Mongo != nil {
		journal := events.NewMongoJournal(db.Mongo.Database(cfg.MongoDatabase))
		sinks = append(sinks, journal)
		opts.Activity = journal
		log.Info("MongoDB event journal enabled.")
	}
	defer func() {
		if err := sinks.Close(); err != nil {
			log.WithError(err).Warn("Error closing event sinks")
		}
	}()

	var likeCache cache.LikeCounter = cache.NopLikeCounter{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("Redis unreachable, like counts will not be cached")
		} else {
			likeCache = cache.NewRedisLikeCounter(rdb)
			log.WithField("addr", cfg.RedisAddr).Info("Redis like count cache enabled.")
		}
	}

	if cfg.FirebaseCredentialsPath != "" {
		client, err := firebase.NewAuthClient(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return err
		}
		opts.Firebase = client
		log.Info("Firebase login enabled.")
	}

	opts.Deps = services.Deps{Store: store, Events: sinks, LikeCache: likeCache, Log: log}

	e := echo.New()
	e.HideBanner = true
	config.SetupMiddleware(e, log)
	router.SetupRoutes(e, opts)

	return run(ctx, e, ":"+cfg.Port, log)
}

// run serves until SIGINT or SIGTERM, then drains in-flight requests
func run(ctx context.Context, e *echo.Echo, addr string, log logrus.FieldLogger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("Shutting down server")
	return e.Shutdown(shutdownCtx)
}
