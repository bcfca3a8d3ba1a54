package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-backoffice/internal/auth"
	"github.com/ukydev/fleet-backoffice/internal/config"
	"github.com/ukydev/fleet-backoffice/internal/db"
	"github.com/ukydev/fleet-backoffice/internal/events"
	"github.com/ukydev/fleet-backoffice/internal/handlers"
	"github.com/ukydev/fleet-backoffice/internal/logging"
	"github.com/ukydev/fleet-backoffice/internal/middleware"
	"github.com/ukydev/fleet-backoffice/internal/notify"
	"github.com/ukydev/fleet-backoffice/internal/repository"
	"github.com/ukydev/fleet-backoffice/internal/scheduler"
	"github.com/ukydev/fleet-backoffice/internal/seed"
	"github.com/ukydev/fleet-backoffice/internal/stats"
)

// storeCollection is the MongoDB collection holding one document per
// fleet collection.
const storeCollection = "collections"

// eventQueueSize bounds the events waiting for the MQTT broker.
const eventQueueSize = 256

// openStore builds the configured store. The returned cleanup must be called
// on shutdown.
func openStore(ctx context.Context, cfg config.StorageConfig, log logrus.FieldLogger) (db.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendMongo:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")
		store := &db.MongoStore{Collection: client.Database(cfg.MongoDB).Collection(storeCollection)}
		return store, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.WithError(err).Error("Failed to close MongoDB connection")
			}
		}, nil
	case config.BackendMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		return db.NewMemoryStore(), func() {}, nil
	default:
		store, err := db.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		log.WithField("dir", cfg.DataDir).Info("Using file store")
		return store, func() {}, nil
	}
}

// openPublisher connects to the MQTT broker when one is configured. Events
// are delivered from a background queue.
func openPublisher(cfg config.MQTTConfig, log logrus.FieldLogger) (events.Publisher, func()) {
	if cfg.Broker == "" {
		return events.NoopPublisher{}, func() {}
	}
	publisher, client, err := events.ConnectMQTT(cfg.Broker, cfg.ClientID, cfg.Topic)
	if err != nil {
		// events are best-effort, the back office works without them
		log.WithError(err).Warn("MQTT unavailable, domain events disabled")
		return events.NoopPublisher{}, func() {}
	}
	log.WithField("broker", cfg.Broker).Info("Publishing domain events")
	async := events.NewAsyncPublisher(publisher, eventQueueSize, log)
	return async, func() {
		async.Close()
		client.Disconnect(250)
	}
}

// newRouter registers every route and wraps the mux in the auth and request
// logging middleware.
func newRouter(authService *auth.Service, fleet *handlers.FleetHandler, log logrus.FieldLogger) http.Handler {
	authHandler := handlers.NewAuthHandler(authService, log.WithField("component", "auth"))
	rateLimit := middleware.NewRateLimitMiddleware()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("POST /api/auth/login", rateLimit.RateLimit(10, 60)(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("GET /api/auth/session", authHandler.Session)
	fleet.Register(mux)

	authMiddleware := middleware.NewAuthMiddleware(authService)
	return middleware.RequestLogger(log)(authMiddleware.Authenticate(mux))
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg.Storage, log.WithField("component", "store"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	publisher, closePublisher := openPublisher(cfg.MQTT, log.WithField("component", "events"))
	defer closePublisher()

	notifier := notify.NewLogNotifier(log.WithField("component", "notify"))

	if cfg.SeedSampleData {
		seeded, err := seed.EnsureSeeded(ctx, store, notifier, log.WithField("component", "seed"), time.Now(), loc)
		if err != nil {
			return fmt.Errorf("seed sample data: %w", err)
		}
		if seeded {
			log.Info("Seeded sample fleet")
		}
	}

	fleet := repository.NewFleet(repository.Options{
		Store:     store,
		Notifier:  notifier,
		Publisher: publisher,
		Logger:    log.WithField("component", "repository"),
		Location:  loc,
	})
	engine := stats.NewEngine(fleet.Vehicles, fleet.Rentals, fleet.Maintenance, fleet.Expenditures,
		loc, time.Now, log.WithField("component", "stats"))

	sched := scheduler.NewScheduler(cfg.Digest.CronSchedule, loc, engine, notifier, log.WithField("component", "scheduler"))
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	authService, err := auth.NewService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}

	fleetHandler := handlers.NewFleetHandler(fleet, engine, loc, time.Now, log.WithField("component", "handlers"))
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(authService, fleetHandler, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server crashed: %w", err)
	case <-ctx.Done():
	}
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	if err != nil {
		logrus.Fatalf("Failed to init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}
