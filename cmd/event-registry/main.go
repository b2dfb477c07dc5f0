package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventRegistry/internal/auth"
	"eventRegistry/internal/config"
	"eventRegistry/internal/http-server/handlers/admin/getSummary"
	"eventRegistry/internal/http-server/handlers/application/createApplication"
	"eventRegistry/internal/http-server/handlers/application/getAllApplications"
	"eventRegistry/internal/http-server/handlers/application/updateStatus"
	"eventRegistry/internal/http-server/handlers/auth/login"
	"eventRegistry/internal/http-server/handlers/event/createEvent"
	"eventRegistry/internal/http-server/handlers/event/deleteEvent"
	"eventRegistry/internal/http-server/handlers/event/getAllEvents"
	"eventRegistry/internal/http-server/handlers/event/getEventDetails"
	"eventRegistry/internal/http-server/handlers/event/getEventInfo"
	"eventRegistry/internal/http-server/handlers/event/updateEvent"
	"eventRegistry/internal/http-server/handlers/view/transition"
	"eventRegistry/internal/http-server/middleware/adminauth"
	"eventRegistry/internal/http-server/middleware/mwlogger"
	"eventRegistry/internal/http-server/middleware/ratelimit"
	"eventRegistry/internal/lib/logger/handlers/slogpretty"
	"eventRegistry/internal/lib/logger/sl"
	"eventRegistry/internal/lib/session"
	"eventRegistry/internal/storage/postgres"
	"eventRegistry/internal/storage/supabase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// backend is everything the handlers need from a storage driver.
type backend interface {
	createEvent.EventCreator
	updateEvent.EventUpdater
	deleteEvent.EventDeleter
	getAllEvents.EventsGetter
	getEventDetails.EventDetailsGetter
	createApplication.ApplicationCreator
	getAllApplications.ApplicationsGetter
	updateStatus.StatusUpdater
	login.RoleGetter
}

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting event registry", slog.String("env", cfg.Env), slog.String("driver", cfg.Backend.Driver))
	log.Debug("debug messages are enabled")

	httpClient := &http.Client{Timeout: cfg.Backend.Timeout}

	storage, closeStorage, err := setupStorage(cfg, httpClient)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	authClient := auth.NewClient(cfg.Backend.URL, cfg.Backend.APIKey, httpClient)
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL)

	var (
		limiter     ratelimit.Limiter
		redisClient *redis.Client
	)
	if cfg.Redis.Address != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err = redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis is unreachable, login limiting fails open", sl.Err(err))
		}
		cancel()

		limiter = ratelimit.NewRedisLimiter(redisClient)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	if cfg.HTTPServer.TrustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	fs := http.FileServer(http.Dir(cfg.StaticDir))
	router.Handle("/static/*", http.StripPrefix("/static/", fs))

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusFound)
	})

	router.Get("/events", getAllEvents.New(log, storage, time.Now))
	router.Get("/events/{id}", getEventInfo.New(log, storage, time.Now))
	router.Post("/applications", createApplication.New(log, storage, time.Now))

	router.With(ratelimit.New(log, limiter, "login", cfg.Redis.LoginLimit, cfg.Redis.LoginWindow)).
		Post("/auth/login", login.New(log, authClient, storage, sessions))

	router.With(adminauth.Optional(sessions)).Post("/view", transition.New(log))

	router.Route("/admin", func(r chi.Router) {
		r.Use(adminauth.New(log, sessions))

		r.Get("/events", getAllEvents.New(log, storage, time.Now))
		r.Post("/events", createEvent.New(log, storage))
		r.Get("/events/{id}", getEventDetails.New(log, storage, time.Now))
		r.Put("/events/{id}", updateEvent.New(log, storage))
		r.Delete("/events/{id}", deleteEvent.New(log, storage))

		r.Get("/applications", getAllApplications.New(log, storage))
		r.Patch("/applications/{id}/status", updateStatus.New(log, storage))

		r.Get("/summary", getSummary.New(log, storage, time.Now))
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = closeStorage(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	if redisClient != nil {
		if err = redisClient.Close(); err != nil {
			log.Error("failed to close redis connection", sl.Err(err))
		}
	}

	log.Info("connections closed")
}

func setupStorage(cfg *config.Config, httpClient *http.Client) (backend, func() error, error) {
	switch cfg.Backend.Driver {
	case config.DriverREST:
		return supabase.New(cfg.Backend.URL, cfg.Backend.APIKey, httpClient), func() error { return nil }, nil
	case config.DriverPostgres:
		s, err := postgres.InitDB(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown backend driver %q", cfg.Backend.Driver)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
