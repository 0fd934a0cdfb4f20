package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/justsurfingit/chamba-match/internal/ai"
	"github.com/justsurfingit/chamba-match/internal/config"
	"github.com/justsurfingit/chamba-match/internal/database"
	"github.com/justsurfingit/chamba-match/internal/events"
	"github.com/justsurfingit/chamba-match/internal/handlers"
	"github.com/justsurfingit/chamba-match/internal/scheduler"
	"github.com/justsurfingit/chamba-match/internal/services"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file, using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database Connection
	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}

	// 3. Optional Redis fan-out for admin logs
	var publisher *events.Publisher
	if cfg.RedisURL != "" {
		rdb, err := events.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		publisher = events.NewPublisher(rdb)
		defer publisher.Close()
		logger.Info("redis connected", slog.String("channel", events.SystemLogChannel))
	}

	// 4. AI clients
	gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey,
		ai.WithModel(cfg.GeminiModel),
		ai.WithTimeout(cfg.AITimeout),
		ai.WithLogger(logger))
	if err != nil {
		return err
	}
	llmService, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
	if err != nil {
		return err
	}

	// 5. Core Services
	sessions := services.NewSessionService(services.NewDiscoveryService(gemini, logger), logger)
	matcherService := services.NewMatcherService(llmService, logger)
	agentService := services.NewAgentService(gemini, logger)
	jobService := services.NewJobService(db)
	adminService := services.NewAdminService(db, publisher, logger)
	authService := services.NewAuthService(db)
	notificationService := services.NewNotificationService(db)

	// 6. Background work
	sim := scheduler.NewSimulator(ctx, adminService, cfg.SimulationDuration, logger)
	cron := scheduler.New(logger)
	if cfg.SimulationSchedule != "" {
		err := cron.Add(ctx, "scrape", cfg.SimulationSchedule, func(ctx context.Context) error {
			return sim.Run(ctx, scheduler.ProcessScrape)
		})
		if err != nil {
			return err
		}
	}
	err = cron.Add(ctx, "session-prune", "@every 1h", func(context.Context) error {
		if n := sessions.Prune(cfg.SessionIdleTimeout); n > 0 {
			logger.Info("pruned idle sessions", slog.Int("count", n))
		}
		return nil
	})
	if err != nil {
		return err
	}
	cron.Start()

	// 7. Handlers & Router
	authHandler := handlers.NewAuthHandler(authService, sessions, logger)
	authHandler.Prefetch = true
	router := handlers.NewRouter(&handlers.Handlers{
		Auth:          authHandler,
		Preferences:   handlers.NewPreferencesHandler(sessions),
		Jobs:          handlers.NewJobHandler(sessions, matcherService, agentService),
		SavedJobs:     handlers.NewSavedJobHandler(jobService, sessions),
		Notifications: handlers.NewNotificationHandler(notificationService, sessions),
		Admin:         handlers.NewAdminHandler(adminService, sim),
	}, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", slog.Any("error", err))
	}
	<-cron.Stop().Done()
	sim.Wait()
	return nil
}
