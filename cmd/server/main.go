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
	"github.com/yukikurage/task-list-api/internal/config"
	"github.com/yukikurage/task-list-api/internal/credential"
	"github.com/yukikurage/task-list-api/internal/database"
	"github.com/yukikurage/task-list-api/internal/handlers"
	"github.com/yukikurage/task-list-api/internal/logging"
	"github.com/yukikurage/task-list-api/internal/repository"
	"github.com/yukikurage/task-list-api/internal/services"
	"github.com/yukikurage/task-list-api/internal/token"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration; a missing secret or DSN stops the process here
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	gin.SetMode(cfg.GinMode)

	tokens, err := token.NewProvider(cfg.JWTSecret, token.WithTTL(cfg.TokenTTL))
	if err != nil {
		return err
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		return err
	}

	// Initialize AI service
	var drafter services.TaskDrafter
	if cfg.OpenAIAPIKey != "" {
		drafter = services.NewAIService(cfg.OpenAIAPIKey)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, credential.NewHasher(cfg.BcryptCost))
	taskService := services.NewTaskService(taskRepo, drafter)

	router := handlers.NewRouter(handlers.RouterDeps{
		AuthHandler:      handlers.NewAuthHandler(authService, tokens, logger),
		TaskHandler:      handlers.NewTaskHandler(taskService, logger),
		Tokens:           tokens,
		Logger:           logger,
		OperationTimeout: cfg.DBOperationTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
