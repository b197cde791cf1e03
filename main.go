package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mybookshelf/backend/internal/config"
	"github.com/mybookshelf/backend/internal/db"
	"github.com/mybookshelf/backend/internal/handler"
	"github.com/mybookshelf/backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx := context.Background()
	store, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("init postgres: %v", err)
	}
	defer store.Close()

	if err := store.EnsureAuthSchema(ctx); err != nil {
		log.Fatalf("ensure auth schema: %v", err)
	}
	if err := store.EnsureLibrarySchema(ctx); err != nil {
		log.Fatalf("ensure library schema: %v", err)
	}

	tokens, err := service.NewTokenManager(cfg.JWT)
	if err != nil {
		log.Fatalf("init token manager: %v", err)
	}

	authSvc := service.NewAuthService(store, tokens, logger)
	bookSvc := service.NewBookService(store)
	citatSvc := service.NewCitatService(store)

	router := handler.NewRouter(cfg, logger, tokens, authSvc, bookSvc, citatSvc)

	srv := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddress())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", "error", err)
	}
}
