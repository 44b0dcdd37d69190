package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/salonio/imagestore/internal/asset"
	"github.com/salonio/imagestore/internal/config"
	"github.com/salonio/imagestore/internal/logger"
	appMiddleware "github.com/salonio/imagestore/internal/middleware"
	"github.com/salonio/imagestore/internal/storage"
	"github.com/salonio/imagestore/internal/upload"
)

func main() {
	log := logger.New("api")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration failed")
	}

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}

	rules := upload.Rules{
		AllowedTypes: cfg.AllowedTypes,
		MaxFileSize:  cfg.MaxFileSize,
		MaxFiles:     cfg.MaxFiles,
	}

	// Wire dependencies: storage → service → handlers
	uploadSvc := upload.NewService(store, rules, &upload.Namer{}, log)
	uploadHandler := upload.NewHandler(uploadSvc, cfg.MaxBodyBytes, log)
	assetHandler := asset.NewHandler(store, log)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Upload intake; the bearer gate is optional and never guards retrieval.
	r.Group(func(r chi.Router) {
		if cfg.AuthRequired {
			r.Use(appMiddleware.RequireAuth(cfg.JWTSecret))
		}
		r.Post("/uploads", uploadHandler.Upload)
	})

	// Public asset retrieval
	r.Get("/uploads/{name}", assetHandler.Get)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-quit
	log.Info().Msg("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}

// newStorage builds the configured storage backend.
func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "s3" {
		return storage.NewMinio(
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.PublicBasePath,
			cfg.StorageUseSSL,
		)
	}
	return storage.NewDisk(cfg.UploadDir, cfg.PublicBasePath)
}
