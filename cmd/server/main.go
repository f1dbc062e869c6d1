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

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"notely/docs"
	"notely/internal/auth"
	"notely/internal/cache"
	"notely/internal/config"
	"notely/internal/db"
	"notely/internal/handler"
	"notely/internal/logger"
	"notely/internal/repository"
	"notely/internal/router"
	"notely/internal/service"
	"notely/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Notes API
// @version 1.0
// @description Note-taking API with image and audio attachments stored in S3 and JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync(log) }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN())
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	if cfg.ResetDB {
		log.Warn("RESET_DB set, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, log)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		log.Warnw("redis unavailable, caching and token revocation disabled", "addr", cfg.RedisAddr, "error", err)
	}

	s3Client, err := storage.NewS3Client(ctx, storage.ClientOptions{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Endpoint:        cfg.S3Endpoint,
	})
	if err != nil {
		return fmt.Errorf("s3 init: %w", err)
	}
	store := storage.NewS3Store(s3Client, cfg.S3Bucket, cfg.PublicBaseURL(), log)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	noteRepo := repository.NewNoteRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	noteService := service.NewNoteService(noteRepo, store, log)
	userService := service.NewUserService(userRepo, store, cacheClient)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Register(
		e,
		cfg,
		log,
		jwtService,
		tokenStore,
		handler.NewAuthHandler(authService),
		handler.NewNoteHandler(noteService),
		handler.NewUserHandler(userService),
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := ":" + cfg.ServerPort
		log.Infow("server listening", "addr", addr, "swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server start: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Errorw("server shutdown", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
