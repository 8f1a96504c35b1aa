package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"clubtrack/internal/attendance"
	"clubtrack/internal/config"
	"clubtrack/internal/content"
	"clubtrack/internal/event"
	"clubtrack/internal/session"
	"clubtrack/internal/store"
	"clubtrack/internal/upload"
	"clubtrack/internal/user"
	"clubtrack/internal/web"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg config.App) error {
	var (
		userRepo    user.Repository
		eventRepo   event.Repository
		attRepo     attendance.Repository
		contentRepo content.Repository
		db          *store.DB
	)
	if cfg.StoreBackend == "memory" {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		userRepo = user.NewMemoryRepository()
		eventRepo = event.NewMemoryRepository()
		attRepo = attendance.NewMemoryRepository()
		contentRepo = content.NewMemoryRepository()
	} else {
		var err error
		db, err = store.NewDB(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect db: %w", err)
		}
		if err := store.Migrate(db.Client); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		userRepo = user.NewPostgresRepository(db.Client)
		eventRepo = event.NewPostgresRepository(db.Client)
		attRepo = attendance.NewPostgresRepository(db.Client)
		contentRepo = content.NewPostgresRepository(db.Client)
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	var backend session.Backend
	if cfg.SessionBackend == "memory" {
		backend = session.NewMemoryBackend()
	} else {
		redisClient := store.NewRedis(cfg.RedisAddr)
		if !redisClient.Healthy(context.Background()) {
			log.Warn().Str("addr", cfg.RedisAddr).Msg("redis not reachable at startup")
		}
		backend = session.NewRedisBackend(redisClient.Client)
	}
	sessions := session.NewManager(backend, cfg.SessionSecret, cfg.SessionIssuer, cfg.SessionTTL)

	uploads, err := upload.New(cfg.UploadDir)
	if err != nil {
		return err
	}

	usersSvc := user.NewService(userRepo)
	eventsSvc := event.NewService(eventRepo)
	attSvc := attendance.NewService(attRepo, userRepo, eventRepo)
	contentSvc := content.NewService(contentRepo, uploads)

	if err := usersSvc.SeedTeacher(context.Background(), cfg.SeedTeacherName, cfg.SeedTeacherPass); err != nil {
		return fmt.Errorf("seed teacher: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	web.New(sessions, usersSvc, eventsSvc, attSvc, contentSvc, uploads).Register(r)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced shutdown")
	}

	log.Info().Msg("server exited")
	return nil
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
