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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/job_tracker/internal/config"
	"github.com/Skotchmaster/job_tracker/internal/events"
	"github.com/Skotchmaster/job_tracker/internal/httpserver"
	"github.com/Skotchmaster/job_tracker/internal/models"
	"github.com/Skotchmaster/job_tracker/internal/repo"
	"github.com/Skotchmaster/job_tracker/internal/service"
	"github.com/Skotchmaster/job_tracker/internal/storage"
	pkgdb "github.com/Skotchmaster/job_tracker/pkg/db"
	"github.com/Skotchmaster/job_tracker/pkg/logging"
	loggingmw "github.com/Skotchmaster/job_tracker/pkg/middleware/logging"
)

func newPublisher(brokers []string) events.Publisher {
	if len(brokers) == 0 {
		slog.Info("kafka disabled, events are dropped")
		return events.Nop{}
	}
	prod, err := events.NewProducer(brokers)
	if err != nil {
		log.Fatalf("kafka producer: %v", err)
	}
	return prod
}

func newBlobStore(ctx context.Context, cfg storage.S3Config) storage.BlobStore {
	if !cfg.Enabled() {
		slog.Info("s3 disabled, attachment blobs are discarded")
		return storage.Discard{}
	}
	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		log.Fatalf("s3 store: %v", err)
	}
	return store
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", "job_tracker", "env", cfg.Env)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db init error: %v", err)
	}
	if err := db.WithContext(initCtx).AutoMigrate(models.All()...); err != nil {
		cancel()
		log.Fatalf("db migrate error: %v", err)
	}
	blobs := newBlobStore(initCtx, cfg.S3)
	cancel()

	pub := newPublisher(cfg.KafkaBrokers)
	r := &repo.GormRepo{DB: db}

	authSvc, err := service.NewAuthService(r, service.TokenConfig{
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		Algorithm:     cfg.JWTAlgorithm,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}, pub)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	trackerSvc := &service.TrackerService{Repo: r, Events: pub}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:       &httpserver.AuthHTTP{Svc: authSvc},
		TrackerHandler:    &httpserver.TrackerHTTP{Svc: trackerSvc},
		CommentHandler:    &httpserver.CommentHTTP{Svc: &service.CommentService{Trackers: trackerSvc, Repo: r}},
		AttachmentHandler: &httpserver.AttachmentHTTP{Svc: &service.AttachmentService{Trackers: trackerSvc, Repo: r, Blobs: blobs}},
		Authenticator:     authSvc,
		DB:                db,
		Env:               cfg.Env,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if err := pub.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db close", "error", err)
	}
	logger.Info("server stopped")
}
