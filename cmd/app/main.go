package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signupservice/internal/app/config"
	httpapi "signupservice/internal/app/http"
	"signupservice/internal/app/http/handler"
	"signupservice/internal/domain"
	"signupservice/internal/domain/activity"
	"signupservice/internal/infrastructure/async"
	"signupservice/internal/infrastructure/db/memory"
	"signupservice/internal/infrastructure/db/pg"
	"signupservice/internal/infrastructure/logging"
	"signupservice/internal/infrastructure/messaging/kafkasink"
	"signupservice/internal/infrastructure/metrics"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	seed := activity.DefaultSeed()
	if cfg.SeedFile != "" {
		seed, err = activity.LoadSeed(cfg.SeedFile)
		if err != nil {
			log.Fatal("seed load error", zap.String("file", cfg.SeedFile), zap.Error(err))
		}
	}

	var (
		uow  domain.UnitOfWork
		repo activity.Repository
	)
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := pg.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("db error", zap.Error(err))
		}
		defer db.Close()

		if err := pg.Migrate(ctx, db, cfg.MigrationsDir); err != nil {
			log.Fatal("migration error", zap.Error(err))
		}
		uow = pg.NewTxManager(db)
		repo = pg.NewActivityRepository(db)
	default:
		uow = memory.NewTxManager()
		repo = memory.NewActivityRepository()
	}

	if err := uow.WithinTx(ctx, func(ctx context.Context) error {
		return repo.Seed(ctx, seed)
	}); err != nil {
		log.Fatal("seed error", zap.Error(err))
	}
	directory, err := repo.List(ctx)
	if err != nil {
		log.Fatal("directory load error", zap.Error(err))
	}
	metrics.ObserveDirectory(directory)
	log.Info("directory seeded",
		zap.String("storage", cfg.StorageBackend),
		zap.Int("activities", len(directory)),
	)

	sinks := []async.Sink{metrics.EventSink{}}
	if len(cfg.KafkaBrokers) > 0 {
		ks := kafkasink.New(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer func() {
			if err := ks.Close(); err != nil {
				log.Warn("kafka close error", zap.Error(err))
			}
		}()
		sinks = append(sinks, ks)
		log.Info("kafka sink enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaTopic),
		)
	}

	eventBus := async.NewAsyncEventBus(ctx, cfg.EventWorkers, log, sinks...)
	defer eventBus.Close()

	activitySvc := activity.NewService(uow, repo, eventBus)

	gin.SetMode(gin.ReleaseMode)
	h := handler.New(activitySvc, log)
	router := httpapi.NewRouter(h, log, cfg.StaticDir)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
