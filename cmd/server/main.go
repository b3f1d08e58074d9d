package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hometuition/hometuition/internal/api"
	v1 "github.com/hometuition/hometuition/internal/api/v1"
	"github.com/hometuition/hometuition/internal/cache"
	"github.com/hometuition/hometuition/internal/config"
	"github.com/hometuition/hometuition/internal/logger"
	"github.com/hometuition/hometuition/internal/mongodb"
	mongorepo "github.com/hometuition/hometuition/internal/repository/mongo"
	"github.com/hometuition/hometuition/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		panic(err)
	}

	if err := run(cfg, log); err != nil {
		log.Fatalw("server exited with error", "error", err)
	}
}

func run(cfg *config.Configuration, log *logger.Logger) error {
	ctx := context.Background()

	client, err := mongodb.NewClient(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Errorw("failed to disconnect from mongodb", "error", err)
		}
	}()

	var summaryCache cache.Cache
	if cfg.Cache.Enabled {
		summaryCache = cache.GetInMemoryCache()
	}

	params := service.ServiceParams{
		Logger:       log,
		Config:       cfg,
		Cache:        summaryCache,
		StudentRepo:  mongorepo.NewStudentRepository(client, log),
		PaymentRepo:  mongorepo.NewPaymentRepository(client, log),
		SequenceRepo: mongorepo.NewSequenceRepository(client, log),
	}

	handlers := api.Handlers{
		Student: v1.NewStudentHandler(service.NewStudentService(params), log),
		Payment: v1.NewPaymentHandler(service.NewPaymentService(params), log),
		Summary: v1.NewSummaryHandler(service.NewSummaryService(params), log),
		Health:  v1.NewHealthHandler(),
	}

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: api.NewRouter(handlers, cfg, log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("starting server", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
