package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"bchpay/pkg/api"
	"bchpay/pkg/config"
	"bchpay/pkg/invoice"
	"bchpay/pkg/invoice/memory"
	pg "bchpay/pkg/invoice/postgres"
	"bchpay/pkg/logger"
	redisnotify "bchpay/pkg/notify/redis"
	"bchpay/pkg/otel"
)

// @title bchpay API
// @version 1.0
// @description API for issuing Bitcoin Cash invoices and confirming payments
// @host localhost:8081
// @BasePath /
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log := logger.New(os.Stderr, logger.LevelInfo, "bchpay", nil)
		log.Error(ctx, "load config", "error", err)
		return err
	}
	log := logger.New(os.Stdout, cfg.LogLevel, "bchpay", otel.GetTraceID)
	defer log.Sync()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{ServiceName: "bchpay", Host: cfg.OTELHost, Probability: cfg.OTELSampleRatio})
	if err != nil {
		log.Error(ctx, "init tracing", "error", err)
		return err
	}
	defer shutdown(context.Background())

	repo, closeRepo, err := openRepository(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "open repository", "backend", cfg.StoreBackend, "error", err)
		return err
	}
	defer closeRepo()

	var notifier invoice.Notifier
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn(ctx, "redis unreachable, paid notifications will fail", "addr", cfg.RedisAddr, "error", err)
		}
		notifier = redisnotify.New(rdb, cfg.RedisChannel)
		log.Info(ctx, "paid notifications enabled", "addr", cfg.RedisAddr, "channel", cfg.RedisChannel)
	}

	svc := invoice.NewService(invoice.ServiceConfig{
		Repo:           repo,
		IDs:            cfg.IDGenerator(),
		Notifier:       notifier,
		Log:            log,
		PaymentAddress: cfg.PaymentAddress,
		Amount:         cfg.InvoiceAmount,
	})
	router := api.NewRouter(api.NewHandler(svc, log), tp.Tracer("bchpay"))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", cfg.HTTPAddr, "backend", cfg.StoreBackend, "id_mode", cfg.IDMode)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server closed", "error", err)
			return err
		}
	case sig := <-stop:
		log.Info(ctx, "shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(ctx, "shutdown", "error", err)
			return err
		}
	}
	return nil
}

func openRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (invoice.Repository, func(), error) {
	if cfg.StoreBackend != config.BackendPostgres {
		return memory.New(), func() {}, nil
	}
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	repo := pg.New(db)
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info(ctx, "postgres repository ready")
	return repo, func() { db.Close() }, nil
}
