package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"budgetmate/internal/config"
	"budgetmate/internal/pkg"
	"budgetmate/internal/repository/mysql"
	"budgetmate/internal/repository/redis"
	"budgetmate/internal/router"
	"budgetmate/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := pkg.InitTracer(ctx, cfg.OTLPEndpoint, cfg.OTELServiceName)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("tracer shutdown", "error", err)
		}
	}()

	db, err := mysql.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := mysql.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("connected to database", "driver", cfg.DBDriver)

	// Interfaces stay nil unless redis is configured.
	var (
		sessions service.SessionStore
		feed     service.FeedCache
	)
	if cfg.RedisAddr != "" {
		rdb, err := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer rdb.Close()
		sessions = &redis.SessionRepository{RDB: rdb, TTL: cfg.AccessTTL}
		feed = &redis.FeedCache{RDB: rdb, TTL: cfg.FeedCacheTTL}
		logger.Info("connected to redis", "addr", cfg.RedisAddr)
	}

	var google service.GoogleAuth
	if cfg.GoogleClientID != "" {
		google = pkg.NewGoogleVerifier(cfg.GoogleClientID)
	}

	senders := []service.Sender{service.LogSender(logger)}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := pkg.NewEventPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer publisher.Close()
		senders = append(senders, service.KafkaSender(publisher))
		logger.Info("publishing moderation events", "topic", publisher.Topic())
	}
	if cfg.SMTP.Enabled() {
		senders = append(senders, service.MailSender(pkg.NewMailer(cfg.SMTP), db))
	}
	relayer := service.NewOutboxRelayer(db, service.ChainSenders(senders...), logger)
	go relayer.Run(ctx)

	tokens := pkg.NewTokenIssuer(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	services := router.Services{
		Auth:          service.NewAuthService(db, tokens, sessions, google),
		Posts:         service.NewPostService(db, feed, logger),
		Notifications: service.NewNotificationService(db),
		Expenses:      service.NewExpenseService(db),
		Earnings:      service.NewEarningService(db),
		Goals:         service.NewGoalService(db),
		Budget:        service.NewBudgetService(db),
		Articles:      service.NewArticleService(db),
		Jobs:          service.NewJobService(db),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(services, logger, reg)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           otelhttp.NewHandler(engine, "budgetmate-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("server started", "port", cfg.Port)

	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down http server", "error", err)
	}
	return nil
}
