package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corpspend/expense-api/internal/api"
	"github.com/corpspend/expense-api/internal/core/ports"
	"github.com/corpspend/expense-api/internal/core/service"
	"github.com/corpspend/expense-api/internal/infrastructure/config"
	mongodb "github.com/corpspend/expense-api/internal/infrastructure/db/mongo"
	redisdb "github.com/corpspend/expense-api/internal/infrastructure/db/redis"
	"github.com/corpspend/expense-api/internal/infrastructure/mail"
	"github.com/corpspend/expense-api/internal/infrastructure/queue"
	"github.com/corpspend/expense-api/pkg/logger"

	_ "github.com/corpspend/expense-api/docs"
)

// @title        CorpSpend Expense API
// @version      1.0
// @description  Corporate expense tracking: requests, approvals, reports.
// @BasePath     /api
//
// @securityDefinitions.apikey TokenAuth
// @in   header
// @name x-auth-token
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	expenseRepo := mongodb.NewExpenseRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := expenseRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure expense indexes")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Mail channel ---
	smtpCfg := mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}
	var mailer ports.Mailer
	var outbox *mail.Outbox
	if smtpCfg.Configured() {
		mailer, err = mail.NewSMTP(smtpCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to build smtp client")
		}
		log.Info().Str("host", cfg.SMTP.Host).Msg("mail channel: smtp")
	} else {
		outbox = mail.NewOutbox()
		mailer = outbox
		log.Info().Msg("mail channel: preview outbox (no SMTP credentials)")
	}

	// --- Notification dispatcher ---
	dedup := redisdb.NewNotificationDedup(rdb)
	dispatcher := queue.NewDispatcher(cfg.NotifyWorkers, mailer, dedup, cfg.NotifyEmail, log)
	dispatcher.Start(ctx)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour, log)
	expenseService := service.NewExpenseService(expenseRepo, userRepo, dispatcher, log)
	reportService := service.NewReportService(expenseService, mailer, log)

	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		ExpenseService: expenseService,
		ReportService:  reportService,
		Mongo:          db,
		Redis:          rdb,
		JWTSecret:      cfg.JWTSecret,
		Outbox:         outbox,
		Log:            log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
