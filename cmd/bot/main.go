package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/notification"
	"homework_status_bot/internal/infra/config"
	idb "homework_status_bot/internal/infra/database"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const startupTimeout = 15 * time.Second

func main() {
	fmt.Println("Homework Status Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		// Nothing is logged to file yet; stderr is the only sink.
		log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	baseLogger, logFile := logger.New(cfg)
	defer logFile.Close()
	mainLogger := logger.Component(baseLogger, "main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":      cfg.LogLevel,
		"environment":    cfg.Environment,
		"retry_period":   cfg.RetryPeriod,
		"advance_cursor": cfg.AdvanceCursor,
	}).Info("Configuration loaded.")

	if err := run(cfg, baseLogger); err != nil {
		mainLogger.WithError(err).Error("Application stopped with error")
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, baseLogger *logrus.Logger) error {
	mainLogger := logger.Component(baseLogger, "main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize optional notification journal
	var journal notification.Repository
	if cfg.JournalEnabled() {
		db, err := openJournal(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		journal = idb.NewPostgresNotificationRepository(db)
		mainLogger.Info("Notification journal enabled.")
	} else {
		mainLogger.Info("DATABASE_URL is not set, notification journal disabled.")
	}

	// Initialize Telegram Bot (send-only, no poller)
	telegramLogger := logger.Component(baseLogger, "telegram")
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.TelegramToken,
		Client: &http.Client{Timeout: cfg.HTTPTimeout},
		OnError: func(err error, c telebot.Context) { // Global error handler
			telegramLogger.WithError(err).Error("telebot error")
		},
	})
	if err != nil {
		return fmt.Errorf("could not create Telegram bot: %w", err)
	}
	mainLogger.WithField("bot_username", bot.Me.Username).Info("Telegram bot initialized.")

	telegramClient := telegram.NewTelebotAdapter(bot, cfg.TelegramChatID, telegramLogger)
	apiClient := practicum.NewClient(cfg.Endpoint, cfg.PracticumToken, cfg.HTTPTimeout, logger.Component(baseLogger, "practicum"))
	watcher := app.NewStatusWatcher(apiClient, telegramClient, journal, logger.Component(baseLogger, "watcher"), cfg.AdvanceCursor)

	pollScheduler := scheduler.NewPollScheduler(watcher, logger.Component(baseLogger, "scheduler"), cfg.RetryPeriod)
	pollScheduler.Start(ctx)
	defer pollScheduler.Stop()

	mainLogger.Info("Application setup complete. Polling for homework status changes.")

	select {
	case <-ctx.Done():
		mainLogger.Info("Shutting down application...")
		return nil
	case err := <-pollScheduler.Fatal():
		return err
	}
}

func openJournal(ctx context.Context, dsn string) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	db, err := idb.NewPostgresConnection(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not connect to journal database: %w", err)
	}
	if err := idb.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
