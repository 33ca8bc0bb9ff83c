package main

import (
	"os"
	"os/signal"
	"syscall"

	"courier-metrics-bot/internal/config"
	"courier-metrics-bot/internal/handler"
	"courier-metrics-bot/internal/loader"
	"courier-metrics-bot/internal/repository"
	"courier-metrics-bot/internal/service"
	"courier-metrics-bot/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logrus.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite limitation
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	// Foreign key enforcement is off by default in SQLite.
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	panelUserRepo, err := repository.NewPanelUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create panel user repository")
	}

	shiftRecordRepo, err := repository.NewGormShiftRecordRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create shift record repository")
	}

	panelUserService := service.NewPanelUserService(panelUserRepo)
	datasetService := service.NewDatasetService(
		shiftRecordRepo,
		loader.NewExtractLoader(),
		loader.NewPromotionsLoader(),
		cfg.ExtractPath,
		cfg.ExtractSheet,
		cfg.PromotionsPath,
	)
	metricsService := service.NewMetricsService()
	utrService := service.NewUtrService(metricsService)
	attendanceService := service.NewAttendanceService(metricsService)
	classifierService := service.NewClassifierService(metricsService)
	reportService := service.NewReportService(metricsService, utrService)

	if err := panelUserService.InitializeAdmin(cfg.BaseAdminChatID); err != nil {
		logrus.Infof("Warning: Failed to initialize admin: %v", err)
	} else if cfg.BaseAdminChatID != 0 {
		logrus.Infof("Admin initialized with chat ID: %d", cfg.BaseAdminChatID)
	}

	if count, err := datasetService.EnsureLoaded(); err != nil {
		logrus.Infof("Warning: Failed to load extract: %v", err)
	} else {
		logrus.Infof("Extract cache ready: %d records", count)
	}

	client, err := telegram.NewClient(cfg.TelegramToken)
	if err != nil {
		logrus.Fatal("Failed to create Telegram client:", err)
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(
		client,
		panelUserService,
		datasetService,
		reportService,
		attendanceService,
		classifierService,
		utrService,
		cfg,
	)

	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go botHandler.HandleUpdates(updates)

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Bot stopped gracefully")
}
