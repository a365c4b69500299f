package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"hyperlocal/cmd"
	"hyperlocal/internal/adapters/out/postgres/commissionrepo"
	"hyperlocal/internal/adapters/out/postgres/courierrepo"
	"hyperlocal/internal/adapters/out/postgres/notificationrepo"
	"hyperlocal/internal/adapters/out/postgres/orderrepo"
	"hyperlocal/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err = migrate(gormDB); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager, err := jobs.NewJobManager(
		app.CreateAutoAssignCommandHandler(),
		configs.AutoAssignSchedule,
		logger,
	)
	if err != nil {
		logger.Error("Failed to create jobs", "error", err)
		os.Exit(1)
	}
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs, logger)
}

func getConfigs() cmd.Config {
	rate, err := strconv.ParseFloat(goDotEnvVariable("COMMISSION_RATE"), 64)
	if err != nil {
		log.Fatalf("Invalid COMMISSION_RATE: %v", err)
	}

	return cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		CommissionRate:     rate,
		AutoAssignSchedule: goDotEnvVariable("AUTO_ASSIGN_SCHEDULE"),
		ShutdownTimeout:    10 * time.Second,
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
}

func migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&commissionrepo.EntryDTO{},
		&notificationrepo.NotificationDTO{},
	)
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.Use(middleware.Recover())

	server, err := app.CreateServer()
	if err != nil {
		logger.Error("Failed to create HTTP server", "error", err)
		os.Exit(1)
	}
	server.RegisterRoutes(e)

	go func() {
		address := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		if startErr := e.Start(address); startErr != nil && startErr != http.ErrServerClosed {
			logger.Error("HTTP server stopped", "error", startErr)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()

	if err = e.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
