package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mattn/go-sqlite3"

	"yeargrid/config"
	_ "yeargrid/docs" // Swagger docs
	"yeargrid/internal/account"
	"yeargrid/internal/account/cache"
	accountSqlite "yeargrid/internal/account/repository/sqlite"
	calendarUC "yeargrid/internal/calendar/usecase"
	"yeargrid/internal/httpserver"
	"yeargrid/internal/model"
	"yeargrid/internal/provider"
	googleAdapter "yeargrid/internal/provider/google"
	microsoftAdapter "yeargrid/internal/provider/microsoft"
	"yeargrid/internal/session"
	"yeargrid/internal/token"
	"yeargrid/pkg/log"
)

const sessionCacheSize = 1024

// @title       YearGrid API
// @description Multi-account all-day calendar aggregation across Google Calendar and Microsoft Outlook.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting YearGrid...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Durable store
	db, err := sql.Open("sqlite3", cfg.Database.Path)
	if err != nil {
		logger.Error(ctx, "Failed to open database: ", err)
		return
	}
	defer db.Close()

	if err := accountSqlite.Migrate(ctx, db); err != nil {
		logger.Error(ctx, "Failed to migrate database: ", err)
		return
	}

	// 4. Credential store: durable repository + session cache
	repo := accountSqlite.New(db, logger)
	sessionCache := cache.New(sessionCacheSize, cfg.Session.TTL)
	store := account.NewStore(repo, sessionCache, logger)

	// 5. Token refresher and provider adapters
	refresher := token.NewRefresher(cfg.Google, cfg.Microsoft, logger)
	adapters := map[model.Provider]provider.Adapter{
		model.ProviderGoogle:    googleAdapter.New(logger),
		model.ProviderMicrosoft: microsoftAdapter.New(logger),
	}

	// 6. Aggregator
	uc := calendarUC.New(logger, store, refresher, adapters, calendarUC.Config{
		FetchDelay:       cfg.Aggregator.FetchDelay,
		RateLimitBackoff: cfg.Aggregator.RateLimitBackoff,
	})

	// 7. Sessions
	sessions := session.New(logger, cfg.Session.TTL)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		AccountStore:    store,
		CalendarUseCase: uc,
		Sessions:        sessions,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
