package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/rangepick/internal/api"
	"github.com/terraincognita07/rangepick/internal/db"
	"github.com/terraincognita07/rangepick/internal/i18n"
	"github.com/terraincognita07/rangepick/internal/services"
)

func NewServeCommand() *cobra.Command {
	var (
		dbPath string
		port   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServer(dbPath, port)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", getEnv("DB_PATH", filepath.Join("data", "rangepick.db")), "SQLite database path")
	cmd.Flags().StringVar(&port, "port", getEnv("PORT", "8080"), "HTTP listen port")
	return cmd
}

func runServer(dbPath string, port string) error {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey, err := resolveSecretKey()
	if err != nil {
		return err
	}
	calendarConfig, err := resolveCalendarConfig()
	if err != nil {
		return fmt.Errorf("calendar config: %w", err)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	i18nManager, err := i18n.NewEmbeddedManager(getEnv("DEFAULT_LANGUAGE", i18n.LangEN))
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}

	repos := db.NewRepositories(database)
	selectionService := services.NewSelectionService(repos.Sessions, repos.Ranges, calendarConfig)
	handler, err := api.NewHandler(selectionService, i18nManager, api.Options{
		SecretKey:    secretKey,
		Location:     location,
		CookieSecure: resolveCookieSecure(),
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "rangepick",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("rangepick listening on http://0.0.0.0:%s (db: %s, tz: %s, calendar: %s..%s, lang: %s)",
		port, dbPath, location.String(), calendarConfig.RangeStart, calendarConfig.RangeEnd, i18nManager.DefaultLanguage())
	if err := app.Listen(":" + port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
