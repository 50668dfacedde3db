package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/rangepick/internal/calendar"
	"github.com/terraincognita07/rangepick/internal/db"
	"github.com/terraincognita07/rangepick/internal/services"
)

// RunPurgeSessionsCommand deletes sessions idle for longer than maxIdle.
func RunPurgeSessionsCommand(out io.Writer, dbPath string, maxIdle time.Duration) error {
	if maxIdle <= 0 {
		return fmt.Errorf("older-than must be positive, got %s", maxIdle)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	repos := db.NewRepositories(database)
	service := services.NewSelectionService(repos.Sessions, repos.Ranges, calendar.DefaultConfig())
	deleted, err := service.PurgeIdleSessions(maxIdle, time.Now())
	if err != nil {
		return fmt.Errorf("purge sessions: %w", err)
	}

	fmt.Fprintf(out, "Purged %d idle session(s) older than %s\n", deleted, maxIdle)
	return nil
}
