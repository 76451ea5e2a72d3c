package repository

import (
	"log"
	"os"
	"testing"

	"resonate/internal/config"
	"resonate/internal/database"
	"resonate/internal/middleware"

	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	// Set environment to test
	os.Setenv("APP_ENV", "test")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Repository tests skipped: failed to load test config: %v", err)
		os.Exit(0)
	}
	middleware.InitMiddleware(cfg)

	testDB, err = database.Connect(cfg)
	if err != nil {
		log.Printf("Repository tests skipped: test database unavailable: %v", err)
		os.Exit(0)
	}

	// Run tests
	code := m.Run()

	// Cleanup if needed (truncate tables)
	truncateTables(testDB)

	os.Exit(code)
}

func truncateTables(db *gorm.DB) {
	if db.Dialector.Name() != "postgres" {
		return
	}
	db.Exec("TRUNCATE TABLE playlist_items, playlists, curated_playlist_items, curated_playlists, history_entries, follows, audios, users CASCADE")
}
