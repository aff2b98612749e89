package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/michaelito80us/lufy/config"
	"github.com/michaelito80us/lufy/domain"
	"github.com/michaelito80us/lufy/logger"
)

// Connect opens the database connection and runs migrations. The returned
// handle is shared by all repositories and closed on shutdown.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)

	if cfg.Database == "postgres" || cfg.Database == "postgresql" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBName, cfg.DBPassword)
		conn, err = gorm.Open("postgres", dsn)
	} else {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", mkErr)
			}
		}
		conn, err = gorm.Open("sqlite3", cfg.SQLitePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.LogMode(cfg.Environment != "production")

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, err
	}

	logger.Info(logger.EventDBConnection, "Connected to database", logger.Fields(
		"driver", cfg.Database,
	))
	return conn, nil
}

func migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&domain.User{},
		&domain.Artist{},
		&domain.Track{},
		&domain.Subscription{},
	).Error; err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}

	// At most one ACTIVE subscription per (user, artist). The partial index
	// makes concurrent subscribe attempts race on the insert instead of on a
	// check-then-insert read.
	if err := conn.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_subscriptions_active_pair
		 ON subscriptions (user_id, artist_id) WHERE status = 'ACTIVE'`,
	).Error; err != nil {
		return fmt.Errorf("failed to create active-subscription index: %w", err)
	}

	// Foreign keys only apply on postgres; sqlite silently rejects ALTERs.
	if conn.Dialect().GetName() == "postgres" {
		conn.Model(&domain.Artist{}).AddForeignKey("user_id", "users(id)", "CASCADE", "CASCADE")
		conn.Model(&domain.Track{}).AddForeignKey("artist_id", "artists(id)", "CASCADE", "CASCADE")
		conn.Model(&domain.Subscription{}).AddForeignKey("user_id", "users(id)", "CASCADE", "CASCADE")
		conn.Model(&domain.Subscription{}).AddForeignKey("artist_id", "artists(id)", "CASCADE", "CASCADE")
	}

	return nil
}
