package database

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// AddIndexes adds the listing indexes that AutoMigrate does not derive from
// struct tags.
func AddIndexes(db *gorm.DB, logger *slog.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Owner listing, newest first
		{"tasks", "idx_tasks_user_id_created_at", "user_id, created_at"},
		{"tasks", "idx_tasks_due_date", "due_date"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.table, idx.name) {
			logger.Debug("index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Info("created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB, logger *slog.Logger) error {
	if err := Migrate(db); err != nil {
		return err
	}

	if err := AddIndexes(db, logger); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
