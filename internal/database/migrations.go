package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/bug-tracking-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds query-critical indexes beyond what AutoMigrate creates.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model any
		name  string
		sql   string
	}{
		// Per-user bug listing and status filtering.
		{&models.Bug{}, "idx_bugs_assigned_user_id", "CREATE INDEX idx_bugs_assigned_user_id ON bugs (assigned_user_id)"},
		{&models.Bug{}, "idx_bugs_status", "CREATE INDEX idx_bugs_status ON bugs (status)"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		logrus.WithField("index", idx.name).Debug("Created index")
	}

	return nil
}
