package testutil

import (
	"testing"

	"life-progression-system/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB opens an in-memory SQLite database with all tables migrated.
// Production runs on Postgres; the schema is portable enough for both.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.FactionStat{},
		&models.Skill{},
		&models.SkillStat{},
		&models.Quest{},
		&models.QuestActionEntry{},
		&models.ExperienceRecord{},
		&models.ActivityLogEntry{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}
