// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/ahmetcoskunkizilkaya/duotrack/internal/database"
	"github.com/ahmetcoskunkizilkaya/duotrack/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database that lives for the duration of t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "duotrack-test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	// One connection serializes writers; SQLite would otherwise report
	// "database is locked" when concurrent transactions upgrade locks.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CreateUser inserts a user with the given name and email.
func CreateUser(t *testing.T, db *gorm.DB, name string, email string) models.User {
	t.Helper()

	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: "unused-hash",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

// ReloadUser reads the current row for id.
func ReloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) models.User {
	t.Helper()

	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		t.Fatalf("reload user %s: %v", id, err)
	}
	return user
}
