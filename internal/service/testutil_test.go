package service

import (
	"testing"

	"blog/internal/config"
	"blog/internal/db"
	"blog/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database with the full
// schema migrated and foreign keys enforced. A single connection keeps
// the memory database alive.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func testConfig() config.Config {
	return config.Config{
		JWTSecret:             "access-secret",
		RefreshSecret:         "refresh-secret",
		AccessTokenTTLMinutes: 15,
		RefreshTokenTTLDays:   7,
	}
}

func seedUser(t *testing.T, gdb *gorm.DB, firstName, lastName, email string) *models.User {
	t.Helper()
	user := models.User{FirstName: firstName, LastName: lastName, Email: email, Password: "x"}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &user
}

func seedCategory(t *testing.T, gdb *gorm.DB, name string) *models.Category {
	t.Helper()
	cat := models.Category{Name: name}
	if err := gdb.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return &cat
}
