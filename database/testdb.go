package database

import (
	"coursex/models"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectTestDb wires the global database instance to an in-memory
// SQLite database. Used by handler tests.
func ConnectTestDb() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("Failed to open test database: %v", err)
	}

	// A single connection keeps the in-memory database alive
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get test database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	runMigrations(db)

	Database = DbInstance{Db: db}
}

// ResetTestDb clears every table between test cases.
func ResetTestDb() {
	tables := []interface{}{
		&models.Certificate{},
		&models.WishlistItem{},
		&models.Review{},
		&models.Payment{},
		&models.LessonProgress{},
		&models.Enrollment{},
		&models.Resource{},
		&models.Lesson{},
		&models.Course{},
		&models.User{},
	}
	for _, table := range tables {
		Database.Db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table)
	}
}
