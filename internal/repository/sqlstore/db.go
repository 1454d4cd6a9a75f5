// Package sqlstore implements the repository contracts on gorm. By default it opens a
// private in-memory SQLite database, so nothing outlives the process.
package sqlstore

import (
	"fmt"

	"praia-backend/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryDSN returns a DSN for a fresh, process-private in-memory database.
func MemoryDSN() string {
	return fmt.Sprintf("file:praia-%s?mode=memory&cache=shared", uuid.NewString())
}

// Open connects to dsn and migrates the schema. An empty dsn opens MemoryDSN().
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = MemoryDSN()
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer; a single connection also keeps the in-memory database alive.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&promptRow{}, &folderRow{}, &favoriteRow{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// NewStore wires a complete repository.Store on db.
func NewStore(db *gorm.DB) *repository.Store {
	return &repository.Store{
		Prompts:           NewPromptRepository(db),
		Folders:           NewFolderRepository(db),
		ToolFavorites:     NewToolFavorites(db),
		TrainingFavorites: NewTrainingFavorites(db),
	}
}
