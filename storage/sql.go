package storage

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Slot is one storage row: a named blob. The whole collection behind a
// key is rewritten on every mutation, so there is one row per slot key.
type Slot struct {
	Key   string         `gorm:"primaryKey;size:255"`
	Value datatypes.JSON `gorm:"type:json"`
}

func (Slot) TableName() string {
	return "slots"
}

// SQLStore keeps slots in a relational database through gorm.
type SQLStore struct {
	db *gorm.DB
}

// OpenSQL connects to the database selected by backend and runs the
// schema migration for the slot table.
func OpenSQL(backend, dsn string) (*SQLStore, error) {
	var dialector gorm.Dialector

	switch backend {
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	case "sqlite":
		// For SQLite the DSN is the file path
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate database: %w", err)
	}

	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(key string) ([]byte, bool, error) {
	var slot Slot
	if err := s.db.Where("key = ?", key).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(slot.Value), true, nil
}

func (s *SQLStore) Set(key string, value []byte) error {
	slot := Slot{Key: key, Value: datatypes.JSON(value)}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&slot).Error
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
