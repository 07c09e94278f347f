package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// slotRecord is one row of the key-value table.
type slotRecord struct {
	Name      string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName implements gorm's tabler interface.
func (slotRecord) TableName() string {
	return "slots"
}

// SQLiteSlot stores blobs in a sqlite key-value table.
type SQLiteSlot struct {
	db *gorm.DB
}

// OpenSQLiteSlot opens (creating if needed) the sqlite database at path.
func OpenSQLiteSlot(path string) (*SQLiteSlot, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return NewSQLiteSlot(db)
}

// NewSQLiteSlot wraps an existing gorm database and migrates the slot table.
func NewSQLiteSlot(db *gorm.DB) (*SQLiteSlot, error) {
	if err := db.AutoMigrate(&slotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate slot table: %w", err)
	}
	return &SQLiteSlot{db: db}, nil
}

// Get returns the blob stored under key.
func (s *SQLiteSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec slotRecord
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return rec.Value, true, nil
}

// Put replaces the blob stored under key.
func (s *SQLiteSlot) Put(ctx context.Context, key string, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	rec := slotRecord{Name: key, Value: data, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying database connection.
func (s *SQLiteSlot) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}
