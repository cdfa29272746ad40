package kvstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is the persistence model for the gorm-backed store.
type Entry struct {
	Key       string    `gorm:"primaryKey;column:key;type:text"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "kv_entries" }

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by the kv_entries table, creating it
// when missing.
func NewGormStore(db *gorm.DB) (Store, error) {
	if db == nil {
		return nil, errors.New("kvstore: nil db")
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry.Value, nil
}

func (s *gormStore) Set(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
}
