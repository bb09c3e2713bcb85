package storage

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

// Entry is one keyed blob row
type Entry struct {
	Key   string `gorm:"column:store_key;primary_key"`
	Value string `gorm:"column:store_value;type:text"`
}

// TableName sets the blob table name
func (Entry) TableName() string {
	return "kv_entries"
}

// GormStore persists keyed blobs in a relational table. SQLite is the
// default; a PostgreSQL DSN works with the same schema.
type GormStore struct {
	db *gorm.DB
}

// Open initializes the database connection and ensures the blob table
// exists. Supported dialects are "sqlite3" and "postgres".
func Open(dialect, dsn string) (*GormStore, error) {
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", dialect, err)
	}
	if err := db.AutoMigrate(&Entry{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate blob table: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Get returns the value stored under key
func (s *GormStore) Get(key string) (string, bool) {
	var e Entry
	if s.db.Where("store_key = ?", key).First(&e).RecordNotFound() {
		return "", false
	}
	return e.Value, true
}

// Set replaces the value stored under key in a single write
func (s *GormStore) Set(key, value string) error {
	var e Entry
	if s.db.Where("store_key = ?", key).First(&e).RecordNotFound() {
		return s.db.Create(&Entry{Key: key, Value: value}).Error
	}
	return s.db.Model(&Entry{}).Where("store_key = ?", key).Update("store_value", value).Error
}

// Remove deletes the value stored under key
func (s *GormStore) Remove(key string) error {
	return s.db.Where("store_key = ?", key).Delete(&Entry{}).Error
}

// Close closes the underlying database connection
func (s *GormStore) Close() error {
	return s.db.Close()
}
