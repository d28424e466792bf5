package repositories

import (
	"database/sql"
	"time"

	"fieldops/database"
)

// BaseRepository provides common SQL type conversion methods and database
// access that can be embedded in all repositories.
type BaseRepository struct {
	db *database.Database
}

// NewBaseRepository creates a new BaseRepository with database access
func NewBaseRepository(db *database.Database) *BaseRepository {
	return &BaseRepository{db: db}
}

// ReadDB returns the read-optimized connection for SELECT operations
func (b *BaseRepository) ReadDB() *sql.DB {
	return b.db.ReadDB()
}

// WriteDB returns the write-serialized connection for INSERT/UPDATE/DELETE
// operations
func (b *BaseRepository) WriteDB() *sql.DB {
	return b.db.WriteDB()
}

// WithTx executes a function within a write transaction
func (b *BaseRepository) WithTx(fn func(*sql.Tx) error) error {
	return b.db.WithTx(fn)
}

// FromNullString safely converts sql.NullString to string.
// Returns empty string if the SQL value is NULL.
func (b *BaseRepository) FromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// FromNullTime safely converts sql.NullTime to *time.Time.
// Returns nil if the SQL value is NULL.
func (b *BaseRepository) FromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

// ToNullString converts a string to sql.NullString.
// Empty string becomes NULL for database storage.
func (b *BaseRepository) ToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// ToNullTime converts a *time.Time to sql.NullTime.
// Nil pointer becomes NULL for database storage.
func (b *BaseRepository) ToNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
