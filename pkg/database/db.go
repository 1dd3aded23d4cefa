package database

import (
	"fmt"
	"time"

	"github.com/arnavshah/standup-api-go/pkg/guess"
	"github.com/arnavshah/standup-api-go/pkg/roster"
	"github.com/arnavshah/standup-api-go/pkg/standup"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	KeyPreview string     `json:"key_preview"`
	Name       string     `gorm:"not null" json:"name"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
	RevokedAt  *time.Time `gorm:"index" json:"revoked_at,omitempty"`
}

// APIUsage represents the api_usage table, one row per key per day
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalMembers int    `gorm:"default:0" json:"total_members"`
	TotalPairs   int    `gorm:"default:0" json:"total_pairs"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Open connects to postgres when a DSN is given and to a sqlite file otherwise
func Open(dsn, dataPath string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	} else {
		if dataPath == "" {
			dataPath = "standup.db"
		}
		db, err = gorm.Open(sqlite.Open(dataPath), &gorm.Config{TranslateError: true})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the service uses
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&APIKey{},
		&APIUsage{},
		&MasterUser{},
		&roster.Member{},
		&roster.Absence{},
		&standup.Entry{},
		&guess.Question{},
		&guess.Guess{},
	)
}
