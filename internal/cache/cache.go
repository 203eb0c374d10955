// Package cache stores fetched upstream payloads in a local sqlite
// database.
//
// The aggregation core is a pure function library and stays stateless,
// caching happens outside of it: raw payloads are memoized keyed by
// month and kind, and a mutation invalidates the affected month so the
// next read re-fetches and re-aggregates.
package cache

import (
	"errors"
	"time"

	"github.com/bufferbudget/backend/internal/helpers"
	"github.com/bufferbudget/backend/internal/types"
	"github.com/glebarez/sqlite"
	gorm_zerolog "github.com/wei840222/gorm-zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Payload kinds stored per month.
const (
	KindBudget        = "budget"
	KindUncategorized = "uncategorized"
	KindDeleted       = "deleted"
)

// Snapshot is one cached upstream payload.
type Snapshot struct {
	Month     types.Month `gorm:"primaryKey"`
	Kind      string      `gorm:"primaryKey"`
	Checksum  string      // SHA256 of the payload, for change detection
	Payload   []byte
	FetchedAt time.Time
}

// Cache is a snapshot store backed by sqlite.
type Cache struct {
	db *gorm.DB
}

// Connect opens the cache database and migrates the schema.
func Connect(dsn string) (*Cache, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: gorm_zerolog.New(),
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(Snapshot{}); err != nil {
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Put stores a payload for a month and kind, replacing any previous one.
func (c *Cache) Put(month types.Month, kind string, payload []byte) error {
	snapshot := Snapshot{
		Month:     month,
		Kind:      kind,
		Checksum:  helpers.Sha256Bytes(payload),
		Payload:   payload,
		FetchedAt: time.Now().In(time.UTC),
	}

	return c.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&snapshot).Error
}

// Get returns the cached payload for a month and kind. The second return
// value reports whether a snapshot was found.
func (c *Cache) Get(month types.Month, kind string) ([]byte, bool, error) {
	var snapshot Snapshot

	err := c.db.
		Where(&Snapshot{Month: month, Kind: kind}).
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return snapshot.Payload, true, nil
}

// Changed reports whether a payload differs from the cached snapshot for
// the month and kind. An empty cache always counts as changed.
func (c *Cache) Changed(month types.Month, kind string, payload []byte) (bool, error) {
	var snapshot Snapshot

	err := c.db.
		Where(&Snapshot{Month: month, Kind: kind}).
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	return snapshot.Checksum != helpers.Sha256Bytes(payload), nil
}

// Invalidate drops all snapshots of a month. Called after any mutation
// that touches the month.
func (c *Cache) Invalidate(month types.Month) error {
	return c.db.Where(&Snapshot{Month: month}).Delete(&Snapshot{}).Error
}

// Months returns the distinct months with at least one snapshot.
func (c *Cache) Months() ([]types.Month, error) {
	var months []types.Month

	err := c.db.
		Model(&Snapshot{}).
		Distinct("month").
		Pluck("month", &months).Error
	if err != nil {
		return nil, err
	}

	return months, nil
}

// Ping verifies the underlying database connection.
func (c *Cache) Ping() error {
	db, err := c.db.DB()
	if err != nil {
		return err
	}

	return db.Ping()
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	db, err := c.db.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
