package kv

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Record is one row of the kv_records table.
type Record struct {
	RecordKey string     `gorm:"primaryKey;type:varchar(255)"`
	Value     []byte     `gorm:"type:bytea;not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	// ExpiresAt is nil for records that never expire.
	ExpiresAt *time.Time `gorm:"index"`
}

func (Record) TableName() string {
	return "kv_records"
}

// GormStore keeps records in PostgreSQL. Update serialises writers with
// transaction-scoped advisory locks taken in key order, so keys that do not
// exist yet are protected too.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// OpenPostgres connects GORM to PostgreSQL.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

// Migrate creates or updates the kv_records table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&Record{})
}

func (s *GormStore) Get(ctx context.Context, key string, out any) (bool, error) {
	var rec Record
	err := live(s.db.WithContext(ctx), time.Now()).Where("record_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, decode(rec.Value, out)
}

func (s *GormStore) Update(ctx context.Context, keys []string, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		ordered := sortedKeys(keys)
		for _, key := range ordered {
			if err := gtx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", key).Error; err != nil {
				return err
			}
		}

		var rows []Record
		if len(ordered) > 0 {
			if err := live(gtx, time.Now()).Where("record_key IN ?", ordered).Find(&rows).Error; err != nil {
				return err
			}
		}
		values := make(map[string][]byte, len(rows))
		for _, row := range rows {
			values[row.RecordKey] = row.Value
		}

		tx := newBufferedTx(keys, func(key string) ([]byte, bool, error) {
			data, ok := values[key]
			return data, ok, nil
		})
		if err := fn(tx); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, w := range tx.writes() {
			if w.value == nil {
				if err := gtx.Where("record_key = ?", w.key).Delete(&Record{}).Error; err != nil {
					return err
				}
				continue
			}
			rec := Record{RecordKey: w.key, Value: w.value, UpdatedAt: now}
			err := gtx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "record_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at", "expires_at"}),
			}).Create(&rec).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Put upserts key and sweeps records whose expiry has passed.
func (s *GormStore) Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	rec := Record{RecordKey: key, Value: data, UpdatedAt: now}
	if ttl > 0 {
		expires := now.Add(ttl)
		rec.ExpiresAt = &expires
	}
	return s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		if err := gtx.Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&Record{}).Error; err != nil {
			return err
		}
		return gtx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at", "expires_at"}),
		}).Create(&rec).Error
	})
}

func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("record_key = ?", key).Delete(&Record{}).Error
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func live(db *gorm.DB, now time.Time) *gorm.DB {
	return db.Where("expires_at IS NULL OR expires_at > ?", now)
}
