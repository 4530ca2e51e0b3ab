package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type probabilityRow struct {
	Guild     string `gorm:"primaryKey;size:64"`
	Channel   string `gorm:"primaryKey;size:64"`
	Reply     float64
	Reaction  float64
	UpdatedAt time.Time
}

func (probabilityRow) TableName() string { return "channel_probabilities" }

// SQLStore keeps probabilities in a SQL table, one row per channel.
type SQLStore struct {
	db       *gorm.DB
	defaults Probabilities
	log      zerolog.Logger
}

func OpenSQL(driver, dsn string, defaults Probabilities, log zerolog.Logger) (*SQLStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}
	if err := db.AutoMigrate(&probabilityRow{}); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", driver, err)
	}
	return &SQLStore{db: db, defaults: defaults, log: log}, nil
}

func (s *SQLStore) Load(ctx context.Context, key Key) Probabilities {
	var row probabilityRow
	err := s.db.WithContext(ctx).
		Where("guild = ? AND channel = ?", key.Guild, key.Channel).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.defaults
	}
	if err != nil {
		s.log.Warn().Err(err).Str("key", key.String()).Msg("probability lookup failed, using defaults")
		return s.defaults
	}

	p := Probabilities{Reply: row.Reply, Reaction: row.Reaction}
	if err := p.Validate(); err != nil {
		s.log.Warn().Err(err).Str("key", key.String()).Msg("stored probabilities out of range, using defaults")
		return s.defaults
	}
	return p
}

func (s *SQLStore) Save(ctx context.Context, key Key, p Probabilities) error {
	if err := p.Validate(); err != nil {
		return err
	}
	row := probabilityRow{Guild: key.Guild, Channel: key.Channel, Reply: p.Reply, Reaction: p.Reaction}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild"}, {Name: "channel"}},
		DoUpdates: clause.AssignmentColumns([]string{"reply", "reaction", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
