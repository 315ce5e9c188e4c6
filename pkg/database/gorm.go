package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tunes the connection. The zero value is never used directly;
// defaultOptions fills every field.
type Options struct {
	LogLevel        logger.LogLevel
	SlowThreshold   time.Duration
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type Option func(*Options)

func WithLogLevel(level logger.LogLevel) Option {
	return func(o *Options) { o.LogLevel = level }
}

func WithPool(maxIdle, maxOpen int, lifetime time.Duration) Option {
	return func(o *Options) {
		o.MaxIdleConns = maxIdle
		o.MaxOpenConns = maxOpen
		o.ConnMaxLifetime = lifetime
	}
}

func defaultOptions(opts ...Option) Options {
	o := Options{
		LogLevel:        logger.Warn,
		SlowThreshold:   time.Second,
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newLogger(o Options) logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             o.SlowThreshold,
			LogLevel:                  o.LogLevel,
			IgnoreRecordNotFoundError: true, // FindOne treats it as "absent"
			ParameterizedQueries:      true, // content bodies stay out of the SQL log
			Colorful:                  false,
		},
	)
}

// NewGormDBFromDSN opens a postgres connection and sizes its pool.
func NewGormDBFromDSN(dsn string, opts ...Option) (*gorm.DB, error) {
	o := defaultOptions(opts...)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger(o),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(o.ConnMaxLifetime)

	return db, nil
}
