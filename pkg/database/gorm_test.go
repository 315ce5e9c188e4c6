package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	assert.Equal(t, logger.Warn, o.LogLevel)
	assert.Equal(t, 100, o.MaxOpenConns)

	o = defaultOptions(WithLogLevel(logger.Info), WithPool(2, 5, time.Minute))
	assert.Equal(t, logger.Info, o.LogLevel)
	assert.Equal(t, Options{
		LogLevel:        logger.Info,
		SlowThreshold:   time.Second,
		MaxIdleConns:    2,
		MaxOpenConns:    5,
		ConnMaxLifetime: time.Minute,
	}, o)
}
