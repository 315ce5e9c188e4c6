package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Content struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type        string         `gorm:"type:varchar(20);not null;index"`
	Title       string         `gorm:"type:varchar(255);not null"`
	Body        string         `gorm:"type:text"`
	Descriptors datatypes.JSON `gorm:"type:jsonb"`
	IndexedAt   *time.Time
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Content) TableName() string {
	return "contents"
}
