package specification

import (
	"gorm.io/gorm"
)

type ByContentType struct {
	Type string
}

func (s ByContentType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

// TitleContains is a case-insensitive substring match on the title.
type TitleContains struct {
	Query string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Query+"%")
}

// NotIndexed selects records whose descriptors were never derived or are
// older than the last body change.
type NotIndexed struct{}

func (s NotIndexed) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("indexed_at IS NULL OR indexed_at < updated_at")
}
