package mapper

import (
	"time"

	"content-platform-be/internal/entity"
	"content-platform-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContentMapper struct{}

func NewContentMapper() *ContentMapper {
	return &ContentMapper{}
}

func (m *ContentMapper) ToEntity(c *model.Content) *entity.Content {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	var descriptors []byte
	if len(c.Descriptors) > 0 {
		descriptors = []byte(c.Descriptors)
	}

	return &entity.Content{
		Id:          c.Id,
		Type:        entity.ContentType(c.Type),
		Title:       c.Title,
		Body:        c.Body,
		Descriptors: descriptors,
		IndexedAt:   c.IndexedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   c.DeletedAt.Valid,
	}
}

func (m *ContentMapper) ToModel(c *entity.Content) *model.Content {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	var descriptors datatypes.JSON
	if len(c.Descriptors) > 0 {
		descriptors = datatypes.JSON(c.Descriptors)
	}

	return &model.Content{
		Id:          c.Id,
		Type:        string(c.Type),
		Title:       c.Title,
		Body:        c.Body,
		Descriptors: descriptors,
		IndexedAt:   c.IndexedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *ContentMapper) ToEntities(contents []*model.Content) []*entity.Content {
	entities := make([]*entity.Content, len(contents))
	for i, c := range contents {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
