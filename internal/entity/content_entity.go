package entity

import (
	"time"

	"github.com/google/uuid"
)

type ContentType string

const (
	ContentTypePrompt  ContentType = "prompt"
	ContentTypeArticle ContentType = "article"
	ContentTypeScript  ContentType = "script"
	ContentTypeThread  ContentType = "thread"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypePrompt, ContentTypeArticle, ContentTypeScript, ContentTypeThread:
		return true
	}
	return false
}

// Content is a stored document. Body holds the serialized block array (or a
// legacy encoding until the record is next saved).
type Content struct {
	Id          uuid.UUID
	Type        ContentType
	Title       string
	Body        string
	Descriptors []byte // last derived JSON-LD bundle
	IndexedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
