package dto

import (
	"encoding/json"
	"time"

	"content-platform-be/pkg/seo"

	"github.com/google/uuid"
)

const (
	FormatBlocks   = "blocks"
	FormatMarkdown = "markdown"
)

type CreateContentRequest struct {
	Type  string `json:"type" validate:"required,oneof=prompt article script thread"`
	Title string `json:"title" validate:"required,max=255"`
	Body  string `json:"body"`
	// Format "markdown" imports Body as Markdown. Anything else is read as a
	// stored block string, including legacy encodings.
	Format string `json:"format" validate:"omitempty,oneof=blocks markdown"`
}

type CreateContentResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowContentResponse struct {
	Id          uuid.UUID        `json:"id"`
	Type        string           `json:"type"`
	Title       string           `json:"title"`
	Shape       string           `json:"shape"`
	Blocks      json.RawMessage  `json:"blocks"`
	HTML        string           `json:"html"`
	Markdown    string           `json:"markdown"`
	Descriptors []seo.Descriptor `json:"descriptors"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at"`
}

type ListContentRequest struct {
	Type  string `query:"type" validate:"omitempty,oneof=prompt article script thread"`
	Query string `query:"q"`
	Page  int    `query:"page" validate:"omitempty,min=1"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type ContentSummary struct {
	Id        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type ListContentResponse struct {
	Items []ContentSummary `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpMove   = "move"
	OpDelete = "delete"
)

// EditOperation is one structural edit. Which fields apply depends on Op:
// insert uses After, Kind and optionally Content; update uses Id and Content;
// move uses Id and Direction; delete uses Id.
type EditOperation struct {
	Op        string          `json:"op" validate:"required,oneof=insert update move delete"`
	Id        string          `json:"id" validate:"required_unless=Op insert"`
	After     string          `json:"after"`
	Kind      string          `json:"kind" validate:"required_if=Op insert"`
	Direction string          `json:"direction" validate:"omitempty,oneof=up down"`
	Content   json.RawMessage `json:"content"`
}

type EditContentRequest struct {
	Id         uuid.UUID
	Title      *string         `json:"title" validate:"omitempty,min=1,max=255"`
	Operations []EditOperation `json:"operations" validate:"required,min=1,dive"`
}

type EditResult struct {
	Op      string `json:"op"`
	Id      string `json:"id"`
	Applied bool   `json:"applied"`
}

type EditContentResponse struct {
	Id      uuid.UUID       `json:"id"`
	Blocks  json.RawMessage `json:"blocks"`
	Focus   string          `json:"focus"`
	Results []EditResult    `json:"results"`
}

type PreviewRequest struct {
	Body   string `json:"body"`
	Format string `json:"format" validate:"omitempty,oneof=blocks markdown"`
}

type PreviewResponse struct {
	Shape       string           `json:"shape"`
	Blocks      json.RawMessage  `json:"blocks"`
	HTML        string           `json:"html"`
	Markdown    string           `json:"markdown"`
	Descriptors []seo.Descriptor `json:"descriptors"`
	JSONLD      json.RawMessage  `json:"json_ld"`
}

type DescriptorsResponse struct {
	Id          uuid.UUID        `json:"id"`
	Descriptors []seo.Descriptor `json:"descriptors"`
	JSONLD      json.RawMessage  `json:"json_ld"`
	IndexedAt   *time.Time       `json:"indexed_at"`
}

type ReindexResponse struct {
	Stale  int `json:"stale"`
	Queued int `json:"queued"`
}

type SaveDraftRequest struct {
	ContentId uuid.UUID
	SessionId string
	Body      string `json:"body" validate:"required"`
	Focus     string `json:"focus"`
}

type DraftResponse struct {
	ContentId uuid.UUID       `json:"content_id"`
	SessionId string          `json:"session_id"`
	Blocks    json.RawMessage `json:"blocks"`
	Focus     string          `json:"focus"`
	SavedAt   time.Time       `json:"saved_at"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

type PublishIndexContentMessage struct {
	ContentId uuid.UUID `json:"content_id"`
}
