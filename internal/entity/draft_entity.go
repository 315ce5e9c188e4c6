package entity

import (
	"time"

	"github.com/google/uuid"
)

// Draft is an unsaved editing snapshot of one content record, owned by a
// single editing session.
type Draft struct {
	ContentId uuid.UUID `json:"content_id"`
	SessionId string    `json:"session_id"`
	Body      string    `json:"body"`
	Focus     string    `json:"focus,omitempty"`
	SavedAt   time.Time `json:"saved_at"`
}

func DraftKey(contentId uuid.UUID, sessionId string) string {
	return "draft:" + contentId.String() + ":" + sessionId
}
