package events

import (
	"encoding/json"
	"time"
)

const (
	ContentCreated = "CONTENT_CREATED"
	ContentUpdated = "CONTENT_UPDATED"
	ContentDeleted = "CONTENT_DELETED"
	ContentIndexed = "CONTENT_INDEXED"
)

func NewContentChanged(eventType, contentId, contentType string) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"content_id":   contentId,
			"content_type": contentType,
		},
		OccurredAt: time.Now(),
	}
}

// NewContentIndexed carries the JSON-LD bundle so external indexers never
// have to re-read the content.
func NewContentIndexed(contentId string, descriptorCount int, bundle []byte) BaseEvent {
	return BaseEvent{
		Type: ContentIndexed,
		Data: map[string]interface{}{
			"content_id":       contentId,
			"descriptor_count": descriptorCount,
			"bundle":           json.RawMessage(bundle),
		},
		OccurredAt: time.Now(),
	}
}
