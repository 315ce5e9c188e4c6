package contract

import (
	"context"
	"time"

	"content-platform-be/internal/entity"

	"github.com/google/uuid"
)

type DraftRepository interface {
	Save(ctx context.Context, draft *entity.Draft, ttl time.Duration) error
	// Find returns nil, nil when no draft is stored.
	Find(ctx context.Context, contentId uuid.UUID, sessionId string) (*entity.Draft, error)
	Delete(ctx context.Context, contentId uuid.UUID, sessionId string) error
}
