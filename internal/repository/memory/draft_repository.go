package memory

import (
	"context"
	"time"

	"content-platform-be/internal/entity"
	"content-platform-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DraftRepository keeps drafts in process memory. It backs the draft service
// when no redis is configured.
type DraftRepository struct {
	cache *cache.Cache
}

func NewDraftRepository(defaultTTL time.Duration) contract.DraftRepository {
	// Expired drafts are purged every 10 minutes
	c := cache.New(defaultTTL, 10*time.Minute)
	return &DraftRepository{
		cache: c,
	}
}

func (r *DraftRepository) Save(ctx context.Context, draft *entity.Draft, ttl time.Duration) error {
	stored := *draft
	r.cache.Set(entity.DraftKey(draft.ContentId, draft.SessionId), &stored, ttl)
	return nil
}

func (r *DraftRepository) Find(ctx context.Context, contentId uuid.UUID, sessionId string) (*entity.Draft, error) {
	if x, found := r.cache.Get(entity.DraftKey(contentId, sessionId)); found {
		d := *x.(*entity.Draft)
		return &d, nil
	}
	return nil, nil
}

func (r *DraftRepository) Delete(ctx context.Context, contentId uuid.UUID, sessionId string) error {
	r.cache.Delete(entity.DraftKey(contentId, sessionId))
	return nil
}
