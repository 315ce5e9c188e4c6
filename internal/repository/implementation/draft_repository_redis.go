package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"content-platform-be/internal/entity"
	"content-platform-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisDraftRepository shares drafts between instances.
type RedisDraftRepository struct {
	rdb *redis.Client
}

func NewRedisDraftRepository(rdb *redis.Client) contract.DraftRepository {
	return &RedisDraftRepository{rdb: rdb}
}

func (r *RedisDraftRepository) Save(ctx context.Context, draft *entity.Draft, ttl time.Duration) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	return r.rdb.Set(ctx, entity.DraftKey(draft.ContentId, draft.SessionId), data, ttl).Err()
}

func (r *RedisDraftRepository) Find(ctx context.Context, contentId uuid.UUID, sessionId string) (*entity.Draft, error) {
	data, err := r.rdb.Get(ctx, entity.DraftKey(contentId, sessionId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var draft entity.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}

func (r *RedisDraftRepository) Delete(ctx context.Context, contentId uuid.UUID, sessionId string) error {
	return r.rdb.Del(ctx, entity.DraftKey(contentId, sessionId)).Err()
}
