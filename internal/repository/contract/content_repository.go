package contract

import (
	"context"
	"time"

	"content-platform-be/internal/entity"
	"content-platform-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ContentRepository interface {
	Create(ctx context.Context, content *entity.Content) error
	Update(ctx context.Context, content *entity.Content) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Content, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Content, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateDescriptors stores the derived bundle without touching the body.
	UpdateDescriptors(ctx context.Context, id uuid.UUID, descriptors []byte, indexedAt time.Time) error
}
