package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"content-platform-be/internal/entity"
	"content-platform-be/internal/repository/contract"
	"content-platform-be/internal/repository/specification"
	"content-platform-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// memoryStore is a ContentRepository over a map. It understands the
// specifications the services use.
type memoryStore struct {
	mu       sync.Mutex
	contents map[uuid.UUID]entity.Content
	commits  int
}

func newMemoryStore(seed ...entity.Content) *memoryStore {
	s := &memoryStore{contents: map[uuid.UUID]entity.Content{}}
	for _, c := range seed {
		s.contents[c.Id] = c
	}
	return s
}

func (s *memoryStore) get(id uuid.UUID) (entity.Content, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contents[id]
	return c, ok
}

func (s *memoryStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memoryUnitOfWork{store: s}
}

type memoryUnitOfWork struct {
	store *memoryStore
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memoryUnitOfWork) Rollback() error                 { return nil }

func (u *memoryUnitOfWork) Commit() error {
	u.store.mu.Lock()
	u.store.commits++
	u.store.mu.Unlock()
	return nil
}

func (u *memoryUnitOfWork) ContentRepository() contract.ContentRepository {
	return u.store
}

func (s *memoryStore) Create(ctx context.Context, content *entity.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contents[content.Id] = *content
	return nil
}

func (s *memoryStore) Update(ctx context.Context, content *entity.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	content.UpdatedAt = &now
	s.contents[content.Id] = *content
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contents, id)
	return nil
}

func (s *memoryStore) matching(specs []specification.Specification) []*entity.Content {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Content
	for _, c := range s.contents {
		keep := true
		for _, spec := range specs {
			switch sp := spec.(type) {
			case specification.ByID:
				keep = keep && c.Id == sp.ID
			case specification.ByContentType:
				keep = keep && string(c.Type) == sp.Type
			case specification.NotIndexed:
				keep = keep && !indexCurrent(&c)
			}
		}
		if keep {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *memoryStore) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Content, error) {
	found := s.matching(specs)
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (s *memoryStore) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Content, error) {
	return s.matching(specs), nil
}

func (s *memoryStore) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(s.matching(specs))), nil
}

func (s *memoryStore) UpdateDescriptors(ctx context.Context, id uuid.UUID, descriptors []byte, indexedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contents[id]
	if !ok {
		return nil
	}
	c.Descriptors = descriptors
	c.IndexedAt = &indexedAt
	s.contents[id] = c
	return nil
}

// recordingPublisher captures queued index requests.
type recordingPublisher struct {
	mu      sync.Mutex
	indexed []uuid.UUID
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error { return nil }

func (p *recordingPublisher) PublishIndex(ctx context.Context, contentId uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.indexed = append(p.indexed, contentId)
	return nil
}

type broadcast struct {
	contentId uuid.UUID
	event     string
	html      string
}

type recordingBroadcaster struct {
	mu   sync.Mutex
	sent []broadcast
}

func (b *recordingBroadcaster) BroadcastContent(contentId uuid.UUID, event string, html string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, broadcast{contentId, event, html})
}
