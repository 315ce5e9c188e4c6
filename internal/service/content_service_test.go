package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"content-platform-be/internal/dto"
	"content-platform-be/internal/entity"
	"content-platform-be/internal/pkg/logger"
	"content-platform-be/internal/pkg/serverutils"
	"content-platform-be/pkg/block"
	"content-platform-be/pkg/codec"
	"content-platform-be/pkg/events"
	"content-platform-be/pkg/seo"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contentFixture struct {
	store       *memoryStore
	publisher   *recordingPublisher
	broadcaster *recordingBroadcaster
	events      []string
	service     IContentService
}

func newContentFixture(seed ...entity.Content) *contentFixture {
	f := &contentFixture{
		store:       newMemoryStore(seed...),
		publisher:   &recordingPublisher{},
		broadcaster: &recordingBroadcaster{},
	}
	f.service = NewContentService(f.store, f.publisher, time.Minute, logger.NewNopLogger(),
		WithEventPublisher(events.PublisherFunc(func(ctx context.Context, e events.Event) error {
			f.events = append(f.events, e.EventType())
			return nil
		})),
		WithBroadcaster(f.broadcaster),
	)
	return f
}

func seedContent(body string) entity.Content {
	return entity.Content{
		Id:        uuid.New(),
		Type:      entity.ContentTypeArticle,
		Title:     "Guide",
		Body:      body,
		CreatedAt: time.Now(),
	}
}

func TestCreateStoresCanonicalBody(t *testing.T) {
	f := newContentFixture()
	ctx := context.Background()

	res, err := f.service.Create(ctx, &dto.CreateContentRequest{Type: "prompt", Title: "Legacy", Body: "just words"})
	require.NoError(t, err)

	stored, ok := f.store.get(res.Id)
	require.True(t, ok)
	assert.Equal(t, codec.ShapeCanonical, codec.Detect(stored.Body))

	doc := codec.Parse(stored.Body)
	require.Len(t, doc, 1)
	assert.Equal(t, block.Text{Text: "just words"}, doc[0].Content)

	assert.Equal(t, []uuid.UUID{res.Id}, f.publisher.indexed)
	assert.Equal(t, []string{events.ContentCreated}, f.events)
	require.Len(t, f.broadcaster.sent, 1)
	assert.Contains(t, f.broadcaster.sent[0].html, "just words")
}

func TestCreateFromMarkdown(t *testing.T) {
	f := newContentFixture()

	res, err := f.service.Create(context.Background(), &dto.CreateContentRequest{
		Type:   "article",
		Title:  "Md",
		Body:   "# Hello\n\nWorld",
		Format: dto.FormatMarkdown,
	})
	require.NoError(t, err)

	stored, _ := f.store.get(res.Id)
	doc := codec.Parse(stored.Body)
	require.Len(t, doc, 2)
	assert.Equal(t, block.KindHeading1, doc[0].Kind)
	assert.Equal(t, block.KindParagraph, doc[1].Kind)
}

func TestShow(t *testing.T) {
	lexicalBody := `{"root":{"type":"root","children":[{"type":"heading","tag":"h2","children":[{"type":"text","text":"Title"}]},{"type":"paragraph","children":[{"type":"text","text":"Body"}]}]}}`
	seed := seedContent(lexicalBody)
	f := newContentFixture(seed)

	res, err := f.service.Show(context.Background(), seed.Id)
	require.NoError(t, err)

	assert.Equal(t, string(codec.ShapeLexical), res.Shape)
	assert.Contains(t, res.HTML, `<h2 data-block-id="b1">Title</h2>`)
	assert.Equal(t, "## Title\n\nBody", res.Markdown)
	assert.NotNil(t, res.Descriptors)

	// Ids of a legacy body are stable between reads so edits can use them.
	again, err := f.service.Show(context.Background(), seed.Id)
	require.NoError(t, err)
	assert.JSONEq(t, string(res.Blocks), string(again.Blocks))
}

func TestShowNotFound(t *testing.T) {
	f := newContentFixture()
	_, err := f.service.Show(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrContentNotFound)
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestEdit(t *testing.T) {
	seed := seedContent(`[{"id":"a","type":"paragraph","content":"hello"}]`)
	f := newContentFixture(seed)
	ctx := context.Background()

	res, err := f.service.Edit(ctx, &dto.EditContentRequest{
		Id: seed.Id,
		Operations: []dto.EditOperation{
			{Op: dto.OpInsert, After: "a", Kind: "faq", Content: json.RawMessage(`{"items":[{"question":"Q?","answer":"A"}]}`)},
			{Op: dto.OpUpdate, Id: "a", Content: json.RawMessage(`"hi"`)},
			{Op: dto.OpMove, Id: "ghost", Direction: "up"},
			{Op: dto.OpMove, Id: "a", Direction: "up"},
		},
	})
	require.NoError(t, err)

	require.Len(t, res.Results, 4)
	assert.True(t, res.Results[0].Applied)
	assert.True(t, res.Results[1].Applied)
	assert.False(t, res.Results[2].Applied)
	assert.False(t, res.Results[3].Applied)
	assert.Equal(t, res.Results[1].Id, res.Focus)

	stored, _ := f.store.get(seed.Id)
	assert.JSONEq(t, stored.Body, string(res.Blocks))
	doc := codec.Parse(stored.Body)
	require.Len(t, doc, 2)
	assert.Equal(t, block.Text{Text: "hi"}, doc[0].Content)
	assert.Equal(t, res.Results[0].Id, doc[1].ID)

	descs := seo.Derive(doc)
	require.Len(t, descs, 1)
	assert.Equal(t, seo.TypeFAQ, descs[0].Type)

	assert.Equal(t, []string{events.ContentUpdated}, f.events)
	require.Len(t, f.broadcaster.sent, 1)
	assert.Contains(t, f.broadcaster.sent[0].html, "Q?")
}

func TestEditInsertWithInvalidPayloadIsNotApplied(t *testing.T) {
	body := `[{"id":"a","type":"paragraph","content":"hello"}]`
	seed := seedContent(body)
	f := newContentFixture(seed)

	res, err := f.service.Edit(context.Background(), &dto.EditContentRequest{
		Id: seed.Id,
		Operations: []dto.EditOperation{
			{Op: dto.OpInsert, After: "a", Kind: "review", Content: json.RawMessage(`{"itemName":"Kettle","rating":0}`)},
		},
	})
	require.NoError(t, err)

	require.Len(t, res.Results, 1)
	assert.False(t, res.Results[0].Applied)
	assert.Empty(t, res.Results[0].Id)
	assert.JSONEq(t, body, string(res.Blocks))
	assert.Zero(t, f.store.commits)
	assert.Empty(t, f.events)
}

func TestEditRejectsUnreadableInput(t *testing.T) {
	body := `[{"id":"a","type":"paragraph","content":"hello"}]`
	seed := seedContent(body)
	f := newContentFixture(seed)

	tests := []dto.EditOperation{
		{Op: dto.OpInsert, Kind: "carousel"},
		{Op: dto.OpUpdate, Id: "a", Content: json.RawMessage(`[1,2]`)},
	}
	for _, op := range tests {
		_, err := f.service.Edit(context.Background(), &dto.EditContentRequest{
			Id:         seed.Id,
			Operations: []dto.EditOperation{{Op: dto.OpInsert, Kind: "divider"}, op},
		})
		assert.ErrorIs(t, err, serverutils.ErrBadRequest)
	}

	stored, _ := f.store.get(seed.Id)
	assert.Equal(t, body, stored.Body)
	assert.Empty(t, f.events)
}

func TestEditNoChangeSkipsSave(t *testing.T) {
	body := `[{"id":"a","type":"paragraph","content":"hello"}]`
	seed := seedContent(body)
	f := newContentFixture(seed)

	res, err := f.service.Edit(context.Background(), &dto.EditContentRequest{
		Id:         seed.Id,
		Operations: []dto.EditOperation{{Op: dto.OpDelete, Id: "missing"}},
	})
	require.NoError(t, err)
	assert.False(t, res.Results[0].Applied)
	assert.Zero(t, f.store.commits)
	assert.Empty(t, f.publisher.indexed)
}

func TestEditTitleOnly(t *testing.T) {
	seed := seedContent(`[{"id":"a","type":"paragraph","content":"hello"}]`)
	f := newContentFixture(seed)
	title := "Renamed"

	_, err := f.service.Edit(context.Background(), &dto.EditContentRequest{
		Id:         seed.Id,
		Title:      &title,
		Operations: []dto.EditOperation{{Op: dto.OpMove, Id: "a", Direction: "down"}},
	})
	require.NoError(t, err)

	stored, _ := f.store.get(seed.Id)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, 1, f.store.commits)
}

func TestPreview(t *testing.T) {
	f := newContentFixture()

	res, err := f.service.Preview(context.Background(), &dto.PreviewRequest{
		Body: `[{"id":"v","type":"video","content":"abc123"},{"id":"x","type":"carousel","content":{"slides":3}}]`,
	})
	require.NoError(t, err)

	assert.Equal(t, string(codec.ShapeCanonical), res.Shape)
	assert.Contains(t, string(res.Blocks), `{"id":"x","type":"carousel","content":{"slides":3}}`)
	assert.Contains(t, res.HTML, "abc123")
	assert.NotContains(t, res.HTML, "carousel")
	require.Len(t, res.Descriptors, 1)
	assert.Contains(t, string(res.JSONLD), `"VideoObject"`)
	assert.Empty(t, f.store.contents)
}

func TestDescriptorsPrefersCurrentIndex(t *testing.T) {
	seed := seedContent(`[{"id":"v","type":"video","content":"abc123"}]`)
	f := newContentFixture(seed)
	ctx := context.Background()

	fresh, err := f.service.Descriptors(ctx, seed.Id)
	require.NoError(t, err)
	assert.Nil(t, fresh.IndexedAt)
	assert.Contains(t, string(fresh.JSONLD), "VideoObject")

	stored := []byte(`{"@context":"https://schema.org","@graph":[]}`)
	require.NoError(t, f.store.UpdateDescriptors(ctx, seed.Id, stored, time.Now()))

	indexed, err := f.service.Descriptors(ctx, seed.Id)
	require.NoError(t, err)
	require.NotNil(t, indexed.IndexedAt)
	assert.JSONEq(t, string(stored), string(indexed.JSONLD))
	assert.Len(t, indexed.Descriptors, 1)
}

func TestList(t *testing.T) {
	older := seedContent("a")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := seedContent("b")
	prompt := seedContent("c")
	prompt.Type = entity.ContentTypePrompt
	f := newContentFixture(older, newer, prompt)

	res, err := f.service.List(context.Background(), &dto.ListContentRequest{Type: "article"})
	require.NoError(t, err)

	assert.EqualValues(t, 2, res.Total)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, defaultPageSize, res.Limit)
	require.Len(t, res.Items, 2)
	assert.Equal(t, newer.Id, res.Items[0].Id)
	assert.Equal(t, older.Id, res.Items[1].Id)
}

func TestDelete(t *testing.T) {
	seed := seedContent("x")
	f := newContentFixture(seed)
	ctx := context.Background()

	require.NoError(t, f.service.Delete(ctx, seed.Id))
	_, err := f.service.Show(ctx, seed.Id)
	assert.True(t, errors.Is(err, ErrContentNotFound))
	assert.Equal(t, []string{events.ContentDeleted}, f.events)

	assert.ErrorIs(t, f.service.Delete(ctx, seed.Id), ErrContentNotFound)
}

func TestRenditionCacheIsKeyedByBody(t *testing.T) {
	s := NewContentService(newMemoryStore(), &recordingPublisher{}, time.Minute, logger.NewNopLogger()).(*contentService)
	ctx := context.Background()

	a := s.render(ctx, "first")
	assert.Same(t, a, s.render(ctx, "first"))
	assert.NotSame(t, a, s.render(ctx, "second"))
	assert.True(t, strings.HasPrefix(a.Blocks, codec.Prefix))
}

func TestReindexQueuesStaleContent(t *testing.T) {
	fresh := seedContent("a")
	indexedAt := time.Now()
	fresh.IndexedAt = &indexedAt
	fresh.Descriptors = []byte(`{}`)

	stale := seedContent("b")
	edited := seedContent("c")
	editedAt := time.Now()
	before := editedAt.Add(-time.Minute)
	edited.IndexedAt, edited.UpdatedAt, edited.Descriptors = &before, &editedAt, []byte(`{}`)

	f := newContentFixture(fresh, stale, edited)
	res, err := f.service.Reindex(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &dto.ReindexResponse{Stale: 2, Queued: 2}, res)
	assert.ElementsMatch(t, []uuid.UUID{stale.Id, edited.Id}, f.publisher.indexed)
}
