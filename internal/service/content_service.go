package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"content-platform-be/internal/dto"
	"content-platform-be/internal/entity"
	"content-platform-be/internal/pkg/logger"
	"content-platform-be/internal/pkg/serverutils"
	"content-platform-be/internal/repository/specification"
	"content-platform-be/internal/repository/unitofwork"
	"content-platform-be/pkg/block"
	"content-platform-be/pkg/editor"
	"content-platform-be/pkg/events"
	"content-platform-be/pkg/seo"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrContentNotFound = fmt.Errorf("content %w", serverutils.ErrNotFound)
	ErrUnknownKind     = fmt.Errorf("unknown block kind: %w", serverutils.ErrBadRequest)
	ErrInvalidPayload  = fmt.Errorf("block content could not be read: %w", serverutils.ErrBadRequest)
)

const (
	defaultPageSize = 20
	moduleContent   = "ContentService"
)

type IContentService interface {
	Create(ctx context.Context, req *dto.CreateContentRequest) (*dto.CreateContentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowContentResponse, error)
	List(ctx context.Context, req *dto.ListContentRequest) (*dto.ListContentResponse, error)
	Edit(ctx context.Context, req *dto.EditContentRequest) (*dto.EditContentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Preview(ctx context.Context, req *dto.PreviewRequest) (*dto.PreviewResponse, error)
	Descriptors(ctx context.Context, id uuid.UUID) (*dto.DescriptorsResponse, error)
	// Reindex queues every record whose descriptors are missing or stale.
	Reindex(ctx context.Context) (*dto.ReindexResponse, error)
}

// ContentBroadcaster pushes freshly rendered content to live viewers.
type ContentBroadcaster interface {
	BroadcastContent(contentId uuid.UUID, event string, html string)
}

type contentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   events.Publisher
	broadcaster      ContentBroadcaster
	renditions       *cache.Cache
	ids              block.IDGenerator
	logger           logger.ILogger
	tracer           trace.Tracer
}

type ContentServiceOption func(*contentService)

// WithEventPublisher reports content lifecycle events to an external bus.
func WithEventPublisher(p events.Publisher) ContentServiceOption {
	return func(s *contentService) { s.eventPublisher = p }
}

func WithBroadcaster(b ContentBroadcaster) ContentServiceOption {
	return func(s *contentService) { s.broadcaster = b }
}

func NewContentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	renditionTTL time.Duration,
	log logger.ILogger,
	opts ...ContentServiceOption,
) IContentService {
	s := &contentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		renditions:       cache.New(renditionTTL, 2*renditionTTL),
		ids:              block.NewULIDGenerator(),
		logger:           log,
		tracer:           otel.Tracer("content-platform-be/service/content"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *contentService) Create(ctx context.Context, req *dto.CreateContentRequest) (*dto.CreateContentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ContentService.Create")
	defer span.End()

	doc, shape := readBody(req.Body, req.Format, s.logger)
	span.SetAttributes(attribute.String("content.shape", string(shape)), attribute.Int("content.blocks", len(doc)))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	content := entity.Content{
		Id:        uuid.New(),
		Type:      entity.ContentType(req.Type),
		Title:     req.Title,
		Body:      newCodec(s.logger).Serialize(doc),
		CreatedAt: time.Now(),
	}
	if err := uow.ContentRepository().Create(ctx, &content); err != nil {
		return nil, err
	}

	s.afterChange(ctx, &content, events.ContentCreated, "")

	return &dto.CreateContentResponse{
		Id: content.Id,
	}, nil
}

func (s *contentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowContentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ContentService.Show")
	defer span.End()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	content, err := uow.ContentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrContentNotFound
	}

	r := s.render(ctx, content.Body)

	return &dto.ShowContentResponse{
		Id:          content.Id,
		Type:        string(content.Type),
		Title:       content.Title,
		Shape:       string(r.Shape),
		Blocks:      json.RawMessage(r.Blocks),
		HTML:        r.HTML,
		Markdown:    r.Markdown,
		Descriptors: r.Descriptors,
		CreatedAt:   content.CreatedAt,
		UpdatedAt:   content.UpdatedAt,
	}, nil
}

func (s *contentService) List(ctx context.Context, req *dto.ListContentRequest) (*dto.ListContentResponse, error) {
	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	var specs []specification.Specification
	if req.Type != "" {
		specs = append(specs, specification.ByContentType{Type: req.Type})
	}
	if req.Query != "" {
		specs = append(specs, specification.TitleContains{Query: req.Query})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.ContentRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	pageSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	contents, err := uow.ContentRepository().FindAll(ctx, pageSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ContentSummary, 0, len(contents))
	for _, c := range contents {
		items = append(items, dto.ContentSummary{
			Id:        c.Id,
			Type:      string(c.Type),
			Title:     c.Title,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}

	return &dto.ListContentResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// Edit applies a batch of operations to the stored document in one
// transaction. Operations that cannot apply (unknown id, boundary move) are
// reported with Applied=false; unreadable input fails the whole batch.
func (s *contentService) Edit(ctx context.Context, req *dto.EditContentRequest) (*dto.EditContentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ContentService.Edit")
	defer span.End()
	span.SetAttributes(attribute.Int("edit.operations", len(req.Operations)))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	content, err := uow.ContentRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrContentNotFound
	}

	c := newCodec(s.logger)
	ctrl := editor.NewController(s.ids)
	doc := c.Parse(content.Body)
	current := c.Serialize(doc)

	results := make([]dto.EditResult, 0, len(req.Operations))
	focus := ""
	for i, op := range req.Operations {
		next, id, err := s.applyOperation(ctrl, doc, op)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		serialized := c.Serialize(next)
		applied := serialized != current
		if applied && op.Op != dto.OpDelete {
			focus = id
		}
		results = append(results, dto.EditResult{Op: op.Op, Id: id, Applied: applied})
		doc, current = next, serialized
	}

	titleChanged := req.Title != nil && *req.Title != content.Title
	if current == content.Body && !titleChanged {
		return &dto.EditContentResponse{Id: content.Id, Blocks: json.RawMessage(current), Focus: focus, Results: results}, nil
	}

	content.Body = current
	if titleChanged {
		content.Title = *req.Title
	}
	if err := uow.ContentRepository().Update(ctx, content); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.afterChange(ctx, content, events.ContentUpdated, s.render(ctx, current).HTML)

	return &dto.EditContentResponse{
		Id:      content.Id,
		Blocks:  json.RawMessage(current),
		Focus:   focus,
		Results: results,
	}, nil
}

func (s *contentService) applyOperation(ctrl *editor.Controller, doc block.Document, op dto.EditOperation) (block.Document, string, error) {
	c := newCodec(s.logger)

	switch op.Op {
	case dto.OpInsert:
		kind, ok := block.ParseKind(op.Kind)
		if !ok {
			return nil, "", fmt.Errorf("%q: %w", op.Kind, ErrUnknownKind)
		}
		if len(op.Content) == 0 {
			next, id := ctrl.InsertAfter(doc, op.After, kind)
			return next, id, nil
		}
		content, err := c.DecodeContent(kind, op.Content)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", err, ErrInvalidPayload)
		}
		// A payload the controller would refuse leaves the document as it was
		// instead of inserting an empty default block.
		if !block.Accepts(kind, content) || !ctrl.Valid(content) {
			return doc, "", nil
		}
		next, id := ctrl.InsertAfter(doc, op.After, kind)
		return ctrl.UpdatePayload(next, id, content), id, nil

	case dto.OpUpdate:
		b, ok := doc.Find(op.Id)
		if !ok || !b.Kind.Valid() {
			return doc, op.Id, nil
		}
		content, err := c.DecodeContent(b.Kind, op.Content)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", err, ErrInvalidPayload)
		}
		return ctrl.UpdatePayload(doc, op.Id, content), op.Id, nil

	case dto.OpMove:
		return ctrl.Move(doc, op.Id, editor.Direction(op.Direction)), op.Id, nil

	case dto.OpDelete:
		return ctrl.Delete(doc, op.Id), op.Id, nil
	}
	return doc, op.Id, nil
}

func (s *contentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	content, err := uow.ContentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if content == nil {
		return ErrContentNotFound
	}

	if err := uow.ContentRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, events.NewContentChanged(events.ContentDeleted, id.String(), string(content.Type)))
	return nil
}

func (s *contentService) Preview(ctx context.Context, req *dto.PreviewRequest) (*dto.PreviewResponse, error) {
	_, span := s.tracer.Start(ctx, "ContentService.Preview")
	defer span.End()

	doc, shape := readBody(req.Body, req.Format, s.logger)
	r := renditionOf(doc, shape, s.logger)

	bundle, err := seo.Bundle(r.Descriptors)
	if err != nil {
		return nil, err
	}

	return &dto.PreviewResponse{
		Shape:       string(r.Shape),
		Blocks:      json.RawMessage(r.Blocks),
		HTML:        r.HTML,
		Markdown:    r.Markdown,
		Descriptors: r.Descriptors,
		JSONLD:      bundle,
	}, nil
}

// Descriptors serves the bundle the indexer stored when it is current and
// derives a fresh one otherwise.
func (s *contentService) Descriptors(ctx context.Context, id uuid.UUID) (*dto.DescriptorsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ContentService.Descriptors")
	defer span.End()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	content, err := uow.ContentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrContentNotFound
	}

	r := s.render(ctx, content.Body)
	res := &dto.DescriptorsResponse{
		Id:          content.Id,
		Descriptors: r.Descriptors,
		IndexedAt:   content.IndexedAt,
	}

	if indexCurrent(content) {
		res.JSONLD = json.RawMessage(content.Descriptors)
		return res, nil
	}

	bundle, err := seo.Bundle(r.Descriptors)
	if err != nil {
		return nil, err
	}
	res.JSONLD = bundle
	return res, nil
}

func (s *contentService) Reindex(ctx context.Context) (*dto.ReindexResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	stale, err := uow.ContentRepository().FindAll(ctx, specification.NotIndexed{})
	if err != nil {
		return nil, err
	}

	queued := 0
	for _, c := range stale {
		if err := s.publisherService.PublishIndex(ctx, c.Id); err != nil {
			s.logger.Warn(moduleContent, "Failed to queue content for indexing", map[string]interface{}{
				"content_id": c.Id,
				"error":      err.Error(),
			})
			continue
		}
		queued++
	}

	s.logger.Info(moduleContent, "Reindex queued", map[string]interface{}{"stale": len(stale), "queued": queued})
	return &dto.ReindexResponse{Stale: len(stale), Queued: queued}, nil
}

func indexCurrent(c *entity.Content) bool {
	if len(c.Descriptors) == 0 || c.IndexedAt == nil {
		return false
	}
	return c.UpdatedAt == nil || !c.IndexedAt.Before(*c.UpdatedAt)
}

// render returns the cached rendition of body, computing it on a miss.
func (s *contentService) render(ctx context.Context, body string) *rendition {
	key := bodyDigest(body)
	if cached, ok := s.renditions.Get(key); ok {
		return cached.(*rendition)
	}

	_, span := s.tracer.Start(ctx, "ContentService.render")
	defer span.End()

	doc, shape := newCodec(s.logger).ParseShape(body)
	r := renditionOf(doc, shape, s.logger)
	span.SetAttributes(attribute.String("content.shape", string(shape)), attribute.Int("content.blocks", len(doc)))

	s.renditions.SetDefault(key, r)
	return r
}

// afterChange queues indexing and tells listeners. Failures here never fail
// the request; the next save retries indexing.
func (s *contentService) afterChange(ctx context.Context, content *entity.Content, eventType, html string) {
	if err := s.publisherService.PublishIndex(ctx, content.Id); err != nil {
		s.logger.Warn(moduleContent, "Failed to queue content for indexing", map[string]interface{}{
			"content_id": content.Id,
			"error":      err.Error(),
		})
	}

	s.publishEvent(ctx, events.NewContentChanged(eventType, content.Id.String(), string(content.Type)))

	if s.broadcaster != nil {
		if html == "" {
			html = s.render(ctx, content.Body).HTML
		}
		s.broadcaster.BroadcastContent(content.Id, eventType, html)
	}
}

func (s *contentService) publishEvent(ctx context.Context, evt events.BaseEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn(moduleContent, "Failed to publish event", map[string]interface{}{
			"event": evt.Type,
			"error": err.Error(),
		})
	}
}
