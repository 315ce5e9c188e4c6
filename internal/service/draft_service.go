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
	"content-platform-be/internal/repository/contract"
	"content-platform-be/internal/repository/specification"
	"content-platform-be/internal/repository/unitofwork"
	"content-platform-be/pkg/block"
	"content-platform-be/pkg/editor"

	"github.com/google/uuid"
)

var ErrDraftNotFound = fmt.Errorf("draft %w", serverutils.ErrNotFound)

const (
	moduleDraft = "DraftService"
	eventDraft  = "DRAFT_SAVED"
)

type IDraftService interface {
	Save(ctx context.Context, req *dto.SaveDraftRequest) (*dto.DraftResponse, error)
	// Load returns the saved draft, or the stored content when the session
	// has none yet.
	Load(ctx context.Context, contentId uuid.UUID, sessionId string) (*dto.DraftResponse, error)
	Discard(ctx context.Context, contentId uuid.UUID, sessionId string) error
}

type draftService struct {
	uowFactory  unitofwork.RepositoryFactory
	drafts      contract.DraftRepository
	ttl         time.Duration
	broadcaster ContentBroadcaster
	logger      logger.ILogger
	now         func() time.Time
}

func NewDraftService(
	uowFactory unitofwork.RepositoryFactory,
	drafts contract.DraftRepository,
	ttl time.Duration,
	broadcaster ContentBroadcaster,
	log logger.ILogger,
) IDraftService {
	return &draftService{
		uowFactory:  uowFactory,
		drafts:      drafts,
		ttl:         ttl,
		broadcaster: broadcaster,
		logger:      log,
		now:         time.Now,
	}
}

// Save normalises the snapshot through an editing session before storing
// it, so a draft is always a canonical block array with a valid focus.
func (s *draftService) Save(ctx context.Context, req *dto.SaveDraftRequest) (*dto.DraftResponse, error) {
	if _, err := s.findContent(ctx, req.ContentId); err != nil {
		return nil, err
	}

	session := editor.NewSession(req.Body, block.NewSequence(parsedIDPrefix), editor.WithSessionLogger(s.logger.Zap()))
	focus := session.Focus()
	if req.Focus != "" && session.Document().Has(req.Focus) {
		focus = req.Focus
	}

	draft := &entity.Draft{
		ContentId: req.ContentId,
		SessionId: req.SessionId,
		Body:      session.Serialized(),
		Focus:     focus,
		SavedAt:   s.now(),
	}
	if err := s.drafts.Save(ctx, draft, s.ttl); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastContent(req.ContentId, eventDraft, renditionOf(session.Document(), "", s.logger).HTML)
	}

	s.logger.Debug(moduleDraft, "Draft saved", map[string]interface{}{
		"content_id": req.ContentId,
		"session_id": req.SessionId,
		"bytes":      len(draft.Body),
	})
	return toDraftResponse(draft), nil
}

func (s *draftService) Load(ctx context.Context, contentId uuid.UUID, sessionId string) (*dto.DraftResponse, error) {
	draft, err := s.drafts.Find(ctx, contentId, sessionId)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return toDraftResponse(draft), nil
	}

	content, err := s.findContent(ctx, contentId)
	if err != nil {
		return nil, err
	}

	doc := newCodec(s.logger).Parse(content.Body)
	savedAt := content.CreatedAt
	if content.UpdatedAt != nil {
		savedAt = *content.UpdatedAt
	}
	return toDraftResponse(&entity.Draft{
		ContentId: contentId,
		SessionId: sessionId,
		Body:      newCodec(s.logger).Serialize(doc),
		Focus:     doc[0].ID,
		SavedAt:   savedAt,
	}), nil
}

func (s *draftService) Discard(ctx context.Context, contentId uuid.UUID, sessionId string) error {
	draft, err := s.drafts.Find(ctx, contentId, sessionId)
	if err != nil {
		return err
	}
	if draft == nil {
		return ErrDraftNotFound
	}
	return s.drafts.Delete(ctx, contentId, sessionId)
}

func (s *draftService) findContent(ctx context.Context, id uuid.UUID) (*entity.Content, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	content, err := uow.ContentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrContentNotFound
	}
	return content, nil
}

func toDraftResponse(d *entity.Draft) *dto.DraftResponse {
	return &dto.DraftResponse{
		ContentId: d.ContentId,
		SessionId: d.SessionId,
		Blocks:    json.RawMessage(d.Body),
		Focus:     d.Focus,
		SavedAt:   d.SavedAt,
	}
}
