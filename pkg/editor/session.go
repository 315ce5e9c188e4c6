package editor

import (
	"context"
	"errors"
	"sync"

	"content-platform-be/pkg/block"
	"content-platform-be/pkg/codec"
	"content-platform-be/pkg/upload"

	"go.uber.org/zap"
)

var ErrNoUploader = errors.New("editor: no uploader configured")

// UploadResult is delivered once per upload. Applied is false when the upload
// failed or the target block no longer exists.
type UploadResult struct {
	BlockID string
	URL     string
	Applied bool
	Err     error
}

// Session owns one document for one editing user. Mutations are serialized by
// a mutex and every change in the stored encoding is reported to OnChange.
type Session struct {
	mu       sync.Mutex
	doc      block.Document
	stored   string
	focus    string
	ctrl     *Controller
	codec    *codec.Codec
	uploader upload.Uploader
	onChange func(stored string)
	logger   *zap.Logger
}

type SessionOption func(*Session)

func WithUploader(u upload.Uploader) SessionOption {
	return func(s *Session) { s.uploader = u }
}

func WithSessionLogger(logger *zap.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// OnChange registers fn to receive the new stored string after every edit
// that changed it. fn runs outside the session lock.
func OnChange(fn func(stored string)) SessionOption {
	return func(s *Session) { s.onChange = fn }
}

// NewSession parses stored and starts an editing session over it. ids is
// shared by the codec and the controller so ids stay unique in the session.
func NewSession(stored string, ids block.IDGenerator, opts ...SessionOption) *Session {
	if ids == nil {
		ids = block.NewULIDGenerator()
	}
	s := &Session{
		ctrl:   NewController(ids),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.codec = codec.New(codec.WithIDGenerator(ids), codec.WithLogger(s.logger))
	s.doc = s.codec.Parse(stored)
	s.stored = s.codec.Serialize(s.doc)
	s.focus = s.doc[0].ID
	return s
}

// Document returns a deep copy of the current document.
func (s *Session) Document() block.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Serialized returns the canonical stored form of the current document.
func (s *Session) Serialized() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stored
}

func (s *Session) Focus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focus
}

func (s *Session) Controller() *Controller {
	return s.ctrl
}

// apply runs fn against the current document. fn returns the new document and
// the focus target, or an empty focus to keep the current one.
func (s *Session) apply(fn func(doc block.Document) (block.Document, string)) bool {
	s.mu.Lock()
	next, focus := fn(s.doc)
	if len(next) == 0 {
		next = s.ctrl.NewDocument()
	}
	stored := s.codec.Serialize(next)
	changed := stored != s.stored
	s.doc = next
	s.stored = stored
	if focus != "" {
		s.focus = focus
	}
	if !s.doc.Has(s.focus) {
		s.focus = s.doc[0].ID
	}
	notify := s.onChange
	s.mu.Unlock()

	if changed && notify != nil {
		notify(stored)
	}
	return changed
}

func (s *Session) InsertAfter(afterID string, kind block.Kind) string {
	var id string
	s.apply(func(doc block.Document) (block.Document, string) {
		var out block.Document
		out, id = s.ctrl.InsertAfter(doc, afterID, kind)
		return out, id
	})
	return id
}

// UpdatePayload reports whether the payload was applied.
func (s *Session) UpdatePayload(id string, content block.Content) bool {
	return s.apply(func(doc block.Document) (block.Document, string) {
		return s.ctrl.UpdatePayload(doc, id, content), ""
	})
}

// UpdateSession applies fn to the payload of block id inside the session lock.
func UpdateSession[T block.Content](s *Session, id string, fn func(T) T) bool {
	return s.apply(func(doc block.Document) (block.Document, string) {
		return Update(s.ctrl, doc, id, fn), ""
	})
}

func (s *Session) Move(id string, dir Direction) {
	s.apply(func(doc block.Document) (block.Document, string) {
		return s.ctrl.Move(doc, id, dir), ""
	})
}

func (s *Session) Delete(id string) {
	s.apply(func(doc block.Document) (block.Document, string) {
		i := doc.Index(id)
		if i < 0 {
			return doc, ""
		}
		out := s.ctrl.Delete(doc, id)
		if i == 0 {
			return out, out[0].ID
		}
		return out, out[i-1].ID
	})
}

// Submit opens a paragraph after a text block and returns the new focus.
func (s *Session) Submit(id string) string {
	var focus string
	s.apply(func(doc block.Document) (block.Document, string) {
		var out block.Document
		out, focus = s.ctrl.Submit(doc, id)
		return out, focus
	})
	return focus
}

// SetText changes the text of a paragraph or heading. Clearing text leaves
// an empty block; clearing a block that was already empty removes it and
// moves focus to the previous one.
func (s *Session) SetText(id, text string) string {
	var focus string
	s.apply(func(doc block.Document) (block.Document, string) {
		if text == "" && isEmptyText(doc, id) {
			var out block.Document
			out, focus = s.ctrl.ClearText(doc, id)
			return out, focus
		}
		out := s.ctrl.UpdatePayload(doc, id, block.Text{Text: text})
		focus = id
		return out, id
	})
	return focus
}

func isEmptyText(doc block.Document, id string) bool {
	b, ok := doc.Find(id)
	if !ok {
		return false
	}
	t, ok := b.Content.(block.Text)
	return ok && t.Text == ""
}

// EditStep runs fn against the nested document of step index in How-To block
// id and writes the result back as one payload update. A plain step is
// switched to rich mode first.
func (s *Session) EditStep(id string, index int, fn func(ctrl *Controller, nested block.Document) block.Document) bool {
	return s.apply(func(doc block.Document) (block.Document, string) {
		b, ok := doc.Find(id)
		if !ok {
			return doc, ""
		}
		h, ok := b.Content.(block.HowTo)
		if !ok || index < 0 || index >= len(h.Steps) {
			return doc, ""
		}
		nested := h.Steps[index].Blocks
		if !h.Steps[index].IsRich() {
			nested = EnableRichStep(h, index, s.ctrl.ids).Steps[index].Blocks
		}
		return s.ctrl.SetStepBlocks(doc, id, index, fn(s.ctrl, nested.Clone())), ""
	})
}

// UploadImage uploads asset in the background and stores the URL on image
// block id. The document stays editable while the upload runs.
func (s *Session) UploadImage(ctx context.Context, id string, asset upload.Asset) <-chan UploadResult {
	return s.startUpload(ctx, id, asset, func(res upload.Result) bool {
		return UpdateSession(s, id, func(img block.Image) block.Image {
			img.URL = res.URL
			if img.Alt == "" {
				img.Alt = asset.Name
			}
			return img
		})
	})
}

// UploadGalleryItem uploads asset and appends it to gallery block id.
func (s *Session) UploadGalleryItem(ctx context.Context, id string, asset upload.Asset, caption string) <-chan UploadResult {
	return s.startUpload(ctx, id, asset, func(res upload.Result) bool {
		return UpdateSession(s, id, func(g block.Gallery) block.Gallery {
			return AddGalleryItem(g, block.GalleryItem{URL: res.URL, Caption: caption})
		})
	})
}

func (s *Session) startUpload(ctx context.Context, id string, asset upload.Asset, apply func(upload.Result) bool) <-chan UploadResult {
	out := make(chan UploadResult, 1)
	if s.uploader == nil {
		out <- UploadResult{BlockID: id, Err: ErrNoUploader}
		close(out)
		return out
	}

	go func() {
		defer close(out)
		res, err := s.uploader.Upload(ctx, asset)
		if err != nil {
			s.logger.Warn("upload failed", zap.String("block_id", id), zap.String("asset", asset.Name), zap.Error(err))
			out <- UploadResult{BlockID: id, Err: err}
			return
		}
		applied := apply(res)
		if !applied {
			s.logger.Debug("upload finished for a block that is gone or unchanged", zap.String("block_id", id))
		}
		out <- UploadResult{BlockID: id, URL: res.URL, Applied: applied}
	}()
	return out
}
