package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"content-platform-be/pkg/block"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

// DefaultMaxSize is the size limit used when LocalStore is built without one.
const DefaultMaxSize int64 = 5 * 1024 * 1024

// LocalStore writes image assets into a directory served under baseURL.
type LocalStore struct {
	dir     string
	baseURL string
	maxSize int64
	names   block.IDGenerator
	logger  *zap.Logger
}

type LocalOption func(*LocalStore)

func WithMaxSize(n int64) LocalOption {
	return func(s *LocalStore) { s.maxSize = n }
}

// WithNames sets the generator for stored file names. File names are ULIDs by
// default.
func WithNames(ids block.IDGenerator) LocalOption {
	return func(s *LocalStore) { s.names = ids }
}

func WithStoreLogger(logger *zap.Logger) LocalOption {
	return func(s *LocalStore) { s.logger = logger }
}

func NewLocalStore(dir, baseURL string, opts ...LocalOption) *LocalStore {
	s := &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.names == nil {
		s.names = block.NewULIDGenerator()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

func (s *LocalStore) Upload(ctx context.Context, asset Asset) (Result, error) {
	if len(asset.Data) == 0 {
		return Result{}, ErrEmptyAsset
	}
	if int64(len(asset.Data)) > s.maxSize {
		return Result{}, fmt.Errorf("%w (max %d bytes)", ErrTooLarge, s.maxSize)
	}

	mime := mimetype.Detect(asset.Data)
	if !strings.HasPrefix(mime.String(), "image/") {
		s.logger.Debug("rejected upload", zap.String("name", asset.Name), zap.String("mime", mime.String()))
		return Result{}, fmt.Errorf("%w: got %s", ErrUnsupportedMedia, mime.String())
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create upload dir: %w", err)
	}

	filename := strings.ToLower(s.names.NewID()) + mime.Extension()
	if err := os.WriteFile(filepath.Join(s.dir, filename), asset.Data, 0o644); err != nil {
		return Result{}, fmt.Errorf("write asset: %w", err)
	}

	s.logger.Info("stored upload",
		zap.String("name", asset.Name),
		zap.String("file", filename),
		zap.String("mime", mime.String()),
		zap.Int("size", len(asset.Data)))

	return Result{
		URL:      s.baseURL + "/" + filename,
		MimeType: mime.String(),
		Size:     int64(len(asset.Data)),
	}, nil
}
