package upload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"content-platform-be/pkg/block"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestLocalStoreWritesImage(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "http://localhost:3000/uploads/", WithNames(block.NewSequence("IMG")))

	res, err := store.Upload(context.Background(), Asset{Name: "cat.png", Data: pngHeader})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/uploads/img1.png", res.URL)
	assert.Equal(t, "image/png", res.MimeType)
	assert.Equal(t, int64(len(pngHeader)), res.Size)

	stored, err := os.ReadFile(filepath.Join(dir, "img1.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
}

func TestLocalStoreRejects(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads", WithMaxSize(16))

	_, err := store.Upload(context.Background(), Asset{Name: "empty.png"})
	assert.ErrorIs(t, err, ErrEmptyAsset)

	_, err = store.Upload(context.Background(), Asset{Name: "notes.txt", Data: []byte("plain words")})
	assert.ErrorIs(t, err, ErrUnsupportedMedia)

	_, err = store.Upload(context.Background(), Asset{Name: "big.png", Data: pngHeader})
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLocalStoreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalStore(t.TempDir(), "/uploads").Upload(ctx, Asset{Name: "a.png", Data: pngHeader})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestUploaderFunc(t *testing.T) {
	var u Uploader = UploaderFunc(func(ctx context.Context, a Asset) (Result, error) {
		return Result{URL: "/x/" + a.Name}, nil
	})
	res, err := u.Upload(context.Background(), Asset{Name: "a"})
	require.NoError(t, err)
	assert.Equal(t, "/x/a", res.URL)
}
