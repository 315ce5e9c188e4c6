// Package upload stores media assets picked in the editor and hands back the
// public URL that image and gallery blocks reference.
package upload

import (
	"context"
	"errors"
)

var (
	ErrEmptyAsset       = errors.New("upload: asset is empty")
	ErrUnsupportedMedia = errors.New("upload: only image files are accepted")
	ErrTooLarge         = errors.New("upload: asset exceeds the size limit")
)

// Asset is a file chosen by the editor user.
type Asset struct {
	Name string
	Data []byte
}

type Result struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// Uploader stores an asset and returns where it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, asset Asset) (Result, error)
}

// UploaderFunc adapts a function to Uploader.
type UploaderFunc func(ctx context.Context, asset Asset) (Result, error)

func (f UploaderFunc) Upload(ctx context.Context, asset Asset) (Result, error) {
	return f(ctx, asset)
}
