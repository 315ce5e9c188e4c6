package service

import (
	"context"
	"errors"
	"fmt"

	"content-platform-be/internal/dto"
	"content-platform-be/internal/pkg/logger"
	"content-platform-be/internal/pkg/serverutils"
	"content-platform-be/pkg/upload"
)

type IUploadService interface {
	Upload(ctx context.Context, name string, data []byte) (*dto.UploadResponse, error)
}

type uploadService struct {
	uploader upload.Uploader
	logger   logger.ILogger
}

func NewUploadService(uploader upload.Uploader, log logger.ILogger) IUploadService {
	return &uploadService{
		uploader: uploader,
		logger:   log,
	}
}

func (s *uploadService) Upload(ctx context.Context, name string, data []byte) (*dto.UploadResponse, error) {
	res, err := s.uploader.Upload(ctx, upload.Asset{Name: name, Data: data})
	if err != nil {
		if errors.Is(err, upload.ErrEmptyAsset) || errors.Is(err, upload.ErrUnsupportedMedia) || errors.Is(err, upload.ErrTooLarge) {
			return nil, fmt.Errorf("%w: %w", serverutils.ErrBadRequest, err)
		}
		s.logger.Error("UploadService", "Failed to store asset", map[string]interface{}{
			"name":  name,
			"error": err.Error(),
		})
		return nil, err
	}

	return &dto.UploadResponse{
		URL:      res.URL,
		MimeType: res.MimeType,
		Size:     res.Size,
	}, nil
}
