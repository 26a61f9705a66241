package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	cfg "github.com/draftwirehq/draftwire/configs"
	"github.com/draftwirehq/draftwire/internal/apperr"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// MediaService stores draft images and hands back the public URL a draft's
// image_url field can point at.
type MediaService interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type mediaService struct {
	cfg cfg.Config
	r2  R2Service
}

func NewMediaService(cfg cfg.Config, r2 R2Service) MediaService {
	return &mediaService{cfg: cfg, r2: r2}
}

func (s *mediaService) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	allowedTypes := map[string]struct{}{
		"jpg": {}, "jpeg": {}, "png": {}, "gif": {},
	}

	fileContent, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", apperr.ValidationRejected("unsupported file type")
	}
	if _, ok := allowedTypes[fileType.Extension]; !ok {
		return "", apperr.ValidationRejected(fmt.Sprintf("file type %s is not allowed", fileType.Extension))
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	if err := s.r2.UploadToR2(ctx, id, fileBytes, fileType.MIME.Value); err != nil {
		return "", fmt.Errorf("error uploading file: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.cfg.R2.PublicURL, id), nil
}
