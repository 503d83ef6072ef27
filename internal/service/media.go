package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sriaruvi/storefront/internal/imaging"
	"github.com/sriaruvi/storefront/internal/storage"
	apperrors "github.com/sriaruvi/storefront/pkg/errors"
)

// MediaService turns admin-supplied images into previews and, at submit time,
// materializes embedded previews as uploaded objects with public URLs.
type MediaService struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewMediaService creates a new media service.
func NewMediaService(store storage.Storage, logger *slog.Logger) *MediaService {
	return &MediaService{
		storage: store,
		logger:  logger,
	}
}

// Previews runs the accept phase over a batch of candidate files: non-images
// are skipped silently, accepted images are downsampled and re-encoded, and
// the list is capped at max entries counting the existing previews.
func (s *MediaService) Previews(files []imaging.File, current []string, max int) []string {
	return imaging.Accept(files, current, max, nil)
}

// generateObjectKey builds a timestamped, collision-resistant object name.
func generateObjectKey() string {
	return fmt.Sprintf("%d-%s.jpg", time.Now().UnixNano(), uuid.New().String())
}

// Materialize converts every embedded preview into an uploaded object and
// collects the public URLs in input order. Entries that are already remote
// URLs pass through unchanged. Individual upload failures are logged and
// skipped; the submission only fails when no URL survives at all.
func (s *MediaService) Materialize(ctx context.Context, previews []string) ([]string, error) {
	urls := make([]string, 0, len(previews))

	for i, preview := range previews {
		if !imaging.IsDataURI(preview) {
			urls = append(urls, preview)
			continue
		}

		data, err := imaging.DecodeDataURI(preview)
		if err != nil {
			s.logger.ErrorContext(ctx, "skipping undecodable preview",
				slog.Int("index", i),
				slog.String("error", err.Error()),
			)
			continue
		}

		key := generateObjectKey()
		result, err := s.storage.Upload(ctx, &storage.UploadInput{
			Key:         key,
			ContentType: "image/jpeg",
			Size:        int64(len(data)),
			Data:        bytes.NewReader(data),
		})
		if err != nil {
			s.logger.ErrorContext(ctx, "image upload failed, continuing with remaining images",
				slog.Int("index", i),
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}

		urls = append(urls, result.URL)
	}

	if len(urls) == 0 {
		return nil, apperrors.InvalidInput("all image uploads failed")
	}

	return urls, nil
}

// Cleanup best-effort deletes the stored objects behind the given URLs.
// Remote URLs not owned by this storage (no recognizable key) are ignored,
// and individual delete failures are logged, never surfaced.
func (s *MediaService) Cleanup(ctx context.Context, urls []string) {
	for _, u := range urls {
		idx := strings.LastIndex(u, "/")
		if idx < 0 || idx == len(u)-1 {
			continue
		}
		key := u[idx+1:]

		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to delete stored image",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}
}
