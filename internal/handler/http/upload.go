package http

import (
	"log/slog"
	"net/http"

	"github.com/sriaruvi/storefront/internal/domain"
	"github.com/sriaruvi/storefront/internal/imaging"
	"github.com/sriaruvi/storefront/internal/service"
	apperrors "github.com/sriaruvi/storefront/pkg/errors"
	"github.com/sriaruvi/storefront/pkg/httputil"
)

// UploadHandler handles the admin preview endpoint: candidate files go in as
// multipart uploads, compressed JPEG previews come back as data URIs.
type UploadHandler struct {
	media          *service.MediaService
	maxImages      int
	maxKitchen     int
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewUploadHandler creates a new upload HTTP handler.
func NewUploadHandler(media *service.MediaService, maxImages, maxKitchen int, maxUploadBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		media:          media,
		maxImages:      maxImages,
		maxKitchen:     maxKitchen,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// PreviewsResponse is the result of an accept batch.
type PreviewsResponse struct {
	Previews []string `json:"previews"`
	Accepted int      `json:"accepted"`
	Skipped  int      `json:"skipped"`
}

// Previews handles POST /api/v1/admin/uploads/previews.
//
// The multipart form carries candidate files under "files", previously
// accepted previews under repeated "existing" fields, and an optional
// "section". Kitchen products carry a tighter image cap than the rest.
func (h *UploadHandler) Previews(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	// Files spill to disk past 8MB rather than ballooning memory.
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid multipart form: "+err.Error()), h.logger)
		return
	}
	defer r.MultipartForm.RemoveAll()

	existing := r.MultipartForm.Value["existing"]

	max := h.maxImages
	if r.FormValue("section") == domain.SectionKitchen {
		max = h.maxKitchen
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		httputil.WriteError(w, r, apperrors.InvalidInput("no files provided"), h.logger)
		return
	}

	files := make([]imaging.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			h.logger.WarnContext(r.Context(), "failed to open uploaded file",
				slog.String("filename", fh.Filename),
				slog.String("error", err.Error()),
			)
			continue
		}
		defer f.Close()
		files = append(files, imaging.File{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        f,
		})
	}

	previews := h.media.Previews(files, existing, max)

	accepted := len(previews) - len(existing)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: PreviewsResponse{
		Previews: previews,
		Accepted: accepted,
		Skipped:  len(headers) - accepted,
	}})
}
