package upload

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/salonio/imagestore/internal/logger"
	"github.com/salonio/imagestore/internal/response"
)

// FieldName is the repeatable multipart form field carrying the files.
const FieldName = "images"

// parseMemoryLimit is how much of the multipart body is held in memory
// before the runtime spills parts to temp files.
const parseMemoryLimit = 32 << 20

// UploadResponse is the success body of POST /uploads.
type UploadResponse struct {
	Success bool          `json:"success"`
	Images  []StoredImage `json:"images"`
	Message string        `json:"message"`
}

// Handler holds the HTTP handler for the upload endpoint.
type Handler struct {
	svc     *Service
	maxBody int64
	log     *logger.Logger
}

// NewHandler creates a new upload Handler. maxBody bounds the whole request
// body; per-file limits are the service's concern.
func NewHandler(svc *Service, maxBody int64, log *logger.Logger) *Handler {
	return &Handler{svc: svc, maxBody: maxBody, log: log}
}

// Upload handles POST /uploads: a multipart form with one or more files under
// the "images" field. The batch is atomic — either every file is persisted
// and reported, or the request fails and the namespace gains nothing.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)

	if err := r.ParseMultipartForm(parseMemoryLimit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		response.BadRequest(w, "malformed multipart request")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	headers := r.MultipartForm.File[FieldName]
	if len(headers) == 0 {
		response.BadRequest(w, "no files provided")
		return
	}

	files := make([]File, len(headers))
	for i, fh := range headers {
		files[i] = File{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		}
	}

	images, err := h.svc.Store(r.Context(), files)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			response.ValidationFailed(w, "validation failed", verr.Result.Details())
			return
		}
		h.log.Error().Err(err).Int("files", len(files)).Msg("upload batch failed")
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Images:  images,
		Message: fmt.Sprintf("successfully uploaded %d image(s)", len(images)),
	})
}
