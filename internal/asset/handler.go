// Package asset serves stored blobs back by name with correct content typing
// and immutable caching.
package asset

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salonio/imagestore/internal/logger"
	"github.com/salonio/imagestore/internal/response"
	"github.com/salonio/imagestore/internal/storage"
)

// cacheControl marks assets as content-addressed: a name, once written, is
// never bound to different bytes, so clients may cache forever.
const cacheControl = "public, max-age=31536000, immutable"

// Handler holds the HTTP handler for asset retrieval.
type Handler struct {
	store storage.Storage
	log   *logger.Logger
}

// NewHandler creates a new asset Handler.
func NewHandler(store storage.Storage, log *logger.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Get handles GET /uploads/{name}. The name is a raw client-supplied string;
// the storage layer canonicalizes it and refuses anything resolving outside
// the root. Missing, invalid, and unreadable all answer 404 so filesystem
// detail never leaks.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rc, err := h.store.Open(r.Context(), name)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			h.log.Error().Err(err).Str("name", name).Msg("asset read failed")
		}
		response.NotFound(w, "not found")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", ContentTypeFor(name))
	w.Header().Set("Cache-Control", cacheControl)
	if _, err := io.Copy(w, rc); err != nil {
		// Headers are gone; nothing to do but log the broken transfer.
		h.log.Warn().Err(err).Str("name", name).Msg("asset write interrupted")
	}
}
