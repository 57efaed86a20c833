package storage

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	errors "github.com/opencivic/civic-reporter/internal"
	"github.com/opencivic/civic-reporter/internal/transport"
)

// Handler serves the photo upload endpoint. store is the configured
// backend; fallback is always the inline encoder, used when the bucket
// write fails so an unavailable storage provider degrades the upload
// rather than failing it.
type Handler struct {
	*transport.BaseHandler
	store    PhotoStore
	fallback PhotoStore
	maxBytes int64
}

func NewHandler(baseHandler *transport.BaseHandler, store PhotoStore, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	return &Handler{
		BaseHandler: baseHandler,
		store:       store,
		fallback:    NewInlineStore(),
		maxBytes:    maxBytes,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+4096)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		h.Logger.Error("UploadPhoto: failed to parse multipart form", "error", err)
		h.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Photo exceeds maximum size of %d bytes", h.maxBytes))
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, errors.NewMissingFieldError("photo").Message)
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		h.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Photo exceeds maximum size of %d bytes", h.maxBytes))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.Logger.Error("UploadPhoto: failed to read photo", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "Failed to read uploaded photo")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	key := uuid.NewString()
	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != "" {
		key += ext
	}

	url, err := h.store.Put(r.Context(), key, contentType, data)
	if err != nil {
		// degrade to inline encoding rather than failing the upload
		h.Logger.Warn("UploadPhoto: storage backend failed, falling back to inline encoding",
			"error", err, "key", key, "size", len(data))
		url, err = h.fallback.Put(r.Context(), key, contentType, data)
		if err != nil {
			h.HandleServiceError(w, errors.NewInternalError("Failed to store photo", err))
			return
		}
	}

	h.Logger.Info("photo uploaded", "key", key, "size", len(data), "content_type", contentType)
	h.WriteJSON(w, http.StatusCreated, uploadResponse{URL: url})
}
