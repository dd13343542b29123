package handlers

import (
	"errors"
	"net/http"

	"github.com/lockdrop/lockdrop-server/internal/service"
	"github.com/lockdrop/lockdrop-server/internal/utils"
)

// Handler owns the request handlers and their service dependencies. One
// instance is constructed in main and mounted by the router; nothing is
// shared through package state.
type Handler struct {
	uploads    *service.UploadService
	downloads  *service.DownloadService
	storeReady bool
}

func New(uploads *service.UploadService, downloads *service.DownloadService, storeReady bool) *Handler {
	return &Handler{
		uploads:    uploads,
		downloads:  downloads,
		storeReady: storeReady,
	}
}

// writeServiceError maps the service failure taxonomy onto HTTP statuses.
// The message field is surfaced verbatim by clients.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var validationErr *service.ValidationError
	var fetchErr *service.AssetFetchError
	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidPassword):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrExpired):
		status = http.StatusGone
	case errors.Is(err, service.ErrQuotaExceeded):
		status = http.StatusForbidden
	case errors.As(err, &fetchErr):
		status = http.StatusInternalServerError
	case errors.Is(err, service.ErrStoreUnavailable):
		status = http.StatusInternalServerError
	}

	utils.JSONError(w, status, err.Error())
}
