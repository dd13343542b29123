package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lockdrop/lockdrop-server/internal/service"
	"github.com/lockdrop/lockdrop-server/internal/utils"
)

type downloadRequest struct {
	Password string `json:"password"`
}

type infoResponse struct {
	Success bool `json:"success"`
	*service.TransferInfo
	RequiresPassword bool   `json:"requiresPassword"`
	DownloadURL      string `json:"downloadUrl"`
}

// GET /download/{id}/info
// TransferInfo godoc
// @Summary Retrieve transfer metadata for the download page
// @Description Returns the transfer's display metadata and file listing without requiring the password. Never counts against the download quota.
// @Tags Download
// @Produce json
// @Param id path string true "Transfer id"
// @Success 200 {object} infoResponse
// @Failure 400 {object} utils.Payload "Missing id"
// @Failure 403 {object} utils.Payload "Download quota exhausted"
// @Failure 404 {object} utils.Payload "Unknown transfer"
// @Failure 410 {object} utils.Payload "Transfer expired"
// @Router /download/{id}/info [get]
func (h *Handler) TransferInfo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.JSONError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	info, err := h.downloads.Info(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(infoResponse{
		Success:          true,
		TransferInfo:     info,
		RequiresPassword: true,
		DownloadURL:      "/download/" + id,
	})
}

// POST /download/{id}
// DownloadArchive godoc
// @Summary Download a transfer as a zip archive
// @Description Checks the password against the transfer's secret and, within the expiry window and download quota, streams back a zip of all files.
// @Tags Download
// @Accept json
// @Produce application/zip
// @Param id path string true "Transfer id"
// @Param request body downloadRequest true "Transfer password"
// @Success 200 {file} binary "Zip archive"
// @Failure 400 {object} utils.Payload "Missing id or password"
// @Failure 401 {object} utils.Payload "Wrong password"
// @Failure 403 {object} utils.Payload "Download quota exhausted"
// @Failure 404 {object} utils.Payload "Unknown transfer"
// @Failure 410 {object} utils.Payload "Transfer expired"
// @Failure 500 {object} utils.Payload "Asset fetch or archive failure"
// @Router /download/{id} [post]
func (h *Handler) DownloadArchive(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.JSONError(w, http.StatusBadRequest, "Document ID is required")
		return
	}

	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Password is required")
		return
	}

	archive, err := h.downloads.Download(r.Context(), id, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+url.PathEscape(archive.Name)+`.zip"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(archive.Data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive.Data)
}
