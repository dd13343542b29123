package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/lockdrop/lockdrop-server/internal/service"
	"github.com/lockdrop/lockdrop-server/internal/utils"
)

// Multipart bodies are parsed with a memory ceiling comfortably above the
// per-file limit times a realistic file count.
const maxUploadForm = 64 << 20 // 64 MB

type uploadDetails struct {
	FileCount    int    `json:"fileCount"`
	TotalSize    string `json:"totalSize"`
	ExpiresIn    string `json:"expiresIn"`
	TransferName string `json:"transferName"`
	DownloadHint string `json:"downloadHint"`
}

type uploadResponse struct {
	Success     bool          `json:"success"`
	Message     string        `json:"message"`
	DocumentID  string        `json:"documentId"`
	ShareableID string        `json:"shareableId"`
	Details     uploadDetails `json:"details"`
}

// POST /secure-file
// CreateSecureFile godoc
// @Summary Create a password-protected file transfer
// @Description Uploads one or more files (≤10 MiB each) with a password and recipient metadata, returning a shareable link id. The transfer expires after 7 days and allows at most 3 downloads.
// @Tags Transfers
// @Accept multipart/form-data
// @Produce json
// @Param password formData string true "Shared password for the recipient"
// @Param senderEmail formData string true "Sender email"
// @Param receiverEmail formData string true "Receiver email (must differ from sender)"
// @Param transferName formData string true "Display name of the transfer"
// @Param message formData string false "Optional message"
// @Param files formData file true "Files to share" style(form) explode(true)
// @Success 200 {object} uploadResponse
// @Failure 400 {object} utils.Payload
// @Failure 500 {object} utils.Payload
// @Router /secure-file [post]
func (h *Handler) CreateSecureFile(w http.ResponseWriter, r *http.Request) {
	if !h.storeReady {
		log.Println("Rejecting upload: store configuration incomplete")
		writeServiceError(w, service.ErrStoreUnavailable)
		return
	}

	if err := r.ParseMultipartForm(maxUploadForm); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid file upload form")
		return
	}

	req := service.UploadRequest{
		Password:      r.FormValue("password"),
		SenderEmail:   r.FormValue("senderEmail"),
		ReceiverEmail: r.FormValue("receiverEmail"),
		TransferName:  r.FormValue("transferName"),
		Message:       r.FormValue("message"),
	}

	for _, fh := range r.MultipartForm.File["files"] {
		fh := fh
		req.Files = append(req.Files, service.FileUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	result, err := h.uploads.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(uploadResponse{
		Success:     true,
		Message:     "Secure file transfer created successfully",
		DocumentID:  result.DocumentID,
		ShareableID: result.ShareableID,
		Details: uploadDetails{
			FileCount:    result.FileCount,
			TotalSize:    humanize.IBytes(uint64(result.TotalSize)),
			ExpiresIn:    "7 days",
			TransferName: result.TransferName,
			DownloadHint: "Files have been securely stored. The recipient will be notified.",
		},
	})
}
