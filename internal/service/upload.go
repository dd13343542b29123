package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lockdrop/lockdrop-server/internal/models"
	"github.com/lockdrop/lockdrop-server/internal/utils"
)

const (
	// MaxFileSize is the per-file upload ceiling.
	MaxFileSize = 10 << 20 // 10 MiB

	// ExpiryWindow is the fixed validity of every transfer.
	ExpiryWindow = 7 * 24 * time.Hour

	uploadAttempts   = 3
	uploadRetryDelay = time.Second // multiplied by the attempt number
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FileUpload is one incoming file of a multipart submission. Open hands back
// a fresh reader so retries can restart from the beginning.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadRequest carries the validated-on-entry fields of POST /secure-file.
type UploadRequest struct {
	Password      string
	SenderEmail   string
	ReceiverEmail string
	TransferName  string
	Message       string
	Files         []FileUpload
}

// UploadResult reports the created record.
type UploadResult struct {
	DocumentID   string
	ShareableID  string
	FileCount    int
	TotalSize    int64
	TransferName string
	ExpiresAt    time.Time
}

// TransferCreator is the record half of the asset store as the upload path
// sees it.
type TransferCreator interface {
	Create(ctx context.Context, transfer *models.Transfer) error
}

// BlobUploader stores asset bytes under a key.
type BlobUploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
}

// UploadService validates submissions, pushes files to the blob store with
// bounded retry, and creates the transfer record.
type UploadService struct {
	transfers TransferCreator
	blobs     BlobUploader
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewUploadService(transfers TransferCreator, blobs BlobUploader) *UploadService {
	return &UploadService{
		transfers: transfers,
		blobs:     blobs,
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

// Create runs the full upload workflow. Validation happens before any byte
// reaches the store; the record is written only after every file uploaded.
func (s *UploadService) Create(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	entries := make([]models.File, len(req.Files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range req.Files {
		idx, file := i, f
		g.Go(func() error {
			key, err := s.uploadWithRetry(gctx, file)
			if err != nil {
				return err
			}
			entries[idx] = models.File{
				Index:            idx,
				Title:            file.Filename,
				Size:             file.Size,
				ObjectKey:        key,
				OriginalFilename: file.Filename,
				ContentType:      contentTypeOr(file.ContentType),
				ObjectSize:       file.Size,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var totalSize int64
	for _, f := range req.Files {
		totalSize += f.Size
	}

	now := s.now()
	transfer := &models.Transfer{
		Password:      req.Password,
		SenderEmail:   req.SenderEmail,
		ReceiverEmail: req.ReceiverEmail,
		TransferName:  req.TransferName,
		Message:       req.Message,
		FileCount:     len(req.Files),
		TotalSize:     totalSize,
		ExpiresAt:     now.Add(ExpiryWindow),
		DownloadCount: 0,
		Status:        "pending",
		Files:         entries,
	}

	if err := s.transfers.Create(ctx, transfer); err != nil {
		return nil, fmt.Errorf("create transfer record: %w", err)
	}

	return &UploadResult{
		DocumentID:   transfer.ID.String(),
		ShareableID:  utils.ShareableID(transfer.ID.String()),
		FileCount:    transfer.FileCount,
		TotalSize:    transfer.TotalSize,
		TransferName: transfer.TransferName,
		ExpiresAt:    transfer.ExpiresAt,
	}, nil
}

// uploadWithRetry pushes one file to the blob store, retrying up to three
// attempts with a linearly growing delay (base × attempt number).
func (s *UploadService) uploadWithRetry(ctx context.Context, file FileUpload) (string, error) {
	key := uuid.New().String() + "_" + cleanFilename(file.Filename)

	var lastErr error
	for attempt := 1; attempt <= uploadAttempts; attempt++ {
		src, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open %q: %w", file.Filename, err)
		}
		err = s.blobs.Upload(ctx, key, contentTypeOr(file.ContentType), src)
		src.Close()
		if err == nil {
			return key, nil
		}
		lastErr = err
		log.Printf("attempt %d failed for %s: %v", attempt, file.Filename, err)

		if attempt < uploadAttempts {
			if err := s.sleep(ctx, uploadRetryDelay*time.Duration(attempt)); err != nil {
				return "", err
			}
		}
	}
	return "", fmt.Errorf("failed to upload %s after %d attempts: %w", file.Filename, uploadAttempts, lastErr)
}

func validateRequest(req UploadRequest) error {
	var missing []string
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if req.SenderEmail == "" {
		missing = append(missing, "senderEmail")
	}
	if req.ReceiverEmail == "" {
		missing = append(missing, "receiverEmail")
	}
	if req.TransferName == "" {
		missing = append(missing, "transferName")
	}
	if len(missing) > 0 {
		return &ValidationError{Detail: "Missing required fields: " + strings.Join(missing, ", ")}
	}

	if strings.EqualFold(req.SenderEmail, req.ReceiverEmail) {
		return &ValidationError{Detail: "Sender and receiver emails cannot be the same"}
	}
	if !emailRegex.MatchString(req.SenderEmail) {
		return &ValidationError{Detail: "Please provide a valid sender email address"}
	}
	if !emailRegex.MatchString(req.ReceiverEmail) {
		return &ValidationError{Detail: "Please provide a valid receiver email address"}
	}

	if len(req.Files) == 0 {
		return &ValidationError{Detail: "Please select at least one file to upload"}
	}

	var oversized []string
	for _, f := range req.Files {
		if f.Size > MaxFileSize {
			oversized = append(oversized, f.Filename)
		}
	}
	if len(oversized) > 0 {
		return &ValidationError{Detail: "The following files exceed 10MB: " + strings.Join(oversized, ", ")}
	}

	return nil
}

func contentTypeOr(ct string) string {
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

// cleanFilename strips any path components a client sneaks into the
// filename before it becomes part of a storage key.
func cleanFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "file"
	}
	return name
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
