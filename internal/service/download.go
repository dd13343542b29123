package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zip"
	"golang.org/x/sync/errgroup"

	"github.com/lockdrop/lockdrop-server/internal/models"
	"github.com/lockdrop/lockdrop-server/internal/repositories"
)

// TransferStore is the record half of the asset store as the download path
// sees it.
type TransferStore interface {
	GetByID(ctx context.Context, id string) (*models.Transfer, error)
	// RecordDownload atomically advances the counter while it is below the
	// ceiling and returns the new value, or repositories.ErrQuotaExceeded.
	RecordDownload(ctx context.Context, id string, now time.Time) (int, error)
}

// BlobStore is the binary half: asset bytes by storage key.
type BlobStore interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// Archive is an assembled zip ready to be written to a response.
type Archive struct {
	Name          string // zip filename without the .zip suffix
	Data          []byte
	FileCount     int
	DownloadCount int // counter value after this download
}

// FileInfo is the per-file listing of the info projection.
type FileInfo struct {
	Title            string `json:"title"`
	Size             int64  `json:"size"`
	FormattedSize    string `json:"formattedSize"`
	MimeType         string `json:"mimeType"`
	OriginalFilename string `json:"originalFilename"`
}

// TransferInfo is the read-only projection returned to the download page
// before the recipient submits a password.
type TransferInfo struct {
	ID            string     `json:"id"`
	TransferName  string     `json:"transferName"`
	SenderEmail   string     `json:"senderEmail"`
	ReceiverEmail string     `json:"receiverEmail"`
	FileCount     int        `json:"fileCount"`
	TotalSize     int64      `json:"totalSize"`
	FormattedSize string     `json:"formattedSize"`
	TransferDate  time.Time  `json:"transferDate"`
	ExpiresAt     time.Time  `json:"expiresAt"`
	DownloadCount int        `json:"downloadCount"`
	Files         []FileInfo `json:"files"`
}

// DownloadService authorizes download links and assembles zip archives from
// remotely stored assets.
type DownloadService struct {
	transfers TransferStore
	blobs     BlobStore
	now       func() time.Time
}

func NewDownloadService(transfers TransferStore, blobs BlobStore) *DownloadService {
	return &DownloadService{
		transfers: transfers,
		blobs:     blobs,
		now:       time.Now,
	}
}

// Download runs the authorization gates in strict order — existence, secret,
// expiry, quota — then assembles the archive and advances the counter. Each
// gate short-circuits the rest.
//
// The counter patch commits before the archive is returned
// (increment-then-return): a crash between the patch and the response loses
// one archive delivery, never a quota slot. The patch is conditional at the
// store, so two racing calls cannot push the counter past the ceiling — the
// loser gets ErrQuotaExceeded even though its pre-check passed.
func (s *DownloadService) Download(ctx context.Context, id, password string) (*Archive, error) {
	transfer, err := s.transfers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// The secret check comes before expiry on this path. The info path has
	// no secret check and gates expiry first; the two policies are distinct
	// on purpose.
	if password != transfer.Password {
		return nil, ErrInvalidPassword
	}

	if transfer.Expired(s.now()) {
		return nil, ErrExpired
	}

	if transfer.DownloadCount >= models.MaxDownloads {
		return nil, ErrQuotaExceeded
	}

	data, err := s.assembleArchive(ctx, transfer)
	if err != nil {
		return nil, err
	}

	newCount, err := s.transfers.RecordDownload(ctx, id, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrQuotaExceeded) {
			return nil, ErrQuotaExceeded
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	name := transfer.TransferName
	if name == "" {
		name = "secure-files"
	}

	return &Archive{
		Name:          name,
		Data:          data,
		FileCount:     len(transfer.Files),
		DownloadCount: newCount,
	}, nil
}

// assembleArchive fetches every asset concurrently and zips the bodies in
// manifest order. Any failing fetch cancels the rest and aborts the whole
// assembly; an entry without an asset reference aborts as well, so the
// archive's entry count always equals the manifest's.
func (s *DownloadService) assembleArchive(ctx context.Context, transfer *models.Transfer) ([]byte, error) {
	files := transfer.Files
	bodies := make([][]byte, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i := range files {
		f := &files[i]
		if f.ObjectKey == "" {
			log.Printf("transfer %s: file %q missing asset reference", transfer.ID, f.Title)
			return nil, &AssetFetchError{Name: archiveEntryName(f)}
		}
		idx := i
		g.Go(func() error {
			data, err := s.blobs.Fetch(gctx, f.ObjectKey)
			if err != nil {
				return &AssetFetchError{Name: archiveEntryName(f), Err: err}
			}
			bodies[idx] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i := range files {
		f := &files[i]
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     archiveEntryName(f),
			Method:   zip.Deflate,
			Modified: s.now(),
		})
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(w, bytes.NewReader(bodies[i])); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Info returns the read-only projection of a transfer. Gates: existence,
// then expiry, then quota — no secret check, and nothing mutates. The total
// size is recomputed from the per-entry resolved sizes rather than trusted
// from the cached column.
func (s *DownloadService) Info(ctx context.Context, id string) (*TransferInfo, error) {
	transfer, err := s.transfers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if transfer.Expired(s.now()) {
		return nil, ErrExpired
	}

	if transfer.DownloadCount >= models.MaxDownloads {
		return nil, ErrQuotaExceeded
	}

	var totalSize int64
	files := make([]FileInfo, 0, len(transfer.Files))
	for i := range transfer.Files {
		f := &transfer.Files[i]
		size := f.ResolvedSize()
		totalSize += size

		mimeType := f.ContentType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}

		files = append(files, FileInfo{
			Title:            f.Title,
			Size:             size,
			FormattedSize:    humanize.IBytes(uint64(size)),
			MimeType:         mimeType,
			OriginalFilename: f.OriginalFilename,
		})
	}

	return &TransferInfo{
		ID:            transfer.ID.String(),
		TransferName:  transfer.TransferName,
		SenderEmail:   transfer.SenderEmail,
		ReceiverEmail: transfer.ReceiverEmail,
		FileCount:     transfer.FileCount,
		TotalSize:     totalSize,
		FormattedSize: humanize.IBytes(uint64(totalSize)),
		TransferDate:  transfer.CreatedAt,
		ExpiresAt:     transfer.ExpiresAt,
		DownloadCount: transfer.DownloadCount,
		Files:         files,
	}, nil
}
