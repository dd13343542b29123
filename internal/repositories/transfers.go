package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/lockdrop/lockdrop-server/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no transfer exists for the given id.
var ErrNotFound = errors.New("transfer not found")

// ErrQuotaExceeded is returned by RecordDownload when the counter is already
// at the ceiling, including the case where a concurrent download consumed the
// last slot after the caller's read.
var ErrQuotaExceeded = errors.New("download quota exceeded")

// TransferRepository persists transfer records in Postgres.
type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// Create stores the transfer and its file entries in one transaction, so the
// record is never visible half-written.
func (r *TransferRepository) Create(ctx context.Context, transfer *models.Transfer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(transfer).Error
	})
}

// GetByID fetches a transfer with its file entries in manifest order.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*models.Transfer, error) {
	var transfer models.Transfer
	err := r.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("files.index ASC")
		}).
		Where("id = ?", id).
		First(&transfer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &transfer, nil
}

// RecordDownload advances the download counter by one as a single
// conditional update: the row changes only while the counter is below the
// ceiling, which closes the check-then-increment race between concurrent
// downloads of the same link. Returns the new counter value.
func (r *TransferRepository) RecordDownload(ctx context.Context, id string, now time.Time) (int, error) {
	res := r.db.WithContext(ctx).Model(&models.Transfer{}).
		Where("id = ? AND download_count < ?", id, models.MaxDownloads).
		Updates(map[string]interface{}{
			"download_count":     gorm.Expr("download_count + 1"),
			"is_downloaded":      gorm.Expr("download_count + 1 >= ?", models.MaxDownloads),
			"last_downloaded_at": now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the row is gone or another request took the last slot.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Transfer{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return 0, ErrNotFound
		}
		return 0, ErrQuotaExceeded
	}

	var transfer models.Transfer
	if err := r.db.WithContext(ctx).Select("download_count").Where("id = ?", id).First(&transfer).Error; err != nil {
		return 0, err
	}
	return transfer.DownloadCount, nil
}
