package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxDownloads is the per-transfer download ceiling. A fourth attempt is
// rejected server-side regardless of any client-side advisory counter.
const MaxDownloads = 3

// Transfer is one password-protected file-sharing transaction. All fields
// except the download bookkeeping (DownloadCount, IsDownloaded,
// LastDownloadedAt) are immutable after creation. Records are never deleted;
// expiry is enforced by timestamp comparison at read time.
type Transfer struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Password         string     `json:"-" gorm:"not null"` // plaintext shared secret, compared exactly
	SenderEmail      string     `json:"senderEmail" gorm:"not null"`
	ReceiverEmail    string     `json:"receiverEmail" gorm:"not null"`
	TransferName     string     `json:"transferName" gorm:"not null"`
	Message          string     `json:"message"`
	FileCount        int        `json:"fileCount" gorm:"not null"`
	TotalSize        int64      `json:"totalSize" gorm:"not null"` // bytes, cached from the manifest at creation
	CreatedAt        time.Time  `json:"transferDate" gorm:"autoCreateTime"`
	ExpiresAt        time.Time  `json:"expiresAt" gorm:"not null"`
	DownloadCount    int        `json:"downloadCount" gorm:"not null;default:0"`
	IsDownloaded     bool       `json:"isDownloaded" gorm:"default:false"`
	LastDownloadedAt *time.Time `json:"lastDownloadedAt"`
	Status           string     `json:"status" gorm:"default:'pending'"` // informational only
	Files            []File     `json:"files" gorm:"foreignKey:TransferID"` // one-to-many relation, ordered by Index
}

// Expired reports whether the transfer is past its expiry at the given time.
// The boundary is strict: a request at exactly ExpiresAt is already expired.
func (t *Transfer) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
