package models

import (
	"time"

	"github.com/google/uuid"
)

// File is one manifest entry of a transfer. Title and Size are the entry's
// display fields, cached at creation; the Object* fields describe the asset
// stored remotely under ObjectKey. An entry with an empty ObjectKey has no
// backing asset and can never be archived.
type File struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TransferID       uuid.UUID `json:"transferId" gorm:"type:uuid;index;not null"` // foreign key
	Index            int       `json:"index" gorm:"not null"`                      // per-transfer index (0,1,2…)
	Title            string    `json:"title"`
	Size             int64     `json:"size" gorm:"not null"` // bytes
	ObjectKey        string    `json:"-" gorm:"not null"`    // storage key of the asset
	OriginalFilename string    `json:"originalFilename"`
	ContentType      string    `json:"mimeType"`
	ObjectSize       int64     `json:"-"` // size reported by the store, 0 if unknown
	CreatedAt        time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// ResolvedSize prefers the store-reported asset size over the cached entry
// size, matching how the info projection recomputes totals.
func (f *File) ResolvedSize() int64 {
	if f.ObjectSize > 0 {
		return f.ObjectSize
	}
	return f.Size
}
