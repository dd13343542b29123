package service

import (
	"strings"

	"github.com/lockdrop/lockdrop-server/internal/models"
)

// Extensions for the content types the product supports. A fixed table keeps
// archive entry names deterministic across platforms, which the stdlib mime
// package does not guarantee.
var mimeExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/svg+xml":   ".svg",
	"application/pdf": ".pdf",
	"text/plain":      ".txt",
	"text/csv":        ".csv",
	"text/html":       ".html",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
	"application/vnd.ms-excel": ".xls",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
	"application/vnd.ms-powerpoint":                                     ".ppt",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
	"application/zip":             ".zip",
	"application/x-rar-compressed": ".rar",
	"application/x-7z-compressed":  ".7z",
	"audio/mpeg":      ".mp3",
	"audio/wav":       ".wav",
	"video/mp4":       ".mp4",
	"video/mpeg":      ".mpeg",
	"application/json": ".json",
	"application/xml":  ".xml",
}

func extensionForMimeType(mimeType string) string {
	return mimeExtensions[strings.ToLower(mimeType)]
}

// archiveEntryName derives the name a manifest entry gets inside the zip:
// the entry title if present, else the asset's original filename, else
// "file"; the content type's conventional extension is appended unless the
// name already carries it.
func archiveEntryName(f *models.File) string {
	name := f.Title
	if name == "" {
		name = f.OriginalFilename
	}
	if name == "" {
		name = "file"
	}
	if ext := extensionForMimeType(f.ContentType); ext != "" && !strings.HasSuffix(name, ext) {
		name += ext
	}
	return name
}
