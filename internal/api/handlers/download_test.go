package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"

	"github.com/lockdrop/lockdrop-server/internal/models"
	"github.com/lockdrop/lockdrop-server/internal/repositories"
	"github.com/lockdrop/lockdrop-server/internal/service"
)

// The handlers sit on real services over in-memory store fakes; only the
// store boundary is faked.

type stubTransferStore struct {
	transfer *models.Transfer
}

func (s *stubTransferStore) GetByID(_ context.Context, id string) (*models.Transfer, error) {
	if s.transfer == nil || s.transfer.ID.String() != id {
		return nil, repositories.ErrNotFound
	}
	snapshot := *s.transfer
	return &snapshot, nil
}

func (s *stubTransferStore) RecordDownload(_ context.Context, _ string, now time.Time) (int, error) {
	if s.transfer.DownloadCount >= models.MaxDownloads {
		return 0, repositories.ErrQuotaExceeded
	}
	s.transfer.DownloadCount++
	s.transfer.LastDownloadedAt = &now
	return s.transfer.DownloadCount, nil
}

func (s *stubTransferStore) Create(_ context.Context, transfer *models.Transfer) error {
	transfer.ID = uuid.New()
	s.transfer = transfer
	return nil
}

type stubBlobStore struct {
	objects map[string][]byte
}

func (s *stubBlobStore) Fetch(_ context.Context, key string) ([]byte, error) {
	return s.objects[key], nil
}

func (s *stubBlobStore) Upload(_ context.Context, key, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = data
	return nil
}

func newTestHandler(store *stubTransferStore, blobs *stubBlobStore) *Handler {
	return New(
		service.NewUploadService(store, blobs),
		service.NewDownloadService(store, blobs),
		true,
	)
}

func seedTransfer() (*stubTransferStore, *stubBlobStore) {
	id := uuid.New()
	store := &stubTransferStore{transfer: &models.Transfer{
		ID:            id,
		Password:      "hunter2",
		SenderEmail:   "alice@example.com",
		ReceiverEmail: "bob@example.com",
		TransferName:  "tax docs",
		FileCount:     1,
		TotalSize:     9,
		CreatedAt:     time.Now().Add(-time.Hour),
		ExpiresAt:     time.Now().Add(24 * time.Hour),
		Status:        "pending",
		Files: []models.File{
			{TransferID: id, Index: 0, Title: "w2.pdf", Size: 9, ObjectKey: "k1", OriginalFilename: "w2.pdf", ContentType: "application/pdf"},
		},
	}}
	blobs := &stubBlobStore{objects: map[string][]byte{"k1": []byte("pdf bytes")}}
	return store, blobs
}

func downloadReq(id, password string) *http.Request {
	body := bytes.NewBufferString(`{"password":"` + password + `"}`)
	r := httptest.NewRequest(http.MethodPost, "/download/"+id, body)
	r.SetPathValue("id", id)
	return r
}

func TestDownloadArchive_Success(t *testing.T) {
	store, blobs := seedTransfer()
	h := newTestHandler(store, blobs)

	rec := httptest.NewRecorder()
	h.DownloadArchive(rec, downloadReq(store.transfer.ID.String(), "hunter2"))

	resp := rec.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", resp.StatusCode, rec.Body.String())
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/zip" {
		t.Errorf("Content-Type = %q, want application/zip", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="tax%20docs.zip"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-cache, no-store, must-revalidate" {
		t.Errorf("Cache-Control = %q", cc)
	}
	if resp.Header.Get("Content-Length") == "" {
		t.Errorf("Content-Length missing")
	}

	data, _ := io.ReadAll(resp.Body)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != "w2.pdf" {
		t.Errorf("unexpected archive contents: %v", zr.File)
	}

	if store.transfer.DownloadCount != 1 {
		t.Errorf("counter = %d, want 1", store.transfer.DownloadCount)
	}
}

func TestDownloadArchive_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		prepare    func(store *stubTransferStore) (id, password string)
		wantStatus int
	}{
		{
			name: "wrong password",
			prepare: func(store *stubTransferStore) (string, string) {
				return store.transfer.ID.String(), "wrong"
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown id",
			prepare: func(_ *stubTransferStore) (string, string) {
				return uuid.NewString(), "hunter2"
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "expired",
			prepare: func(store *stubTransferStore) (string, string) {
				store.transfer.ExpiresAt = time.Now().Add(-time.Minute)
				return store.transfer.ID.String(), "hunter2"
			},
			wantStatus: http.StatusGone,
		},
		{
			name: "quota exhausted",
			prepare: func(store *stubTransferStore) (string, string) {
				store.transfer.DownloadCount = models.MaxDownloads
				return store.transfer.ID.String(), "hunter2"
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, blobs := seedTransfer()
			h := newTestHandler(store, blobs)

			id, password := tt.prepare(store)
			rec := httptest.NewRecorder()
			h.DownloadArchive(rec, downloadReq(id, password))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var payload struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("error body not JSON: %v", err)
			}
			if payload.Success {
				t.Errorf("success = true in error body")
			}
			if payload.Message == "" {
				t.Errorf("empty error message")
			}
		})
	}
}

func TestDownloadArchive_MissingPassword(t *testing.T) {
	store, blobs := seedTransfer()
	h := newTestHandler(store, blobs)

	r := httptest.NewRequest(http.MethodPost, "/download/x", strings.NewReader(`{}`))
	r.SetPathValue("id", store.transfer.ID.String())
	rec := httptest.NewRecorder()
	h.DownloadArchive(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if store.transfer.DownloadCount != 0 {
		t.Errorf("counter advanced without a password")
	}
}

func TestTransferInfo_Success(t *testing.T) {
	store, blobs := seedTransfer()
	h := newTestHandler(store, blobs)
	id := store.transfer.ID.String()

	r := httptest.NewRequest(http.MethodGet, "/download/"+id+"/info", nil)
	r.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.TransferInfo(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Success          bool   `json:"success"`
		ID               string `json:"id"`
		TransferName     string `json:"transferName"`
		FileCount        int    `json:"fileCount"`
		FormattedSize    string `json:"formattedSize"`
		RequiresPassword bool   `json:"requiresPassword"`
		DownloadURL      string `json:"downloadUrl"`
		Files            []struct {
			Title    string `json:"title"`
			MimeType string `json:"mimeType"`
		} `json:"files"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if !body.Success || !body.RequiresPassword {
		t.Errorf("success/requiresPassword flags wrong: %+v", body)
	}
	if body.ID != id {
		t.Errorf("id = %q, want %q", body.ID, id)
	}
	if body.DownloadURL != "/download/"+id {
		t.Errorf("downloadUrl = %q", body.DownloadURL)
	}
	if body.FileCount != 1 || len(body.Files) != 1 {
		t.Errorf("file listing wrong: %+v", body)
	}
	if body.Files[0].MimeType != "application/pdf" {
		t.Errorf("mimeType = %q", body.Files[0].MimeType)
	}
	if body.FormattedSize == "" {
		t.Errorf("formattedSize empty")
	}
	if store.transfer.DownloadCount != 0 {
		t.Errorf("info mutated the counter")
	}
}

func TestTransferInfo_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		prepare    func(store *stubTransferStore) string
		wantStatus int
	}{
		{
			name:       "unknown id",
			prepare:    func(_ *stubTransferStore) string { return uuid.NewString() },
			wantStatus: http.StatusNotFound,
		},
		{
			name: "expired",
			prepare: func(store *stubTransferStore) string {
				store.transfer.ExpiresAt = time.Now().Add(-time.Minute)
				return store.transfer.ID.String()
			},
			wantStatus: http.StatusGone,
		},
		{
			name: "quota exhausted",
			prepare: func(store *stubTransferStore) string {
				store.transfer.DownloadCount = models.MaxDownloads
				return store.transfer.ID.String()
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, blobs := seedTransfer()
			h := newTestHandler(store, blobs)

			id := tt.prepare(store)
			r := httptest.NewRequest(http.MethodGet, "/download/"+id+"/info", nil)
			r.SetPathValue("id", id)
			rec := httptest.NewRecorder()
			h.TransferInfo(rec, r)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
