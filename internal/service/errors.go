package service

import (
	"errors"
	"fmt"
)

// Failure taxonomy for the transfer workflows. Handlers map these onto HTTP
// statuses; everything else surfaces as a 500.
var (
	// ErrNotFound — no transfer exists for the link id.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidPassword — the submitted password does not match the
	// transfer's stored secret.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrExpired — the transfer is past its expiry timestamp.
	ErrExpired = errors.New("file has expired")

	// ErrQuotaExceeded — the download counter is at the ceiling.
	ErrQuotaExceeded = errors.New("maximum download limit reached (3 downloads)")

	// ErrStoreUnavailable — the backing store is misconfigured or
	// unreachable before any work was attempted.
	ErrStoreUnavailable = errors.New("server configuration error")
)

// ValidationError rejects a malformed upload request before any file bytes
// reach the store.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// AssetFetchError aborts an archive assembly: one of the manifest's assets
// could not be retrieved (or has no asset reference at all). Partial
// archives are never returned.
type AssetFetchError struct {
	Name string // display name of the failing entry
	Err  error  // nil when the entry simply has no asset reference
}

func (e *AssetFetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("file %q has no stored asset", e.Name)
	}
	return fmt.Sprintf("failed to download file %q: %v", e.Name, e.Err)
}

func (e *AssetFetchError) Unwrap() error {
	return e.Err
}
