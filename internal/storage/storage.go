// Package storage persists uploaded blobs in a flat, write-once key space.
// Swap implementations by changing the concrete type injected at startup —
// the disk backend stores under a local directory, the MinIO backend works
// with any S3-compatible provider.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no object exists under the requested key,
// or when the key itself is not a valid name. Callers must not be able to
// distinguish the two cases.
var ErrNotFound = errors.New("object not found")

// ErrKeyExists is returned by Save when the key is already taken. Keys are
// write-once: a name, once written, is never bound to different bytes.
var ErrKeyExists = errors.New("object key already exists")

// ErrInvalidKey is returned for keys that are empty or attempt to address
// anything outside the flat namespace.
var ErrInvalidKey = errors.New("invalid object key")

// Storage is the interface for writing and retrieving objects by key.
type Storage interface {
	// Save streams data to the store under the given key. Fails with
	// ErrKeyExists if the key is already taken; never overwrites.
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Open returns a reader for the object at key, or ErrNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Remove deletes the object at key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}

// ValidateKey rejects keys that could resolve outside the flat namespace:
// empty names, dot-prefixed names (dot entries, plus the disk backend's
// staging temp files), anything containing a path separator, and names whose
// cleaned form differs from the input (e.g. "../secret" after URL decoding).
// Invalid keys are indistinguishable from absent ones to clients.
func ValidateKey(key string) error {
	if key == "" || strings.HasPrefix(key, ".") {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return ErrInvalidKey
	}
	if filepath.Base(filepath.Clean(key)) != key {
		return ErrInvalidKey
	}
	return nil
}
