package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Disk implements Storage on a local directory. Each key maps to one file
// directly under the root; writes are staged to a temp file and linked into
// place so a key either holds the complete bytes or does not exist.
type Disk struct {
	root       string
	publicBase string
}

// NewDisk ensures root exists and returns a Disk rooted there. Creation is
// idempotent, so concurrent startups and redundant calls are safe.
func NewDisk(root, publicBase string) (*Disk, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root %q: %w", root, err)
	}
	return &Disk{
		root:       root,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// Save writes reader to a temp file in the root, then hard-links it to the
// final name. The link fails if the key is already taken, which is what
// enforces write-once; the temp file is removed either way.
func (d *Disk) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.root, ".stage-*")
	if err != nil {
		return fmt.Errorf("stage %q: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, reader)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	if size >= 0 && written != size {
		return fmt.Errorf("write %q: got %d bytes, declared %d", key, written, size)
	}

	if err := os.Link(tmp.Name(), filepath.Join(d.root, key)); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("commit %q: %w", key, ErrKeyExists)
		}
		return fmt.Errorf("commit %q: %w", key, err)
	}
	return nil
}

// Open returns the file stored under key. Every failure surfaces as
// ErrNotFound so clients cannot probe for permission errors or key validity.
func (d *Disk) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ValidateKey(key); err != nil {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(d.root, key))
	if err != nil {
		return nil, ErrNotFound
	}
	info, err := f.Stat()
	if err != nil || info.IsDir() {
		_ = f.Close()
		return nil, ErrNotFound
	}
	return f, nil
}

// Remove deletes the file under key, treating an already-absent key as success
// so batch rollback can be retried safely.
func (d *Disk) Remove(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(d.root, key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// PublicURL returns the URL path the asset is served from, e.g. "/uploads/<key>".
func (d *Disk) PublicURL(key string) string {
	return d.publicBase + "/" + key
}
