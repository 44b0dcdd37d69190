package upload

import (
	"context"
	"fmt"
	"strings"

	"github.com/salonio/imagestore/internal/logger"
	"github.com/salonio/imagestore/internal/storage"
)

// ValidationError carries the structured findings of a rejected batch.
type ValidationError struct {
	Result Result
}

func (e *ValidationError) Error() string {
	if e.Result.General != "" {
		return e.Result.General
	}
	return "validation failed: " + strings.Join(e.Result.Details(), "; ")
}

// Service runs the intake pipeline for one batch: validate every file, write
// every file, and on any write failure delete what was already written so a
// failed batch leaves the namespace untouched.
type Service struct {
	store storage.Storage
	rules Rules
	namer Generator
	log   *logger.Logger
}

// NewService creates a new upload Service.
func NewService(store storage.Storage, rules Rules, namer Generator, log *logger.Logger) *Service {
	return &Service{store: store, rules: rules, namer: namer, log: log}
}

// Rules returns the rule set the service validates against.
func (s *Service) Rules() Rules {
	return s.rules
}

// Store validates and persists the batch. Validation fully resolves before
// the first write; a *ValidationError means zero bytes were written. The
// returned records preserve submission order, and the record at index 0 is
// the featured one — that designation follows the original order, never a
// reordering.
func (s *Service) Store(ctx context.Context, files []File) ([]StoredImage, error) {
	if res := s.rules.Validate(files); !res.OK() {
		return nil, &ValidationError{Result: res}
	}

	images := make([]StoredImage, 0, len(files))
	written := make([]string, 0, len(files))

	for i, f := range files {
		name, err := s.namer.Next(f.Name)
		if err != nil {
			s.rollback(ctx, written)
			return nil, fmt.Errorf("name file %d: %w", i, err)
		}

		if err := s.write(ctx, name, f); err != nil {
			s.rollback(ctx, written)
			return nil, fmt.Errorf("store file %d: %w", i, err)
		}
		written = append(written, name)

		images = append(images, StoredImage{
			URL:        s.store.PublicURL(name),
			Filename:   name,
			IsFeatured: i == 0,
		})
	}

	return images, nil
}

func (s *Service) write(ctx context.Context, name string, f File) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %q: %w", f.Name, err)
	}
	defer rc.Close()

	return s.store.Save(ctx, name, rc, f.Size, f.ContentType)
}

// rollback removes every key the failed batch already wrote. Removal errors
// are logged and skipped: an orphaned blob is recoverable operationally, a
// half-reported batch is not.
func (s *Service) rollback(ctx context.Context, written []string) {
	for _, key := range written {
		if err := s.store.Remove(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("rollback: could not remove staged object")
		}
	}
}
