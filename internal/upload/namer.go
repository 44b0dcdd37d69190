package upload

import (
	"crypto/rand"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator produces storage-unique names for accepted files.
type Generator interface {
	Next(originalName string) (string, error)
}

// Namer generates names of the form <unix-millis>-<uuid><ext>: a time-ordered
// prefix keeps directory listings chronological, and the UUID's 122 random
// bits make collisions between concurrent requests negligible without any
// coordination. The extension is taken from the original name, lower-cased;
// file content is never inspected here.
//
// The zero value is ready to use. Entropy and Now exist so tests can pin a
// seeded source and a fixed clock.
type Namer struct {
	Entropy io.Reader        // defaults to crypto/rand.Reader
	Now     func() time.Time // defaults to time.Now
}

// Next returns a fresh name for a file with the given original name.
func (n *Namer) Next(originalName string) (string, error) {
	entropy := n.Entropy
	if entropy == nil {
		entropy = rand.Reader
	}
	now := n.Now
	if now == nil {
		now = time.Now
	}

	id, err := uuid.NewRandomFromReader(entropy)
	if err != nil {
		return "", fmt.Errorf("generate name token: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", now().UnixMilli(), id, ext), nil
}
