package upload

import (
	"fmt"
	mrand "math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamer_PreservesLowercasedExtension(t *testing.T) {
	n := &Namer{}

	for original, wantExt := range map[string]string{
		"photo.JPG":    ".jpg",
		"photo.jpeg":   ".jpeg",
		"shot.PNG":     ".png",
		"pic.WebP":     ".webp",
		"noextension":  "",
		"archive.tar.": ".",
	} {
		name, err := n.Next(original)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(name, wantExt), "%s -> %s", original, name)
		if wantExt != "" {
			assert.Equal(t, strings.ToLower(name), name)
		}
	}
}

func TestNamer_TimeOrderedPrefix(t *testing.T) {
	at := time.UnixMilli(1724778000123)
	n := &Namer{Now: func() time.Time { return at }}

	name, err := n.Next("a.jpg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "1724778000123-"), name)
}

func TestNamer_DeterministicForSeededEntropy(t *testing.T) {
	at := time.UnixMilli(1)
	a := &Namer{Entropy: mrand.New(mrand.NewSource(42)), Now: func() time.Time { return at }}
	b := &Namer{Entropy: mrand.New(mrand.NewSource(42)), Now: func() time.Time { return at }}

	n1, err := a.Next("x.png")
	require.NoError(t, err)
	n2, err := b.Next("x.png")
	require.NoError(t, err)

	assert.Equal(t, n1, n2)
}

// Concurrent batches must never collide: K generators (one per simulated
// request, each with its own seeded entropy and a frozen clock so the
// timestamp prefix contributes nothing) produce K*N distinct names.
func TestNamer_NoCollisionsAcrossConcurrentBatches(t *testing.T) {
	const (
		batches       = 16
		namesPerBatch = 64
	)

	at := time.UnixMilli(1724778000000)
	results := make(chan string, batches*namesPerBatch)

	var wg sync.WaitGroup
	for b := 0; b < batches; b++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			n := &Namer{
				Entropy: mrand.New(mrand.NewSource(seed)),
				Now:     func() time.Time { return at },
			}
			for i := 0; i < namesPerBatch; i++ {
				name, err := n.Next(fmt.Sprintf("file-%d.jpg", i))
				if err != nil {
					t.Error(err)
					return
				}
				results <- name
			}
		}(int64(b + 1))
	}
	wg.Wait()
	close(results)

	seen := make(map[string]struct{}, batches*namesPerBatch)
	for name := range results {
		seen[name] = struct{}{}
	}
	assert.Len(t, seen, batches*namesPerBatch)
}
