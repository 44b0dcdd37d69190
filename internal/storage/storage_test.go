package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateKey_AcceptsFlatNames(t *testing.T) {
	for _, key := range []string{
		"1724778000000-8a9f2c4e-1b3d-4f5a-9c7e-2d8b6a4f1e3c.jpg",
		"plain.png",
		"no-extension",
		"dots.in.name.webp",
	} {
		assert.NoError(t, ValidateKey(key), key)
	}
}

func TestValidateKey_RejectsEscapes(t *testing.T) {
	for _, key := range []string{
		"",
		".",
		"..",
		"../secret",
		"..\\secret",
		"a/b.jpg",
		"/etc/passwd",
		"nested\\path.png",
		"nul\x00byte.jpg",
		".stage-123456",
		".hidden.jpg",
	} {
		assert.ErrorIs(t, ValidateKey(key), ErrInvalidKey, "%q", key)
	}
}
