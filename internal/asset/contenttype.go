package asset

import (
	"path/filepath"
	"strings"
)

// contentTypes maps stored-name extensions to the served Content-Type.
// Resolution is by extension only; stored bytes are opaque.
var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".txt":  "text/plain",
}

// ContentTypeFor returns the Content-Type to serve for the given stored name,
// falling back to application/octet-stream for unknown extensions.
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}
