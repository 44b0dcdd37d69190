// Package upload implements the image intake pipeline: batch validation,
// unique name generation, and all-or-nothing persistence to storage.
package upload

import "io"

// File is one candidate in an upload batch. Size and ContentType are the
// client-declared values from the multipart part; Open yields the bytes.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// StoredImage describes one persisted file in the upload response.
// Records are never mutated after the batch completes.
type StoredImage struct {
	URL        string `json:"url"`
	Filename   string `json:"filename"`
	IsFeatured bool   `json:"isFeatured"`
}
