package upload

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

// Rules is the validation configuration for upload batches.
// Read-only after construction.
type Rules struct {
	AllowedTypes []string
	MaxFileSize  int64
	MaxFiles     int
}

// FileError lists why the file at Index was rejected.
type FileError struct {
	Index   int
	Reasons []string
}

// Result is the outcome of validating one batch. A non-empty General message
// means the batch failed a batch-level rule and no per-file checks ran.
type Result struct {
	General string
	Files   []FileError
}

// OK reports whether the batch passed validation.
func (r Result) OK() bool {
	return r.General == "" && len(r.Files) == 0
}

// Details flattens the result into client-facing messages, one per finding.
func (r Result) Details() []string {
	if r.General != "" {
		return []string{r.General}
	}
	details := make([]string, 0, len(r.Files))
	for _, fe := range r.Files {
		details = append(details, fmt.Sprintf("file %d: %s", fe.Index, strings.Join(fe.Reasons, "; ")))
	}
	return details
}

// Validate checks the batch against the rules. The count rule is checked
// first and short-circuits: an oversized batch produces a single general
// error with no per-file findings. Acceptance is all-or-nothing — any
// finding rejects the whole batch.
func (rules Rules) Validate(files []File) Result {
	if len(files) > rules.MaxFiles {
		return Result{
			General: fmt.Sprintf("too many files: maximum %d files allowed", rules.MaxFiles),
		}
	}

	var res Result
	for i, f := range files {
		var reasons []string
		if !slices.Contains(rules.AllowedTypes, f.ContentType) {
			reasons = append(reasons, fmt.Sprintf("invalid file type %q: allowed types are %s",
				f.ContentType, strings.Join(rules.AllowedTypes, ", ")))
		}
		if f.Size > rules.MaxFileSize {
			reasons = append(reasons, fmt.Sprintf("file size too large: maximum size is %s",
				humanize.IBytes(uint64(rules.MaxFileSize))))
		}
		if len(reasons) > 0 {
			res.Files = append(res.Files, FileError{Index: i, Reasons: reasons})
		}
	}
	return res
}
