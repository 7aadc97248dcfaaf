package output

import (
	"io"

	"github.com/mverstraete/mp4merge/pkg/models"
)

// Formatter defines the interface for rendering merge progress and the
// terminal result. Implementations include human-readable, JSON, and
// progress-bar formatters.
type Formatter interface {
	// Start initializes the formatter for a new merge operation
	Start(writer io.Writer, totalFiles int, totalBytes int64) error

	// Progress reports a completed input file
	Progress(p models.MergeProgress) error

	// Bytes reports the cumulative number of bytes written; called
	// between Progress updates while a file is streaming
	Bytes(total int64) error

	// Complete finalizes output with the terminal result
	Complete(result *models.MergeResult) error

	// Error reports an error outside the result flow
	Error(err error) error

	// Name returns the formatter name
	Name() string
}
