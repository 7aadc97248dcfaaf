package output

import (
	"fmt"
	"io"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/mverstraete/mp4merge/pkg/models"
)

// ProgressFormatter renders a byte-level progress bar while the merge
// streams, then prints the same summary as the human formatter.
type ProgressFormatter struct {
	writer     io.Writer
	bar        *pb.ProgressBar
	totalFiles int
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{}
}

// Start initializes the progress bar
func (f *ProgressFormatter) Start(writer io.Writer, totalFiles int, totalBytes int64) error {
	f.writer = writer
	f.totalFiles = totalFiles

	f.bar = pb.Full.Start64(totalBytes)
	f.bar.Set(pb.Bytes, true)
	if writer != nil {
		f.bar.SetWriter(writer)
	}
	f.bar.Set("prefix", fmt.Sprintf("0/%d ", totalFiles))

	return nil
}

// Progress advances the bar to the end of a completed input
func (f *ProgressFormatter) Progress(p models.MergeProgress) error {
	f.bar.SetCurrent(p.BytesWritten)
	f.bar.Set("prefix", fmt.Sprintf("%d/%d ", p.FilesCompleted, p.FilesTotal))
	return nil
}

// Bytes advances the bar mid-file
func (f *ProgressFormatter) Bytes(total int64) error {
	f.bar.SetCurrent(total)
	return nil
}

// Complete finishes the bar and displays the summary
func (f *ProgressFormatter) Complete(result *models.MergeResult) error {
	f.bar.SetCurrent(result.BytesWritten)
	f.bar.Finish()

	w := f.writer
	if w == nil {
		return nil
	}

	fmt.Fprintf(w, "\n")
	if result.Success() {
		fmt.Fprintf(w, "Merge completed in %s\n", result.Duration.Round(time.Millisecond))
		fmt.Fprintf(w, "  Output:  %s\n", result.OutputPath)
		fmt.Fprintf(w, "  Files:   %d\n", result.FilesMerged)
		fmt.Fprintf(w, "  Written: %s\n", formatBytes(result.BytesWritten))
		if result.Checksum != "" {
			fmt.Fprintf(w, "  SHA-256: %s\n", result.Checksum)
		}
	} else {
		fmt.Fprintf(w, "Merge failed: %v\n", result.Err)
		if result.BytesWritten > 0 {
			fmt.Fprintf(w, "  Partial output left at %s (%s, %d of %d files)\n",
				result.OutputPath, formatBytes(result.BytesWritten), result.FilesMerged, f.totalFiles)
		}
	}

	return nil
}

// Error reports an error
func (f *ProgressFormatter) Error(err error) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
