package output

import (
	"fmt"
	"io"
	"time"

	"github.com/mverstraete/mp4merge/pkg/models"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer     io.Writer
	totalFiles int
	totalBytes int64
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, totalFiles int, totalBytes int64) error {
	if writer == nil {
		writer = io.Discard
	}
	f.writer = writer
	f.totalFiles = totalFiles
	f.totalBytes = totalBytes

	fmt.Fprintf(f.writer, "Merging %d files, %s total\n", totalFiles, formatBytes(totalBytes))
	return nil
}

// Progress reports a completed input file
func (f *HumanFormatter) Progress(p models.MergeProgress) error {
	fmt.Fprintf(f.writer, "[%d/%d] ✓ %s (%s written, %.0f%%)\n",
		p.FilesCompleted, p.FilesTotal, p.Path,
		formatBytes(p.BytesWritten), p.Fraction*100)
	return nil
}

// Bytes is a no-op for line-oriented output
func (f *HumanFormatter) Bytes(total int64) error {
	return nil
}

// Complete finalizes output and displays the summary
func (f *HumanFormatter) Complete(result *models.MergeResult) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	fmt.Fprintf(f.writer, "\n")
	if result.Success() {
		fmt.Fprintf(f.writer, "Merge completed in %s\n", result.Duration.Round(time.Millisecond))
		fmt.Fprintf(f.writer, "  Output:  %s\n", result.OutputPath)
		fmt.Fprintf(f.writer, "  Files:   %d\n", result.FilesMerged)
		fmt.Fprintf(f.writer, "  Written: %s\n", formatBytes(result.BytesWritten))
		if result.Checksum != "" {
			fmt.Fprintf(f.writer, "  SHA-256: %s\n", result.Checksum)
		}
		if result.Duration.Seconds() > 0 {
			speed := float64(result.BytesWritten) / result.Duration.Seconds()
			fmt.Fprintf(f.writer, "  Speed:   %s/s\n", formatBytes(int64(speed)))
		}
	} else {
		fmt.Fprintf(f.writer, "Merge failed: %v\n", result.Err)
		if result.BytesWritten > 0 {
			fmt.Fprintf(f.writer, "  Partial output left at %s (%s, %d of %d files)\n",
				result.OutputPath, formatBytes(result.BytesWritten), result.FilesMerged, f.totalFiles)
		}
	}

	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	if f.writer != nil {
		fmt.Fprintf(f.writer, "Error: %v\n", err)
	}
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// formatBytes formats bytes in human-readable format
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
