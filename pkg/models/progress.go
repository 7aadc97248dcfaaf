package models

// MergeProgress is a point-in-time snapshot delivered after an input
// file has been fully streamed to the output. Values are ephemeral:
// produced once, handed to the display layer, and never retained.
// Over the lifetime of one merge run both FilesCompleted and Fraction
// are monotonically non-decreasing.
type MergeProgress struct {
	// FilesCompleted is the number of inputs fully written so far
	FilesCompleted int

	// FilesTotal is the number of inputs in the request
	FilesTotal int

	// Fraction is FilesCompleted / FilesTotal, in [0.0, 1.0]
	Fraction float64

	// Path is the input file that just finished streaming
	Path string

	// BytesWritten is the cumulative byte count written to the output
	BytesWritten int64
}

// NewMergeProgress builds a progress snapshot for the completed-th input.
func NewMergeProgress(completed, total int, path string, bytesWritten int64) MergeProgress {
	frac := 0.0
	if total > 0 {
		frac = float64(completed) / float64(total)
	}
	return MergeProgress{
		FilesCompleted: completed,
		FilesTotal:     total,
		Fraction:       frac,
		Path:           path,
		BytesWritten:   bytesWritten,
	}
}
