package output

import (
	"encoding/json"
	"io"

	"github.com/mverstraete/mp4merge/pkg/models"
)

// JSONFormatter emits one JSON object per line: a start event, a
// progress event per completed input, and a final result event.
type JSONFormatter struct {
	encoder *json.Encoder
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonStart struct {
	Event      string `json:"event"`
	TotalFiles int    `json:"total_files"`
	TotalBytes int64  `json:"total_bytes"`
}

type jsonProgress struct {
	Event          string  `json:"event"`
	FilesCompleted int     `json:"files_completed"`
	FilesTotal     int     `json:"files_total"`
	Fraction       float64 `json:"fraction"`
	Path           string  `json:"path"`
	BytesWritten   int64   `json:"bytes_written"`
}

type jsonResult struct {
	Event        string  `json:"event"`
	Status       string  `json:"status"`
	OutputPath   string  `json:"output_path"`
	BytesWritten int64   `json:"bytes_written"`
	FilesMerged  int     `json:"files_merged"`
	Checksum     string  `json:"checksum,omitempty"`
	DurationMS   int64   `json:"duration_ms"`
	ErrorKind    string  `json:"error_kind,omitempty"`
	ErrorPath    string  `json:"error_path,omitempty"`
	ErrorDetail  string  `json:"error,omitempty"`
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, totalFiles int, totalBytes int64) error {
	if writer == nil {
		writer = io.Discard
	}
	f.encoder = json.NewEncoder(writer)

	return f.encoder.Encode(jsonStart{
		Event:      "start",
		TotalFiles: totalFiles,
		TotalBytes: totalBytes,
	})
}

// Progress reports a completed input file
func (f *JSONFormatter) Progress(p models.MergeProgress) error {
	return f.encoder.Encode(jsonProgress{
		Event:          "progress",
		FilesCompleted: p.FilesCompleted,
		FilesTotal:     p.FilesTotal,
		Fraction:       p.Fraction,
		Path:           p.Path,
		BytesWritten:   p.BytesWritten,
	})
}

// Bytes is a no-op; byte-level updates would flood line-oriented output
func (f *JSONFormatter) Bytes(total int64) error {
	return nil
}

// Complete emits the terminal result
func (f *JSONFormatter) Complete(result *models.MergeResult) error {
	out := jsonResult{
		Event:        "result",
		Status:       string(result.Status),
		OutputPath:   result.OutputPath,
		BytesWritten: result.BytesWritten,
		FilesMerged:  result.FilesMerged,
		Checksum:     result.Checksum,
		DurationMS:   result.Duration.Milliseconds(),
	}
	if result.Err != nil {
		out.ErrorKind = string(result.Err.Kind)
		out.ErrorPath = result.Err.Path
		out.ErrorDetail = result.Err.Error()
	}
	return f.encoder.Encode(out)
}

// Error reports an error
func (f *JSONFormatter) Error(err error) error {
	if f.encoder == nil {
		return nil
	}
	return f.encoder.Encode(map[string]string{
		"event": "error",
		"error": err.Error(),
	})
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
