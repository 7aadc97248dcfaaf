package models

import (
	"path/filepath"
	"time"
)

// MergeRequest describes a single merge operation: an ordered list of
// input files whose contents are appended, in order, to one output file.
// A request is built once per invocation and consumed by exactly one
// merge run; it is never reused or mutated.
type MergeRequest struct {
	ID             string
	Inputs         []string
	OutputPath     string
	BufferSize     int
	BandwidthLimit int64 // bytes per second, 0 = unlimited
	Checksum       bool  // compute SHA-256 of the output while writing
	CreatedAt      time.Time
}

// Validate checks the request invariants that can be verified without
// touching the filesystem. Path existence and readability are checked
// by the engine against its storage backend.
func (r *MergeRequest) Validate() error {
	if len(r.Inputs) == 0 {
		return &ValidationError{Field: "Inputs", Message: "at least one input file is required"}
	}
	if r.OutputPath == "" {
		return &ValidationError{Field: "OutputPath", Message: "output path is required"}
	}
	if r.BufferSize < 1024 {
		return &ValidationError{Field: "BufferSize", Message: "buffer size must be at least 1024 bytes"}
	}
	if r.BandwidthLimit < 0 {
		return &ValidationError{Field: "BandwidthLimit", Message: "bandwidth limit cannot be negative"}
	}

	out := filepath.Clean(r.OutputPath)
	for _, in := range r.Inputs {
		if in == "" {
			return &ValidationError{Field: "Inputs", Message: "input path cannot be empty"}
		}
		if filepath.Clean(in) == out {
			return &ValidationError{Field: "OutputPath", Message: "output path cannot be one of the inputs"}
		}
	}

	return nil
}

// ValidationError represents a request validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
