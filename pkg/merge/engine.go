package merge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"path/filepath"
	"time"

	"github.com/mverstraete/mp4merge/pkg/logging"
	"github.com/mverstraete/mp4merge/pkg/models"
	"github.com/mverstraete/mp4merge/pkg/ratelimit"
	"github.com/mverstraete/mp4merge/pkg/storage"
)

// ProgressFunc receives a snapshot after each input file has been
// fully streamed to the output. For a request with N inputs it is
// invoked exactly N times, with the final fraction at 1.0.
type ProgressFunc func(models.MergeProgress)

// Engine executes merge requests. It is a single linear pass: the
// output is opened once, each input is streamed to it in request
// order, and at most one input handle is open at any time.
type Engine struct {
	backend storage.Backend
	limiter *ratelimit.Limiter
	logger  logging.Logger
	onBytes func(total int64) // optional byte-level hook for display layers
}

// Option configures an Engine
type Option func(*Engine)

// WithLimiter caps the read rate of the merge stream
func WithLimiter(limiter *ratelimit.Limiter) Option {
	return func(e *Engine) { e.limiter = limiter }
}

// WithLogger attaches a logger
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithByteProgress registers a hook called with the cumulative number
// of bytes written, throttled to roughly every 64 KiB. Progress bars
// hang off this; the per-file ProgressFunc contract is unaffected.
func WithByteProgress(fn func(total int64)) Option {
	return func(e *Engine) { e.onBytes = fn }
}

// NewEngine creates a merge engine on the given storage backend
func NewEngine(backend storage.Backend, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		logger:  logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the merge described by req, invoking onProgress after
// each input completes, and returns the terminal result. Failures are
// reported through the result, never through a panic or a partial
// callback; a partially written output file is left in place.
func (e *Engine) Run(ctx context.Context, req *models.MergeRequest, onProgress ProgressFunc) *models.MergeResult {
	start := time.Now()
	result := &models.MergeResult{
		RequestID:  req.ID,
		Status:     models.StatusFailed,
		OutputPath: req.OutputPath,
	}

	fail := func(path string, kind models.ErrorKind, err error) *models.MergeResult {
		result.Err = &models.MergeError{Path: path, Kind: kind, Err: err}
		result.Duration = time.Since(start)
		e.logger.Error(ctx, "merge failed", err, logging.Fields{
			"request_id": req.ID,
			"path":       path,
			"kind":       string(kind),
		})
		return result
	}

	// Structural validation, before any filesystem access
	if err := req.Validate(); err != nil {
		return fail(req.OutputPath, models.KindInvalidRequest, err)
	}

	// Filesystem validation, before the output file is touched
	if merr := e.validatePaths(ctx, req); merr != nil {
		result.Err = merr
		result.Duration = time.Since(start)
		e.logger.Error(ctx, "merge failed", merr.Err, logging.Fields{
			"request_id": req.ID,
			"path":       merr.Path,
			"kind":       string(merr.Kind),
		})
		return result
	}

	e.logger.Info(ctx, "merge started", logging.Fields{
		"request_id": req.ID,
		"inputs":     len(req.Inputs),
		"output":     req.OutputPath,
	})

	out, err := e.backend.Create(ctx, req.OutputPath)
	if err != nil {
		return fail(req.OutputPath, models.KindFromError(err), err)
	}

	var digest hash.Hash
	var dst io.Writer = out
	if req.Checksum {
		digest = sha256.New()
		dst = io.MultiWriter(out, digest)
	}

	buf := make([]byte, req.BufferSize)
	var written int64

	for i, input := range req.Inputs {
		if err := ctx.Err(); err != nil {
			out.Close()
			result.BytesWritten = written
			return fail(input, models.KindIOError, err)
		}

		rc, err := e.backend.Open(ctx, input)
		if err != nil {
			out.Close()
			result.BytesWritten = written
			return fail(input, models.KindFromError(err), err)
		}

		var reader io.Reader = ratelimit.NewReadCloser(ctx, rc, e.limiter)
		if e.onBytes != nil {
			reader = &progressReader{reader: reader, base: written, onProgress: e.onBytes}
		}

		n, err := io.CopyBuffer(dst, reader, buf)
		written += n
		rc.Close()

		if err != nil {
			out.Close()
			result.BytesWritten = written
			return fail(input, models.KindFromError(err), err)
		}

		result.FilesMerged = i + 1
		e.logger.Debug(ctx, "input merged", logging.Fields{
			"request_id": req.ID,
			"path":       input,
			"bytes":      n,
		})

		if onProgress != nil {
			onProgress(models.NewMergeProgress(i+1, len(req.Inputs), input, written))
		}
	}

	if err := out.Close(); err != nil {
		result.BytesWritten = written
		return fail(req.OutputPath, models.KindIOError, err)
	}

	result.Status = models.StatusSuccess
	result.BytesWritten = written
	result.Duration = time.Since(start)
	if digest != nil {
		result.Checksum = hex.EncodeToString(digest.Sum(nil))
	}

	e.logger.Info(ctx, "merge completed", logging.Fields{
		"request_id": req.ID,
		"bytes":      written,
		"duration":   result.Duration.String(),
	})

	return result
}

// validatePaths checks every input and the output location against the
// backend. Runs before the output file is created so that a rejected
// request leaves the filesystem untouched.
func (e *Engine) validatePaths(ctx context.Context, req *models.MergeRequest) *models.MergeError {
	outAbs, err := filepath.Abs(req.OutputPath)
	if err != nil {
		return &models.MergeError{Path: req.OutputPath, Kind: models.KindInvalidRequest, Err: err}
	}

	for _, input := range req.Inputs {
		info, err := e.backend.Stat(ctx, input)
		if err != nil {
			return &models.MergeError{Path: input, Kind: models.KindFromError(err), Err: err}
		}
		if !info.Regular {
			return &models.MergeError{
				Path: input,
				Kind: models.KindInvalidRequest,
				Err:  fmt.Errorf("not a regular file"),
			}
		}

		inAbs, err := filepath.Abs(input)
		if err != nil {
			return &models.MergeError{Path: input, Kind: models.KindInvalidRequest, Err: err}
		}
		if inAbs == outAbs {
			return &models.MergeError{
				Path: req.OutputPath,
				Kind: models.KindInvalidRequest,
				Err:  fmt.Errorf("output path is also an input"),
			}
		}
	}

	parent := filepath.Dir(outAbs)
	info, err := e.backend.Stat(ctx, parent)
	if err != nil || !info.IsDir {
		return &models.MergeError{
			Path: req.OutputPath,
			Kind: models.KindInvalidRequest,
			Err:  fmt.Errorf("output directory does not exist: %s", parent),
		}
	}

	return nil
}

// byte-progress reporting threshold
const progressReportBytes = 64 * 1024

// progressReader reports cumulative bytes written through the hook,
// throttled so tight copy loops do not drown the display layer.
type progressReader struct {
	reader       io.Reader
	base         int64 // bytes written before this input started
	read         int64
	lastReported int64
	onProgress   func(total int64)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		pr.read += int64(n)
		if pr.read-pr.lastReported >= progressReportBytes || err != nil {
			pr.onProgress(pr.base + pr.read)
			pr.lastReported = pr.read
		}
	}
	return n, err
}
