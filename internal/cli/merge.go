package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mverstraete/mp4merge/internal/tui"
	"github.com/mverstraete/mp4merge/pkg/logging"
	"github.com/mverstraete/mp4merge/pkg/merge"
	"github.com/mverstraete/mp4merge/pkg/models"
	"github.com/mverstraete/mp4merge/pkg/output"
	"github.com/mverstraete/mp4merge/pkg/ratelimit"
	"github.com/mverstraete/mp4merge/pkg/storage"
)

// MergeFlags holds merge command flags
type MergeFlags struct {
	Output       string
	Buffer       int
	Bandwidth    string
	Checksum     bool
	OutputFormat string
	TUI          bool
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var mergeFlags MergeFlags

// NewMergeCommand creates the merge command
func NewMergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge -o OUTPUT INPUT...",
		Short: "Concatenate video files into one",
		Long: `Concatenate the given input files into a single output file,
byte for byte, in the order they are listed.

No container-level remuxing is performed: for the result to be a
playable MP4 the inputs must share the same encoding. Use "mp4merge
info" to inspect codecs and dimensions before merging.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMerge,
	}

	cmd.Flags().StringVarP(&mergeFlags.Output, "output-file", "o", "", "output file path (required)")
	cmd.MarkFlagRequired("output-file")

	cmd.Flags().IntVar(&mergeFlags.Buffer, "buffer", 0, "copy buffer size in bytes (default: 65536)")
	cmd.Flags().StringVarP(&mergeFlags.Bandwidth, "bandwidth", "b", "", "read rate limit (e.g. \"10M\", \"1G\")")
	cmd.Flags().BoolVar(&mergeFlags.Checksum, "checksum", false, "compute SHA-256 of the output while writing")
	cmd.Flags().StringVar(&mergeFlags.OutputFormat, "output", "human", "output format: human, json")
	cmd.Flags().BoolVar(&mergeFlags.TUI, "tui", false, "interactive progress display")

	// Logging flags
	cmd.Flags().StringVar(&mergeFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&mergeFlags.LogFormat, "log-format", "json", "log format: text, json")
	cmd.Flags().StringVar(&mergeFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runMerge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate flags
	if err := validateMergeFlags(args); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	if err := applyFlagsToConfig(cfg); err != nil {
		return err
	}

	// Create merge request
	request, err := createMergeRequest(args, cfg)
	if err != nil {
		return fmt.Errorf("invalid merge request: %w", err)
	}

	// Create logger
	logger, err := createLogger(mergeFlags.LogFile, mergeFlags.LogFormat, mergeFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Create storage backend and engine
	backend := storage.NewLocal()
	defer backend.Close()

	limiter := ratelimit.NewLimiter(request.BandwidthLimit)

	if mergeFlags.TUI {
		engine := merge.NewEngine(backend,
			merge.WithLimiter(limiter),
			merge.WithLogger(logger),
		)
		result, err := tui.Run(request, engine.Stream(ctx, request))
		if err != nil {
			return fmt.Errorf("display error: %w", err)
		}
		os.Exit(result.Status.ExitCode())
		return nil
	}

	// Create output formatter
	var formatter output.Formatter
	switch cfg.Output.Format {
	case "json":
		formatter = output.NewJSONFormatter()
	default:
		if cfg.Output.Progress && !cfg.Output.Quiet {
			formatter = output.NewProgressFormatter()
		} else {
			formatter = output.NewHumanFormatter()
		}
	}

	var writer io.Writer = os.Stdout
	if cfg.Output.Quiet {
		writer = io.Discard
	}

	// Total size is display-only; unreadable inputs surface as merge
	// failures, not here
	var totalBytes int64
	for _, in := range request.Inputs {
		if info, err := backend.Stat(ctx, in); err == nil {
			totalBytes += info.Size
		}
	}

	if err := formatter.Start(writer, len(request.Inputs), totalBytes); err != nil {
		return fmt.Errorf("failed to start formatter: %w", err)
	}

	engine := merge.NewEngine(backend,
		merge.WithLimiter(limiter),
		merge.WithLogger(logger),
		merge.WithByteProgress(func(total int64) {
			formatter.Bytes(total)
		}),
	)

	result := engine.Run(ctx, request, func(p models.MergeProgress) {
		formatter.Progress(p)
	})

	if err := formatter.Complete(result); err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}

	os.Exit(result.Status.ExitCode())
	return nil
}

// createLogger creates a logger based on flags, falling back to the
// null logger when no log file is requested
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "text":
		format = logging.FormatText
	default:
		format = logging.FormatJSON
	}

	config := logging.FileLoggerConfig{
		Path:       logFile,
		Format:     format,
		Level:      logging.ParseLevel(logLevel),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	}

	return logging.NewFileLogger(config)
}
