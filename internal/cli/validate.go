package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mverstraete/mp4merge/internal/platform"
	"github.com/mverstraete/mp4merge/pkg/config"
	"github.com/mverstraete/mp4merge/pkg/models"
)

// validateMergeFlags validates the merge command flags and arguments
func validateMergeFlags(inputs []string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	for _, in := range inputs {
		if err := platform.ValidatePath(in); err != nil {
			return err
		}
	}
	if err := platform.ValidatePath(mergeFlags.Output); err != nil {
		return err
	}

	if mergeFlags.Bandwidth != "" {
		if _, err := parseBandwidth(mergeFlags.Bandwidth); err != nil {
			return err
		}
	}

	validOutputs := map[string]bool{"human": true, "json": true}
	if !validOutputs[mergeFlags.OutputFormat] {
		return fmt.Errorf("invalid output format: %s (valid: human, json)", mergeFlags.OutputFormat)
	}

	return nil
}

// parseBandwidth parses a bandwidth limit like "500K", "10M" or "1G"
// into bytes per second
func parseBandwidth(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, nil
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier = 1024
		s = strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "G"):
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "G")
	}

	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bandwidth limit: %q (use e.g. \"500K\", \"10M\", \"1G\")", s)
	}
	if value <= 0 {
		return 0, fmt.Errorf("bandwidth limit must be positive")
	}

	return value * multiplier, nil
}

// loadConfig loads configuration from file or returns the default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) error {
	if mergeFlags.Buffer > 0 {
		cfg.Merge.BufferSize = mergeFlags.Buffer
	}

	if mergeFlags.Bandwidth != "" {
		limit, err := parseBandwidth(mergeFlags.Bandwidth)
		if err != nil {
			return err
		}
		cfg.Merge.BandwidthLimit = limit
	}

	if mergeFlags.Checksum {
		cfg.Merge.Checksum = true
	}

	if mergeFlags.OutputFormat != "" {
		cfg.Output.Format = mergeFlags.OutputFormat
	}

	// Quiet wins over verbose
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	} else if globalFlags.Verbose {
		cfg.Output.Progress = true
	}

	return nil
}

// createMergeRequest creates a merge request from arguments and config
func createMergeRequest(inputs []string, cfg *config.Config) (*models.MergeRequest, error) {
	request := &models.MergeRequest{
		ID:             uuid.New().String(),
		Inputs:         inputs,
		OutputPath:     resolveOutputPath(mergeFlags.Output, cfg),
		BufferSize:     cfg.Merge.BufferSize,
		BandwidthLimit: cfg.Merge.BandwidthLimit,
		Checksum:       cfg.Merge.Checksum,
		CreatedAt:      time.Now(),
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	return request, nil
}

// resolveOutputPath places a bare output filename into the configured
// default output directory, when one is set
func resolveOutputPath(output string, cfg *config.Config) string {
	if cfg.Output.Directory == "" || strings.ContainsAny(output, `/\`) {
		return platform.NormalizePath(output)
	}
	return filepath.Join(cfg.Output.Directory, output)
}
