package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if cfg.Merge.BufferSize != 65536 {
		t.Errorf("BufferSize = %d, want 65536", cfg.Merge.BufferSize)
	}
	if cfg.Output.Format != "human" {
		t.Errorf("Format = %s, want human", cfg.Output.Format)
	}
	if !cfg.Output.Progress {
		t.Error("Progress should default to true")
	}
}

func TestValidate(t *testing.T) {
	t.Run("SmallBuffer", func(t *testing.T) {
		cfg := Default()
		cfg.Merge.BufferSize = 100
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() should fail for tiny buffer")
		}
	})

	t.Run("NegativeBandwidth", func(t *testing.T) {
		cfg := Default()
		cfg.Merge.BandwidthLimit = -1
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() should fail for negative bandwidth limit")
		}
	})

	t.Run("BadOutputFormat", func(t *testing.T) {
		cfg := Default()
		cfg.Output.Format = "xml"
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() should fail for unknown output format")
		}
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "loud"
		if err := cfg.Validate(); err == nil {
			t.Error("Validate() should fail for unknown log level")
		}
	})
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Merge.BufferSize = 131072
	cfg.Merge.Checksum = true
	cfg.Output.Directory = "/videos/merged"

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if loaded.Merge.BufferSize != 131072 {
		t.Errorf("BufferSize = %d, want 131072", loaded.Merge.BufferSize)
	}
	if !loaded.Merge.Checksum {
		t.Error("Checksum should round-trip as true")
	}
	if loaded.Output.Directory != "/videos/merged" {
		t.Errorf("Directory = %s, want /videos/merged", loaded.Output.Directory)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil {
			t.Error("LoadFromFile() should fail for a missing file")
		}
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		os.WriteFile(path, []byte("merge: [not a mapping"), 0644)
		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should fail for malformed YAML")
		}
	})

	t.Run("InvalidValues", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		os.WriteFile(path, []byte("merge:\n  buffer_size: 12\n"), 0644)
		if _, err := LoadFromFile(path); err == nil {
			t.Error("LoadFromFile() should fail validation for a tiny buffer")
		}
	})

	t.Run("SaveInvalidConfig", func(t *testing.T) {
		cfg := Default()
		cfg.Output.Format = "bogus"
		if err := SaveToFile(cfg, filepath.Join(t.TempDir(), "config.yaml")); err == nil {
			t.Error("SaveToFile() should refuse an invalid config")
		}
	})
}
