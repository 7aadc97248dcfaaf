package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStat(t *testing.T) {
	ctx := context.Background()
	local := NewLocal()
	defer local.Close()

	t.Run("RegularFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "clip.mp4")
		if err := os.WriteFile(path, []byte("0123456789"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		info, err := local.Stat(ctx, path)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if info.Size != 10 {
			t.Errorf("Size = %d, want 10", info.Size)
		}
		if !info.Regular {
			t.Error("Regular should be true for a regular file")
		}
		if info.IsDir {
			t.Error("IsDir should be false for a regular file")
		}
	})

	t.Run("Directory", func(t *testing.T) {
		dir := t.TempDir()

		info, err := local.Stat(ctx, dir)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if !info.IsDir {
			t.Error("IsDir should be true for a directory")
		}
		if info.Regular {
			t.Error("Regular should be false for a directory")
		}
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := local.Stat(ctx, filepath.Join(t.TempDir(), "nope.mp4"))
		if !os.IsNotExist(err) {
			t.Errorf("Stat() error = %v, want not-exist", err)
		}
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := local.Stat(cancelled, "whatever")
		if err == nil {
			t.Error("Stat() should fail with a cancelled context")
		}
	})
}

func TestLocalOpenCreate(t *testing.T) {
	ctx := context.Background()
	local := NewLocal()
	defer local.Close()

	t.Run("RoundTrip", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.bin")

		w, err := local.Create(ctx, path)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if _, err := w.Write([]byte("payload")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		r, err := local.Open(ctx, path)
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer r.Close()

		data, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(data) != "payload" {
			t.Errorf("content = %q, want %q", data, "payload")
		}
	})

	t.Run("CreateTruncates", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.bin")
		if err := os.WriteFile(path, []byte("old content that is longer"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		w, err := local.Create(ctx, path)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if _, err := w.Write([]byte("new")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		w.Close()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(data) != "new" {
			t.Errorf("content = %q, want %q", data, "new")
		}
	})

	t.Run("OpenMissing", func(t *testing.T) {
		_, err := local.Open(ctx, filepath.Join(t.TempDir(), "nope.mp4"))
		if !os.IsNotExist(err) {
			t.Errorf("Open() error = %v, want not-exist", err)
		}
	})

	t.Run("CreateInMissingDirectory", func(t *testing.T) {
		_, err := local.Create(ctx, filepath.Join(t.TempDir(), "missing", "out.mp4"))
		if err == nil {
			t.Error("Create() should fail when the parent directory does not exist")
		}
	})
}
