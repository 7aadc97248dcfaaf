package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mverstraete/mp4merge/pkg/models"
)

func TestHumanFormatter(t *testing.T) {
	t.Run("SuccessFlow", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewHumanFormatter()

		if err := f.Start(&buf, 2, 350); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		f.Progress(models.NewMergeProgress(1, 2, "a.mp4", 100))
		f.Progress(models.NewMergeProgress(2, 2, "b.mp4", 350))
		f.Complete(&models.MergeResult{
			Status:       models.StatusSuccess,
			OutputPath:   "out.mp4",
			BytesWritten: 350,
			FilesMerged:  2,
			Duration:     time.Second,
		})

		out := buf.String()
		for _, want := range []string{"Merging 2 files", "[1/2]", "[2/2]", "a.mp4", "b.mp4", "Merge completed", "out.mp4"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("FailureFlow", func(t *testing.T) {
		var buf bytes.Buffer
		f := NewHumanFormatter()
		f.Start(&buf, 2, 350)
		f.Progress(models.NewMergeProgress(1, 2, "a.mp4", 100))
		f.Complete(&models.MergeResult{
			Status:       models.StatusFailed,
			OutputPath:   "out.mp4",
			BytesWritten: 100,
			FilesMerged:  1,
			Err:          &models.MergeError{Path: "b.mp4", Kind: models.KindNotFound},
		})

		out := buf.String()
		if !strings.Contains(out, "Merge failed") {
			t.Errorf("output missing failure line:\n%s", out)
		}
		if !strings.Contains(out, "Partial output") {
			t.Errorf("output missing partial-output note:\n%s", out)
		}
	})

	t.Run("FormatBytes", func(t *testing.T) {
		tests := []struct {
			in   int64
			want string
		}{
			{0, "0 B"},
			{350, "350 B"},
			{1024, "1.0 KiB"},
			{1536, "1.5 KiB"},
			{1048576, "1.0 MiB"},
		}
		for _, tt := range tests {
			if got := formatBytes(tt.in); got != tt.want {
				t.Errorf("formatBytes(%d) = %s, want %s", tt.in, got, tt.want)
			}
		}
	})
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()

	if err := f.Start(&buf, 2, 350); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	f.Progress(models.NewMergeProgress(1, 2, "a.mp4", 100))
	f.Error(errors.New("transient display error"))
	f.Complete(&models.MergeResult{
		Status:       models.StatusFailed,
		OutputPath:   "out.mp4",
		BytesWritten: 100,
		FilesMerged:  1,
		Duration:     250 * time.Millisecond,
		Err:          &models.MergeError{Path: "b.mp4", Kind: models.KindPermissionDenied},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("json lines = %d, want 4", len(lines))
	}

	// Every line must be valid JSON with an event tag
	events := make([]string, 0, len(lines))
	for i, line := range lines {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			t.Fatalf("line %d is not JSON: %v", i, err)
		}
		events = append(events, obj["event"].(string))
	}

	want := []string{"start", "progress", "error", "result"}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, events[i], want[i])
		}
	}

	// Result line carries the error taxonomy
	var result map[string]interface{}
	json.Unmarshal([]byte(lines[3]), &result)
	if result["error_kind"] != "permission_denied" {
		t.Errorf("error_kind = %v, want permission_denied", result["error_kind"])
	}
	if result["error_path"] != "b.mp4" {
		t.Errorf("error_path = %v, want b.mp4", result["error_path"])
	}
	if result["status"] != "failed" {
		t.Errorf("status = %v, want failed", result["status"])
	}
}
