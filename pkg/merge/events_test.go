package merge

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mverstraete/mp4merge/pkg/models"
	"github.com/mverstraete/mp4merge/pkg/storage"
)

func TestStreamSuccess(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a := filepath.Join(dir, "a.mp4")
	b := filepath.Join(dir, "b.mp4")
	out := filepath.Join(dir, "out.mp4")
	writeFixture(t, a, 100)
	writeFixture(t, b, 250)

	engine := NewEngine(storage.NewLocal())
	events := engine.Stream(ctx, newRequest([]string{a, b}, out))

	var progress []models.MergeProgress
	var results []models.MergeResult
	sawResult := false

	for ev := range events {
		switch ev := ev.(type) {
		case ProgressEvent:
			if sawResult {
				t.Error("progress event delivered after the result event")
			}
			progress = append(progress, ev.Progress)
		case ResultEvent:
			if sawResult {
				t.Error("result event delivered more than once")
			}
			sawResult = true
			results = append(results, ev.Result)
		default:
			t.Errorf("unexpected event type %T", ev)
		}
	}

	if len(progress) != 2 {
		t.Errorf("progress events = %d, want 2", len(progress))
	}
	for i, p := range progress {
		if p.FilesCompleted != i+1 {
			t.Errorf("progress[%d].FilesCompleted = %d, want %d (order preserved)", i, p.FilesCompleted, i+1)
		}
	}

	if len(results) != 1 {
		t.Fatalf("result events = %d, want exactly 1", len(results))
	}
	if !results[0].Success() {
		t.Errorf("result should be success, got %v", results[0].Err)
	}
	if results[0].BytesWritten != 350 {
		t.Errorf("BytesWritten = %d, want 350", results[0].BytesWritten)
	}
}

func TestStreamFailure(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	out := filepath.Join(dir, "out.mp4")

	engine := NewEngine(storage.NewLocal())
	events := engine.Stream(ctx, newRequest(nil, out))

	var results []models.MergeResult
	progressCount := 0

	for ev := range events {
		switch ev := ev.(type) {
		case ProgressEvent:
			progressCount++
		case ResultEvent:
			results = append(results, ev.Result)
		}
	}

	if progressCount != 0 {
		t.Errorf("progress events = %d, want 0", progressCount)
	}
	if len(results) != 1 {
		t.Fatalf("result events = %d, want exactly 1", len(results))
	}
	if results[0].Success() {
		t.Error("result should be a failure for an empty request")
	}
	if results[0].Err.Kind != models.KindInvalidRequest {
		t.Errorf("Kind = %s, want %s", results[0].Err.Kind, models.KindInvalidRequest)
	}
}

func TestStreamChannelCloses(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a := filepath.Join(dir, "a.mp4")
	writeFixture(t, a, 10)
	out := filepath.Join(dir, "out.mp4")

	engine := NewEngine(storage.NewLocal())
	events := engine.Stream(ctx, newRequest([]string{a}, out))

	for range events {
	}

	// A closed channel yields immediately
	if _, ok := <-events; ok {
		t.Error("channel should be closed after the result event")
	}
}
