package merge

import (
	"context"

	"github.com/mverstraete/mp4merge/pkg/models"
)

// Event is a message crossing from the merge goroutine to the display
// layer. It is either a ProgressEvent or the single terminal ResultEvent.
type Event interface {
	isMergeEvent()
}

// ProgressEvent carries a progress snapshot
type ProgressEvent struct {
	Progress models.MergeProgress
}

func (ProgressEvent) isMergeEvent() {}

// ResultEvent carries the terminal result. It is always the last event
// on the channel, delivered exactly once.
type ResultEvent struct {
	Result models.MergeResult
}

func (ResultEvent) isMergeEvent() {}

// Stream runs the merge on a background goroutine and returns a channel
// of typed events: progress events in the order they were produced,
// then exactly one result event, then the channel is closed. The caller
// owns consuming the channel; the merge blocks on an unread consumer
// rather than dropping updates.
func (e *Engine) Stream(ctx context.Context, req *models.MergeRequest) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		result := e.Run(ctx, req, func(p models.MergeProgress) {
			events <- ProgressEvent{Progress: p}
		})
		events <- ResultEvent{Result: *result}
	}()

	return events
}
