package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/notseanray/seanifyv2-backend/logger"
)

// Worker drives the queue in the background. Extractions run one at a time
// so concurrent downloader invocations never compete for the output
// directory; a failed entry is logged and dropped, never requeued.
type Worker struct {
	queue     *Queue
	extractor *Extractor
	interval  time.Duration
	done      chan struct{}
}

// NewWorker wires a worker to a queue and an extractor. interval bounds how
// long an entry can sit in the queue when no enqueue wakes the worker.
func NewWorker(queue *Queue, extractor *Extractor, interval time.Duration) *Worker {
	return &Worker{
		queue:     queue,
		extractor: extractor,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

// Start launches the background loop. It stops when ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

// Done is closed once the loop has exited.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.queue.Wake():
		case <-ticker.C:
		}

		// Drain everything that is pending, sequentially.
		for w.Cycle(ctx) {
			if ctx.Err() != nil {
				return
			}
		}
	}
}

// Cycle removes the oldest pending entry and runs the extractor on it.
// Returns false when the queue was empty. The entry is consumed regardless
// of the extraction outcome.
func (w *Worker) Cycle(ctx context.Context) bool {
	entry, ok := w.queue.Pop()
	if !ok {
		return false
	}

	song, err := w.extractor.Extract(ctx, entry.URL, entry.RequestedBy)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyCataloged):
			logger.Info("Skipping download, song already catalogued.",
				logger.String("url", entry.URL))
		case errors.Is(err, ErrMalformedURL):
			logger.Warn("Dropping queue entry with malformed URL.",
				logger.String("url", entry.URL), logger.ErrorField(err))
		default:
			logger.Error("Extraction failed.",
				logger.String("url", entry.URL),
				logger.String("requested_by", entry.RequestedBy),
				logger.ErrorField(err))
		}
		return true
	}

	logger.Info("Song ingested.",
		logger.String("id", song.ID),
		logger.String("title", song.Title),
		logger.String("requested_by", entry.RequestedBy))
	return true
}
