package app

import (
	"context"
	"log/slog"
	"time"

	"pydoclint/internal/data/history"
	"pydoclint/internal/data/queue"
	"pydoclint/internal/shared/observability"
)

const (
	recorderCapacity = 64
	recorderBatch    = 16
	recorderWait     = 500 * time.Millisecond
)

// runRecorder writes watch-mode runs from its own goroutine so a slow or
// locked database never stalls the watcher.
type runRecorder struct {
	queue *queue.MemoryQueue[history.Run]
	write func(context.Context, history.Run)
	done  chan struct{}
}

func newRunRecorder(write func(context.Context, history.Run)) *runRecorder {
	r := &runRecorder{
		queue: queue.NewMemoryQueue[history.Run](recorderCapacity),
		write: write,
		done:  make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *runRecorder) Record(run history.Run) {
	if r.queue.Enqueue(run) == queue.EnqueueDropped {
		observability.HistoryWriteErrorsTotal.Inc()
		slog.Warn("history queue full, dropping run", "queued", r.queue.Len())
	}
}

func (r *runRecorder) loop() {
	defer close(r.done)
	ctx := context.Background()
	for {
		batch, err := r.queue.DequeueBatch(ctx, recorderBatch, recorderWait)
		for _, run := range batch {
			r.write(ctx, run)
		}
		if err != nil {
			return
		}
	}
}

// Close stops accepting runs and waits until the queued ones are written.
func (r *runRecorder) Close() {
	_ = r.queue.Close()
	<-r.done
}
