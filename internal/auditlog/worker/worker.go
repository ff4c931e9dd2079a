// Package worker moves audit events from the in-process inbox to the
// configured publisher without blocking request handling.
package worker

import (
	"context"
	"log/slog"

	"github.com/mjza/mra-core-sub001/internal/auditlog/metrics"
	"github.com/mjza/mra-core-sub001/internal/auditlog/models"
	"github.com/mjza/mra-core-sub001/internal/auditlog/publisher"
)

// Inbox is a buffered, drop-on-full publisher. Mutations enqueue here and
// the worker drains to the downstream publisher in the background.
type Inbox struct {
	ch      chan models.Event
	metrics *metrics.Metrics
}

func NewInbox(size int, m *metrics.Metrics) *Inbox {
	if size <= 0 {
		size = 256
	}
	return &Inbox{ch: make(chan models.Event, size), metrics: m}
}

func (i *Inbox) Publish(_ context.Context, ev models.Event) error {
	select {
	case i.ch <- ev:
	default:
		i.metrics.RecordDropped()
	}
	return nil
}

type Worker struct {
	inbox  *Inbox
	sink   publisher.Publisher
	logger *slog.Logger
}

func New(inbox *Inbox, sink publisher.Publisher, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{inbox: inbox, sink: sink, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-w.inbox.ch:
			if err := w.sink.Publish(ctx, ev); err != nil {
				w.logger.WarnContext(ctx, "delivering audit event failed",
					slog.String("action", ev.Action),
					slog.Int64("log_id", ev.LogID),
					slog.String("error", err.Error()))
			}
		}
	}
}
