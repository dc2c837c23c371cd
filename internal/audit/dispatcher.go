package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BruksfildServices01/dogtrainer-admin/internal/metrics"
)

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

// Dispatcher writes history events off the request path. A full queue or a
// failed write never fails the caller.
type Dispatcher struct {
	sink  Sink
	queue chan Event

	once sync.Once
	done chan struct{}
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.sink.Log(ctx, ev); err != nil {
			slog.Warn("history write failed",
				"action", ev.Action,
				"email", ev.Email,
				"error", err,
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		metrics.AuditDropped.Inc()
		slog.Warn("history queue full, dropping event", "action", ev.Action)
	}
}

// Close drains queued events and stops the worker.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	<-d.done
}
