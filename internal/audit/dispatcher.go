package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	ActionAppointmentCreated   = "appointment_created"
	ActionAppointmentConflict  = "appointment_conflict"
	ActionAppointmentConfirmed = "appointment_confirmed"
	ActionAppointmentCancelled = "appointment_cancelled"
	ActionAppointmentCompleted = "appointment_completed"
	ActionWorkingDaysUpdated   = "working_days_updated"
)

type Event struct {
	SaloonID uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID string
	Metadata map[string]any
}

// Sink persists audit events.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	// mu guards closed and the close of queue against in-flight sends.
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(context.Background(), ev); err != nil {
			d.log.Error("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
	}
}

// Dispatch never blocks the request path. Events are dropped when the
// queue is full.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains queued events and waits for the worker, or until ctx ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
