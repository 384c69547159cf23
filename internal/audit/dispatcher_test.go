package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) Log(_ context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func TestDispatcher_DeliversAndDrainsOnClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, zap.NewNop())

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{SaloonID: 1, Action: ActionAppointmentCreated})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.events) != 10 {
		t.Fatalf("delivered %d events, want 10", len(sink.events))
	}
}

func TestDispatcher_DispatchAfterCloseDoesNotPanic(t *testing.T) {
	d := NewDispatcher(&recordingSink{}, zap.NewNop())
	_ = d.Close(context.Background())

	d.Dispatch(Event{Action: ActionAppointmentCancelled})
}

func TestDispatcher_DispatchRacingClose(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, zap.NewNop())

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 50; j++ {
				d.Dispatch(Event{SaloonID: 1, Action: ActionAppointmentCreated})
			}
		}()
	}

	close(start)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
	wg.Wait()

	// Close is idempotent.
	if err := d.Close(ctx); err != nil {
		t.Fatalf("second close: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.events) > 8*50 {
		t.Fatalf("delivered %d events", len(sink.events))
	}
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: ActionAppointmentCreated})
}
