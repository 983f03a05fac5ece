package events

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, Event) {
	s.count.Add(1)
}

type blockingSink struct {
	gate chan struct{}
}

func (s *blockingSink) Emit(context.Context, Event) {
	<-s.gate
}

func TestDisabledDispatcherIsNil(t *testing.T) {
	if d := New(Config{Enabled: false}, &countingSink{}); d != nil {
		t.Fatal("disabled config produced a dispatcher")
	}

	// The nil dispatcher is a safe no-op everywhere.
	var d *Dispatcher
	d.Emit(context.Background(), Event{EventType: "x"})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher counted drops")
	}
}

func TestCloseDrainsBufferedEvents(t *testing.T) {
	sink := &countingSink{}
	d := New(Config{Enabled: true, BufferSize: 64, DropIfFull: true}, sink)

	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), Event{EventType: "login.success", Timestamp: time.Now()})
	}
	d.Close()

	if got := sink.count.Load(); got != 10 {
		t.Fatalf("sink received %d events, want 10", got)
	}
	if d.Dropped() != 0 {
		t.Fatalf("Dropped() = %d", d.Dropped())
	}
}

func TestDropIfFullCountsInsteadOfBlocking(t *testing.T) {
	gate := make(chan struct{})
	sink := &blockingSink{gate: gate}
	d := New(Config{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// One event occupies the worker, one fills the buffer; the rest must
	// drop without stalling this goroutine.
	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), Event{EventType: "e" + strconv.Itoa(i)})
	}

	if d.Dropped() == 0 {
		t.Fatal("no drops under backpressure")
	}

	close(gate)
	d.Close()
}

func TestEmitAfterCloseIsIgnored(t *testing.T) {
	sink := &countingSink{}
	d := New(Config{Enabled: true, BufferSize: 4, DropIfFull: true}, sink)
	d.Close()
	d.Close()

	d.Emit(context.Background(), Event{EventType: "late"})
	if got := sink.count.Load(); got != 0 {
		t.Fatalf("sink received %d events after close", got)
	}
}

func TestChannelSink(t *testing.T) {
	sink := NewChannelSink(4)
	sink.Emit(context.Background(), Event{EventType: "login.success", UserID: "u1"})

	select {
	case ev := <-sink.Events():
		if ev.EventType != "login.success" || ev.UserID != "u1" {
			t.Fatalf("event = %+v", ev)
		}
	default:
		t.Fatal("event not buffered")
	}

	// A full channel respects context cancellation instead of blocking.
	full := NewChannelSink(1)
	full.Emit(context.Background(), Event{EventType: "one"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	full.Emit(ctx, Event{EventType: "two"})
}

func TestJSONWriterSinkOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), Event{EventType: "login.success", UserID: "u1", Success: true})
	sink.Emit(context.Background(), Event{EventType: "session.logout", Success: true})

	scanner := bufio.NewScanner(&buf)
	var lines int
	for scanner.Scan() {
		lines++
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("line %d is not JSON: %v", lines, err)
		}
		if ev.EventType == "" {
			t.Fatalf("line %d missing event_type", lines)
		}
	}
	if lines != 2 {
		t.Fatalf("wrote %d lines, want 2", lines)
	}
}
