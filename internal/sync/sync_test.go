package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	gosync "sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alfredjeanlab/discovery/internal/events"
)

// mockDestination records calls to Write.
type mockDestination struct {
	name   string
	err    error
	writes atomic.Int64
	last   atomic.Value // []byte
}

func (d *mockDestination) Name() string { return d.name }

func (d *mockDestination) Write(_ context.Context, data []byte) error {
	d.writes.Add(1)
	if d.err != nil {
		return d.err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	d.last.Store(cp)
	return nil
}

// capturePublisher records published events.
type capturePublisher struct {
	mu     gosync.Mutex
	events []events.ExportCompleted
}

func (p *capturePublisher) Publish(_ context.Context, _ string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ev, ok := event.(events.ExportCompleted); ok {
		p.events = append(p.events, ev)
	}
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerStartStop(t *testing.T) {
	ms := seedStore()
	dest := &mockDestination{name: "mem"}

	sched := NewScheduler(ms, []Destination{dest}, 50*time.Millisecond, testLogger(), nil)
	sched.Start()

	// Wait for at least the initial sync + one tick.
	time.Sleep(120 * time.Millisecond)
	sched.Stop()

	if writes := dest.writes.Load(); writes < 2 {
		t.Fatalf("expected at least 2 writes, got %d", writes)
	}

	data, ok := dest.last.Load().([]byte)
	if !ok || len(data) == 0 {
		t.Fatal("expected non-empty data")
	}

	lines := nonEmptyLines(string(data))
	// 1 header + 2 projects = 3
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
}

func TestSchedulerStop_NoStart(t *testing.T) {
	sched := NewScheduler(newMockStore(), nil, time.Minute, testLogger(), nil)
	// Stop without Start should not panic.
	sched.Stop()
}

func TestSchedulerMultipleDestinations(t *testing.T) {
	ms := newMockStore()
	dest1 := &mockDestination{name: "one"}
	dest2 := &mockDestination{name: "two"}

	sched := NewScheduler(ms, []Destination{dest1, dest2}, time.Second, testLogger(), nil)
	sched.Start()

	// Wait for the initial sync.
	time.Sleep(50 * time.Millisecond)
	sched.Stop()

	if dest1.writes.Load() < 1 {
		t.Fatal("dest1 expected at least 1 write")
	}
	if dest2.writes.Load() < 1 {
		t.Fatal("dest2 expected at least 1 write")
	}
}

func TestSyncOnce_FailingDestinationDoesNotBlockOthers(t *testing.T) {
	ms := seedStore()
	bad := &mockDestination{name: "bad", err: errors.New("unreachable")}
	good := &mockDestination{name: "good"}
	pub := &capturePublisher{}

	sched := NewScheduler(ms, []Destination{bad, good}, time.Minute, testLogger(), pub)
	sched.SyncOnce(context.Background())

	if bad.writes.Load() != 1 || good.writes.Load() != 1 {
		t.Fatalf("expected one write attempt each, got bad=%d good=%d", bad.writes.Load(), good.writes.Load())
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 completion event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Destination != "good" || ev.Projects != 2 || ev.Bytes == 0 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestSyncOnce_ExportFailureWritesNothing(t *testing.T) {
	ms := seedStore()
	ms.listProjectsErr = errors.New("db down")
	dest := &mockDestination{name: "mem"}

	NewScheduler(ms, []Destination{dest}, time.Minute, testLogger(), nil).SyncOnce(context.Background())

	if dest.writes.Load() != 0 {
		t.Fatalf("expected no writes after export failure, got %d", dest.writes.Load())
	}
}
