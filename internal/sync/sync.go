package sync

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alfredjeanlab/discovery/internal/events"
	"github.com/alfredjeanlab/discovery/internal/idgen"
)

// Destination is the interface for a sync target (S3, git, etc.).
type Destination interface {
	// Name identifies the destination in logs and events.
	Name() string
	// Write sends the JSONL payload to the destination.
	Write(ctx context.Context, data []byte) error
}

// Scheduler runs periodic backups of every project to one or more
// destinations.
type Scheduler struct {
	source       Source
	destinations []Destination
	interval     time.Duration
	logger       *slog.Logger
	publisher    events.Publisher

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that exports from the source to the given
// destinations at the specified interval. A nil publisher disables
// completion events.
func NewScheduler(s Source, destinations []Destination, interval time.Duration, logger *slog.Logger, p events.Publisher) *Scheduler {
	if p == nil {
		p = &events.NoopPublisher{}
	}
	return &Scheduler{
		source:       s,
		destinations: destinations,
		interval:     interval,
		logger:       logger,
		publisher:    p,
	}
}

// Start begins periodic sync. It runs an initial sync immediately, then
// on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current sync (if any) to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	s.SyncOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SyncOnce(ctx)
		}
	}
}

// SyncOnce exports once and writes the result to every destination. A
// failing destination does not prevent writes to the others.
func (s *Scheduler) SyncOnce(ctx context.Context) {
	exportID, _ := idgen.ExportID()
	logger := s.logger.With("export_id", exportID)

	var buf bytes.Buffer
	projects, err := ExportJSONL(ctx, s.source, &buf, ExportOptions{ExportID: exportID})
	if err != nil {
		logger.Error("sync export failed", "err", err)
		return
	}
	data := buf.Bytes()

	written := 0
	for _, dest := range s.destinations {
		if err := dest.Write(ctx, data); err != nil {
			logger.Error("sync destination write failed", "destination", dest.Name(), "err", err)
			continue
		}
		written++
		if err := s.publisher.Publish(ctx, events.TopicExportCompleted, events.ExportCompleted{
			Destination: dest.Name(),
			Projects:    projects,
			Bytes:       len(data),
		}); err != nil {
			logger.Warn("failed to publish event", "topic", events.TopicExportCompleted, "err", err)
		}
	}

	logger.Info("sync completed",
		"destinations", len(s.destinations),
		"written", written,
		"projects", projects,
		"bytes", len(data),
	)
}
