package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/alfredjeanlab/discovery/internal/events"
	"github.com/alfredjeanlab/discovery/internal/graph"
	"github.com/alfredjeanlab/discovery/internal/store"
)

// Server serves the discovery HTTP API: project listing, relationship
// graphs and the event stream.
type Server struct {
	store     store.Store
	builder   *graph.Builder
	publisher events.Publisher
	logger    *slog.Logger
	sseHub    *sseHub
}

// New returns a Server backed by the given store and publisher. A nil
// publisher disables event publishing; a nil logger uses slog.Default.
func New(s store.Store, p events.Publisher, logger *slog.Logger) *Server {
	if p == nil {
		p = &events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:     s,
		builder:   graph.NewBuilder(s),
		publisher: p,
		logger:    logger,
		sseHub:    newSSEHub(),
	}
}

// projectScoped is implemented by events that belong to a single project.
type projectScoped interface {
	Project() int64
}

// publish sends an event to the bus and to connected SSE clients.
// Both are best-effort; failures are logged but do not fail the caller.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "err", err)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("failed to marshal event for SSE broadcast", "topic", topic, "err", err)
		return
	}
	var projectID int64
	if scoped, ok := event.(projectScoped); ok {
		projectID = scoped.Project()
	}
	s.sseHub.broadcast(topic, projectID, payload)
}
