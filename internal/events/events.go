package events

import (
	"context"

	"github.com/alfredjeanlab/discovery/internal/model"
)

// Event topic constants
const (
	TopicGraphBuilt      = "discovery.graph.built"
	TopicExportCompleted = "discovery.export.completed"

	// TopicAll matches every discovery event.
	TopicAll = "discovery.>"
)

// Event types

type GraphBuilt struct {
	ProjectID int64             `json:"project_id"`
	Stats     *model.GraphStats `json:"stats"`
}

// Project returns the id of the project the graph was built for.
func (e GraphBuilt) Project() int64 { return e.ProjectID }

type ExportCompleted struct {
	Destination string `json:"destination"`
	Projects    int    `json:"projects"`
	Bytes       int    `json:"bytes"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber receives raw event payloads from the bus. The cancel function
// returned by Subscribe unsubscribes and closes the channel.
type Subscriber interface {
	Subscribe(topic string) (<-chan []byte, func(), error)
	Close() error
}

// NoopPublisher drops every event. The server and scheduler use it when
// DISCOVERY_NATS_URL is unset.
type NoopPublisher struct{}

func (*NoopPublisher) Publish(context.Context, string, any) error { return nil }
func (*NoopPublisher) Close() error                               { return nil }

var (
	_ Publisher  = (*NoopPublisher)(nil)
	_ Publisher  = (*NATSPublisher)(nil)
	_ Subscriber = (*NATSSubscriber)(nil)
)
