// Package client provides a transport-agnostic interface for the discovery
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"

	"github.com/alfredjeanlab/discovery/internal/model"
)

// DiscoveryClient is the interface the CLI commands use to communicate with
// the discovery server.
type DiscoveryClient interface {
	// Projects
	ListProjects(ctx context.Context) (*ListProjectsResponse, error)
	GetGraph(ctx context.Context, projectID int64) (*model.GraphData, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// ListProjectsResponse is the response from ListProjects.
type ListProjectsResponse struct {
	Projects []*model.Project `json:"projects"`
	Total    int              `json:"total"`
}
