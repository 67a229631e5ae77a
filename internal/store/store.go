package store

import (
	"context"

	"github.com/alfredjeanlab/discovery/internal/model"
)

// Store defines the read interface over the discovery aggregates.
// Every List method returns records already filtered to the project, with
// their nested associations populated, ordered by id.
type Store interface {
	// Projects
	FindProject(ctx context.Context, id int64) (*model.Project, error) // nil, nil when absent
	ListProjects(ctx context.Context) ([]*model.Project, error)

	// Aggregates
	ListStakeholdersByProject(ctx context.Context, projectID int64) ([]*model.Stakeholder, error)
	ListProblemsByProject(ctx context.Context, projectID int64) ([]*model.Problem, error)
	ListOutcomesByProject(ctx context.Context, projectID int64) ([]*model.Outcome, error)
	ListInterviewsByProject(ctx context.Context, projectID int64) ([]*model.Interview, error)

	// Lifecycle
	Close() error
}
