package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alfredjeanlab/discovery/internal/graph"
	"github.com/alfredjeanlab/discovery/internal/model"
)

// Source is the read side of the store needed to export every project.
type Source interface {
	graph.Source
	ListProjects(ctx context.Context) ([]*model.Project, error)
}

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version      string    `json:"version"`
	Type         string    `json:"type"`
	ExportID     string    `json:"export_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	ProjectCount int       `json:"project_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// projectExport is one project with every aggregate it owns, plus the
// stats its relationship graph would report.
type projectExport struct {
	*model.Project
	Stakeholders []*model.Stakeholder `json:"stakeholders"`
	Problems     []*model.Problem     `json:"problems"`
	Outcomes     []*model.Outcome     `json:"outcomes"`
	Interviews   []*model.Interview   `json:"interviews"`
	Stats        *model.GraphStats    `json:"stats"`
}

// ExportOptions tunes the header of an export. The zero value is valid.
type ExportOptions struct {
	ExportID string
	Now      func() time.Time
}

// ExportJSONL writes every project with its aggregates as JSONL to w and
// returns the number of projects written. Projects appear in store order
// (by id).
func ExportJSONL(ctx context.Context, s Source, w io.Writer, opts ExportOptions) (int, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return 0, fmt.Errorf("list projects: %w", err)
	}

	exports := make([]*projectExport, 0, len(projects))
	for _, p := range projects {
		pe, err := loadProject(ctx, s, p)
		if err != nil {
			return 0, err
		}
		exports = append(exports, pe)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:      "1",
		Type:         "header",
		ExportID:     opts.ExportID,
		Timestamp:    now().UTC(),
		ProjectCount: len(exports),
	}); err != nil {
		return 0, fmt.Errorf("encode header: %w", err)
	}

	for _, pe := range exports {
		if err := enc.Encode(record{Type: "project", Data: pe}); err != nil {
			return 0, fmt.Errorf("encode project %d: %w", pe.ID, err)
		}
	}

	return len(exports), nil
}

func loadProject(ctx context.Context, s Source, p *model.Project) (*projectExport, error) {
	stakeholders, err := s.ListStakeholdersByProject(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list stakeholders for %d: %w", p.ID, err)
	}
	problems, err := s.ListProblemsByProject(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list problems for %d: %w", p.ID, err)
	}
	outcomes, err := s.ListOutcomesByProject(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list outcomes for %d: %w", p.ID, err)
	}
	interviews, err := s.ListInterviewsByProject(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list interviews for %d: %w", p.ID, err)
	}

	return &projectExport{
		Project:      p,
		Stakeholders: nonNil(stakeholders),
		Problems:     nonNil(problems),
		Outcomes:     nonNil(outcomes),
		Interviews:   nonNil(interviews),
		Stats:        graph.Stats(stakeholders, problems, outcomes, interviews),
	}, nil
}

// nonNil keeps empty collections as [] rather than null in the export.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
