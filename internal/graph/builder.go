// Package graph assembles the cross-entity relationship graph of a project:
// stakeholders, problems, outcomes, success metrics and interviews woven into
// one node/edge structure for visualization. The graph is derived on every
// call and never stored.
package graph

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/alfredjeanlab/discovery/internal/model"
)

// ErrProjectNotFound is returned by Build when the project id does not resolve.
var ErrProjectNotFound = errors.New("project not found")

// interviewDateLayout formats the date in interview labels.
const interviewDateLayout = "2006-01-02"

// Source is the read side of the store the builder depends on.
type Source interface {
	FindProject(ctx context.Context, id int64) (*model.Project, error)
	ListStakeholdersByProject(ctx context.Context, projectID int64) ([]*model.Stakeholder, error)
	ListProblemsByProject(ctx context.Context, projectID int64) ([]*model.Problem, error)
	ListOutcomesByProject(ctx context.Context, projectID int64) ([]*model.Outcome, error)
	ListInterviewsByProject(ctx context.Context, projectID int64) ([]*model.Interview, error)
}

// Builder produces relationship graphs. It holds no per-call state and is
// safe for concurrent use.
type Builder struct {
	src Source
}

// NewBuilder returns a Builder reading from src.
func NewBuilder(src Source) *Builder {
	return &Builder{src: src}
}

// Build returns the graph of the given project. It fails with
// ErrProjectNotFound when the project does not exist; store errors are
// returned wrapped and no partial graph is produced.
func (b *Builder) Build(ctx context.Context, projectID int64) (*model.GraphData, error) {
	project, err := b.src.FindProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("graph: find project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("%w: %d", ErrProjectNotFound, projectID)
	}

	var (
		stakeholders []*model.Stakeholder
		problems     []*model.Problem
		outcomes     []*model.Outcome
		interviews   []*model.Interview
	)

	// The four collections are independent of each other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if stakeholders, err = b.src.ListStakeholdersByProject(gctx, projectID); err != nil {
			return fmt.Errorf("graph: list stakeholders: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if problems, err = b.src.ListProblemsByProject(gctx, projectID); err != nil {
			return fmt.Errorf("graph: list problems: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if outcomes, err = b.src.ListOutcomesByProject(gctx, projectID); err != nil {
			return fmt.Errorf("graph: list outcomes: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if interviews, err = b.src.ListInterviewsByProject(gctx, projectID); err != nil {
			return fmt.Errorf("graph: list interviews: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Assemble(stakeholders, problems, outcomes, interviews), nil
}

// Assemble weaves already-fetched aggregates into a graph. Nodes and edges
// are emitted in input order: stakeholders, problems with their outcome
// links, outcomes with their metrics, then interviews.
//
// Stats count the input collections, not the emitted nodes; see Stats.
func Assemble(
	stakeholders []*model.Stakeholder,
	problems []*model.Problem,
	outcomes []*model.Outcome,
	interviews []*model.Interview,
) *model.GraphData {
	nodes := make([]*model.GraphNode, 0, len(stakeholders)+len(problems)+len(outcomes)+len(interviews))
	edges := make([]*model.GraphEdge, 0, len(problems)+len(interviews))

	for _, s := range stakeholders {
		nodes = append(nodes, model.NewGraphNode(s.Name, &model.StakeholderData{
			ID:           s.ID,
			Type:         s.Type,
			Email:        s.Email,
			Organization: s.Organization,
			Tags:         model.TagNames(s.Tags),
		}))
	}

	for _, p := range problems {
		node := model.NewGraphNode(Truncate(p.Description, DescriptionLabelLimit), &model.ProblemData{
			ID:          p.ID,
			Description: p.Description,
			Severity:    p.Severity,
			Tags:        model.TagNames(p.Tags),
		})
		nodes = append(nodes, node)

		owner := model.NodeKey{Type: model.NodeStakeholder, ID: p.StakeholderID}
		edges = append(edges, model.NewGraphEdge(owner, node.ID, model.EdgeHasProblem))
		for _, outcomeID := range p.OutcomeIDs {
			outcome := model.NodeKey{Type: model.NodeOutcome, ID: outcomeID}
			edges = append(edges, model.NewGraphEdge(node.ID, outcome, model.EdgeLeadsTo))
		}
	}

	for _, o := range outcomes {
		node := model.NewGraphNode(Truncate(o.Description, DescriptionLabelLimit), &model.OutcomeData{
			ID:           o.ID,
			Description:  o.Description,
			Priority:     o.Priority,
			MetricsCount: len(o.Metrics),
			Tags:         model.TagNames(o.Tags),
		})
		nodes = append(nodes, node)

		for _, m := range o.Metrics {
			metric := model.NewGraphNode(Truncate(m.Description, MetricLabelLimit), &model.MetricData{
				ID:           m.ID,
				Description:  m.Description,
				TargetValue:  m.TargetValue,
				CurrentValue: m.CurrentValue,
				Unit:         m.Unit,
			})
			nodes = append(nodes, metric)
			edges = append(edges, model.NewGraphEdge(node.ID, metric.ID, model.EdgeMeasuredBy))
		}
	}

	for _, iv := range interviews {
		node := model.NewGraphNode("Interview: "+iv.Date.Format(interviewDateLayout), &model.InterviewData{
			ID:          iv.ID,
			Type:        iv.Type,
			Date:        iv.Date,
			Interviewer: iv.Interviewer,
		})
		nodes = append(nodes, node)

		participant := model.NodeKey{Type: model.NodeStakeholder, ID: iv.StakeholderID}
		edges = append(edges, model.NewGraphEdge(participant, node.ID, model.EdgeParticipatedIn))
	}

	return &model.GraphData{
		Nodes: nodes,
		Edges: edges,
		Stats: Stats(stakeholders, problems, outcomes, interviews),
	}
}

// Stats counts the four primary collections. Success metrics are not
// counted.
func Stats(
	stakeholders []*model.Stakeholder,
	problems []*model.Problem,
	outcomes []*model.Outcome,
	interviews []*model.Interview,
) *model.GraphStats {
	return &model.GraphStats{
		StakeholderCount: len(stakeholders),
		ProblemCount:     len(problems),
		OutcomeCount:     len(outcomes),
		InterviewCount:   len(interviews),
	}
}
