package sync

import (
	"context"
	"sort"

	"github.com/alfredjeanlab/discovery/internal/model"
)

// mockStore is a minimal in-memory source for sync tests.
type mockStore struct {
	projects     map[int64]*model.Project
	stakeholders map[int64][]*model.Stakeholder
	problems     map[int64][]*model.Problem
	outcomes     map[int64][]*model.Outcome
	interviews   map[int64][]*model.Interview

	listProjectsErr error
	outcomesErr     error
}

func newMockStore() *mockStore {
	return &mockStore{
		projects:     make(map[int64]*model.Project),
		stakeholders: make(map[int64][]*model.Stakeholder),
		problems:     make(map[int64][]*model.Problem),
		outcomes:     make(map[int64][]*model.Outcome),
		interviews:   make(map[int64][]*model.Interview),
	}
}

func (m *mockStore) FindProject(_ context.Context, id int64) (*model.Project, error) {
	return m.projects[id], nil
}

func (m *mockStore) ListProjects(_ context.Context) ([]*model.Project, error) {
	if m.listProjectsErr != nil {
		return nil, m.listProjectsErr
	}
	var result []*model.Project
	for _, p := range m.projects {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockStore) ListStakeholdersByProject(_ context.Context, projectID int64) ([]*model.Stakeholder, error) {
	return m.stakeholders[projectID], nil
}

func (m *mockStore) ListProblemsByProject(_ context.Context, projectID int64) ([]*model.Problem, error) {
	return m.problems[projectID], nil
}

func (m *mockStore) ListOutcomesByProject(_ context.Context, projectID int64) ([]*model.Outcome, error) {
	if m.outcomesErr != nil {
		return nil, m.outcomesErr
	}
	return m.outcomes[projectID], nil
}

func (m *mockStore) ListInterviewsByProject(_ context.Context, projectID int64) ([]*model.Interview, error) {
	return m.interviews[projectID], nil
}
