package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/alfredjeanlab/discovery/internal/model"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

var (
	projectRowColumns     = []string{"id", "name", "description", "created_at", "updated_at"}
	stakeholderRowColumns = []string{"id", "project_id", "name", "type", "email", "organization", "problem_ids", "interview_ids"}
	problemRowColumns     = []string{"id", "project_id", "stakeholder_id", "description", "severity", "outcome_ids"}
	outcomeRowColumns     = []string{"id", "project_id", "stakeholder_id", "description", "priority"}
	metricRowColumns      = []string{"id", "outcome_id", "description", "target_value", "current_value", "unit"}
	interviewRowColumns   = []string{"id", "project_id", "stakeholder_id", "date", "interviewer", "type"}
	tagRowColumns         = []string{"owner_id", "id", "name"}
)

func TestQueryFindProject(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM projects WHERE id = \\$1").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(projectRowColumns).AddRow(1, "Checkout revamp", nil, now, now))

	p, err := queryFindProject(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == nil || p.ID != 1 || p.Name != "Checkout revamp" || p.Description != "" {
		t.Fatalf("unexpected project: %+v", p)
	}
}

func TestQueryFindProject_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM projects WHERE id = \\$1").WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	p, err := queryFindProject(context.Background(), db, 404)
	if err != nil {
		t.Fatalf("expected nil error for missing project, got %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil project, got %+v", p)
	}
}

func TestQueryFindProject_Error(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT .+ FROM projects WHERE id = \\$1").WithArgs(int64(1)).WillReturnError(boom)

	if _, err := queryFindProject(context.Background(), db, 1); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestQueryListProjects(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .+ FROM projects ORDER BY id").
		WillReturnRows(sqlmock.NewRows(projectRowColumns).
			AddRow(1, "One", "first", now, now).
			AddRow(2, "Two", nil, now, now))

	projects, err := queryListProjects(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projects) != 2 || projects[0].Description != "first" || projects[1].Name != "Two" {
		t.Fatalf("unexpected projects: %+v", projects)
	}
}

func TestQueryListStakeholders(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .+ FROM stakeholders s WHERE s.project_id = \\$1").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(stakeholderRowColumns).
			AddRow(1, 1, "Maria", "customer", "maria@example.com", "Acme", "{3,4}", "{9}").
			AddRow(2, 1, "Lee", "internal", nil, nil, "{}", "{}"))
	mock.ExpectQuery("SELECT st.stakeholder_id, t.id, t.name FROM stakeholder_tags").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(tagRowColumns).
			AddRow(1, 10, "enterprise").
			AddRow(1, 11, "vip"))

	got, err := queryListStakeholders(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 stakeholders, got %d", len(got))
	}
	maria := got[0]
	if maria.Name != "Maria" || maria.Type != model.StakeholderCustomer || maria.Email != "maria@example.com" || maria.Organization != "Acme" {
		t.Fatalf("unexpected stakeholder: %+v", maria)
	}
	if len(maria.ProblemIDs) != 2 || maria.ProblemIDs[0] != 3 || maria.ProblemIDs[1] != 4 {
		t.Fatalf("unexpected problem ids: %v", maria.ProblemIDs)
	}
	if len(maria.InterviewIDs) != 1 || maria.InterviewIDs[0] != 9 {
		t.Fatalf("unexpected interview ids: %v", maria.InterviewIDs)
	}
	if len(maria.Tags) != 2 || maria.Tags[0].Name != "enterprise" || maria.Tags[1].ID != 11 {
		t.Fatalf("unexpected tags: %+v", maria.Tags)
	}
	lee := got[1]
	if lee.Email != "" || lee.Organization != "" || len(lee.ProblemIDs) != 0 || len(lee.Tags) != 0 {
		t.Fatalf("unexpected stakeholder: %+v", lee)
	}
}

func TestQueryListStakeholders_EmptySkipsTags(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM stakeholders s").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(stakeholderRowColumns))

	got, err := queryListStakeholders(context.Background(), db, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no stakeholders, got %d", len(got))
	}
}

func TestQueryListProblems(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .+ FROM problems p WHERE p.project_id = \\$1").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(problemRowColumns).
			AddRow(7, 1, 1, "Checkout is slow", "high", "{3,5}").
			AddRow(8, 1, 2, nil, "low", "{}"))
	mock.ExpectQuery("SELECT pt.problem_id, t.id, t.name FROM problem_tags").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(tagRowColumns).AddRow(8, 12, "docs"))

	got, err := queryListProblems(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 problems, got %d", len(got))
	}
	if got[0].Severity != model.SeverityHigh || got[0].StakeholderID != 1 {
		t.Fatalf("unexpected problem: %+v", got[0])
	}
	if len(got[0].OutcomeIDs) != 2 || got[0].OutcomeIDs[0] != 3 || got[0].OutcomeIDs[1] != 5 {
		t.Fatalf("unexpected outcome ids: %v", got[0].OutcomeIDs)
	}
	if got[1].Description != "" {
		t.Fatalf("null description should scan as empty, got %q", got[1].Description)
	}
	if len(got[1].Tags) != 1 || got[1].Tags[0].Name != "docs" {
		t.Fatalf("unexpected tags: %+v", got[1].Tags)
	}
}

func TestQueryListOutcomes(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .+ FROM outcomes WHERE project_id = \\$1").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(outcomeRowColumns).
			AddRow(3, 1, 1, "Checkout under two seconds", "high").
			AddRow(5, 1, 1, "Fewer abandoned carts", "medium"))
	mock.ExpectQuery("SELECT .+ FROM success_metrics m JOIN outcomes o").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(metricRowColumns).
			AddRow(1, 3, "p95 latency", "2", "5", "s").
			AddRow(2, 3, "error rate", nil, nil, nil))
	mock.ExpectQuery("SELECT ot.outcome_id, t.id, t.name FROM outcome_tags").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(tagRowColumns))

	got, err := queryListOutcomes(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(got))
	}
	if len(got[0].Metrics) != 2 {
		t.Fatalf("expected 2 metrics on outcome 3, got %d", len(got[0].Metrics))
	}
	if m := got[0].Metrics[0]; m.TargetValue != "2" || m.CurrentValue != "5" || m.Unit != "s" {
		t.Fatalf("unexpected metric: %+v", m)
	}
	if m := got[0].Metrics[1]; m.TargetValue != "" || m.Unit != "" {
		t.Fatalf("null metric fields should scan as empty: %+v", m)
	}
	if len(got[1].Metrics) != 0 {
		t.Fatalf("expected no metrics on outcome 5, got %d", len(got[1].Metrics))
	}
	if got[1].Priority != model.PriorityMedium {
		t.Fatalf("unexpected priority %q", got[1].Priority)
	}
}

func TestQueryListOutcomes_MetricError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("metrics table missing")

	mock.ExpectQuery("SELECT .+ FROM outcomes").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(outcomeRowColumns).AddRow(3, 1, 1, "x", "high"))
	mock.ExpectQuery("SELECT .+ FROM success_metrics").WithArgs(int64(1)).WillReturnError(boom)

	if _, err := queryListOutcomes(context.Background(), db, 1); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}

func TestQueryListInterviews(t *testing.T) {
	db, mock := newMockDB(t)
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM interviews WHERE project_id = \\$1").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(interviewRowColumns).
			AddRow(8, 1, 1, date, "Sam", "discovery").
			AddRow(9, 1, 2, date, nil, "feedback"))

	got, err := queryListInterviews(context.Background(), db, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 interviews, got %d", len(got))
	}
	if !got[0].Date.Equal(date) || got[0].Interviewer != "Sam" || got[0].Type != model.InterviewDiscovery {
		t.Fatalf("unexpected interview: %+v", got[0])
	}
	if got[1].Interviewer != "" {
		t.Fatalf("null interviewer should scan as empty, got %q", got[1].Interviewer)
	}
}

func TestQueryListInterviews_ScanError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM interviews").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(interviewRowColumns).AddRow("not-a-number", 1, 1, time.Now(), nil, "x"))

	if _, err := queryListInterviews(context.Background(), db, 1); err == nil {
		t.Fatal("expected scan error")
	}
}

func TestPostgresStore_DelegatesToQueries(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}
	ctx := context.Background()

	mock.ExpectQuery("SELECT .+ FROM projects WHERE id = \\$1").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(projectRowColumns))
	mock.ExpectQuery("FROM interviews").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(interviewRowColumns))

	p, err := s.FindProject(ctx, 9)
	if err != nil || p != nil {
		t.Fatalf("FindProject = %v, %v; want nil, nil", p, err)
	}
	interviews, err := s.ListInterviewsByProject(ctx, 9)
	if err != nil {
		t.Fatalf("ListInterviewsByProject: %v", err)
	}
	if len(interviews) != 0 {
		t.Errorf("got %d interviews, want 0", len(interviews))
	}
}
