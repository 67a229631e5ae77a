package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/discovery/internal/model"
)

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const projectColumns = `id, name, description, created_at, updated_at`

func queryFindProject(ctx context.Context, db executor, id int64) (*model.Project, error) {
	row := db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func queryListProjects(ctx context.Context, db executor) ([]*model.Project, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows, scanProject)
}

func queryListStakeholders(ctx context.Context, db executor, projectID int64) ([]*model.Stakeholder, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT s.id, s.project_id, s.name, s.type, s.email, s.organization,
			ARRAY(SELECT p.id FROM problems p WHERE p.stakeholder_id = s.id ORDER BY p.id),
			ARRAY(SELECT i.id FROM interviews i WHERE i.stakeholder_id = s.id ORDER BY i.id)
		FROM stakeholders s
		WHERE s.project_id = $1
		ORDER BY s.id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("stakeholders: %w", err)
	}
	defer rows.Close()

	stakeholders, err := scanRows(rows, scanStakeholder)
	if err != nil {
		return nil, fmt.Errorf("stakeholders: %w", err)
	}
	if len(stakeholders) == 0 {
		return stakeholders, nil
	}

	tags, err := queryTagsByOwner(ctx, db, `
		SELECT st.stakeholder_id, t.id, t.name
		FROM stakeholder_tags st
		JOIN tags t ON t.id = st.tag_id
		JOIN stakeholders s ON s.id = st.stakeholder_id
		WHERE s.project_id = $1
		ORDER BY st.stakeholder_id, t.name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("stakeholder tags: %w", err)
	}
	for _, s := range stakeholders {
		s.Tags = tags[s.ID]
	}
	return stakeholders, nil
}

func queryListProblems(ctx context.Context, db executor, projectID int64) ([]*model.Problem, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT p.id, p.project_id, p.stakeholder_id, p.description, p.severity,
			ARRAY(SELECT po.outcome_id FROM problem_outcomes po WHERE po.problem_id = p.id ORDER BY po.outcome_id)
		FROM problems p
		WHERE p.project_id = $1
		ORDER BY p.id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("problems: %w", err)
	}
	defer rows.Close()

	problems, err := scanRows(rows, scanProblem)
	if err != nil {
		return nil, fmt.Errorf("problems: %w", err)
	}
	if len(problems) == 0 {
		return problems, nil
	}

	tags, err := queryTagsByOwner(ctx, db, `
		SELECT pt.problem_id, t.id, t.name
		FROM problem_tags pt
		JOIN tags t ON t.id = pt.tag_id
		JOIN problems p ON p.id = pt.problem_id
		WHERE p.project_id = $1
		ORDER BY pt.problem_id, t.name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("problem tags: %w", err)
	}
	for _, p := range problems {
		p.Tags = tags[p.ID]
	}
	return problems, nil
}

func queryListOutcomes(ctx context.Context, db executor, projectID int64) ([]*model.Outcome, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, project_id, stakeholder_id, description, priority
		FROM outcomes
		WHERE project_id = $1
		ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("outcomes: %w", err)
	}
	defer rows.Close()

	outcomes, err := scanRows(rows, scanOutcome)
	if err != nil {
		return nil, fmt.Errorf("outcomes: %w", err)
	}
	if len(outcomes) == 0 {
		return outcomes, nil
	}

	// Fetch all metrics of the project in one query (not per-outcome N+1).
	metricRows, err := db.QueryContext(ctx, `
		SELECT m.id, m.outcome_id, m.description, m.target_value, m.current_value, m.unit
		FROM success_metrics m
		JOIN outcomes o ON o.id = m.outcome_id
		WHERE o.project_id = $1
		ORDER BY m.outcome_id, m.id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("success metrics: %w", err)
	}
	defer metricRows.Close()

	metrics, err := scanRows(metricRows, scanMetric)
	if err != nil {
		return nil, fmt.Errorf("success metrics: %w", err)
	}
	metricMap := make(map[int64][]*model.SuccessMetric)
	for _, m := range metrics {
		metricMap[m.OutcomeID] = append(metricMap[m.OutcomeID], m)
	}

	tags, err := queryTagsByOwner(ctx, db, `
		SELECT ot.outcome_id, t.id, t.name
		FROM outcome_tags ot
		JOIN tags t ON t.id = ot.tag_id
		JOIN outcomes o ON o.id = ot.outcome_id
		WHERE o.project_id = $1
		ORDER BY ot.outcome_id, t.name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("outcome tags: %w", err)
	}

	for _, o := range outcomes {
		o.Metrics = metricMap[o.ID]
		o.Tags = tags[o.ID]
	}
	return outcomes, nil
}

func queryListInterviews(ctx context.Context, db executor, projectID int64) ([]*model.Interview, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, project_id, stakeholder_id, date, interviewer, type
		FROM interviews
		WHERE project_id = $1
		ORDER BY id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("interviews: %w", err)
	}
	defer rows.Close()

	interviews, err := scanRows(rows, scanInterview)
	if err != nil {
		return nil, fmt.Errorf("interviews: %w", err)
	}
	return interviews, nil
}

// queryTagsByOwner runs a (owner_id, tag_id, tag_name) query for a project
// and groups the tags by owner id.
func queryTagsByOwner(ctx context.Context, db executor, query string, projectID int64) (map[int64][]model.Tag, error) {
	rows, err := db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make(map[int64][]model.Tag)
	for rows.Next() {
		var ownerID int64
		var t model.Tag
		if err := rows.Scan(&ownerID, &t.ID, &t.Name); err != nil {
			return nil, err
		}
		tags[ownerID] = append(tags[ownerID], t)
	}
	return tags, rows.Err()
}
