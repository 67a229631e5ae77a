package postgres

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/alfredjeanlab/discovery/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanRows scans every remaining row with scan and closes out with rows.Err.
func scanRows[T any](rows *sql.Rows, scan func(scannable) (T, error)) ([]T, error) {
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanProject scans a single row into a model.Project.
// The row must contain columns in the order defined by projectColumns.
func scanProject(row scannable) (*model.Project, error) {
	var p model.Project
	var description sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Description = description.String
	return &p, nil
}

// scanStakeholder scans a stakeholder row with its trailing problem and
// interview id arrays.
func scanStakeholder(row scannable) (*model.Stakeholder, error) {
	var s model.Stakeholder
	var (
		email        sql.NullString
		organization sql.NullString
	)
	err := row.Scan(
		&s.ID,
		&s.ProjectID,
		&s.Name,
		&s.Type,
		&email,
		&organization,
		pq.Array(&s.ProblemIDs),
		pq.Array(&s.InterviewIDs),
	)
	if err != nil {
		return nil, err
	}
	s.Email = email.String
	s.Organization = organization.String
	return &s, nil
}

// scanProblem scans a problem row with its trailing linked-outcome id array.
func scanProblem(row scannable) (*model.Problem, error) {
	var p model.Problem
	var description sql.NullString
	err := row.Scan(
		&p.ID,
		&p.ProjectID,
		&p.StakeholderID,
		&description,
		&p.Severity,
		pq.Array(&p.OutcomeIDs),
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	return &p, nil
}

// scanOutcome scans a single row into a model.Outcome.
func scanOutcome(row scannable) (*model.Outcome, error) {
	var o model.Outcome
	var description sql.NullString
	if err := row.Scan(&o.ID, &o.ProjectID, &o.StakeholderID, &description, &o.Priority); err != nil {
		return nil, err
	}
	o.Description = description.String
	return &o, nil
}

// scanMetric scans a single row into a model.SuccessMetric.
func scanMetric(row scannable) (*model.SuccessMetric, error) {
	var m model.SuccessMetric
	var (
		description  sql.NullString
		targetValue  sql.NullString
		currentValue sql.NullString
		unit         sql.NullString
	)
	if err := row.Scan(&m.ID, &m.OutcomeID, &description, &targetValue, &currentValue, &unit); err != nil {
		return nil, err
	}
	m.Description = description.String
	m.TargetValue = targetValue.String
	m.CurrentValue = currentValue.String
	m.Unit = unit.String
	return &m, nil
}

// scanInterview scans a single row into a model.Interview.
func scanInterview(row scannable) (*model.Interview, error) {
	var i model.Interview
	var interviewer sql.NullString
	if err := row.Scan(&i.ID, &i.ProjectID, &i.StakeholderID, &i.Date, &interviewer, &i.Type); err != nil {
		return nil, err
	}
	i.Interviewer = interviewer.String
	return &i, nil
}
