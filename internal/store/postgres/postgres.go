// Package postgres implements store.Store on PostgreSQL. The store only
// reads; the schema is owned by the migrations embedded here.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/alfredjeanlab/discovery/internal/model"
	"github.com/alfredjeanlab/discovery/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	// A graph build holds up to four connections at once, one per
	// collection, so the pool is sized in multiples of that.
	maxOpenConns = 32
	maxIdleConns = 8
	connLifetime = 5 * time.Minute
	pingTimeout  = 10 * time.Second
)

// PostgresStore is the PostgreSQL-backed store.Store.
type PostgresStore struct {
	db *sql.DB
}

var _ store.Store = (*PostgresStore)(nil)

// New opens databaseURL, checks the connection and applies pending
// migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	drv, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		return fmt.Errorf("migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *PostgresStore) Close() error { return s.db.Close() }

// FindProject returns the project with the given id, or (nil, nil) when no
// such project exists.
func (s *PostgresStore) FindProject(ctx context.Context, id int64) (*model.Project, error) {
	return queryFindProject(ctx, s.db, id)
}

// ListProjects returns every project ordered by id.
func (s *PostgresStore) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return queryListProjects(ctx, s.db)
}

// ListStakeholdersByProject returns the project's stakeholders with their
// problem ids, interview ids and tags.
func (s *PostgresStore) ListStakeholdersByProject(ctx context.Context, projectID int64) ([]*model.Stakeholder, error) {
	return queryListStakeholders(ctx, s.db, projectID)
}

// ListProblemsByProject returns the project's problems with their linked
// outcome ids and tags.
func (s *PostgresStore) ListProblemsByProject(ctx context.Context, projectID int64) ([]*model.Problem, error) {
	return queryListProblems(ctx, s.db, projectID)
}

// ListOutcomesByProject returns the project's outcomes with their success
// metrics and tags.
func (s *PostgresStore) ListOutcomesByProject(ctx context.Context, projectID int64) ([]*model.Outcome, error) {
	return queryListOutcomes(ctx, s.db, projectID)
}

func (s *PostgresStore) ListInterviewsByProject(ctx context.Context, projectID int64) ([]*model.Interview, error) {
	return queryListInterviews(ctx, s.db, projectID)
}
