package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// projectRepo implements ProjectRepo on the project_progress table.
type projectRepo struct {
	db *sql.DB
}

func (r *projectRepo) ProjectProgress(ctx context.Context, projectID string) (*ProjectProgress, error) {
	query, args := builder().
		Select(colCompleted, colNotes, colUpdatedAt).
		From(entsql.Table(projectTable)).
		Where(entsql.EQ(colProjectID, projectID)).
		Query()

	var (
		raw []byte
		p   = ProjectProgress{ProjectID: projectID}
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&raw, &p.Notes, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query project %s: %w", projectID, err)
	}
	if err := json.Unmarshal(raw, &p.Completed); err != nil {
		return nil, fmt.Errorf("decode project %s steps: %w", projectID, err)
	}
	return &p, nil
}

func (r *projectRepo) SaveProjectProgress(ctx context.Context, p ProjectProgress) error {
	completed := p.Completed
	if completed == nil {
		completed = []bool{}
	}
	raw, err := json.Marshal(completed)
	if err != nil {
		return &WriteError{Err: fmt.Errorf("encode steps: %w", err)}
	}

	updated := p.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	query, args := builder().
		Insert(projectTable).
		Columns(colProjectID, colCompleted, colNotes, colUpdatedAt).
		Values(p.ProjectID, string(raw), p.Notes, updated.UTC()).
		OnConflict(
			entsql.ConflictColumns(colProjectID),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return &WriteError{Err: fmt.Errorf("save project %s: %w", p.ProjectID, err)}
	}
	return nil
}
