package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// creativeRepo implements CreativeRepo on the creative_submissions table.
type creativeRepo struct {
	db  *sql.DB
	seq *sequence
}

func (r *creativeRepo) AppendSubmission(ctx context.Context, sub CreativeSubmission) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return &WriteError{Err: err}
	}

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.Timestamp.IsZero() {
		sub.Timestamp = time.Now()
	}

	query, args := builder().
		Insert(creativeTable).
		Columns(colID, colSequence, colTimestamp, colSubject, colPrompt, colText).
		Values(sub.ID, seqNum, sub.Timestamp.UTC(), sub.Subject, sub.Prompt, sub.Text).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return &WriteError{Err: fmt.Errorf("insert submission: %w", err)}
	}
	return nil
}

func (r *creativeRepo) RecentSubmissions(ctx context.Context, limit int) ([]CreativeSubmission, error) {
	sel := builder().
		Select(colID, colTimestamp, colSubject, colPrompt, colText).
		From(entsql.Table(creativeTable)).
		OrderBy(entsql.Desc(colSequence))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var subs []CreativeSubmission
	for rows.Next() {
		var s CreativeSubmission
		if err := rows.Scan(&s.ID, &s.Timestamp, &s.Subject, &s.Prompt, &s.Text); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *creativeRepo) CountSubmissions(ctx context.Context) (int, error) {
	query, args := builder().
		Select(entsql.Count("*")).
		From(entsql.Table(creativeTable)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}
