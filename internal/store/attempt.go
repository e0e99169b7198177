package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// attemptRepo implements AttemptRepo on the attempt_events table.
type attemptRepo struct {
	db  *sql.DB
	seq *sequence
}

func (r *attemptRepo) AppendAttempt(ctx context.Context, user string, ev AttemptEvent) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return &WriteError{Err: err}
	}

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var qid any
	if ev.QuestionID != "" {
		qid = ev.QuestionID
	}

	query, args := builder().
		Insert(attemptTable).
		Columns(colSequence, colTimestamp, colLearner, colSubject, colTopic, colDifficulty, colCorrect, colQuestionID).
		Values(seqNum, ts.UTC(), user, ev.Subject, ev.Topic, ev.Difficulty, ev.Correct, qid).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return &WriteError{Err: fmt.Errorf("insert attempt: %w", err)}
	}
	return nil
}

func (r *attemptRepo) History(ctx context.Context, user string) ([]AttemptEvent, error) {
	query, args := builder().
		Select(colTimestamp, colSubject, colTopic, colDifficulty, colCorrect, colQuestionID).
		From(entsql.Table(attemptTable)).
		Where(entsql.EQ(colLearner, user)).
		OrderBy(colSequence).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var events []AttemptEvent
	for rows.Next() {
		var (
			ev  AttemptEvent
			qid sql.NullString
		)
		if err := rows.Scan(&ev.Timestamp, &ev.Subject, &ev.Topic, &ev.Difficulty, &ev.Correct, &qid); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		ev.QuestionID = qid.String
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return events, nil
}

func (r *attemptRepo) Users(ctx context.Context) ([]string, error) {
	query, args := builder().
		Select(colLearner).
		Distinct().
		From(entsql.Table(attemptTable)).
		OrderBy(colLearner).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
