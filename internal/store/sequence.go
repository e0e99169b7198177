package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

const (
	sequenceTable = "sequences"

	// appendSequence orders every row of the append-only tables.
	appendSequence = "append"
)

// sequence is a named counter kept in the sequences table. Attempts and
// creative submissions draw from the same one, which gives the two logs
// a single write order independent of row ids and clock resolution.
type sequence struct {
	mu   sync.Mutex
	db   *sql.DB
	name string
}

// newSequence creates the sequences table if needed and seeds name at 1.
func newSequence(db *sql.DB, name string) (*sequence, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + sequenceTable + ` (
		name TEXT PRIMARY KEY,
		next_val INTEGER NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequences table: %w", err)
	}
	_, err = db.Exec(`INSERT OR IGNORE INTO `+sequenceTable+` (name, next_val) VALUES (?, 1)`, name)
	if err != nil {
		return nil, fmt.Errorf("seed sequence %s: %w", name, err)
	}
	return &sequence{db: db, name: name}, nil
}

// Next returns the current value and advances the counter in one statement.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err := s.db.QueryRowContext(ctx,
		`UPDATE `+sequenceTable+` SET next_val = next_val + 1 WHERE name = ? RETURNING next_val - 1`,
		s.name,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", s.name, err)
	}
	return n, nil
}
