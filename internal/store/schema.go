package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names used by the repositories.
const (
	attemptTable  = "attempt_events"
	creativeTable = "creative_submissions"
	projectTable  = "project_progress"
	colID         = "id"
	colSequence   = "sequence"
	colTimestamp  = "timestamp"
	colLearner    = "learner"
	colSubject    = "subject"
	colTopic      = "topic"
	colDifficulty = "difficulty"
	colCorrect    = "correct"
	colQuestionID = "question_id"
	colPrompt     = "prompt"
	colText       = "text"
	colProjectID  = "project_id"
	colCompleted  = "completed"
	colNotes      = "notes"
	colUpdatedAt  = "updated_at"
)

var (
	attemptColumns = []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colLearner, Type: field.TypeString},
		{Name: colSubject, Type: field.TypeString},
		{Name: colTopic, Type: field.TypeString, Default: ""},
		{Name: colDifficulty, Type: field.TypeInt},
		{Name: colCorrect, Type: field.TypeBool},
		{Name: colQuestionID, Type: field.TypeString, Nullable: true},
	}
	attemptEventsTable = &schema.Table{
		Name:       attemptTable,
		Columns:    attemptColumns,
		PrimaryKey: []*schema.Column{attemptColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attemptevent_learner_sequence", Columns: []*schema.Column{attemptColumns[3], attemptColumns[1]}},
		},
	}

	creativeColumns = []*schema.Column{
		{Name: colID, Type: field.TypeString},
		{Name: colSequence, Type: field.TypeInt64, Unique: true},
		{Name: colTimestamp, Type: field.TypeTime},
		{Name: colSubject, Type: field.TypeString},
		{Name: colPrompt, Type: field.TypeString, Size: 2147483647},
		{Name: colText, Type: field.TypeString, Size: 2147483647},
	}
	creativeSubmissionsTable = &schema.Table{
		Name:       creativeTable,
		Columns:    creativeColumns,
		PrimaryKey: []*schema.Column{creativeColumns[0]},
	}

	projectColumns = []*schema.Column{
		{Name: colProjectID, Type: field.TypeString},
		{Name: colCompleted, Type: field.TypeJSON},
		{Name: colNotes, Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: colUpdatedAt, Type: field.TypeTime},
	}
	projectProgressTable = &schema.Table{
		Name:       projectTable,
		Columns:    projectColumns,
		PrimaryKey: []*schema.Column{projectColumns[0]},
	}

	tables = []*schema.Table{
		attemptEventsTable,
		creativeSubmissionsTable,
		projectProgressTable,
	}
)

// migrate creates or upgrades the tables owned by the store.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// builder returns an ent SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}
