package comment

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteStore persists comments in a local SQLite database.
type SQLiteStore struct {
	db    *sql.DB
	table string
}

// NewSQLiteStore creates a comment store over db using the given table name.
func NewSQLiteStore(db *sql.DB, table string) (*SQLiteStore, error) {
	quoted, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, table: quoted}, nil
}

// Insert stores a new comment and reads it back with its assigned id and timestamp.
func (s *SQLiteStore) Insert(ctx context.Context, in Input) (*Comment, error) {
	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (name, message) VALUES (?, ?)", s.table),
		in.Name, in.Message,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", sqliteErr(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	var c Comment
	err = s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT id, name, message, created_at FROM %s WHERE id = ?", s.table), id,
	).Scan(&c.ID, &c.Name, &c.Message, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("reading back comment: %w", err)
	}

	return &c, nil
}

// QueryAll returns all comments, newest first.
func (s *SQLiteStore) QueryAll(ctx context.Context) (comments []*Comment, err error) {
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT id, name, message, created_at FROM %s ORDER BY created_at DESC, id DESC", s.table),
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", sqliteErr(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	comments = []*Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Name, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// sqliteErr maps a missing table onto ErrCollectionAbsent.
func sqliteErr(err error) error {
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%w: %v", ErrCollectionAbsent, err)
	}
	return err
}

// quoteIdent validates a table name and quotes it for use in SQL text.
func quoteIdent(name string) (string, error) {
	if !identPattern.MatchString(name) {
		return "", fmt.Errorf("invalid table name %q", name)
	}
	return `"` + name + `"`, nil
}
