package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// undefinedTable is the SQLSTATE for a missing relation.
const undefinedTable = "42P01"

// PostgresStore persists comments in a PostgreSQL table.
type PostgresStore struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresStore creates a comment store over pool using the given table name.
func NewPostgresStore(pool *pgxpool.Pool, table string) (*PostgresStore, error) {
	quoted, err := quoteIdent(table)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{pool: pool, table: quoted}, nil
}

// Insert stores a new comment and returns the row the server created.
func (s *PostgresStore) Insert(ctx context.Context, in Input) (*Comment, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf("INSERT INTO %s (name, message) VALUES ($1, $2) RETURNING id, name, message, created_at", s.table),
		in.Name, in.Message,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", postgresErr(err))
	}

	c, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByPos[Comment])
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", postgresErr(err))
	}
	return c, nil
}

// QueryAll returns all comments, newest first.
func (s *PostgresStore) QueryAll(ctx context.Context) ([]*Comment, error) {
	rows, err := s.pool.Query(ctx,
		fmt.Sprintf("SELECT id, name, message, created_at FROM %s ORDER BY created_at DESC, id DESC", s.table),
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", postgresErr(err))
	}

	comments, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByPos[Comment])
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", postgresErr(err))
	}
	return comments, nil
}

// postgresErr maps SQLSTATE 42P01 onto ErrCollectionAbsent.
func postgresErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return fmt.Errorf("%w: %s", ErrCollectionAbsent, pgErr.Message)
	}
	return err
}
