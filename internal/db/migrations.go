package db

import (
	"database/sql"
	"fmt"
	"regexp"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// sqliteMigrations returns the ordered statements that provision the comments table.
// created_at keeps millisecond precision so newest-first ordering is stable.
func sqliteMigrations(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (
		id         INTEGER  PRIMARY KEY AUTOINCREMENT,
		name       TEXT     NOT NULL,
		message    TEXT     NOT NULL,
		created_at DATETIME NOT NULL DEFAULT (strftime('%%Y-%%m-%%d %%H:%%M:%%f', 'now'))
	)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS "%s_created_at_idx" ON "%s" (created_at DESC)`, table, table),
	}
}

// postgresMigrations mirrors sqliteMigrations for PostgreSQL.
func postgresMigrations(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (
		id         BIGSERIAL   PRIMARY KEY,
		name       TEXT        NOT NULL,
		message    TEXT        NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS "%s_created_at_idx" ON "%s" (created_at DESC)`, table, table),
	}
}

// migrate runs all migrations in order.
func migrate(db *sql.DB, migrations []string) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// validTable rejects names that cannot be used as a bare SQL identifier.
func validTable(table string) error {
	if !identPattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}
