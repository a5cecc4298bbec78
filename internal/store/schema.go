// Package store provides the SQLite-backed agenda row store.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS agendas (
	id               TEXT PRIMARY KEY,
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL,
	user_id          TEXT,
	meeting_title    TEXT NOT NULL,
	opening          TEXT NOT NULL DEFAULT '',
	topics           TEXT NOT NULL DEFAULT '[]',
	wrap_up          TEXT NOT NULL DEFAULT '',
	is_public        INTEGER NOT NULL DEFAULT 1,
	share_token      TEXT NOT NULL UNIQUE,
	view_count       INTEGER NOT NULL DEFAULT 0,
	meeting_date     DATETIME,
	meeting_duration INTEGER,
	tags             TEXT,
	notes            TEXT
);

CREATE INDEX IF NOT EXISTS idx_agendas_user ON agendas(user_id);
`

// DB wraps a sql.DB with agenda-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
