// Package sqlite implements the repository interfaces on top of SQLite via
// the pure-Go modernc.org/sqlite driver (no CGo, so builds stay portable).
//
// One *sql.DB pool is opened per process and shared by all repositories;
// ":memory:" gives tests an isolated throwaway database.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB connection pool and implements every repository
// interface. Entity kinds keep independent id sequences: each table uses
// INTEGER PRIMARY KEY AUTOINCREMENT, so ids are monotonic per kind and are
// never reused after a delete.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs the schema
// migration. Foreign keys are switched on so question deletes cascade to
// answers, comments, and tag associations at the store level.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every pool connection to ":memory:" would get its own empty database,
	// so pin the pool to a single connection.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// SQLite ships with foreign keys off; the cascade behaviour depends on
	// them being on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it safe to
// run on every start.
//
// Constraints carry the data-model invariants:
//   - comments: CHECK enforces "attached to a question XOR an answer" even
//     for writes that bypass the Go API
//   - tags: UNIQUE(name) under the default BINARY collation gives the
//     case-sensitive duplicate check, and closes the check-then-insert race
//   - ON DELETE CASCADE chains question → answers → comments
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS questions (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			title           TEXT NOT NULL,
			message         TEXT NOT NULL DEFAULT '',
			submission_time DATETIME NOT NULL,
			view_number     INTEGER NOT NULL DEFAULT 0 CHECK (view_number >= 0),
			vote_number     INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_questions_submission_time
			ON questions(submission_time);

		CREATE TABLE IF NOT EXISTS answers (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			question_id     INTEGER NOT NULL
				REFERENCES questions(id) ON DELETE CASCADE,
			message         TEXT NOT NULL,
			submission_time DATETIME NOT NULL,
			vote_number     INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_answers_question_id
			ON answers(question_id);

		CREATE TABLE IF NOT EXISTS comments (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			question_id     INTEGER
				REFERENCES questions(id) ON DELETE CASCADE,
			answer_id       INTEGER
				REFERENCES answers(id) ON DELETE CASCADE,
			message         TEXT NOT NULL,
			submission_time DATETIME NOT NULL,
			edited_count    INTEGER NOT NULL DEFAULT 0 CHECK (edited_count >= 0),
			CHECK ((question_id IS NULL) <> (answer_id IS NULL))
		);
		CREATE INDEX IF NOT EXISTS idx_comments_question_id
			ON comments(question_id);
		CREATE INDEX IF NOT EXISTS idx_comments_answer_id
			ON comments(answer_id);

		CREATE TABLE IF NOT EXISTS tags (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS question_tags (
			question_id INTEGER NOT NULL
				REFERENCES questions(id) ON DELETE CASCADE,
			tag_id      INTEGER NOT NULL
				REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (question_id, tag_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}
