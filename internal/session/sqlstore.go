package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLStore implements Repository on SQLite. Answers and dynamic
// questions are stored as JSON columns in their canonical wire shape, so
// a session row round-trips byte-for-byte with the file store's payload.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore opens (or creates) the SQLite database at dbPath with WAL
// mode and runs migrations.
func NewSQLStore(dbPath string) (*SQLStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting %s: %w", pragma, err)
		}
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// migrate creates the schema. Uses CREATE TABLE IF NOT EXISTS for
// non-destructive migration on existing databases.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id                TEXT PRIMARY KEY,
			title             TEXT NOT NULL,
			description       TEXT NOT NULL DEFAULT '',
			cursor            INTEGER NOT NULL DEFAULT 0,
			complete          INTEGER NOT NULL DEFAULT 0,
			answers           TEXT NOT NULL DEFAULT '[]',
			dynamic_questions TEXT NOT NULL DEFAULT '[]',
			created_at        TEXT NOT NULL,
			updated_at        TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
	`)
	return err
}

// Create inserts a new session row, failing if the id already exists.
func (st *SQLStore) Create(s *Session) error {
	answers, dynamic, err := encodeJSON(s)
	if err != nil {
		return err
	}
	_, err = st.db.Exec(`
		INSERT INTO sessions (id, title, description, cursor, complete, answers, dynamic_questions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Title, s.Description, s.Cursor, boolToInt(s.Complete), answers, dynamic, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting session %q: %w", s.ID, err)
	}
	return nil
}

// Load reads a session by id.
func (st *SQLStore) Load(id string) (*Session, error) {
	row := st.db.QueryRow(`
		SELECT id, title, description, cursor, complete, answers, dynamic_questions, created_at, updated_at
		FROM sessions WHERE id = ?`, id)

	var s Session
	var complete int
	var answers, dynamic string
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Cursor, &complete, &answers, &dynamic, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading session %q: %w", id, err)
	}

	s.Complete = complete != 0
	if err := json.Unmarshal([]byte(answers), &s.Answers); err != nil {
		return nil, fmt.Errorf("parsing answers for session %q: %w", id, err)
	}
	if dynamic != "" && dynamic != "[]" {
		if err := json.Unmarshal([]byte(dynamic), &s.Dynamic); err != nil {
			return nil, fmt.Errorf("parsing dynamic questions for session %q: %w", id, err)
		}
	}
	return &s, nil
}

// Save overwrites the stored session. Last write wins.
func (st *SQLStore) Save(s *Session) error {
	answers, dynamic, err := encodeJSON(s)
	if err != nil {
		return err
	}
	res, err := st.db.Exec(`
		UPDATE sessions
		SET title = ?, description = ?, cursor = ?, complete = ?, answers = ?, dynamic_questions = ?, updated_at = ?
		WHERE id = ?`,
		s.Title, s.Description, s.Cursor, boolToInt(s.Complete), answers, dynamic, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("saving session %q: %w", s.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %q: %w", s.ID, ErrNotFound)
	}
	return nil
}

// List returns summaries of all sessions, most recently updated first.
func (st *SQLStore) List() ([]Summary, error) {
	rows, err := st.db.Query(`
		SELECT id, title, complete, answers, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var sum Summary
		var complete int
		var answers string
		if err := rows.Scan(&sum.ID, &sum.Title, &complete, &answers, &sum.CreatedAt, &sum.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sum.Complete = complete != 0
		var parsed []Answer
		if err := json.Unmarshal([]byte(answers), &parsed); err == nil {
			sum.Answers = len(parsed)
		}
		result = append(result, sum)
	}
	return result, rows.Err()
}

// Close closes the database connection.
func (st *SQLStore) Close() error {
	return st.db.Close()
}

func encodeJSON(s *Session) (answers, dynamic string, err error) {
	a, err := json.Marshal(s.Answers)
	if err != nil {
		return "", "", fmt.Errorf("marshaling answers for session %q: %w", s.ID, err)
	}
	d := []byte("[]")
	if len(s.Dynamic) > 0 {
		d, err = json.Marshal(s.Dynamic)
		if err != nil {
			return "", "", fmt.Errorf("marshaling dynamic questions for session %q: %w", s.ID, err)
		}
	}
	return string(a), string(d), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// interface guards
var (
	_ Repository = (*FileStore)(nil)
	_ Repository = (*SQLStore)(nil)
)
