package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, fmt.Errorf("create journal dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("journal %s: %w", pragma, err)
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS decisions (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    instance     TEXT    NOT NULL,
    decision_id  TEXT    NOT NULL,
    turn         INTEGER NOT NULL,
    phase        TEXT    NOT NULL,
    kind         TEXT    NOT NULL,
    prompt       TEXT    NOT NULL,
    chosen       TEXT    NOT NULL,
    category     TEXT    NOT NULL,
    pass         INTEGER NOT NULL,
    score        REAL    NOT NULL,
    rationale    TEXT    NOT NULL,
    accepted     INTEGER,
    at_ms        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS decisions_instance ON decisions (instance, id);
`)
	if err != nil {
		return fmt.Errorf("create journal schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Record(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO decisions (
    instance, decision_id, turn, phase, kind, prompt, chosen, category, pass, score, rationale, accepted, at_ms
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, e.Instance, e.DecisionID, e.Turn, e.Phase, e.Kind, e.Prompt, e.Chosen, e.Category,
		e.Pass, e.Score, e.Rationale, nullableBool(e.Accepted), e.At.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("record decision %s: %w", e.DecisionID, err)
	}
	return nil
}

// Outcome marks the latest entry for the decision.
func (s *SQLiteStore) Outcome(ctx context.Context, instance, decisionID string, accepted bool) error {
	_, err := s.db.ExecContext(ctx, `
UPDATE decisions SET accepted = ?
WHERE id = (SELECT MAX(id) FROM decisions WHERE instance = ? AND decision_id = ?)
`, accepted, instance, decisionID)
	if err != nil {
		return fmt.Errorf("record outcome %s: %w", decisionID, err)
	}
	return nil
}

// Recent returns up to n entries for an instance, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, instance string, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT instance, decision_id, turn, phase, kind, prompt, chosen, category, pass, score, rationale, accepted, at_ms
FROM decisions
WHERE instance = ?
ORDER BY id DESC
LIMIT ?
`, instance, n)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e        Entry
			accepted sql.NullBool
			atMs     int64
		)
		if err := rows.Scan(&e.Instance, &e.DecisionID, &e.Turn, &e.Phase, &e.Kind, &e.Prompt,
			&e.Chosen, &e.Category, &e.Pass, &e.Score, &e.Rationale, &accepted, &atMs); err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		if accepted.Valid {
			v := accepted.Bool
			e.Accepted = &v
		}
		e.At = time.UnixMilli(atMs).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
