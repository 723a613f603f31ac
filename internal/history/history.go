package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS queries (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id       TEXT    NOT NULL DEFAULT '',
    query            TEXT    NOT NULL,
    normalized       TEXT    NOT NULL,
    outcome          TEXT    NOT NULL,
    matched_question TEXT    NOT NULL DEFAULT '',
    answer           TEXT    NOT NULL DEFAULT '',
    score            REAL    NOT NULL DEFAULT 0,
    tags             TEXT    NOT NULL DEFAULT '',
    created_at       TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
    use_count        INTEGER NOT NULL DEFAULT 1
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_queries_normalized ON queries(normalized);
CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at);

CREATE VIRTUAL TABLE IF NOT EXISTS queries_fts USING fts5(
    tags,
    content='queries',
    content_rowid='id'
);

CREATE TRIGGER IF NOT EXISTS queries_ai AFTER INSERT ON queries BEGIN
    INSERT INTO queries_fts(rowid, tags) VALUES (new.id, new.tags);
END;
CREATE TRIGGER IF NOT EXISTS queries_ad AFTER DELETE ON queries BEGIN
    INSERT INTO queries_fts(queries_fts, rowid, tags) VALUES('delete', old.id, old.tags);
END;
CREATE TRIGGER IF NOT EXISTS queries_au AFTER UPDATE ON queries BEGIN
    INSERT INTO queries_fts(queries_fts, rowid, tags) VALUES('delete', old.id, old.tags);
    INSERT INTO queries_fts(rowid, tags) VALUES (new.id, new.tags);
END;
`

// Record is what gets written for one answered query.
type Record struct {
	SessionID       string
	Query           string
	Outcome         string
	MatchedQuestion string
	Answer          string
	Score           float64
	Keywords        []string
}

type Interaction struct {
	ID              int64
	SessionID       string
	Query           string
	Outcome         string
	MatchedQuestion string
	Answer          string
	Score           float64
	Tags            string
	CreatedAt       time.Time
	UseCount        int
}

type Store struct {
	db *sql.DB
}

func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// Save records a query. Asking the same question again (ignoring case and
// spacing) updates the stored outcome and increments use_count.
func (s *Store) Save(ctx context.Context, r Record) error {
	norm := normalize(r.Query)
	if norm == "" {
		return nil
	}
	tags := strings.Join(r.Keywords, " ")

	result, err := s.db.ExecContext(ctx,
		`UPDATE queries SET use_count = use_count + 1, query = ?, session_id = ?, outcome = ?,
		        matched_question = ?, answer = ?, score = ?, tags = ?,
		        created_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')
		 WHERE normalized = ?`,
		r.Query, r.SessionID, r.Outcome, r.MatchedQuestion, r.Answer, r.Score, tags, norm,
	)
	if err != nil {
		return fmt.Errorf("updating query: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if rows > 0 {
		return nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO queries (session_id, query, normalized, outcome, matched_question, answer, score, tags)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Query, norm, r.Outcome, r.MatchedQuestion, r.Answer, r.Score, tags,
	)
	if err != nil {
		return fmt.Errorf("inserting query: %w", err)
	}

	return nil
}

const selectColumns = `q.id, q.session_id, q.query, q.outcome, q.matched_question, q.answer, q.score, q.tags, q.created_at, q.use_count`

// Search finds past queries sharing any of the given keywords, best
// matches first.
func (s *Store) Search(ctx context.Context, terms []string, limit int) ([]Interaction, error) {
	ftsQuery := buildFTSQuery(terms)
	if ftsQuery == "" {
		return nil, nil
	}

	query := `SELECT ` + selectColumns + `
		 FROM queries_fts
		 JOIN queries q ON q.id = queries_fts.rowid
		 WHERE queries_fts.tags MATCH ?
		 ORDER BY bm25(queries_fts) ASC, q.use_count DESC, q.created_at DESC
		 LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching queries: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	return scanInteractions(rows)
}

// buildFTSQuery quotes each term so user text can't inject FTS5 syntax,
// and ORs them together for broad matching.
func buildFTSQuery(terms []string) string {
	quoted := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		quoted = append(quoted, `"`+strings.ReplaceAll(t, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " OR ")
}

func (s *Store) List(ctx context.Context, limit int) ([]Interaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+`
		 FROM queries q
		 ORDER BY q.created_at DESC, q.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing queries: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	return scanInteractions(rows)
}

// Unanswered lists the most frequent queries that ended without an answer,
// which is where the corpus most needs new entries.
func (s *Store) Unanswered(ctx context.Context, limit int) ([]Interaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+`
		 FROM queries q
		 WHERE q.outcome IN ('no_match', 'failure')
		 ORDER BY q.use_count DESC, q.created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing unanswered queries: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	return scanInteractions(rows)
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM queries")
	if err != nil {
		return fmt.Errorf("clearing queries: %w", err)
	}
	return nil
}

func scanInteractions(rows *sql.Rows) ([]Interaction, error) {
	var interactions []Interaction
	for rows.Next() {
		var ix Interaction
		var createdAt string
		if err := rows.Scan(&ix.ID, &ix.SessionID, &ix.Query, &ix.Outcome, &ix.MatchedQuestion,
			&ix.Answer, &ix.Score, &ix.Tags, &createdAt, &ix.UseCount); err != nil {
			return nil, fmt.Errorf("scanning query: %w", err)
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			t, _ = time.Parse("2006-01-02T15:04:05Z", createdAt)
		}
		ix.CreatedAt = t
		interactions = append(interactions, ix)
	}
	return interactions, rows.Err()
}
