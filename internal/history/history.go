// Package history keeps a session-scoped SQLite log of built cards.
// The default DSN is ":memory:", so nothing survives the process: the log
// exists to power the recent-cards listing, not durable storage.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
)

// MemoryDSN is the default, non-persistent database location.
const MemoryDSN = ":memory:"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS cards (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	terms            TEXT NOT NULL DEFAULT '[]',
	free_space_image TEXT NOT NULL DEFAULT '',
	free_space_icon  TEXT NOT NULL DEFAULT '',
	arrangement      TEXT NOT NULL DEFAULT '[]',
	created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_cards_created_at ON cards(created_at);
`

// Log defines the history operations the card service depends on.
// Consumers should depend on this interface rather than *DB so tests can
// substitute fakes.
type Log interface {
	Record(c *card.Card) error
	Recent(limit int) ([]Entry, error)
	Get(id uuid.UUID) (*card.Card, error)
	Close() error
}

// Verify *DB satisfies Log at compile time.
var _ Log = (*DB)(nil)

// Entry is a lightweight row in the recent-cards listing.
type Entry struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	TermCount     int       `json:"termCount"`
	FreeSpaceIcon string    `json:"freeSpaceIcon,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DB wraps a sql.DB with history-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the history database and applies the schema.
// Use MemoryDSN for a session-only log.
func Open(dsn string) (*DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	conn, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	// An in-memory database lives in a single connection; more would each
	// see their own empty schema.
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Record inserts or replaces a card row.
func (db *DB) Record(c *card.Card) error {
	termsJSON, _ := json.Marshal(c.Terms)
	arrJSON, _ := json.Marshal(c.Arrangement)
	_, err := db.conn.Exec(`
		INSERT INTO cards (id, title, terms, free_space_image, free_space_icon, arrangement, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title            = excluded.title,
			terms            = excluded.terms,
			free_space_image = excluded.free_space_image,
			free_space_icon  = excluded.free_space_icon,
			arrangement      = excluded.arrangement
	`, c.ID.String(), c.Title, string(termsJSON), c.FreeSpaceImage, c.FreeSpaceIcon, string(arrJSON), c.CreatedAt)
	if err != nil {
		return fmt.Errorf("history: record card: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. limit <= 0 means 20.
func (db *DB) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id, title, terms, free_space_icon, created_at
		FROM cards ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var (
			id, title, termsJSON, icon string
			createdAt                  time.Time
		)
		if err := rows.Scan(&id, &title, &termsJSON, &icon, &createdAt); err != nil {
			return nil, fmt.Errorf("history: scan entry: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("history: bad id %q: %w", id, err)
		}
		var terms []string
		_ = json.Unmarshal([]byte(termsJSON), &terms)
		out = append(out, Entry{
			ID:            parsed,
			Title:         title,
			TermCount:     len(terms),
			FreeSpaceIcon: icon,
			CreatedAt:     createdAt,
		})
	}
	return out, rows.Err()
}

// Get reconstructs a full card record from its history row.
func (db *DB) Get(id uuid.UUID) (*card.Card, error) {
	var (
		title, termsJSON, image, icon, arrJSON string
		createdAt                              time.Time
	)
	err := db.conn.QueryRow(`
		SELECT title, terms, free_space_image, free_space_icon, arrangement, created_at
		FROM cards WHERE id = ?
	`, id.String()).Scan(&title, &termsJSON, &image, &icon, &arrJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history: get card: %w", err)
	}

	c := &card.Card{
		ID:             id,
		Title:          title,
		FreeSpaceImage: image,
		FreeSpaceIcon:  icon,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	if err := json.Unmarshal([]byte(termsJSON), &c.Terms); err != nil {
		return nil, fmt.Errorf("history: bad terms for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(arrJSON), &c.Arrangement); err != nil {
		return nil, fmt.Errorf("history: bad arrangement for %s: %w", id, err)
	}
	return c, nil
}
