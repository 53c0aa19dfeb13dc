package library

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/draftwise/draftwise/core"
)

const catalogFile = "library.db"

// timeLayout is fixed-width so stored timestamps sort correctly under
// SQLite's lexicographic TEXT ordering. RFC3339Nano trims trailing zeros,
// which makes a whole-second timestamp ("...:00Z") sort after a fractional
// one ("...:00.5Z").
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// catalog is the SQLite side of the library. It is the source of truth
// for listing, grouping and deletion; the vector index only answers
// similarity queries.
type catalog struct {
	db *sql.DB
}

func openCatalog(dataDir string) (*catalog, error) {
	dbPath := filepath.Join(dataDir, catalogFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	c := &catalog{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return c, nil
}

func (c *catalog) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			creator TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_collection
			ON entries(collection, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_creator
			ON entries(creator)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *catalog) insert(e core.Entry) error {
	_, err := c.db.Exec(
		`INSERT INTO entries (id, collection, creator, title, body, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Collection), e.Creator, e.Title, e.Body, e.Notes,
		e.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}
	return nil
}

func (c *catalog) get(id string) (core.Entry, error) {
	row := c.db.QueryRow(
		`SELECT id, collection, creator, title, body, notes, created_at
		 FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return core.Entry{}, core.ErrNotFound
	}
	if err != nil {
		return core.Entry{}, fmt.Errorf("reading entry: %w", err)
	}
	return e, nil
}

func (c *catalog) list(col core.Collection) ([]core.Entry, error) {
	rows, err := c.db.Query(
		`SELECT id, collection, creator, title, body, notes, created_at
		 FROM entries WHERE collection = ?
		 ORDER BY created_at DESC, id`, string(col))
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []core.Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (c *catalog) delete(id string) (core.Entry, error) {
	e, err := c.get(id)
	if err != nil {
		return core.Entry{}, err
	}
	if _, err := c.db.Exec(`DELETE FROM entries WHERE id = ?`, id); err != nil {
		return core.Entry{}, fmt.Errorf("deleting entry: %w", err)
	}
	return e, nil
}

func (c *catalog) creatorNames() ([]string, error) {
	rows, err := c.db.Query(
		`SELECT DISTINCT creator FROM entries
		 WHERE collection = ? AND creator != ''
		 ORDER BY creator`, string(core.CollectionCreators))
	if err != nil {
		return nil, fmt.Errorf("listing creator names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (c *catalog) count(col core.Collection) (int, error) {
	var n int
	err := c.db.QueryRow(
		`SELECT COUNT(*) FROM entries WHERE collection = ?`, string(col)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

func (c *catalog) close() error {
	return c.db.Close()
}

func scanEntry(scan func(...any) error) (core.Entry, error) {
	var e core.Entry
	var collection, createdAt string
	if err := scan(&e.ID, &collection, &e.Creator, &e.Title, &e.Body, &e.Notes, &createdAt); err != nil {
		return core.Entry{}, err
	}
	e.Collection = core.Collection(collection)
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return core.Entry{}, fmt.Errorf("parsing created_at: %w", err)
	}
	e.CreatedAt = t
	return e, nil
}
