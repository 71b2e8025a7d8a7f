// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journals

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Index resolves publication names to bibstems. When opened with a database
// path it consults the abbreviation table first; the built-in table and the
// word-initial fallback cover everything else.
type Index struct {
	db *sql.DB
}

// Open returns an Index. An empty path yields an Index backed by the
// built-in table only. Otherwise the SQLite database at path is opened (and
// created, with schema, if absent).
func Open(path string) (*Index, error) {
	if path == "" {
		return &Index{}, nil
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS abbreviations (
		pub_key TEXT PRIMARY KEY,
		bibstem TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating abbreviation schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close releases the database connection, if any.
func (x *Index) Close() error {
	if x.db == nil {
		return nil
	}
	return x.db.Close()
}

// Add records an abbreviation mapping in the database. The publication name
// is normalized the same way lookups are.
func (x *Index) Add(pub, bibstem string) error {
	if x.db == nil {
		return fmt.Errorf("journal index has no database")
	}
	_, err := x.db.Exec(
		`INSERT INTO abbreviations (pub_key, bibstem) VALUES (?, ?)
		 ON CONFLICT(pub_key) DO UPDATE SET bibstem = excluded.bibstem`,
		normalizeKey(pub), bibstem)
	if err != nil {
		return fmt.Errorf("storing abbreviation for %q: %w", pub, err)
	}
	return nil
}

// BestBibstem returns the best-matching bibstem for a free-text publication
// name. Database entries win over the built-in table; unknown names fall
// back to a stem derived from word initials.
func (x *Index) BestBibstem(pub string) string {
	key := normalizeKey(pub)
	if key == "" {
		return ""
	}

	if x.db != nil {
		var stem string
		err := x.db.QueryRow(
			`SELECT bibstem FROM abbreviations WHERE pub_key = ?`, key).Scan(&stem)
		if err == nil && stem != "" {
			return stem
		}
	}

	if stem, ok := builtinStems[key]; ok {
		return stem
	}
	return stemFromWords(pub)
}
