// Package library manages note storages: markdown note files on disk
// plus a sqlite index of storages, folders, tags and note metadata.
package library

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound marks lookups for storages, folders or notes that do
	// not exist. Callers match it with errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrRootFolder is returned when an operation targets the root
	// folder in a way that is not allowed, such as removing it.
	ErrRootFolder = errors.New("the root folder cannot be removed")
)

// Library is the data layer of the application. All mutations bump the
// owning storage's revision counter in the same transaction, so cached
// views can compare revisions instead of diffing folder sets.
type Library struct {
	db      *sql.DB
	dataDir string
	dbPath  string
	useFTS  bool
	log     *logrus.Logger
}

// Open opens (creating if necessary) the library rooted at dataDir.
// The logger may be nil.
func Open(dataDir string, log *logrus.Logger) (*Library, error) {
	if log == nil {
		log = logrus.New()
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	l := &Library{
		db:      db,
		dataDir: dataDir,
		dbPath:  dbPath,
		log:     log,
	}
	if err := l.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	return l, nil
}

// init creates the database schema
func (l *Library) init() error {
	// First, check if FTS5 is available
	l.useFTS = l.checkFTS5Support()

	schema := `
	CREATE TABLE IF NOT EXISTS storages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		rev INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS folders (
		storage_id TEXT NOT NULL,
		path TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (storage_id, path)
	);

	CREATE TABLE IF NOT EXISTS tags (
		storage_id TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (storage_id, name)
	);

	CREATE TABLE IF NOT EXISTS notes_meta (
		id TEXT PRIMARY KEY,
		storage_id TEXT NOT NULL,
		folder_path TEXT NOT NULL,
		title TEXT,
		content TEXT,
		trashed BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP,
		updated_at TIMESTAMP,
		word_count INTEGER
	);

	CREATE TABLE IF NOT EXISTS note_tags (
		note_id TEXT NOT NULL,
		tag TEXT NOT NULL,
		PRIMARY KEY (note_id, tag)
	);

	CREATE INDEX IF NOT EXISTS idx_folders_storage ON folders(storage_id);
	CREATE INDEX IF NOT EXISTS idx_notes_meta_storage ON notes_meta(storage_id);
	CREATE INDEX IF NOT EXISTS idx_notes_meta_folder ON notes_meta(storage_id, folder_path);
	CREATE INDEX IF NOT EXISTS idx_note_tags_tag ON note_tags(tag);
	`

	if _, err := l.db.Exec(schema); err != nil {
		return err
	}

	// Create FTS table if supported
	if l.useFTS {
		ftsSchema := `
		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			id UNINDEXED,
			title,
			content,
			tokenize = 'porter unicode61'
		);
		`

		if _, err := l.db.Exec(ftsSchema); err != nil {
			// If FTS creation fails, disable FTS and continue
			l.useFTS = false
		}
	}

	return nil
}

// checkFTS5Support checks if FTS5 module is available
func (l *Library) checkFTS5Support() bool {
	// Try to create a test FTS5 table to check if it's supported
	_, err := l.db.Exec("CREATE VIRTUAL TABLE IF NOT EXISTS fts5_test USING fts5(content)")
	if err != nil {
		return false
	}

	// Clean up test table
	_, _ = l.db.Exec("DROP TABLE IF EXISTS fts5_test")
	return true
}

// DataDir returns the library's root directory.
func (l *Library) DataDir() string {
	return l.dataDir
}

// DatabasePath returns the path of the sqlite index file.
func (l *Library) DatabasePath() string {
	return l.dbPath
}

// NotesDir returns the directory holding a storage's note files.
func (l *Library) NotesDir(storageID string) string {
	return filepath.Join(l.dataDir, "storages", storageID, "notes")
}

// NoteFilePath returns the on-disk path of a note's markdown file.
func (l *Library) NoteFilePath(storageID, noteID string) string {
	return filepath.Join(l.NotesDir(storageID), noteID+".md")
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

// bumpRev increments a storage's revision counter inside tx.
func bumpRev(tx *sql.Tx, storageID string, now time.Time) error {
	res, err := tx.Exec("UPDATE storages SET rev = rev + 1, updated_at = ? WHERE id = ?", now, storageID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("storage %s: %w", storageID, ErrNotFound)
	}
	return nil
}
