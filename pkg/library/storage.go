package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/notehaven/notehaven/pkg/models"
	"github.com/notehaven/notehaven/pkg/pathutil"
)

// CreateStorage creates a new storage with an implicit root folder.
func (l *Library) CreateStorage(name string) (*models.Storage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("storage name must not be empty")
	}

	id := uuid.NewString()
	now := time.Now()

	tx, err := l.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.Exec(`
		INSERT INTO storages (id, name, rev, created_at, updated_at)
		VALUES (?, ?, 0, ?, ?)
	`, id, name, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert storage: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO folders (storage_id, path, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, id, pathutil.Root, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert root folder: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(l.NotesDir(id), 0755); err != nil {
		return nil, fmt.Errorf("create notes dir: %w", err)
	}

	return l.Storage(id)
}

// Storage loads one storage with its folder and tag maps.
func (l *Library) Storage(id string) (*models.Storage, error) {
	s := &models.Storage{ID: id}
	err := l.db.QueryRow(`
		SELECT name, rev, created_at, updated_at FROM storages WHERE id = ?
	`, id).Scan(&s.Name, &s.Rev, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("storage %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load storage: %w", err)
	}

	if err := l.loadMaps(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Storages lists all storages in creation order, maps included.
func (l *Library) Storages() ([]*models.Storage, error) {
	rows, err := l.db.Query(`
		SELECT id, name, rev, created_at, updated_at
		FROM storages
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list storages: %w", err)
	}
	defer rows.Close()

	var storages []*models.Storage
	for rows.Next() {
		s := &models.Storage{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Rev, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		storages = append(storages, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, s := range storages {
		if err := l.loadMaps(s); err != nil {
			return nil, err
		}
	}
	return storages, nil
}

// loadMaps fills a storage's FolderMap and TagMap.
func (l *Library) loadMaps(s *models.Storage) error {
	rows, err := l.db.Query(`
		SELECT path, created_at, updated_at FROM folders WHERE storage_id = ?
	`, s.ID)
	if err != nil {
		return fmt.Errorf("load folders: %w", err)
	}
	defer rows.Close()

	s.FolderMap = make(map[string]*models.Folder)
	for rows.Next() {
		f := &models.Folder{}
		if err := rows.Scan(&f.Path, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return err
		}
		s.FolderMap[f.Path] = f
	}
	if err := rows.Err(); err != nil {
		return err
	}

	tagRows, err := l.db.Query(`
		SELECT name, created_at FROM tags WHERE storage_id = ?
	`, s.ID)
	if err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	defer tagRows.Close()

	s.TagMap = make(map[string]*models.Tag)
	for tagRows.Next() {
		t := &models.Tag{}
		if err := tagRows.Scan(&t.Name, &t.CreatedAt); err != nil {
			return err
		}
		s.TagMap[t.Name] = t
	}
	return tagRows.Err()
}

// ResolveStorage accepts a storage id or a unique storage name and
// returns the storage it identifies.
func (l *Library) ResolveStorage(nameOrID string) (*models.Storage, error) {
	s, err := l.Storage(nameOrID)
	if err == nil {
		return s, nil
	}

	rows, err := l.db.Query("SELECT id FROM storages WHERE name = ?", nameOrID)
	if err != nil {
		return nil, fmt.Errorf("resolve storage: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("storage %q: %w", nameOrID, ErrNotFound)
	case 1:
		return l.Storage(ids[0])
	default:
		return nil, fmt.Errorf("storage name %q is ambiguous, use the id", nameOrID)
	}
}

// RenameStorage changes a storage's display name.
func (l *Library) RenameStorage(storageID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("storage name must not be empty")
	}

	res, err := l.db.Exec(`
		UPDATE storages SET name = ?, rev = rev + 1, updated_at = ? WHERE id = ?
	`, name, time.Now(), storageID)
	if err != nil {
		return fmt.Errorf("rename storage: %w", err)
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

// RemoveStorage deletes a storage with everything in it, note files
// included.
func (l *Library) RemoveStorage(storageID string) error {
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if l.useFTS {
		_, err = tx.Exec(`
			DELETE FROM notes_fts WHERE id IN (SELECT id FROM notes_meta WHERE storage_id = ?)
		`, storageID)
		if err != nil {
			return fmt.Errorf("delete search entries: %w", err)
		}
	}
	_, err = tx.Exec(`
		DELETE FROM note_tags WHERE note_id IN (SELECT id FROM notes_meta WHERE storage_id = ?)
	`, storageID)
	if err != nil {
		return fmt.Errorf("delete note tags: %w", err)
	}
	for _, stmt := range []string{
		"DELETE FROM notes_meta WHERE storage_id = ?",
		"DELETE FROM folders WHERE storage_id = ?",
		"DELETE FROM tags WHERE storage_id = ?",
	} {
		if _, err := tx.Exec(stmt, storageID); err != nil {
			return err
		}
	}

	res, err := tx.Exec("DELETE FROM storages WHERE id = ?", storageID)
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

	if err := tx.Commit(); err != nil {
		return err
	}

	storageDir := filepath.Dir(l.NotesDir(storageID))
	if err := os.RemoveAll(storageDir); err != nil {
		l.log.Warnf("remove storage files: %v", err)
	}
	return nil
}

// CreateFolder creates a folder and any missing parent folders. Creating
// a folder that already exists, including the root, is a no-op. The
// revision is only bumped when at least one folder row was added.
func (l *Library) CreateFolder(storageID, folderPath string) error {
	norm, err := pathutil.Normalize(folderPath)
	if err != nil {
		return fmt.Errorf("create folder: %w", err)
	}

	if err := l.storageExists(storageID); err != nil {
		return err
	}

	now := time.Now()
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	created, err := createFolderTx(tx, storageID, norm, now)
	if err != nil {
		return err
	}
	if created {
		if err := bumpRev(tx, storageID, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// createFolderTx inserts the folder and its missing ancestors, reporting
// whether any row was actually added.
func createFolderTx(tx *sql.Tx, storageID, folderPath string, now time.Time) (bool, error) {
	created := false
	for _, prefix := range pathutil.Prefixes(folderPath) {
		res, err := tx.Exec(`
			INSERT OR IGNORE INTO folders (storage_id, path, created_at, updated_at)
			VALUES (?, ?, ?, ?)
		`, storageID, prefix, now, now)
		if err != nil {
			return created, fmt.Errorf("insert folder %s: %w", prefix, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return created, err
		}
		if n > 0 {
			created = true
		}
	}
	return created, nil
}

// RemoveFolder deletes a folder and its whole subtree. Notes living in
// the subtree are moved to the trash, keeping their folder path so they
// can be restored later. The root folder cannot be removed.
func (l *Library) RemoveFolder(storageID, folderPath string) error {
	norm, err := pathutil.Normalize(folderPath)
	if err != nil {
		return fmt.Errorf("remove folder: %w", err)
	}
	if pathutil.IsRoot(norm) {
		return ErrRootFolder
	}

	now := time.Now()
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rows, err := tx.Query("SELECT path FROM folders WHERE storage_id = ?", storageID)
	if err != nil {
		return fmt.Errorf("list folders: %w", err)
	}
	var doomed []string
	found := false
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return err
		}
		if p == norm {
			found = true
		}
		if p == norm || pathutil.IsAncestor(norm, p) {
			doomed = append(doomed, p)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	if !found {
		return fmt.Errorf("folder %s: %w", norm, ErrNotFound)
	}

	for _, p := range doomed {
		if _, err := tx.Exec("DELETE FROM folders WHERE storage_id = ? AND path = ?", storageID, p); err != nil {
			return fmt.Errorf("delete folder %s: %w", p, err)
		}
	}

	// Trash every live note under the removed subtree.
	noteRows, err := tx.Query(`
		SELECT id, folder_path FROM notes_meta WHERE storage_id = ? AND trashed = 0
	`, storageID)
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}
	var trash []string
	for noteRows.Next() {
		var id, fp string
		if err := noteRows.Scan(&id, &fp); err != nil {
			noteRows.Close()
			return err
		}
		if fp == norm || pathutil.IsAncestor(norm, fp) {
			trash = append(trash, id)
		}
	}
	if err := noteRows.Err(); err != nil {
		noteRows.Close()
		return err
	}
	noteRows.Close()

	for _, noteID := range trash {
		if err := l.setTrashedTx(tx, storageID, noteID, true, now); err != nil {
			return err
		}
	}

	if err := bumpRev(tx, storageID, now); err != nil {
		return err
	}
	return tx.Commit()
}

// ensureTagsTx inserts any missing tag rows, reporting whether one was
// added.
func ensureTagsTx(tx *sql.Tx, storageID string, tags []string, now time.Time) (bool, error) {
	created := false
	for _, tag := range tags {
		res, err := tx.Exec(`
			INSERT OR IGNORE INTO tags (storage_id, name, created_at)
			VALUES (?, ?, ?)
		`, storageID, tag, now)
		if err != nil {
			return created, fmt.Errorf("insert tag %s: %w", tag, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return created, err
		}
		if n > 0 {
			created = true
		}
	}
	return created, nil
}

func (l *Library) storageExists(storageID string) error {
	var one int
	err := l.db.QueryRow("SELECT 1 FROM storages WHERE id = ?", storageID).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("storage %s: %w", storageID, ErrNotFound)
	}
	return err
}
