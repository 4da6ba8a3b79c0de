package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/notehaven/notehaven/pkg/frontmatter"
	"github.com/notehaven/notehaven/pkg/models"
	"github.com/notehaven/notehaven/pkg/pathutil"
)

// NoteParams describes a note to create.
type NoteParams struct {
	Title      string
	Content    string
	FolderPath string // defaults to the root folder
	Tags       []string
}

// CreateNote writes a new note file and indexes it. Missing folders and
// tags are created on the way.
func (l *Library) CreateNote(storageID string, params NoteParams) (*models.Note, error) {
	folder := params.FolderPath
	if folder == "" {
		folder = pathutil.Root
	}
	norm, err := pathutil.Normalize(folder)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	tags := frontmatter.MergeTags(params.Tags)
	for _, tag := range tags {
		if err := models.ValidateTagName(tag); err != nil {
			return nil, fmt.Errorf("create note: %w", err)
		}
	}

	if err := l.storageExists(storageID); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	now := time.Now()

	fm := &frontmatter.Frontmatter{
		ID:       id,
		Title:    params.Title,
		Folder:   norm,
		Tags:     tags,
		Created:  frontmatter.FormatTimestamp(now),
		Modified: frontmatter.FormatTimestamp(now),
	}
	fileContent := frontmatter.BuildContent(fm, params.Content)

	if err := os.MkdirAll(l.NotesDir(storageID), 0755); err != nil {
		return nil, fmt.Errorf("ensure notes dir: %w", err)
	}
	notePath := l.NoteFilePath(storageID, id)
	if err := os.WriteFile(notePath, []byte(fileContent), 0644); err != nil {
		return nil, fmt.Errorf("write note: %w", err)
	}

	tx, err := l.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := createFolderTx(tx, storageID, norm, now); err != nil {
		return nil, err
	}
	if _, err := ensureTagsTx(tx, storageID, tags, now); err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		INSERT INTO notes_meta (id, storage_id, folder_path, title, content, trashed, created_at, updated_at, word_count)
		VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?)
	`, id, storageID, norm, params.Title, params.Content, now, now, countWords(params.Content))
	if err != nil {
		return nil, fmt.Errorf("index note: %w", err)
	}
	for _, tag := range tags {
		if _, err := tx.Exec("INSERT INTO note_tags (note_id, tag) VALUES (?, ?)", id, tag); err != nil {
			return nil, fmt.Errorf("index note tag: %w", err)
		}
	}
	if l.useFTS {
		_, err = tx.Exec("INSERT INTO notes_fts (id, title, content) VALUES (?, ?, ?)",
			id, params.Title, params.Content)
		if err != nil {
			return nil, fmt.Errorf("index note text: %w", err)
		}
	}

	if err := bumpRev(tx, storageID, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &models.Note{
		ID:         id,
		StorageID:  storageID,
		FolderPath: norm,
		Title:      params.Title,
		Content:    params.Content,
		Tags:       tags,
		CreatedAt:  now,
		UpdatedAt:  now,
		WordCount:  countWords(params.Content),
	}, nil
}

// Note loads one note with its body read from the note file.
func (l *Library) Note(noteID string) (*models.Note, error) {
	note, err := l.noteMeta(noteID)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(l.NoteFilePath(note.StorageID, note.ID))
	if err != nil {
		return nil, fmt.Errorf("read note file: %w", err)
	}
	_, body, err := frontmatter.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse note file: %w", err)
	}
	note.Content = strings.TrimPrefix(body, "\n")

	return note, nil
}

// ResolveNote accepts a full note id or a unique id prefix.
func (l *Library) ResolveNote(idOrPrefix string) (*models.Note, error) {
	if idOrPrefix == "" {
		return nil, fmt.Errorf("note id must not be empty")
	}

	note, err := l.Note(idOrPrefix)
	if err == nil {
		return note, nil
	}

	rows, err := l.db.Query("SELECT id FROM notes_meta WHERE substr(id, 1, ?) = ?",
		len(idOrPrefix), idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("resolve note: %w", err)
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
		return nil, fmt.Errorf("note %q: %w", idOrPrefix, ErrNotFound)
	case 1:
		return l.Note(ids[0])
	default:
		return nil, fmt.Errorf("note id prefix %q is ambiguous", idOrPrefix)
	}
}

// UpdateNote rewrites a note's file with the given state and refreshes
// its index entries. Params describe the complete new state, not a
// partial patch.
func (l *Library) UpdateNote(noteID string, params NoteParams) (*models.Note, error) {
	note, err := l.noteMeta(noteID)
	if err != nil {
		return nil, err
	}

	folder := params.FolderPath
	if folder == "" {
		folder = note.FolderPath
	}
	norm, err := pathutil.Normalize(folder)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	tags := frontmatter.MergeTags(params.Tags)
	for _, tag := range tags {
		if err := models.ValidateTagName(tag); err != nil {
			return nil, fmt.Errorf("update note: %w", err)
		}
	}

	notePath := l.NoteFilePath(note.StorageID, note.ID)
	raw, err := os.ReadFile(notePath)
	if err != nil {
		return nil, fmt.Errorf("read note file: %w", err)
	}
	fm, _, err := frontmatter.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse note file: %w", err)
	}
	if fm == nil {
		return nil, fmt.Errorf("note file %s has no frontmatter", noteID)
	}

	now := time.Now()
	fm.Title = params.Title
	fm.Folder = norm
	fm.Tags = tags
	fm.Modified = frontmatter.FormatTimestamp(now)
	if err := os.WriteFile(notePath, []byte(frontmatter.BuildContent(fm, params.Content)), 0644); err != nil {
		return nil, fmt.Errorf("write note: %w", err)
	}

	tx, err := l.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := l.upsertFromFileTx(tx, note.StorageID, note.ID, fm, params.Content, now); err != nil {
		return nil, err
	}
	if err := bumpRev(tx, note.StorageID, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return l.Note(note.ID)
}

// Notes lists the live notes directly inside one folder, newest first.
func (l *Library) Notes(storageID, folderPath string) ([]*models.Note, error) {
	norm, err := pathutil.Normalize(folderPath)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return l.queryNotes(`
		SELECT id, storage_id, folder_path, title, trashed, created_at, updated_at, word_count
		FROM notes_meta
		WHERE storage_id = ? AND folder_path = ? AND trashed = 0
		ORDER BY updated_at DESC
	`, storageID, norm)
}

// NotesByTag lists the live notes carrying a tag, newest first.
func (l *Library) NotesByTag(storageID, tag string) ([]*models.Note, error) {
	return l.queryNotes(`
		SELECT m.id, m.storage_id, m.folder_path, m.title, m.trashed, m.created_at, m.updated_at, m.word_count
		FROM notes_meta m
		JOIN note_tags nt ON nt.note_id = m.id
		WHERE m.storage_id = ? AND nt.tag = ? AND m.trashed = 0
		ORDER BY m.updated_at DESC
	`, storageID, tag)
}

// TrashedNotes lists a storage's trashed notes, newest first.
func (l *Library) TrashedNotes(storageID string) ([]*models.Note, error) {
	return l.queryNotes(`
		SELECT id, storage_id, folder_path, title, trashed, created_at, updated_at, word_count
		FROM notes_meta
		WHERE storage_id = ? AND trashed = 1
		ORDER BY updated_at DESC
	`, storageID)
}

// TrashNote moves a note to the trash. Trashing a trashed note is a
// no-op.
func (l *Library) TrashNote(noteID string) error {
	return l.setTrashed(noteID, true)
}

// RestoreNote moves a note out of the trash, recreating its folder if
// that was removed in the meantime.
func (l *Library) RestoreNote(noteID string) error {
	return l.setTrashed(noteID, false)
}

func (l *Library) setTrashed(noteID string, trashed bool) error {
	note, err := l.noteMeta(noteID)
	if err != nil {
		return err
	}
	if note.Trashed == trashed {
		return nil
	}

	now := time.Now()
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if !trashed {
		if _, err := createFolderTx(tx, note.StorageID, note.FolderPath, now); err != nil {
			return err
		}
	}
	if err := l.setTrashedTx(tx, note.StorageID, noteID, trashed, now); err != nil {
		return err
	}
	if err := bumpRev(tx, note.StorageID, now); err != nil {
		return err
	}
	return tx.Commit()
}

// setTrashedTx flips the trashed flag in the index and mirrors it into
// the note file's frontmatter. A file that cannot be updated is logged
// and left alone so the index stays usable.
func (l *Library) setTrashedTx(tx *sql.Tx, storageID, noteID string, trashed bool, now time.Time) error {
	_, err := tx.Exec("UPDATE notes_meta SET trashed = ?, updated_at = ? WHERE id = ?",
		trashed, now, noteID)
	if err != nil {
		return fmt.Errorf("update note %s: %w", noteID, err)
	}

	notePath := l.NoteFilePath(storageID, noteID)
	raw, err := os.ReadFile(notePath)
	if err != nil {
		l.log.Warnf("update note file %s: %v", noteID, err)
		return nil
	}
	fm, body, err := frontmatter.Parse(string(raw))
	if err != nil || fm == nil {
		l.log.Warnf("note file %s has no usable frontmatter", noteID)
		return nil
	}
	fm.Trashed = trashed
	fm.Modified = frontmatter.FormatTimestamp(now)
	if err := os.WriteFile(notePath, []byte(frontmatter.BuildContent(fm, body)), 0644); err != nil {
		l.log.Warnf("rewrite note file %s: %v", noteID, err)
	}
	return nil
}

// DeleteNote permanently removes a note, file included.
func (l *Library) DeleteNote(noteID string) error {
	note, err := l.noteMeta(noteID)
	if err != nil {
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

	if l.useFTS {
		if _, err := tx.Exec("DELETE FROM notes_fts WHERE id = ?", noteID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("DELETE FROM note_tags WHERE note_id = ?", noteID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM notes_meta WHERE id = ?", noteID); err != nil {
		return err
	}
	if err := bumpRev(tx, note.StorageID, now); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if err := os.Remove(l.NoteFilePath(note.StorageID, note.ID)); err != nil && !os.IsNotExist(err) {
		l.log.Warnf("remove note file %s: %v", noteID, err)
	}
	return nil
}

// ReindexNote re-reads a note file and refreshes its index entries.
// Used after the file was edited outside the library.
func (l *Library) ReindexNote(noteID string) error {
	note, err := l.noteMeta(noteID)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(l.NoteFilePath(note.StorageID, note.ID))
	if err != nil {
		return fmt.Errorf("read note file: %w", err)
	}
	fm, body, err := frontmatter.Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse note file: %w", err)
	}
	if fm == nil {
		return fmt.Errorf("note file %s has no frontmatter", noteID)
	}

	now := time.Now()
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := l.upsertFromFileTx(tx, note.StorageID, note.ID, fm, body, now); err != nil {
		return err
	}
	if err := bumpRev(tx, note.StorageID, now); err != nil {
		return err
	}
	return tx.Commit()
}

// IndexedNoteIDs returns the ids of every indexed note of a storage,
// trashed notes included.
func (l *Library) IndexedNoteIDs(storageID string) ([]string, error) {
	rows, err := l.db.Query("SELECT id FROM notes_meta WHERE storage_id = ? ORDER BY id", storageID)
	if err != nil {
		return nil, fmt.Errorf("list indexed notes: %w", err)
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
	return ids, rows.Err()
}

// ReindexStorage rebuilds a storage's note index from the files on
// disk. Returns the number of notes indexed. Index entries whose files
// are gone are dropped; files without frontmatter are skipped with a
// warning.
func (l *Library) ReindexStorage(storageID string) (int, error) {
	if err := l.storageExists(storageID); err != nil {
		return 0, err
	}

	ids, err := l.IndexedNoteIDs(storageID)
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}

	entries, err := os.ReadDir(l.NotesDir(storageID))
	if err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("read notes dir: %w", err)
	}

	now := time.Now()
	tx, err := l.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	count := 0
	seen := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		noteID := strings.TrimSuffix(name, ".md")

		raw, err := os.ReadFile(filepath.Join(l.NotesDir(storageID), name))
		if err != nil {
			l.log.Warnf("read note file %s: %v", name, err)
			continue
		}
		fm, body, err := frontmatter.Parse(string(raw))
		if err != nil || fm == nil {
			l.log.Warnf("skipping %s: no usable frontmatter", name)
			continue
		}

		if err := l.upsertFromFileTx(tx, storageID, noteID, fm, body, now); err != nil {
			return 0, err
		}
		seen[noteID] = true
		count++
	}

	// Drop index entries whose files vanished.
	for id := range known {
		if seen[id] {
			continue
		}
		if l.useFTS {
			if _, err := tx.Exec("DELETE FROM notes_fts WHERE id = ?", id); err != nil {
				return 0, err
			}
		}
		if _, err := tx.Exec("DELETE FROM note_tags WHERE note_id = ?", id); err != nil {
			return 0, err
		}
		if _, err := tx.Exec("DELETE FROM notes_meta WHERE id = ?", id); err != nil {
			return 0, err
		}
	}

	if err := bumpRev(tx, storageID, now); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return count, nil
}

// upsertFromFileTx replaces a note's index entries with what its file
// says.
func (l *Library) upsertFromFileTx(tx *sql.Tx, storageID, noteID string, fm *frontmatter.Frontmatter, body string, now time.Time) error {
	folder := fm.Folder
	if folder == "" {
		folder = pathutil.Root
	}
	norm, err := pathutil.Normalize(folder)
	if err != nil {
		return fmt.Errorf("note %s: %w", noteID, err)
	}

	tags := frontmatter.MergeTags(fm.Tags)
	for _, tag := range tags {
		if err := models.ValidateTagName(tag); err != nil {
			return fmt.Errorf("note %s: %w", noteID, err)
		}
	}

	created := now
	if t, err := frontmatter.ParseTimestamp(fm.Created); err == nil {
		created = t
	}
	modified := now
	if t, err := frontmatter.ParseTimestamp(fm.Modified); err == nil {
		modified = t
	}

	body = strings.TrimPrefix(body, "\n")

	if _, err := createFolderTx(tx, storageID, norm, now); err != nil {
		return err
	}
	if _, err := ensureTagsTx(tx, storageID, tags, now); err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO notes_meta (id, storage_id, folder_path, title, content, trashed, created_at, updated_at, word_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, noteID, storageID, norm, fm.Title, body, fm.Trashed, created, modified, countWords(body))
	if err != nil {
		return fmt.Errorf("index note %s: %w", noteID, err)
	}

	if _, err := tx.Exec("DELETE FROM note_tags WHERE note_id = ?", noteID); err != nil {
		return err
	}
	for _, tag := range tags {
		if _, err := tx.Exec("INSERT INTO note_tags (note_id, tag) VALUES (?, ?)", noteID, tag); err != nil {
			return err
		}
	}

	if l.useFTS {
		if _, err := tx.Exec("DELETE FROM notes_fts WHERE id = ?", noteID); err != nil {
			return err
		}
		if _, err := tx.Exec("INSERT INTO notes_fts (id, title, content) VALUES (?, ?, ?)",
			noteID, fm.Title, body); err != nil {
			return err
		}
	}
	return nil
}

// noteMeta loads a note's index row without touching the file.
func (l *Library) noteMeta(noteID string) (*models.Note, error) {
	note := &models.Note{}
	err := l.db.QueryRow(`
		SELECT id, storage_id, folder_path, title, trashed, created_at, updated_at, word_count
		FROM notes_meta WHERE id = ?
	`, noteID).Scan(&note.ID, &note.StorageID, &note.FolderPath, &note.Title,
		&note.Trashed, &note.CreatedAt, &note.UpdatedAt, &note.WordCount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("note %s: %w", noteID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load note: %w", err)
	}

	note.Tags, err = l.noteTags(noteID)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (l *Library) noteTags(noteID string) ([]string, error) {
	rows, err := l.db.Query("SELECT tag FROM note_tags WHERE note_id = ? ORDER BY tag", noteID)
	if err != nil {
		return nil, fmt.Errorf("load note tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// queryNotes runs a query selecting the standard meta columns and
// attaches each note's tags.
func (l *Library) queryNotes(query string, args ...any) ([]*models.Note, error) {
	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note := &models.Note{}
		err := rows.Scan(&note.ID, &note.StorageID, &note.FolderPath, &note.Title,
			&note.Trashed, &note.CreatedAt, &note.UpdatedAt, &note.WordCount)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, note := range notes {
		note.Tags, err = l.noteTags(note.ID)
		if err != nil {
			return nil, err
		}
	}
	return notes, nil
}

// countWords counts whitespace-separated words in a note body.
func countWords(content string) int {
	return len(strings.Fields(content))
}
