package library

import (
	"fmt"
	"strings"

	"github.com/notehaven/notehaven/pkg/models"
)

// SearchNotes performs a full-text search over live notes. An empty
// storageID searches every storage. Falls back to LIKE matching when
// the sqlite build has no FTS5.
func (l *Library) SearchNotes(storageID, query string, limit int) ([]*models.Note, error) {
	if limit <= 0 {
		limit = 50
	}

	if l.useFTS {
		return l.searchWithFTS(storageID, query, limit)
	}
	return l.searchWithoutFTS(storageID, query, limit)
}

// searchWithFTS performs search using FTS5
func (l *Library) searchWithFTS(storageID, query string, limit int) ([]*models.Note, error) {
	conditions := []string{"m.trashed = 0"}
	var args []any

	if storageID != "" {
		conditions = append(conditions, "m.storage_id = ?")
		args = append(args, storageID)
	}

	searchQuery := fmt.Sprintf(`
		SELECT m.id, m.storage_id, m.folder_path, m.title, m.trashed, m.created_at, m.updated_at, m.word_count
		FROM notes_fts f
		JOIN notes_meta m ON f.id = m.id
		WHERE %s AND notes_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, query, limit)
	return l.queryNotes(searchQuery, args...)
}

// searchWithoutFTS performs search using LIKE queries on the metadata
// table
func (l *Library) searchWithoutFTS(storageID, query string, limit int) ([]*models.Note, error) {
	conditions := []string{"trashed = 0"}
	var args []any

	if storageID != "" {
		conditions = append(conditions, "storage_id = ?")
		args = append(args, storageID)
	}

	searchPattern := "%" + strings.ReplaceAll(query, " ", "%") + "%"
	conditions = append(conditions, "(title LIKE ? OR content LIKE ?)")
	args = append(args, searchPattern, searchPattern)

	searchQuery := fmt.Sprintf(`
		SELECT id, storage_id, folder_path, title, trashed, created_at, updated_at, word_count
		FROM notes_meta
		WHERE %s
		ORDER BY updated_at DESC
		LIMIT ?
	`, strings.Join(conditions, " AND "))

	args = append(args, limit)
	return l.queryNotes(searchQuery, args...)
}
