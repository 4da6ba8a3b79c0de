package models

import "time"

// Note represents a single note. Notes live flat on disk; the folder is
// an attribute, not a directory.
type Note struct {
	ID         string    `json:"id"`
	StorageID  string    `json:"storage_id"`
	FolderPath string    `json:"folder_path"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	Tags       []string  `json:"tags"`
	Trashed    bool      `json:"trashed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	WordCount  int       `json:"word_count"`
}
