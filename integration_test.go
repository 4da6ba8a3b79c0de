//go:build integration
// +build integration

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/notehaven/notehaven/pkg/library"
	"github.com/notehaven/notehaven/pkg/pathutil"
)

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	// Test 1: Open library
	t.Run("OpenLibrary", func(t *testing.T) {
		lib, err := library.Open(dataDir, nil)
		if err != nil {
			t.Fatalf("Failed to open library: %v", err)
		}
		defer lib.Close()

		if lib.DataDir() != dataDir {
			t.Errorf("Expected data dir %s, got %s", dataDir, lib.DataDir())
		}
		if _, err := os.Stat(lib.DatabasePath()); err != nil {
			t.Errorf("Database file not created: %v", err)
		}
	})

	// Test 2: Storage operations
	t.Run("StorageOperations", func(t *testing.T) {
		lib, err := library.Open(dataDir, nil)
		if err != nil {
			t.Fatalf("Failed to open library: %v", err)
		}
		defer lib.Close()

		st, err := lib.CreateStorage("Work")
		if err != nil {
			t.Fatalf("Failed to create storage: %v", err)
		}

		if err := lib.CreateFolder(st.ID, "/projects/haven"); err != nil {
			t.Fatalf("Failed to create folder: %v", err)
		}

		retrieved, err := lib.Storage(st.ID)
		if err != nil {
			t.Fatalf("Failed to get storage: %v", err)
		}
		if retrieved.Name != "Work" {
			t.Errorf("Expected storage name 'Work', got %s", retrieved.Name)
		}
		for _, p := range []string{pathutil.Root, "/projects", "/projects/haven"} {
			if _, ok := retrieved.FolderMap[p]; !ok {
				t.Errorf("Expected folder %s in storage", p)
			}
		}
	})

	// Test 3: Persistence across reopen
	t.Run("PersistenceAcrossReopen", func(t *testing.T) {
		lib, err := library.Open(dataDir, nil)
		if err != nil {
			t.Fatalf("Failed to open library: %v", err)
		}

		st, err := lib.CreateStorage("Journal")
		if err != nil {
			t.Fatalf("Failed to create storage: %v", err)
		}
		note, err := lib.CreateNote(st.ID, library.NoteParams{
			Title:   "Day one",
			Content: "It begins.",
			Tags:    []string{"daily"},
		})
		if err != nil {
			t.Fatalf("Failed to create note: %v", err)
		}
		if err := lib.Close(); err != nil {
			t.Fatalf("Failed to close library: %v", err)
		}

		reopened, err := library.Open(dataDir, nil)
		if err != nil {
			t.Fatalf("Failed to reopen library: %v", err)
		}
		defer reopened.Close()

		got, err := reopened.Note(note.ID)
		if err != nil {
			t.Fatalf("Failed to get note after reopen: %v", err)
		}
		if got.Title != "Day one" {
			t.Errorf("Expected note title 'Day one', got %s", got.Title)
		}
		if len(got.Tags) != 1 || got.Tags[0] != "daily" {
			t.Errorf("Expected tags [daily], got %v", got.Tags)
		}
	})
}

func TestEndToEnd(t *testing.T) {
	if os.Getenv("RUN_E2E_TESTS") == "" {
		t.Skip("Skipping E2E test. Set RUN_E2E_TESTS=1 to run.")
	}

	tmpDir := t.TempDir()

	lib, err := library.Open(filepath.Join(tmpDir, "data"), nil)
	if err != nil {
		t.Fatalf("Failed to open library: %v", err)
	}
	defer lib.Close()

	st, err := lib.CreateStorage("Main")
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	// Build a small tree of notes
	if err := lib.CreateFolder(st.ID, "/ideas"); err != nil {
		t.Fatalf("Failed to create folder: %v", err)
	}
	kept, err := lib.CreateNote(st.ID, library.NoteParams{
		Title:      "Sqlite migration notes",
		Content:    "Index rebuild is cheap.",
		FolderPath: "/ideas",
	})
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}
	doomed, err := lib.CreateNote(st.ID, library.NoteParams{Title: "Scratch"})
	if err != nil {
		t.Fatalf("Failed to create note: %v", err)
	}

	// Search finds the note by content
	results, err := lib.SearchNotes(st.ID, "migration", 10)
	if err != nil {
		t.Fatalf("Failed to search notes: %v", err)
	}
	if len(results) != 1 || results[0].ID != kept.ID {
		t.Fatalf("Expected search to find %s, got %d results", kept.ID, len(results))
	}

	// Trash, restore, delete
	if err := lib.TrashNote(doomed.ID); err != nil {
		t.Fatalf("Failed to trash note: %v", err)
	}
	trashed, err := lib.TrashedNotes(st.ID)
	if err != nil {
		t.Fatalf("Failed to list trashed notes: %v", err)
	}
	if len(trashed) != 1 {
		t.Fatalf("Expected 1 trashed note, got %d", len(trashed))
	}
	if err := lib.RestoreNote(doomed.ID); err != nil {
		t.Fatalf("Failed to restore note: %v", err)
	}
	if err := lib.DeleteNote(doomed.ID); err != nil {
		t.Fatalf("Failed to delete note: %v", err)
	}
	if _, err := lib.Note(doomed.ID); err == nil {
		t.Error("Expected deleted note to be gone")
	}

	// Edit the file behind the library's back, then reindex
	path := lib.NoteFilePath(st.ID, kept.ID)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read note file: %v", err)
	}
	edited := strings.Replace(string(data), "Sqlite migration notes", "Sqlite rebuild notes", 1)
	if err := os.WriteFile(path, []byte(edited), 0644); err != nil {
		t.Fatalf("Failed to write note file: %v", err)
	}
	if _, err := lib.ReindexStorage(st.ID); err != nil {
		t.Fatalf("Failed to reindex storage: %v", err)
	}
	reindexed, err := lib.Note(kept.ID)
	if err != nil {
		t.Fatalf("Failed to get note after reindex: %v", err)
	}
	if reindexed.Title != "Sqlite rebuild notes" {
		t.Errorf("Expected reindexed title 'Sqlite rebuild notes', got %s", reindexed.Title)
	}

	t.Logf("Successfully completed end-to-end test")
}
