package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notehaven/notehaven/cmd/config"
	"github.com/notehaven/notehaven/pkg/library"
	"github.com/notehaven/notehaven/pkg/models"
)

// NewDoctorCmd creates the `nhv doctor` command.
func NewDoctorCmd() *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check and repair index issues",
		Long: `The doctor command compares the sqlite index of every storage against
the markdown files on disk and reports drift.

Issues it can detect and fix:
- Note files missing from the index
- Index entries whose files are gone
- Missing note directories`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			storages, err := lib.Storages()
			if err != nil {
				return err
			}

			fmt.Println("Running index doctor...")
			fmt.Println()

			issues := 0
			fixed := 0

			for _, st := range storages {
				storageIssues, err := checkStorage(lib, st)
				if err != nil {
					return err
				}
				if storageIssues == 0 {
					continue
				}
				issues += storageIssues

				if fix {
					count, err := lib.ReindexStorage(st.ID)
					if err != nil {
						return fmt.Errorf("reindex storage %q: %w", st.Name, err)
					}
					fmt.Printf("   Reindexed %q: %d notes\n", st.Name, count)
					fixed += storageIssues
				} else {
					fmt.Println("   Run with --fix to reindex this storage")
				}
				fmt.Println()
			}

			if issues == 0 {
				fmt.Println("No issues found. The index matches the files on disk.")
			} else {
				fmt.Printf("\nSummary: found %d issue(s)", issues)
				if fix {
					fmt.Printf(", fixed %d", fixed)
				}
				fmt.Println()
				if !fix {
					fmt.Println("\nRun 'nhv doctor --fix' to repair the index")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Automatically reindex storages with drift")

	return cmd
}

// checkStorage reports how many notes of one storage disagree between
// index and disk.
func checkStorage(lib *library.Library, st *models.Storage) (int, error) {
	indexed, err := lib.IndexedNoteIDs(st.ID)
	if err != nil {
		return 0, err
	}
	indexedSet := make(map[string]bool, len(indexed))
	for _, id := range indexed {
		indexedSet[id] = true
	}

	entries, err := os.ReadDir(lib.NotesDir(st.ID))
	if os.IsNotExist(err) {
		fmt.Printf("Storage %q: note directory is missing\n", st.Name)
		return 1, nil
	}
	if err != nil {
		return 0, err
	}

	onDisk := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		onDisk[strings.TrimSuffix(name, ".md")] = true
	}

	issues := 0
	for id := range onDisk {
		if !indexedSet[id] {
			fmt.Printf("Storage %q: file %s.md is not indexed\n", st.Name, shortID(id))
			issues++
		}
	}
	for _, id := range indexed {
		if !onDisk[id] {
			fmt.Printf("Storage %q: indexed note %s has no file\n", st.Name, shortID(id))
			issues++
		}
	}
	return issues, nil
}
