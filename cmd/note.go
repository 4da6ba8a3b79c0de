package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notehaven/notehaven/cmd/config"
	"github.com/notehaven/notehaven/pkg/library"
	"github.com/notehaven/notehaven/pkg/models"
)

// NewNoteCmd creates the `nhv note` command group.
func NewNoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Short:   "Create, list and edit notes",
		Aliases: []string{"notes"},
	}
	cmd.AddCommand(newNoteNewCmd())
	cmd.AddCommand(newNoteListCmd())
	cmd.AddCommand(newNoteSearchCmd())
	cmd.AddCommand(newNoteShowCmd())
	cmd.AddCommand(newNoteEditCmd())
	cmd.AddCommand(newNoteTrashCmd())
	cmd.AddCommand(newNoteRestoreCmd())
	cmd.AddCommand(newNoteDeleteCmd())
	return cmd
}

func newNoteNewCmd() *cobra.Command {
	var (
		folder  string
		tags    []string
		content string
		edit    bool
	)

	cmd := &cobra.Command{
		Use:   "new <storage> [title...]",
		Short: "Create a note",
		Long: `Create a markdown note in a storage.

Examples:
  nhv note new work "Meeting minutes"
  nhv note new work "Q3 plan" --folder /projects/q3 --tag planning
  nhv note new work Scratch --edit`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			st, err := lib.ResolveStorage(args[0])
			if err != nil {
				return err
			}

			note, err := lib.CreateNote(st.ID, library.NoteParams{
				Title:      strings.Join(args[1:], " "),
				Content:    content,
				FolderPath: folder,
				Tags:       tags,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created note %s in %s\n", shortID(note.ID), note.FolderPath)

			if edit {
				if err := openInEditor(lib.NoteFilePath(st.ID, note.ID)); err != nil {
					return fmt.Errorf("open editor: %w", err)
				}
				return lib.ReindexNote(note.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "/", "Folder path for the note")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag the note (repeatable)")
	cmd.Flags().StringVar(&content, "content", "", "Initial note content")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open the note in the editor after creating it")

	return cmd
}

func newNoteListCmd() *cobra.Command {
	var (
		folder  string
		tag     string
		trashed bool
	)

	cmd := &cobra.Command{
		Use:     "list <storage>",
		Short:   "List notes of a folder, tag or the trash",
		Aliases: []string{"ls"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			st, err := lib.ResolveStorage(args[0])
			if err != nil {
				return err
			}

			var notes []*models.Note
			switch {
			case trashed:
				notes, err = lib.TrashedNotes(st.ID)
			case tag != "":
				notes, err = lib.NotesByTag(st.ID, tag)
			default:
				notes, err = lib.Notes(st.ID, folder)
			}
			if err != nil {
				return err
			}

			if len(notes) == 0 {
				fmt.Println("No notes.")
				return nil
			}
			renderNotesTable(notes)
			return nil
		},
	}

	cmd.Flags().StringVarP(&folder, "folder", "f", "/", "List notes of this folder")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "List notes carrying this tag")
	cmd.Flags().BoolVar(&trashed, "trashed", false, "List trashed notes")

	return cmd
}

func newNoteSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <storage> <query...>",
		Short: "Full-text search across a storage",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			st, err := lib.ResolveStorage(args[0])
			if err != nil {
				return err
			}

			notes, err := lib.SearchNotes(st.ID, strings.Join(args[1:], " "), limit)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				fmt.Println("No matches.")
				return nil
			}
			renderNotesTable(notes)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of results")

	return cmd
}

func newNoteShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <note>",
		Short: "Print a note to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			note, err := lib.ResolveNote(args[0])
			if err != nil {
				return err
			}
			full, err := lib.Note(note.ID)
			if err != nil {
				return err
			}

			if full.Title != "" {
				fmt.Printf("# %s\n\n", full.Title)
			}
			fmt.Println(full.Content)
			return nil
		},
	}
}

func newNoteEditCmd() *cobra.Command {
	var (
		title  string
		folder string
		tags   []string
	)

	cmd := &cobra.Command{
		Use:   "edit <note>",
		Short: "Open a note in the editor and reindex it",
		Long: `Open a note in the editor and reindex it afterwards.

With --title, --folder or --tag the note is updated in place and the
editor never opens.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			note, err := lib.ResolveNote(args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") || cmd.Flags().Changed("folder") || cmd.Flags().Changed("tag") {
				params := library.NoteParams{
					Title:      note.Title,
					Content:    note.Content,
					FolderPath: note.FolderPath,
					Tags:       note.Tags,
				}
				if cmd.Flags().Changed("title") {
					params.Title = title
				}
				if cmd.Flags().Changed("folder") {
					params.FolderPath = folder
				}
				if cmd.Flags().Changed("tag") {
					params.Tags = tags
				}
				updated, err := lib.UpdateNote(note.ID, params)
				if err != nil {
					return err
				}
				fmt.Printf("Updated note %s\n", shortID(updated.ID))
				return nil
			}

			if err := openInEditor(lib.NoteFilePath(note.StorageID, note.ID)); err != nil {
				return fmt.Errorf("open editor: %w", err)
			}
			if err := lib.ReindexNote(note.ID); err != nil {
				return fmt.Errorf("reindex note: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Set the note title without opening the editor")
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "Move the note to this folder")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Replace the note's tags (repeatable)")

	return cmd
}

func newNoteTrashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trash <note>",
		Short: "Move a note to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			note, err := lib.ResolveNote(args[0])
			if err != nil {
				return err
			}
			if err := lib.TrashNote(note.ID); err != nil {
				return err
			}
			fmt.Printf("Trashed note %s\n", shortID(note.ID))
			return nil
		},
	}
}

func newNoteRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <note>",
		Short: "Restore a note from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			note, err := lib.ResolveNote(args[0])
			if err != nil {
				return err
			}
			if err := lib.RestoreNote(note.ID); err != nil {
				return err
			}
			fmt.Printf("Restored note %s to %s\n", shortID(note.ID), note.FolderPath)
			return nil
		},
	}
}

func newNoteDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <note>",
		Short: "Permanently delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			lib, err := config.OpenLibrary()
			if err != nil {
				return err
			}
			defer lib.Close()

			note, err := lib.ResolveNote(args[0])
			if err != nil {
				return err
			}

			if !force && !confirm(fmt.Sprintf("Permanently delete note %s?", shortID(note.ID))) {
				fmt.Println("Cancelled")
				return nil
			}

			if err := lib.DeleteNote(note.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted note %s\n", shortID(note.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

// openInEditor opens a file in the configured editor.
func openInEditor(path string) error {
	editor := config.Editor()
	if editor == "" {
		editor = "vim" // fallback
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr

	return c.Run()
}
