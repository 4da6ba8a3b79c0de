package library

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/notehaven/notehaven/pkg/frontmatter"
	"github.com/notehaven/notehaven/pkg/pathutil"
)

// ImportResult summarizes an ImportDir run.
type ImportResult struct {
	Imported int
	Skipped  int
}

// ImportDir copies every markdown file under dir into the storage as
// new notes. A file's directory relative to dir becomes its folder
// path; frontmatter contributes title and tags when present, otherwise
// a leading H1 or the filename is used as the title. Files that cannot
// be read or stored are skipped with a warning.
func (l *Library) ImportDir(storageID, dir string) (ImportResult, error) {
	var res ImportResult

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			l.log.Warnf("read %s: %v", rel, err)
			res.Skipped++
			return nil
		}

		params := importParams(string(raw), rel)
		if sub := filepath.Dir(rel); sub != "." {
			params.FolderPath = "/" + filepath.ToSlash(sub)
		} else {
			params.FolderPath = pathutil.Root
		}

		if _, err := l.CreateNote(storageID, params); err != nil {
			l.log.Warnf("import %s: %v", rel, err)
			res.Skipped++
			return nil
		}
		res.Imported++
		return nil
	})
	return res, err
}

// importParams derives the note's title, content and tags from the
// file. Existing frontmatter wins; plain files fall back to their
// first heading, then the filename.
func importParams(raw, rel string) NoteParams {
	fm, body, err := frontmatter.Parse(raw)
	if err == nil && fm != nil {
		title := fm.Title
		if title == "" {
			title = titleFromContent(body, rel)
		}
		return NoteParams{
			Title:   title,
			Content: strings.TrimPrefix(body, "\n"),
			Tags:    fm.Tags,
		}
	}
	return NoteParams{Title: titleFromContent(raw, rel), Content: raw}
}

func titleFromContent(content, rel string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if after, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(after)
		}
		break
	}
	return strings.TrimSuffix(filepath.Base(rel), ".md")
}
