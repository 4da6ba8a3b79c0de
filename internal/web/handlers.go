package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/notehaven/notehaven/pkg/library"
	"github.com/notehaven/notehaven/pkg/models"
	"github.com/notehaven/notehaven/pkg/navtree"
	"github.com/notehaven/notehaven/pkg/pathutil"
	"github.com/notehaven/notehaven/pkg/route"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"fmtTime": func(t time.Time) string {
		return t.Local().Format("Jan 2, 2006 15:04")
	},
}).ParseFS(templateFS, "templates/*.html"))

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// page is the data every template renders from. Pages fill the fields
// they need and leave the rest zero.
type page struct {
	Title    string
	Storages []*models.Storage
	Storage  *models.Storage
	Sidebar  []*navtree.Node
	Heading  string
	Notes    []*models.Note
	Note     *models.Note
	NoteHTML template.HTML
	Query    string
}

// sidebarNodes derives the navigation tree of one storage without
// menus. Same shape as the TUI: Notes, the folder tree, Tags, Trash.
func sidebarNodes(s *models.Storage) []*navtree.Node {
	tree := navtree.BuildPathTree(s.FolderPaths())

	nodes := []*navtree.Node{{
		Name:     "Notes",
		Href:     route.Notes{StorageID: s.ID, FolderPath: pathutil.Root}.Href(),
		Children: []*navtree.Node{},
	}}
	nodes = append(nodes, navtree.ConvertTree(tree, s.ID, pathutil.Root, nil)...)

	names := s.TagNames()
	tagChildren := make([]*navtree.Node, 0, len(names))
	for _, name := range names {
		tagChildren = append(tagChildren, &navtree.Node{
			Name:     name,
			Href:     route.Tag{StorageID: s.ID, Tag: name}.Href(),
			Children: []*navtree.Node{},
		})
	}
	nodes = append(nodes,
		&navtree.Node{Name: "Tags", Children: tagChildren},
		&navtree.Node{
			Name:     "Trash Can",
			Href:     route.Trash{StorageID: s.ID}.Href(),
			Children: []*navtree.Node{},
		},
	)
	return nodes
}

func renderMarkdown(content string) (template.HTML, error) {
	var b strings.Builder
	if err := markdown.Convert([]byte(content), &b); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

// render executes the named page template. Output is buffered so a
// template failure becomes a clean 500 instead of a torn page.
func (s *Server) render(w http.ResponseWriter, name string, data page) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Warnf("render %s page: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// loadStorage resolves the storageID URL param, writing the error
// response itself when the storage cannot be loaded.
func (s *Server) loadStorage(w http.ResponseWriter, r *http.Request) (*models.Storage, bool) {
	st, err := s.lib.Storage(chi.URLParam(r, "storageID"))
	if errors.Is(err, library.ErrNotFound) {
		http.NotFound(w, r)
		return nil, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return st, true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	storages, err := s.lib.Storages()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, "index", page{Title: "Storages", Storages: storages})
}

// handleStorage shows the storage's root note list, mirroring what
// selecting the storage node does in the TUI.
func (s *Server) handleStorage(w http.ResponseWriter, r *http.Request) {
	s.renderNotesPage(w, r, pathutil.Root)
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	folderPath := pathutil.Root
	if rest := chi.URLParam(r, "*"); rest != "" {
		normalized, err := pathutil.Normalize("/" + rest)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		folderPath = normalized
	}
	s.renderNotesPage(w, r, folderPath)
}

func (s *Server) renderNotesPage(w http.ResponseWriter, r *http.Request, folderPath string) {
	st, ok := s.loadStorage(w, r)
	if !ok {
		return
	}
	if _, ok := st.FolderMap[folderPath]; !ok {
		http.NotFound(w, r)
		return
	}

	notes, err := s.lib.Notes(st.ID, folderPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	heading := "Notes"
	if !pathutil.IsRoot(folderPath) {
		heading = folderPath
	}
	s.render(w, "notes", page{
		Title:   st.Name,
		Storage: st,
		Sidebar: sidebarNodes(st),
		Heading: heading,
		Notes:   notes,
	})
}

func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loadStorage(w, r)
	if !ok {
		return
	}
	tag := chi.URLParam(r, "tag")
	if _, ok := st.TagMap[tag]; !ok {
		http.NotFound(w, r)
		return
	}

	notes, err := s.lib.NotesByTag(st.ID, tag)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, "notes", page{
		Title:   st.Name,
		Storage: st,
		Sidebar: sidebarNodes(st),
		Heading: "#" + tag,
		Notes:   notes,
	})
}

func (s *Server) handleTrash(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loadStorage(w, r)
	if !ok {
		return
	}
	notes, err := s.lib.TrashedNotes(st.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, "notes", page{
		Title:   st.Name,
		Storage: st,
		Sidebar: sidebarNodes(st),
		Heading: "Trash Can",
		Notes:   notes,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loadStorage(w, r)
	if !ok {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var notes []*models.Note
	if query != "" {
		var err error
		notes, err = s.lib.SearchNotes(st.ID, query, 50)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	s.render(w, "search", page{
		Title:   st.Name,
		Storage: st,
		Sidebar: sidebarNodes(st),
		Heading: fmt.Sprintf("Search %q", query),
		Notes:   notes,
		Query:   query,
	})
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.lib.Note(chi.URLParam(r, "noteID"))
	if errors.Is(err, library.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	st, err := s.lib.Storage(note.StorageID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rendered, err := renderMarkdown(note.Content)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.render(w, "note", page{
		Title:    note.Title,
		Storage:  st,
		Sidebar:  sidebarNodes(st),
		Note:     note,
		NoteHTML: rendered,
	})
}
