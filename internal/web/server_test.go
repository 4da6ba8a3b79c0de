package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notehaven/notehaven/pkg/library"
)

func newTestServer(t *testing.T) (*httptest.Server, *library.Library) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	lib, err := library.Open(t.TempDir(), log)
	require.NoError(t, err)

	ts := httptest.NewServer(New(lib, "127.0.0.1:0", log).Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = lib.Close()
	})
	return ts, lib
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestIndexListsStorages(t *testing.T) {
	ts, lib := newTestServer(t)

	work, err := lib.CreateStorage("Work")
	require.NoError(t, err)
	_, err = lib.CreateStorage("Personal")
	require.NoError(t, err)

	status, body := get(t, ts, "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Work")
	assert.Contains(t, body, "Personal")
	assert.Contains(t, body, "/storages/"+work.ID)
}

func TestNotesPageShowsFolderContents(t *testing.T) {
	ts, lib := newTestServer(t)

	st, err := lib.CreateStorage("Main")
	require.NoError(t, err)
	note, err := lib.CreateNote(st.ID, library.NoteParams{
		Title:      "Quarterly plan",
		Content:    "targets",
		FolderPath: "/projects",
		Tags:       []string{"work"},
	})
	require.NoError(t, err)
	_, err = lib.CreateNote(st.ID, library.NoteParams{Title: "Root note"})
	require.NoError(t, err)

	status, body := get(t, ts, "/storages/"+st.ID+"/notes/projects")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Quarterly plan")
	assert.Contains(t, body, "/notes/"+note.ID)
	assert.NotContains(t, body, "Root note")

	// The sidebar links the folder and the tag.
	assert.Contains(t, body, "/storages/"+st.ID+"/notes/projects")
	assert.Contains(t, body, "/storages/"+st.ID+"/tags/work")

	status, _ = get(t, ts, "/storages/"+st.ID+"/notes/missing")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStorageLandingShowsRootNotes(t *testing.T) {
	ts, lib := newTestServer(t)

	st, err := lib.CreateStorage("Main")
	require.NoError(t, err)
	_, err = lib.CreateNote(st.ID, library.NoteParams{Title: "Root note"})
	require.NoError(t, err)

	status, body := get(t, ts, "/storages/"+st.ID)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Root note")

	status, _ = get(t, ts, "/storages/does-not-exist")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNotePageRendersMarkdown(t *testing.T) {
	ts, lib := newTestServer(t)

	st, err := lib.CreateStorage("Main")
	require.NoError(t, err)
	note, err := lib.CreateNote(st.ID, library.NoteParams{
		Title:   "Syntax",
		Content: "Some **bold** text.\n",
	})
	require.NoError(t, err)

	status, body := get(t, ts, "/notes/"+note.ID)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<strong>bold</strong>")
	assert.Contains(t, body, "Syntax")

	status, _ = get(t, ts, "/notes/nope")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTagAndTrashPages(t *testing.T) {
	ts, lib := newTestServer(t)

	st, err := lib.CreateStorage("Main")
	require.NoError(t, err)
	_, err = lib.CreateNote(st.ID, library.NoteParams{
		Title: "Tagged",
		Tags:  []string{"go"},
	})
	require.NoError(t, err)
	binned, err := lib.CreateNote(st.ID, library.NoteParams{Title: "Binned"})
	require.NoError(t, err)
	require.NoError(t, lib.TrashNote(binned.ID))

	status, body := get(t, ts, "/storages/"+st.ID+"/tags/go")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Tagged")
	assert.NotContains(t, body, "Binned")

	status, body = get(t, ts, "/storages/"+st.ID+"/trashcan")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Binned")
	assert.NotContains(t, body, "Tagged")

	status, _ = get(t, ts, "/storages/"+st.ID+"/tags/none")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSearchPage(t *testing.T) {
	ts, lib := newTestServer(t)

	st, err := lib.CreateStorage("Main")
	require.NoError(t, err)
	_, err = lib.CreateNote(st.ID, library.NoteParams{
		Title:   "Meeting minutes",
		Content: "discussed the migration rollout",
	})
	require.NoError(t, err)
	_, err = lib.CreateNote(st.ID, library.NoteParams{
		Title:   "Groceries",
		Content: "milk and eggs",
	})
	require.NoError(t, err)

	status, body := get(t, ts, "/storages/"+st.ID+"/search?q=migration")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Meeting minutes")
	assert.NotContains(t, body, "Groceries")
}
