package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notehaven/notehaven/pkg/models"
)

func rowNames(m Model) []string {
	names := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		names = append(names, r.node.Name)
	}
	return names
}

func TestRowsFlattenForest(t *testing.T) {
	m := New(nil, nil)
	m.storages = []*models.Storage{testStorage()}
	m.rebuildForest()

	assert.Equal(t,
		[]string{"Main", "Notes", "a", "b", "c", "Tags", "art", "go", "Trash Can"},
		rowNames(m))
}

func TestCollapseHidesSubtree(t *testing.T) {
	m := New(nil, nil)
	m.storages = []*models.Storage{testStorage()}
	m.rebuildForest()

	var key string
	for _, r := range m.rows {
		if r.node.Name == "a" {
			key = r.key
		}
	}
	require.NotEmpty(t, key)
	m.collapsed[key] = true
	m.rebuildRows()

	assert.Equal(t,
		[]string{"Main", "Notes", "a", "c", "Tags", "art", "go", "Trash Can"},
		rowNames(m))
}

func TestFilterNarrowsRows(t *testing.T) {
	m := New(nil, nil)
	m.storages = []*models.Storage{testStorage()}
	m.rebuildForest()

	// Matching rows stay visible together with their ancestors.
	m.filterInput.SetValue("b")
	m.rebuildRows()
	assert.Equal(t, []string{"Main", "a", "b"}, rowNames(m))

	m.filterInput.SetValue("art")
	m.rebuildRows()
	assert.Equal(t, []string{"Main", "Tags", "art"}, rowNames(m))

	// Clearing the filter restores the full tree.
	m.filterInput.SetValue("")
	m.rebuildRows()
	assert.Len(t, m.rows, 9)
}
