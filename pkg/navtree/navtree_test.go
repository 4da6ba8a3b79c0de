package navtree

import (
	"reflect"
	"testing"
)

func TestBuildPathTree(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  []string // direct children of the root, in order
	}{
		{"empty input", nil, nil},
		{"root only", []string{"/"}, nil},
		{"siblings keep order", []string{"/z", "/a", "/m"}, []string{"z", "a", "m"}},
		{"shared prefix", []string{"/a", "/a/b", "/c"}, []string{"a", "c"}},
		{"child before parent", []string{"/a/b", "/a"}, []string{"a"}},
		{"doubled slash", []string{"/a//b"}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := BuildPathTree(tt.paths)
			got := tree.ChildNames()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ChildNames() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildPathTreeNesting(t *testing.T) {
	tree := BuildPathTree([]string{"/a", "/a/b", "/c"})

	a := tree.Child("a")
	if a == nil {
		t.Fatal("missing child a")
	}
	if got := a.ChildNames(); len(got) != 1 || got[0] != "b" {
		t.Errorf("children of a = %v, want [b]", got)
	}
	b := a.Child("b")
	if b == nil {
		t.Fatal("missing child a/b")
	}
	if got := b.ChildNames(); len(got) != 0 {
		t.Errorf("children of a/b = %v, want none", got)
	}
	c := tree.Child("c")
	if c == nil {
		t.Fatal("missing child c")
	}
	if got := c.ChildNames(); len(got) != 0 {
		t.Errorf("children of c = %v, want none", got)
	}
}

func TestContains(t *testing.T) {
	tree := BuildPathTree([]string{"/a/b/c"})

	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/a", true},
		{"/a/b", true},
		{"/a/b/c", true},
		{"/a/b/c/d", false},
		{"/b", false},
	}
	for _, tt := range tests {
		if got := tree.Contains(tt.path); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestConvertTree(t *testing.T) {
	tree := BuildPathTree([]string{"/a", "/a/b", "/c"})

	var menuPaths []string
	menuFor := func(folderPath string) MenuFunc {
		menuPaths = append(menuPaths, folderPath)
		return func() []MenuItem {
			return []MenuItem{{Label: folderPath}}
		}
	}

	nodes := ConvertTree(tree, "s1", "/", menuFor)
	if len(nodes) != 2 {
		t.Fatalf("got %d top-level nodes, want 2", len(nodes))
	}

	a := nodes[0]
	if a.Name != "a" || a.Href != "/storages/s1/notes/a" {
		t.Errorf("node a = {%q %q}", a.Name, a.Href)
	}
	if len(a.Children) != 1 {
		t.Fatalf("node a has %d children, want 1", len(a.Children))
	}
	ab := a.Children[0]
	if ab.Name != "b" || ab.Href != "/storages/s1/notes/a/b" {
		t.Errorf("node a/b = {%q %q}", ab.Name, ab.Href)
	}
	if ab.Children == nil || len(ab.Children) != 0 {
		t.Errorf("leaf children = %#v, want empty non-nil slice", ab.Children)
	}

	c := nodes[1]
	if c.Name != "c" || c.Href != "/storages/s1/notes/c" {
		t.Errorf("node c = {%q %q}", c.Name, c.Href)
	}

	wantPaths := []string{"/a", "/a/b", "/c"}
	if !reflect.DeepEqual(menuPaths, wantPaths) {
		t.Errorf("menu factory saw %v, want %v", menuPaths, wantPaths)
	}
	if items := a.Menu(); len(items) != 1 || items[0].Label != "/a" {
		t.Errorf("menu of a = %v", items)
	}
}

func TestConvertTreeEmpty(t *testing.T) {
	for _, paths := range [][]string{nil, {}, {"/"}} {
		nodes := ConvertTree(BuildPathTree(paths), "s1", "/", nil)
		if nodes == nil {
			t.Fatalf("ConvertTree(%v) returned nil, want empty slice", paths)
		}
		if len(nodes) != 0 {
			t.Errorf("ConvertTree(%v) = %d nodes, want 0", paths, len(nodes))
		}
	}
}

func TestConvertTreeNilMenuFactory(t *testing.T) {
	nodes := ConvertTree(BuildPathTree([]string{"/a"}), "s1", "/", nil)
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if nodes[0].Menu != nil {
		t.Error("Menu set without a factory")
	}
}
