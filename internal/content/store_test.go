package content

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.md", "# Home\n")
	writeFile(t, root, "guide/start.md", "# Getting Started\n")
	writeFile(t, root, "guide/notes.txt", "not markdown")
	writeFile(t, root, ".drafts/wip.md", "# WIP\n")
	writeFile(t, root, "_snippets/frag.md", "# Fragment\n")

	store, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if store.Len() != 2 {
		t.Fatalf("expected 2 pages, got %d: %v", store.Len(), store.Paths())
	}
	if _, ok := store.Get("index.md"); !ok {
		t.Error("index.md not found")
	}
	page, ok := store.Get("guide/start.md")
	if !ok {
		t.Fatal("guide/start.md not found")
	}
	if page.Title != "Getting Started" {
		t.Errorf("title = %q", page.Title)
	}
}

func TestScan_PathsSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "z.md", "# Z\n")
	writeFile(t, root, "a.md", "# A\n")
	writeFile(t, root, "m/m.md", "# M\n")

	store, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	paths := store.Paths()
	want := []string{"a.md", "m/m.md", "z.md"}
	for i, w := range want {
		if paths[i] != w {
			t.Fatalf("paths = %v, want %v", paths, want)
		}
	}
}
