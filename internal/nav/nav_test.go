package nav

import (
	"testing"
)

const sampleNav = `
- Home: index.md
- User Guide:
    - Getting Started: guide/start.md
    - Moving Employees: guide/moving.md
- Reference:
    - Shortcuts: reference/shortcuts.md
    - Advanced:
        - Filters: reference/filters.md
`

func TestParse(t *testing.T) {
	tree, err := Parse([]byte(sampleNav))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(tree.Items) != 3 {
		t.Fatalf("expected 3 top-level items, got %d", len(tree.Items))
	}
	if tree.Items[0].Title != "Home" || tree.Items[0].Path != "index.md" {
		t.Errorf("first item = %+v", tree.Items[0])
	}
	guide := tree.Items[1]
	if guide.IsLeaf() || len(guide.Children) != 2 {
		t.Errorf("User Guide section = %+v", guide)
	}
}

func TestLeaves_Order(t *testing.T) {
	tree, err := Parse([]byte(sampleNav))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	leaves := tree.Leaves()
	want := []string{
		"index.md",
		"guide/start.md",
		"guide/moving.md",
		"reference/shortcuts.md",
		"reference/filters.md",
	}
	if len(leaves) != len(want) {
		t.Fatalf("expected %d leaves, got %d", len(want), len(leaves))
	}
	for i, w := range want {
		if leaves[i].Path != w {
			t.Errorf("leaf %d = %q, want %q", i, leaves[i].Path, w)
		}
	}
}

func TestContainsAndTitleFor(t *testing.T) {
	tree, err := Parse([]byte(sampleNav))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !tree.Contains("guide/moving.md") {
		t.Error("expected guide/moving.md in nav")
	}
	if tree.Contains("missing.md") {
		t.Error("missing.md should not be in nav")
	}
	title, ok := tree.TitleFor("reference/filters.md")
	if !ok || title != "Filters" {
		t.Errorf("TitleFor = %q, %v", title, ok)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"not: a\nsequence: here\n",
		"- Home:\n    nested: map\n",
	}
	for _, c := range cases {
		if _, err := Parse([]byte(c)); err == nil {
			t.Errorf("expected error for %q", c)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	tree, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse of empty input failed: %v", err)
	}
	if len(tree.Leaves()) != 0 {
		t.Error("expected no leaves")
	}
}
