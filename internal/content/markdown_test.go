package content

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePage_TitleFromFrontMatter(t *testing.T) {
	src := []byte("---\ntitle: Moving Employees\n---\n\n# Something Else\n")
	page, err := ParsePage("guide/moving.md", src)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if page.Title != "Moving Employees" {
		t.Errorf("expected front-matter title, got %q", page.Title)
	}
}

func TestParsePage_TitleFromH1(t *testing.T) {
	src := []byte("# The Grid View\n\nSome text.\n")
	page, err := ParsePage("grid.md", src)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if page.Title != "The Grid View" {
		t.Errorf("expected H1 title, got %q", page.Title)
	}
}

func TestParsePage_TitleFallbackToFilename(t *testing.T) {
	page, err := ParsePage("reference/shortcuts.md", []byte("plain text only\n"))
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if page.Title != "shortcuts" {
		t.Errorf("expected filename title, got %q", page.Title)
	}
}

func TestParsePage_Headings(t *testing.T) {
	src := []byte("# Top\n\n## Drag & Drop\n\n### What's New?\n")
	page, err := ParsePage("p.md", src)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}

	want := []Heading{
		{Level: 1, Text: "Top", Slug: "top"},
		{Level: 2, Text: "Drag & Drop", Slug: "drag-drop"},
		{Level: 3, Text: "What's New?", Slug: "whats-new"},
	}
	if diff := cmp.Diff(want, page.Headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePage_Links(t *testing.T) {
	src := []byte(`# Links

[sibling](other.md) and [below](sub/deep.md#details) and
[up](../top.md) and [same page](#links) and
[external](https://example.com/x) and [mail](mailto:a@b.c).
`)
	page, err := ParsePage("guide/page.md", src)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}

	byRaw := map[string]Link{}
	for _, l := range page.Links {
		byRaw[l.Raw] = l
	}

	if got := byRaw["other.md"].Target; got != "guide/other.md" {
		t.Errorf("sibling target = %q", got)
	}
	l := byRaw["sub/deep.md#details"]
	if l.Target != "guide/sub/deep.md" || l.Fragment != "details" {
		t.Errorf("fragment link = %+v", l)
	}
	if got := byRaw["../top.md"].Target; got != "top.md" {
		t.Errorf("parent target = %q", got)
	}
	sp := byRaw["#links"]
	if sp.Target != "" || sp.Fragment != "links" {
		t.Errorf("same-page anchor = %+v", sp)
	}
	if !byRaw["https://example.com/x"].External {
		t.Error("https link should be external")
	}
	if !byRaw["mailto:a@b.c"].External {
		t.Error("mailto link should be external")
	}
}

func TestParsePage_Images(t *testing.T) {
	src := []byte("![The grid](images/screenshots/grid/grid-overview-default-01.png)\n")
	page, err := ParsePage("features/grid.md", src)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if len(page.Images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(page.Images))
	}
	img := page.Images[0]
	if img.Target != "features/images/screenshots/grid/grid-overview-default-01.png" {
		t.Errorf("image target = %q", img.Target)
	}
	if img.Alt != "The grid" {
		t.Errorf("image alt = %q", img.Alt)
	}
}

func TestParsePage_LinkLine(t *testing.T) {
	src := []byte("# T\n\nline three has [a link](x.md)\n")
	page, err := ParsePage("p.md", src)
	if err != nil {
		t.Fatalf("ParsePage failed: %v", err)
	}
	if len(page.Links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(page.Links))
	}
	if page.Links[0].Line != 3 {
		t.Errorf("expected line 3, got %d", page.Links[0].Line)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Simple":               "simple",
		"Two Words":            "two-words",
		"Drag & Drop":          "drag-drop",
		"  Trimmed  ":          "trimmed",
		"Already-hyphenated":   "already-hyphenated",
		"Ends with punct!":     "ends-with-punct",
		"Underscore_kept here": "underscore_kept-here",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
