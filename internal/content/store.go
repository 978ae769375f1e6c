package content

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store holds every parsed page of the content root, keyed by path
// relative to the root.
type Store struct {
	Root  string
	pages map[string]*Page
	order []string
}

// Scan walks root for markdown files and parses each one. Files and
// directories starting with "." or "_" are skipped.
func Scan(root string) (*Store, error) {
	store := &Store{
		Root:  root,
		pages: make(map[string]*Page),
	}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(name, ".md") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		source, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		page, err := ParsePage(rel, source)
		if err != nil {
			return fmt.Errorf("parse %s: %w", rel, err)
		}
		store.pages[rel] = page
		store.order = append(store.order, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan content root %s: %w", root, err)
	}

	sort.Strings(store.order)
	return store, nil
}

// Get returns the page at the given root-relative path.
func (s *Store) Get(relPath string) (*Page, bool) {
	p, ok := s.pages[relPath]
	return p, ok
}

// Paths returns all page paths in sorted order.
func (s *Store) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Pages returns all pages in path order.
func (s *Store) Pages() []*Page {
	out := make([]*Page, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, s.pages[p])
	}
	return out
}

// Len returns the number of pages.
func (s *Store) Len() int {
	return len(s.pages)
}
