// Package nav parses the navigation manifest: a YAML tree mapping
// display labels to page paths, in the style of a static-site
// generator's nav section. Order is significant; it drives the sidebar
// and the prev/next links.
package nav

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Node is one entry in the navigation tree. A leaf has a Path; a
// section has Children.
type Node struct {
	Title    string
	Path     string
	Children []*Node
}

// IsLeaf reports whether the node references a page.
func (n *Node) IsLeaf() bool {
	return n.Path != ""
}

// Tree is the parsed navigation manifest.
type Tree struct {
	Items []*Node
}

// Load reads and parses the manifest file.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nav manifest: %w", err)
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse nav manifest %s: %w", path, err)
	}
	return tree, nil
}

// Parse parses manifest YAML of the form:
//
//	- Home: index.md
//	- User Guide:
//	    - Getting Started: guide/start.md
func Parse(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return &Tree{}, nil
	}
	items, err := parseItems(doc.Content[0])
	if err != nil {
		return nil, err
	}
	return &Tree{Items: items}, nil
}

func parseItems(n *yaml.Node) ([]*Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list of nav entries", n.Line)
	}
	var items []*Node
	for _, entry := range n.Content {
		if entry.Kind != yaml.MappingNode || len(entry.Content) != 2 {
			return nil, fmt.Errorf("line %d: nav entry must be a single 'Label: value' mapping", entry.Line)
		}
		key, val := entry.Content[0], entry.Content[1]
		node := &Node{Title: key.Value}
		switch val.Kind {
		case yaml.ScalarNode:
			node.Path = val.Value
		case yaml.SequenceNode:
			children, err := parseItems(val)
			if err != nil {
				return nil, err
			}
			node.Children = children
		default:
			return nil, fmt.Errorf("line %d: nav entry %q must map to a path or a list", val.Line, key.Value)
		}
		items = append(items, node)
	}
	return items, nil
}

// Leaves returns every page-bearing node in depth-first manifest order.
func (t *Tree) Leaves() []*Node {
	var out []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			if n.IsLeaf() {
				out = append(out, n)
			}
			walk(n.Children)
		}
	}
	walk(t.Items)
	return out
}

// Contains reports whether any leaf references the given page path.
func (t *Tree) Contains(path string) bool {
	for _, leaf := range t.Leaves() {
		if leaf.Path == path {
			return true
		}
	}
	return false
}

// TitleFor returns the manifest label for a page path, when present.
func (t *Tree) TitleFor(path string) (string, bool) {
	for _, leaf := range t.Leaves() {
		if leaf.Path == path {
			return leaf.Title, true
		}
	}
	return "", false
}
