// Package lang contains the per-language syntax extraction plugins. Each
// plugin turns one file's source text into candidate declarations plus the
// raw symbol facts (imports, rendered tags, called names) that the
// relationship analyzer consumes later.
package lang

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// Result holds everything extracted from a single file.
type Result struct {
	Nodes   []graph.Node
	Symbols graph.FileSymbols
}

// Plugin is a language front end. Implementations: JavaScriptPlugin,
// JavaPlugin, PythonPlugin.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// CanHandle reports whether this plugin claims the file extension
	// (lower-case, including the leading dot).
	CanHandle(ext string) bool

	// Extract parses source and returns the declarations and symbol facts
	// found in it. path is the project-relative file path.
	Extract(path string, source []byte, isEntry bool) (*Result, error)
}

// Plugins returns the supported language front ends in probe order.
func Plugins(c *graph.Classifier) []Plugin {
	return []Plugin{
		NewJavaScriptPlugin(c),
		NewJavaPlugin(c),
		NewPythonPlugin(c),
	}
}

// ForExtension returns the first plugin claiming ext, or nil.
func ForExtension(plugins []Plugin, ext string) Plugin {
	for _, p := range plugins {
		if p.CanHandle(ext) {
			return p
		}
	}
	return nil
}

// parseTree parses source with the given grammar. The caller owns the
// returned tree and must Close it. A new tree-sitter parser is created per
// call, so concurrent extraction of different files is safe.
func parseTree(lang *tree_sitter.Language, path string, source []byte) (*tree_sitter.Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(lang); err != nil {
		return nil, fmt.Errorf("set language for %s: %w", path, err)
	}
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned nil tree for %s", path)
	}
	return tree, nil
}

// moduleNode builds the synthetic module node every plugin emits for the
// file it processes, named from the file stem.
func moduleNode(c *graph.Classifier, path string, isEntry bool) graph.Node {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return graph.Node{
		ID:   graph.ModuleID(path),
		Kind: graph.KindModule,
		File: path,
		Name: stem,
		Meta: graph.Meta{
			IsEntry: isEntry,
			Level:   c.Level(graph.KindModule, path, stem, isEntry),
		},
	}
}

func errUnsupportedExt(plugin, ext string) error {
	return fmt.Errorf("%s plugin cannot handle extension %q", plugin, ext)
}

// fieldText returns the text of a named field child, or "".
func fieldText(node *tree_sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Utf8Text(source)
}

// startsUpper reports whether the first rune of name is upper-case.
func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// orderedSet accumulates unique strings preserving first-seen order, so
// symbol fact slices stay deterministic across runs.
type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if v == "" || s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

func (s *orderedSet) slice() []string {
	return s.items
}
