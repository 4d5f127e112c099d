package lang

import (
	"path/filepath"
	"strings"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// templateExts are the plain markup extensions handled by the fallback.
var templateExts = map[string]bool{".html": true, ".htm": true}

// IsTemplate reports whether ext gets the markup fallback when no plugin
// claims it.
func IsTemplate(ext string) bool {
	return templateExts[ext]
}

// TemplateNode builds the single generic Template node emitted for plain
// markup files. No structural extraction is performed on them.
func TemplateNode(c *graph.Classifier, path string, isEntry bool) graph.Node {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return graph.Node{
		ID:   graph.TemplateID(path),
		Kind: graph.KindTemplate,
		File: path,
		Name: stem,
		Meta: graph.Meta{
			IsEntry: isEntry,
			Level:   c.Level(graph.KindTemplate, path, stem, isEntry),
		},
	}
}
