package lang

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// PythonPlugin extracts declarations from Python source files via the
// tree-sitter python grammar.
type PythonPlugin struct {
	classifier *graph.Classifier
	language   *tree_sitter.Language
}

// NewPythonPlugin creates the Python front end.
func NewPythonPlugin(c *graph.Classifier) *PythonPlugin {
	return &PythonPlugin{
		classifier: c,
		language:   tree_sitter.NewLanguage(tree_sitter_python.Language()),
	}
}

func (p *PythonPlugin) Name() string { return "python" }

func (p *PythonPlugin) CanHandle(ext string) bool { return ext == ".py" }

// Extract emits the per-file module node plus class and function nodes.
// A function whose name contains "view" (case-insensitive) is a View.
func (p *PythonPlugin) Extract(path string, source []byte, isEntry bool) (*Result, error) {
	tree, err := parseTree(p.language, path, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	res := &Result{Nodes: []graph.Node{moduleNode(p.classifier, path, isEntry)}}

	st := &pyState{
		plugin:   p,
		path:     path,
		isEntry:  isEntry,
		declared: newOrderedSet(),
		imports:  newOrderedSet(),
		called:   newOrderedSet(),
	}

	cursor := tree.RootNode().Walk()
	defer cursor.Close()
	st.walk(cursor, source, res)

	res.Symbols = graph.FileSymbols{
		Declared: st.declared.slice(),
		Imports:  st.imports.slice(),
		Called:   st.called.slice(),
	}
	return res, nil
}

type pyState struct {
	plugin   *PythonPlugin
	path     string
	isEntry  bool
	declared *orderedSet
	imports  *orderedSet
	called   *orderedSet
}

func (st *pyState) walk(cursor *tree_sitter.TreeCursor, source []byte, res *Result) {
	node := cursor.Node()

	switch node.Kind() {
	case "function_definition":
		if name := fieldText(node, "name", source); name != "" {
			st.declared.add(name)
			kind := graph.KindFunction
			if strings.Contains(strings.ToLower(name), "view") {
				kind = graph.KindView
			}
			res.Nodes = append(res.Nodes, st.entityNode(kind, name))
		}

	case "class_definition":
		if name := fieldText(node, "name", source); name != "" {
			st.declared.add(name)
			res.Nodes = append(res.Nodes, st.entityNode(graph.KindClass, name))
		}

	case "import_statement":
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "dotted_name":
				st.imports.add(child.Utf8Text(source))
			case "aliased_import":
				if name := fieldText(child, "name", source); name != "" {
					st.imports.add(name)
				}
			}
		}

	case "import_from_statement":
		// The module part is what matters for dependency resolution;
		// relative specifiers keep their leading dots.
		if mod := pyFromModule(node, source); mod != "" {
			st.imports.add(mod)
		}

	case "call":
		if callee := pyCallee(node, source); callee != "" {
			st.called.add(callee)
		}
	}

	if cursor.GotoFirstChild() {
		st.walk(cursor, source, res)
		for cursor.GotoNextSibling() {
			st.walk(cursor, source, res)
		}
		cursor.GotoParent()
	}
}

func (st *pyState) entityNode(kind graph.NodeKind, name string) graph.Node {
	return graph.Node{
		ID:   graph.NodeID(st.path, name),
		Kind: kind,
		File: st.path,
		Name: name,
		Meta: graph.Meta{
			IsEntry: st.isEntry,
			Level:   st.plugin.classifier.Level(kind, st.path, name, st.isEntry),
		},
	}
}

// pyFromModule returns the module specifier of an import_from_statement,
// e.g. "app.views" or ".models".
func pyFromModule(node *tree_sitter.Node, source []byte) string {
	mod := node.ChildByFieldName("module_name")
	if mod == nil {
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child == nil {
				continue
			}
			if k := child.Kind(); k == "dotted_name" || k == "relative_import" {
				mod = child
				break
			}
		}
	}
	if mod == nil {
		return ""
	}
	return mod.Utf8Text(source)
}

// pyCallee returns the called name: the identifier for plain calls, the
// final attribute name for attribute calls.
func pyCallee(node *tree_sitter.Node, source []byte) string {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Kind() {
	case "identifier":
		return fn.Utf8Text(source)
	case "attribute":
		if attr := fn.ChildByFieldName("attribute"); attr != nil {
			return attr.Utf8Text(source)
		}
	}
	return ""
}
