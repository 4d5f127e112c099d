package lang

import (
	"path/filepath"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// markupExts are the extensions where leading-uppercase functions are UI
// components and JSX tag usages are collected.
var markupExts = map[string]bool{".jsx": true, ".tsx": true}

// JavaScriptPlugin extracts declarations from JavaScript and TypeScript
// files, including JSX/TSX component usage.
type JavaScriptPlugin struct {
	classifier *graph.Classifier
	languages  map[string]*tree_sitter.Language
}

// NewJavaScriptPlugin creates the JS/TS front end with the javascript,
// typescript and tsx grammars registered per extension.
func NewJavaScriptPlugin(c *graph.Classifier) *JavaScriptPlugin {
	js := tree_sitter.NewLanguage(tree_sitter_javascript.Language())
	return &JavaScriptPlugin{
		classifier: c,
		languages: map[string]*tree_sitter.Language{
			".js":  js,
			".jsx": js,
			".ts":  tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			".tsx": tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
		},
	}
}

func (p *JavaScriptPlugin) Name() string { return "javascript" }

func (p *JavaScriptPlugin) CanHandle(ext string) bool {
	_, ok := p.languages[ext]
	return ok
}

// Extract emits the per-file module node plus class, function and component
// declarations, and records imports, rendered JSX tags and called names.
func (p *JavaScriptPlugin) Extract(path string, source []byte, isEntry bool) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	lang, ok := p.languages[ext]
	if !ok {
		return nil, errUnsupportedExt(p.Name(), ext)
	}

	tree, err := parseTree(lang, path, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	res := &Result{Nodes: []graph.Node{moduleNode(p.classifier, path, isEntry)}}

	st := &jsState{
		plugin:   p,
		path:     path,
		ext:      ext,
		isEntry:  isEntry,
		declared: newOrderedSet(),
		imports:  newOrderedSet(),
		rendered: newOrderedSet(),
		called:   newOrderedSet(),
	}

	cursor := tree.RootNode().Walk()
	defer cursor.Close()
	st.walk(cursor, source, res)

	res.Symbols = graph.FileSymbols{
		Declared:     st.declared.slice(),
		Imports:      st.imports.slice(),
		RenderedTags: st.rendered.slice(),
		Called:       st.called.slice(),
	}
	return res, nil
}

// jsState carries the per-file accumulation for one Extract call.
type jsState struct {
	plugin   *JavaScriptPlugin
	path     string
	ext      string
	isEntry  bool
	declared *orderedSet
	imports  *orderedSet
	rendered *orderedSet
	called   *orderedSet
}

func (st *jsState) walk(cursor *tree_sitter.TreeCursor, source []byte, res *Result) {
	node := cursor.Node()

	switch node.Kind() {
	case "function_declaration", "method_definition":
		if name := fieldText(node, "name", source); name != "" {
			st.declare(res, name)
		}

	case "lexical_declaration", "variable_declaration":
		for _, name := range functionBindings(node, source) {
			st.declare(res, name)
		}

	case "class_declaration":
		if name := fieldText(node, "name", source); name != "" {
			st.declared.add(name)
			res.Nodes = append(res.Nodes, st.entityNode(graph.KindClass, name))
		}

	case "import_statement":
		if spec := importSource(node, source); spec != "" {
			st.imports.add(spec)
		}

	case "jsx_opening_element", "jsx_self_closing_element":
		// Case-sensitive: a leading-uppercase tag is a user-defined
		// component reference, not a built-in element.
		if markupExts[st.ext] {
			if name := fieldText(node, "name", source); name != "" && startsUpper(name) {
				st.rendered.add(name)
			}
		}

	case "call_expression":
		if callee := jsCallee(node, source); callee != "" {
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

// declare records a function-like declaration, classifying it as Component
// when the name starts upper-case and the file is markup-capable.
func (st *jsState) declare(res *Result, name string) {
	st.declared.add(name)
	kind := graph.KindFunction
	if startsUpper(name) && markupExts[st.ext] {
		kind = graph.KindComponent
	}
	res.Nodes = append(res.Nodes, st.entityNode(kind, name))
}

func (st *jsState) entityNode(kind graph.NodeKind, name string) graph.Node {
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

// functionBindings returns the names of variable declarators whose value is
// an arrow function or function expression (const foo = () => {}).
func functionBindings(node *tree_sitter.Node, source []byte) []string {
	var names []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		value := child.ChildByFieldName("value")
		if value == nil {
			continue
		}
		switch value.Kind() {
		case "arrow_function", "function_expression":
		default:
			continue
		}
		if name := fieldText(child, "name", source); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// importSource returns the unquoted import specifier of an import_statement.
func importSource(node *tree_sitter.Node, source []byte) string {
	src := node.ChildByFieldName("source")
	if src == nil {
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child != nil && child.Kind() == "string" {
				src = child
				break
			}
		}
	}
	if src == nil {
		return ""
	}
	return strings.Trim(src.Utf8Text(source), "\"'`")
}

// jsCallee returns the called name for a call_expression: the identifier
// for plain calls, the final property name for member calls.
func jsCallee(node *tree_sitter.Node, source []byte) string {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Kind() {
	case "identifier":
		return fn.Utf8Text(source)
	case "member_expression":
		if prop := fn.ChildByFieldName("property"); prop != nil {
			return prop.Utf8Text(source)
		}
	}
	return ""
}

