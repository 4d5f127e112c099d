package lang

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// controllerAnnotations mark a class as a web controller.
var controllerAnnotations = map[string]bool{"Controller": true, "RestController": true}

// mappingAnnotations are the HTTP-mapping annotations whose string-literal
// argument yields an API endpoint path.
var mappingAnnotations = map[string]bool{
	"GetMapping":     true,
	"PostMapping":    true,
	"PutMapping":     true,
	"DeleteMapping":  true,
	"RequestMapping": true,
}

// JavaPlugin extracts classes, stereotype annotations and HTTP-mapping
// endpoints from Java source files.
type JavaPlugin struct {
	classifier *graph.Classifier
	language   *tree_sitter.Language
}

// NewJavaPlugin creates the Java front end.
func NewJavaPlugin(c *graph.Classifier) *JavaPlugin {
	return &JavaPlugin{
		classifier: c,
		language:   tree_sitter.NewLanguage(tree_sitter_java.Language()),
	}
}

func (p *JavaPlugin) Name() string { return "java" }

func (p *JavaPlugin) CanHandle(ext string) bool { return ext == ".java" }

// Extract emits the per-file module node, one node per class (Controller,
// Service or Class depending on the annotations present in the file), and
// one ApiEndpoint node per mapping annotation path. Endpoint nodes are keyed
// by the literal path text, so identical paths in different controllers
// collapse onto a single node.
func (p *JavaPlugin) Extract(path string, source []byte, isEntry bool) (*Result, error) {
	tree, err := parseTree(p.language, path, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	st := &javaState{
		classNames:  newOrderedSet(),
		annotations: newOrderedSet(),
		endpoints:   newOrderedSet(),
		imports:     newOrderedSet(),
		called:      newOrderedSet(),
	}

	cursor := tree.RootNode().Walk()
	defer cursor.Close()
	st.walk(cursor, source)

	res := &Result{Nodes: []graph.Node{moduleNode(p.classifier, path, isEntry)}}

	classKind := graph.KindClass
	for _, ann := range st.annotations.slice() {
		if controllerAnnotations[ann] {
			classKind = graph.KindController
			break
		}
		if ann == "Service" {
			classKind = graph.KindService
		}
	}

	for _, name := range st.classNames.slice() {
		res.Nodes = append(res.Nodes, graph.Node{
			ID:   graph.NodeID(path, name),
			Kind: classKind,
			File: path,
			Name: name,
			Meta: graph.Meta{
				IsEntry: isEntry,
				Level:   p.classifier.Level(classKind, path, name, isEntry),
			},
		})
	}

	for _, endpoint := range st.endpoints.slice() {
		res.Nodes = append(res.Nodes, graph.Node{
			ID:   graph.EndpointID(endpoint),
			Kind: graph.KindAPIEndpoint,
			File: path,
			Name: endpoint,
			Meta: graph.Meta{
				Level:    p.classifier.Level(graph.KindAPIEndpoint, path, endpoint, false),
				Endpoint: endpoint,
			},
		})
	}

	res.Symbols = graph.FileSymbols{
		Declared: st.classNames.slice(),
		Imports:  st.imports.slice(),
		Called:   st.called.slice(),
	}
	return res, nil
}

type javaState struct {
	classNames  *orderedSet
	annotations *orderedSet
	endpoints   *orderedSet
	imports     *orderedSet
	called      *orderedSet
}

func (st *javaState) walk(cursor *tree_sitter.TreeCursor, source []byte) {
	node := cursor.Node()

	switch node.Kind() {
	case "class_declaration":
		if name := fieldText(node, "name", source); name != "" {
			st.classNames.add(name)
		}

	case "marker_annotation":
		if name := fieldText(node, "name", source); name != "" {
			st.annotations.add(name)
		}

	case "annotation":
		name := fieldText(node, "name", source)
		if name == "" {
			break
		}
		st.annotations.add(name)
		if mappingAnnotations[name] {
			if path := annotationStringArg(node, source); path != "" {
				st.endpoints.add(path)
			}
		}

	case "import_declaration":
		for i := uint(0); i < node.ChildCount(); i++ {
			child := node.Child(i)
			if child != nil && child.Kind() == "scoped_identifier" {
				st.imports.add(child.Utf8Text(source))
				break
			}
		}

	case "method_invocation":
		if name := fieldText(node, "name", source); name != "" {
			st.called.add(name)
		}
	}

	if cursor.GotoFirstChild() {
		st.walk(cursor, source)
		for cursor.GotoNextSibling() {
			st.walk(cursor, source)
		}
		cursor.GotoParent()
	}
}

// annotationStringArg returns the unquoted first string-literal argument of
// an annotation, or "" when the argument list has none.
func annotationStringArg(node *tree_sitter.Node, source []byte) string {
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return ""
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		if child == nil || child.Kind() != "string_literal" {
			continue
		}
		return strings.Trim(child.Utf8Text(source), "\"")
	}
	return ""
}
