package analyzer

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// callableKinds are the node kinds eligible to be a call edge source.
var callableKinds = map[graph.NodeKind]bool{
	graph.KindFunction:  true,
	graph.KindComponent: true,
	graph.KindClass:     true,
	graph.KindView:      true,
}

// relate derives the three edge kinds from the per-file symbol facts:
// DEPENDS_ON between module nodes via the resolver, RENDERS between
// components by markup tag name, and CALLS from callables to the
// definitions matching their invoked names.
func relate(reg *graph.Registry, symbols *graph.SymbolTable, resolver *Resolver, classifier *graph.Classifier) {
	byName := nameIndex(reg)
	seen := make(map[graph.Edge]bool)

	// Only exact duplicate triples are dropped. Self-edges stay: a component
	// rendering or calling itself recursively is a real relationship.
	addEdge := func(e graph.Edge) {
		if seen[e] {
			return
		}
		seen[e] = true
		reg.AddEdge(e)
	}

	for _, file := range symbols.Files() {
		facts, ok := symbols.Get(file)
		if !ok || facts.Empty() {
			continue
		}

		// Import edges connect module nodes. The target file may sit
		// outside the swept directories, so its module node is created
		// on demand.
		sourceModule := ensureModuleNode(reg, classifier, file)
		for _, spec := range facts.Imports {
			target, ok := resolver.Resolve(spec, file)
			if !ok {
				continue
			}
			targetModule := ensureModuleNode(reg, classifier, target)
			addEdge(graph.Edge{Source: sourceModule, Target: targetModule, Kind: graph.EdgeDependsOn})
		}

		// Render edges: every component declared in this file renders
		// each component matching a markup tag it uses. Declared facts
		// are names; ids are recomputed from (file, name).
		var declared []graph.Node
		for _, name := range facts.Declared {
			if n, ok := reg.Get(graph.NodeID(file, name)); ok && n.Kind == graph.KindComponent {
				declared = append(declared, n)
			}
		}
		for _, tag := range facts.RenderedTags {
			for _, targetID := range byName[tag] {
				target, ok := reg.Get(targetID)
				if !ok || target.Kind != graph.KindComponent {
					continue
				}
				for _, src := range declared {
					addEdge(graph.Edge{Source: src.ID, Target: targetID, Kind: graph.EdgeRenders})
				}
			}
		}

		// Call edges: callables in this file to anything sharing an
		// invoked name. Name matching is global and deliberately loose;
		// the graph favors recall over precision here.
		var callers []graph.Node
		for _, name := range facts.Declared {
			if n, ok := reg.Get(graph.NodeID(file, name)); ok && callableKinds[n.Kind] {
				callers = append(callers, n)
			}
		}
		for _, name := range facts.Called {
			for _, targetID := range byName[name] {
				for _, src := range callers {
					addEdge(graph.Edge{Source: src.ID, Target: targetID, Kind: graph.EdgeCalls})
				}
			}
		}
	}
}

// nameIndex builds the name → node IDs lookup consulted by the render and
// call passes. IDs are sorted so edge emission order is stable.
func nameIndex(reg *graph.Registry) map[string][]string {
	byName := make(map[string][]string)
	for _, n := range reg.Nodes() {
		byName[n.Name] = append(byName[n.Name], n.ID)
	}
	for name := range byName {
		sort.Strings(byName[name])
	}
	return byName
}

// ensureModuleNode returns the module node ID for file, creating the node if
// extraction never visited the file.
func ensureModuleNode(reg *graph.Registry, classifier *graph.Classifier, file string) string {
	id := graph.ModuleID(file)
	if reg.Has(id) {
		return id
	}
	name := fileStem(file)
	reg.Add(graph.Node{
		ID:   id,
		Kind: graph.KindModule,
		File: file,
		Name: name,
		Meta: graph.Meta{
			Level: classifier.Level(graph.KindModule, file, name, false),
		},
	})
	return id
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
