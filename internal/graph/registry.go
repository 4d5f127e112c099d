package graph

import (
	"sort"
	"sync"
)

// Registry is the run-scoped node/edge store. Nodes are append-only and
// keyed by id (last write wins on collision); edges are an append-only
// multiset with no deduplication. Thread-safe via sync.RWMutex so the sweep
// phase can extract files in parallel.
type Registry struct {
	mu    sync.RWMutex
	nodes map[string]Node
	edges []Edge
}

// NewRegistry returns an initialized empty Registry.
func NewRegistry() *Registry {
	return &Registry{nodes: make(map[string]Node)}
}

// Add inserts or replaces the node under its id.
func (r *Registry) Add(n Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes[n.ID] = n
}

// AddAll inserts every node in order.
func (r *Registry) AddAll(nodes []Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range nodes {
		r.nodes[n.ID] = n
	}
}

// Get returns the node with the given id.
func (r *Registry) Get(id string) (Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.nodes[id]
	return n, ok
}

// Has reports whether a node with the given id exists.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.nodes[id]
	return ok
}

// AddEdge appends an edge. Duplicate triples are kept.
func (r *Registry) AddEdge(e Edge) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.edges = append(r.edges, e)
}

// Nodes returns all nodes sorted by id for deterministic output.
func (r *Registry) Nodes() []Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns a copy of the edge multiset in insertion order.
func (r *Registry) Edges() []Edge {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Edge, len(r.edges))
	copy(out, r.edges)
	return out
}

// NodeCount returns the number of distinct nodes.
func (r *Registry) NodeCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

// Stats summarizes the registry contents. Kind lists are sorted.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodeKinds := make(map[string]bool)
	for _, n := range r.nodes {
		nodeKinds[string(n.Kind)] = true
	}
	edgeKinds := make(map[string]bool)
	for _, e := range r.edges {
		edgeKinds[string(e.Kind)] = true
	}

	return Stats{
		TotalNodes: len(r.nodes),
		TotalEdges: len(r.edges),
		NodeKinds:  sortedKeys(nodeKinds),
		EdgeKinds:  sortedKeys(edgeKinds),
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SymbolTable holds per-file extraction facts for the whole run. It is
// written during the extraction phases and read-only afterwards.
type SymbolTable struct {
	mu     sync.Mutex
	byFile map[string]FileSymbols
}

// NewSymbolTable returns an initialized empty SymbolTable.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byFile: make(map[string]FileSymbols)}
}

// Set records the facts for one file, replacing any previous record.
func (t *SymbolTable) Set(file string, syms FileSymbols) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byFile[file] = syms
}

// Get returns the recorded facts for a file.
func (t *SymbolTable) Get(file string) (FileSymbols, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.byFile[file]
	return s, ok
}

// Files returns all recorded file paths in sorted order.
func (t *SymbolTable) Files() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.byFile))
	for f := range t.byFile {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
