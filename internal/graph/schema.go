package graph

// --- Enums ---

// NodeKind classifies entities extracted from source files.
type NodeKind string

const (
	KindModule      NodeKind = "module"
	KindClass       NodeKind = "class"
	KindFunction    NodeKind = "function"
	KindComponent   NodeKind = "component"
	KindView        NodeKind = "view"
	KindController  NodeKind = "controller"
	KindService     NodeKind = "service"
	KindModel       NodeKind = "model"
	KindTemplate    NodeKind = "template"
	KindAPIEndpoint NodeKind = "api_endpoint"
)

// EdgeKind classifies relationships between nodes.
type EdgeKind string

const (
	EdgeDependsOn EdgeKind = "DEPENDS_ON"
	EdgeRenders   EdgeKind = "RENDERS"
	EdgeCalls     EdgeKind = "CALLS"
)

// Level is a coarse architectural tier assigned to every node, from
// coarsest (system) to finest (code).
type Level string

const (
	LevelSystem    Level = "system"
	LevelContainer Level = "container"
	LevelComponent Level = "component"
	LevelCode      Level = "code"
)

// Levels lists all abstraction levels coarsest-first. Override tables are
// evaluated in this order so classification stays deterministic.
var Levels = []Level{LevelSystem, LevelContainer, LevelComponent, LevelCode}

// --- Models ---

// Meta carries per-node metadata surfaced to the presentation layer.
type Meta struct {
	IsEntry  bool   `json:"is_entry"`
	Level    Level  `json:"abstraction_level"`
	Endpoint string `json:"endpoint,omitempty"`
}

// Node is one entity in the dependency/behavior graph. File is always a
// project-relative path with forward slashes.
type Node struct {
	ID   string   `json:"id"`
	Kind NodeKind `json:"kind"`
	File string   `json:"file"`
	Name string   `json:"name"`
	Meta Meta     `json:"metadata"`
}

// Edge is a typed relationship between two node ids. Edges form a multiset:
// the same (source, target, kind) triple may occur more than once when it is
// inferred from multiple facts.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
}

// Stats summarizes a completed graph.
type Stats struct {
	TotalNodes int      `json:"total_nodes"`
	TotalEdges int      `json:"total_edges"`
	NodeKinds  []string `json:"node_types"`
	EdgeKinds  []string `json:"edge_types"`
}

// FileSymbols records the raw facts gathered while extracting one file.
// The relationship analyzer is the only consumer; extraction of other files
// never reads these.
type FileSymbols struct {
	Declared     []string `json:"declared,omitempty"`
	Imports      []string `json:"imports,omitempty"`
	RenderedTags []string `json:"rendered_tags,omitempty"`
	Called       []string `json:"called,omitempty"`
}

// Empty reports whether no facts were recorded.
func (s FileSymbols) Empty() bool {
	return len(s.Declared) == 0 && len(s.Imports) == 0 &&
		len(s.RenderedTags) == 0 && len(s.Called) == 0
}
