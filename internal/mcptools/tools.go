package mcptools

import "github.com/SIDHANTH-S/dev-scope/internal/graph"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// AnalyzeProjectInput is the input for the analyze_project MCP tool.
type AnalyzeProjectInput struct {
	ProjectRoot string   `json:"projectRoot" jsonschema:"the absolute path to the project to analyze"`
	ExcludeDirs []string `json:"excludeDirs,omitempty" jsonschema:"directories to exclude from analysis (e.g. generated, fixtures)"`
}

// AnalyzeProjectOutput is the result of the analyze_project MCP tool.
type AnalyzeProjectOutput struct {
	Category    string      `json:"category"`
	EntryPoints []string    `json:"entryPoints,omitempty"`
	Stats       graph.Stats `json:"stats"`
}

// QueryNodesInput is the input for the query_nodes MCP tool.
type QueryNodesInput struct {
	Query string `json:"query" jsonschema:"search query for node names (substring match, case-insensitive)"`
	Kind  string `json:"kind,omitempty" jsonschema:"filter by node kind: module, class, function, component, view, controller, service, model, template, api_endpoint"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// QueryNodesOutput is the result of the query_nodes MCP tool.
type QueryNodesOutput struct {
	Nodes []graph.Node `json:"nodes"`
	Total int          `json:"total"`
}

// GetEdgesInput is the input for the get_edges MCP tool.
type GetEdgesInput struct {
	NodeID string `json:"nodeId,omitempty" jsonschema:"restrict to edges touching this node id"`
	Kind   string `json:"kind,omitempty" jsonschema:"filter by edge kind: DEPENDS_ON, RENDERS, CALLS"`
}

// GetEdgesOutput is the result of the get_edges MCP tool.
type GetEdgesOutput struct {
	Edges []graph.Edge `json:"edges"`
	Total int          `json:"total"`
}
