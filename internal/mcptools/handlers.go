package mcptools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/SIDHANTH-S/dev-scope/internal/analyzer"
	"github.com/SIDHANTH-S/dev-scope/internal/graph"
	"github.com/SIDHANTH-S/dev-scope/internal/scanner"
)

// Service runs the analysis pipeline on behalf of MCP tool calls and keeps
// the most recent graph in memory for query_nodes / get_edges.
type Service struct {
	log *slog.Logger

	mu   sync.RWMutex
	last *graph.Registry
}

// NewService creates a Service. A nil logger means slog.Default().
func NewService(log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{log: log}
}

// AnalyzeProject detects the project category, identifies entry points, runs
// the full analysis pipeline, and retains the graph for later queries.
func (s *Service) AnalyzeProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeProjectInput,
) (*mcp.CallToolResult, AnalyzeProjectOutput, error) {
	if input.ProjectRoot == "" {
		return nil, AnalyzeProjectOutput{}, fmt.Errorf("projectRoot is required")
	}

	det, err := scanner.Detect(input.ProjectRoot)
	if err != nil {
		return nil, AnalyzeProjectOutput{}, fmt.Errorf("detect project: %w", err)
	}
	category := det.Primary()
	entries := scanner.EntryPoints(det)

	a, err := analyzer.New(analyzer.Options{
		Root:        input.ProjectRoot,
		Entries:     entries,
		Extensions:  scanner.Extensions(category),
		ExcludeDirs: input.ExcludeDirs,
		Logger:      s.log,
	})
	if err != nil {
		return nil, AnalyzeProjectOutput{}, err
	}

	reg, err := a.Analyze(ctx)
	if err != nil {
		return nil, AnalyzeProjectOutput{}, fmt.Errorf("analyze: %w", err)
	}

	s.mu.Lock()
	s.last = reg
	s.mu.Unlock()

	return nil, AnalyzeProjectOutput{
		Category:    string(category),
		EntryPoints: entries,
		Stats:       reg.Stats(),
	}, nil
}

// QueryNodes searches the last analyzed graph for nodes by name substring.
func (s *Service) QueryNodes(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input QueryNodesInput,
) (*mcp.CallToolResult, QueryNodesOutput, error) {
	reg, err := s.registry()
	if err != nil {
		return nil, QueryNodesOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	query := strings.ToLower(input.Query)
	kind := graph.NodeKind(strings.ToLower(input.Kind))

	var matched []graph.Node
	for _, n := range reg.Nodes() {
		if input.Kind != "" && n.Kind != kind {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(n.Name), query) {
			continue
		}
		matched = append(matched, n)
		if len(matched) >= limit {
			break
		}
	}

	return nil, QueryNodesOutput{Nodes: matched, Total: len(matched)}, nil
}

// GetEdges returns edges from the last analyzed graph, optionally filtered
// by touching node and edge kind.
func (s *Service) GetEdges(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetEdgesInput,
) (*mcp.CallToolResult, GetEdgesOutput, error) {
	reg, err := s.registry()
	if err != nil {
		return nil, GetEdgesOutput{}, err
	}

	kind := graph.EdgeKind(strings.ToUpper(input.Kind))

	var matched []graph.Edge
	for _, e := range reg.Edges() {
		if input.Kind != "" && e.Kind != kind {
			continue
		}
		if input.NodeID != "" && e.Source != input.NodeID && e.Target != input.NodeID {
			continue
		}
		matched = append(matched, e)
	}

	return nil, GetEdgesOutput{Edges: matched, Total: len(matched)}, nil
}

func (s *Service) registry() (*graph.Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil, fmt.Errorf("no graph available: run analyze_project first")
	}
	return s.last, nil
}
