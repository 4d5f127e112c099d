package export

import (
	"fmt"
	"strings"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram from a registry.
// Nodes are grouped into subgraphs by abstraction level; edge kinds become
// labeled arrows.
func GenerateMermaid(reg *graph.Registry) string {
	nodes := reg.Nodes()

	// Mermaid identifiers must stay alphanumeric; map graph ids to N0, N1...
	mermaidIDs := make(map[string]string, len(nodes))
	nextID := 0
	getID := func(graphID string) string {
		if id, ok := mermaidIDs[graphID]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		mermaidIDs[graphID] = id
		return id
	}

	byLevel := make(map[graph.Level][]graph.Node)
	for _, n := range nodes {
		byLevel[n.Meta.Level] = append(byLevel[n.Meta.Level], n)
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, level := range graph.Levels {
		members := byLevel[level]
		if len(members) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  subgraph %s[\"%s\"]\n", level, level))
		for _, n := range members {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", getID(n.ID), escapeLabel(nodeLabel(n))))
		}
		sb.WriteString("  end\n")
	}

	for _, e := range reg.Edges() {
		src, srcOK := mermaidIDs[e.Source]
		tgt, tgtOK := mermaidIDs[e.Target]
		if !srcOK || !tgtOK {
			continue
		}
		switch e.Kind {
		case graph.EdgeDependsOn:
			sb.WriteString(fmt.Sprintf("  %s --> %s\n", src, tgt))
		case graph.EdgeRenders:
			sb.WriteString(fmt.Sprintf("  %s -.->|renders| %s\n", src, tgt))
		case graph.EdgeCalls:
			sb.WriteString(fmt.Sprintf("  %s -->|calls| %s\n", src, tgt))
		}
	}

	return sb.String()
}

// nodeLabel renders a node's display text: the name plus its kind when the
// kind is not obvious from context.
func nodeLabel(n graph.Node) string {
	if n.Kind == graph.KindAPIEndpoint && n.Meta.Endpoint != "" {
		return n.Meta.Endpoint
	}
	return fmt.Sprintf("%s (%s)", n.Name, n.Kind)
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	if len(s) > 40 {
		s = s[:37] + "..."
	}
	return s
}
