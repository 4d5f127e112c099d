// Package export renders a completed analysis into its output formats: the
// JSON report consumed by downstream tooling and a Mermaid diagram for
// humans.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// ProjectInfo describes the analyzed project in the report header.
type ProjectInfo struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Language    string   `json:"language"`
	Framework   string   `json:"framework,omitempty"`
	EntryPoints []string `json:"entry_points,omitempty"`
}

// Report is the top-level JSON export structure.
type Report struct {
	Project    ProjectInfo `json:"project"`
	ExportedAt string      `json:"exported_at"`
	Nodes      []graph.Node `json:"nodes"`
	Edges      []graph.Edge `json:"edges"`
	Metadata   graph.Stats  `json:"metadata"`
}

// BuildReport snapshots a registry into a Report. Nodes are sorted by id and
// edges keep insertion order, so the same analysis always serializes the
// same way.
func BuildReport(info ProjectInfo, reg *graph.Registry) *Report {
	return &Report{
		Project:    info,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Nodes:      reg.Nodes(),
		Edges:      reg.Edges(),
		Metadata:   reg.Stats(),
	}
}

// WriteFile writes the report as indented JSON to path.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
