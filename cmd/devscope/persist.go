//go:build cgo

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// persist writes the graph to a file-backed KuzuDB database, replacing any
// previous database at that path.
func persist(ctx context.Context, path string, reg *graph.Registry) error {
	os.RemoveAll(path)

	store, err := graph.NewKuzuFileStore(path)
	if err != nil {
		return fmt.Errorf("open graph store: %w", err)
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("init graph schema: %w", err)
	}
	if err := store.Persist(ctx, reg); err != nil {
		return fmt.Errorf("persist graph: %w", err)
	}
	return nil
}
