//go:build !cgo

package main

import (
	"context"
	"fmt"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

// persist is unavailable without CGO: the KuzuDB driver wraps a C library.
func persist(_ context.Context, _ string, _ *graph.Registry) error {
	return fmt.Errorf("graph persistence requires a CGO-enabled build")
}
