package graph

import (
	"crypto/sha256"
	"encoding/hex"
)

// NodeID derives the deterministic identifier for an entity from its
// project-relative file path and name. The same (file, name) pair always
// yields the same id, so a module first created as an import target and
// later re-visited by direct traversal collapses onto one node. Every id in
// the graph comes from this single scheme.
func NodeID(file, name string) string {
	sum := sha256.Sum256([]byte(file + ":" + name))
	return hex.EncodeToString(sum[:])[:16]
}

// ModuleID is the id of the synthetic per-file module node.
func ModuleID(file string) string {
	return NodeID(file, "module")
}

// TemplateID is the id of the fallback node emitted for plain markup files.
func TemplateID(file string) string {
	return NodeID(file, "template")
}

// EndpointID keys an API endpoint node by the literal path text alone, so
// distinct controllers exposing the identical path collapse onto one node.
func EndpointID(path string) string {
	return "api_" + NodeID("api", path)
}
