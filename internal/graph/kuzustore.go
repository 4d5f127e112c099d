//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore persists an analyzed graph in a KuzuDB database so downstream
// tooling can query it without re-running the pipeline. It requires CGO
// because the go-kuzu driver wraps KuzuDB's C library.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself for new
// databases.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ddlStatements defines the Cypher DDL executed by InitSchema. The node
// table must precede the relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS Entity(
		id STRING,
		kind STRING,
		file STRING,
		name STRING,
		level STRING,
		is_entry BOOLEAN,
		endpoint STRING,
		PRIMARY KEY(id)
	)`,
	`CREATE REL TABLE IF NOT EXISTS DEPENDS_ON(FROM Entity TO Entity)`,
	`CREATE REL TABLE IF NOT EXISTS RENDERS(FROM Entity TO Entity)`,
	`CREATE REL TABLE IF NOT EXISTS CALLS(FROM Entity TO Entity)`,
}

// InitSchema creates the node and relationship tables if they do not exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// AddNode inserts an Entity node.
func (s *KuzuStore) AddNode(_ context.Context, n Node) error {
	return s.exec(
		`CREATE (e:Entity {
			id: $id,
			kind: $kind,
			file: $file,
			name: $name,
			level: $level,
			is_entry: $is_entry,
			endpoint: $endpoint
		})`,
		map[string]any{
			"id":       n.ID,
			"kind":     string(n.Kind),
			"file":     n.File,
			"name":     n.Name,
			"level":    string(n.Meta.Level),
			"is_entry": n.Meta.IsEntry,
			"endpoint": n.Meta.Endpoint,
		},
	)
}

// AddEdge inserts a relationship between two Entity nodes.
func (s *KuzuStore) AddEdge(_ context.Context, e Edge) error {
	var rel string
	switch e.Kind {
	case EdgeDependsOn:
		rel = "DEPENDS_ON"
	case EdgeRenders:
		rel = "RENDERS"
	case EdgeCalls:
		rel = "CALLS"
	default:
		return fmt.Errorf("kuzu: unsupported edge kind: %s", e.Kind)
	}
	cypher := fmt.Sprintf(
		"MATCH (a:Entity {id: $src}), (b:Entity {id: $dst}) CREATE (a)-[:%s]->(b)", rel)
	return s.exec(cypher, map[string]any{"src": e.Source, "dst": e.Target})
}

// Persist writes every node and edge from the registry into the store.
// Edges whose endpoints are missing from the registry are skipped.
func (s *KuzuStore) Persist(ctx context.Context, reg *Registry) error {
	if err := s.InitSchema(ctx); err != nil {
		return err
	}
	for _, n := range reg.Nodes() {
		if err := s.AddNode(ctx, n); err != nil {
			return fmt.Errorf("kuzu: add node %s: %w", n.ID, err)
		}
	}
	for _, e := range reg.Edges() {
		if !reg.Has(e.Source) || !reg.Has(e.Target) {
			continue
		}
		if err := s.AddEdge(ctx, e); err != nil {
			return fmt.Errorf("kuzu: add edge %s->%s: %w", e.Source, e.Target, err)
		}
	}
	return nil
}

// NodeCount returns the number of persisted Entity nodes.
func (s *KuzuStore) NodeCount(_ context.Context) (int, error) {
	rows, err := s.query("MATCH (n:Entity) RETURN count(n)", nil)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, nil
	}
	return toInt(rows[0][0]), nil
}

// EdgeCount returns the total number of persisted edges across all
// relationship tables.
func (s *KuzuStore) EdgeCount(_ context.Context) (int, error) {
	total := 0
	for _, rel := range []string{"DEPENDS_ON", "RENDERS", "CALLS"} {
		cypher := fmt.Sprintf("MATCH ()-[r:%s]->() RETURN count(r)", rel)
		rows, err := s.query(cypher, nil)
		if err != nil {
			// Table may not exist yet; treat as zero.
			continue
		}
		if len(rows) > 0 && len(rows[0]) > 0 {
			total += toInt(rows[0][0])
		}
	}
	return total, nil
}

// QueryNodesByName returns persisted nodes whose name contains the query
// string, up to limit results.
func (s *KuzuStore) QueryNodesByName(_ context.Context, queryStr string, limit int) ([]Node, error) {
	rows, err := s.query(
		`MATCH (e:Entity) WHERE e.name CONTAINS $q
		 RETURN e.id, e.kind, e.file, e.name, e.level, e.is_entry, e.endpoint
		 LIMIT $lim`,
		map[string]any{"q": queryStr, "lim": int64(limit)},
	)
	if err != nil {
		return nil, err
	}
	out := make([]Node, 0, len(rows))
	for _, r := range rows {
		out = append(out, Node{
			ID:   toString(r[0]),
			Kind: NodeKind(toString(r[1])),
			File: toString(r[2]),
			Name: toString(r[3]),
			Meta: Meta{
				Level:    Level(toString(r[4])),
				IsEntry:  toBool(r[5]),
				Endpoint: toString(r[6]),
			},
		})
	}
	return out, nil
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// KuzuDB returns typed Go values; these helpers coerce any -> concrete.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toBool(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}
