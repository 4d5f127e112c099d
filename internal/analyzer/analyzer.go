package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
	"github.com/SIDHANTH-S/dev-scope/internal/lang"
)

// sweepDirs are the top-level directories re-scanned after the entry points,
// in a fixed order so discovery is deterministic.
var sweepDirs = []string{"src", "app", "lib", "components", "pages", "api", "server"}

// Options configures an analysis run.
type Options struct {
	// Root is the project directory to analyze. It must exist.
	Root string
	// Entries are repo-relative entry point files, processed first and
	// flagged is_entry in the graph.
	Entries []string
	// Extensions limits the sweep to the given file extensions
	// (".tsx", ".py", ...). Entry points bypass the filter.
	Extensions []string
	// Overrides are user-supplied abstraction level rules.
	Overrides graph.Overrides
	// Cache, when non-nil, skips re-parsing files whose content is
	// unchanged since the last run.
	Cache *ParseCache
	// ExcludeDirs are extra directory names skipped while indexing.
	ExcludeDirs []string
	// Workers bounds parse concurrency during the sweep. Zero means no
	// limit: one goroutine per swept file.
	Workers int
	// Logger receives per-file outcomes. Nil means slog.Default().
	Logger *slog.Logger
}

// Analyzer runs the full extraction pipeline over one project tree.
type Analyzer struct {
	root       string
	entries    []string
	exts       map[string]bool
	classifier *graph.Classifier
	plugins    []lang.Plugin
	cache      *ParseCache
	excludes   []string
	workers    int
	log        *slog.Logger

	mu        sync.Mutex
	processed map[string]bool
}

// New validates the options and builds an Analyzer. A missing project root
// is the one unrecoverable configuration error.
func New(opts Options) (*Analyzer, error) {
	info, err := os.Stat(opts.Root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", opts.Root)
	}

	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[e] = true
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	classifier := graph.NewClassifier(opts.Overrides)
	return &Analyzer{
		root:       opts.Root,
		entries:    opts.Entries,
		exts:       exts,
		classifier: classifier,
		plugins:    lang.Plugins(classifier),
		cache:      opts.Cache,
		excludes:   opts.ExcludeDirs,
		workers:    opts.Workers,
		log:        logger,
		processed:  make(map[string]bool),
	}, nil
}

// Analyze runs the four pipeline phases: index the tree, extract the entry
// points, sweep the feature directories, then derive relationships. The
// returned registry holds the complete graph.
func (a *Analyzer) Analyze(ctx context.Context) (*graph.Registry, error) {
	idx, err := BuildModuleIndex(a.root, a.excludes)
	if err != nil {
		return nil, err
	}

	reg := graph.NewRegistry()
	symbols := graph.NewSymbolTable()

	// Entry points run sequentially, in the order the scanner found them.
	for _, entry := range a.entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !a.claim(entry) {
			continue
		}
		res, err := a.processFile(entry, true)
		if err != nil {
			a.log.Warn("entry point failed", "file", entry, "error", err)
			continue
		}
		apply(reg, symbols, entry, res)
	}

	// Sweep the feature directories in parallel. A file parse failure is
	// logged and skipped; one broken file never sinks the run. Results are
	// buffered and applied in sorted path order after the sweep: node ids
	// can collide across files (identical endpoint paths collapse onto one
	// node), and applying in path order keeps the winner independent of
	// goroutine scheduling.
	var (
		sweepMu sync.Mutex
		swept   = make(map[string]*lang.Result)
	)
	g, ctx := errgroup.WithContext(ctx)
	if a.workers > 0 {
		g.SetLimit(a.workers)
	}
	for _, rel := range idx.Files() {
		if !a.sweepable(rel) || !a.claim(rel) {
			continue
		}
		rel := rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := a.processFile(rel, false)
			if err != nil {
				a.log.Warn("skipping file", "file", rel, "error", err)
				return nil
			}
			sweepMu.Lock()
			swept[rel] = res
			sweepMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sweptFiles := make([]string, 0, len(swept))
	for rel := range swept {
		sweptFiles = append(sweptFiles, rel)
	}
	sort.Strings(sweptFiles)
	for _, rel := range sweptFiles {
		apply(reg, symbols, rel, swept[rel])
	}

	relate(reg, symbols, NewResolver(idx), a.classifier)
	return reg, nil
}

// claim marks rel processed and reports whether this caller won the claim.
// Claiming happens before any I/O so entry points and sweep never parse the
// same file twice.
func (a *Analyzer) claim(rel string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.processed[rel] {
		return false
	}
	a.processed[rel] = true
	return true
}

// sweepable reports whether a repo-relative path belongs to the sweep: it
// must live under one of sweepDirs and carry one of the active extensions.
// TypeScript declaration files carry no runtime code and are skipped.
func (a *Analyzer) sweepable(rel string) bool {
	if strings.HasSuffix(rel, ".d.ts") {
		return false
	}
	if !a.exts[filepath.Ext(rel)] {
		return false
	}
	top, _, _ := strings.Cut(rel, "/")
	for _, d := range sweepDirs {
		if top == d {
			return true
		}
	}
	return false
}

// apply records one file's extraction result. A nil result means the file had
// no extractor.
func apply(reg *graph.Registry, symbols *graph.SymbolTable, rel string, res *lang.Result) {
	if res == nil {
		return
	}
	reg.AddAll(res.Nodes)
	symbols.Set(rel, res.Symbols)
}

// processFile extracts one file, going through the cache when one is
// configured. The caller applies the result to the registry.
func (a *Analyzer) processFile(rel string, isEntry bool) (*lang.Result, error) {
	source, err := os.ReadFile(filepath.Join(a.root, rel))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rel, err)
	}

	hash := ContentHash(source)
	if a.cache != nil {
		if cached, ok := a.cache.Lookup(rel, hash); ok {
			a.log.Debug("cache hit", "file", rel)
			return &lang.Result{Nodes: cached.Nodes, Symbols: cached.Symbols}, nil
		}
	}

	result, err := a.extract(rel, source, isEntry)
	if err != nil {
		return nil, err
	}
	if result == nil {
		a.log.Debug("no extractor", "file", rel)
		return nil, nil
	}
	a.log.Debug("extracted", "file", rel, "nodes", len(result.Nodes))

	if a.cache != nil {
		entry := CachedFile{Nodes: result.Nodes, Symbols: result.Symbols}
		if err := a.cache.Store(rel, hash, entry); err != nil {
			a.log.Warn("cache store failed", "file", rel, "error", err)
		}
	}
	return result, nil
}

// extract dispatches to the language plugin for the file's extension, or to
// the template fallback for plain markup. Unhandled extensions yield nil.
func (a *Analyzer) extract(rel string, source []byte, isEntry bool) (*lang.Result, error) {
	ext := filepath.Ext(rel)
	if p := lang.ForExtension(a.plugins, ext); p != nil {
		return p.Extract(rel, source, isEntry)
	}
	if lang.IsTemplate(ext) {
		node := lang.TemplateNode(a.classifier, rel, isEntry)
		return &lang.Result{Nodes: []graph.Node{node}, Symbols: graph.FileSymbols{}}, nil
	}
	return nil, nil
}
