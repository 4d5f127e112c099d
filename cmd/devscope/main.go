package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/SIDHANTH-S/dev-scope/internal/analyzer"
	"github.com/SIDHANTH-S/dev-scope/internal/config"
	"github.com/SIDHANTH-S/dev-scope/internal/export"
	"github.com/SIDHANTH-S/dev-scope/internal/mcptools"
	"github.com/SIDHANTH-S/dev-scope/internal/scanner"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ProjectRoot string
	Category    string
	Entry       string
	Out         string
	Mermaid     string
	CachePath   string
	PersistPath string
	Workers     int
	ServeMCP    bool
	Addr        string
	Verbose     bool
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("devscope", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "path to the project to analyze")
	fs.StringVar(&flags.Category, "category", "", "override detected project category (react_vite, django, spring_boot, ...)")
	fs.StringVar(&flags.Entry, "entry", "", "override entry point (repo-relative file path)")
	fs.StringVar(&flags.Out, "out", "graph.json", "output path for the JSON report")
	fs.StringVar(&flags.Mermaid, "mermaid", "", "also write a Mermaid diagram to this path")
	fs.StringVar(&flags.CachePath, "cache", "", "SQLite parse cache path (empty disables caching)")
	fs.StringVar(&flags.PersistPath, "persist", "", "persist the graph to a KuzuDB database at this path")
	fs.IntVar(&flags.Workers, "workers", 0, "parse concurrency during the sweep (0 = unbounded)")
	fs.BoolVar(&flags.ServeMCP, "serve-mcp", false, "run as an MCP server instead of a one-shot analysis")
	fs.StringVar(&flags.Addr, "addr", ":8391", "listen address for the MCP server")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelInfo
	if flags.Verbose || cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.ServeMCP {
		logger.Info("serving MCP", "addr", flags.Addr)
		return mcptools.RunMCPServer(ctx, mcptools.NewService(logger), flags.Addr)
	}

	return analyze(ctx, flags, cfg, logger)
}

func analyze(ctx context.Context, flags cliFlags, cfg *config.ProjectConfig, logger *slog.Logger) error {
	det, err := scanner.Detect(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("detect project: %w", err)
	}

	category := det.Primary()
	if flags.Category != "" {
		category = scanner.Category(flags.Category)
	} else if cfg.Category != "" {
		category = scanner.Category(cfg.Category)
	}

	entries := scanner.EntryPoints(det)
	if flags.Entry != "" {
		entries = []string{flags.Entry}
	}
	logger.Info("project detected", "category", category, "entries", entries)

	var cache *analyzer.ParseCache
	cachePath := flags.CachePath
	if cachePath == "" {
		cachePath = cfg.CachePath
	}
	if cachePath != "" {
		cache, err = analyzer.OpenParseCache(cachePath)
		if err != nil {
			return err
		}
		defer cache.Close()
	}

	a, err := analyzer.New(analyzer.Options{
		Root:        flags.ProjectRoot,
		Entries:     entries,
		Extensions:  scanner.Extensions(category),
		Overrides:   cfg.Overrides(),
		Cache:       cache,
		ExcludeDirs: cfg.ExcludeDirs,
		Workers:     flags.Workers,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	reg, err := a.Analyze(ctx)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	stats := reg.Stats()
	logger.Info("analysis complete", "nodes", stats.TotalNodes, "edges", stats.TotalEdges)

	info := export.ProjectInfo{
		Name:        filepath.Base(absPath(flags.ProjectRoot)),
		Category:    string(category),
		Language:    scanner.Language(category),
		Framework:   scanner.Framework(category),
		EntryPoints: entries,
	}
	report := export.BuildReport(info, reg)
	if err := report.WriteFile(flags.Out); err != nil {
		return err
	}
	logger.Info("report written", "path", flags.Out)

	if flags.Mermaid != "" {
		diagram := export.GenerateMermaid(reg)
		if err := os.WriteFile(flags.Mermaid, []byte(diagram), 0o644); err != nil {
			return fmt.Errorf("write mermaid %s: %w", flags.Mermaid, err)
		}
		logger.Info("diagram written", "path", flags.Mermaid)
	}

	if flags.PersistPath != "" {
		if err := persist(ctx, flags.PersistPath, reg); err != nil {
			return err
		}
		logger.Info("graph persisted", "path", flags.PersistPath)
	}

	return nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
