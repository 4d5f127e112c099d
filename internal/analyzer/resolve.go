// Package analyzer orchestrates the extraction pipeline: it indexes the
// project tree, runs the language plugins over entry points and feature
// directories, and derives dependency, render and call edges from the
// per-file facts the plugins record.
package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	gitignore "github.com/sabhiram/go-gitignore"
)

// srcRoots are leading path segments stripped when building normalized
// module-index keys, so "src/components/App.tsx" is reachable as
// "components/App".
var srcRoots = []string{"src", "app", "lib", "components", "pages", "server", "api"}

// skipDirs are directory names never descended into while indexing.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"build":        true,
	"dist":         true,
	"target":       true,
	".venv":        true,
	"venv":         true,
	"vendor":       true,
}

// ModuleIndex maps normalized import keys to repo-relative source files. It
// is built once per analysis from a filesystem walk and consulted by the
// Resolver with no further I/O.
type ModuleIndex struct {
	root  string
	keys  map[string]string // normalized key → repo-relative path
	files map[string]bool   // repo-relative path → exists
}

// BuildModuleIndex walks the project root and registers every source file
// under its repo-relative path plus a set of normalized aliases. Files
// matched by a root .gitignore are skipped, as are skipDirs.
func BuildModuleIndex(root string, extraExcludes []string) (*ModuleIndex, error) {
	idx := &ModuleIndex{
		root:  root,
		keys:  make(map[string]string),
		files: make(map[string]bool),
	}

	var ignore *gitignore.GitIgnore
	if gi, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		ignore = gi
	}

	excluded := make(map[string]bool, len(extraExcludes))
	for _, d := range extraExcludes {
		excluded[d] = true
	}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if skipDirs[d.Name()] || excluded[d.Name()] || strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if ignore != nil && ignore.MatchesPath(rel) {
			return nil
		}

		idx.files[rel] = true
		idx.register(rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", root, err)
	}
	return idx, nil
}

// register records the normalized aliases for one repo-relative file path:
// the extensionless path, the same with any leading source root stripped,
// and, for index files, the containing directory itself.
func (idx *ModuleIndex) register(rel string) {
	stem := strings.TrimSuffix(rel, filepath.Ext(rel))

	for _, key := range normalizedKeys(stem) {
		if _, exists := idx.keys[key]; !exists {
			idx.keys[key] = rel
		}
	}

	// Directory imports: "components/Button/index.tsx" answers to
	// "components/Button".
	base := filepath.Base(stem)
	if base == "index" || base == "__init__" {
		dir := filepath.ToSlash(filepath.Dir(stem))
		if dir != "." {
			for _, key := range normalizedKeys(dir) {
				if _, exists := idx.keys[key]; !exists {
					idx.keys[key] = rel
				}
			}
		}
	}
}

// normalizedKeys returns the extensionless path and, when its first segment
// is a conventional source root, the path with that segment stripped.
func normalizedKeys(stem string) []string {
	keys := []string{stem}
	for _, root := range srcRoots {
		prefix := root + "/"
		if strings.HasPrefix(stem, prefix) {
			keys = append(keys, strings.TrimPrefix(stem, prefix))
			break
		}
	}
	return keys
}

// Has reports whether a repo-relative file path was indexed.
func (idx *ModuleIndex) Has(rel string) bool { return idx.files[filepath.ToSlash(rel)] }

// Files returns all indexed repo-relative paths in sorted order.
func (idx *ModuleIndex) Files() []string {
	out := make([]string, 0, len(idx.files))
	for f := range idx.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the file registered under a normalized key.
func (idx *ModuleIndex) Lookup(key string) (string, bool) {
	f, ok := idx.keys[key]
	return f, ok
}

// sortedKeys returns the normalized keys in sorted order. Suffix matching
// iterates this so ties always break the same way.
func (idx *ModuleIndex) sortedKeys() []string {
	out := make([]string, 0, len(idx.keys))
	for k := range idx.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// resolveExts is the candidate extension order for extensionless relative
// imports. JavaScript variants come first because mixed JS/TS trees import
// without extensions far more often than Python or Java do.
var resolveExts = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".py", ".java"}

// indexFiles are the directory-import candidates tried after the extension
// probes fail.
var indexFiles = []string{"index.ts", "index.tsx", "index.js", "index.jsx", "__init__.py"}

// Resolver rewrites raw import specifiers into repo-relative file paths
// against a ModuleIndex. Results are memoized per (source dir, specifier)
// pair since large trees repeat the same imports constantly.
type Resolver struct {
	index *ModuleIndex
	memo  *lru.Cache[string, string]
}

// NewResolver builds a Resolver over an index.
func NewResolver(idx *ModuleIndex) *Resolver {
	memo, _ := lru.New[string, string](4096)
	return &Resolver{index: idx, memo: memo}
}

// Resolve maps an import specifier written in sourceFile to the
// repo-relative path of the imported file. It returns false for external
// packages and anything else that matches no indexed file.
func (r *Resolver) Resolve(spec, sourceFile string) (string, bool) {
	if spec == "" {
		return "", false
	}
	sourceDir := filepath.ToSlash(filepath.Dir(sourceFile))

	memoKey := sourceDir + "|" + spec
	if cached, ok := r.memo.Get(memoKey); ok {
		return cached, cached != ""
	}

	resolved, ok := r.resolve(spec, sourceDir)
	if ok {
		r.memo.Add(memoKey, resolved)
	} else {
		r.memo.Add(memoKey, "")
	}
	return resolved, ok
}

func (r *Resolver) resolve(spec, sourceDir string) (string, bool) {
	if strings.HasPrefix(spec, ".") {
		return r.resolveRelative(spec, sourceDir)
	}
	return r.resolveBare(spec)
}

// resolveRelative handles "./x", "../x" and Python dotted-relative forms
// (".models", "..utils.helpers").
func (r *Resolver) resolveRelative(spec, sourceDir string) (string, bool) {
	// Python relative imports use dots for both the traversal and the
	// module path: ".models" is sibling, "..pkg.mod" is one level up.
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") {
		dots := 0
		for dots < len(spec) && spec[dots] == '.' {
			dots++
		}
		base := sourceDir
		for i := 1; i < dots; i++ {
			base = filepath.ToSlash(filepath.Dir(base))
		}
		modulePart := strings.ReplaceAll(spec[dots:], ".", "/")
		if modulePart == "" {
			return r.probe(joinClean(base, "__init__.py"))
		}
		return r.probeCandidates(joinClean(base, modulePart))
	}

	return r.probeCandidates(joinClean(sourceDir, spec))
}

// resolveBare handles extensionless "absolute" specifiers: path aliases,
// Python absolute imports, Java package imports. Dotted specifiers are
// normalized to slashes before lookup.
func (r *Resolver) resolveBare(spec string) (string, bool) {
	key := spec
	if !strings.Contains(spec, "/") && strings.Contains(spec, ".") {
		key = strings.ReplaceAll(spec, ".", "/")
	}
	key = strings.TrimPrefix(key, "@/")

	if f, ok := r.index.Lookup(key); ok {
		return f, true
	}
	for _, root := range []string{"src", "app", "lib"} {
		if f, ok := r.index.Lookup(root + "/" + key); ok {
			return f, true
		}
	}

	// Last resort: a unique suffix match lets Java's fully qualified
	// names ("com.example.demo.UserService") find "src/.../UserService".
	suffix := "/" + key
	for _, k := range r.index.sortedKeys() {
		if strings.HasSuffix(k, suffix) {
			return r.index.keys[k], true
		}
	}
	return "", false
}

// probeCandidates tries the literal path (when it already carries a known
// extension), then each extension, then the directory-index forms.
func (r *Resolver) probeCandidates(base string) (string, bool) {
	if ext := filepath.Ext(base); ext != "" {
		for _, known := range resolveExts {
			if ext == known {
				return r.probe(base)
			}
		}
	}
	for _, ext := range resolveExts {
		if f, ok := r.probe(base + ext); ok {
			return f, true
		}
	}
	for _, index := range indexFiles {
		if f, ok := r.probe(base + "/" + index); ok {
			return f, true
		}
	}
	return "", false
}

func (r *Resolver) probe(rel string) (string, bool) {
	if r.index.Has(rel) {
		return rel, true
	}
	return "", false
}

// joinClean joins and cleans without letting ".." escape above the repo
// root, and keeps forward slashes.
func joinClean(dir, rel string) string {
	joined := filepath.ToSlash(filepath.Clean(filepath.Join(dir, rel)))
	for strings.HasPrefix(joined, "../") {
		joined = strings.TrimPrefix(joined, "../")
	}
	if joined == ".." || joined == "." {
		return ""
	}
	return joined
}
