package scanner

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// scriptSrcPattern pulls the first script src out of an index.html, which is
// how Vite wires the application entry.
var scriptSrcPattern = regexp.MustCompile(`<script[^>]*?src=["']([^"']+)["']`)

// EntryPoints returns the repo-relative entry point files for a detection,
// most specific detection first. Results only include files that exist; an
// empty slice means the analyzer starts from the sweep alone.
func EntryPoints(det *Detection) []string {
	var entries []string
	switch det.Primary() {
	case CategoryReactVite:
		entries = reactViteEntries(det.Root)
	case CategoryAngular:
		entries = angularEntries(det)
	case CategoryExpressNode:
		entries = expressEntries(det.Root)
	case CategoryDjango:
		entries = djangoEntries(det.Root)
	case CategorySpringBoot:
		entries = springBootEntries(det.Root)
	}
	if len(entries) == 0 {
		entries = genericEntries(det.Root)
	}
	return entries
}

func reactViteEntries(root string) []string {
	var entries []string

	if data, err := os.ReadFile(filepath.Join(root, "index.html")); err == nil {
		if m := scriptSrcPattern.FindSubmatch(data); m != nil {
			src := strings.TrimPrefix(string(m[1]), "/")
			if fileExists(root, src) {
				entries = append(entries, src)
			}
		}
	}

	for _, ext := range []string{"tsx", "jsx", "ts", "js"} {
		rel := "src/main." + ext
		if fileExists(root, rel) {
			entries = appendUnique(entries, rel)
			break
		}
	}
	return entries
}

func angularEntries(det *Detection) []string {
	var entries []string
	for _, cfg := range det.Configs {
		if cfg.Name != "angular.json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(det.Root, filepath.FromSlash(cfg.Path)))
		if err != nil {
			continue
		}
		var doc struct {
			Projects map[string]struct {
				Architect map[string]struct {
					Options struct {
						Main string `json:"main"`
					} `json:"options"`
				} `json:"architect"`
			} `json:"projects"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			continue
		}
		for _, project := range doc.Projects {
			if build, ok := project.Architect["build"]; ok && build.Options.Main != "" {
				if fileExists(det.Root, build.Options.Main) {
					entries = appendUnique(entries, build.Options.Main)
				}
			}
		}
	}
	return entries
}

func expressEntries(root string) []string {
	for _, name := range []string{"index.js", "server.js", "app.js"} {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		text := string(data)
		if strings.Contains(text, "app.listen") || strings.Contains(text, "express()") {
			return []string{name}
		}
	}

	// package.json "main" as a fallback when no conventional file matched.
	if data, err := os.ReadFile(filepath.Join(root, "package.json")); err == nil {
		var pkg struct {
			Main string `json:"main"`
		}
		if json.Unmarshal(data, &pkg) == nil && pkg.Main != "" && fileExists(root, pkg.Main) {
			return []string{filepath.ToSlash(pkg.Main)}
		}
	}
	return nil
}

// djangoEntries collects every urls.py and settings.py: URL configuration is
// where a Django project's routing lives, so all of them count as entries.
func djangoEntries(root string) []string {
	var entries []string
	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if skipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.Name() == "urls.py" || entry.Name() == "settings.py" {
			if rel, relErr := filepath.Rel(root, path); relErr == nil {
				entries = append(entries, filepath.ToSlash(rel))
			}
		}
		return nil
	})
	return entries
}

// springBootEntries finds the application class by its annotation rather
// than trusting pom.xml, which frequently omits mainClass.
func springBootEntries(root string) []string {
	var entries []string
	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if skipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(entry.Name(), ".java") {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}
		text := string(data)
		if strings.Contains(text, "@SpringBootApplication") && strings.Contains(text, "public static void main") {
			if rel, relErr := filepath.Rel(root, path); relErr == nil {
				entries = append(entries, filepath.ToSlash(rel))
			}
		}
		return nil
	})
	return entries
}

// genericEntries looks for a conventional main.* at the project root.
func genericEntries(root string) []string {
	for _, ext := range []string{"py", "js", "ts", "java"} {
		rel := "main." + ext
		if fileExists(root, rel) {
			return []string{rel}
		}
	}
	return nil
}

func fileExists(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}

func appendUnique(entries []string, rel string) []string {
	for _, e := range entries {
		if e == rel {
			return entries
		}
	}
	return append(entries, rel)
}
