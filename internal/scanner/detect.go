// Package scanner detects what kind of project a directory holds and where
// its entry points are. Detection is manifest-driven (pom.xml, package.json,
// requirements.txt, ...) with a content-refinement pass that distinguishes
// frameworks sharing a manifest, e.g. React vs Express inside package.json.
package scanner

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Category identifies the detected project ecosystem.
type Category string

const (
	CategoryReactVite   Category = "react_vite"
	CategoryAngular     Category = "angular"
	CategoryExpressNode Category = "express_node"
	CategoryDjango      Category = "django"
	CategoryPythonApp   Category = "python_app"
	CategorySpringBoot  Category = "spring_boot"
	CategoryMavenJava   Category = "maven_java"
	CategoryGradleJava  Category = "gradle_java"
	CategoryAndroid     Category = "android"
	CategoryUnknown     Category = "unknown"
)

// manifestCategories maps config file names to the category they imply
// before content refinement.
var manifestCategories = map[string]Category{
	"pom.xml":             CategoryMavenJava,
	"build.gradle":        CategoryGradleJava,
	"package.json":        CategoryReactVite, // refined from dependencies
	"angular.json":        CategoryAngular,
	"settings.py":         CategoryDjango,
	"urls.py":             CategoryDjango,
	"requirements.txt":    CategoryPythonApp,
	"AndroidManifest.xml": CategoryAndroid,
	"vite.config.ts":      CategoryReactVite,
	"vite.config.js":      CategoryReactVite,
}

// categoryPriority orders detected categories from most to least specific;
// Primary returns the first match. A Spring Boot project also matches
// maven_java, a Django project also matches python_app.
var categoryPriority = []Category{
	CategorySpringBoot,
	CategoryAngular,
	CategoryReactVite,
	CategoryExpressNode,
	CategoryDjango,
	CategoryAndroid,
	CategoryMavenJava,
	CategoryGradleJava,
	CategoryPythonApp,
}

// skipDirs are never descended into while scanning.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"target":       true,
	"build":        true,
	"dist":         true,
}

// ConfigFile is one recognized manifest found during the scan.
type ConfigFile struct {
	Path string `json:"path"` // repo-relative, forward slashes
	Name string `json:"type"` // manifest file name, e.g. "package.json"
}

// Detection is the result of scanning one project directory.
type Detection struct {
	Root       string
	Configs    []ConfigFile
	categories map[Category]bool
}

// Detect scans root for known manifests and returns the detection result.
func Detect(root string) (*Detection, error) {
	d := &Detection{Root: root, categories: make(map[Category]bool)}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if skipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		cat, ok := manifestCategories[entry.Name()]
		if !ok {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		d.Configs = append(d.Configs, ConfigFile{
			Path: filepath.ToSlash(rel),
			Name: entry.Name(),
		})
		d.categories[cat] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.refine()
	return d, nil
}

// refine upgrades manifest-level guesses using manifest contents.
func (d *Detection) refine() {
	for _, cfg := range d.Configs {
		full := filepath.Join(d.Root, filepath.FromSlash(cfg.Path))
		switch cfg.Name {
		case "package.json":
			d.refinePackageJSON(full)
		case "pom.xml":
			if contains(full, "spring-boot-starter") {
				d.categories[CategorySpringBoot] = true
			}
		case "build.gradle":
			if contains(full, "org.springframework.boot") {
				d.categories[CategorySpringBoot] = true
			}
		case "requirements.txt":
			if containsFold(full, "django") {
				d.categories[CategoryDjango] = true
			}
		}
	}
}

func (d *Detection) refinePackageJSON(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return
	}
	deps := make(map[string]bool, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for k := range pkg.Dependencies {
		deps[k] = true
	}
	for k := range pkg.DevDependencies {
		deps[k] = true
	}

	if deps["react"] || deps["react-dom"] || deps["vite"] {
		d.categories[CategoryReactVite] = true
	}
	if deps["@angular/core"] {
		d.categories[CategoryAngular] = true
	}
	if deps["express"] {
		d.categories[CategoryExpressNode] = true
		// A bare package.json without frontend deps is not a Vite app.
		if !deps["react"] && !deps["react-dom"] && !deps["vite"] {
			delete(d.categories, CategoryReactVite)
		}
	}
}

// Primary returns the most specific detected category.
func (d *Detection) Primary() Category {
	for _, cat := range categoryPriority {
		if d.categories[cat] {
			return cat
		}
	}
	return CategoryUnknown
}

// Categories returns every detected category in priority order.
func (d *Detection) Categories() []Category {
	var out []Category
	for _, cat := range categoryPriority {
		if d.categories[cat] {
			out = append(out, cat)
		}
	}
	return out
}

// Extensions returns the source extensions swept for a category.
func Extensions(cat Category) []string {
	switch cat {
	case CategoryReactVite, CategoryAngular, CategoryExpressNode:
		return []string{".js", ".jsx", ".ts", ".tsx", ".html"}
	case CategoryDjango, CategoryPythonApp:
		return []string{".py"}
	case CategorySpringBoot, CategoryMavenJava, CategoryGradleJava, CategoryAndroid:
		return []string{".java"}
	default:
		// Unknown projects sweep everything the plugins handle.
		return []string{".js", ".jsx", ".ts", ".tsx", ".py", ".java", ".html"}
	}
}

// Language returns the primary implementation language for a category.
func Language(cat Category) string {
	switch cat {
	case CategoryReactVite, CategoryAngular:
		return "typescript"
	case CategoryExpressNode:
		return "javascript"
	case CategoryDjango, CategoryPythonApp:
		return "python"
	case CategorySpringBoot, CategoryMavenJava, CategoryGradleJava, CategoryAndroid:
		return "java"
	default:
		return "unknown"
	}
}

// Framework returns the framework label for a category, or "" when the
// category implies none.
func Framework(cat Category) string {
	switch cat {
	case CategoryReactVite:
		return "react"
	case CategoryAngular:
		return "angular"
	case CategoryExpressNode:
		return "express"
	case CategoryDjango:
		return "django"
	case CategorySpringBoot:
		return "spring-boot"
	case CategoryAndroid:
		return "android"
	default:
		return ""
	}
}

// contains reports whether the file at path contains substr.
func contains(path, substr string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), substr)
}

// containsFold is contains with case-insensitive matching.
func containsFold(path, substr string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), strings.ToLower(substr))
}
