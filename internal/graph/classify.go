package graph

import "strings"

// Overrides are the user-supplied classification tables from .devscope.yml.
// Both map a level name to the patterns that force that level.
type Overrides struct {
	// PathContains forces a level when the file path contains a substring.
	PathContains map[Level][]string
	// NodeKinds forces a level for every entity of a listed kind.
	NodeKinds map[Level][]string
}

// Classifier assigns abstraction levels to extracted entities. It is a pure
// function of its inputs plus the override tables captured at construction.
type Classifier struct {
	overrides Overrides
}

// NewClassifier creates a Classifier with the given user overrides. A zero
// Overrides value disables both tables.
func NewClassifier(overrides Overrides) *Classifier {
	return &Classifier{overrides: overrides}
}

// entryNames are the canonical entry-module names for rule 4.
var entryNames = map[string]bool{"main": true, "app": true, "index": true}

// mainFileSuffixes are conventional main-file path endings.
var mainFileSuffixes = []string{
	"main.tsx", "main.ts", "main.js", "app.tsx", "app.py", "urls.py",
}

// featureDirs are directory names indicating a feature-boundary module.
var featureDirs = []string{"pages", "components", "views", "controllers", "services"}

// Level determines the architectural level for an entity. Rules are
// evaluated first-match-wins: path-substring overrides, kind overrides,
// then the built-in heuristics.
func (c *Classifier) Level(kind NodeKind, filePath, name string, isEntry bool) Level {
	fileLower := strings.ToLower(filePath)
	nameLower := strings.ToLower(name)

	// User overrides always win over built-in heuristics. Levels are walked
	// coarsest-first so overlapping tables resolve deterministically.
	for _, level := range Levels {
		for _, pat := range c.overrides.PathContains[level] {
			if pat != "" && strings.Contains(fileLower, strings.ToLower(pat)) {
				return level
			}
		}
	}
	for _, level := range Levels {
		for _, k := range c.overrides.NodeKinds[level] {
			if string(kind) == k {
				return level
			}
		}
	}

	// API endpoints are external boundaries.
	if kind == KindAPIEndpoint {
		return LevelSystem
	}

	// Entry modules, main applications, root services.
	if isEntry || kind == KindModule {
		if entryNames[nameLower] ||
			strings.Contains(fileLower, "main.") ||
			hasAnySuffix(fileLower, mainFileSuffixes) ||
			(kind == KindModule && strings.Contains(nameLower, "springbootapplication")) {
			return LevelContainer
		}
	}

	switch kind {
	case KindComponent, KindView, KindController, KindService:
		return LevelComponent
	}

	// Modules living under feature directories are component-level.
	if kind == KindModule {
		for _, dir := range featureDirs {
			if strings.Contains(fileLower, dir) {
				return LevelComponent
			}
		}
	}

	switch kind {
	case KindFunction, KindClass, KindModel, KindTemplate:
		return LevelCode
	}

	return LevelCode
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
