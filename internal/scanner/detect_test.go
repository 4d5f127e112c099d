package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_ReactProject(t *testing.T) {
	det, err := Detect("../../testdata/fixtures/react_project")
	require.NoError(t, err)

	assert.Equal(t, CategoryReactVite, det.Primary())

	entries := EntryPoints(det)
	assert.Contains(t, entries, "src/main.tsx")
}

func TestDetect_DjangoProject(t *testing.T) {
	det, err := Detect("../../testdata/fixtures/python_project")
	require.NoError(t, err)

	assert.Equal(t, CategoryDjango, det.Primary())
	assert.Contains(t, det.Categories(), CategoryPythonApp,
		"requirements.txt keeps the generic python category too")

	entries := EntryPoints(det)
	assert.Contains(t, entries, "urls.py")
}

func TestDetect_SpringBootProject(t *testing.T) {
	det, err := Detect("../../testdata/fixtures/java_project")
	require.NoError(t, err)

	assert.Equal(t, CategorySpringBoot, det.Primary(),
		"spring-boot-starter in pom.xml upgrades maven_java")
	assert.Contains(t, det.Categories(), CategoryMavenJava)

	entries := EntryPoints(det)
	assert.Contains(t, entries, "src/main/java/com/example/demo/DemoApplication.java")
}

func TestDetect_ExpressProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"api","dependencies":{"express":"^4.18.0"}}`)
	writeFile(t, root, "server.js", `const express = require("express");
const app = express();
app.listen(3000);
`)

	det, err := Detect(root)
	require.NoError(t, err)
	assert.Equal(t, CategoryExpressNode, det.Primary())

	entries := EntryPoints(det)
	assert.Equal(t, []string{"server.js"}, entries)
}

func TestDetect_UnknownProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "nothing to see")
	writeFile(t, root, "main.py", "print('hi')")

	det, err := Detect(root)
	require.NoError(t, err)
	assert.Equal(t, CategoryUnknown, det.Primary())

	// Generic fallback still finds a conventional main file.
	assert.Equal(t, []string{"main.py"}, EntryPoints(det))
}

func TestDetect_SkipsNodeModules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "flask")
	writeFile(t, root, "node_modules/dep/package.json", `{"name":"dep"}`)

	det, err := Detect(root)
	require.NoError(t, err)
	assert.Equal(t, CategoryPythonApp, det.Primary())
	for _, cfg := range det.Configs {
		assert.NotContains(t, cfg.Path, "node_modules")
	}
}

func TestExtensionsAndLabels(t *testing.T) {
	assert.Contains(t, Extensions(CategoryReactVite), ".tsx")
	assert.Equal(t, []string{".py"}, Extensions(CategoryDjango))
	assert.Equal(t, []string{".java"}, Extensions(CategorySpringBoot))
	assert.Contains(t, Extensions(CategoryUnknown), ".py")

	assert.Equal(t, "typescript", Language(CategoryReactVite))
	assert.Equal(t, "python", Language(CategoryDjango))
	assert.Equal(t, "java", Language(CategorySpringBoot))

	assert.Equal(t, "react", Framework(CategoryReactVite))
	assert.Equal(t, "spring-boot", Framework(CategorySpringBoot))
	assert.Equal(t, "", Framework(CategoryMavenJava))
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}
