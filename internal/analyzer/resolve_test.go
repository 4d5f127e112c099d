package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// indexOf builds a ModuleIndex from a literal file list, bypassing the
// filesystem walk.
func indexOf(files ...string) *ModuleIndex {
	idx := &ModuleIndex{
		keys:  make(map[string]string),
		files: make(map[string]bool),
	}
	for _, f := range files {
		idx.files[f] = true
		idx.register(f)
	}
	return idx
}

func TestResolver_RelativeImports(t *testing.T) {
	idx := indexOf(
		"src/main.tsx",
		"src/App.tsx",
		"src/lib/format.ts",
		"src/components/Button/index.tsx",
		"app/views.py",
		"app/models.py",
		"app/__init__.py",
		"pkg/utils/helpers.py",
		"pkg/sub/mod.py",
	)
	r := NewResolver(idx)

	tests := []struct {
		name   string
		spec   string
		source string
		want   string
	}{
		{"sibling tsx", "./App", "src/main.tsx", "src/App.tsx"},
		{"nested ts", "./lib/format", "src/App.tsx", "src/lib/format.ts"},
		{"directory import via index file", "./components/Button", "src/App.tsx", "src/components/Button/index.tsx"},
		{"explicit extension", "./App.tsx", "src/main.tsx", "src/App.tsx"},
		{"python sibling", ".models", "app/views.py", "app/models.py"},
		{"python package init", ".", "app/views.py", "app/__init__.py"},
		{"python parent traversal", "..utils.helpers", "pkg/sub/mod.py", "pkg/utils/helpers.py"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.spec, tt.source)
			require.True(t, ok, "expected %q to resolve", tt.spec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_ExtensionOrder(t *testing.T) {
	idx := indexOf("src/util.ts", "src/util.tsx", "src/util.js")
	r := NewResolver(idx)

	got, ok := r.Resolve("./util", "src/main.tsx")
	require.True(t, ok)
	assert.Equal(t, "src/util.ts", got, ".ts is probed before .tsx and .js")
}

func TestResolver_BareSpecifiers(t *testing.T) {
	idx := indexOf(
		"src/components/Button/index.tsx",
		"app/views.py",
		"src/main/java/com/example/demo/UserService.java",
	)
	r := NewResolver(idx)

	tests := []struct {
		name string
		spec string
		want string
	}{
		{"python dotted absolute", "app.views", "app/views.py"},
		{"stripped source root", "components/Button", "src/components/Button/index.tsx"},
		{"at alias", "@/components/Button", "src/components/Button/index.tsx"},
		{"java qualified name via suffix", "com.example.demo.UserService", "src/main/java/com/example/demo/UserService.java"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.spec, "src/other.ts")
			require.True(t, ok, "expected %q to resolve", tt.spec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_ExternalPackagesStayUnresolved(t *testing.T) {
	idx := indexOf("src/App.tsx")
	r := NewResolver(idx)

	for _, spec := range []string{"react", "react-dom/client", "os", "django.http", "./missing"} {
		_, ok := r.Resolve(spec, "src/App.tsx")
		assert.False(t, ok, "%q should not resolve", spec)
	}

	_, ok := r.Resolve("", "src/App.tsx")
	assert.False(t, ok)
}

func TestResolver_Memoization(t *testing.T) {
	idx := indexOf("src/App.tsx")
	r := NewResolver(idx)

	first, ok := r.Resolve("./App", "src/main.tsx")
	require.True(t, ok)
	second, ok := r.Resolve("./App", "src/main.tsx")
	require.True(t, ok)
	assert.Equal(t, first, second)

	// Negative results are memoized too and stay negative.
	_, ok = r.Resolve("./gone", "src/main.tsx")
	assert.False(t, ok)
	_, ok = r.Resolve("./gone", "src/main.tsx")
	assert.False(t, ok)
}

func TestBuildModuleIndex_SkipsIgnoredDirs(t *testing.T) {
	idx, err := BuildModuleIndex("../../testdata/fixtures/react_project", nil)
	require.NoError(t, err)

	assert.True(t, idx.Has("src/App.tsx"))
	assert.True(t, idx.Has("src/main.tsx"))
	assert.True(t, idx.Has("index.html"))

	files := idx.Files()
	for _, f := range files {
		assert.NotContains(t, f, "node_modules/")
	}
}

func TestJoinClean_CannotEscapeRoot(t *testing.T) {
	assert.Equal(t, "models.py", joinClean("app", "../models.py"))
	assert.Equal(t, "models.py", joinClean("app", "../../models.py"))
	assert.Equal(t, "", joinClean(".", ".."))
}
