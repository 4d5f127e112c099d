package analyzer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

func openTestCache(t *testing.T) *ParseCache {
	t.Helper()
	cache, err := OpenParseCache(filepath.Join(t.TempDir(), "parse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestParseCache_RoundTrip(t *testing.T) {
	cache := openTestCache(t)

	entry := CachedFile{
		Nodes: []graph.Node{{
			ID:   graph.NodeID("src/App.tsx", "App"),
			Kind: graph.KindComponent,
			File: "src/App.tsx",
			Name: "App",
			Meta: graph.Meta{Level: graph.LevelComponent},
		}},
		Symbols: graph.FileSymbols{
			Declared:     []string{"App"},
			Imports:      []string{"./lib/format"},
			RenderedTags: []string{"CustomComponent"},
			Called:       []string{"formatLabel"},
		},
	}
	hash := ContentHash([]byte("const App = () => null;"))

	require.NoError(t, cache.Store("src/App.tsx", hash, entry))

	got, ok := cache.Lookup("src/App.tsx", hash)
	require.True(t, ok)
	assert.Equal(t, entry.Nodes, got.Nodes)
	assert.Equal(t, entry.Symbols, got.Symbols)
}

func TestParseCache_HashMismatchIsMiss(t *testing.T) {
	cache := openTestCache(t)

	hash := ContentHash([]byte("v1"))
	require.NoError(t, cache.Store("a.py", hash, CachedFile{}))

	_, ok := cache.Lookup("a.py", ContentHash([]byte("v2")))
	assert.False(t, ok, "changed content must invalidate the entry")

	_, ok = cache.Lookup("unknown.py", hash)
	assert.False(t, ok)
}

func TestParseCache_StoreReplaces(t *testing.T) {
	cache := openTestCache(t)

	oldHash := ContentHash([]byte("old"))
	newHash := ContentHash([]byte("new"))
	require.NoError(t, cache.Store("a.py", oldHash, CachedFile{
		Symbols: graph.FileSymbols{Declared: []string{"old_fn"}},
	}))
	require.NoError(t, cache.Store("a.py", newHash, CachedFile{
		Symbols: graph.FileSymbols{Declared: []string{"new_fn"}},
	}))

	_, ok := cache.Lookup("a.py", oldHash)
	assert.False(t, ok)

	got, ok := cache.Lookup("a.py", newHash)
	require.True(t, ok)
	assert.Equal(t, []string{"new_fn"}, got.Symbols.Declared)
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, ContentHash([]byte("x")), ContentHash([]byte("x")))
	assert.NotEqual(t, ContentHash([]byte("x")), ContentHash([]byte("y")))
	assert.Len(t, ContentHash(nil), 64)
}
