package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

func TestPythonPlugin_Views(t *testing.T) {
	p := NewPythonPlugin(testClassifier())
	source := readFixture(t, "testdata/fixtures/python_project/app/views.py")

	res, err := p.Extract("app/views.py", source, false)
	require.NoError(t, err)

	view := findNode(res.Nodes, "get_user_view")
	require.NotNil(t, view)
	assert.Equal(t, graph.KindView, view.Kind)
	assert.Equal(t, graph.LevelComponent, view.Meta.Level)

	fn := findNode(res.Nodes, "render_user")
	require.NotNil(t, fn)
	assert.Equal(t, graph.KindFunction, fn.Kind)

	assert.Contains(t, res.Symbols.Imports, ".models")
	assert.Contains(t, res.Symbols.Called, "render_user")
	assert.Contains(t, res.Symbols.Called, "User")
}

func TestPythonPlugin_Classes(t *testing.T) {
	p := NewPythonPlugin(testClassifier())
	source := readFixture(t, "testdata/fixtures/python_project/app/models.py")

	res, err := p.Extract("app/models.py", source, false)
	require.NoError(t, err)

	cls := findNode(res.Nodes, "User")
	require.NotNil(t, cls)
	assert.Equal(t, graph.KindClass, cls.Kind)
	assert.Equal(t, graph.LevelCode, cls.Meta.Level)

	// Methods are declarations too, at any nesting depth.
	init := findNode(res.Nodes, "__init__")
	require.NotNil(t, init)
	assert.Equal(t, graph.KindFunction, init.Kind)
}

func TestPythonPlugin_Imports(t *testing.T) {
	p := NewPythonPlugin(testClassifier())
	source := []byte(`
import os
import numpy as np
from app.views import get_user_view
from ..shared.utils import helper
from . import models
`)

	res, err := p.Extract("pkg/sub/mod.py", source, false)
	require.NoError(t, err)

	assert.Contains(t, res.Symbols.Imports, "os")
	assert.Contains(t, res.Symbols.Imports, "numpy")
	assert.Contains(t, res.Symbols.Imports, "app.views")
	assert.Contains(t, res.Symbols.Imports, "..shared.utils")
	assert.Contains(t, res.Symbols.Imports, ".")
}

func TestPythonPlugin_AttributeCallees(t *testing.T) {
	p := NewPythonPlugin(testClassifier())
	source := []byte(`
def handler():
    client.session.refresh()
    fetch()
`)

	res, err := p.Extract("app/handler.py", source, false)
	require.NoError(t, err)

	// Attribute calls record the final attribute name.
	assert.Contains(t, res.Symbols.Called, "refresh")
	assert.Contains(t, res.Symbols.Called, "fetch")
	assert.NotContains(t, res.Symbols.Called, "client")
}

func TestPythonPlugin_ModuleNodeForUrls(t *testing.T) {
	p := NewPythonPlugin(testClassifier())
	source := readFixture(t, "testdata/fixtures/python_project/urls.py")

	res, err := p.Extract("urls.py", source, true)
	require.NoError(t, err)

	require.NotEmpty(t, res.Nodes)
	mod := res.Nodes[0]
	assert.Equal(t, graph.KindModule, mod.Kind)
	assert.Equal(t, "urls", mod.Name)
	assert.True(t, mod.Meta.IsEntry)
	assert.Equal(t, graph.LevelContainer, mod.Meta.Level)

	assert.Contains(t, res.Symbols.Imports, "app.views")
}
