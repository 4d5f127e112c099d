package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SIDHANTH-S/dev-scope/internal/graph"
)

const controllerPath = "src/main/java/com/example/demo/UserController.java"

func TestJavaPlugin_Controller(t *testing.T) {
	p := NewJavaPlugin(testClassifier())
	source := readFixture(t, "testdata/fixtures/java_project/"+controllerPath)

	res, err := p.Extract(controllerPath, source, false)
	require.NoError(t, err)

	ctrl := findNode(res.Nodes, "UserController")
	require.NotNil(t, ctrl)
	assert.Equal(t, graph.KindController, ctrl.Kind)
	assert.Equal(t, graph.LevelComponent, ctrl.Meta.Level)

	ep := findNode(res.Nodes, "/users")
	require.NotNil(t, ep, "GetMapping path becomes an endpoint node")
	assert.Equal(t, graph.KindAPIEndpoint, ep.Kind)
	assert.Equal(t, graph.LevelSystem, ep.Meta.Level)
	assert.Equal(t, "/users", ep.Meta.Endpoint)
	assert.Equal(t, graph.EndpointID("/users"), ep.ID)

	assert.Contains(t, res.Symbols.Imports, "org.springframework.web.bind.annotation.RestController")
	assert.Contains(t, res.Symbols.Imports, "com.example.demo.UserService")
	assert.Contains(t, res.Symbols.Called, "findAll")
}

func TestJavaPlugin_EndpointCollapsing(t *testing.T) {
	p := NewJavaPlugin(testClassifier())

	userRes, err := p.Extract(controllerPath,
		readFixture(t, "testdata/fixtures/java_project/"+controllerPath), false)
	require.NoError(t, err)

	accountPath := "src/main/java/com/example/demo/AccountController.java"
	accountRes, err := p.Extract(accountPath,
		readFixture(t, "testdata/fixtures/java_project/"+accountPath), false)
	require.NoError(t, err)

	userEP := findNode(userRes.Nodes, "/users")
	accountEP := findNode(accountRes.Nodes, "/users")
	require.NotNil(t, userEP)
	require.NotNil(t, accountEP)

	// The same mapped path from two controllers yields one graph node.
	assert.Equal(t, userEP.ID, accountEP.ID)
}

func TestJavaPlugin_Service(t *testing.T) {
	p := NewJavaPlugin(testClassifier())
	path := "src/main/java/com/example/demo/UserService.java"

	res, err := p.Extract(path, readFixture(t, "testdata/fixtures/java_project/"+path), false)
	require.NoError(t, err)

	svc := findNode(res.Nodes, "UserService")
	require.NotNil(t, svc)
	assert.Equal(t, graph.KindService, svc.Kind)
}

func TestJavaPlugin_PlainClass(t *testing.T) {
	p := NewJavaPlugin(testClassifier())
	source := []byte(`
package com.example.demo;

public class Invoice {
    private String id;
}
`)

	res, err := p.Extract("src/main/java/com/example/demo/Invoice.java", source, false)
	require.NoError(t, err)

	inv := findNode(res.Nodes, "Invoice")
	require.NotNil(t, inv)
	assert.Equal(t, graph.KindClass, inv.Kind)
}

func TestJavaPlugin_ControllerBeatsService(t *testing.T) {
	p := NewJavaPlugin(testClassifier())
	// A file carrying both annotations is treated as a controller file.
	source := []byte(`
package com.example.demo;

import org.springframework.stereotype.Service;
import org.springframework.web.bind.annotation.RestController;

@Service
@RestController
public class Mixed {
}
`)

	res, err := p.Extract("src/main/java/com/example/demo/Mixed.java", source, false)
	require.NoError(t, err)

	mixed := findNode(res.Nodes, "Mixed")
	require.NotNil(t, mixed)
	assert.Equal(t, graph.KindController, mixed.Kind)
}
