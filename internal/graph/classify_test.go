package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_DefaultRules(t *testing.T) {
	c := NewClassifier(Overrides{})

	tests := []struct {
		name     string
		kind     NodeKind
		file     string
		nodeName string
		isEntry  bool
		want     Level
	}{
		{"api endpoint is system", KindAPIEndpoint, "src/UserController.java", "/users", false, LevelSystem},
		{"entry module named main", KindModule, "src/main.tsx", "main", true, LevelContainer},
		{"module named app", KindModule, "app.py", "app", false, LevelContainer},
		{"urls module", KindModule, "mysite/urls.py", "urls", false, LevelContainer},
		{"spring boot application module", KindModule, "src/main/java/DemoSpringBootApplication.java", "DemoSpringBootApplication", false, LevelContainer},
		{"component", KindComponent, "src/widgets/Button.tsx", "Button", false, LevelComponent},
		{"view", KindView, "app/views.py", "get_user_view", false, LevelComponent},
		{"controller", KindController, "src/UserController.java", "UserController", false, LevelComponent},
		{"service", KindService, "src/UserService.java", "UserService", false, LevelComponent},
		{"module in components dir", KindModule, "src/components/Button.tsx", "Button", false, LevelComponent},
		{"module in services dir", KindModule, "src/services/auth.ts", "auth", false, LevelComponent},
		{"plain function", KindFunction, "src/lib/format.ts", "formatLabel", false, LevelCode},
		{"plain class", KindClass, "app/models.py", "User", false, LevelCode},
		{"template", KindTemplate, "static/base.html", "base", false, LevelCode},
		{"plain module", KindModule, "utils/helpers.py", "helpers", false, LevelCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Level(tt.kind, tt.file, tt.nodeName, tt.isEntry)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifier_PathOverrideWins(t *testing.T) {
	c := NewClassifier(Overrides{
		PathContains: map[Level][]string{
			LevelSystem: {"gateway"},
		},
	})

	// Even a plain function is forced to system when the path matches.
	got := c.Level(KindFunction, "src/gateway/proxy.ts", "forward", false)
	assert.Equal(t, LevelSystem, got)

	// Matching is case-insensitive on the path.
	got = c.Level(KindFunction, "src/Gateway/proxy.ts", "forward", false)
	assert.Equal(t, LevelSystem, got)
}

func TestClassifier_KindOverride(t *testing.T) {
	c := NewClassifier(Overrides{
		NodeKinds: map[Level][]string{
			LevelContainer: {"service"},
		},
	})

	got := c.Level(KindService, "src/UserService.java", "UserService", false)
	assert.Equal(t, LevelContainer, got)

	// Other kinds keep their built-in level.
	got = c.Level(KindController, "src/UserController.java", "UserController", false)
	assert.Equal(t, LevelComponent, got)
}

func TestClassifier_PathOverrideBeatsKindOverride(t *testing.T) {
	c := NewClassifier(Overrides{
		PathContains: map[Level][]string{LevelCode: {"legacy"}},
		NodeKinds:    map[Level][]string{LevelSystem: {"controller"}},
	})

	got := c.Level(KindController, "legacy/OldController.java", "OldController", false)
	assert.Equal(t, LevelCode, got)
}
