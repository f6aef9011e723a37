package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"godotmcp/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScene(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func TestAnalyze_OneOfEach(t *testing.T) {
	root := t.TempDir()
	writeScene(t, root, "main.tscn", "[node name=\"A\"]\n[resource type=\"X\"]\n[connection signal=\"s\"]\n\n")

	a, err := Analyze(root, "main.tscn")
	require.NoError(t, err)

	assert.Equal(t, "main.tscn", a.File)
	assert.Equal(t, []string{`[node name="A"]`}, a.Nodes)
	assert.Equal(t, []string{`[resource type="X"]`}, a.Resources)
	assert.Equal(t, []string{`[connection signal="s"]`}, a.Connections)
}

func TestAnalyze_RealisticScene(t *testing.T) {
	root := t.TempDir()
	content := strings.Join([]string{
		`[gd_scene load_steps=3 format=3 uid="uid://c8m"]`,
		``,
		`[ext_resource type="Script" path="res://player.gd" id="1"]`,
		`[sub_resource type="RectangleShape2D" id="2"]`,
		`size = Vector2(16, 16)`,
		``,
		`[node name="Player" type="CharacterBody2D"]`,
		`script = ExtResource("1")`,
		``,
		`   [node name="Shape" type="CollisionShape2D" parent="."]   `,
		`shape = SubResource("2")`,
		``,
		`[resource]`,
		`[connection signal="body_entered" from="Area" to="." method="_on_body_entered"]`,
	}, "\r\n")
	writeScene(t, root, "scenes/player.tscn", content)

	a, err := Analyze(root, "res://scenes/player.tscn")
	require.NoError(t, err)

	assert.Equal(t, "res://scenes/player.tscn", a.File)
	assert.Equal(t, []string{
		`[node name="Player" type="CharacterBody2D"]`,
		`[node name="Shape" type="CollisionShape2D" parent="."]`,
	}, a.Nodes)
	assert.Equal(t, []string{`[resource]`}, a.Resources)
	assert.Len(t, a.Connections, 1)
}

func TestAnalyze_EmptySceneHasEmptyArrays(t *testing.T) {
	root := t.TempDir()
	writeScene(t, root, "empty.tscn", "")

	a, err := Analyze(root, "empty.tscn")
	require.NoError(t, err)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"file":"empty.tscn","nodes":[],"resources":[],"connections":[]}`, string(data))
}

func TestAnalyze_Errors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.tscn"), 0755))

	tests := []struct {
		name  string
		root  string
		scene string
		want  apperr.Kind
	}{
		{name: "no project", root: "", scene: "main.tscn", want: apperr.NoProjectBound},
		{name: "missing file", root: root, scene: "missing.tscn", want: apperr.NotFound},
		{name: "empty path", root: root, scene: "  ", want: apperr.MalformedInput},
		{name: "outside project", root: root, scene: "../../etc/passwd", want: apperr.InvalidPath},
		{name: "directory", root: root, scene: "dir.tscn", want: apperr.IOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(tt.root, tt.scene)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperr.KindOf(err), "error: %v", err)
		})
	}
}
