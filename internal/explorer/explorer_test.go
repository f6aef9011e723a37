package explorer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"godotmcp/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := []string{
		"project.godot",
		".gitignore",
		"main.tscn",
		"scenes/level.tscn",
		"scenes/ui/hud.tscn",
		"scripts/player.gd",
		"scripts/ai/enemy.gd",
		".godot/editor/cached.tscn",
		"__pycache__/helper.gd",
		"notes.txt",
	}
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0755))
	return root
}

func TestListStructure(t *testing.T) {
	root := createProject(t)

	listing, err := ListStructure(root)
	require.NoError(t, err)

	// Entries are in lexicographic order.
	assert.Equal(t, DirectoryContents{
		Directories: []string{"assets", "scenes", "scripts"},
		Files:       []string{"main.tscn", "notes.txt", "project.godot"},
	}, listing[RootKey])
	assert.Equal(t, DirectoryContents{
		Directories: []string{"ui"},
		Files:       []string{"level.tscn"},
	}, listing["scenes"])
	assert.Equal(t, DirectoryContents{
		Directories: []string{},
		Files:       []string{},
	}, listing["assets"])
	assert.Contains(t, listing, "scripts/ai")

	assert.NotContains(t, listing, ".godot")
	assert.NotContains(t, listing, ".godot/editor")
	assert.NotContains(t, listing, "__pycache__")
	assert.Len(t, listing, 6)
}

func TestListStructure_JSONShape(t *testing.T) {
	root := t.TempDir()

	listing, err := ListStructure(root)
	require.NoError(t, err)

	data, err := json.Marshal(listing)
	require.NoError(t, err)
	assert.JSONEq(t, `{"root":{"directories":[],"files":[]}}`, string(data))
}

func TestListStructure_MissingRoot(t *testing.T) {
	_, err := ListStructure(filepath.Join(t.TempDir(), "gone"))
	require.Error(t, err)
	assert.Equal(t, apperr.IOError, apperr.KindOf(err))
}

func TestListStructure_UnreadableDirectoryFailsWholeCall(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root can read any directory")
	}
	root := createProject(t)
	locked := filepath.Join(root, "scripts")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	listing, err := ListStructure(root)
	require.Error(t, err)
	assert.Nil(t, listing)
	assert.Equal(t, apperr.IOError, apperr.KindOf(err))
}

func TestFindBySuffix(t *testing.T) {
	root := createProject(t)

	tests := []struct {
		suffix string
		want   []string
	}{
		{
			suffix: SceneSuffix,
			want:   []string{".godot/editor/cached.tscn", "main.tscn", "scenes/level.tscn", "scenes/ui/hud.tscn"},
		},
		{
			suffix: ScriptSuffix,
			want:   []string{"__pycache__/helper.gd", "scripts/ai/enemy.gd", "scripts/player.gd"},
		},
		{
			suffix: ".cs",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			entries, err := FindBySuffix(root, tt.suffix)
			require.NoError(t, err)

			got := []string{}
			for _, e := range entries {
				got = append(got, e.RelativePath)
				assert.Equal(t, filepath.Base(e.RelativePath), e.Name)
				assert.Equal(t, filepath.Join(root, filepath.FromSlash(e.RelativePath)), e.AbsolutePath)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindBySuffix_EmptyResultIsArray(t *testing.T) {
	entries, err := FindBySuffix(t.TempDir(), SceneSuffix)
	require.NoError(t, err)

	data, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFindBySuffix_MissingRoot(t *testing.T) {
	_, err := FindBySuffix(filepath.Join(t.TempDir(), "gone"), ScriptSuffix)
	require.Error(t, err)
	assert.Equal(t, apperr.IOError, apperr.KindOf(err))
}

func TestDeepProjectIsWalkedCompletely(t *testing.T) {
	const depth = 70
	root := t.TempDir()
	deepest := strings.TrimSuffix(strings.Repeat("d/", depth), "/")
	require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(deepest)), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, filepath.FromSlash(deepest), "deep.gd"), []byte("x"), 0644))

	listing, err := ListStructure(root)
	require.NoError(t, err)
	assert.Len(t, listing, depth+1)
	assert.Equal(t, DirectoryContents{Directories: []string{}, Files: []string{"deep.gd"}}, listing[deepest])

	scripts, err := FindBySuffix(root, ScriptSuffix)
	require.NoError(t, err)
	require.Len(t, scripts, 1)
	assert.Equal(t, deepest+"/deep.gd", scripts[0].RelativePath)
}

func TestSymlinkedDirectoryListedButNotFollowed(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}
	root := createProject(t)
	shared := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(shared, "shared.gd"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(shared, filepath.Join(root, "shared")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling")))

	listing, err := ListStructure(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"assets", "scenes", "scripts", "shared"}, listing[RootKey].Directories)
	assert.Contains(t, listing[RootKey].Files, "dangling")
	assert.NotContains(t, listing[RootKey].Files, "shared")
	assert.NotContains(t, listing, "shared")

	scripts, err := FindBySuffix(root, ScriptSuffix)
	require.NoError(t, err)
	for _, e := range scripts {
		assert.NotEqual(t, "shared.gd", e.Name)
	}
}
