package worktree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPathTraversalPrevention checks that hostile branch names cannot move
// a worktree, or its trash, out of the primary worktree's parent
func TestPathTraversalPrevention(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "src", "project")

	for _, branch := range []string{
		"../../etc/passwd",
		"..",
		"feature/../../../tmp",
		"/absolute/path",
		"a//b",
	} {
		t.Run(branch, func(t *testing.T) {
			naming, err := Derive(root, branch)
			require.NoError(t, err)

			assert.NotContains(t, naming.DirName, string(filepath.Separator))
			assert.True(t, strings.HasPrefix(naming.DirName, "project."))
			assert.Equal(t, filepath.Dir(root), filepath.Dir(naming.Target))
		})
	}

	t.Run("trash stays beside the worktree", func(t *testing.T) {
		path := filepath.Join(string(filepath.Separator), "src", "project.feature")
		trash := TrashPath(path, 4242, 3)

		assert.Equal(t, filepath.Dir(path), filepath.Dir(trash))
		assert.True(t, IsTrash(filepath.Base(trash)))
	})
}

// TestSweeperDoesNotFollowSymlinks checks that deleting a trashed worktree
// never deletes what a symlink inside it points to
func TestSweeperDoesNotFollowSymlinks(t *testing.T) {
	outside := t.TempDir()
	precious := filepath.Join(outside, "precious.txt")
	require.NoError(t, os.WriteFile(precious, []byte("keep"), 0644))

	trash := TrashPath(filepath.Join(t.TempDir(), "project.feature"), 1, 0)
	require.NoError(t, os.Mkdir(trash, 0755))
	if err := os.Symlink(outside, filepath.Join(trash, "link")); err != nil {
		t.Skip("Cannot create symlinks on this system")
	}

	sweeper := NewSweeper(1)
	sweeper.Sweep([]string{trash})
	require.True(t, sweeper.Wait(10*time.Second))

	assert.NoDirExists(t, trash)
	assert.FileExists(t, precious)
}

// TestRemoverRefusesPrimary checks that the primary worktree cannot be
// removed even when a caller passes it in
func TestRemoverRefusesPrimary(t *testing.T) {
	g := &fakeGit{}
	r := NewRemover(g, nil, nil)
	renamed := false
	r.rename = func(string, string) error {
		renamed = true
		return nil
	}

	_, err := r.Remove(RemoveRequest{
		Selected: []Record{{Branch: "feature", Path: "/src/project.feature"}, {Branch: "main", Path: "/src/project"}},
		Primary:  "/src/project",
	})

	require.Error(t, err)
	assert.False(t, renamed)
	assert.Empty(t, g.calls)
}
