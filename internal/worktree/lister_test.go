package worktree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keisukeshimizu/wt/internal/errors"
	"github.com/keisukeshimizu/wt/internal/git"
	"github.com/keisukeshimizu/wt/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLister_Live(t *testing.T) {
	testRepo := testutil.NewTestGitRepository(t, "lister-test")
	repo, err := git.Open(testRepo.RepoDir)
	require.NoError(t, err)

	lister := NewLister(repo)

	t.Run("primary only", func(t *testing.T) {
		records, err := lister.Live()
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "main", records[0].Branch)
		assert.Equal(t, testRepo.RepoDir, records[0].Path)
		assert.Len(t, records[0].Head, 7)
	})

	t.Run("linked worktrees keep listing order", func(t *testing.T) {
		a := testRepo.AddWorktree("feature/a", "feature-a")
		b := testRepo.AddWorktree("b", "b")

		records, err := lister.Live()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, testRepo.RepoDir, records[0].Path)
		assert.ElementsMatch(t, []string{a, b}, []string{records[1].Path, records[2].Path})

		primary, err := lister.Primary()
		require.NoError(t, err)
		assert.Equal(t, testRepo.RepoDir, primary.Path)
	})

	t.Run("missing directories are filtered", func(t *testing.T) {
		gone := testRepo.AddWorktree("gone", "gone")
		require.NoError(t, os.RemoveAll(gone))

		records, err := lister.Live()
		require.NoError(t, err)
		for _, record := range records {
			assert.NotEqual(t, gone, record.Path)
		}

		all, err := lister.All()
		require.NoError(t, err)
		assert.Len(t, all, len(records)+1)
	})
}

func TestLister_Entries(t *testing.T) {
	testRepo := testutil.NewTestGitRepository(t, "lister-test")
	repo, err := git.Open(testRepo.RepoDir)
	require.NoError(t, err)

	path := testRepo.AddWorktree("feature", "feature")
	require.NoError(t, os.WriteFile(filepath.Join(path, "README.md"), []byte("# Test Project\nmore\n"), 0644))

	entries, err := NewLister(repo).Entries(filepath.Join(path, "sub"))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.False(t, entries[0].Current)
	assert.Equal(t, 0, entries[0].Insertions)

	assert.True(t, entries[1].Current)
	assert.Equal(t, "feature", entries[1].Branch)
	assert.Equal(t, 1, entries[1].Insertions)
	assert.Equal(t, 0, entries[1].Deletions)
}

func TestLister_BranchesWithoutWorktree(t *testing.T) {
	testRepo := testutil.NewTestGitRepository(t, "lister-test")
	repo, err := git.Open(testRepo.RepoDir)
	require.NoError(t, err)

	testRepo.AddWorktree("busy", "busy")
	testRepo.CreateBranch("free/one")
	testRepo.CreateBranch("free-two")

	branches, err := NewLister(repo).BranchesWithoutWorktree()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"free/one", "free-two"}, branches)
}

type fakeListing struct {
	git.Repository
	listing string
	err     error
}

func (f fakeListing) ListWorktrees() (string, error) {
	return f.listing, f.err
}

func TestLister_Errors(t *testing.T) {
	t.Run("no live worktrees", func(t *testing.T) {
		lister := NewLister(fakeListing{listing: "worktree /nonexistent/path\nHEAD 123\nbranch refs/heads/main\n"})

		records, err := lister.Scan()
		require.NoError(t, err)
		assert.Empty(t, records)

		_, err = lister.Live()
		require.Error(t, err)
		assert.Equal(t, "no worktrees found", err.Error())
	})

	t.Run("listing command failed", func(t *testing.T) {
		lister := NewLister(fakeListing{err: &git.CommandError{Stderr: "fatal: not a git repository\n"}})

		_, err := lister.Live()
		require.Error(t, err)
		assert.Equal(t, []string{"failed to list worktrees", "fatal: not a git repository"}, errors.Chain(err))
	})
}
