package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keisukeshimizu/wt/internal/config"
	"github.com/keisukeshimizu/wt/internal/doctor"
	"github.com/keisukeshimizu/wt/internal/git"
	"github.com/keisukeshimizu/wt/internal/logger"
	"github.com/keisukeshimizu/wt/internal/worktree"
	"github.com/keisukeshimizu/wt/test/testutil"
)

// TestWorktreeLifecycle creates, lists and removes worktrees against a
// real repository the way the commands chain the packages
func TestWorktreeLifecycle(t *testing.T) {
	testRepo := testutil.NewTestGitRepository(t, "lifecycle")

	var status bytes.Buffer
	original := logger.GetLogger()
	logger.SetLogger(logger.New(&status, nil, false))
	defer logger.SetLogger(original)

	repo, err := git.Open(testRepo.RepoDir)
	require.NoError(t, err)
	lister := worktree.NewLister(repo)
	creator := worktree.NewCreator(repo)

	// create two worktrees, one on a new branch and one converted
	login, err := creator.Create("feature/login")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(testRepo.TempDir, "lifecycle.feature-login"), login.Target)

	testRepo.CreateBranch("fix/typo")
	free, err := lister.BranchesWithoutWorktree()
	require.NoError(t, err)
	assert.Equal(t, []string{"fix/typo"}, free)

	typo, err := creator.Checkout("fix/typo")
	require.NoError(t, err)

	// list from inside a linked worktree
	linked, err := git.Open(login.Target)
	require.NoError(t, err)
	entries, err := worktree.NewLister(linked).Entries(filepath.Join(login.Target))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "main", entries[0].Branch)
	assert.True(t, entries[1].Current)
	assert.Equal(t, "fix/typo", entries[2].Branch)

	// remove both, the caller standing in one of them
	live, err := lister.Live()
	require.NoError(t, err)

	var stdout bytes.Buffer
	sweeper := worktree.NewSweeper(2)
	result, err := worktree.NewRemover(repo.WithDir(live[0].Path), sweeper, &stdout).Remove(worktree.RemoveRequest{
		Selected:   live[1:],
		Primary:    live[0].Path,
		CurrentDir: typo.Target,
	})
	require.NoError(t, err)
	require.True(t, sweeper.Wait(30*time.Second))

	assert.Equal(t, testRepo.RepoDir+"\n", stdout.String())
	assert.Equal(t, []string{"feature/login", "fix/typo"}, result.DeletedBranches)
	assert.Equal(t, []string{testRepo.RepoDir}, testRepo.WorktreePaths())
	assert.NoDirExists(t, login.Target)
	assert.NoDirExists(t, typo.Target)
	assert.Contains(t, status.String(), "deleted branch fix/typo")

	// nothing is left for doctor to complain about
	cfg := &config.Config{Theme: "mocha", Remove: config.RemoveConfig{SweepWorkers: 2}}
	diagnosis := doctor.NewChecker(repo, nil, cfg).CheckSystem()
	assert.Equal(t, doctor.CheckStatusPass, diagnosis.GetOverallStatus())
}

// TestInterruptedRemoval leaves a trash directory and an unpruned registry
// entry behind, then checks that doctor reports both and that git
// recovers with a prune
func TestInterruptedRemoval(t *testing.T) {
	testRepo := testutil.NewTestGitRepository(t, "interrupted")
	path := testRepo.AddWorktree("feature", "feature")

	trash := worktree.TrashPath(path, 777, 0)
	require.NoError(t, os.Rename(path, trash))

	repo, err := git.Open(testRepo.RepoDir)
	require.NoError(t, err)

	live, err := worktree.NewLister(repo).Live()
	require.NoError(t, err)
	assert.Len(t, live, 1, "the renamed worktree is no longer live")

	diagnosis := doctor.NewChecker(repo, nil, &config.Config{Theme: "mocha", Remove: config.RemoveConfig{SweepWorkers: 1}}).CheckSystem()
	assert.Equal(t, 2, diagnosis.Summary.Warned)
	assert.True(t, diagnosis.Summary.Healthy)

	require.NoError(t, repo.PruneWorktrees())
	assert.Equal(t, []string{testRepo.RepoDir}, testRepo.WorktreePaths())
}
