package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestGitRepository represents a test Git repository
type TestGitRepository struct {
	TempDir     string
	RepoDir     string
	ProjectName string
	t           *testing.T
}

// NewTestGitRepository creates a new test Git repository on branch main
// with one commit. Paths are symlink-resolved so they compare equal to what
// git reports.
func NewTestGitRepository(t *testing.T, projectName string) *TestGitRepository {
	t.Helper()

	tempDir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	repoDir := filepath.Join(tempDir, projectName)

	repo := &TestGitRepository{
		TempDir:     tempDir,
		RepoDir:     repoDir,
		ProjectName: projectName,
		t:           t,
	}

	repo.initializeRepo()
	return repo
}

// initializeRepo initializes a Git repository with basic setup
func (r *TestGitRepository) initializeRepo() {
	require.NoError(r.t, os.MkdirAll(r.RepoDir, 0755))

	r.Git("init", "--quiet")
	r.Git("symbolic-ref", "HEAD", "refs/heads/main")

	// Configure Git user (required for commits)
	r.Git("config", "user.name", "Test User")
	r.Git("config", "user.email", "test@example.com")
	r.Git("config", "commit.gpgsign", "false")

	r.CreateFile("README.md", "# Test Project\n")
	r.Git("add", "README.md")
	r.Git("commit", "--quiet", "-m", "Initial commit")
}

// CreateBranch creates a new branch at HEAD without checking it out
func (r *TestGitRepository) CreateBranch(branchName string) {
	r.Git("branch", branchName)
}

// AddWorktree creates a sibling worktree named "<project>.<suffix>" on a
// new branch and returns its path
func (r *TestGitRepository) AddWorktree(branchName, suffix string) string {
	path := filepath.Join(r.TempDir, r.ProjectName+"."+suffix)
	r.Git("worktree", "add", "--quiet", "-b", branchName, path)
	return path
}

// CreateFile creates a file in the repository
func (r *TestGitRepository) CreateFile(relativePath, content string) {
	fullPath := filepath.Join(r.RepoDir, relativePath)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(r.t, os.WriteFile(fullPath, []byte(content), 0644))
}

// CommitAll commits all changes
func (r *TestGitRepository) CommitAll(message string) {
	r.Git("add", ".")
	r.Git("commit", "--quiet", "-m", message)
}

// BranchExists checks if a branch exists
func (r *TestGitRepository) BranchExists(branchName string) bool {
	cmd := exec.Command("git", "show-ref", "--verify", "--quiet", "refs/heads/"+branchName)
	cmd.Dir = r.RepoDir
	return cmd.Run() == nil
}

// WorktreePaths returns the paths registered with git, primary first
func (r *TestGitRepository) WorktreePaths() []string {
	var paths []string
	for _, line := range strings.Split(r.Git("worktree", "list", "--porcelain"), "\n") {
		if strings.HasPrefix(line, "worktree ") {
			paths = append(paths, strings.TrimPrefix(line, "worktree "))
		}
	}
	return paths
}

// Git runs a Git command in the repository directory and returns stdout
func (r *TestGitRepository) Git(args ...string) string {
	r.t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = r.RepoDir
	output, err := cmd.Output()
	if err != nil {
		var stderr []byte
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = exitErr.Stderr
		}
		r.t.Fatalf("Git command failed: git %v\nOutput: %s\nError: %v", args, stderr, err)
	}
	return string(output)
}
