package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/keisukeshimizu/wt/internal/errors"
	"github.com/keisukeshimizu/wt/internal/logger"
)

// Repository represents a Git repository driven through the git CLI
type Repository interface {
	// Repository information
	GetRoot() string

	// Worktree operations
	ListWorktrees() (string, error)
	AddWorktree(path, branch string, newBranch bool) error
	RemoveWorktree(path string) error
	PruneWorktrees() error

	// Branch operations
	ListBranches() ([]string, error)
	DeleteBranch(branch string) error

	// Diff operations
	DiffStat(path string) (DiffStat, error)
	Diff(path string) (string, error)
}

// DiffStat is the summed line count of a working tree's unstaged changes
type DiffStat struct {
	Insertions int
	Deletions  int
}

// CommandError is returned when git exits non-zero. Its message is git's
// own diagnostic so that it reads as the final cause of a chain.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
}

// GitRepository implements the Repository interface
type GitRepository struct {
	root string
}

// Open resolves the repository containing dir
func Open(dir string) (*GitRepository, error) {
	r := &GitRepository{root: dir}
	output, err := r.run("rev-parse", "--show-toplevel")
	if err != nil {
		return nil, errors.NotARepository(err)
	}

	return &GitRepository{root: strings.TrimSpace(output)}, nil
}

// At returns a repository handle whose commands run in dir
func At(dir string) *GitRepository {
	return &GitRepository{root: dir}
}

// WithDir returns a copy of the repository whose commands run in dir
func (r *GitRepository) WithDir(dir string) *GitRepository {
	return &GitRepository{root: dir}
}

// GetRoot returns the top level of the worktree the repository was opened in
func (r *GitRepository) GetRoot() string {
	return r.root
}

// ListWorktrees returns the raw porcelain listing of all worktrees
func (r *GitRepository) ListWorktrees() (string, error) {
	return r.run("worktree", "list", "--porcelain")
}

// AddWorktree creates a new worktree at path. With newBranch set the branch
// is created from HEAD, otherwise an existing branch is checked out.
func (r *GitRepository) AddWorktree(path, branch string, newBranch bool) error {
	args := []string{"worktree", "add"}
	if newBranch {
		args = append(args, "-b", branch, path)
	} else {
		args = append(args, path, branch)
	}

	_, err := r.run(args...)
	return err
}

// RemoveWorktree force-removes a worktree, including locked ones
func (r *GitRepository) RemoveWorktree(path string) error {
	_, err := r.run("worktree", "remove", "--force", "--force", path)
	return err
}

// PruneWorktrees drops registry entries whose directories are gone
func (r *GitRepository) PruneWorktrees() error {
	_, err := r.run("worktree", "prune")
	return err
}

// ListBranches returns the short names of all local branches
func (r *GitRepository) ListBranches() ([]string, error) {
	output, err := r.run("branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}

	var branches []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// DeleteBranch force-deletes a local branch
func (r *GitRepository) DeleteBranch(branch string) error {
	_, err := r.run("branch", "-D", branch)
	return err
}

// DiffStat sums `git diff --numstat` for the worktree at path.
// Binary files count as zero lines.
func (r *GitRepository) DiffStat(path string) (DiffStat, error) {
	output, err := r.runIn(path, "diff", "--numstat")
	if err != nil {
		return DiffStat{}, err
	}
	return parseNumstat(output), nil
}

// Diff returns the unstaged diff of the worktree at path
func (r *GitRepository) Diff(path string) (string, error) {
	return r.runIn(path, "diff", "--no-color")
}

// Version returns the output of `git --version`
func Version() (string, error) {
	output, err := At("").run("--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

func parseNumstat(output string) DiffStat {
	var stat DiffStat
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if n, err := strconv.Atoi(fields[0]); err == nil {
			stat.Insertions += n
		}
		if n, err := strconv.Atoi(fields[1]); err == nil {
			stat.Deletions += n
		}
	}
	return stat
}

func (r *GitRepository) run(args ...string) (string, error) {
	return r.runIn(r.root, args...)
}

// runIn executes git in dir, capturing stdout and stderr separately
func (r *GitRepository) runIn(dir string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if err != nil {
		err = &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}
	logger.GetLogger().Command(dir, args, time.Since(start), err)

	return stdout.String(), err
}
