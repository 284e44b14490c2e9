package worktree

import (
	"fmt"
	"io"
	"os"

	"github.com/keisukeshimizu/wt/internal/errors"
	"github.com/keisukeshimizu/wt/internal/logger"
)

// WorktreeGit is the subset of git the removal protocol drives. It is
// expected to run its commands in the primary worktree.
type WorktreeGit interface {
	RemoveWorktree(path string) error
	PruneWorktrees() error
	DeleteBranch(branch string) error
}

// RemoveRequest describes one removal batch
type RemoveRequest struct {
	Selected   []Record // in the order the user chose them
	Primary    string   // path of the primary worktree
	CurrentDir string   // the caller's working directory, symlinks resolved
}

// RemoveResult contains the result of a removal batch
type RemoveResult struct {
	Trashed         []string // trash paths handed to the sweeper
	Removed         []Record // worktrees no longer on disk at their path
	DeletedBranches []string
	NavigateTo      string // set when CurrentDir was inside a removed worktree
}

// Remover handles worktree removal operations
type Remover struct {
	git     WorktreeGit
	sweeper *Sweeper
	stdout  io.Writer
	log     *logger.Logger
	pid     int
	rename  func(oldpath, newpath string) error
}

// NewRemover creates a new Remover. The navigation hint is written to stdout.
func NewRemover(g WorktreeGit, sweeper *Sweeper, stdout io.Writer) *Remover {
	return &Remover{
		git:     g,
		sweeper: sweeper,
		stdout:  stdout,
		log:     logger.GetLogger(),
		pid:     os.Getpid(),
		rename:  os.Rename,
	}
}

// Remove tears down the selected worktrees:
//
//  1. each directory is renamed to a trash path, falling back to
//     `git worktree remove --force --force` when the rename fails
//  2. the registry is pruned once if anything was renamed
//  3. removals are reported and non-detached branches force-deleted
//  4. the primary path is printed if the caller's directory went away
//  5. trash directories are handed to the sweeper
//
// A failed fallback stops the batch before step 2 and leaves renamed
// directories in place. A failed branch delete stops the remaining branch
// deletes and is returned after steps 4 and 5 have run.
func (r *Remover) Remove(req RemoveRequest) (*RemoveResult, error) {
	const op = errors.Op("worktree.Remove")

	for _, record := range req.Selected {
		if record.Path == req.Primary {
			return nil, errors.E(op, errors.KindInvalid, fmt.Sprintf("cannot remove the primary worktree `%s`", record.Path))
		}
	}

	result := &RemoveResult{}

	for i, record := range req.Selected {
		trash := TrashPath(record.Path, r.pid, i)
		renameErr := r.rename(record.Path, trash)
		if renameErr == nil {
			r.log.Debug("renamed %s to %s", record.Path, trash)
			result.Trashed = append(result.Trashed, trash)
			result.Removed = append(result.Removed, record)
			continue
		}

		r.log.Debug("rename of %s failed, removing through git: %v", record.Path, renameErr)
		if err := r.git.RemoveWorktree(record.Path); err != nil {
			return result, errors.E(op, errors.KindCommand, fmt.Sprintf("failed to remove worktree `%s`", record.Branch), err)
		}
		result.Removed = append(result.Removed, record)
	}

	if len(result.Trashed) > 0 {
		if err := r.git.PruneWorktrees(); err != nil {
			return result, errors.E(op, errors.KindCommand, "failed to prune worktrees", err)
		}
	}

	var branchErr error
	for _, record := range result.Removed {
		r.log.Done("removed", "worktree %s at %s", record.Branch, record.Path)

		// the first failed delete stops further branch deletes
		if record.IsDetached() || branchErr != nil {
			continue
		}
		if err := r.git.DeleteBranch(record.Branch); err != nil {
			branchErr = errors.E(op, errors.KindBatch, fmt.Sprintf("failed to delete branch `%s`", record.Branch), err)
			continue
		}
		result.DeletedBranches = append(result.DeletedBranches, record.Branch)
		r.log.Done("deleted", "branch %s", record.Branch)
	}

	for _, record := range result.Removed {
		if record.Contains(req.CurrentDir) {
			result.NavigateTo = req.Primary
			fmt.Fprintln(r.stdout, req.Primary)
			break
		}
	}

	if r.sweeper != nil {
		r.sweeper.Sweep(result.Trashed)
	}

	return result, branchErr
}
