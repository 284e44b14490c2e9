package worktree

import (
	"fmt"

	"github.com/keisukeshimizu/wt/internal/errors"
	"github.com/keisukeshimizu/wt/internal/git"
)

// Creator handles worktree creation logic
type Creator struct {
	repo   git.Repository
	lister *Lister
}

// NewCreator creates a new worktree creator
func NewCreator(repo git.Repository) *Creator {
	return &Creator{
		repo:   repo,
		lister: NewLister(repo),
	}
}

// CreateResult contains the result of worktree creation
type CreateResult struct {
	Branch string
	Naming
}

// Create adds a worktree on a new branch next to the primary worktree
func (c *Creator) Create(branch string) (*CreateResult, error) {
	return c.add(branch, true)
}

// Checkout adds a worktree for an existing branch next to the primary
// worktree
func (c *Creator) Checkout(branch string) (*CreateResult, error) {
	return c.add(branch, false)
}

func (c *Creator) add(branch string, newBranch bool) (*CreateResult, error) {
	const op = errors.Op("worktree.Create")

	if branch == "" {
		return nil, errors.E(op, errors.KindInvalid, "branch name cannot be empty")
	}

	primary, err := c.lister.Primary()
	if err != nil {
		return nil, err
	}

	naming, err := Derive(primary.Path, branch)
	if err != nil {
		return nil, err
	}

	if err := c.repo.AddWorktree(naming.Target, branch, newBranch); err != nil {
		return nil, errors.E(op, errors.KindCommand, fmt.Sprintf("failed to create worktree `%s`", branch), err)
	}

	return &CreateResult{
		Branch: branch,
		Naming: naming,
	}, nil
}
