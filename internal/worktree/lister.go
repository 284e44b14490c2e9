package worktree

import (
	"github.com/keisukeshimizu/wt/internal/errors"
	"github.com/keisukeshimizu/wt/internal/git"
)

// Entry is a live record decorated for display by `wt list`
type Entry struct {
	Record
	Current    bool `json:"current"`
	Insertions int  `json:"insertions"`
	Deletions  int  `json:"deletions"`
}

// Lister handles worktree listing operations
type Lister struct {
	repo git.Repository
}

// NewLister creates a new Lister instance
func NewLister(repo git.Repository) *Lister {
	return &Lister{
		repo: repo,
	}
}

// All returns every parseable record, including ones whose directory is
// gone. The slice may be empty.
func (l *Lister) All() ([]Record, error) {
	listing, err := l.repo.ListWorktrees()
	if err != nil {
		return nil, errors.ListFailed(err)
	}
	return Parse(listing), nil
}

// Scan returns the live records. The slice may be empty.
func (l *Lister) Scan() ([]Record, error) {
	records, err := l.All()
	if err != nil {
		return nil, err
	}
	return Live(records), nil
}

// Live returns the live records and fails when there are none
func (l *Lister) Live() ([]Record, error) {
	records, err := l.Scan()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.E(errors.Op("worktree.Live"), errors.KindParse, "no worktrees found")
	}
	return records, nil
}

// Primary returns the first live record of the listing
func (l *Lister) Primary() (Record, error) {
	records, err := l.Live()
	if err != nil {
		return Record{}, err
	}
	return records[0], nil
}

// Entries returns the live records with the one containing cwd marked and
// their unstaged diff counts. Diff failures count as zero.
func (l *Lister) Entries(cwd string) ([]Entry, error) {
	records, err := l.Live()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		entry := Entry{
			Record:  record,
			Current: record.Contains(cwd),
		}
		if stat, err := l.repo.DiffStat(record.Path); err == nil {
			entry.Insertions = stat.Insertions
			entry.Deletions = stat.Deletions
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// BranchesWithoutWorktree returns local branches that no registered
// worktree has checked out, in git's order
func (l *Lister) BranchesWithoutWorktree() ([]string, error) {
	records, err := l.All()
	if err != nil {
		return nil, err
	}

	branches, err := l.repo.ListBranches()
	if err != nil {
		return nil, errors.E(errors.Op("worktree.BranchesWithoutWorktree"), errors.KindCommand, "failed to list branches", err)
	}

	checkedOut := make(map[string]bool, len(records))
	for _, record := range records {
		checkedOut[record.Branch] = true
	}

	var free []string
	for _, branch := range branches {
		if !checkedOut[branch] {
			free = append(free, branch)
		}
	}
	return free, nil
}
