package worktree

import (
	"os"
	"path/filepath"
	"strings"
)

// DetachedSentinel is the branch name recorded for a detached HEAD
const DetachedSentinel = "(detached)"

// unknownHead is recorded when a block carries no HEAD line
const unknownHead = "unknown"

// Record is one worktree as reported by `git worktree list --porcelain`
type Record struct {
	Branch string `json:"branch"`
	Head   string `json:"head"`
	Path   string `json:"path"`
}

// IsDetached reports whether the worktree has no branch checked out
func (r Record) IsDetached() bool {
	return r.Branch == DetachedSentinel
}

// Contains reports whether dir is r.Path or lies beneath it
func (r Record) Contains(dir string) bool {
	return IsWithin(dir, r.Path)
}

// IsWithin reports whether path equals root or is a descendant of it.
// Paths are compared by component, so /a/bc is not within /a/b.
func IsWithin(path, root string) bool {
	if path == "" || root == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// ParseBlock converts one porcelain block into a Record. Blocks without a
// worktree line or without a branch indicator are rejected, which drops
// bare repositories.
func ParseBlock(block string) (Record, bool) {
	var (
		record    Record
		hasBranch bool
	)
	record.Head = unknownHead

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, "\r")

		switch {
		case strings.HasPrefix(line, "worktree "):
			record.Path = strings.TrimPrefix(line, "worktree ")
		case strings.HasPrefix(line, "HEAD "):
			sha := strings.TrimPrefix(line, "HEAD ")
			if len(sha) > 7 {
				sha = sha[:7]
			}
			if sha != "" {
				record.Head = sha
			}
		case strings.HasPrefix(line, "branch refs/heads/"):
			record.Branch = strings.TrimPrefix(line, "branch refs/heads/")
			hasBranch = true
		case line == "detached":
			if !hasBranch {
				record.Branch = DetachedSentinel
				hasBranch = true
			}
		}
	}

	if record.Path == "" || !hasBranch {
		return Record{}, false
	}
	return record, true
}

// Parse converts a full porcelain listing into records in listing order.
// Malformed blocks are skipped.
func Parse(listing string) []Record {
	var records []Record
	for _, block := range splitBlocks(listing) {
		if record, ok := ParseBlock(block); ok {
			records = append(records, record)
		}
	}
	return records
}

// Live keeps the records whose path is currently a directory
func Live(records []Record) []Record {
	var live []Record
	for _, record := range records {
		if info, err := os.Stat(record.Path); err == nil && info.IsDir() {
			live = append(live, record)
		}
	}
	return live
}

// Prunable returns the paths of blocks git marks as prunable
func Prunable(listing string) []string {
	var paths []string
	for _, block := range splitBlocks(listing) {
		var path string
		prunable := false
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "worktree "):
				path = strings.TrimPrefix(line, "worktree ")
			case line == "prunable" || strings.HasPrefix(line, "prunable "):
				prunable = true
			}
		}
		if prunable && path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

func splitBlocks(listing string) []string {
	listing = strings.ReplaceAll(listing, "\r\n", "\n")

	var blocks []string
	for _, block := range strings.Split(listing, "\n\n") {
		if block = strings.Trim(block, "\n"); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}
