package cmd

import (
	"github.com/mattn/go-runewidth"

	"github.com/keisukeshimizu/wt/internal/git"
	"github.com/keisukeshimizu/wt/internal/picker"
	"github.com/keisukeshimizu/wt/internal/worktree"
)

// recordCandidates offers records as "<branch>  <path>" choices carrying
// their path
func recordCandidates(records []worktree.Record) []picker.Candidate {
	width := 0
	for _, record := range records {
		width = max(width, runewidth.StringWidth(record.Branch))
	}

	candidates := make([]picker.Candidate, 0, len(records))
	for _, record := range records {
		candidates = append(candidates, picker.Item{
			Text:  runewidth.FillRight(record.Branch, width) + "  " + record.Path,
			Value: record.Path,
		})
	}
	return candidates
}

func branchCandidates(branches []string) []picker.Candidate {
	candidates := make([]picker.Candidate, 0, len(branches))
	for _, branch := range branches {
		candidates = append(candidates, picker.Item{Text: branch, Value: branch})
	}
	return candidates
}

// selectedRecords maps picked paths back to records, keeping pick order
func selectedRecords(records []worktree.Record, result picker.Result) []worktree.Record {
	byPath := make(map[string]worktree.Record, len(records))
	for _, record := range records {
		byPath[record.Path] = record
	}

	var selected []worktree.Record
	for _, path := range result.Payloads() {
		if record, ok := byPath[path]; ok {
			selected = append(selected, record)
		}
	}
	return selected
}

// diffPreview shows the unstaged changes of the worktree at a path
func diffPreview(repo git.Repository) func(string) string {
	return func(path string) string {
		diff, err := repo.Diff(path)
		if err != nil {
			return err.Error()
		}
		if diff == "" {
			return "no unstaged changes"
		}
		return diff
	}
}
