package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/keisukeshimizu/wt/internal/style"
	"github.com/keisukeshimizu/wt/internal/worktree"
)

var listFormat string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List worktrees",
	Long: `List the worktrees of the current repository.

Each line shows the branch, the short commit id, the unstaged line
changes and the path. The worktree containing the current directory is
marked with '*'.

Examples:
  wt list                 # table for humans
  wt list --format json   # the same data for scripts`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json)")
}

func runList(cmd *cobra.Command, args []string) error {
	if listFormat != "table" && listFormat != "json" {
		return fmt.Errorf("unsupported format %q (use table or json)", listFormat)
	}

	repo, cwd, err := openListing()
	if err != nil {
		return err
	}

	entries, err := worktree.NewLister(repo).Entries(cwd)
	if err != nil {
		return err
	}

	if listFormat == "json" {
		return writeEntriesJSON(cmd.OutOrStdout(), entries)
	}
	writeEntries(cmd.OutOrStdout(), entries, stdoutStyle)
	return nil
}

// writeEntries prints one aligned line per worktree:
// "<marker> <branch>  <head>  +<ins>/-<del>  <path>"
func writeEntries(w io.Writer, entries []worktree.Entry, st *style.Style) {
	branchWidth := 0
	statWidth := 0
	stats := make([]string, len(entries))
	for i, entry := range entries {
		branchWidth = max(branchWidth, runewidth.StringWidth(entry.Branch))
		stats[i] = fmt.Sprintf("+%d/-%d", entry.Insertions, entry.Deletions)
		statWidth = max(statWidth, len(stats[i]))
	}

	for i, entry := range entries {
		marker := " "
		if entry.Current {
			marker = st.Cyan("*")
		}

		branch := runewidth.FillRight(entry.Branch, branchWidth)
		if entry.IsDetached() {
			branch = st.Dim(branch)
		}

		stat := stats[i] + strings.Repeat(" ", statWidth-len(stats[i]))
		if entry.Insertions > 0 || entry.Deletions > 0 {
			stat = st.Green(fmt.Sprintf("+%d", entry.Insertions)) + "/" + st.Red(fmt.Sprintf("-%d", entry.Deletions)) +
				strings.Repeat(" ", statWidth-len(stats[i]))
		}

		fmt.Fprintf(w, "%s %s  %s  %s  %s\n", marker, branch, st.Dim(entry.Head), stat, entry.Path)
	}
}

func writeEntriesJSON(w io.Writer, entries []worktree.Entry) error {
	if entries == nil {
		entries = []worktree.Entry{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
