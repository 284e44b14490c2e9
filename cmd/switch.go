package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keisukeshimizu/wt/internal/logger"
	"github.com/keisukeshimizu/wt/internal/picker"
	"github.com/keisukeshimizu/wt/internal/worktree"
)

// switchCmd represents the switch command
var switchCmd = &cobra.Command{
	Use:   "switch",
	Short: "Pick a worktree to change to",
	Long: `Pick a worktree with a fuzzy finder and print its path on stdout.

The preview pane shows the unstaged changes of the highlighted worktree.
With the shell integration installed the shell changes into the chosen
worktree.`,
	Aliases: []string{"sw"},
	Args:    cobra.NoArgs,
	RunE:    runSwitch,
}

func init() {
	rootCmd.AddCommand(switchCmd)
}

func runSwitch(cmd *cobra.Command, args []string) error {
	repo, _, err := openListing()
	if err != nil {
		return err
	}

	records, err := worktree.NewLister(repo).Live()
	if err != nil {
		return err
	}

	result, err := newPicker(logger.GetLogger().Style()).Pick(recordCandidates(records), picker.Options{
		Mode:    picker.Single,
		Prompt:  "switch",
		Preview: diffPreview(repo),
	})
	if err != nil {
		return err
	}
	if result.Aborted || len(result.Selected) == 0 {
		logger.Debug("nothing selected")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Selected[0].Payload())
	return nil
}
