package cmd

import (
	"github.com/spf13/cobra"

	"github.com/keisukeshimizu/wt/internal/errors"
	"github.com/keisukeshimizu/wt/internal/logger"
	"github.com/keisukeshimizu/wt/internal/picker"
	"github.com/keisukeshimizu/wt/internal/worktree"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Pick worktrees to remove together with their branches",
	Long: `Pick one or more worktrees (tab to mark) and remove them.

Each directory is moved aside first and deleted in the background, then
the worktree registry is pruned and the branches are force-deleted. The
main checkout is never offered. When the current directory is removed the
path of the main checkout is printed on stdout.`,
	Aliases: []string{"rm"},
	Args:    cobra.NoArgs,
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	repo, cwd, err := openListing()
	if err != nil {
		return err
	}

	records, err := worktree.NewLister(repo).Scan()
	if err != nil {
		return err
	}
	if len(records) < 2 {
		return errors.E(errors.Op("cmd.remove"), errors.KindInvalid, "no worktrees to remove")
	}
	primary := records[0]
	candidates := records[1:]

	result, err := newPicker(logger.GetLogger().Style()).Pick(recordCandidates(candidates), picker.Options{
		Mode:    picker.Multi,
		Prompt:  "remove",
		Preview: diffPreview(repo),
	})
	if err != nil {
		return err
	}
	selected := selectedRecords(candidates, result)
	if result.Aborted || len(selected) == 0 {
		logger.Debug("nothing selected")
		return nil
	}

	sweeper := worktree.NewSweeper(cfg.Remove.SweepWorkers)
	remover := worktree.NewRemover(repo.WithDir(primary.Path), sweeper, cmd.OutOrStdout())

	_, removeErr := remover.Remove(worktree.RemoveRequest{
		Selected:   selected,
		Primary:    primary.Path,
		CurrentDir: cwd,
	})

	if !sweeper.Wait(cfg.Remove.SweepGrace) {
		logger.Debug("background deletion still running after %s", cfg.Remove.SweepGrace)
	}
	return removeErr
}
