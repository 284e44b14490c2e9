package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keisukeshimizu/wt/internal/errors"
	"github.com/keisukeshimizu/wt/internal/logger"
	"github.com/keisukeshimizu/wt/internal/picker"
	"github.com/keisukeshimizu/wt/internal/worktree"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Pick existing branches to give a worktree",
	Long: `Pick local branches that are not checked out anywhere and create a
worktree for each, named like 'wt create' would. When exactly one worktree
is created its path is printed on stdout.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	repo, _, err := openRepository()
	if err != nil {
		return err
	}

	branches, err := worktree.NewLister(repo).BranchesWithoutWorktree()
	if err != nil {
		return err
	}
	if len(branches) == 0 {
		return errors.E(errors.Op("cmd.convert"), errors.KindInvalid, "no branches without worktrees")
	}

	result, err := newPicker(logger.GetLogger().Style()).Pick(branchCandidates(branches), picker.Options{
		Mode:   picker.Multi,
		Prompt: "convert",
	})
	if err != nil {
		return err
	}
	if result.Aborted || len(result.Selected) == 0 {
		logger.Debug("nothing selected")
		return nil
	}

	creator := worktree.NewCreator(repo)
	var created []*worktree.CreateResult
	for _, branch := range result.Payloads() {
		res, err := creator.Checkout(branch)
		if err != nil {
			return err
		}
		logger.Done("created", "worktree %s at %s", res.Branch, res.DirName)
		created = append(created, res)
	}

	if len(created) == 1 {
		fmt.Fprintln(cmd.OutOrStdout(), created[0].Target)
	}
	return nil
}
