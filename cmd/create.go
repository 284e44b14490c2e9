package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keisukeshimizu/wt/internal/logger"
	"github.com/keisukeshimizu/wt/internal/worktree"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create <branch>",
	Short: "Create a worktree on a new branch",
	Long: `Create a new branch and a worktree for it next to the main checkout.

The directory is named after the project and the branch, with every '/'
replaced by '-'. The absolute path of the new worktree is printed on
stdout.

Examples:
  wt create feature/login   # creates ../app.feature-login`,
	Aliases: []string{"new"},
	Args:    cobra.ExactArgs(1),
	RunE:    runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	repo, _, err := openRepository()
	if err != nil {
		return err
	}

	result, err := worktree.NewCreator(repo).Create(args[0])
	if err != nil {
		return err
	}

	logger.Done("created", "worktree %s at %s", result.Branch, result.DirName)
	fmt.Fprintln(cmd.OutOrStdout(), result.Target)
	return nil
}
