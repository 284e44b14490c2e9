package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keisukeshimizu/wt/internal/errors"
	"github.com/keisukeshimizu/wt/internal/hook"
	"github.com/keisukeshimizu/wt/internal/logger"
)

// hookCmd represents the hook command
var hookCmd = &cobra.Command{
	Use:   "hook <name>",
	Short: "Print the hook commands that apply to the current directory",
	Long: `Print, one per line, the configured commands of a hook whose only_if
pattern matches in the current directory. The shell integration evaluates
them after changing worktree.

Example configuration:

  hooks:
    post_worktree_change:
      - command: direnv allow
        only_if: .envrc
      - command: nvm use
        only_if: .nvmrc`,
	ValidArgs: hook.Names,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, ok := cfg.Hooks.Lookup(args[0])
		if !ok {
			return errors.E(errors.Op("cmd.hook"), errors.KindInvalid, fmt.Sprintf("unknown hook `%s`", args[0]))
		}

		cwd, err := currentDir()
		if err != nil {
			return err
		}

		commands, err := hook.Commands(entries, cwd)
		if err != nil {
			return err
		}
		logger.Debug("%d of %d %s commands apply in %s", len(commands), len(entries), args[0], cwd)

		for _, command := range commands {
			fmt.Fprintln(cmd.OutOrStdout(), command)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hookCmd)
}
