package cmd

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keisukeshimizu/wt/internal/errors"
)

var (
	//go:embed shell/init.zsh
	initZsh string

	//go:embed shell/init.bash
	initBash string
)

var initScripts = map[string]string{
	"zsh":  initZsh,
	"bash": initBash,
}

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init <shell>",
	Short: "Print the shell integration",
	Long: `Print a shell function that wraps wt so the shell changes into the
directory printed by create, switch, remove and convert, then runs the
post-worktree-change hook commands.

Add to ~/.zshrc or ~/.bashrc:

  eval "$(wt init zsh)"
  eval "$(wt init bash)"`,
	ValidArgs: []string{"zsh", "bash"},
	Args:      cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, ok := initScripts[args[0]]
		if !ok {
			return errors.E(errors.Op("cmd.init"), errors.KindUnsupported, fmt.Sprintf("unsupported shell `%s` (use zsh or bash)", args[0]))
		}
		fmt.Fprint(cmd.OutOrStdout(), script)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
