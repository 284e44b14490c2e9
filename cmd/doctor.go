package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keisukeshimizu/wt/internal/doctor"
	"github.com/keisukeshimizu/wt/internal/errors"
	"github.com/keisukeshimizu/wt/internal/git"
)

var doctorFormat string

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check git, the worktree registry and the configuration",
	Long: `Diagnose the environment wt runs in.

Checks that git is installed, that the current directory is inside a
repository, that the worktree registry has no stale entries, that no
directories were left behind by an interrupted removal, and that the
configuration and hooks are valid. Exits non-zero when a check fails.

Examples:
  wt doctor                 # table output
  wt doctor --format json   # machine-readable output`,
	Aliases: []string{"check"},
	Args:    cobra.NoArgs,
	RunE:    runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().StringVarP(&doctorFormat, "format", "f", "table", "output format (table, json)")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	if doctorFormat != "table" && doctorFormat != "json" {
		return fmt.Errorf("unsupported format %q (use table or json)", doctorFormat)
	}

	// Not being in a repository is reported as a failed check
	var repo git.Repository
	opened, _, repoErr := openRepository()
	if repoErr == nil {
		repo = opened
	}

	checker := doctor.NewChecker(repo, repoErr, cfg)
	checker.ConfigPath = cfgManager.Path()
	result := checker.CheckSystem()

	if doctorFormat == "json" {
		out, err := result.FormatAsJSON()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), result.FormatAsTable(stdoutStyle))
	}

	if result.GetOverallStatus() == doctor.CheckStatusFail {
		return errors.E(errors.Op("cmd.doctor"), errors.KindEnvironment, fmt.Sprintf("%d of %d checks failed", result.Summary.Failed, result.Summary.Total))
	}
	return nil
}
