package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keisukeshimizu/wt/internal/config"
	"github.com/keisukeshimizu/wt/internal/git"
	"github.com/keisukeshimizu/wt/internal/logger"
	"github.com/keisukeshimizu/wt/internal/picker"
	"github.com/keisukeshimizu/wt/internal/style"
)

// Version is the released version of wt
const Version = "0.1.1"

var (
	cfgFile string
	verbose bool

	// Resolved by PersistentPreRunE for every invocation
	cfg         *config.Config
	cfgManager  *config.Manager
	stdoutStyle *style.Style

	// newPicker is replaced by tests with a headless picker
	newPicker = picker.New
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wt",
	Short: "Create, switch between and remove git worktrees",
	Long: `wt manages git worktrees laid out as siblings of the main checkout.

A worktree for branch feature/login of project "app" lives in
../app.feature-login. Commands that change the current worktree print the
destination on stdout; install the shell integration so your shell follows:

  eval "$(wt init zsh)"

Examples:
  wt create feature/login   # new branch and worktree
  wt switch                 # pick a worktree to cd into
  wt remove                 # pick worktrees to delete with their branches
  wt list                   # show worktrees with unstaged changes`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Assigned here rather than in the literal: setup refers to rootCmd
	rootCmd.PersistentPreRunE = setup

	cobra.OnFinalize(func() {
		_ = logger.GetLogger().Close()
	})

	rootCmd.SetVersionTemplate("wt-cli {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/wt/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setup reads the configuration and installs the logger. doctor gets the
// configuration unvalidated so it can report the problems itself.
func setup(cmd *cobra.Command, args []string) error {
	v := viper.New()
	if err := v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		return err
	}

	cfgManager = config.NewManager(v)
	if err := cfgManager.Read(cfgFile); err != nil {
		return err
	}

	var err error
	if cmd == doctorCmd {
		cfg, err = cfgManager.Decode()
	} else {
		cfg, err = cfgManager.Load()
	}
	if err != nil {
		return err
	}

	env := style.CaptureEnv()
	stdoutStyle = env.Stdout(cmd.OutOrStdout(), cfg.Theme)

	log := logger.New(cmd.ErrOrStderr(), env.Stderr(cmd.ErrOrStderr(), cfg.Theme), cfg.Verbose)
	if err := log.AttachFile(logger.FileConfig{
		Path:       cfg.Log.File,
		Level:      cfg.Log.Level,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		return err
	}
	logger.SetLogger(log)

	log.Debug("wt %s: %s %v", Version, cmd.CommandPath(), args)
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug("using config file %s", used)
	}
	return nil
}

// currentDir returns the working directory with symlinks resolved so it
// compares equal to the paths git reports
func currentDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(cwd); err == nil {
		return resolved, nil
	}
	return cwd, nil
}

// openRepository opens the repository containing the working directory
func openRepository() (*git.GitRepository, string, error) {
	cwd, err := currentDir()
	if err != nil {
		return nil, "", err
	}
	repo, err := git.Open(cwd)
	if err != nil {
		return nil, "", err
	}
	return repo, cwd, nil
}

// openListing returns a handle rooted at the working directory without
// resolving the top level, so commands that only read `git worktree list`
// also work from a bare repository
func openListing() (*git.GitRepository, string, error) {
	cwd, err := currentDir()
	if err != nil {
		return nil, "", err
	}
	return git.At(cwd), cwd, nil
}
