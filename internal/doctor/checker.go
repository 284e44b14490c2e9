package doctor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/keisukeshimizu/wt/internal/config"
	"github.com/keisukeshimizu/wt/internal/git"
	"github.com/keisukeshimizu/wt/internal/hook"
	"github.com/keisukeshimizu/wt/internal/style"
	"github.com/keisukeshimizu/wt/internal/worktree"
)

// CheckStatus represents the status of a diagnostic check
type CheckStatus string

const (
	CheckStatusPass CheckStatus = "pass"
	CheckStatusWarn CheckStatus = "warn"
	CheckStatusFail CheckStatus = "fail"
)

// CheckResult represents the result of a single diagnostic check
type CheckResult struct {
	Name        string      `json:"name"`
	Status      CheckStatus `json:"status"`
	Details     string      `json:"details"`
	Suggestions []string    `json:"suggestions,omitempty"`
}

// DiagnosticSummary provides an overview of all checks
type DiagnosticSummary struct {
	Total   int  `json:"total"`
	Passed  int  `json:"passed"`
	Warned  int  `json:"warned"`
	Failed  int  `json:"failed"`
	Healthy bool `json:"healthy"`
}

// DiagnosticResult contains the results of all diagnostic checks
type DiagnosticResult struct {
	Checks  []CheckResult     `json:"checks"`
	Summary DiagnosticSummary `json:"summary"`
}

// Checker performs diagnostic checks of git, the worktree registry and
// the hook configuration
type Checker struct {
	// ConfigPath is shown by the configuration check when set
	ConfigPath string

	repo    git.Repository // nil outside a repository
	repoErr error
	config  *config.Config
	version func() (string, error)
}

// NewChecker creates a new Checker. repoErr explains a nil repo.
func NewChecker(repo git.Repository, repoErr error, cfg *config.Config) *Checker {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Checker{
		repo:    repo,
		repoErr: repoErr,
		config:  cfg,
		version: git.Version,
	}
}

// CheckSystem runs all diagnostic checks
func (c *Checker) CheckSystem() *DiagnosticResult {
	checks := []CheckResult{
		c.CheckGitInstallation(),
		c.CheckGitRepository(),
	}

	if c.repo != nil {
		records, listing, err := c.scan()
		checks = append(checks, c.CheckWorktrees(records, listing, err))
		checks = append(checks, c.CheckLeftoverTrash(records))
	}

	checks = append(checks, c.CheckConfiguration(), c.CheckHooks())

	return &DiagnosticResult{
		Checks:  checks,
		Summary: calculateSummary(checks),
	}
}

// CheckGitInstallation checks if Git is properly installed
func (c *Checker) CheckGitInstallation() CheckResult {
	result := CheckResult{Name: "Git Installation"}

	version, err := c.version()
	if err != nil {
		result.Status = CheckStatusFail
		result.Details = "Git is not installed or not in PATH"
		result.Suggestions = []string{"Install Git from https://git-scm.com/"}
		return result
	}

	result.Status = CheckStatusPass
	result.Details = version
	return result
}

// CheckGitRepository checks the current Git repository
func (c *Checker) CheckGitRepository() CheckResult {
	result := CheckResult{Name: "Git Repository"}

	if c.repo == nil {
		result.Status = CheckStatusFail
		result.Details = "Current directory is not a Git repository"
		if c.repoErr != nil {
			result.Details = c.repoErr.Error()
		}
		result.Suggestions = []string{"Run wt from inside a Git repository"}
		return result
	}

	result.Status = CheckStatusPass
	result.Details = c.repo.GetRoot()
	return result
}

func (c *Checker) scan() ([]worktree.Record, string, error) {
	listing, err := c.repo.ListWorktrees()
	if err != nil {
		return nil, "", err
	}
	return worktree.Parse(listing), listing, nil
}

// CheckWorktrees checks the registry for entries whose directory is gone
func (c *Checker) CheckWorktrees(records []worktree.Record, listing string, err error) CheckResult {
	result := CheckResult{Name: "Worktrees"}

	if err != nil {
		result.Status = CheckStatusFail
		result.Details = fmt.Sprintf("failed to list worktrees: %v", err)
		return result
	}

	live := worktree.Live(records)
	prunable := worktree.Prunable(listing)
	if len(prunable) > 0 {
		result.Status = CheckStatusWarn
		result.Details = fmt.Sprintf("%d live, %d prunable: %s", len(live), len(prunable), strings.Join(prunable, ", "))
		result.Suggestions = []string{"Run 'git worktree prune' to drop stale entries"}
		return result
	}

	result.Status = CheckStatusPass
	result.Details = fmt.Sprintf("%d live worktrees", len(live))
	return result
}

// CheckLeftoverTrash looks for directories an interrupted removal left
// next to the worktrees
func (c *Checker) CheckLeftoverTrash(records []worktree.Record) CheckResult {
	result := CheckResult{Name: "Leftover Trash"}

	var dirs []string
	for _, record := range records {
		dirs = append(dirs, filepath.Dir(record.Path))
	}

	trash := worktree.FindTrash(dirs...)
	if len(trash) > 0 {
		result.Status = CheckStatusWarn
		result.Details = strings.Join(trash, ", ")
		result.Suggestions = []string{"Delete the listed directories; they are no longer registered with git"}
		return result
	}

	result.Status = CheckStatusPass
	result.Details = "No leftover directories"
	return result
}

// CheckConfiguration validates the settings outside the hooks section
func (c *Checker) CheckConfiguration() CheckResult {
	result := CheckResult{Name: "Configuration"}

	if problems := config.ValidateSettings(c.config); len(problems) > 0 {
		result.Status = CheckStatusFail
		result.Details = strings.Join(problems, "; ")
		result.Suggestions = []string{"Run 'wt config show' to see the resolved values"}
		return result
	}

	result.Status = CheckStatusPass
	result.Details = "valid"
	if c.ConfigPath != "" {
		result.Details = c.ConfigPath
	}
	return result
}

// CheckHooks validates the configured hook entries
func (c *Checker) CheckHooks() CheckResult {
	result := CheckResult{Name: "Hooks"}
	hooks := c.config.Hooks.PostWorktreeChange

	if problems := hook.Validate(hooks); len(problems) > 0 {
		result.Status = CheckStatusFail
		result.Details = strings.Join(problems, "; ")
		result.Suggestions = []string{"Fix hooks.post_worktree_change in the config file"}
		return result
	}

	result.Status = CheckStatusPass
	result.Details = fmt.Sprintf("%d post-worktree-change entries", len(hooks))
	return result
}

// calculateSummary calculates the diagnostic summary
func calculateSummary(checks []CheckResult) DiagnosticSummary {
	summary := DiagnosticSummary{
		Total: len(checks),
	}

	for _, check := range checks {
		switch check.Status {
		case CheckStatusPass:
			summary.Passed++
		case CheckStatusWarn:
			summary.Warned++
		case CheckStatusFail:
			summary.Failed++
		}
	}

	summary.Healthy = summary.Failed == 0
	return summary
}

// FormatAsTable formats the diagnostic result as a table. Status words
// are colored after padding so escapes do not shift the columns.
func (r *DiagnosticResult) FormatAsTable(st *style.Style) string {
	var output bytes.Buffer

	width := runewidth.StringWidth("CHECK")
	for _, check := range r.Checks {
		width = max(width, runewidth.StringWidth(check.Name))
	}

	fmt.Fprintf(&output, "%s  %s  %s\n", runewidth.FillRight("CHECK", width), "STATUS", "DETAILS")

	for _, check := range r.Checks {
		var status string
		switch check.Status {
		case CheckStatusPass:
			status = st.Green("PASS  ")
		case CheckStatusWarn:
			status = st.Yellow("WARN  ")
		case CheckStatusFail:
			status = st.Red("FAIL  ")
		}

		fmt.Fprintf(&output, "%s  %s  %s\n", runewidth.FillRight(check.Name, width), status, check.Details)
		for _, suggestion := range check.Suggestions {
			fmt.Fprintf(&output, "%s  %s\n", strings.Repeat(" ", width+8), st.Dim("hint: "+suggestion))
		}
	}

	fmt.Fprintf(&output, "\n%d checks: %d passed, %d warned, %d failed\n",
		r.Summary.Total, r.Summary.Passed, r.Summary.Warned, r.Summary.Failed)

	return output.String()
}

// FormatAsJSON formats the diagnostic result as JSON
func (r *DiagnosticResult) FormatAsJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// GetOverallStatus returns the overall status based on all checks
func (r *DiagnosticResult) GetOverallStatus() CheckStatus {
	if r.Summary.Failed > 0 {
		return CheckStatusFail
	}
	if r.Summary.Warned > 0 {
		return CheckStatusWarn
	}
	return CheckStatusPass
}
