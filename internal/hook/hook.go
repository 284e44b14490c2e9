// Package hook decides which configured shell commands run after the
// shell integration changes directory.
package hook

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// PostWorktreeChange runs after create, switch, remove or convert moved
// the shell to another worktree
const PostWorktreeChange = "post-worktree-change"

// Names lists every hook `wt hook` accepts
var Names = []string{PostWorktreeChange}

// Entry is one configured hook command
type Entry struct {
	Command string `mapstructure:"command" yaml:"command" json:"command"`
	// OnlyIf is a glob relative to the working directory; ** matches any
	// number of directories. The command runs only when it matches at
	// least one path. Empty always matches.
	OnlyIf string `mapstructure:"only_if" yaml:"only_if,omitempty" json:"only_if,omitempty"`
}

// Matches reports whether the entry applies in cwd
func (e Entry) Matches(cwd string) (bool, error) {
	if e.OnlyIf == "" {
		return true, nil
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(cwd, e.OnlyIf))
	if err != nil {
		return false, fmt.Errorf("invalid only_if pattern %q: %w", e.OnlyIf, err)
	}
	return len(matches) > 0, nil
}

// Commands returns the commands of the entries that match cwd, in order
func Commands(entries []Entry, cwd string) ([]string, error) {
	var commands []string
	for _, entry := range entries {
		ok, err := entry.Matches(cwd)
		if err != nil {
			return nil, err
		}
		if ok {
			commands = append(commands, entry.Command)
		}
	}
	return commands, nil
}

// Validate returns one message per malformed entry
func Validate(entries []Entry) []string {
	var problems []string
	for i, entry := range entries {
		if entry.Command == "" {
			problems = append(problems, fmt.Sprintf("entry %d has an empty command", i))
		}
		if entry.OnlyIf != "" {
			if !doublestar.ValidatePattern(filepath.ToSlash(entry.OnlyIf)) {
				problems = append(problems, fmt.Sprintf("entry %d has an invalid only_if pattern %q", i, entry.OnlyIf))
			}
		}
	}
	return problems
}
