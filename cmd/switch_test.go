package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keisukeshimizu/wt/internal/picker"
)

func TestSwitchCommand(t *testing.T) {
	repo, cli, _ := setupTest(t)
	feature := repo.AddWorktree("feature", "feature")

	t.Run("prints the chosen worktree", func(t *testing.T) {
		stub := &picker.Stub{Choose: []string{feature}}
		usePicker(t, stub)

		require.NoError(t, cli.ExecuteCommand(rootCmd, "switch"))
		assert.Equal(t, feature+"\n", cli.GetStdout())

		assert.Equal(t, picker.Single, stub.Used.Mode)
		require.Len(t, stub.Offered, 2)
		assert.Equal(t, repo.RepoDir, stub.Offered[0].Payload())
		assert.Contains(t, stub.Offered[1].Label(), "feature")
	})

	t.Run("preview shows unstaged changes", func(t *testing.T) {
		stub := &picker.Stub{Choose: []string{feature}}
		usePicker(t, stub)
		require.NoError(t, cli.ExecuteCommand(rootCmd, "switch"))

		require.NotNil(t, stub.Used.Preview)
		assert.Equal(t, "no unstaged changes", stub.Used.Preview(feature))

		repo.CreateFile("README.md", "# Changed\n")
		defer repo.Git("checkout", "--", "README.md")
		assert.Contains(t, stub.Used.Preview(repo.RepoDir), "+# Changed")
	})

	t.Run("abort prints nothing", func(t *testing.T) {
		usePicker(t, &picker.Stub{Abort: true})

		require.NoError(t, cli.ExecuteCommand(rootCmd, "switch"))
		assert.Empty(t, cli.GetStdout())
	})

	t.Run("picker failure", func(t *testing.T) {
		usePicker(t, &picker.Stub{Err: assert.AnError})

		assert.ErrorIs(t, cli.ExecuteCommand(rootCmd, "switch"), assert.AnError)
	})
}
