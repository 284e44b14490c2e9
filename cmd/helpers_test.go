package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/keisukeshimizu/wt/internal/picker"
	"github.com/keisukeshimizu/wt/internal/style"
	"github.com/keisukeshimizu/wt/test/testutil"
)

// setupTest creates a repository named "project", changes into it and
// isolates the command from the user's configuration and terminal
func setupTest(t *testing.T) (*testutil.TestGitRepository, *testutil.CLITestHelper, *testutil.MockEnvironment) {
	t.Helper()

	repo := testutil.NewTestGitRepository(t, "project")

	env := testutil.NewMockEnvironment(t)
	t.Cleanup(env.Cleanup)
	env.SetEnv("XDG_CONFIG_HOME", t.TempDir())
	env.SetEnv("NO_COLOR", "1")
	for _, key := range []string{"CLICOLOR_FORCE", "WT_THEME", "WT_VERBOSE", "WT_LOG_FILE"} {
		env.UnsetEnv(key)
	}
	env.ChangeDir(repo.RepoDir)

	cfgFile = ""
	verbose = false
	listFormat = "table"
	doctorFormat = "table"

	return repo, testutil.NewCLITestHelper(t), env
}

// usePicker makes commands pick through stub
func usePicker(t *testing.T, stub *picker.Stub) {
	t.Helper()
	original := newPicker
	newPicker = func(*style.Style) picker.Picker { return stub }
	t.Cleanup(func() { newPicker = original })
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
