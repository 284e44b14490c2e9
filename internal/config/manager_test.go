package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keisukeshimizu/wt/internal/hook"
	"github.com/keisukeshimizu/wt/test/testutil"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestManager_Load(t *testing.T) {
	mockEnv := testutil.NewMockEnvironment(t)
	defer mockEnv.Cleanup()
	mockEnv.SetEnv("XDG_CONFIG_HOME", t.TempDir())

	t.Run("defaults without a config file", func(t *testing.T) {
		manager := NewManager(viper.New())
		require.NoError(t, manager.Read(""))

		config, err := manager.Load()
		require.NoError(t, err)

		assert.Equal(t, "mocha", config.Theme)
		assert.False(t, config.Verbose)
		assert.Equal(t, 4, config.Remove.SweepWorkers)
		assert.Equal(t, 30*time.Second, config.Remove.SweepGrace)
		assert.Empty(t, config.Hooks.PostWorktreeChange)
		assert.Equal(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "wt", "config.yaml"), manager.Path())
	})

	t.Run("file values", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), `
theme: latte
remove:
  sweep_workers: 2
  sweep_grace: 5s
log:
  file: /tmp/wt.log
  level: info
hooks:
  post_worktree_change:
    - command: nvm use
      only_if: .nvmrc
    - command: ls
`)

		manager := NewManager(viper.New())
		require.NoError(t, manager.Read(path))

		config, err := manager.Load()
		require.NoError(t, err)

		assert.Equal(t, "latte", config.Theme)
		assert.Equal(t, 2, config.Remove.SweepWorkers)
		assert.Equal(t, 5*time.Second, config.Remove.SweepGrace)
		assert.Equal(t, "/tmp/wt.log", config.Log.File)
		assert.Equal(t, 10, config.Log.MaxSizeMB)
		assert.Equal(t, []hook.Entry{
			{Command: "nvm use", OnlyIf: ".nvmrc"},
			{Command: "ls"},
		}, config.Hooks.PostWorktreeChange)
		assert.Equal(t, path, manager.Path())
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "theme: latte\n")
		mockEnv.SetEnv("WT_THEME", "frappe")
		mockEnv.SetEnv("WT_REMOVE_SWEEP_WORKERS", "8")
		defer mockEnv.UnsetEnv("WT_THEME")
		defer mockEnv.UnsetEnv("WT_REMOVE_SWEEP_WORKERS")

		manager := NewManager(viper.New())
		require.NoError(t, manager.Read(path))

		config, err := manager.Load()
		require.NoError(t, err)
		assert.Equal(t, "frappe", config.Theme)
		assert.Equal(t, 8, config.Remove.SweepWorkers)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "theme: solarized\nremove:\n  sweep_workers: 0\n")

		manager := NewManager(viper.New())
		require.NoError(t, manager.Read(path))

		_, err := manager.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported theme: solarized")
		assert.Contains(t, err.Error(), "remove.sweep_workers must be at least 1")
	})

	t.Run("explicit file that does not exist", func(t *testing.T) {
		manager := NewManager(viper.New())
		err := manager.Read(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "theme: [unclosed\n")

		manager := NewManager(viper.New())
		err := manager.Read(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestValidateConfig(t *testing.T) {
	valid := Config{
		Theme:  "mocha",
		Remove: RemoveConfig{SweepWorkers: 1},
	}
	assert.Empty(t, ValidateConfig(&valid))

	invalid := valid
	invalid.Log = LogConfig{File: "/tmp/x.log", Level: "trace"}
	invalid.Remove.SweepGrace = -time.Second
	invalid.Hooks.PostWorktreeChange = []hook.Entry{{Command: ""}}

	assert.Equal(t, []string{
		"unsupported log level: trace",
		"remove.sweep_grace must not be negative",
		"hooks.post_worktree_change: entry 0 has an empty command",
	}, ValidateConfig(&invalid))

	assert.Equal(t, []string{
		"unsupported log level: trace",
		"remove.sweep_grace must not be negative",
	}, ValidateSettings(&invalid))
}

func TestManager_DecodeSkipsValidation(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "hooks:\n  post_worktree_change:\n    - command: \"\"\n")

	manager := NewManager(viper.New())
	require.NoError(t, manager.Read(path))

	config, err := manager.Decode()
	require.NoError(t, err)
	require.Len(t, config.Hooks.PostWorktreeChange, 1)

	_, err = manager.Load()
	assert.ErrorContains(t, err, "entry 0 has an empty command")
}

func TestHooksConfig_Lookup(t *testing.T) {
	hooks := HooksConfig{PostWorktreeChange: []hook.Entry{{Command: "ls"}}}

	entries, ok := hooks.Lookup(hook.PostWorktreeChange)
	assert.True(t, ok)
	assert.Len(t, entries, 1)

	_, ok = hooks.Lookup("pre-commit")
	assert.False(t, ok)
}

func TestConfig_YAML(t *testing.T) {
	config := Config{
		Theme:  "mocha",
		Remove: RemoveConfig{SweepWorkers: 4, SweepGrace: 30 * time.Second},
		Hooks:  HooksConfig{PostWorktreeChange: []hook.Entry{{Command: "ls", OnlyIf: "*.go"}}},
	}

	data, err := config.YAML()
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "theme: mocha")
	assert.Contains(t, out, "sweep_grace: 30s")
	assert.Contains(t, out, "only_if: '*.go'")
}
