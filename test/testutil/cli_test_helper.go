package testutil

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// CLITestHelper provides utilities for testing CLI commands
type CLITestHelper struct {
	t      *testing.T
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// NewCLITestHelper creates a new CLI test helper
func NewCLITestHelper(t *testing.T) *CLITestHelper {
	return &CLITestHelper{
		t:      t,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
}

// ExecuteCommand executes a Cobra command with the given arguments
func (h *CLITestHelper) ExecuteCommand(cmd *cobra.Command, args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()

	cmd.SetOut(h.stdout)
	cmd.SetErr(h.stderr)
	cmd.SetArgs(args)

	return cmd.Execute()
}

// GetStdout returns the stdout output as a string
func (h *CLITestHelper) GetStdout() string {
	return h.stdout.String()
}

// GetStderr returns the stderr output as a string
func (h *CLITestHelper) GetStderr() string {
	return h.stderr.String()
}

// AssertStdoutContains asserts that stdout contains the expected string
func (h *CLITestHelper) AssertStdoutContains(expected string) {
	require.Contains(h.t, h.GetStdout(), expected, "stdout should contain: %s", expected)
}

// AssertStderrContains asserts that stderr contains the expected string
func (h *CLITestHelper) AssertStderrContains(expected string) {
	require.Contains(h.t, h.GetStderr(), expected, "stderr should contain: %s", expected)
}

// MockEnvironment provides utilities for mocking environment
type MockEnvironment struct {
	t           *testing.T
	originalEnv map[string]*string
	originalWd  string
}

// NewMockEnvironment creates a new mock environment
func NewMockEnvironment(t *testing.T) *MockEnvironment {
	originalWd, err := os.Getwd()
	require.NoError(t, err)

	return &MockEnvironment{
		t:           t,
		originalEnv: make(map[string]*string),
		originalWd:  originalWd,
	}
}

func (m *MockEnvironment) remember(key string) {
	if _, seen := m.originalEnv[key]; seen {
		return
	}
	if original, exists := os.LookupEnv(key); exists {
		m.originalEnv[key] = &original
	} else {
		m.originalEnv[key] = nil
	}
}

// SetEnv sets an environment variable and remembers the original value
func (m *MockEnvironment) SetEnv(key, value string) {
	m.remember(key)
	require.NoError(m.t, os.Setenv(key, value))
}

// UnsetEnv removes an environment variable and remembers the original value
func (m *MockEnvironment) UnsetEnv(key string) {
	m.remember(key)
	require.NoError(m.t, os.Unsetenv(key))
}

// ChangeDir changes the working directory
func (m *MockEnvironment) ChangeDir(dir string) {
	require.NoError(m.t, os.Chdir(dir))
}

// Cleanup restores the original environment and working directory
func (m *MockEnvironment) Cleanup() {
	require.NoError(m.t, os.Chdir(m.originalWd))

	for key, original := range m.originalEnv {
		if original == nil {
			require.NoError(m.t, os.Unsetenv(key))
		} else {
			require.NoError(m.t, os.Setenv(key, *original))
		}
	}
}
