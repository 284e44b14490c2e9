package errors

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestE(t *testing.T) {
	t.Run("context only becomes the underlying error", func(t *testing.T) {
		err := E(Op("test.Op"), KindInvalid, "something broke")
		assert.Equal(t, "something broke", err.Error())
		assert.True(t, Is(err, KindInvalid))
	})

	t.Run("context and cause", func(t *testing.T) {
		err := E(Op("test.Op"), KindCommand, "failed to prune worktrees", errors.New("fatal: locked"))
		assert.Equal(t, "failed to prune worktrees: fatal: locked", err.Error())
		assert.Equal(t, KindCommand, GetKind(err))
	})

	t.Run("kind survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", E(KindBatch, "inner"))
		assert.True(t, Is(err, KindBatch))
		assert.False(t, Is(err, KindParse))
	})

	t.Run("plain errors have unknown kind", func(t *testing.T) {
		assert.Equal(t, KindUnknown, GetKind(errors.New("plain")))
	})
}

func TestChain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "single error",
			err:  errors.New("no worktrees found"),
			want: []string{"no worktrees found"},
		},
		{
			name: "structured with cause",
			err:  E(KindCommand, "failed to create worktree `feature`", errors.New("fatal: a branch named 'feature' already exists")),
			want: []string{"failed to create worktree `feature`", "fatal: a branch named 'feature' already exists"},
		},
		{
			name: "fmt wrapped structured",
			err:  fmt.Errorf("create failed: %w", E(KindCommand, "git worktree add", errors.New("exit status 128"))),
			want: []string{"create failed", "git worktree add", "exit status 128"},
		},
		{
			name: "nil",
			err:  nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chain(tt.err))
		})
	}
}

func TestFprint(t *testing.T) {
	t.Run("single line", func(t *testing.T) {
		var buf bytes.Buffer
		Fprint(&buf, errors.New("no worktrees to remove"))
		assert.Equal(t, "error: no worktrees to remove\n", buf.String())
	})

	t.Run("tree connectors", func(t *testing.T) {
		var buf bytes.Buffer
		err := fmt.Errorf("removal failed: %w", E(KindCommand, "failed to delete branch `x`", errors.New("error: branch 'x' not found")))
		Fprint(&buf, err)

		expected := "error: removal failed\n" +
			"       ├─ failed to delete branch `x`\n" +
			"       └─ error: branch 'x' not found\n"
		assert.Equal(t, expected, buf.String())
	})
}
