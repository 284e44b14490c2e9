// Package errors provides structured error types for wt.
// Every error carries the operation that failed and a Kind, and renders
// its causal chain as a tree for the error stream.
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindEnvironment
	KindCommand
	KindParse
	KindBatch
	KindInvalid
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindEnvironment:
		return "environment error"
	case KindCommand:
		return "command failed"
	case KindParse:
		return "parse error"
	case KindBatch:
		return "partial batch failure"
	case KindInvalid:
		return "invalid"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for wt.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Message describing this level of the failure
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Context, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Context
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Chain returns one message per level of err's causal chain, outermost
// first. Messages produced by fmt.Errorf("...: %w") have the wrapped
// error's text stripped so each cause appears once.
func Chain(err error) []string {
	var messages []string
	for err != nil {
		var next error
		var msg string

		if e, ok := err.(*Error); ok {
			msg, next = e.Context, e.Err
		} else {
			msg, next = err.Error(), errors.Unwrap(err)
			if next != nil {
				msg = strings.TrimSuffix(msg, ": "+next.Error())
			}
		}

		if msg != "" {
			messages = append(messages, msg)
		}
		err = next
	}
	return messages
}

// Fprint renders err as a tree: the outermost message on the first line,
// then each cause on its own line with ├─ for intermediate causes and └─
// for the final one.
func Fprint(w io.Writer, err error) {
	chain := Chain(err)
	if len(chain) == 0 {
		return
	}

	fmt.Fprintf(w, "error: %s\n", chain[0])

	causes := chain[1:]
	for i, cause := range causes {
		connector := "├─"
		if i == len(causes)-1 {
			connector = "└─"
		}
		fmt.Fprintf(w, "       %s %s\n", connector, cause)
	}
}

// Path-naming errors

func NoProjectName(root string) error {
	return E(Op("worktree.Derive"), KindEnvironment, fmt.Sprintf("failed to get project name from `%s`", root))
}

func NoParentDirectory(root string) error {
	return E(Op("worktree.Derive"), KindEnvironment, fmt.Sprintf("repo root `%s` has no parent directory", root))
}

// Repository errors

func NotARepository(err error) error {
	return E(Op("git.Open"), KindEnvironment, "not a git repository", err)
}

func ListFailed(err error) error {
	return E(Op("worktree.Scan"), KindCommand, "failed to list worktrees", err)
}

// Unsupported is returned by components whose backend is missing on the
// current platform.
func Unsupported(what string) error {
	return E(Op("picker.Pick"), KindUnsupported, fmt.Sprintf("%s is not supported on this platform", what))
}
