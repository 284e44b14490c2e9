//go:build !unix

package picker

import (
	"github.com/keisukeshimizu/wt/internal/errors"
	"github.com/keisukeshimizu/wt/internal/style"
)

type unsupported struct{}

// New returns a picker that always fails on this platform
func New(*style.Style) Picker {
	return unsupported{}
}

func (unsupported) Pick([]Candidate, Options) (Result, error) {
	return Result{}, errors.Unsupported("interactive selection")
}
