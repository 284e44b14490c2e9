package worktree

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// TrashPrefix starts the name of every directory pending deletion
const TrashPrefix = ".wt-removing-"

// TrashPath returns the sibling path a worktree is renamed to during removal
func TrashPath(path string, pid, index int) string {
	return filepath.Join(filepath.Dir(path), fmt.Sprintf("%s%d-%d", TrashPrefix, pid, index))
}

// IsTrash reports whether name looks like a trash directory name
func IsTrash(name string) bool {
	return strings.HasPrefix(name, TrashPrefix)
}

// FindTrash lists trash directories directly inside each of dirs
func FindTrash(dirs ...string) []string {
	seen := make(map[string]bool)
	var found []string
	for _, dir := range dirs {
		matches, err := filepath.Glob(filepath.Join(dir, TrashPrefix+"*"))
		if err != nil {
			continue
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				found = append(found, match)
			}
		}
	}
	return found
}

// Sweeper deletes trashed directories in the background with at most
// MaxWorkers deletions running at once. Failures are ignored.
type Sweeper struct {
	sem    chan struct{}
	wg     sync.WaitGroup
	remove func(string) error
}

// NewSweeper creates a sweeper; workers below one means one
func NewSweeper(workers int) *Sweeper {
	if workers < 1 {
		workers = 1
	}
	return &Sweeper{
		sem:    make(chan struct{}, workers),
		remove: os.RemoveAll,
	}
}

// Sweep starts deleting paths and returns immediately
func (s *Sweeper) Sweep(paths []string) {
	for _, path := range paths {
		s.wg.Add(1)
		go func(path string) {
			defer s.wg.Done()
			s.sem <- struct{}{}
			defer func() { <-s.sem }()
			_ = s.remove(path)
		}(path)
	}
}

// Wait blocks until every sweep finished or grace elapsed and reports
// whether everything finished. A zero grace does not wait at all.
func (s *Sweeper) Wait(grace time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	if grace <= 0 {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}

	timer := time.NewTimer(grace)
	defer timer.Stop()

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
