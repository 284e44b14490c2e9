package worktree

import (
	"path/filepath"
	"strings"

	"github.com/keisukeshimizu/wt/internal/errors"
)

// Naming is the derived location of a new worktree
type Naming struct {
	DirName string // "<project>.<branch with / replaced by ->"
	Target  string // DirName placed next to the primary worktree
}

// Derive places a worktree for branch as a sibling of primaryRoot.
// Branches that differ only in '/' versus '-' map to the same directory.
func Derive(primaryRoot, branch string) (Naming, error) {
	root := filepath.Clean(primaryRoot)

	project := filepath.Base(root)
	if primaryRoot == "" || project == "." || project == ".." || project == string(filepath.Separator) {
		return Naming{}, errors.NoProjectName(primaryRoot)
	}

	parent := filepath.Dir(root)
	if parent == root {
		return Naming{}, errors.NoParentDirectory(primaryRoot)
	}

	dirName := project + "." + strings.ReplaceAll(branch, "/", "-")
	return Naming{
		DirName: dirName,
		Target:  filepath.Join(parent, dirName),
	}, nil
}
