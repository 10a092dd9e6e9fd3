package setup

import (
	"fmt"
	"os"
	"path/filepath"

	mbaerrors "github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/errors"
)

// DirFailure records one directory that could not be created.
type DirFailure struct {
	Path string
	Err  error
}

// EnsureDirectories creates each relative path under workDir, including
// intermediate segments. Already-existing paths count as created.
// A failure on one path does not stop the remaining paths. Running twice
// yields the same filesystem state and no duplicate-path failures.
func EnsureDirectories(workDir string, dirs []string) (created []string, failed []DirFailure) {
	for _, dir := range dirs {
		full := filepath.Join(workDir, dir)
		if err := os.MkdirAll(full, 0o755); err != nil {
			failed = append(failed, DirFailure{
				Path: dir,
				Err: mbaerrors.FilesystemError(mbaerrors.ErrCodeDirCreate,
					fmt.Sprintf("create %s: %v", dir, err), err),
			})
			continue
		}
		created = append(created, dir)
	}
	return created, failed
}
