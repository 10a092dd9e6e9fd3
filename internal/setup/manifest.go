package setup

import (
	"fmt"
	"os"

	mbaerrors "github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/errors"
)

// WriteManifest writes the requirements manifest, unconditionally
// overwriting any existing file.
func WriteManifest(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return mbaerrors.FilesystemError(mbaerrors.ErrCodeManifestWrite,
			fmt.Sprintf("write %s: %v", path, err), err)
	}
	return nil
}
