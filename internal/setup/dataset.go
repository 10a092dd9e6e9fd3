package setup

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	mbaerrors "github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/errors"
)

// previewLimit caps the first-line preview length in runes.
const previewLimit = 50

// DatasetInfo is the result of the dataset presence check.
type DatasetInfo struct {
	Found   bool
	Size    int64
	Preview string
	ReadErr error
}

// InspectDataset stats the dataset file and reads a first-line preview.
// A stat failure means not found; a read failure after a successful stat
// downgrades the result to not found and records the error.
func InspectDataset(path string) DatasetInfo {
	info, err := os.Stat(path)
	if err != nil {
		return DatasetInfo{}
	}

	f, err := os.Open(path)
	if err != nil {
		return DatasetInfo{ReadErr: datasetReadError(path, err)}
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return DatasetInfo{ReadErr: datasetReadError(path, err)}
		}
		// Empty file: present, zero preview.
		return DatasetInfo{Found: true, Size: info.Size()}
	}

	return DatasetInfo{
		Found:   true,
		Size:    info.Size(),
		Preview: truncate(strings.TrimSpace(scanner.Text()), previewLimit),
	}
}

// datasetReadError codes a post-stat read failure.
func datasetReadError(path string, err error) error {
	return mbaerrors.FilesystemError(mbaerrors.ErrCodeDatasetRead,
		fmt.Sprintf("read %s: %v", path, err), err)
}

// truncate limits s to n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
