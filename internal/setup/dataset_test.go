package setup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mbaerrors "github.com/IRUMVAEmmanuel1/Market-Basket-Analysis-using-Association-Rules/internal/errors"
)

func TestInspectDataset_PresentAndReadable(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "groceries.csv")
	content := "citrus fruit,semi-finished bread,margarine,ready soups\nsecond line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	info := InspectDataset(path)

	assert.True(t, info.Found)
	assert.Equal(t, int64(len(content)), info.Size)
	assert.Equal(t, "citrus fruit,semi-finished bread,margarine,ready s", info.Preview)
	assert.NoError(t, info.ReadErr)
}

func TestInspectDataset_PreviewTruncatesAt50Runes(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "groceries.csv")
	long := strings.Repeat("a", 80)
	require.NoError(t, os.WriteFile(path, []byte(long+"\n"), 0o644))

	info := InspectDataset(path)

	assert.Len(t, []rune(info.Preview), 50)
}

func TestInspectDataset_ShortFirstLineKeptWhole(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "groceries.csv")
	require.NoError(t, os.WriteFile(path, []byte("milk,bread\n"), 0o644))

	info := InspectDataset(path)

	assert.Equal(t, "milk,bread", info.Preview)
}

func TestInspectDataset_Absent(t *testing.T) {
	info := InspectDataset(filepath.Join(t.TempDir(), "groceries.csv"))

	assert.False(t, info.Found)
	assert.Zero(t, info.Size)
	assert.NoError(t, info.ReadErr)
}

func TestInspectDataset_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "groceries.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	info := InspectDataset(path)

	assert.True(t, info.Found)
	assert.Zero(t, info.Size)
	assert.Empty(t, info.Preview)
}

func TestInspectDataset_Unreadable(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("Skipping permission test when running as root")
	}

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "groceries.csv")
	require.NoError(t, os.WriteFile(path, []byte("data\n"), 0o000))

	info := InspectDataset(path)

	assert.False(t, info.Found)
	assert.Error(t, info.ReadErr)
}

func TestInspectDataset_ReadErrorIsCoded(t *testing.T) {
	// A directory passes the stat but fails the first-line read.
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "groceries.csv")
	require.NoError(t, os.Mkdir(path, 0o755))

	info := InspectDataset(path)

	assert.False(t, info.Found)
	require.Error(t, info.ReadErr)

	var se *mbaerrors.SetupError
	require.ErrorAs(t, info.ReadErr, &se)
	assert.Equal(t, mbaerrors.ErrCodeDatasetRead, se.Code)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "héll", truncate("héllo", 4))
}
