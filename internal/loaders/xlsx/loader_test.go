package xlsx

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "age"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "alice"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 30))

	_, err := f.NewSheet("Summary")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Summary", "A1", "total"))
	require.NoError(t, f.SetCellValue("Summary", "B1", 1))

	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func TestLoader_Load(t *testing.T) {
	ctx := context.Background()
	loader := New()

	t.Run("sheets become blocks of tab-joined rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "book.xlsx")
		writeWorkbook(t, path)

		doc, err := loader.Load(ctx, path)
		require.NoError(t, err)

		assert.Equal(t, "Sheet Sheet1:\nname\tage\nalice\t30\n\nSheet Summary:\ntotal\t1", doc.Content)
		assert.Equal(t, 2, doc.Metadata["sheet_count"])
		assert.Equal(t, "xlsx", doc.Metadata["file_type"])
	})

	t.Run("empty workbook", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.xlsx")
		f := excelize.NewFile()
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		doc, err := loader.Load(ctx, path)
		require.NoError(t, err)
		assert.Empty(t, doc.Content)
		assert.Equal(t, 1, doc.Metadata["sheet_count"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load(ctx, filepath.Join(t.TempDir(), "gone.xlsx"))
		assert.Error(t, err)
	})

	t.Run("not a workbook", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fake.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0600))

		_, err := loader.Load(ctx, path)
		assert.Error(t, err)
	})
}
