package bankimport

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/domain/distractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newWorkbook(t *testing.T, rows [][]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}
	return f
}

func workbookRows() [][]interface{} {
	return [][]interface{}{
		{"type", "band", "word"},
		{"vocabulary", "simple", "cat"},
		{"Vocabulary", "Simple", " sun "},
		{"vocabulary", "advanced", "meticulous"},
		{"grammar", "moderate", "has been"},
		{"grammar", "expert", "whom"},
		{"grammar", "simple", ""},
		{"vocabulary", "simple", "CAT"},
	}
}

func TestImport(t *testing.T) {
	t.Parallel()
	f := newWorkbook(t, workbookRows())
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	bank, result, err := Import(buf, DefaultImportConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "sun"}, bank.Words(domain.ActivityVocabulary, distractor.BandSimple))
	assert.Equal(t, []string{"meticulous"}, bank.Words(domain.ActivityVocabulary, distractor.BandAdvanced))
	assert.Equal(t, []string{"has been"}, bank.Words(domain.ActivityGrammar, distractor.BandModerate))

	assert.Equal(t, 7, result.TotalProcessed)
	assert.Equal(t, 4, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "Row 6")
	assert.Contains(t, result.Errors[1], "Row 7")
	assert.Contains(t, result.Errors[2], "Row 8")
}

func TestImportFile(t *testing.T) {
	t.Parallel()
	f := newWorkbook(t, workbookRows())
	path := filepath.Join(t.TempDir(), "bank.xlsx")
	require.NoError(t, f.SaveAs(path))

	bank, result, err := ImportFile(path, DefaultImportConfig())
	require.NoError(t, err)
	assert.Equal(t, 4, result.Imported)
	assert.Equal(t, 4, bank.Size())

	_, _, err = ImportFile(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultImportConfig())
	assert.Error(t, err)
}

func TestImport_InvalidColumn(t *testing.T) {
	t.Parallel()
	f := newWorkbook(t, workbookRows())
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	cfg := DefaultImportConfig()
	cfg.WordColumn = "1"
	_, _, err = Import(buf, cfg)
	assert.ErrorContains(t, err, "invalid column")
}

func TestImport_UnknownSheet(t *testing.T) {
	t.Parallel()
	f := newWorkbook(t, workbookRows())
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	cfg := DefaultImportConfig()
	cfg.SheetName = "Missing"
	_, _, err = Import(buf, cfg)
	assert.Error(t, err)
}

func TestWriteBankRoundTrip(t *testing.T) {
	t.Parallel()
	bank := distractor.Bank{
		domain.ActivityPhrase: {
			distractor.BandModerate: {"give up", "look after"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBank(&buf, bank))

	loaded, err := distractor.LoadBank(&buf)
	require.NoError(t, err)
	assert.Equal(t, bank, loaded)
}
