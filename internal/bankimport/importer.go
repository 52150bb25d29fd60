// Package bankimport builds distractor fallback banks from spreadsheets.
package bankimport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/domain/distractor"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is returned when a workbook has no sheets to read.
var ErrNoSheets = errors.New("workbook has no sheets")

// ImportConfig defines the import configuration
type ImportConfig struct {
	SheetName  string // Sheet to import; empty means the first sheet
	TypeColumn string // Column with the activity type
	BandColumn string // Column with the difficulty band
	WordColumn string // Column with the distractor word or phrase
	StartRow   int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		TypeColumn: "A",
		BandColumn: "B",
		WordColumn: "C",
		StartRow:   2, // skip header
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportFile reads a bank from an .xlsx file on disk.
func ImportFile(path string, config ImportConfig) (distractor.Bank, *ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	return importWorkbook(f, config)
}

// Import reads a bank from an .xlsx stream.
func Import(r io.Reader, config ImportConfig) (distractor.Bank, *ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel stream: %w", err)
	}
	defer f.Close()

	return importWorkbook(f, config)
}

type columns struct {
	activity, band, word int
}

func importWorkbook(f *excelize.File, config ImportConfig) (distractor.Bank, *ImportResult, error) {
	cols, err := resolveColumns(config)
	if err != nil {
		return nil, nil, err
	}

	sheet := config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, ErrNoSheets
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %w", err)
	}

	bank := distractor.Bank{}
	seen := map[string]struct{}{}
	result := &ImportResult{Errors: make([]string, 0)}

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		if isBlank(row) {
			continue
		}

		result.TotalProcessed++
		rowNum := i + 1

		activity, band, word, err := parseRow(row, cols)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		key := string(activity) + "\x00" + string(band) + "\x00" + strings.ToLower(word)
		if _, dup := seen[key]; dup {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: duplicate word %q", rowNum, word))
			continue
		}
		seen[key] = struct{}{}

		if bank[activity] == nil {
			bank[activity] = map[distractor.Band][]string{}
		}
		bank[activity][band] = append(bank[activity][band], word)
		result.Imported++
	}

	return bank, result, nil
}

func resolveColumns(config ImportConfig) (columns, error) {
	var cols columns
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{config.TypeColumn, &cols.activity},
		{config.BandColumn, &cols.band},
		{config.WordColumn, &cols.word},
	} {
		n, err := excelize.ColumnNameToNumber(c.name)
		if err != nil {
			return columns{}, fmt.Errorf("invalid column %q: %w", c.name, err)
		}
		*c.dst = n - 1
	}
	return cols, nil
}

func parseRow(row []string, cols columns) (domain.ActivityType, distractor.Band, string, error) {
	activity := strings.ToLower(cell(row, cols.activity))
	bandName := strings.ToLower(cell(row, cols.band))
	word := cell(row, cols.word)

	if activity == "" {
		return "", "", "", fmt.Errorf("activity type cannot be empty")
	}
	if word == "" {
		return "", "", "", fmt.Errorf("word cannot be empty")
	}
	band, err := distractor.ParseBand(bandName)
	if err != nil {
		return "", "", "", err
	}
	return domain.ActivityType(activity), band, word, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// WriteBank encodes a bank in the format distractor.LoadBank reads.
func WriteBank(w io.Writer, bank distractor.Bank) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bank); err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}
	return nil
}
