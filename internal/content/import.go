package content

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/palabra-app/palabra/internal/catalog"
)

// ImportConfig controls a spreadsheet import. Columns are 0-based indices
// into each row: front (Spanish side), back (English side) and an optional
// example sentence.
type ImportConfig struct {
	FrontColumn   int
	BackColumn    int
	ExampleColumn int
	Sheet         string // xlsx sheet name; empty means the first sheet
	SkipHeader    bool
}

// DefaultImportConfig returns the conventional word-list layout: front in
// column A, back in column B, example in column C, header row skipped.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		FrontColumn:   0,
		BackColumn:    1,
		ExampleColumn: 2,
		SkipHeader:    true,
	}
}

// ImportResult summarizes an import run.
type ImportResult struct {
	RowsRead int
	Imported int
	Skipped  int
	Cards    []catalog.Card
}

// Import reads a word list from an xlsx or csv file and returns it as
// canonical flashcard data. Rows missing either side of the pair are
// skipped, not fatal.
func Import(path string, cfg ImportConfig) (*ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return importCSV(path, cfg)
	case ".xlsx":
		return importXLSX(path, cfg)
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}

// WriteCards writes imported cards as a canonical module data file.
func WriteCards(path string, cards []catalog.Card) error {
	out, err := json.MarshalIndent(emptyAsList(cards), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0o644)
}

func importXLSX(path string, cfg ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := cfg.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	res := &ImportResult{}
	for i, row := range rows {
		if i == 0 && cfg.SkipHeader {
			continue
		}
		res.addRow(row, cfg)
	}
	return res, nil
}

func importCSV(path string, cfg ImportConfig) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // word lists are ragged in practice
	reader.LazyQuotes = true

	res := &ImportResult{}
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if first && cfg.SkipHeader {
			first = false
			continue
		}
		first = false
		res.addRow(row, cfg)
	}
	return res, nil
}

func (r *ImportResult) addRow(row []string, cfg ImportConfig) {
	r.RowsRead++
	front := cell(row, cfg.FrontColumn)
	back := cell(row, cfg.BackColumn)
	if front == "" || back == "" {
		r.Skipped++
		return
	}
	r.Cards = append(r.Cards, catalog.Card{
		Front:   front,
		Back:    back,
		Example: cell(row, cfg.ExampleColumn),
	})
	r.Imported++
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
