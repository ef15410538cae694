package scraper

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	maxSheetNameLen = 31
	maxColumnWidth  = 50
	headerFill      = "366092"
	headerFont      = "FFFFFF"
	timestampLayout = "20060102_150405"
)

// WorkbookWriter persists a results table and returns the absolute file
// path and the sheet name actually used.
type WorkbookWriter interface {
	Write(table Table, path, sheet string) (string, string, error)
}

// XLSXWriter writes tables into xlsx workbooks inside an output directory.
// Writing to an existing workbook adds a new sheet.
type XLSXWriter struct {
	OutputDir string
	Now       func() time.Time
}

// NewXLSXWriter creates a writer rooted at outputDir.
func NewXLSXWriter(outputDir string) *XLSXWriter {
	return &XLSXWriter{OutputDir: outputDir, Now: time.Now}
}

func (w *XLSXWriter) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

// ResolvePath maps a user supplied workbook path into outputDir. An absolute
// path to an existing file is kept; anything else becomes its base name
// inside outputDir.
func ResolvePath(outputDir, p string) (string, error) {
	dir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(p) {
		if _, err := os.Stat(p); err == nil {
			return filepath.Clean(p), nil
		}
	}
	return filepath.Join(dir, filepath.Base(p)), nil
}

// Write saves table into the workbook at path, or into a new timestamped
// workbook when path is empty.
func (w *XLSXWriter) Write(table Table, path, sheet string) (string, string, error) {
	ts := w.now().Format(timestampLayout)
	if err := os.MkdirAll(w.OutputDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	if path == "" {
		path = fmt.Sprintf("scraping_%s.xlsx", ts)
	}
	file, err := ResolvePath(w.OutputDir, path)
	if err != nil {
		return "", "", err
	}
	if sheet == "" {
		sheet = "Scraping_" + ts
	}
	sheet = cleanSheetName(sheet)

	f, existing, err := openWorkbook(file)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = f.Close() }()

	if existing {
		sheet = uniqueSheetName(f.GetSheetList(), sheet)
	}
	if existing || sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			return "", "", fmt.Errorf("failed to add sheet %q: %w", sheet, err)
		}
	}
	if !existing && sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return "", "", err
		}
	}
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return "", "", err
	}
	f.SetActiveSheet(idx)

	if err := writeTable(f, sheet, table); err != nil {
		return "", "", err
	}
	if err := f.SaveAs(file); err != nil {
		return "", "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return file, sheet, nil
}

func openWorkbook(file string) (*excelize.File, bool, error) {
	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return excelize.NewFile(), false, nil
		}
		return nil, false, err
	}
	f, err := excelize.OpenFile(file)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open workbook %s: %w", file, err)
	}
	return f, true, nil
}

func writeTable(f *excelize.File, sheet string, table Table) error {
	widths := make([]int, len(table.Columns))
	rows := append([][]string{table.Columns}, table.Rows...)

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for c, v := range row {
			values[c] = v
			if n := utf8.RuneCountInString(v); c < len(widths) && n > widths[c] {
				widths[c] = n
			}
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	if len(table.Columns) == 0 {
		return nil
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: headerFont},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(table.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}

	for c, width := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(min(width+2, maxColumnWidth))); err != nil {
			return err
		}
	}
	return nil
}

// cleanSheetName replaces characters Excel rejects and truncates to 31 runes.
func cleanSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Sheet"
	}
	return truncate(name, maxSheetNameLen)
}

// uniqueSheetName appends _1, _2, ... until name is free, keeping the
// result within the sheet name limit.
func uniqueSheetName(existing []string, name string) string {
	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[strings.ToLower(s)] = true
	}
	if !taken[strings.ToLower(name)] {
		return name
	}
	for i := 1; ; i++ {
		suffix := fmt.Sprintf("_%d", i)
		candidate := truncate(name, maxSheetNameLen-len(suffix)) + suffix
		if !taken[strings.ToLower(candidate)] {
			return candidate
		}
	}
}
