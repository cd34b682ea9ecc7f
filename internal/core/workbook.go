package core

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DefaultMaxUploadSize is the default upload cap (10 MiB).
const DefaultMaxUploadSize int64 = 10 << 20

// AcceptedExtension is the only spreadsheet container accepted.
const AcceptedExtension = ".xlsx"

// CheckUpload rejects a file by name and size before any byte is decoded.
func CheckUpload(fileName string, size, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	if !strings.EqualFold(filepath.Ext(fileName), AcceptedExtension) {
		return fmt.Errorf("%w: not an xlsx workbook: %q", ErrFileTypeOrSize, fileName)
	}
	if size <= 0 {
		return fmt.Errorf("%w: empty file", ErrFileTypeOrSize)
	}
	if size > maxSize {
		return fmt.Errorf("%w: file too large: %d bytes exceeds limit of %d", ErrFileTypeOrSize, size, maxSize)
	}
	return nil
}

// Workbook is a decoded .xlsx file.
type Workbook struct {
	file *excelize.File
}

// OpenWorkbook decodes data as an .xlsx workbook.
// The caller must Close the returned workbook.
func OpenWorkbook(data []byte) (*Workbook, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrFileTypeOrSize)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: not an xlsx workbook: %v", ErrFileTypeOrSize, err)
	}
	return &Workbook{file: f}, nil
}

// Close releases the workbook's temporary resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Sheets returns the sheet names in workbook order.
func (w *Workbook) Sheets() []string {
	return w.file.GetSheetList()
}

// ReadSheet returns the named sheet as a raw table. The first non-blank row is
// the header; blank rows are skipped. A sheet with no rows at all is
// ErrEmptySheet. Cells are read unformatted so date
// serials reach the coercer intact.
func (w *Workbook) ReadSheet(name string) (RawTable, error) {
	if !slices.Contains(w.Sheets(), name) {
		return RawTable{}, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}

	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return RawTable{}, fmt.Errorf("read sheet %q: %w", name, err)
	}

	var raw RawTable
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if raw.Header == nil {
			raw.Header = row
			continue
		}
		raw.Rows = append(raw.Rows, row)
	}
	if raw.Header == nil {
		return RawTable{}, fmt.Errorf("%w %q", ErrEmptySheet, name)
	}
	return raw, nil
}

// isBlankRow reports whether every cell in row is empty or whitespace.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
