package core

import (
	"testing"
	"time"

	"github.com/JonMunkholm/stockview/internal/schema"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// englishHeader is the canonical header row as a plain slice.
var englishHeader = []any{
	"Code", "Product", "Category", "Supplier", "Quantity",
	"Unit Price", "Unit Cost", "Expiry Date", "Last Inbound Date", "Last Outbound Date",
}

// sheetFixture is one sheet of a test workbook: rows[0] is the header.
type sheetFixture struct {
	name string
	rows [][]any
}

// buildWorkbook writes the fixtures into an in-memory .xlsx file.
func buildWorkbook(t *testing.T, sheets ...sheetFixture) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				t.Fatalf("SetSheetName: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			t.Fatalf("NewSheet(%q): %v", sheet.name, err)
		}
		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName: %v", err)
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

// num returns a present decimal.
func num(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

// day returns a present date.
func day(y int, m time.Month, d int) pgtype.Date {
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// tableOf wraps records in a table with the English layout.
func tableOf(records ...Record) Table {
	return Table{Specs: schema.InventoryFieldSpecs, Records: records}
}

// codes returns the Code of every record, in order.
func codes(t Table) []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Code
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
