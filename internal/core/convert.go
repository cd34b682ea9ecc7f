package core

// convert.go turns raw sheet cells into typed values.
//
// These functions handle the messy reality of hand-maintained spreadsheets:
//   - Multiple date formats (US, EU, ISO, date-time, Excel serial numbers)
//   - Currency symbols and thousand separators in numbers
//   - Excel formula prefixes (="value")
//
// Nothing here returns an error. A cell that cannot be parsed comes back with
// Valid=false and is treated as missing by every downstream filter.

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/stockview/internal/schema"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// thousandsRegex matches numbers grouped with comma thousand separators.
var thousandsRegex = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d*)?$`)

// serialRegex matches an Excel date serial as stored in the sheet XML.
var serialRegex = regexp.MustCompile(`^\d+(\.\d+)?$`)

// maxNumericLen caps both the cleaned cell and its plain decimal rendering.
// Larger values are treated as unparseable, so a cell like 1e50000000 never
// reaches the report as a fifty-million-digit string.
const maxNumericLen = 128

// maxExcelSerial is 9999-12-31, the last date Excel can represent.
const maxExcelSerial = 2958465

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
var TwoDigitYearPivot = 20

var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02T15:04:05",
		time.RFC3339, time.RFC3339Nano,
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"1/2/2006 15:04", "1/2/2006 15:04:05",
		// Day-first forms only match once the month-first forms above have failed.
		"2/1/2006", "02/01/2006", "2.1.2006", "02.01.2006",
		"Jan 2, 2006", "2 Jan 2006", "January 2, 2006", "2 January 2006",
		"20060102",
	}
)

// ToDecimal converts a cell to a nullable decimal.
// Handles currency symbols, thousands separators, and accounting format (parentheses for negative).
func ToDecimal(s string) decimal.NullDecimal {
	s = CleanCell(s)
	if s == "" {
		return decimal.NullDecimal{}
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.TrimSpace(s)

	if thousandsRegex.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}

	if isNegative {
		s = "-" + s
	}

	if len(s) > maxNumericLen || !numericRegex.MatchString(s) {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	if renderedLen(d) > maxNumericLen {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// renderedLen is the approximate length of d.String() without building it.
func renderedLen(d decimal.Decimal) int {
	digits, exp := d.NumDigits(), int(d.Exponent())
	if exp >= 0 {
		return digits + exp
	}
	return max(digits, -exp) + 2
}

// ToDate converts a cell to a nullable calendar date at UTC midnight.
// Supports multiple text layouts, 2-digit years with pivot, and Excel date serials.
func ToDate(s string) pgtype.Date {
	s = CleanCell(s)
	if s == "" {
		return pgtype.Date{}
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOf(t)
		}
	}

	currentYear := time.Now().Year()
	pivotYear := currentYear + TwoDigitYearPivot

	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return dateOf(t)
		}
	}

	if serialRegex.MatchString(s) {
		serial, err := strconv.ParseFloat(s, 64)
		if err != nil || serial < 1 || serial > maxExcelSerial {
			return pgtype.Date{}
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return pgtype.Date{}
		}
		return dateOf(t)
	}

	return pgtype.Date{}
}

// dateOf drops the time of day, keeping the calendar date as written.
func dateOf(t time.Time) pgtype.Date {
	y, m, d := t.Date()
	return pgtype.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// CleanCell removes common spreadsheet artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// Coerce converts a validated raw table into typed records.
// Numeric and date columns that fail to parse become missing; text columns
// pass through unchanged. Short rows are padded with missing values.
func Coerce(raw RawTable, specs []schema.FieldSpec) Table {
	t := Table{Specs: specs, Records: make([]Record, 0, len(raw.Rows))}
	for _, row := range raw.Rows {
		var rec Record
		for i, spec := range specs {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			setField(&rec, spec, cell)
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

// setField assigns a raw cell to the record field named by spec.
func setField(rec *Record, spec schema.FieldSpec, cell string) {
	switch spec.Column {
	case schema.Code:
		rec.Code = cell
	case schema.Product:
		rec.Product = cell
	case schema.Category:
		rec.Category = cell
	case schema.Supplier:
		rec.Supplier = cell
	case schema.Quantity:
		rec.Quantity = ToDecimal(cell)
	case schema.UnitPrice:
		rec.UnitPrice = ToDecimal(cell)
	case schema.UnitCost:
		rec.UnitCost = ToDecimal(cell)
	case schema.ExpiryDate:
		rec.ExpiryDate = ToDate(cell)
	case schema.LastInbound:
		rec.LastInbound = ToDate(cell)
	case schema.LastOutbound:
		rec.LastOutbound = ToDate(cell)
	}
}
