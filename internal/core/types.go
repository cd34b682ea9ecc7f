package core

import (
	"github.com/JonMunkholm/stockview/internal/schema"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// dateLayout is the canonical rendering of a date cell.
const dateLayout = "2006-01-02"

// Record is one typed inventory row.
// Numeric and date fields are missing when their Valid flag is false.
type Record struct {
	Code     string
	Product  string
	Category string
	Supplier string

	Quantity  decimal.NullDecimal
	UnitPrice decimal.NullDecimal
	UnitCost  decimal.NullDecimal

	ExpiryDate   pgtype.Date
	LastInbound  pgtype.Date
	LastOutbound pgtype.Date
}

// Text returns the value of a text column, or "" for other columns.
func (r Record) Text(col schema.Column) string {
	switch col {
	case schema.Code:
		return r.Code
	case schema.Product:
		return r.Product
	case schema.Category:
		return r.Category
	case schema.Supplier:
		return r.Supplier
	}
	return ""
}

// Number returns the value of a numeric column; other columns are missing.
func (r Record) Number(col schema.Column) decimal.NullDecimal {
	switch col {
	case schema.Quantity:
		return r.Quantity
	case schema.UnitPrice:
		return r.UnitPrice
	case schema.UnitCost:
		return r.UnitCost
	}
	return decimal.NullDecimal{}
}

// Date returns the value of a date column; other columns are missing.
func (r Record) Date(col schema.Column) pgtype.Date {
	switch col {
	case schema.ExpiryDate:
		return r.ExpiryDate
	case schema.LastInbound:
		return r.LastInbound
	case schema.LastOutbound:
		return r.LastOutbound
	}
	return pgtype.Date{}
}

// Format renders a cell for display. Missing values render as "".
func (r Record) Format(col schema.Column) string {
	switch col {
	case schema.Quantity, schema.UnitPrice, schema.UnitCost:
		return formatNumber(r.Number(col))
	case schema.ExpiryDate, schema.LastInbound, schema.LastOutbound:
		return formatDate(r.Date(col))
	default:
		return r.Text(col)
	}
}

func formatNumber(n decimal.NullDecimal) string {
	if !n.Valid {
		return ""
	}
	return n.Decimal.String()
}

func formatDate(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// RawTable is a sheet as read from the workbook: a header row and string cells.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Table is an ordered set of records sharing the canonical layout in Specs.
// Tables are never mutated in place; filters return new tables.
type Table struct {
	Specs   []schema.FieldSpec
	Records []Record
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Records)
}

// Where returns a new table holding the records for which keep returns true.
func (t Table) Where(keep func(Record) bool) Table {
	out := Table{Specs: t.Specs, Records: make([]Record, 0, len(t.Records))}
	for _, rec := range t.Records {
		if keep(rec) {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

// Raw renders the table back to strings in canonical form.
// Coerce(t.Raw(), t.Specs) reproduces t.
func (t Table) Raw() RawTable {
	raw := RawTable{
		Header: schema.Headers(t.Specs),
		Rows:   make([][]string, len(t.Records)),
	}
	for i, rec := range t.Records {
		row := make([]string, len(t.Specs))
		for j, spec := range t.Specs {
			row[j] = rec.Format(spec.Column)
		}
		raw.Rows[i] = row
	}
	return raw
}
