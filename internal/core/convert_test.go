package core

import (
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/stockview/internal/schema"
)

// ----------------------------------------------------------------------------
// ToDecimal Tests
// ----------------------------------------------------------------------------

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue string
	}{
		{name: "positive integer", input: "123", wantValid: true, wantValue: "123"},
		{name: "zero", input: "0", wantValid: true, wantValue: "0"},
		{name: "negative integer", input: "-456", wantValid: true, wantValue: "-456"},
		{name: "decimal number", input: "12.5", wantValid: true, wantValue: "12.5"},
		{name: "leading decimal point", input: ".99", wantValid: true, wantValue: "0.99"},
		{name: "scientific notation", input: "1.5e3", wantValid: true, wantValue: "1500"},
		{name: "dollar sign", input: "$1,234.56", wantValid: true, wantValue: "1234.56"},
		{name: "real sign", input: "R$ 10.00", wantValid: true, wantValue: "10"},
		{name: "euro sign", input: "€12", wantValid: true, wantValue: "12"},
		{name: "thousands separator", input: "1,234,567.89", wantValid: true, wantValue: "1234567.89"},
		{name: "accounting negative", input: "(123.45)", wantValid: true, wantValue: "-123.45"},
		{name: "surrounding whitespace", input: "  42  ", wantValid: true, wantValue: "42"},
		{name: "excel formula prefix", input: `="7"`, wantValid: true, wantValue: "7"},

		{name: "empty", input: "", wantValid: false},
		{name: "whitespace only", input: "   ", wantValid: false},
		{name: "letters", input: "abc", wantValid: false},
		{name: "mixed garbage", input: "12abc", wantValid: false},
		{name: "decimal comma is not a thousands group", input: "1,5", wantValid: false},
		{name: "two decimal points", input: "1.2.3", wantValid: false},
		{name: "large exponent", input: "1e64", wantValid: true, wantValue: "1" + strings.Repeat("0", 64)},
		{name: "small exponent", input: "1e-64", wantValid: true, wantValue: "0." + strings.Repeat("0", 63) + "1"},
		{name: "huge exponent", input: "1e50000000", wantValid: false},
		{name: "huge negative exponent", input: "1e-50000000", wantValid: false},
		{name: "expansion over limit", input: "1e200", wantValid: false},
		{name: "too many digits", input: strings.Repeat("9", 129), wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDecimal(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ToDecimal(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if tt.wantValid && got.Decimal.String() != tt.wantValue {
				t.Errorf("ToDecimal(%q) = %s, want %s", tt.input, got.Decimal.String(), tt.wantValue)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ToDate Tests
// ----------------------------------------------------------------------------

func TestToDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		want      string
	}{
		{name: "iso date", input: "2099-01-01", wantValid: true, want: "2099-01-01"},
		{name: "iso date time drops time", input: "2024-03-05 17:45:00", wantValid: true, want: "2024-03-05"},
		{name: "rfc3339 drops time", input: "2024-03-05T23:59:59Z", wantValid: true, want: "2024-03-05"},
		{name: "us slash", input: "03/05/2024", wantValid: true, want: "2024-03-05"},
		{name: "day first when month first fails", input: "25/12/2024", wantValid: true, want: "2024-12-25"},
		{name: "month name", input: "Jan 15, 2024", wantValid: true, want: "2024-01-15"},
		{name: "compact", input: "20240115", wantValid: true, want: "2024-01-15"},
		{name: "excel serial", input: "45292", wantValid: true, want: "2024-01-01"},
		{name: "excel serial with time fraction", input: "45292.75", wantValid: true, want: "2024-01-01"},

		{name: "empty", input: "", wantValid: false},
		{name: "garbage", input: "not a date", wantValid: false},
		{name: "impossible month", input: "2024-13-01", wantValid: false},
		{name: "serial out of range", input: "99999999", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDate(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ToDate(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if !tt.wantValid {
				return
			}
			if s := got.Time.Format(dateLayout); s != tt.want {
				t.Errorf("ToDate(%q) = %s, want %s", tt.input, s, tt.want)
			}
			if got.Time.Location() != time.UTC || got.Time.Hour() != 0 || got.Time.Minute() != 0 {
				t.Errorf("ToDate(%q) = %v, want UTC midnight", tt.input, got.Time)
			}
		})
	}
}

func TestToDate_TwoDigitYear(t *testing.T) {
	got := ToDate("1/2/99")
	if !got.Valid {
		t.Fatal("ToDate(1/2/99) invalid")
	}
	if got.Time.Year() != 1999 {
		t.Errorf("year = %d, want 1999", got.Time.Year())
	}
}

// ----------------------------------------------------------------------------
// Coerce Tests
// ----------------------------------------------------------------------------

func TestCoerce_MarksGarbageMissing(t *testing.T) {
	raw := RawTable{
		Header: schema.Headers(schema.InventoryFieldSpecs),
		Rows: [][]string{
			{"A1", "Widget", "Tools", "Acme", "5", "10.0", "4.0", "2099-01-01", "2024-01-01", "2024-01-01"},
			{"A2", "Gadget", "Tools", "Acme", "abc", "x", "4.0", "soon", "2024-01-01", ""},
			{"A3", "Short"},
		},
	}

	table := Coerce(raw, schema.InventoryFieldSpecs)
	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}

	good := table.Records[0]
	if !good.Quantity.Valid || good.Quantity.Decimal.String() != "5" {
		t.Errorf("row 1 Quantity = %+v, want 5", good.Quantity)
	}
	if !good.UnitCost.Valid || good.UnitCost.Decimal.String() != "4" {
		t.Errorf("row 1 UnitCost = %+v, want 4", good.UnitCost)
	}
	if !good.ExpiryDate.Valid || good.ExpiryDate.Time.Format(dateLayout) != "2099-01-01" {
		t.Errorf("row 1 ExpiryDate = %+v, want 2099-01-01", good.ExpiryDate)
	}

	bad := table.Records[1]
	if bad.Quantity.Valid {
		t.Error("row 2 Quantity should be missing")
	}
	if bad.UnitPrice.Valid {
		t.Error("row 2 UnitPrice should be missing")
	}
	if !bad.UnitCost.Valid {
		t.Error("row 2 UnitCost should be present")
	}
	if bad.ExpiryDate.Valid {
		t.Error("row 2 ExpiryDate should be missing")
	}
	if bad.LastOutbound.Valid {
		t.Error("row 2 LastOutbound should be missing")
	}
	if bad.Product != "Gadget" || bad.Supplier != "Acme" {
		t.Errorf("row 2 text columns changed: %+v", bad)
	}

	short := table.Records[2]
	if short.Product != "Short" || short.Category != "" || short.Quantity.Valid {
		t.Errorf("short row = %+v, want padded with missing values", short)
	}
}

func TestCoerce_TextPassesThroughUnchanged(t *testing.T) {
	raw := RawTable{Rows: [][]string{{"  007 ", " Widget", "Tools ", "=\"Acme\""}}}
	rec := Coerce(raw, schema.InventoryFieldSpecs).Records[0]

	if rec.Code != "  007 " || rec.Product != " Widget" || rec.Category != "Tools " || rec.Supplier != "=\"Acme\"" {
		t.Errorf("text columns were modified: %+v", rec)
	}
}

func TestCoerce_Idempotent(t *testing.T) {
	raw := RawTable{
		Header: schema.Headers(schema.InventoryFieldSpecs),
		Rows: [][]string{
			{"A1", "Widget", "Tools", "Acme", "5", "$10.00", "4.0", "45292", "03/05/2024", "2024-01-01 08:00:00"},
			{"A2", "Gadget", "Parts", "Beta", "abc", "", "(2.50)", "junk", "", "2024-02-01"},
		},
	}

	once := Coerce(raw, schema.InventoryFieldSpecs)
	twice := Coerce(once.Raw(), schema.InventoryFieldSpecs)

	first, second := once.Raw(), twice.Raw()
	if len(first.Rows) != len(second.Rows) {
		t.Fatalf("row count changed: %d vs %d", len(first.Rows), len(second.Rows))
	}
	for i := range first.Rows {
		if !equalStrings(first.Rows[i], second.Rows[i]) {
			t.Errorf("row %d changed on second coercion:\n  %q\n  %q", i, first.Rows[i], second.Rows[i])
		}
	}
	for i := range once.Records {
		a, b := once.Records[i], twice.Records[i]
		if a.Quantity.Valid != b.Quantity.Valid || a.ExpiryDate.Valid != b.ExpiryDate.Valid {
			t.Errorf("row %d missing flags changed", i)
		}
		if a.UnitCost.Valid && !a.UnitCost.Decimal.Equal(b.UnitCost.Decimal) {
			t.Errorf("row %d UnitCost %s != %s", i, a.UnitCost.Decimal, b.UnitCost.Decimal)
		}
	}
}

func TestCleanCell(t *testing.T) {
	tests := map[string]string{
		"  hello  ":  "hello",
		`="00123"`:   "00123",
		"=42":        "42",
		`"quoted"`:   "quoted",
		"'single'":   "single",
		"":           "",
		"plain text": "plain text",
	}
	for in, want := range tests {
		if got := CleanCell(in); got != want {
			t.Errorf("CleanCell(%q) = %q, want %q", in, got, want)
		}
	}
}
