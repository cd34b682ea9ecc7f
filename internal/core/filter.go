package core

// filter.go derives views from an inventory table.
//
// Equality filters compose by sequential application (logical AND). The
// threshold and date-window filters are never composed with each other: each
// derived view starts from the same base filtered table.

import (
	"sort"
	"strings"
	"time"

	"github.com/JonMunkholm/stockview/internal/schema"
	"github.com/shopspring/decimal"
)

// All is the selection sentinel meaning "no constraint on this column".
const All = "All"

// Default windows for the date views.
const (
	DefaultExpiryWindow     = 30 * 24 * time.Hour
	DefaultInactivityWindow = 30 * 24 * time.Hour
)

// FilterColumns are the columns offered as equality filters, in display order.
var FilterColumns = []schema.Column{schema.Category, schema.Supplier, schema.Product}

// Selection maps a filterable column to its chosen value or All.
type Selection map[schema.Column]string

// Value returns the selected value for col, All when unset.
func (s Selection) Value(col schema.Column) string {
	if v, ok := s[col]; ok && v != "" {
		return v
	}
	return All
}

// FilterEqual keeps the records whose col equals value. All is a no-op.
func FilterEqual(t Table, col schema.Column, value string) Table {
	if value == All {
		return t
	}
	return t.Where(func(r Record) bool {
		return r.Text(col) == value
	})
}

// ApplySelection applies every equality filter in sel.
func ApplySelection(t Table, sel Selection) Table {
	for col, value := range sel {
		if value == "" {
			continue
		}
		t = FilterEqual(t, col, value)
	}
	return t
}

// FilterDate keeps the records whose date in col is present and satisfies pred.
func FilterDate(t Table, col schema.Column, pred func(time.Time) bool) Table {
	return t.Where(func(r Record) bool {
		d := r.Date(col)
		return d.Valid && pred(d.Time)
	})
}

// FilterStock keeps the records with Quantity <= limit, or > limit when
// lessEqual is false. Missing quantities never match either side.
func FilterStock(t Table, limit decimal.Decimal, lessEqual bool) Table {
	return t.Where(func(r Record) bool {
		if !r.Quantity.Valid {
			return false
		}
		if lessEqual {
			return r.Quantity.Decimal.LessThanOrEqual(limit)
		}
		return r.Quantity.Decimal.GreaterThan(limit)
	})
}

// LowStock keeps the records with Quantity <= threshold.
func LowStock(t Table, threshold int) Table {
	return FilterStock(t, decimal.NewFromInt(int64(threshold)), true)
}

// ExpiringSoon keeps the records whose Expiry Date is on or before now+window.
func ExpiringSoon(t Table, now time.Time, window time.Duration) Table {
	cutoff := wallClock(now).Add(window)
	return FilterDate(t, schema.ExpiryDate, func(d time.Time) bool {
		return !d.After(cutoff)
	})
}

// Inactive keeps the records whose Last Outbound Date is on or before now-window.
func Inactive(t Table, now time.Time, window time.Duration) Table {
	cutoff := wallClock(now).Add(-window)
	return FilterDate(t, schema.LastOutbound, func(d time.Time) bool {
		return !d.After(cutoff)
	})
}

// wallClock re-reads now's local wall time as UTC so it compares against
// dates that were stored as written, without a zone.
func wallClock(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
}

// FilterOption lists the choices offered for one equality filter.
type FilterOption struct {
	Column schema.Column `json:"-"`
	Key    string        `json:"column"`
	Param  string        `json:"param"`
	Values []string      `json:"values"`
}

// FilterParam is the query parameter carrying the selection for col.
func FilterParam(col schema.Column) string {
	return strings.ToLower(col.String())
}

// FilterOptions returns, for each filter column, All followed by the sorted
// distinct non-empty values present in t.
func FilterOptions(t Table) []FilterOption {
	opts := make([]FilterOption, 0, len(FilterColumns))
	for _, col := range FilterColumns {
		seen := make(map[string]struct{})
		for _, rec := range t.Records {
			if v := rec.Text(col); v != "" {
				seen[v] = struct{}{}
			}
		}
		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)
		opts = append(opts, FilterOption{
			Column: col,
			Key:    col.String(),
			Param:  FilterParam(col),
			Values: append([]string{All}, values...),
		})
	}
	return opts
}
