package templates

import (
	"fmt"

	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/shopspring/decimal"
)

// palette colours the pie slices, repeating when there are more categories.
var palette = []string{"#3e7cb1", "#f39c12", "#27ae60", "#8e44ad", "#c0392b", "#16a085", "#d35400", "#2c3e50"}

// pieCircumference is 2πr for the r=25 ring the pie is drawn with.
const pieCircumference = 157.0796

// quantityBar is one row of the quantity chart.
type quantityBar struct {
	Label string
	Value string // "" when the quantity is missing
	Width string // bar width as an SVG percentage
}

// quantityBars scales every quantity to the largest one. Missing and
// non-positive quantities get a zero-width bar.
func quantityBars(series []core.ProductQuantity) []quantityBar {
	peak := decimal.Zero
	for _, s := range series {
		if s.Quantity.Valid && s.Quantity.Decimal.GreaterThan(peak) {
			peak = s.Quantity.Decimal
		}
	}

	bars := make([]quantityBar, len(series))
	for i, s := range series {
		label := s.Product
		if s.Code != "" {
			label = s.Code + " " + s.Product
		}
		bar := quantityBar{Label: label, Width: "0%"}
		if s.Quantity.Valid {
			bar.Value = s.Quantity.Decimal.String()
			if peak.IsPositive() && s.Quantity.Decimal.IsPositive() {
				pct := s.Quantity.Decimal.Div(peak).Mul(decimal.NewFromInt(100)).InexactFloat64()
				bar.Width = fmt.Sprintf("%.1f%%", pct)
			}
		}
		bars[i] = bar
	}
	return bars
}

// costSlice is one category of the cost chart. Dash and Offset draw the slice
// as an arc of the pie ring; both are empty for non-positive totals.
type costSlice struct {
	Category string
	Total    string
	Share    string
	Color    string
	Dash     string
	Offset   string
}

// costSlices computes legend rows and pie arcs. Only positive totals get an
// arc; every category stays in the legend.
func costSlices(series []core.CategoryCost) []costSlice {
	total := decimal.Zero
	for _, s := range series {
		if s.TotalCost.IsPositive() {
			total = total.Add(s.TotalCost)
		}
	}

	out := make([]costSlice, len(series))
	start := 0.0
	for i, s := range series {
		cs := costSlice{
			Category: s.Category,
			Total:    s.TotalCost.StringFixed(2),
			Share:    "-",
			Color:    palette[i%len(palette)],
		}
		if total.IsPositive() && s.TotalCost.IsPositive() {
			frac := s.TotalCost.Div(total)
			cs.Share = frac.Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
			length := frac.InexactFloat64() * pieCircumference
			cs.Dash = fmt.Sprintf("%.2f %.2f", length, pieCircumference)
			offset := -start
			if offset == 0 {
				offset = 0 // no "-0.00"
			}
			cs.Offset = fmt.Sprintf("%.2f", offset)
			start += length
		}
		out[i] = cs
	}
	return out
}
