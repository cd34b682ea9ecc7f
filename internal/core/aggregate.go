package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TotalCost returns Unit Cost × Quantity, missing if either operand is missing.
func (r Record) TotalCost() decimal.NullDecimal {
	if !r.UnitCost.Valid || !r.Quantity.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: r.UnitCost.Decimal.Mul(r.Quantity.Decimal), Valid: true}
}

// CategoryCost is one slice of the cost-by-category pie chart.
type CategoryCost struct {
	Category  string          `json:"category"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

// ProductQuantity is one bar of the quantity-by-product chart.
type ProductQuantity struct {
	Code     string              `json:"code"`
	Product  string              `json:"product"`
	Quantity decimal.NullDecimal `json:"quantity"`
}

// Charts holds the chart series for a base filtered table.
type Charts struct {
	QuantityByProduct []ProductQuantity `json:"quantityByProduct"`
	CostByCategory    []CategoryCost    `json:"costByCategory"`
}

// CostByCategory sums Total Cost per category, sorted by category.
// Rows with a missing Total Cost or an empty category are left out.
func CostByCategory(t Table) []CategoryCost {
	sums := make(map[string]decimal.Decimal)
	for _, rec := range t.Records {
		cost := rec.TotalCost()
		if !cost.Valid || rec.Category == "" {
			continue
		}
		sums[rec.Category] = sums[rec.Category].Add(cost.Decimal)
	}

	out := make([]CategoryCost, 0, len(sums))
	for category, sum := range sums {
		out = append(out, CategoryCost{Category: category, TotalCost: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}

// QuantityByProduct returns one entry per row, in table order.
func QuantityByProduct(t Table) []ProductQuantity {
	out := make([]ProductQuantity, len(t.Records))
	for i, rec := range t.Records {
		out[i] = ProductQuantity{Code: rec.Code, Product: rec.Product, Quantity: rec.Quantity}
	}
	return out
}

// BuildCharts computes both chart series from t.
func BuildCharts(t Table) Charts {
	return Charts{
		QuantityByProduct: QuantityByProduct(t),
		CostByCategory:    CostByCategory(t),
	}
}
