// Package schema defines the canonical column layout of an inventory sheet.
package schema

import (
	"fmt"
	"strings"
)

// FieldType represents the expected data type for a sheet column.
type FieldType int

const (
	FieldText FieldType = iota
	FieldNumeric
	FieldDate
)

// Column identifies a logical inventory column independent of its header text.
type Column int

const (
	Code Column = iota
	Product
	Category
	Supplier
	Quantity
	UnitPrice
	UnitCost
	ExpiryDate
	LastInbound
	LastOutbound
)

var columnNames = [...]string{
	Code:         "Code",
	Product:      "Product",
	Category:     "Category",
	Supplier:     "Supplier",
	Quantity:     "Quantity",
	UnitPrice:    "Unit Price",
	UnitCost:     "Unit Cost",
	ExpiryDate:   "Expiry Date",
	LastInbound:  "Last Inbound Date",
	LastOutbound: "Last Outbound Date",
}

// String returns the English header of the column.
func (c Column) String() string {
	if c < 0 || int(c) >= len(columnNames) {
		return fmt.Sprintf("Column(%d)", int(c))
	}
	return columnNames[c]
}

// ParseColumn maps a column key such as "category" or "Expiry Date" to its Column.
func ParseColumn(s string) (Column, bool) {
	key := normalizeKey(s)
	for i, name := range columnNames {
		if normalizeKey(name) == key {
			return Column(i), true
		}
	}
	return 0, false
}

func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// FieldSpec ties a logical column to the header text expected in the sheet.
type FieldSpec struct {
	Column Column
	Name   string // Header text (must match the sheet exactly)
	Type   FieldType
}

// InventoryFieldSpecs is the default canonical layout, in sheet order.
var InventoryFieldSpecs = []FieldSpec{
	{Column: Code, Name: "Code", Type: FieldText},
	{Column: Product, Name: "Product", Type: FieldText},
	{Column: Category, Name: "Category", Type: FieldText},
	{Column: Supplier, Name: "Supplier", Type: FieldText},
	{Column: Quantity, Name: "Quantity", Type: FieldNumeric},
	{Column: UnitPrice, Name: "Unit Price", Type: FieldNumeric},
	{Column: UnitCost, Name: "Unit Cost", Type: FieldNumeric},
	{Column: ExpiryDate, Name: "Expiry Date", Type: FieldDate},
	{Column: LastInbound, Name: "Last Inbound Date", Type: FieldDate},
	{Column: LastOutbound, Name: "Last Outbound Date", Type: FieldDate},
}

// InventoryFieldSpecsPT is the same layout with Portuguese headers.
var InventoryFieldSpecsPT = []FieldSpec{
	{Column: Code, Name: "Código", Type: FieldText},
	{Column: Product, Name: "Produto", Type: FieldText},
	{Column: Category, Name: "Categoria", Type: FieldText},
	{Column: Supplier, Name: "Fornecedor", Type: FieldText},
	{Column: Quantity, Name: "Quantidade", Type: FieldNumeric},
	{Column: UnitPrice, Name: "Preço Unitário", Type: FieldNumeric},
	{Column: UnitCost, Name: "Custo Unitário", Type: FieldNumeric},
	{Column: ExpiryDate, Name: "Data Validade", Type: FieldDate},
	{Column: LastInbound, Name: "Última Entrada", Type: FieldDate},
	{Column: LastOutbound, Name: "Última Saída", Type: FieldDate},
}

// ForHeaders returns the field specs for a header set: "en" or "pt".
func ForHeaders(set string) ([]FieldSpec, error) {
	switch strings.ToLower(set) {
	case "", "en":
		return InventoryFieldSpecs, nil
	case "pt":
		return InventoryFieldSpecsPT, nil
	default:
		return nil, fmt.Errorf("unknown header set %q", set)
	}
}

// Headers returns the header names of specs in order.
func Headers(specs []FieldSpec) []string {
	out := make([]string, len(specs))
	for i, spec := range specs {
		out[i] = spec.Name
	}
	return out
}

// HeaderFor returns the header text used for col in specs, falling back to
// the English name.
func HeaderFor(specs []FieldSpec, col Column) string {
	for _, spec := range specs {
		if spec.Column == col {
			return spec.Name
		}
	}
	return col.String()
}
