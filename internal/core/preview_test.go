package core

import (
	"testing"
	"time"

	"github.com/JonMunkholm/stockview/internal/schema"
)

func TestPresent(t *testing.T) {
	three := tableOf(
		Record{Code: "A1", Product: "Widget", Quantity: num("1")},
		Record{Code: "A2", Product: "Gadget", Quantity: num("2")},
		Record{Code: "A3", Product: "Bolt"},
	)

	tests := []struct {
		name          string
		table         Table
		expanded      bool
		wantMode      DisplayMode
		wantRows      int
		wantTruncated bool
	}{
		{"empty", tableOf(), false, ModeEmpty, 0, false},
		{"empty stays empty when expanded", tableOf(), true, ModeEmpty, 0, false},
		{"collapsed shows two", three, false, ModePreview, 2, true},
		{"expanded shows all", three, true, ModeFull, 3, false},
		{"short table not truncated", tableOf(three.Records[0]), false, ModePreview, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Present(ViewLowStock, tt.table, DefaultColumns[ViewLowStock], tt.expanded, DefaultPreviewRows)
			if p.Mode != tt.wantMode {
				t.Errorf("Mode = %s, want %s", p.Mode, tt.wantMode)
			}
			if len(p.Rows) != tt.wantRows {
				t.Errorf("len(Rows) = %d, want %d", len(p.Rows), tt.wantRows)
			}
			if p.Truncated != tt.wantTruncated {
				t.Errorf("Truncated = %v, want %v", p.Truncated, tt.wantTruncated)
			}
			if p.Total != tt.table.Len() {
				t.Errorf("Total = %d, want %d", p.Total, tt.table.Len())
			}
		})
	}
}

func TestPresent_EmptyMessages(t *testing.T) {
	want := map[ViewKind]string{
		ViewBase:     "No data found.",
		ViewLowStock: "No items with low stock.",
		ViewExpiring: "No products expiring soon.",
		ViewInactive: "All products had recent movement.",
	}
	for kind, msg := range want {
		p := Present(kind, tableOf(), DefaultColumns[kind], false, 2)
		if p.Message != msg {
			t.Errorf("%s message = %q, want %q", kind, p.Message, msg)
		}
		if p.Rows == nil {
			t.Errorf("%s Rows is nil, want empty slice", kind)
		}
	}
}

func TestPresent_ProjectsColumns(t *testing.T) {
	table := tableOf(Record{
		Code: "A1", Product: "Widget", Category: "Tools", Quantity: num("5"),
		ExpiryDate: day(2099, time.January, 1),
	})

	p := Present(ViewExpiring, table, DefaultColumns[ViewExpiring], false, 2)
	if want := []string{"Code", "Product", "Expiry Date"}; !equalStrings(p.Headers, want) {
		t.Errorf("Headers = %v, want %v", p.Headers, want)
	}
	if want := []string{"A1", "Widget", "2099-01-01"}; !equalStrings(p.Rows[0], want) {
		t.Errorf("Rows[0] = %v, want %v", p.Rows[0], want)
	}

	base := Present(ViewBase, table, nil, false, 2)
	if len(base.Headers) != len(schema.InventoryFieldSpecs) {
		t.Errorf("base view has %d columns, want %d", len(base.Headers), len(schema.InventoryFieldSpecs))
	}
	if base.Rows[0][4] != "5" || base.Rows[0][5] != "" {
		t.Errorf("base row = %v, want quantity 5 and blank unit price", base.Rows[0])
	}
}

func TestPresent_LocalizedHeaders(t *testing.T) {
	table := Table{Specs: schema.InventoryFieldSpecsPT, Records: []Record{{Code: "A1", Product: "Parafuso", Quantity: num("3")}}}
	p := Present(ViewLowStock, table, DefaultColumns[ViewLowStock], false, 2)
	if want := []string{"Código", "Produto", "Quantidade"}; !equalStrings(p.Headers, want) {
		t.Errorf("Headers = %v, want %v", p.Headers, want)
	}
}

func TestParseViewKind(t *testing.T) {
	for _, k := range ViewKinds {
		got, ok := ParseViewKind(string(k))
		if !ok || got != k {
			t.Errorf("ParseViewKind(%q) = %q, %v", k, got, ok)
		}
	}
	if _, ok := ParseViewKind("charts"); ok {
		t.Error("ParseViewKind accepted an unknown view")
	}
}
