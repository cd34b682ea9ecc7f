package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRecord_TotalCost(t *testing.T) {
	tests := []struct {
		name      string
		rec       Record
		wantValid bool
		want      string
	}{
		{"both present", Record{UnitCost: num("12.5"), Quantity: num("4")}, true, "50"},
		{"zero quantity", Record{UnitCost: num("3"), Quantity: num("0")}, true, "0"},
		{"missing cost", Record{Quantity: num("4")}, false, ""},
		{"missing quantity", Record{UnitCost: num("12.5")}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rec.TotalCost()
			if got.Valid != tt.wantValid {
				t.Fatalf("TotalCost().Valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if tt.wantValid && !got.Decimal.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("TotalCost() = %s, want %s", got.Decimal, tt.want)
			}
		})
	}
}

func TestCostByCategory(t *testing.T) {
	table := tableOf(
		Record{Code: "A1", Category: "Tools", UnitCost: num("4"), Quantity: num("5")},
		Record{Code: "A2", Category: "Parts", UnitCost: num("0.10"), Quantity: num("3")},
		Record{Code: "A3", Category: "Tools", UnitCost: num("1.5"), Quantity: num("2")},
		Record{Code: "A4", Category: "Tools", UnitCost: num("9")},
		Record{Code: "A5", Category: "", UnitCost: num("1"), Quantity: num("1")},
	)

	got := CostByCategory(table)
	want := []CategoryCost{
		{Category: "Parts", TotalCost: decimal.RequireFromString("0.3")},
		{Category: "Tools", TotalCost: decimal.RequireFromString("23")},
	}
	if len(got) != len(want) {
		t.Fatalf("CostByCategory() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i].Category != want[i].Category || !got[i].TotalCost.Equal(want[i].TotalCost) {
			t.Errorf("entry %d = %s %s, want %s %s", i, got[i].Category, got[i].TotalCost, want[i].Category, want[i].TotalCost)
		}
	}
}

func TestCostByCategory_SumIsExact(t *testing.T) {
	var records []Record
	for i := 0; i < 10; i++ {
		records = append(records, Record{Category: "Tools", UnitCost: num("0.1"), Quantity: num("1")})
	}
	got := CostByCategory(tableOf(records...))
	if len(got) != 1 || got[0].TotalCost.String() != "1" {
		t.Errorf("ten times 0.1 = %+v, want exactly 1", got)
	}
}

func TestCostByCategory_Empty(t *testing.T) {
	if got := CostByCategory(tableOf()); len(got) != 0 {
		t.Errorf("CostByCategory(empty) = %+v", got)
	}
}

func TestQuantityByProduct(t *testing.T) {
	table := tableOf(
		Record{Code: "B2", Product: "Gadget", Quantity: num("7")},
		Record{Code: "A1", Product: "Widget"},
	)

	got := QuantityByProduct(table)
	if len(got) != 2 {
		t.Fatalf("got %d bars, want 2", len(got))
	}
	if got[0].Code != "B2" || got[0].Product != "Gadget" || !got[0].Quantity.Valid {
		t.Errorf("bar 0 = %+v", got[0])
	}
	if got[1].Code != "A1" || got[1].Quantity.Valid {
		t.Errorf("bar 1 = %+v, want missing quantity", got[1])
	}
}
