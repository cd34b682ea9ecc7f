package templates

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestToggleURL(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		kind  core.ViewKind
		want  string
	}{
		{
			name:  "expand from nothing",
			query: url.Values{},
			kind:  core.ViewLowStock,
			want:  "/report/u1?expand=low_stock",
		},
		{
			name:  "collapse keeps others",
			query: url.Values{"expand": {"base,low_stock"}, "category": {"Tools"}},
			kind:  core.ViewBase,
			want:  "/report/u1?category=Tools&expand=low_stock",
		},
		{
			name:  "repeated params merge",
			query: url.Values{"expand": {"base", "inactive"}},
			kind:  core.ViewExpiring,
			want:  "/report/u1?expand=base%2Cinactive%2Cexpiring",
		},
		{
			name:  "collapse last",
			query: url.Values{"expand": {"inactive"}},
			kind:  core.ViewInactive,
			want:  "/report/u1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rp := ReportParams{UploadID: "u1", Query: tt.query}
			if got := rp.ToggleURL(tt.kind); got != tt.want {
				t.Errorf("ToggleURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReportPage_EscapesWorkbookText(t *testing.T) {
	rep := &core.Report{
		Sheets: []string{"Stock"},
		Sheet:  "Stock",
		Options: []core.FilterOption{
			{Key: "Category", Param: "category", Values: []string{core.All, "<Tools>"}},
		},
		Selected:  map[string]string{"Category": core.All},
		Threshold: 10,
		Views: []core.Presentation{
			{Kind: core.ViewBase, Title: "Filtered Table", Mode: core.ModePreview,
				Headers: []string{"Code"}, Rows: [][]string{{"<script>x</script>"}}, Total: 3, Truncated: true},
			{Kind: core.ViewLowStock, Title: "Low Stock", Mode: core.ModeEmpty, Message: "No items with low stock."},
		},
	}

	out := renderString(t, ReportPage(ReportParams{
		UploadID: "u1", FileName: "stock.xlsx", Sheets: rep.Sheets, Sheet: "Stock",
		Report: rep, Query: url.Values{}, ThresholdMin: 1, ThresholdMax: 100,
	}))

	if strings.Contains(out, "<script>x</script>") || strings.Contains(out, "<Tools>") {
		t.Error("workbook text rendered unescaped")
	}
	for _, want := range []string{
		"&lt;script&gt;x&lt;/script&gt;",
		"No items with low stock.",
		"Showing 1 of 3",
		`href="/report/u1?expand=base#base"`,
		`name="threshold" min="1" max="100" value="10"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestReportPage_Error(t *testing.T) {
	out := renderString(t, ReportPage(ReportParams{
		UploadID: "u1", FileName: "stock.xlsx", Sheets: []string{"Cover", "Stock"}, Sheet: "Cover",
		Error: &core.UserMessage{Message: "Columns incorrect or out of order", Code: "SCH001"},
	}))
	for _, want := range []string{"Columns incorrect or out of order", "SCH001", `<option value="Stock">`} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestCostChart(t *testing.T) {
	out := renderString(t, CostChart([]core.CategoryCost{
		{Category: "Parts", TotalCost: decimal.NewFromInt(25)},
		{Category: "Tools", TotalCost: decimal.NewFromInt(75)},
	}))
	for _, want := range []string{
		`stroke-dasharray="39.27 157.08" stroke-dashoffset="0.00"`,
		`stroke-dasharray="117.81 157.08" stroke-dashoffset="-39.27"`,
		"25.0%", "75.0%", "75.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("chart missing %q", want)
		}
	}

	if out := renderString(t, CostChart(nil)); !strings.Contains(out, "No data found.") {
		t.Errorf("empty chart = %q", out)
	}
}

func TestQuantityChart(t *testing.T) {
	out := renderString(t, QuantityChart([]core.ProductQuantity{
		{Code: "A1", Product: "Widget", Quantity: decimal.NewNullDecimal(decimal.NewFromInt(10))},
		{Code: "A2", Product: "Gadget"},
	}))
	if !strings.Contains(out, `<rect width="100.0%"`) {
		t.Errorf("largest bar not full width: %s", out)
	}
	if !strings.Contains(out, `<rect width="0%"`) || !strings.Contains(out, "n/a") {
		t.Error("missing quantity not marked")
	}
}

func TestCostSlices_SkipsNonPositive(t *testing.T) {
	got := costSlices([]core.CategoryCost{
		{Category: "Refunds", TotalCost: decimal.NewFromInt(-5)},
		{Category: "Tools", TotalCost: decimal.NewFromInt(40)},
	})
	if got[0].Dash != "" || got[0].Share != "-" || got[0].Total != "-5.00" {
		t.Errorf("negative slice = %+v, want legend row only", got[0])
	}
	if got[1].Share != "100.0%" || got[1].Offset != "0.00" {
		t.Errorf("positive slice = %+v, want whole pie", got[1])
	}
}

func TestComponents_EscapeAttributes(t *testing.T) {
	const hostile = `"><img src=x>`
	rep := &core.Report{
		Options: []core.FilterOption{
			{Key: "Supplier", Param: "supplier", Values: []string{core.All, hostile}},
		},
		Selected: map[string]string{"Supplier": hostile},
	}
	page := renderString(t, ReportPage(ReportParams{UploadID: "u1", FileName: "s.xlsx", Report: rep, Query: url.Values{}}))
	bars := renderString(t, QuantityChart([]core.ProductQuantity{{Product: hostile}}))

	for name, out := range map[string]string{"report": page, "chart": bars} {
		if strings.Contains(out, hostile) {
			t.Errorf("%s rendered %q unescaped", name, hostile)
		}
		if !strings.Contains(out, "&#34;&gt;&lt;img src=x&gt;") {
			t.Errorf("%s missing escaped value", name)
		}
	}
	if !strings.Contains(page, `value="&#34;&gt;&lt;img src=x&gt;" selected>`) {
		t.Error("selected option not marked")
	}
}
