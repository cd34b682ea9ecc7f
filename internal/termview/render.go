// Package termview renders inventory reports for a terminal.
package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

// barWidth is the length of the longest quantity bar.
const barWidth = 30

// Printer writes reports to a terminal. Colors are dropped automatically when
// the writer is not a TTY.
type Printer struct {
	out io.Writer

	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	fail    lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	bar     lipgloss.Style
	border  lipgloss.Style
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		out:     w,
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		heading: r.NewStyle().Bold(true).MarginTop(1),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#A0AEC0")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		fail:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		cell:    r.NewStyle().Padding(0, 1),
		bar:     r.NewStyle().Foreground(lipgloss.Color("#F7B801")),
		border:  r.NewStyle().Foreground(lipgloss.Color("#999999")),
	}
}

// Report prints every view of rep followed by both charts.
func (p *Printer) Report(fileName string, rep *core.Report) error {
	var b strings.Builder

	b.WriteString(p.title.Render(fmt.Sprintf("Inventory report: %s (sheet %s)", fileName, rep.Sheet)))
	b.WriteString("\n")
	b.WriteString(p.muted.Render(p.summary(rep)))
	b.WriteString("\n")

	for _, v := range rep.Views {
		b.WriteString(p.view(v))
	}

	b.WriteString(p.quantityChart(rep.Charts.QuantityByProduct))
	b.WriteString(p.costChart(rep.Charts.CostByCategory))

	_, err := io.WriteString(p.out, b.String())
	return err
}

// Error prints a user-facing error message.
func (p *Printer) Error(msg core.UserMessage) error {
	line := p.fail.Render(fmt.Sprintf("[%s] %s", msg.Code, msg.Message))
	if msg.Action != "" {
		line += "\n" + p.muted.Render(msg.Action)
	}
	_, err := fmt.Fprintln(p.out, line)
	return err
}

func (p *Printer) summary(rep *core.Report) string {
	parts := make([]string, 0, len(core.FilterColumns)+2)
	for _, col := range core.FilterColumns {
		parts = append(parts, fmt.Sprintf("%s: %s", col, rep.Selected[col.String()]))
	}
	parts = append(parts,
		fmt.Sprintf("low stock <= %d", rep.Threshold),
		fmt.Sprintf("%d rows in sheet", rep.TotalRows),
	)
	return strings.Join(parts, " | ")
}

func (p *Printer) view(v core.Presentation) string {
	var b strings.Builder
	b.WriteString(p.heading.Render(v.Title))
	b.WriteString("\n")

	if v.Mode == core.ModeEmpty {
		b.WriteString(p.ok.Render(v.Message))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(p.table(v.Headers, v.Rows))
	b.WriteString("\n")
	if v.Truncated {
		b.WriteString(p.muted.Render(fmt.Sprintf("Showing %d of %d. Use -expand %s to show all.", len(v.Rows), v.Total, v.Kind)))
		b.WriteString("\n")
	}
	return b.String()
}

func (p *Printer) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			return p.cell
		})
	return t.String()
}

// quantityChart draws one horizontal bar per product, scaled to the largest
// quantity. Missing or negative quantities get no bar.
func (p *Printer) quantityChart(series []core.ProductQuantity) string {
	var b strings.Builder
	b.WriteString(p.heading.Render("Quantity by Product"))
	b.WriteString("\n")
	if len(series) == 0 {
		b.WriteString(p.ok.Render("No data found."))
		b.WriteString("\n")
		return b.String()
	}

	peak := decimal.Zero
	labelWidth := 0
	for _, s := range series {
		if s.Quantity.Valid && s.Quantity.Decimal.GreaterThan(peak) {
			peak = s.Quantity.Decimal
		}
		labelWidth = max(labelWidth, lipgloss.Width(productLabel(s)))
	}

	for _, s := range series {
		label := productLabel(s)
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(label))
		value := "n/a"
		bar := ""
		if s.Quantity.Valid {
			value = s.Quantity.Decimal.String()
			if peak.IsPositive() && s.Quantity.Decimal.IsPositive() {
				n := int(s.Quantity.Decimal.Div(peak).Mul(decimal.NewFromInt(barWidth)).Round(0).IntPart())
				bar = p.bar.Render(strings.Repeat("█", max(n, 1)))
			}
		}
		fmt.Fprintf(&b, "%s%s  %s %s\n", label, pad, bar, value)
	}
	return b.String()
}

// costChart lists each category's total cost and its share of the whole.
func (p *Printer) costChart(slices []core.CategoryCost) string {
	var b strings.Builder
	b.WriteString(p.heading.Render("Total Cost by Category"))
	b.WriteString("\n")
	if len(slices) == 0 {
		b.WriteString(p.ok.Render("No data found."))
		b.WriteString("\n")
		return b.String()
	}

	total := decimal.Zero
	for _, s := range slices {
		total = total.Add(s.TotalCost)
	}

	rows := make([][]string, 0, len(slices)+1)
	for _, s := range slices {
		share := "-"
		if total.IsPositive() && s.TotalCost.IsPositive() {
			share = s.TotalCost.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
		}
		rows = append(rows, []string{s.Category, s.TotalCost.StringFixed(2), share})
	}
	rows = append(rows, []string{"Total", total.StringFixed(2), ""})

	b.WriteString(p.table([]string{"Category", "Total cost", "Share"}, rows))
	b.WriteString("\n")
	return b.String()
}

func productLabel(s core.ProductQuantity) string {
	if s.Code == "" {
		return s.Product
	}
	return s.Code + " " + s.Product
}
