package core

import "github.com/JonMunkholm/stockview/internal/schema"

// DefaultPreviewRows is how many rows a collapsed view shows.
const DefaultPreviewRows = 2

// ViewKind names a derived view.
type ViewKind string

const (
	ViewBase     ViewKind = "base"
	ViewLowStock ViewKind = "low_stock"
	ViewExpiring ViewKind = "expiring"
	ViewInactive ViewKind = "inactive"
)

// ViewKinds lists the views in display order.
var ViewKinds = []ViewKind{ViewBase, ViewLowStock, ViewExpiring, ViewInactive}

// ParseViewKind maps a query value to a ViewKind.
func ParseViewKind(s string) (ViewKind, bool) {
	for _, k := range ViewKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Title returns the heading shown above a view.
func (k ViewKind) Title() string {
	switch k {
	case ViewBase:
		return "Filtered Table"
	case ViewLowStock:
		return "Low Stock"
	case ViewExpiring:
		return "Expiring Soon"
	case ViewInactive:
		return "Inactive Products (last 30 days)"
	}
	return string(k)
}

// emptyMessages are the positive statuses shown when a view has no rows.
var emptyMessages = map[ViewKind]string{
	ViewBase:     "No data found.",
	ViewLowStock: "No items with low stock.",
	ViewExpiring: "No products expiring soon.",
	ViewInactive: "All products had recent movement.",
}

// DefaultColumns is the projection used for each view when none is given.
// A nil projection shows every column.
var DefaultColumns = map[ViewKind][]schema.Column{
	ViewBase:     nil,
	ViewLowStock: {schema.Code, schema.Product, schema.Quantity},
	ViewExpiring: {schema.Code, schema.Product, schema.ExpiryDate},
	ViewInactive: {schema.Code, schema.Product, schema.LastOutbound},
}

// DisplayMode is how much of a view is shown.
type DisplayMode string

const (
	ModeEmpty   DisplayMode = "empty"
	ModePreview DisplayMode = "preview"
	ModeFull    DisplayMode = "full"
)

// Presentation is a view ready for rendering.
type Presentation struct {
	Kind      ViewKind    `json:"kind"`
	Title     string      `json:"title"`
	Mode      DisplayMode `json:"mode"`
	Message   string      `json:"message,omitempty"` // Set when Mode is ModeEmpty
	Headers   []string    `json:"headers"`
	Rows      [][]string  `json:"rows"`
	Total     int         `json:"total"`
	Expanded  bool        `json:"expanded"`
	Truncated bool        `json:"truncated"`
}

// Present decides how a view is displayed. An empty view yields ModeEmpty with
// its per-view message; otherwise the first previewRows rows are shown unless
// expanded is set. columns projects the view; nil shows every column.
func Present(kind ViewKind, t Table, columns []schema.Column, expanded bool, previewRows int) Presentation {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	if columns == nil {
		columns = make([]schema.Column, len(t.Specs))
		for i, spec := range t.Specs {
			columns[i] = spec.Column
		}
	}

	p := Presentation{
		Kind:     kind,
		Title:    kind.Title(),
		Total:    t.Len(),
		Expanded: expanded,
		Headers:  make([]string, len(columns)),
	}
	for i, col := range columns {
		p.Headers[i] = schema.HeaderFor(t.Specs, col)
	}

	if t.Len() == 0 {
		p.Mode = ModeEmpty
		p.Message = emptyMessages[kind]
		if p.Message == "" {
			p.Message = emptyMessages[ViewBase]
		}
		p.Rows = [][]string{}
		return p
	}

	records := t.Records
	p.Mode = ModeFull
	if !expanded {
		p.Mode = ModePreview
		if len(records) > previewRows {
			records = records[:previewRows]
			p.Truncated = true
		}
	}

	p.Rows = make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = rec.Format(col)
		}
		p.Rows[i] = row
	}
	return p
}
