package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/stockview/internal/config"
	"github.com/JonMunkholm/stockview/internal/schema"
)

// Threshold bounds for the low-stock view.
const (
	DefaultLowStockThreshold = 10
	MinLowStockThreshold     = 1
	MaxLowStockThreshold     = 100
)

// Settings tunes report generation.
type Settings struct {
	DefaultThreshold int
	MinThreshold     int
	MaxThreshold     int
	ExpiryWindow     time.Duration
	InactivityWindow time.Duration
	PreviewRows      int
}

// DefaultSettings returns the stock report settings.
func DefaultSettings() Settings {
	return Settings{
		DefaultThreshold: DefaultLowStockThreshold,
		MinThreshold:     MinLowStockThreshold,
		MaxThreshold:     MaxLowStockThreshold,
		ExpiryWindow:     DefaultExpiryWindow,
		InactivityWindow: DefaultInactivityWindow,
		PreviewRows:      DefaultPreviewRows,
	}
}

// SettingsFromConfig converts the report section of the application config.
func SettingsFromConfig(cfg config.ReportConfig) Settings {
	return Settings{
		DefaultThreshold: cfg.LowStockDefault,
		MinThreshold:     cfg.LowStockMin,
		MaxThreshold:     cfg.LowStockMax,
		ExpiryWindow:     cfg.ExpiryWindow(),
		InactivityWindow: cfg.InactivityWindow(),
		PreviewRows:      cfg.PreviewRows,
	}
}

// Request is everything a report depends on besides the upload bytes.
type Request struct {
	Sheet     string            // Empty selects the first sheet
	Selection Selection         // Equality filters; missing columns mean All
	Threshold int               // Low-stock threshold; 0 selects the default
	Expand    map[ViewKind]bool // Per-view expand toggles
}

// Report is the rendered output of one interaction cycle.
type Report struct {
	Sheets    []string          `json:"sheets"`
	Sheet     string            `json:"sheet"`
	Options   []FilterOption    `json:"filters"`
	Selected  map[string]string `json:"selected"`
	Threshold int               `json:"threshold"`
	TotalRows int               `json:"totalRows"` // Rows in the sheet before filtering
	Views     []Presentation    `json:"views"`
	Charts    Charts            `json:"charts"`
}

// View returns the presentation of kind, if present.
func (r *Report) View(kind ViewKind) (Presentation, bool) {
	for _, v := range r.Views {
		if v.Kind == kind {
			return v, true
		}
	}
	return Presentation{}, false
}

// Service builds inventory reports.
type Service struct {
	specs    []schema.FieldSpec
	settings Settings
	limiter  *UploadLimiter
	now      func() time.Time
}

// NewService creates a Service validating sheets against specs.
// A nil limiter allows unbounded concurrent decoding.
func NewService(specs []schema.FieldSpec, settings Settings, limiter *UploadLimiter) *Service {
	if len(specs) == 0 {
		specs = schema.InventoryFieldSpecs
	}
	return &Service{
		specs:    specs,
		settings: settings,
		limiter:  limiter,
		now:      time.Now,
	}
}

// Specs returns the canonical layout the service validates against.
func (s *Service) Specs() []schema.FieldSpec {
	return s.specs
}

// Settings returns the service's report settings.
func (s *Service) Settings() Settings {
	return s.settings
}

// Limiter returns the decode limiter, or nil.
func (s *Service) Limiter() *UploadLimiter {
	return s.limiter
}

// Inspect decodes data and returns its sheet names. Used at upload time to
// reject anything that is not a readable workbook.
func (s *Service) Inspect(ctx context.Context, data []byte) ([]string, error) {
	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	wb, err := OpenWorkbook(data)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrFileTypeOrSize)
	}
	return sheets, nil
}

// BuildReport runs the whole pipeline over data. It is a pure function of its
// inputs apart from reading the clock once per date view. Any panic raised
// while processing is returned as ErrUnexpectedProcessing.
func (s *Service) BuildReport(ctx context.Context, data []byte, req Request) (rep *Report, err error) {
	defer func() {
		if r := recover(); r != nil {
			rep = nil
			err = fmt.Errorf("%w: %v", ErrUnexpectedProcessing, r)
		}
	}()

	release, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	wb, err := OpenWorkbook(data)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.Sheets()
	sheet := req.Sheet
	if sheet == "" {
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrFileTypeOrSize)
		}
		sheet = sheets[0]
	}

	raw, err := wb.ReadSheet(sheet)
	if err != nil {
		return nil, err
	}
	if err := ValidateSchema(raw.Header, s.specs); err != nil {
		return nil, err
	}

	table := Coerce(raw, s.specs)
	rep = s.Render(table, req)
	rep.Sheets = sheets
	rep.Sheet = sheet

	slog.Debug("report built",
		"sheet", sheet,
		"rows", table.Len(),
		"base_rows", rep.Views[0].Total,
		"threshold", rep.Threshold,
	)
	return rep, nil
}

// Render derives every view and chart from a coerced table. Each derived view
// starts from the same base filtered table.
func (s *Service) Render(table Table, req Request) *Report {
	base := ApplySelection(table, req.Selection)
	threshold := s.ClampThreshold(req.Threshold)

	views := map[ViewKind]Table{
		ViewBase:     base,
		ViewLowStock: LowStock(base, threshold),
		ViewExpiring: ExpiringSoon(base, s.now(), s.settings.ExpiryWindow),
		ViewInactive: Inactive(base, s.now(), s.settings.InactivityWindow),
	}

	rep := &Report{
		Options:   FilterOptions(table),
		Selected:  make(map[string]string, len(FilterColumns)),
		Threshold: threshold,
		TotalRows: table.Len(),
		Views:     make([]Presentation, 0, len(ViewKinds)),
		Charts:    BuildCharts(base),
	}
	for _, col := range FilterColumns {
		rep.Selected[col.String()] = req.Selection.Value(col)
	}
	for _, kind := range ViewKinds {
		rep.Views = append(rep.Views, Present(kind, views[kind], DefaultColumns[kind], req.Expand[kind], s.settings.PreviewRows))
	}
	return rep
}

// ClampThreshold maps 0 to the default and clamps the rest into range.
func (s *Service) ClampThreshold(t int) int {
	if t == 0 {
		t = s.settings.DefaultThreshold
	}
	if s.settings.MinThreshold > 0 && t < s.settings.MinThreshold {
		return s.settings.MinThreshold
	}
	if s.settings.MaxThreshold > 0 && t > s.settings.MaxThreshold {
		return s.settings.MaxThreshold
	}
	return t
}

// acquire takes a decode slot when a limiter is configured.
func (s *Service) acquire(ctx context.Context) (func(), error) {
	if s.limiter == nil {
		return func() {}, nil
	}
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	return s.limiter.Release, nil
}
