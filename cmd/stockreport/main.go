// Command stockreport prints an inventory report for one .xlsx workbook.
//
//	stockreport -file stock.xlsx [-sheet S] [-category C] [-supplier S]
//	            [-product P] [-threshold 10] [-expand low_stock,expiring]
//
// Settings not covered by flags (header language, windows, preview size) come
// from the same environment variables and .env file as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/stockview/internal/config"
	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/JonMunkholm/stockview/internal/logging"
	"github.com/JonMunkholm/stockview/internal/schema"
	"github.com/JonMunkholm/stockview/internal/termview"
	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("stockreport", flag.ContinueOnError)
	var (
		file      = fs.String("file", "", "path to the .xlsx workbook (required)")
		sheet     = fs.String("sheet", "", "sheet to report on (default: first sheet)")
		category  = fs.String("category", core.All, "category filter")
		supplier  = fs.String("supplier", core.All, "supplier filter")
		product   = fs.String("product", core.All, "product filter")
		threshold = fs.Int("threshold", 0, "low-stock threshold (default from config)")
		expand    = fs.String("expand", "", "comma-separated views to show in full: base, low_stock, expiring, inactive")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *file == "" {
		fmt.Fprintln(os.Stderr, "stockreport: -file is required")
		fs.Usage()
		return 2
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stockreport: %v\n", err)
		return 1
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	specs, err := schema.ForHeaders(cfg.Schema.Headers)
	if err != nil {
		slog.Error("invalid schema header set", "error", err)
		return 1
	}

	printer := termview.New(os.Stdout)
	fail := func(err error) int {
		slog.Debug("report failed", "file", *file, "error", err)
		_ = printer.Error(core.MapError(err))
		return 1
	}

	info, err := os.Stat(*file)
	if err != nil {
		return fail(fmt.Errorf("no file provided: %w", err))
	}
	name := filepath.Base(*file)
	if err := core.CheckUpload(name, info.Size(), cfg.Upload.MaxFileSize); err != nil {
		return fail(err)
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		return fail(err)
	}

	req := core.Request{
		Sheet: *sheet,
		Selection: core.Selection{
			schema.Category: *category,
			schema.Supplier: *supplier,
			schema.Product:  *product,
		},
		Threshold: *threshold,
		Expand:    parseExpand(*expand),
	}

	service := core.NewService(specs, core.SettingsFromConfig(cfg.Report), nil)
	rep, err := service.BuildReport(context.Background(), data, req)
	if err != nil {
		return fail(err)
	}

	if err := printer.Report(name, rep); err != nil {
		slog.Error("write report", "error", err)
		return 1
	}
	return 0
}

// parseExpand reads the -expand list, ignoring unknown view names.
func parseExpand(s string) map[core.ViewKind]bool {
	out := map[core.ViewKind]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind, ok := core.ParseViewKind(part)
		if !ok {
			slog.Warn("unknown view in -expand", "view", part)
			continue
		}
		out[kind] = true
	}
	return out
}
