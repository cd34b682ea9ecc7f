package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/JonMunkholm/stockview/internal/logging"
	"github.com/JonMunkholm/stockview/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// parseRequest reads the report controls from the query string:
// sheet, one parameter per filter column, threshold, and expand (comma
// separated or repeated). Unknown or malformed values fall back to defaults.
func parseRequest(r *http.Request) core.Request {
	q := r.URL.Query()
	req := core.Request{
		Sheet:     q.Get("sheet"),
		Selection: core.Selection{},
		Expand:    map[core.ViewKind]bool{},
	}

	for _, col := range core.FilterColumns {
		if v := q.Get(core.FilterParam(col)); v != "" {
			req.Selection[col] = v
		}
	}

	if t, err := strconv.Atoi(strings.TrimSpace(q.Get("threshold"))); err == nil {
		req.Threshold = t
	}

	for _, v := range q["expand"] {
		for _, part := range strings.Split(v, ",") {
			if kind, ok := core.ParseViewKind(strings.TrimSpace(part)); ok {
				req.Expand[kind] = true
			}
		}
	}
	return req
}

// buildReport loads the upload named in the URL and runs the pipeline over it.
// The upload is returned even when the report fails.
func (s *Server) buildReport(r *http.Request, format string) (*core.Upload, *core.Report, error) {
	u, err := s.store.Get(chi.URLParam(r, "uploadID"))
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	rep, err := s.service.BuildReport(r.Context(), u.Data(), parseRequest(r))
	duration := time.Since(start)

	if err != nil {
		observeReport(format, core.MapError(err).Code, 0, duration)
		return u, nil, err
	}
	observeReport(format, "", rep.TotalRows, duration)

	logging.WithFields(r.Context(), "upload_id", u.ID).Debug("report rendered",
		"format", format,
		"sheet", rep.Sheet,
		"rows", rep.TotalRows,
		"duration_ms", duration.Milliseconds(),
	)
	return u, rep, nil
}

// handleReportPage renders the HTML report. A sheet that fails validation
// still gets the page, with the error in place of the views, so another
// sheet can be picked.
func (s *Server) handleReportPage(w http.ResponseWriter, r *http.Request) {
	u, rep, err := s.buildReport(r, "html")
	if u == nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	params := templates.ReportParams{
		UploadID:     u.ID,
		FileName:     u.FileName,
		Sheets:       u.Sheets,
		Query:        r.URL.Query(),
		ThresholdMin: s.service.Settings().MinThreshold,
		ThresholdMax: s.service.Settings().MaxThreshold,
	}

	status := http.StatusOK
	switch {
	case err == nil:
		params.Report = rep
		params.Sheet = rep.Sheet
	case errors.Is(err, core.ErrSchemaMismatch), errors.Is(err, core.ErrSheetNotFound), errors.Is(err, core.ErrEmptySheet):
		msg := core.MapError(err)
		params.Error = &msg
		params.Sheet = r.URL.Query().Get("sheet")
		if params.Sheet == "" && len(u.Sheets) > 0 {
			params.Sheet = u.Sheets[0]
		}
		status = statusFor(err)
		logging.WithFields(r.Context(), "upload_id", u.ID).Warn("report rejected", "code", msg.Code, "error", err)
	default:
		respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ReportPage(params).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render report page", "error", err)
	}
}

// reportResponse is the JSON report body.
type reportResponse struct {
	UploadID string `json:"uploadId"`
	FileName string `json:"fileName"`
	*core.Report
}

// handleReportJSON returns the full report as JSON.
func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	u, rep, err := s.buildReport(r, "json")
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, reportResponse{UploadID: u.ID, FileName: u.FileName, Report: rep})
}

// handleChartsJSON returns only the chart series.
func (s *Server) handleChartsJSON(w http.ResponseWriter, r *http.Request) {
	_, rep, err := s.buildReport(r, "charts")
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, rep.Charts)
}
