package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/stockview/internal/core"
	"github.com/JonMunkholm/stockview/internal/logging"
	"github.com/JonMunkholm/stockview/internal/schema"
	"github.com/JonMunkholm/stockview/internal/web/templates"
)

// multipartOverhead is allowed on top of the file size for form boundaries
// and headers.
const multipartOverhead = 1 << 20

// handleIndex renders the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	params := templates.UploadParams{
		MaxSizeMiB: s.cfg.Upload.MaxFileSize >> 20,
		Headers:    schema.Headers(s.service.Specs()),
	}
	if err := templates.UploadPage(params).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render upload page", "error", err)
	}
}

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status  string                    `json:"status"`
	Uploads int                       `json:"uploads"`
	Decoder *core.UploadLimiterStatus `json:"decoder,omitempty"`
}

// handleHealth reports liveness plus store and decoder occupancy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Uploads: s.store.Len()}
	if l := s.service.Limiter(); l != nil {
		status := l.Status()
		resp.Decoder = &status
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// uploadResponse is returned to JSON clients after a successful upload.
type uploadResponse struct {
	UploadID  string   `json:"uploadId"`
	FileName  string   `json:"fileName"`
	Sheets    []string `json:"sheets"`
	ReportURL string   `json:"reportUrl"`
}

// handleUpload accepts one .xlsx workbook, checks that it decodes, and keeps
// its bytes for report requests. Browsers are redirected to the report page.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) || strings.Contains(err.Error(), "request body too large") {
			s.uploadFailed(w, r, fmt.Errorf("%w: file too large: request body exceeds %d bytes", core.ErrFileTypeOrSize, maxSize))
			return
		}
		s.uploadFailed(w, r, fmt.Errorf("%w: %v", errNoFile, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.uploadFailed(w, r, errNoFile)
		return
	}
	defer file.Close()

	fileName := filepath.Base(header.Filename)
	if err := core.CheckUpload(fileName, header.Size, maxSize); err != nil {
		s.uploadFailed(w, r, err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		s.uploadFailed(w, r, fmt.Errorf("read upload: %w", err))
		return
	}
	if err := core.CheckUpload(fileName, int64(len(data)), maxSize); err != nil {
		s.uploadFailed(w, r, err)
		return
	}

	sheets, err := s.service.Inspect(r.Context(), data)
	if err != nil {
		s.uploadFailed(w, r, err)
		return
	}

	u := s.store.Put(fileName, data, sheets)
	uploadsTotal.WithLabelValues("ok").Inc()
	uploadBytes.Observe(float64(u.Size))
	uploadsStored.Set(float64(s.store.Len()))

	logging.WithFields(r.Context(), "upload_id", u.ID).Info("upload accepted",
		"file", fileName,
		"bytes", u.Size,
		"sheets", len(sheets),
	)

	reportURL := "/report/" + u.ID
	switch {
	case wantsJSON(r):
		writeJSON(w, r, http.StatusCreated, uploadResponse{
			UploadID:  u.ID,
			FileName:  u.FileName,
			Sheets:    u.Sheets,
			ReportURL: reportURL,
		})
	case isHTMX(r):
		w.Header().Set("HX-Redirect", reportURL)
		w.WriteHeader(http.StatusOK)
	default:
		http.Redirect(w, r, reportURL, http.StatusSeeOther)
	}
}

// uploadFailed counts the rejection by error code and responds.
func (s *Server) uploadFailed(w http.ResponseWriter, r *http.Request, err error) {
	uploadsTotal.WithLabelValues(core.MapError(err).Code).Inc()
	respondError(w, r, err, statusFor(err))
}
