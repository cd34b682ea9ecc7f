// Package templates holds the HTML components of the report server.
//
// Components are written in .templ files; run `templ generate` after editing
// them. This file holds the plain Go the components call.
package templates

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/JonMunkholm/stockview/internal/core"
)

// UploadParams configures the upload page.
type UploadParams struct {
	MaxSizeMiB int64
	Headers    []string // Expected header row, in order
}

// ReportParams is everything the report page shows.
type ReportParams struct {
	UploadID     string
	FileName     string
	Sheets       []string
	Sheet        string
	Report       *core.Report      // nil when the report could not be built
	Error        *core.UserMessage // set when Report is nil
	Query        url.Values        // current query, reused by toggle links
	ThresholdMin int
	ThresholdMax int
}

// path is the report URL for this upload.
func (rp ReportParams) path() string {
	return "/report/" + url.PathEscape(rp.UploadID)
}

// jsonURL is the JSON report for the current query.
func (rp ReportParams) jsonURL() string {
	u := "/api/report/" + url.PathEscape(rp.UploadID)
	if encoded := rp.Query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// expanded returns the views currently expanded, in display order.
func (rp ReportParams) expanded() []core.ViewKind {
	var out []core.ViewKind
	for _, v := range rp.Query["expand"] {
		for _, part := range strings.Split(v, ",") {
			if kind, ok := core.ParseViewKind(strings.TrimSpace(part)); ok && !slices.Contains(out, kind) {
				out = append(out, kind)
			}
		}
	}
	return out
}

// ToggleURL returns the current report URL with kind's expand flag flipped.
func (rp ReportParams) ToggleURL(kind core.ViewKind) string {
	q := url.Values{}
	for k, v := range rp.Query {
		q[k] = slices.Clone(v)
	}

	current := rp.expanded()
	var next []string
	for _, k := range current {
		if k != kind {
			next = append(next, string(k))
		}
	}
	if !slices.Contains(current, kind) {
		next = append(next, string(kind))
	}

	q.Del("expand")
	if len(next) > 0 {
		q.Set("expand", strings.Join(next, ","))
	}
	if encoded := q.Encode(); encoded != "" {
		return rp.path() + "?" + encoded
	}
	return rp.path()
}

// toggleHref is ToggleURL anchored at the view's section.
func (rp ReportParams) toggleHref(kind core.ViewKind) string {
	return rp.ToggleURL(kind) + "#" + string(kind)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
