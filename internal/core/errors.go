package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for the report pipeline. Wrapped errors carry the detail;
// callers match the category with errors.Is.
var (
	// ErrFileTypeOrSize: the upload is not an .xlsx workbook or exceeds the size cap.
	ErrFileTypeOrSize = errors.New("file type or size not accepted")

	// ErrEmptySheet: the selected sheet has no non-blank rows, not even a header.
	ErrEmptySheet = fmt.Errorf("%w: empty sheet", ErrFileTypeOrSize)

	// ErrSchemaMismatch: the selected sheet's header is not the canonical layout.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrSheetNotFound: the requested sheet does not exist in the workbook.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrUploadNotFound: the upload id is unknown or its session expired.
	ErrUploadNotFound = errors.New("upload not found")

	// ErrUnexpectedProcessing: any other failure while building a report.
	ErrUnexpectedProcessing = errors.New("unexpected processing error")
)
