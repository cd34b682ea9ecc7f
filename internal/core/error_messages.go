package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Users can quote the code when reporting a problem.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the maximum size limit (10 MiB)
//	          Patterns: "file too large", "request body too large"
//
//	FILE002 - Not a workbook: File is not an .xlsx workbook
//	          Patterns: "not an xlsx workbook"
//
//	FILE003 - Sheet not found: The selected sheet does not exist
//	          Patterns: "sheet not found"
//
//	FILE004 - No file: No file was selected
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: The uploaded file is empty
//	          Patterns: "empty sheet", "empty file", "no sheets"
//
// # Schema Errors (SCH001-SCH099)
//
//	SCH001 - Columns incorrect or out of order
//	         Patterns: "schema mismatch"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Too many uploads in progress
//	         Patterns: "too many uploads"
//
//	UPL003 - Session expired: Upload not found
//	         Patterns: "upload not found"
//
//	UPL004 - Request cancelled
//	         Patterns: "context canceled"
//
//	UPL005 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no pattern or sentinel matches, and the code for
// ErrUnexpectedProcessing.
//
// # Matching
//
// Patterns are matched case-insensitively using strings.Contains and the
// first match wins, so specific patterns come before general ones. When no
// pattern matches, the sentinel categories in sentinelMessages are tried with
// errors.Is.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum size limit (10 MiB)",
		Action:  "Remove unused sheets or rows and upload again",
		Code:    "FILE001",
	}
	msgNotWorkbook = UserMessage{
		Message: "File is not an Excel workbook",
		Action:  "Save the spreadsheet as .xlsx and upload again",
		Code:    "FILE002",
	}
	msgSchema = UserMessage{
		Message: "Columns incorrect or out of order",
		Action:  "Use exactly the column headers listed on the upload page, in that order",
		Code:    "SCH001",
	}
	msgUploadNotFound = UserMessage{
		Message: "Upload not found",
		Action:  "The upload may have expired. Please upload the file again",
		Code:    "UPL003",
	}
)

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
var errorPatterns = []errorPattern{
	{pattern: "file too large", msg: msgFileTooLarge},
	{pattern: "request body too large", msg: msgFileTooLarge},
	{pattern: "not an xlsx workbook", msg: msgNotWorkbook},
	{
		pattern: "sheet not found",
		msg: UserMessage{
			Message: "The selected sheet does not exist",
			Action:  "Choose one of the sheets listed for this workbook",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select an .xlsx file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty sheet",
		msg: UserMessage{
			Message: "The selected sheet is empty",
			Action:  "Please upload a workbook with a header row and data rows",
			Code:    "FILE005",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a workbook with a header row and data rows",
			Code:    "FILE005",
		},
	},
	{
		pattern: "no sheets",
		msg: UserMessage{
			Message: "The workbook has no sheets",
			Action:  "Please upload a workbook with a header row and data rows",
			Code:    "FILE005",
		},
	},
	{pattern: "schema mismatch", msg: msgSchema},
	{
		pattern: "too many uploads",
		msg: UserMessage{
			Message: "Too many uploads in progress",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{pattern: "upload not found", msg: msgUploadNotFound},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller workbook or try again later",
			Code:    "UPL005",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// sentinelMessages covers wrapped sentinels whose text matched no pattern.
var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrFileTypeOrSize, msgNotWorkbook},
	{ErrSchemaMismatch, msgSchema},
	{ErrUploadNotFound, msgUploadNotFound},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "Error processing the file",
	Action:  "Check the workbook and try again",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	msg := lookupMessage(err)

	// A mismatch knows the layout it was checked against.
	var mismatch *SchemaMismatchError
	if msg.Code == msgSchema.Code && errors.As(err, &mismatch) && len(mismatch.Expected) > 0 {
		msg.Action = "Use the columns " + strings.Join(mismatch.Expected, ", ") + " in this order"
	}
	return msg
}

func lookupMessage(err error) UserMessage {
	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
