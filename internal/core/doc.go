// Package core provides the business logic for inventory report generation.
//
// This package is the heart of stockview, containing all domain logic
// independent of any UI or transport layer. It is used by the web handlers,
// the stockreport command, and tests without modification.
//
// # Pipeline
//
// A report is a pure function of the uploaded workbook bytes and the
// current control selections:
//
//  1. [OpenWorkbook] decodes the .xlsx container and lists its sheets
//  2. [Workbook.ReadSheet] returns the selected sheet as a [RawTable]
//  3. [ValidateSchema] rejects any header that is not the canonical layout
//  4. [Coerce] turns raw cells into typed [Record] values, with missing
//     sentinels for cells that fail to parse
//  5. [ApplySelection] applies the Category/Supplier/Product equality filters,
//     giving the base filtered table
//  6. [LowStock], [ExpiringSoon] and [Inactive] each derive a view from the
//     base filtered table; [BuildCharts] aggregates it for charting
//  7. [Present] decides how much of each view is shown
//
// [Service.BuildReport] runs the whole pipeline. Nothing is cached between
// calls except the raw upload bytes held by [UploadStore].
//
// # Missing Values
//
// Numeric cells are [decimal.NullDecimal] and date cells are [pgtype.Date];
// Valid=false marks a cell that could not be parsed. Missing values never
// satisfy a threshold or date-window predicate, so such rows are left out of
// the low-stock, expiring and inactive views and out of the cost sums.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE005: File errors (size, container format, empty)
//   - SCH001: Schema mismatch (columns differ in name, count, or order)
//   - UPL002-UPL003: Upload errors (busy, expired)
//   - ERR000: Unexpected processing error
package core
