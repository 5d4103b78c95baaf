package constants

import "strings"

// Pages served verbatim from the pages directory.
const (
	PageIndex     = "index.html"
	PageConverter = "converter.html"
	PageHSCheck   = "hs_check.html"
)

// Excel export.
const (
	ExportFilename  = "invoices.xlsx"
	ExportSheetName = "Invoice_List"
	XLSXMimeType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DefaultUploadMimeType is used when the client does not declare one for the uploaded part.
const DefaultUploadMimeType = "application/octet-stream"

// NormalizeMimeType lowercases a declared MIME type and drops its parameters.
func NormalizeMimeType(mt string) string {
	mt = strings.ToLower(strings.TrimSpace(mt))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if mt == "" {
		return DefaultUploadMimeType
	}
	return mt
}
