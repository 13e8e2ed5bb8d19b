// internal/app/system/spreadsheet/limits.go
package spreadsheet

// Default upload size and row limits for bulk imports. Both are overridable
// through app config (max_upload_mb, max_sheet_rows).
const (
	DefaultMaxUploadSize = 10 << 20 // 10 MB
	DefaultMaxRows       = 20000
)
