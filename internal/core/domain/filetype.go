package domain

import (
	"path/filepath"
	"strings"
)

// FileType is the closed set of logical data types the pipeline handles.
// Files are classified once, at discovery time, and every later stage
// switches on the tag rather than re-inspecting the path.
type FileType string

// Supported file types.
const (
	FileTypeText     FileType = "text"
	FileTypeCSV      FileType = "csv"
	FileTypeDocx     FileType = "docx"
	FileTypeHTML     FileType = "html"
	FileTypeMarkdown FileType = "markdown"
	FileTypePDF      FileType = "pdf"
	FileTypePptx     FileType = "pptx"
	FileTypeXlsx     FileType = "xlsx"
	FileTypeUnknown  FileType = "unknown"
)

// extensionTable maps lowercased file extensions to file types.
// Legacy Office extensions map to the same handling as their OOXML
// successors (.ppt -> pptx, .doc -> docx, .xls -> xlsx).
var extensionTable = map[string]FileType{
	".txt":      FileTypeText,
	".text":     FileTypeText,
	".csv":      FileTypeCSV,
	".doc":      FileTypeDocx,
	".docx":     FileTypeDocx,
	".htm":      FileTypeHTML,
	".html":     FileTypeHTML,
	".md":       FileTypeMarkdown,
	".markdown": FileTypeMarkdown,
	".pdf":      FileTypePDF,
	".ppt":      FileTypePptx,
	".pptx":     FileTypePptx,
	".xls":      FileTypeXlsx,
	".xlsx":     FileTypeXlsx,
}

// DetectFileType classifies a path by its extension, case-insensitively.
// Unrecognised extensions yield FileTypeUnknown.
func DetectFileType(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensionTable[ext]; ok {
		return t
	}
	return FileTypeUnknown
}

// AllFileTypes returns the supported types in stable bucket order.
// The order determines bucket iteration order in reports.
func AllFileTypes() []FileType {
	return []FileType{
		FileTypeText,
		FileTypeCSV,
		FileTypeDocx,
		FileTypeHTML,
		FileTypeMarkdown,
		FileTypePDF,
		FileTypePptx,
		FileTypeXlsx,
	}
}

// IsValid returns true if the file type is a known, processable type.
func (t FileType) IsValid() bool {
	switch t {
	case FileTypeText, FileTypeCSV, FileTypeDocx, FileTypeHTML,
		FileTypeMarkdown, FileTypePDF, FileTypePptx, FileTypeXlsx:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FileType) String() string {
	return string(t)
}
