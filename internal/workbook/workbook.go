// Package workbook resolves which spreadsheet files a batch converts and
// where their PDFs are written.
package workbook

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PDFExtension is the extension of every converted output.
const PDFExtension = ".pdf"

// Extensions lists the recognised spreadsheet extensions, lower case.
var Extensions = []string{".xls", ".xlsx"}

// IsWorkbook reports whether path has a recognised spreadsheet extension.
// Matching is a case-insensitive suffix match, used by both folder and
// single-file mode.
func IsWorkbook(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// List returns the workbooks directly inside dir, sorted lexicographically by
// path. A missing or unreadable folder yields an empty list.
func List(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsWorkbook(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files
}

// PDFPath derives the output path for a workbook: same directory, same base
// name, .pdf extension. Existing files are not checked.
func PDFPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + PDFExtension
}
