// Package report renders a batch Summary as a one-table PDF document.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/agbru/xl2pdf/internal/format"
	"github.com/agbru/xl2pdf/internal/orchestration"
)

// Page geometry in millimetres (A4 portrait, 15 mm margins).
const (
	margin     = 15.0
	lineHeight = 6.0
	maxErrLen  = 60
)

// column describes one table column.
type column struct {
	title string
	width float64
	align string
}

var columns = []column{
	{"#", 10, "R"},
	{"File", 62, "L"},
	{"Result", 18, "C"},
	{"Input", 22, "R"},
	{"PDF", 22, "R"},
	{"Time", 18, "R"},
	{"Error", 28, "L"},
}

// Write renders sum to w.
func Write(w io.Writer, sum orchestration.Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle("xl2pdf batch report", true)
	pdf.SetCreator("xl2pdf", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Batch conversion report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, kv := range headerLines(sum) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, lineHeight, kv[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, lineHeight, tr(kv[1]), "", "L", false)
	}
	pdf.Ln(4)

	if len(sum.Results) > 0 {
		writeTable(pdf, tr, sum.Results)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return pdf.Output(w)
}

// WriteFile renders sum to the PDF file at path.
func WriteFile(path string, sum orchestration.Summary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Write(f, sum)
}

func headerLines(sum orchestration.Summary) [][2]string {
	lines := [][2]string{
		{"Run", sum.RunID},
		{"Engine", sum.Engine},
		{"Started", sum.Started.Format("2006-01-02 15:04:05")},
		{"Duration", format.FormatExecutionDuration(sum.Duration)},
		{"Outcome", sum.Outcome()},
		{"Converted", strconv.Itoa(sum.SuccessCount)},
		{"Failed", strconv.Itoa(sum.FailCount)},
	}
	if sum.Digest != "" {
		lines = append(lines, [2]string{"Errors", sum.Digest})
	}
	return lines
}

func writeTable(pdf *gofpdf.Fpdf, tr func(string) string, results []orchestration.FileResult) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range columns {
		pdf.CellFormat(c.width, lineHeight+1, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for i, res := range results {
		status := "OK"
		output := format.FormatMB(res.OutputBytes)
		if !res.Success {
			status = "FAILED"
			output = "-"
		}
		cells := []string{
			strconv.Itoa(i + 1),
			truncate(res.Name(), 40),
			status,
			format.FormatMB(res.InputBytes),
			output,
			format.FormatSeconds(res.Duration),
			truncate(res.Message(), maxErrLen),
		}
		for j, c := range columns {
			pdf.CellFormat(c.width, lineHeight, tr(cells[j]), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
