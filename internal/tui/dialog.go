package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/xl2pdf/internal/errors"
	"github.com/agbru/xl2pdf/internal/orchestration"
)

// dialogKind selects the dialog frame.
type dialogKind int

const (
	dialogInfo dialogKind = iota
	dialogError
)

// Dialog is the completion message shown over the shell after a batch.
type Dialog struct {
	Kind  dialogKind
	Title string
	Body  string
}

// dialogFor builds the completion dialog of a batch. Any success yields an
// information dialog with the counts; otherwise the digest is shown as an
// error. An aborted batch is always an error.
func dialogFor(sum orchestration.Summary) Dialog {
	var aborted apperrors.BatchAbortedError
	if errors.As(sum.Err, &aborted) {
		return Dialog{Kind: dialogError, Title: "Conversion aborted", Body: sum.Digest}
	}
	switch {
	case sum.SuccessCount > 0:
		return Dialog{
			Kind:  dialogInfo,
			Title: "Conversion complete",
			Body:  fmt.Sprintf("%d files converted (%d failed)", sum.SuccessCount, sum.FailCount),
		}
	case sum.FailCount > 0:
		return Dialog{Kind: dialogError, Title: "Conversion failed", Body: sum.Digest}
	case sum.Err != nil:
		return Dialog{Kind: dialogError, Title: "Cannot convert", Body: sum.Digest}
	}
	return Dialog{Kind: dialogInfo, Title: "Conversion complete", Body: "0 files converted (0 failed)"}
}

// View renders the dialog centered in a width x height area.
func (d Dialog) View(width, height int) string {
	style := dialogInfoStyle
	title := logSuccessStyle.Bold(true).Render(d.Title)
	if d.Kind == dialogError {
		style = dialogErrorStyle
		title = logErrorStyle.Bold(true).Render(d.Title)
	}

	boxWidth := min(60, max(width-8, 20))
	body := lipgloss.NewStyle().Width(boxWidth - 6).Render(d.Body)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(dialogHintStyle.Render("enter/esc: close"))

	box := style.Width(boxWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
