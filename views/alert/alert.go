// Package alert renders blocking notifications as modal dialogs. Alerts are
// shown one at a time in the order they were raised.
package alert

import (
	"charm-mint-tui/helpers"
	"charm-mint-tui/styles"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Kind int

const (
	Info Kind = iota
	Success
	Error
)

// Alert is one modal notification. Link, when set, can be copied and is
// drawn as a QR code if QR is true.
type Alert struct {
	Kind    Kind
	Title   string
	Message string
	Link    string
	QR      bool
}

// Queue is a FIFO of pending alerts.
type Queue []Alert

func (q *Queue) Push(a Alert) { *q = append(*q, a) }

// Front returns the alert on screen.
func (q Queue) Front() (Alert, bool) {
	if len(q) == 0 {
		return Alert{}, false
	}
	return q[0], true
}

// Dismiss drops the alert on screen.
func (q *Queue) Dismiss() {
	if len(*q) == 0 {
		return
	}
	*q = (*q)[1:]
}

// Count returns how many queued alerts are of kind k.
func (q Queue) Count(k Kind) int {
	n := 0
	for _, a := range q {
		if a.Kind == k {
			n++
		}
	}
	return n
}

// Render draws a centered dialog for a. pending is the number of alerts
// queued behind it.
func Render(a Alert, pending, width, height int) string {
	border := styles.CBorder
	switch a.Kind {
	case Error:
		border = styles.CError
	case Success:
		border = styles.CAccent
	}

	title := a.Title
	if title == "" {
		title = "Notice"
	}
	lines := []string{
		lipgloss.NewStyle().Width(56).Align(lipgloss.Center).Render(helpers.FadeString(title, styles.FadeFrom, styles.FadeTo)),
		"",
		lipgloss.NewStyle().Width(56).Foreground(styles.CText).Render(a.Message),
	}

	if a.Link != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(56).Foreground(styles.CAccent2).Render(helpers.Hyperlink(a.Link, a.Link)))
		if a.QR {
			lines = append(lines, "", lipgloss.NewStyle().Width(56).Align(lipgloss.Center).Render(helpers.QRCode(a.Link)))
		}
	}

	okButton := styles.ActiveButtonStyle.MarginRight(2).Render("OK")
	buttons := okButton
	if a.Link != "" {
		buttons = lipgloss.JoinHorizontal(lipgloss.Top, okButton, styles.ButtonStyle.Render("c copy link"))
	}
	lines = append(lines, lipgloss.NewStyle().Width(56).Align(lipgloss.Center).Render(buttons))

	if pending > 0 {
		more := "1 more alert"
		if pending > 1 {
			more = fmt.Sprintf("%d more alerts", pending)
		}
		lines = append(lines, "", styles.MutedStyle.Width(56).Align(lipgloss.Center).Render(more))
	}

	dialog := styles.DialogBoxStyle.BorderForeground(border).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
