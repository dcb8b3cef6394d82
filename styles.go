package main

import (
	"charm-mint-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- THEME (Lip Gloss) --------------------
// Styles now come from the styles package

var (
	cBorder  = styles.CBorder
	cMuted   = styles.CMuted
	cText    = styles.CText
	cAccent  = styles.CAccent
	cAccent2 = styles.CAccent2
	cWarn    = styles.CWarn
	cError   = styles.CError

	appStyle   = styles.AppStyle
	panelStyle = styles.PanelStyle
	navStyle   = styles.NavStyle
)

// logStyles colors the log panel output
func logStyles() *log.Styles {
	s := log.DefaultStyles()
	s.Timestamp = lipgloss.NewStyle().Foreground(cMuted)
	s.Caller = lipgloss.NewStyle().Faint(true)
	s.Prefix = lipgloss.NewStyle().Bold(true).Foreground(cAccent2)
	s.Message = lipgloss.NewStyle().Foreground(cText)
	s.Key = lipgloss.NewStyle().Foreground(cAccent)
	s.Value = lipgloss.NewStyle().Foreground(cText)
	s.Separator = lipgloss.NewStyle().Faint(true)
	s.Levels = map[log.Level]lipgloss.Style{
		log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
		log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
		log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
		log.ErrorLevel: lipgloss.NewStyle().Foreground(cError).SetString("ERROR"),
	}
	return s
}
