package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7"))

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

const barWidth = 30

// bar draws a horizontal bar for a 0-100 value
func bar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return strings.Repeat("█", filled) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

// scoreStyle colors a score by the same bands the ATS verdict uses
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score > 70:
		return goodStyle
	case score > 45:
		return warnStyle
	default:
		return badStyle
	}
}

// percentLine renders "label  ████░░ 60%"
func percentLine(label string, width, percent int) string {
	return fmt.Sprintf("  %-*s %s %s", width, label, bar(percent, barWidth), scoreStyle(percent).Render(fmt.Sprintf("%3d%%", percent)))
}

// titleCase converts a string to title case using proper locale-aware capitalization
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
