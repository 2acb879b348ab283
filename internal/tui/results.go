package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiaim/internal/model"
	statsPkg "github.com/verte-zerg/tuiaim/internal/stats"
)

func buildResultsTable(mode model.Mode, difficulty model.Difficulty, st model.SessionStats) table.Model {
	data := statsPkg.SummaryRows(mode, difficulty, st)
	rows := make([]table.Row, 0, len(data))
	valueWidth := 8
	for _, row := range data {
		rows = append(rows, table.Row{row[0], row[1]})
		valueWidth = max(valueWidth, lipgloss.Width(row[1]))
	}
	columns := []table.Column{
		{Title: "Metric", Width: 14},
		{Title: "Value", Width: valueWidth + 1},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
		table.WithFocused(true),
	)
	t.SetStyles(resultsTableStyles())
	return t
}

func resultsTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
