package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/game"
)

// RenderResults formats finished rounds as a static table.
func RenderResults(results []game.RoundResult) string {
	columns := []table.Column{
		{Title: "Round", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "High", Width: 8},
		{Title: "Outcome", Width: 8},
		{Title: "Ticks", Width: 8},
		{Title: "New", Width: 4},
	}
	rows := make([]table.Row, len(results))
	for i, r := range results {
		isNew := ""
		if r.NewHigh {
			isNew = "*"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.HighScore),
			r.Outcome.String(),
			strconv.Itoa(r.Ticks),
			isNew,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)

	// Nothing is selectable, so the cursor row looks like the others
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t.View()
}
