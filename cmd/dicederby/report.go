package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oddsline/dicederby/internal/roster"
	"github.com/oddsline/dicederby/internal/statistics"
)

// Static styles for report elements
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	leaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

type reportRow struct {
	name           string
	underdogFactor float64
	wins           int
	winRate        float64
	expectedReturn float64
}

// renderReport formats the aggregate result as a win-rate table sorted by
// win rate, plus a turn-count summary. The expected-return column is the
// win rate times the underdog (payout) factor.
func renderReport(config *roster.Config, result *statistics.Result, seed int64) string {
	rows := make([]reportRow, 0, len(config.Competitors))
	for _, spec := range config.Competitors {
		rate := result.WinRate(spec.Name)
		rows = append(rows, reportRow{
			name:           spec.Name,
			underdogFactor: spec.UnderdogFactor,
			wins:           result.WinCounts[spec.Name],
			winRate:        rate,
			expectedReturn: rate * spec.UnderdogFactor,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].winRate > rows[j].winRate
	})

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Race results: %d trials", result.Trials)))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-14s %8s %6s %9s %9s", "Competitor", "Factor", "Wins", "Win rate", "Return")))
	b.WriteString("\n")

	for i, row := range rows {
		line := fmt.Sprintf("%-14s %8.2f %6d %8.1f%% %9.4f",
			row.name, row.underdogFactor, row.wins, row.winRate*100, row.expectedReturn)
		if i == 0 {
			line = leaderStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	low, high := result.ConfidenceInterval95()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Turns to finish: mean %.2f, median %.1f, min %d, max %d\n",
		result.MeanTurns(), result.MedianTurns(), result.MinTurns, result.MaxTurns))
	b.WriteString(fmt.Sprintf("95%% CI for mean turns: [%.2f, %.2f]\n", low, high))
	b.WriteString(dimStyle.Render(fmt.Sprintf("seed %d", seed)))
	return b.String()
}
