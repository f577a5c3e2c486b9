// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Stats holds scan statistics for display.
type Stats struct {
	ListingsScanned int64
	ListingsScored  int64
	Opportunities   int64
	StrongBuys      int64
	Errors          int64
}

// StatsComponent renders statistics.
type StatsComponent struct {
	stats Stats
}

// NewStatsComponent creates a new stats component.
func NewStatsComponent() *StatsComponent {
	return &StatsComponent{}
}

// Update updates the statistics.
func (s *StatsComponent) Update(stats Stats) {
	s.stats = stats
}

// View renders the stats component.
func (s *StatsComponent) View() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

	opportunityRate := float64(0)
	if s.stats.ListingsScored > 0 {
		opportunityRate = float64(s.stats.Opportunities) / float64(s.stats.ListingsScored) * 100
	}

	errorsDisplay := valueStyle.Render(fmt.Sprintf("%d", s.stats.Errors))
	if s.stats.Errors > 0 {
		errorsDisplay = errorStyle.Render(fmt.Sprintf("%d", s.stats.Errors))
	}

	return style.Render("STATS") + "\n" +
		fmt.Sprintf("Scanned: %s  │  Scored: %s  │  Opportunities: %s (%.1f%%)\n",
			valueStyle.Render(fmt.Sprintf("%d", s.stats.ListingsScanned)),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.ListingsScored)),
			valueStyle.Render(fmt.Sprintf("%d", s.stats.Opportunities)),
			opportunityRate,
		) +
		fmt.Sprintf("Strong buys: %s  │  Errors: %s",
			valueStyle.Render(fmt.Sprintf("%d", s.stats.StrongBuys)),
			errorsDisplay,
		)
}
