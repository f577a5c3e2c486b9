// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// ResultRow represents a scored listing in the results table.
type ResultRow struct {
	Timestamp string
	Card      string
	Grade     string
	ListedUSD decimal.Decimal
	RefUSD    decimal.Decimal
	ProfitUSD decimal.Decimal
	MarginPct decimal.Decimal
	Score     decimal.Decimal
	Action    string
	Fallback  bool
}

// visibleResultRows is how many rows fit in the table viewport.
const visibleResultRows = 12

// ResultsComponent renders the scored-results table.
type ResultsComponent struct {
	rows    []ResultRow
	maxRows int
	offset  int
}

// NewResultsComponent creates a new results component.
func NewResultsComponent(maxRows int) *ResultsComponent {
	return &ResultsComponent{
		rows:    make([]ResultRow, 0),
		maxRows: maxRows,
	}
}

// Add prepends a new result to the table.
func (r *ResultsComponent) Add(row ResultRow) {
	r.rows = append([]ResultRow{row}, r.rows...)
	if len(r.rows) > r.maxRows {
		r.rows = r.rows[:r.maxRows]
	}
}

// Clear clears all results.
func (r *ResultsComponent) Clear() {
	r.rows = make([]ResultRow, 0)
	r.offset = 0
}

// ScrollUp moves the viewport one row towards the newest result.
func (r *ResultsComponent) ScrollUp() {
	if r.offset > 0 {
		r.offset--
	}
}

// ScrollDown moves the viewport one row towards the oldest result.
func (r *ResultsComponent) ScrollDown() {
	if r.offset < len(r.rows)-visibleResultRows {
		r.offset++
	}
}

func actionStyle(action string) lipgloss.Style {
	switch action {
	case "STRONG_BUY":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	case "BUY":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	case "CONSIDER":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

// View renders the results component.
func (r *ResultsComponent) View() string {
	if len(r.rows) == 0 {
		return "No listings scored yet..."
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	result := headerStyle.Render(fmt.Sprintf("RESULTS (last %d)\n", r.maxRows))
	result += "┌──────────┬────────────────────────────┬────────┬─────────┬─────────┬────────┬───────┬─────────────┐\n"
	result += "│   Time   │           Card             │ Grade  │ Listed  │ Profit  │ Margin │ Score │   Action    │\n"
	result += "├──────────┼────────────────────────────┼────────┼─────────┼─────────┼────────┼───────┼─────────────┤\n"

	end := r.offset + visibleResultRows
	if end > len(r.rows) {
		end = len(r.rows)
	}
	for _, row := range r.rows[r.offset:end] {
		grade := row.Grade
		if row.Fallback {
			grade += "*"
		}

		result += fmt.Sprintf("│ %-8s │ %-26s │ %-6s │%8s │%8s │%6s%% │%6s │ %-22s│\n",
			row.Timestamp,
			truncate(row.Card, 26),
			truncate(grade, 6),
			"$"+row.ListedUSD.StringFixed(2),
			"$"+row.ProfitUSD.StringFixed(2),
			row.MarginPct.StringFixed(1),
			row.Score.StringFixed(1),
			actionStyle(row.Action).Render(row.Action),
		)
	}

	result += "└──────────┴────────────────────────────┴────────┴─────────┴─────────┴────────┴───────┴─────────────┘"

	if len(r.rows) > visibleResultRows {
		result += "\n" + mutedStyle.Render(fmt.Sprintf("  showing %d-%d of %d (↑↓ to scroll, * = fallback grade)",
			r.offset+1, end, len(r.rows)))
	}

	return result
}
