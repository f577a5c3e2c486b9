// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EvidenceBreakdown holds domain-calculated figures for the most recent
// analysis. All values are pre-computed; the UI only displays them.
type EvidenceBreakdown struct {
	Card        string
	Grade       string
	Condition   string
	ListedUSD   float64
	MedianUSD   float64
	SampleCount int
	SourceCount int
	SpreadRatio float64
	Fallback    bool
	GrossProfit float64
	NetProfit   float64
	MarginPct   float64
	Risk        float64
	Score       float64
	Action      string
	HasEvidence bool
}

// EvidenceComponent renders the latest analysis breakdown.
type EvidenceComponent struct {
	query     string
	breakdown *EvidenceBreakdown
}

// NewEvidenceComponent creates a new evidence component.
func NewEvidenceComponent() *EvidenceComponent {
	return &EvidenceComponent{}
}

// SetQuery sets the active search query shown in the header.
func (e *EvidenceComponent) SetQuery(query string) {
	e.query = query
}

// SetBreakdown sets the latest domain-calculated breakdown.
func (e *EvidenceComponent) SetBreakdown(breakdown EvidenceBreakdown) {
	e.breakdown = &breakdown
}

// View renders the evidence component.
func (e *EvidenceComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	positiveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	negativeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))

	title := "LATEST ANALYSIS"
	if e.query != "" {
		title = fmt.Sprintf("LATEST ANALYSIS (%s)", e.query)
	}

	var result string
	result = headerStyle.Render(title)
	result += "\n\n"

	if e.breakdown == nil {
		result += dimStyle.Render("  Waiting for first scored listing...") + "\n"
		return result
	}

	b := e.breakdown

	result += fmt.Sprintf("  Card: %s\n", b.Card)
	result += fmt.Sprintf("  Condition: %s  Grade: %s", dimStyle.Render(b.Condition), dimStyle.Render(b.Grade))
	if b.Fallback {
		result += warnStyle.Render("  (fallback)")
	}
	result += "\n"
	result += dimStyle.Render("  "+strings.Repeat("─", 52)) + "\n"

	if !b.HasEvidence {
		result += negativeStyle.Render("  NO SOLD EVIDENCE") + "\n\n"
		result += dimStyle.Render("  No comparable sales found for this grade") + "\n"
		return result
	}

	result += fmt.Sprintf("  Listed: %s\n", fmt.Sprintf("$%.2f", b.ListedUSD))
	result += fmt.Sprintf("  Sold median: %s  %s\n",
		fmt.Sprintf("$%.2f", b.MedianUSD),
		dimStyle.Render(fmt.Sprintf("(%d sales, %d sources, spread %.2f)", b.SampleCount, b.SourceCount, b.SpreadRatio)))
	result += fmt.Sprintf("  Gross profit: %s\n", warnStyle.Render(fmt.Sprintf("$%.2f", b.GrossProfit)))

	netStyle := positiveStyle
	if b.NetProfit < 0 {
		netStyle = negativeStyle
	}
	result += fmt.Sprintf("  Net after fees: %s\n", netStyle.Render(fmt.Sprintf("$%.2f", b.NetProfit)))
	result += fmt.Sprintf("  Margin: %s  Risk: %s\n",
		fmt.Sprintf("%.1f%%", b.MarginPct),
		dimStyle.Render(fmt.Sprintf("%.2f", b.Risk)))

	result += "\n"
	scoreLine := fmt.Sprintf("  Score: %.1f  →  %s", b.Score, b.Action)
	switch b.Action {
	case "STRONG_BUY", "BUY":
		result += positiveStyle.Render(scoreLine) + "\n"
	case "CONSIDER":
		result += warnStyle.Render(scoreLine) + "\n"
	default:
		result += dimStyle.Render(scoreLine) + "\n"
	}

	return result
}
