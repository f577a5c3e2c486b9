// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SourceStatus represents a data source's health.
type SourceStatus struct {
	Name       string
	OK         bool
	Detail     string
	LastUpdate time.Time
}

// StatusComponent renders data source status.
type StatusComponent struct {
	sources []SourceStatus
}

// NewStatusComponent creates a new status component.
func NewStatusComponent() *StatusComponent {
	return &StatusComponent{
		sources: make([]SourceStatus, 0),
	}
}

// Update updates a source's status.
func (s *StatusComponent) Update(status SourceStatus) {
	for i, src := range s.sources {
		if src.Name == status.Name {
			s.sources[i] = status
			return
		}
	}
	s.sources = append(s.sources, status)
}

// View renders the status component.
func (s *StatusComponent) View() string {
	if len(s.sources) == 0 {
		return "No sources"
	}

	var result string
	for _, src := range s.sources {
		status := "● OK"
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
		if !src.OK {
			status = "○ Down"
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
		}

		line := fmt.Sprintf("├─ %s: %s", src.Name, style.Render(status))
		if src.Detail != "" {
			line += fmt.Sprintf(" (%s)", src.Detail)
		}
		result += line + "\n"
	}

	return result
}
