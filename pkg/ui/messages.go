// Package ui provides the Bubble Tea TUI for the card arbitrage scanner.
package ui

import (
	"github.com/fd1az/card-arbitrage/business/arbitrage/domain"
)

// Message types for TUI updates

// ResultMsg is sent when a listing has been fully analyzed and scored.
type ResultMsg struct {
	Result *domain.ArbitrageResult
}

// SourceStatusMsg is sent when a data source changes state.
type SourceStatusMsg struct {
	Name   string // "collector", "ebay", "130point", "fx"
	OK     bool
	Detail string // Optional detail, e.g. "circuit open"
}

// SummaryMsg is sent once a scan pass completes.
type SummaryMsg struct {
	Scanned       int
	Scored        int
	Opportunities int
}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Error error
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}

// StartModulesMsg signals that modules should start loading.
type StartModulesMsg struct{}

// LogMsg is sent to display a log message in the UI.
type LogMsg struct {
	Level   string // "info", "warn", "error"
	Message string
}

// StartupMsg is sent during application startup to show progress.
type StartupMsg struct {
	Step    string // Current step name
	Status  string // "connecting", "connected", "failed"
	Message string // Optional message
}
