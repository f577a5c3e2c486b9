// Package infra contains infrastructure adapters for the arbitrage context.
package infra

import (
	"context"

	"github.com/fd1az/card-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/card-arbitrage/pkg/ui"
)

// TUIReporter implements Reporter by forwarding events to the Bubble Tea
// program. The program itself is started by main; Send is a no-op until
// it is running.
type TUIReporter struct{}

// NewTUIReporter creates a new TUIReporter.
func NewTUIReporter() *TUIReporter {
	return &TUIReporter{}
}

// Start initializes the TUI reporter.
func (r *TUIReporter) Start(ctx context.Context) error {
	return nil
}

// Report sends a scored listing to the TUI.
func (r *TUIReporter) Report(res *domain.ArbitrageResult) {
	ui.Send(ui.ResultMsg{Result: res})
}

// UpdateStatus sends data source status to the TUI.
func (r *TUIReporter) UpdateStatus(name string, ok bool, detail string) {
	ui.Send(ui.SourceStatusMsg{Name: name, OK: ok, Detail: detail})
}

// Summary sends the scan totals to the TUI.
func (r *TUIReporter) Summary(scanned, scored, opportunities int) {
	ui.Send(ui.SummaryMsg{Scanned: scanned, Scored: scored, Opportunities: opportunities})
}

// Stop gracefully shuts down the TUI reporter.
func (r *TUIReporter) Stop() error {
	return nil
}
