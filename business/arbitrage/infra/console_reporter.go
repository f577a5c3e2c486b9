// Package infra contains infrastructure adapters for the arbitrage context.
package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fd1az/card-arbitrage/business/arbitrage/domain"
)

// ConsoleReporter implements Reporter for CLI output.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a new ConsoleReporter.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{
		out: os.Stdout,
	}
}

// Start initializes the console reporter.
func (r *ConsoleReporter) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, "Card Arbitrage Scanner Started")
	fmt.Fprintln(r.out, "==============================")
	return nil
}

// Report outputs a scored listing to the console. PASS results are
// printed as a single line; anything actionable gets the full block.
func (r *ConsoleReporter) Report(res *domain.ArbitrageResult) {
	title := res.Listing.TitleEN
	if title == "" {
		title = res.Listing.Title
	}

	if res.Action == domain.ActionPass {
		fmt.Fprintf(r.out, "[%s] PASS  score=%s  %s\n",
			res.AnalyzedAt.Format("15:04:05"), res.Score.StringFixed(1), title)
		return
	}

	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "================================================================================")
	fmt.Fprintf(r.out, "%s  (score %s)\n", res.Action, res.Score.StringFixed(1))
	fmt.Fprintln(r.out, "================================================================================")
	fmt.Fprintf(r.out, "Card:           %s\n", title)
	fmt.Fprintf(r.out, "Listing:        %s\n", res.Listing.ListingURL)
	fmt.Fprintf(r.out, "Analyzed:       %s\n", res.AnalyzedAt.Format(time.RFC3339))
	fmt.Fprintf(r.out, "Condition:      %s (factor %s)\n", res.Condition.Ordinal, res.Condition.Factor.StringFixed(2))
	fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
	fmt.Fprintln(r.out, "PRICES")
	fmt.Fprintf(r.out, "  Listed:         $%s (%s %s)\n", res.ListedUSD.StringFixed(2),
		res.Listing.ListedPrice.StringFixed(0), res.Listing.Currency)
	fmt.Fprintf(r.out, "  Sold median:    $%s", res.Reference.Median.StringFixed(2))
	if res.Reference.Fallback {
		fmt.Fprint(r.out, "  [fallback grade]")
	}
	fmt.Fprintln(r.out, "")
	fmt.Fprintf(r.out, "  Evidence:       %d sales from %d sources, grade %s, spread %s\n",
		res.Reference.SampleCount, res.Reference.SourceCount, res.TargetGrade,
		res.Reference.SpreadRatio.StringFixed(2))
	fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
	fmt.Fprintln(r.out, "PROFIT")
	fmt.Fprintf(r.out, "  Gross:          $%s (%s%%)\n", res.Profit.ProfitUSD.StringFixed(2), res.Profit.MarginPct.StringFixed(1))
	fmt.Fprintf(r.out, "  Net after fees: $%s\n", res.NetProfitUSD.StringFixed(2))
	fmt.Fprintf(r.out, "  Risk:           %s\n", res.Risk.StringFixed(2))
	fmt.Fprintln(r.out, "================================================================================")
}

// UpdateStatus outputs data source status changes.
func (r *ConsoleReporter) UpdateStatus(name string, ok bool, detail string) {
	status := "down"
	if ok {
		status = "ok"
	}
	if detail != "" {
		status = fmt.Sprintf("%s (%s)", status, detail)
	}
	fmt.Fprintf(r.out, "[%s] %s: %s\n", time.Now().Format("15:04:05"), name, status)
}

// Summary outputs the scan totals.
func (r *ConsoleReporter) Summary(scanned, scored, opportunities int) {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
	fmt.Fprintf(r.out, "Scan complete: %d listings scanned, %d scored, %d opportunities\n",
		scanned, scored, opportunities)
	fmt.Fprintln(r.out, "--------------------------------------------------------------------------------")
}

// Stop gracefully shuts down the console reporter.
func (r *ConsoleReporter) Stop() error {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "Card Arbitrage Scanner Stopped")
	return nil
}
