package infra

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fd1az/card-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/card-arbitrage/internal/apperror"
	"github.com/fd1az/card-arbitrage/internal/logger"
)

// csvHeader is the fixed column order of an export file.
var csvHeader = []string{
	"analyzed_at", "card", "grade", "condition",
	"listed_usd", "listed_original", "currency",
	"median_usd", "samples", "sources", "spread", "fallback",
	"profit_usd", "margin_pct", "net_profit_usd",
	"risk", "score", "action", "url",
}

// CSVExporter writes scan results to a timestamped CSV file, one file
// per scan. Results arrive already sorted by score.
type CSVExporter struct {
	outputDir string
	logger    logger.LoggerInterface
}

// NewCSVExporter creates a CSV exporter writing into outputDir.
func NewCSVExporter(outputDir string, log logger.LoggerInterface) *CSVExporter {
	return &CSVExporter{outputDir: outputDir, logger: log}
}

// Write implements app.ResultWriter.
func (e *CSVExporter) Write(ctx context.Context, results []*domain.ArbitrageResult) error {
	if len(results) == 0 {
		return nil
	}

	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return apperror.New(apperror.CodeExportWriteFailed,
			apperror.WithMessage("creating output directory"),
			apperror.WithCause(err),
			apperror.WithContext(e.outputDir),
		)
	}

	path := filepath.Join(e.outputDir, fmt.Sprintf("results_%s.csv", time.Now().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return apperror.New(apperror.CodeExportWriteFailed,
			apperror.WithMessage("creating export file"),
			apperror.WithCause(err),
			apperror.WithContext(path),
		)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return apperror.New(apperror.CodeExportWriteFailed,
			apperror.WithMessage("writing header"),
			apperror.WithCause(err),
		)
	}

	for _, res := range results {
		if err := w.Write(resultRecord(res)); err != nil {
			return apperror.New(apperror.CodeExportWriteFailed,
				apperror.WithMessage("writing row"),
				apperror.WithCause(err),
				apperror.WithContext(res.Listing.ListingURL),
			)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return apperror.New(apperror.CodeExportWriteFailed,
			apperror.WithMessage("flushing export file"),
			apperror.WithCause(err),
			apperror.WithContext(path),
		)
	}

	e.logger.Info(ctx, "exported results", "path", path, "rows", len(results))
	return nil
}

func resultRecord(res *domain.ArbitrageResult) []string {
	title := res.Listing.TitleEN
	if title == "" {
		title = res.Listing.Title
	}
	return []string{
		res.AnalyzedAt.Format(time.RFC3339),
		title,
		string(res.TargetGrade),
		string(res.Condition.Ordinal),
		res.ListedUSD.StringFixed(2),
		res.Listing.ListedPrice.String(),
		string(res.Listing.Currency),
		res.Reference.Median.StringFixed(2),
		strconv.Itoa(res.Reference.SampleCount),
		strconv.Itoa(res.Reference.SourceCount),
		res.Reference.SpreadRatio.StringFixed(4),
		strconv.FormatBool(res.Reference.Fallback),
		res.Profit.ProfitUSD.StringFixed(2),
		res.Profit.MarginPct.StringFixed(2),
		res.NetProfitUSD.StringFixed(2),
		res.Risk.StringFixed(4),
		res.Score.StringFixed(2),
		string(res.Action),
		res.Listing.ListingURL,
	}
}
