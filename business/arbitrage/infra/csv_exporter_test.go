package infra

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/card-arbitrage/business/arbitrage/domain"
	listingDomain "github.com/fd1az/card-arbitrage/business/listing/domain"
	pricingDomain "github.com/fd1az/card-arbitrage/business/pricing/domain"
	"github.com/fd1az/card-arbitrage/internal/apperror"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/money"
)

func testResult(title, listed, profit string, action domain.Action) *domain.ArbitrageResult {
	return &domain.ArbitrageResult{
		Listing: listingDomain.RawListing{
			Title:       title,
			ListedPrice: decimal.RequireFromString("10000"),
			Currency:    money.JPY,
			ListingURL:  "https://buyee.jp/item/yahoo/auction/x" + title,
		},
		Condition:   listingDomain.NormalizeCondition("near mint"),
		TargetGrade: pricingDomain.GradeRaw,
		ListedUSD:   decimal.RequireFromString(listed),
		Reference: pricingDomain.ReferencePrice{
			Median:      decimal.RequireFromString("120"),
			SampleCount: 6,
			SourceCount: 2,
			SpreadRatio: decimal.RequireFromString("0.1"),
		},
		Profit: domain.ProfitResult{
			ProfitUSD:   decimal.RequireFromString(profit),
			MarginPct:   decimal.RequireFromString("50"),
			HasEvidence: true,
			HasMargin:   true,
		},
		NetProfitUSD: decimal.RequireFromString(profit).Sub(decimal.RequireFromString("15")),
		Score:        decimal.RequireFromString("80"),
		Risk:         decimal.RequireFromString("0.25"),
		Action:       action,
		AnalyzedAt:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestCSVExporterWritesAllColumns(t *testing.T) {
	dir := t.TempDir()
	exp := NewCSVExporter(dir, logger.New(&bytes.Buffer{}, logger.LevelDebug, "test", nil))

	results := []*domain.ArbitrageResult{
		testResult("Blue-Eyes White Dragon", "67", "53", domain.ActionStrongBuy),
		testResult("Dark Magician", "90", "30", domain.ActionConsider),
	}
	if err := exp.Write(context.Background(), results); err != nil {
		t.Fatalf("Write: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "results_*.csv"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one export file, got %v (err %v)", matches, err)
	}

	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(records))
	}
	if len(records[0]) != len(csvHeader) {
		t.Fatalf("header has %d columns, want %d", len(records[0]), len(csvHeader))
	}

	row := records[1]
	if row[1] != "Blue-Eyes White Dragon" {
		t.Errorf("card column = %q", row[1])
	}
	if row[4] != "67.00" {
		t.Errorf("listed_usd = %q, want 67.00", row[4])
	}
	if row[12] != "53.00" {
		t.Errorf("profit_usd = %q, want 53.00", row[12])
	}
	if row[17] != "STRONG_BUY" {
		t.Errorf("action = %q, want STRONG_BUY", row[17])
	}
}

func TestCSVExporterReportsUnwritableDir(t *testing.T) {
	// Parent is a regular file, so MkdirAll must fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	dir := filepath.Join(blocker, "out")
	exp := NewCSVExporter(dir, logger.New(&bytes.Buffer{}, logger.LevelDebug, "test", nil))

	err := exp.Write(context.Background(), []*domain.ArbitrageResult{
		testResult("Blue-Eyes White Dragon", "67", "53", domain.ActionStrongBuy),
	})
	if err == nil {
		t.Fatal("Write should fail when the output directory cannot be created")
	}
	if apperror.GetCode(err) != apperror.CodeExportWriteFailed {
		t.Errorf("code = %s, want %s", apperror.GetCode(err), apperror.CodeExportWriteFailed)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error %T is not an AppError", err)
	}
	if appErr.Context != dir {
		t.Errorf("context = %q, want the output dir %q", appErr.Context, dir)
	}
}

func TestCSVExporterSkipsEmptyScan(t *testing.T) {
	dir := t.TempDir()
	exp := NewCSVExporter(dir, logger.New(&bytes.Buffer{}, logger.LevelDebug, "test", nil))

	if err := exp.Write(context.Background(), nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "results_*.csv"))
	if len(matches) != 0 {
		t.Errorf("empty scan should not create a file, got %v", matches)
	}
}
