package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/card-arbitrage/business/arbitrage/domain"
	listingApp "github.com/fd1az/card-arbitrage/business/listing/app"
	listingDomain "github.com/fd1az/card-arbitrage/business/listing/domain"
	pricingApp "github.com/fd1az/card-arbitrage/business/pricing/app"
	pricingDomain "github.com/fd1az/card-arbitrage/business/pricing/domain"
	"github.com/fd1az/card-arbitrage/internal/apm"
	"github.com/fd1az/card-arbitrage/internal/logger"
	"github.com/fd1az/card-arbitrage/internal/metrics"
	"github.com/fd1az/card-arbitrage/internal/money"
	"github.com/fd1az/card-arbitrage/internal/workpool"
)

const tracerName = "github.com/fd1az/card-arbitrage/business/arbitrage/app"

// AnalyzerConfig holds batch scan settings.
type AnalyzerConfig struct {
	MinScreenScore int
	Workers        int
	FeeRate        decimal.Decimal
	ShippingUSD    decimal.Decimal
}

// Analyzer orchestrates one scan: collect listings, pre-screen, then
// score each surviving listing through the full pipeline on a bounded
// worker pool. A listing failing anywhere is reported and skipped; the
// batch itself only fails when collection fails.
type Analyzer struct {
	listings    *listingApp.ListingService
	pricing     *pricingApp.PricingService
	scorer      *ScoreEngine
	reporter    Reporter
	writers     []ResultWriter
	config      AnalyzerConfig
	logger      logger.LoggerInterface
	instruments *metrics.Instruments
	tracer      apm.Tracer
}

// NewAnalyzer creates an Analyzer. instruments may be nil when
// telemetry is disabled.
func NewAnalyzer(
	listings *listingApp.ListingService,
	pricing *pricingApp.PricingService,
	scorer *ScoreEngine,
	reporter Reporter,
	writers []ResultWriter,
	cfg AnalyzerConfig,
	log logger.LoggerInterface,
	instruments *metrics.Instruments,
) *Analyzer {
	return &Analyzer{
		listings:    listings,
		pricing:     pricing,
		scorer:      scorer,
		reporter:    reporter,
		writers:     writers,
		config:      cfg,
		logger:      log,
		instruments: instruments,
		tracer:      apm.NewTracer(tracerName),
	}
}

// Run executes one full scan for the query and returns the scored
// results sorted best-first.
func (a *Analyzer) Run(ctx context.Context, query string, maxListings int) ([]*domain.ArbitrageResult, error) {
	ctx, span := a.tracer.StartSpanFromContext(ctx, "arbitrage.scan",
		trace.WithAttributes(
			attribute.String("query", query),
			attribute.Int("max_listings", maxListings),
		),
	)
	defer span.End()
	started := time.Now()

	a.reporter.UpdateStatus("collector", true, "collecting listings")
	listings, err := a.listings.Collect(ctx, query, maxListings)
	if err != nil {
		a.reporter.UpdateStatus("collector", false, err.Error())
		span.NoticeError(err)
		return nil, err
	}
	a.reporter.UpdateStatus("collector", true, "collected")

	var (
		mu      sync.Mutex
		results []*domain.ArbitrageResult
	)
	pool := workpool.New(a.config.Workers, nil)
	for _, listing := range listings {
		if err := pool.Submit(ctx, func(ctx context.Context) {
			result, err := a.analyzeOne(ctx, listing)
			if err != nil {
				a.logger.Warn(ctx, "listing analysis failed",
					"title", listing.Title, "error", err)
				return
			}
			if result == nil {
				return // screened out
			}
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			a.reporter.Report(result)
		}); err != nil {
			break // context cancelled
		}
	}
	pool.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score.GreaterThan(results[j].Score)
	})

	opportunities := 0
	for _, r := range results {
		if r.Action != domain.ActionPass {
			opportunities++
		}
	}

	for _, w := range a.writers {
		if err := w.Write(ctx, results); err != nil {
			a.logger.Error(ctx, "result writer failed", "error", err)
		}
	}

	if a.instruments != nil {
		a.instruments.ResultsScored.Add(ctx, int64(len(results)))
		a.instruments.OpportunitiesFound.Add(ctx, int64(opportunities))
		a.instruments.ScanDuration.Record(ctx, time.Since(started).Seconds())
	}

	a.reporter.Summary(len(listings), len(results), opportunities)
	a.logger.Info(ctx, "scan complete",
		"query", query,
		"listings", len(listings),
		"scored", len(results),
		"opportunities", opportunities,
		"elapsed", time.Since(started).Round(time.Millisecond))
	span.SetAttributes(
		attribute.Int("scored", len(results)),
		attribute.Int("opportunities", opportunities),
	)
	span.SetStatus(codes.Ok, "scan complete")
	return results, nil
}

// analyzeOne runs the scoring pipeline for a single listing. A nil
// result with a nil error means the listing was screened out.
func (a *Analyzer) analyzeOne(ctx context.Context, listing listingDomain.RawListing) (*domain.ArbitrageResult, error) {
	rate, err := a.pricing.USDRate(ctx, listing.Currency)
	if err != nil {
		return nil, err
	}
	amount, err := money.NewAmount(listing.ListedPrice, listing.Currency)
	if err != nil {
		return nil, err
	}
	listedUSD, err := rate.Convert(amount)
	if err != nil {
		return nil, err
	}

	screening := listingDomain.Screen(listing, listedUSD.Value())
	if screening.Score < a.config.MinScreenScore {
		if a.instruments != nil {
			a.instruments.ListingsScreened.Add(ctx, 1)
		}
		a.logger.Debug(ctx, "listing screened out",
			"title", listing.Title, "score", screening.Score, "reasons", screening.Reasons)
		return nil, nil
	}

	condition := listingDomain.NormalizeCondition(listing.ConditionText)
	_, targetGrade := pricingDomain.ClassifyGrade(listing.TitleEN + " " + listing.Title)

	perGrade, err := a.pricing.ReferencePrices(ctx, listing.Query())
	if err != nil {
		return nil, err
	}
	ref := pricingDomain.Synthesize(perGrade, targetGrade)

	profit, err := domain.ComputeProfit(listedUSD.Value(), condition.Factor, ref)
	if err != nil {
		return nil, err
	}
	risk := domain.EstimateRisk(ref, condition)
	score, action := a.scorer.Score(profit, ref, risk)

	return &domain.ArbitrageResult{
		Listing:      listing,
		Condition:    condition,
		TargetGrade:  targetGrade,
		ListedUSD:    listedUSD.Value(),
		Reference:    ref,
		Profit:       profit,
		NetProfitUSD: domain.NetProfitUSD(profit, listedUSD.Value(), a.config.FeeRate, a.config.ShippingUSD),
		Score:        score,
		Risk:         risk,
		Action:       action,
		AnalyzedAt:   time.Now(),
	}, nil
}
