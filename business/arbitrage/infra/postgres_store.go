package infra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/fd1az/card-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/card-arbitrage/internal/apperror"
	"github.com/fd1az/card-arbitrage/internal/logger"
)

const insertBatchSize = 50

// PostgresStore persists scan results to PostgreSQL. The store is
// optional; it is only wired when a DSN is configured.
type PostgresStore struct {
	db     *sql.DB
	logger logger.LoggerInterface
}

// NewPostgresStore opens a connection, runs schema migration, and
// returns a ready-to-use store.
func NewPostgresStore(dsn string, log logger.LoggerInterface) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, apperror.New(apperror.CodeStoreWriteFailed,
			apperror.WithMessage("opening postgres connection"),
			apperror.WithCause(err),
		)
	}

	for i := 0; i < 5; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, apperror.New(apperror.CodeStoreWriteFailed,
			apperror.WithMessage("postgres unreachable after retries"),
			apperror.WithCause(err),
		)
	}

	s := &PostgresStore{db: db, logger: log}
	if err := s.migrate(); err != nil {
		return nil, apperror.New(apperror.CodeStoreMigration,
			apperror.WithMessage("running schema migration"),
			apperror.WithCause(err),
		)
	}
	return s, nil
}

func (s *PostgresStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS scan_results (
			id             SERIAL PRIMARY KEY,
			analyzed_at    TIMESTAMPTZ   NOT NULL,
			card           TEXT          NOT NULL,
			grade          VARCHAR(20)   NOT NULL,
			condition      VARCHAR(20)   NOT NULL,
			listed_usd     NUMERIC(12,2) NOT NULL,
			median_usd     NUMERIC(12,2) NOT NULL,
			samples        INT           NOT NULL DEFAULT 0,
			sources        INT           NOT NULL DEFAULT 0,
			fallback       BOOLEAN       NOT NULL DEFAULT FALSE,
			profit_usd     NUMERIC(12,2) NOT NULL,
			margin_pct     NUMERIC(8,2)  NOT NULL,
			net_profit_usd NUMERIC(12,2) NOT NULL,
			risk           NUMERIC(6,4)  NOT NULL,
			score          NUMERIC(6,2)  NOT NULL,
			action         VARCHAR(20)   NOT NULL,
			listing_url    TEXT          NOT NULL,
			UNIQUE (listing_url, analyzed_at)
		);

		CREATE INDEX IF NOT EXISTS idx_scan_results_score  ON scan_results(score);
		CREATE INDEX IF NOT EXISTS idx_scan_results_action ON scan_results(action);
	`)
	return err
}

// Write implements app.ResultWriter. Re-scanned listings are deduped by
// the (listing_url, analyzed_at) constraint.
func (s *PostgresStore) Write(ctx context.Context, results []*domain.ArbitrageResult) error {
	if len(results) == 0 {
		return nil
	}

	for i := 0; i < len(results); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(results) {
			end = len(results)
		}
		if err := s.insertBatch(ctx, results[i:end]); err != nil {
			return apperror.New(apperror.CodeStoreWriteFailed,
				apperror.WithMessage("inserting result batch"),
				apperror.WithCause(err),
				apperror.WithContext(fmt.Sprintf("batch starting at row %d", i)),
			)
		}
	}

	s.logger.Info(ctx, "stored results", "rows", len(results))
	return nil
}

func (s *PostgresStore) insertBatch(ctx context.Context, batch []*domain.ArbitrageResult) error {
	const cols = 16
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*cols)

	for idx, res := range batch {
		base := idx * cols
		placeholders := make([]string, cols)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		title := res.Listing.TitleEN
		if title == "" {
			title = res.Listing.Title
		}
		valueArgs = append(valueArgs,
			res.AnalyzedAt,
			title,
			string(res.TargetGrade),
			string(res.Condition.Ordinal),
			res.ListedUSD.StringFixed(2),
			res.Reference.Median.StringFixed(2),
			res.Reference.SampleCount,
			res.Reference.SourceCount,
			res.Reference.Fallback,
			res.Profit.ProfitUSD.StringFixed(2),
			res.Profit.MarginPct.StringFixed(2),
			res.NetProfitUSD.StringFixed(2),
			res.Risk.StringFixed(4),
			res.Score.StringFixed(2),
			string(res.Action),
			res.Listing.ListingURL,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO scan_results (
			analyzed_at, card, grade, condition, listed_usd, median_usd,
			samples, sources, fallback, profit_usd, margin_pct,
			net_profit_usd, risk, score, action, listing_url
		)
		VALUES %s
		ON CONFLICT (listing_url, analyzed_at) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := s.db.ExecContext(ctx, query, valueArgs...)
	return err
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
