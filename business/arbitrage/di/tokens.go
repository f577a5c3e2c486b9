// Package di contains dependency injection tokens for the arbitrage context.
package di

import (
	"github.com/fd1az/card-arbitrage/business/arbitrage/app"
	"github.com/fd1az/card-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Analyzer = di.NewToken[*app.Analyzer]("arbitrage.Analyzer")
)

// Private dependency tokens - internal to arbitrage module
var (
	ScoreEngine   = di.NewToken[*app.ScoreEngine]("arbitrage:scoreEngine")
	Reporter      = di.NewToken[app.Reporter]("arbitrage:reporter")
	ResultWriters = di.NewToken[[]app.ResultWriter]("arbitrage:resultWriters")
)

// Helper functions for type-safe access
func GetAnalyzer(c di.ServiceRegistry) *app.Analyzer {
	return di.GetToken(c, Analyzer)
}

func GetScoreEngine(c di.ServiceRegistry) *app.ScoreEngine {
	return di.GetToken(c, ScoreEngine)
}

func GetReporter(c di.ServiceRegistry) app.Reporter {
	return di.GetToken(c, Reporter)
}

func GetResultWriters(c di.ServiceRegistry) []app.ResultWriter {
	return di.GetToken(c, ResultWriters)
}
