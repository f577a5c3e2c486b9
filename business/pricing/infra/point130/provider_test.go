package point130

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/card-arbitrage/business/pricing/domain"
	"github.com/fd1az/card-arbitrage/internal/logger"
)

func testProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(ProviderConfig{
		BaseURL:           "https://back.130point.com",
		MaxResults:        50,
		RequestsPerMinute: 10,
	}, logger.New(&bytes.Buffer{}, logger.LevelDebug, "test", nil))
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	return p
}

func TestParseSalesTableRows(t *testing.T) {
	body := `
<table>
<tr id="rowsold_dataTable0"><td>Blue-Eyes White Dragon LOB-001 PSA 10</td>
<td><a class="bidLink" href="#">$1,250.00</a></td></tr>
<tr id="rowsold_dataTable1"><td>Blue-Eyes White Dragon LOB-001</td>
<td><a class="bidLink" href="#">$310.50</a></td></tr>
<tr id="rowsold_dataTable2"><td>broken row, no price</td></tr>
</table>`

	obs := testProvider(t).parseSales(body)
	if len(obs) != 2 {
		t.Fatalf("parsed %d observations, want 2", len(obs))
	}

	if !obs[0].PriceUSD.Equal(decimal.RequireFromString("1250.00")) {
		t.Errorf("first price = %s, want 1250.00", obs[0].PriceUSD)
	}
	if obs[0].Tier() != domain.GradePSA10 {
		t.Errorf("first tier = %s, want PSA10", obs[0].Tier())
	}
	if obs[1].Tier() != domain.GradeRaw {
		t.Errorf("second tier = %s, want RAW", obs[1].Tier())
	}
}

func TestParseSalesDataPriceFallback(t *testing.T) {
	body := `<div class="item"><a data-price="99.95" href="#">sold</a></div>`

	obs := testProvider(t).parseSales(body)
	if len(obs) != 1 {
		t.Fatalf("parsed %d observations, want 1", len(obs))
	}
	if !obs[0].PriceUSD.Equal(decimal.RequireFromString("99.95")) {
		t.Errorf("price = %s, want 99.95", obs[0].PriceUSD)
	}
}

func TestParseSalesEmptyBody(t *testing.T) {
	if obs := testProvider(t).parseSales(""); len(obs) != 0 {
		t.Errorf("parsed %d observations from empty body, want 0", len(obs))
	}
}
