package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the stored conversion rate for one ordered currency pair:
// 1 unit of FromCurrencyCode equals Rate units of ToCurrencyCode.
// (FromCurrencyCode, ToCurrencyCode) is a stable identity; refreshes upsert
// rather than insert duplicates.
type ExchangeRate struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	Source           string          `json:"source"`      // provenance tag of the upstream provider
	LastUpdated      time.Time       `json:"lastUpdated"` // provider quote timestamp, not write time
	UpdatedAt        time.Time       `json:"updatedAt"`   // local write time
}

// Quote is one structured rate parsed out of a provider payload.
type Quote struct {
	From string
	To   string
	Rate decimal.Decimal
}

// ProviderQuotes is the normalized result of one provider fetch.
type ProviderQuotes struct {
	Source string
	AsOf   time.Time
	Quotes []Quote
}

// SyncResult describes the outcome of one synchronization run. The
// synchronizer never lets an error escape; both success and failure are
// reported through this shape so scheduled runs can log and move on while
// interactive callers surface Err to the user.
type SyncResult struct {
	RunID        string    `json:"runID"`
	Success      bool      `json:"success"`
	RatesWritten int       `json:"ratesWritten"`
	Skipped      []string  `json:"skipped,omitempty"` // currencies dropped for malformed quotes
	Err          error     `json:"-"`
	Timestamp    time.Time `json:"timestamp"`
}

// RateTable is a point-in-time snapshot of the canonical rate table: for each
// non-base currency X, Rates[X] is the (Base -> X) rate. The conversion
// engine is a pure function over one of these snapshots.
type RateTable struct {
	Base  string
	Rates map[string]decimal.Decimal
}

// NewRateTable builds a snapshot from the repository's canonical listing
// (rows with from == base).
func NewRateTable(base string, rows []ExchangeRate) RateTable {
	rates := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		if row.FromCurrencyCode == base {
			rates[row.ToCurrencyCode] = row.Rate
		}
	}
	return RateTable{Base: base, Rates: rates}
}
