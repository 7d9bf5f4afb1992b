// Package currencylayer implements the upstream rate provider client against
// the currencylayer-style live quotes API. The vendor's payload shape
// (concatenated pair keys, success flag, unix timestamp) is isolated here;
// the rest of the system only ever sees structured quotes.
package currencylayer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/commercekit/fxengine/internal/apperrors"
	"github.com/commercekit/fxengine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SourceName is the provenance tag stamped onto every rate row produced from
// this provider's quotes.
const SourceName = "currencylayer"

// Client fetches live rates over HTTP. It performs no retries; a failed fetch
// is retried by the next scheduled synchronization.
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

// liveResponse is the upstream /live payload. Quotes are keyed by
// concatenated pair strings, e.g. "USDEUR". Values decode as json.Number so
// no precision is lost before conversion to decimal.
type liveResponse struct {
	Success   bool                   `json:"success"`
	Timestamp int64                  `json:"timestamp"`
	Source    string                 `json:"source"`
	Quotes    map[string]json.Number `json:"quotes"`
	Error     struct {
		Code int    `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// NewClient creates a currencylayer client. The timeout bounds the whole
// request; on expiry the fetch fails with apperrors.ErrProviderUnavailable.
func NewClient(baseURL, accessKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// FetchLiveQuotes fetches quotes for base against the given basket and parses
// the vendor pair keys into structured quotes.
func (c *Client) FetchLiveQuotes(ctx context.Context, base string, basket []string) (*domain.ProviderQuotes, error) {
	query := url.Values{}
	query.Set("access_key", c.accessKey)
	query.Set("source", base)
	query.Set("currencies", strings.Join(basket, ","))
	reqURL := c.baseURL + "/live?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", apperrors.ErrProviderUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream returned status %d", apperrors.ErrProviderUnavailable, resp.StatusCode)
	}

	var payload liveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", apperrors.ErrProviderUnavailable, err)
	}

	if !payload.Success {
		return nil, fmt.Errorf("%w: upstream error %d: %s", apperrors.ErrProviderRejected, payload.Error.Code, payload.Error.Info)
	}

	quotes := make([]domain.Quote, 0, len(payload.Quotes))
	for pairKey, raw := range payload.Quotes {
		from, to, ok := splitPairKey(pairKey, base)
		if !ok {
			c.logger.Warn("Skipping quote with unparseable pair key", slog.String("pair_key", pairKey))
			continue
		}
		rate, err := decimal.NewFromString(raw.String())
		if err != nil {
			c.logger.Warn("Skipping quote with non-numeric rate",
				slog.String("pair_key", pairKey), slog.String("raw", raw.String()))
			continue
		}
		quotes = append(quotes, domain.Quote{From: from, To: to, Rate: rate})
	}

	return &domain.ProviderQuotes{
		Source: SourceName,
		AsOf:   time.Unix(payload.Timestamp, 0).UTC(),
		Quotes: quotes,
	}, nil
}

// splitPairKey parses the vendor's "USDEUR" concatenation convention. Keys
// must start with the requested base and carry a 3-letter target.
func splitPairKey(pairKey, base string) (from, to string, ok bool) {
	if !strings.HasPrefix(pairKey, base) {
		return "", "", false
	}
	target := pairKey[len(base):]
	if len(target) != 3 {
		return "", "", false
	}
	return base, target, true
}
