// Package yahoo fetches market prices from the Yahoo Finance chart API.
//
// It implements foliotrack.MarketDataGateway. Responses are cached on disk
// with a daily expiry, so repeated runs within a day do not hammer the
// endpoint.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/foliotrack/foliotrack"
)

const defaultBase = "https://query1.finance.yahoo.com"

// Client queries the Yahoo Finance v8 chart endpoint.
type Client struct {
	base   string
	client *http.Client
}

// New returns a client against the public Yahoo endpoint, with the daily
// disk cache.
func New() *Client {
	return &Client{base: defaultBase, client: daily()}
}

// NewWithBase returns a client against an alternate endpoint, uncached.
// For tests.
func NewWithBase(base string, client *http.Client) *Client {
	if client == nil {
		client = new(http.Client)
	}
	return &Client{base: base, client: client}
}

func (c *Client) chartURL(ticker string, query url.Values) string {
	u := c.base + "/v8/finance/chart/" + url.PathEscape(ticker)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// LatestPrice returns the regular market price from the chart metadata, in
// the security's trading currency.
//
//	{
//	  "chart": {
//	    "result": [
//	      {
//	        "meta": {
//	          "currency": "USD",
//	          "symbol": "NVDA",
//	          "regularMarketPrice": 177.82,
//	          ...
func (c *Client) LatestPrice(ctx context.Context, ticker string) (foliotrack.Money, error) {
	query := url.Values{}
	query.Set("range", "1d")
	query.Set("interval", "1d")

	var jobj any
	if err := jwget(ctx, c.client, c.chartURL(ticker, query), &jobj); err != nil {
		return foliotrack.Money{}, fmt.Errorf("%w: %s: %v", foliotrack.ErrPriceUnavailable, ticker, err)
	}

	price, err := jsonFloat(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return foliotrack.Money{}, fmt.Errorf("%w: %s: %v", foliotrack.ErrPriceUnavailable, ticker, err)
	}
	currency, err := jsonString(jobj, "$.chart.result[0].meta.currency")
	if err != nil {
		return foliotrack.Money{}, fmt.Errorf("%w: %s: %v", foliotrack.ErrPriceUnavailable, ticker, err)
	}
	return foliotrack.M(price, currency), nil
}

// chartResponse is the structured part of the chart payload used for
// historical series.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency string `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []float64 `json:"open"`
					High  []float64 `json:"high"`
					Low   []float64 `json:"low"`
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// HistoricalPrices returns one quote table covering all the tickers from
// the start date onward. Per-ticker bars are keyed by the trading day of
// each timestamp. A ticker the endpoint does not know fails the whole
// batch with ErrPriceUnavailable.
func (c *Client) HistoricalPrices(ctx context.Context, tickers []string, from foliotrack.Date, interval foliotrack.Interval) (*foliotrack.QuoteTable, error) {
	table := foliotrack.NewQuoteTable()
	for _, ticker := range tickers {
		if err := c.historical(ctx, table, ticker, from, interval); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func (c *Client) historical(ctx context.Context, table *foliotrack.QuoteTable, ticker string, from foliotrack.Date, interval foliotrack.Interval) error {
	query := url.Values{}
	query.Set("period1", fmt.Sprintf("%d", from.Time().Unix()))
	query.Set("period2", fmt.Sprintf("%d", foliotrack.Today().Add(1).Time().Unix()))
	query.Set("interval", string(interval))

	var payload chartResponse
	if err := jwget(ctx, c.client, c.chartURL(ticker, query), &payload); err != nil {
		return fmt.Errorf("%w: %s: %v", foliotrack.ErrPriceUnavailable, ticker, err)
	}
	if len(payload.Chart.Result) == 0 {
		return fmt.Errorf("%w: %s: empty chart result", foliotrack.ErrPriceUnavailable, ticker)
	}
	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return fmt.Errorf("%w: %s: no quote series", foliotrack.ErrPriceUnavailable, ticker)
	}

	table.SetCurrency(ticker, result.Meta.Currency)
	quote := result.Indicators.Quote[0]
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == 0 {
			continue
		}
		day := foliotrack.NewDate(dateOf(ts))
		table.Add(ticker, day, foliotrack.Quote{
			Open:  at(quote.Open, i),
			High:  at(quote.High, i),
			Low:   at(quote.Low, i),
			Close: quote.Close[i],
		})
	}
	return nil
}

// jsonFloat extracts a float from a decoded JSON payload by path.
func jsonFloat(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: not a float: %v", path, jval)
	}
	return val, nil
}

// jsonString extracts a string from a decoded JSON payload by path.
func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("error parsing %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error parsing %q: not a string: %v", path, jval)
	}
	return val, nil
}

// dateOf returns the UTC trading day of a unix timestamp.
func dateOf(ts int64) (int, time.Month, int) {
	return time.Unix(ts, 0).UTC().Date()
}

func at(series []float64, i int) float64 {
	if i < len(series) {
		return series[i]
	}
	return 0
}
