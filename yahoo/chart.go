package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	portfolio "github.com/etnz/modelfolio"
	"github.com/etnz/modelfolio/date"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultBaseURL is the Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client downloads daily closes.
type Client struct {
	baseURL  string
	http     *http.Client
	log      *zap.Logger
	cacheDir string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL replaces DefaultBaseURL.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithHTTPClient sets the http client used for requests.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the logger, the client is silent by default.
func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.log = l } }

// WithDailyCache keeps successful responses in 'dir' for the rest of the day.
func WithDailyCache(dir string) Option { return func(c *Client) { c.cacheDir = dir } }

// New returns a client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheDir != "" {
		base := c.http.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		cached := *c.http
		cached.Transport = &diskCache{base: base, dir: c.cacheDir, log: c.log}
		c.http = &cached
	}
	return c
}

// History returns the daily closes of 'symbol' between 'from' and 'to' included.
//
// Days without a close (holidays, suspensions) are skipped. Closes are
// rounded to two decimals.
func (c *Client) History(ctx context.Context, symbol string, from, to date.Date) (*date.History[decimal.Decimal], error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, url.PathEscape(symbol), from.Unix(), to.Add(1).Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot get %s: %w", symbol, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", symbol, err)
	}

	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		if desc, err := jsonpath.Get("$.chart.error.description", jobj); err == nil {
			return nil, fmt.Errorf("cannot get %s: %s: %v", symbol, resp.Status, desc)
		}
		return nil, fmt.Errorf("cannot get %s: %s", symbol, resp.Status)
	}
	h, err := parseChart(jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", symbol, err)
	}
	c.log.Debug("history", zap.String("symbol", symbol), zap.Int("closes", h.Len()))
	return h, nil
}

// parseChart extracts the closes of a chart response.
func parseChart(jobj any) (*date.History[decimal.Decimal], error) {
	const (
		timestampPath = "$.chart.result[0].timestamp"
		closePath     = "$.chart.result[0].indicators.quote[0].close"
	)
	jts, err := jsonpath.Get(timestampPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", timestampPath, err)
	}
	jcloses, err := jsonpath.Get(closePath, jobj)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", closePath, err)
	}
	timestamps, ok := jts.([]any)
	if !ok {
		return nil, fmt.Errorf("%q: not a list: %v", timestampPath, jts)
	}
	closes, ok := jcloses.([]any)
	if !ok {
		return nil, fmt.Errorf("%q: not a list: %v", closePath, jcloses)
	}
	if len(timestamps) != len(closes) {
		return nil, fmt.Errorf("%d timestamps for %d closes", len(timestamps), len(closes))
	}

	h := new(date.History[decimal.Decimal])
	for i, jt := range timestamps {
		ts, ok := jt.(float64)
		if !ok {
			return nil, fmt.Errorf("timestamp #%d is not a number: %v", i, jt)
		}
		v, ok := closes[i].(float64)
		if !ok || v <= 0 {
			// null close: no trading that day.
			continue
		}
		h.Append(date.FromTime(time.Unix(int64(ts), 0)), decimal.NewFromFloat(v).Round(2))
	}
	return h, nil
}

// Fill downloads the closes of 'symbol' and adds them to 'table' under 'key',
// usually the ledger ticker. It returns the number of closes added.
func (c *Client) Fill(ctx context.Context, table *portfolio.PriceTable, key, symbol string, from, to date.Date) (int, error) {
	h, err := c.History(ctx, symbol, from, to)
	if err != nil {
		return 0, err
	}
	n := 0
	for day, v := range h.Values() {
		if err := table.Add(key, day, v); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
