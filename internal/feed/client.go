package feed

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"donateqr/internal/model"
)

const probeInterval = 5 * time.Second

// Client reads the external read-only transaction feed. Every request carries
// a cache-busting timestamp so intermediate caches never serve a stale snapshot.
type Client struct {
	httpClient *http.Client
	feedURL    string

	probeMu   sync.Mutex
	probeOK   bool
	lastProbe time.Time
}

func NewClient(httpClient *http.Client, feedURL string) *Client {
	return &Client{httpClient: httpClient, feedURL: feedURL}
}

type feedResponse struct {
	Data []feedRecord `json:"data"`
}

// The feed exposes the amount under either of two equivalent names; rows
// carrying neither normalize to 0 and can never match a positive target.
type feedRecord struct {
	Amount *int64 `json:"amount"`
	Value  *int64 `json:"value"`
}

func (r feedRecord) normalizedAmount() int64 {
	if r.Amount != nil {
		return *r.Amount
	}
	if r.Value != nil {
		return *r.Value
	}
	return 0
}

// FetchTransactions issues one feed request and returns the normalized rows.
func (c *Client) FetchTransactions(ctx context.Context) ([]model.TransactionRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrFeedUnavailable, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrFeedUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: feed returned status %d", model.ErrFeedUnavailable, res.StatusCode)
	}

	var body feedResponse
	if err := sonic.ConfigDefault.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrFeedUnavailable, err)
	}

	records := make([]model.TransactionRecord, 0, len(body.Data))
	for _, row := range body.Data {
		records = append(records, model.TransactionRecord{Amount: row.normalizedAmount()})
	}
	return records, nil
}

func (c *Client) requestURL() string {
	sep := "?"
	if strings.Contains(c.feedURL, "?") {
		sep = "&"
	}
	return c.feedURL + sep + "t=" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// Reachable probes the feed endpoint, caching the result for a few seconds so
// health checks cannot hammer the upstream.
func (c *Client) Reachable(ctx context.Context) bool {
	c.probeMu.Lock()
	defer c.probeMu.Unlock()

	if time.Since(c.lastProbe) < probeInterval {
		return c.probeOK
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(), nil)
	if err != nil {
		c.recordProbe(false)
		return false
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.recordProbe(false)
		return false
	}
	res.Body.Close()

	c.recordProbe(res.StatusCode >= 200 && res.StatusCode <= 299)
	return c.probeOK
}

func (c *Client) recordProbe(ok bool) {
	c.probeOK = ok
	c.lastProbe = time.Now()
}
