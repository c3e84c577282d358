package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/pfrederiksen/wurstliga/internal/config"
	"github.com/pfrederiksen/wurstliga/internal/logger"
	"golang.org/x/time/rate"
)

// RoundParam is the query parameter that selects a round on kicktipp pages
const RoundParam = "spieltagIndex"

// StatusError is returned when a page answers with anything but 200
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Client fetches round pages of one kicktipp group and season
type Client struct {
	client    *http.Client
	limiter   *rate.Limiter
	baseURL   string
	group     string
	seasonID  int
	userAgent string
	retry     int
	step      time.Duration
	fallback  int

	log     *logger.Logger
	metrics *logger.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithBackoffStep sets the unit of the linear retry backoff (default 1s)
func WithBackoffStep(step time.Duration) Option {
	return func(c *Client) { c.step = step }
}

// WithLogger sets the logger used for retry notices
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics records fetch outcomes, durations and retries
func WithMetrics(m *logger.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Client for the group and season in cfg
func New(cfg config.Config, opts ...Option) *Client {
	limit := rate.Inf
	if cfg.SleepBetween > 0 {
		limit = rate.Every(cfg.SleepBetween)
	}

	c := &Client{
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(limit, 1),
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		group:     cfg.Group,
		seasonID:  cfg.TippsaisonID,
		userAgent: cfg.UserAgent,
		retry:     max(cfg.Retry, 0),
		step:      time.Second,
		fallback:  cfg.FallbackRounds,
		log:       logger.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RoundURL returns the address of round n's overview page
func (c *Client) RoundURL(n int) string {
	return fmt.Sprintf("%s/%s/tippuebersicht?tippsaisonId=%d&%s=%d", c.baseURL, c.group, c.seasonID, RoundParam, n)
}

// FetchRound downloads the overview page of round n. Failed attempts are retried up
// to the configured number of times; the last error is returned.
func (c *Client) FetchRound(ctx context.Context, n int) ([]byte, error) {
	pageURL := c.RoundURL(n)
	start := time.Now()

	var body []byte
	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		data, err := c.get(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		body = data
		return nil
	}

	notify := func(err error, wait time.Duration) {
		if c.metrics != nil {
			c.metrics.IncRetries()
		}
		c.log.Warn("retrying round fetch", logger.Fields{
			"round": n,
			"wait":  wait.String(),
			"error": err.Error(),
		})
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(&linearBackOff{step: c.step}, uint64(c.retry)),
		ctx,
	)
	err := backoff.RetryNotify(operation, policy, notify)

	if c.metrics != nil {
		c.metrics.ObserveFetch(time.Since(start), err)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching round %d: %w", n, err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	return data, nil
}

// DiscoverRounds lists the rounds linked from the season navigation of round 1. When
// the page links no rounds, 1..fallback_rounds is returned.
func (c *Client) DiscoverRounds(ctx context.Context) ([]int, error) {
	page, err := c.FetchRound(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("discovering rounds: %w", err)
	}

	rounds, err := discoverRoundIndexes(strings.NewReader(string(page)), c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("discovering rounds: %w", err)
	}
	if len(rounds) == 0 {
		c.log.Warn("no round links found, using fallback", logger.Fields{"rounds": c.fallback})
		return FallbackRounds(c.fallback), nil
	}
	return rounds, nil
}

// FallbackRounds returns 1..n
func FallbackRounds(n int) []int {
	rounds := make([]int, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		rounds = append(rounds, i)
	}
	return rounds
}

// discoverRoundIndexes collects the positive round numbers linked from a page, sorted
// and without duplicates
func discoverRoundIndexes(r io.Reader, base string) ([]int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	rounds := make([]int, 0)
	doc.Find("a[href*='" + RoundParam + "=']").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}

		value := baseURL.ResolveReference(ref).Query().Get(RoundParam)
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n <= 0 {
			return
		}
		rounds = append(rounds, n)
	})

	slices.Sort(rounds)
	return slices.Compact(rounds), nil
}
