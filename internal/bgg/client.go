package bgg

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"spiritlog/internal/failure"
	"spiritlog/internal/logging"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "spiritlog/dev"
	component        = "bgg"
)

// PlaySource retrieves logged plays for the configured user.
type PlaySource interface {
	FetchPlays(ctx context.Context, opts FetchOptions) ([]RawPlay, error)
}

// Client provides access to the BGG XML API plays endpoint.
type Client struct {
	baseURL    string
	username   string
	userAgent  string
	httpClient *http.Client
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ PlaySource = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. The client is copied
// before a timeout is applied, so the caller's value is never modified.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if agent = strings.TrimSpace(agent); agent != "" {
			c.userAgent = agent
		}
	}
}

// WithRequestInterval spaces page requests at least interval apart. Zero
// disables pacing.
func WithRequestInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, component)
	}
}

// New creates a plays client for username.
func New(baseURL, username string, opts ...Option) (*Client, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("bgg username required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("bgg base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		logger:     logging.NewComponentLogger(nil, component),
	}
	for _, opt := range opts {
		opt(client)
	}
	httpClient := *client.httpClient
	httpClient.Timeout = client.timeout
	client.httpClient = &httpClient
	return client, nil
}

// FetchPlays requests pages 1, 2, ... until a page returns no plays and
// returns the collected plays in API order (most recent first).
//
// Within one page, LastN is compared against the number of plays collected
// from that page before the game filter runs, and the counter restarts on
// every page. An older-than-Since play ends the page scan, not pagination.
func (c *Client) FetchPlays(ctx context.Context, opts FetchOptions) ([]RawPlay, error) {
	keep := make(map[int64]struct{}, len(opts.GameIDs))
	for _, id := range opts.GameIDs {
		keep[id] = struct{}{}
	}
	since := strings.TrimSpace(opts.Since)
	logger := logging.WithContext(ctx, c.logger)

	var plays []RawPlay
	for page := 1; ; page++ {
		doc, err := c.fetchPage(ctx, page, since)
		if err != nil {
			return nil, err
		}
		if len(doc.Plays) == 0 {
			logger.Debug("reached empty page", logging.Int("page", page), logging.Int("collected", len(plays)))
			break
		}

		collected := 0
		for _, el := range doc.Plays {
			if opts.LastN > 0 && collected >= opts.LastN {
				break
			}
			if since != "" && el.Date < since {
				break
			}
			if el.Item == nil {
				return nil, failure.Wrap(failure.ErrMalformed, component, "scan page",
					fmt.Sprintf("play %q on page %d has no item node", el.ID, page), nil)
			}
			objectID := strings.TrimSpace(el.Item.ObjectID)
			if len(keep) > 0 && objectID != "" {
				id, err := strconv.ParseInt(objectID, 10, 64)
				if err != nil {
					return nil, failure.Wrap(failure.ErrMalformed, component, "scan page",
						fmt.Sprintf("play %q has non-numeric objectid %q", el.ID, objectID), err)
				}
				if _, ok := keep[id]; !ok {
					continue
				}
			}
			plays = append(plays, toRawPlay(el))
			collected++
		}
	}
	return plays, nil
}

func toRawPlay(el playElement) RawPlay {
	play := RawPlay{
		ID:   el.ID,
		Date: el.Date,
	}
	if el.Item != nil {
		play.Game = el.Item.Name
		play.GameID = el.Item.ObjectID
	}
	if el.Comments != nil && el.Comments.Text != "" {
		text := el.Comments.Text
		play.Comment = &text
	}
	return play
}

func (c *Client) fetchPage(ctx context.Context, page int, since string) (*playsDocument, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, failure.Wrap(failure.ErrTransport, component, "wait for rate limiter", "", err)
	}

	endpoint, err := url.Parse(c.baseURL + "/plays")
	if err != nil {
		return nil, failure.Wrap(failure.ErrConfiguration, component, "parse url", c.baseURL, err)
	}
	params := url.Values{}
	params.Set("username", c.username)
	params.Set("page", strconv.Itoa(page))
	if since != "" {
		params.Set("mindate", since)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("User-Agent", c.userAgent)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, failure.Wrap(failure.ErrTransport, component, "fetch page",
			fmt.Sprintf("page %d (latency=%v)", page, latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, failure.Wrap(failure.ErrTransport, component, "fetch page",
			fmt.Sprintf("page %d returned %d (latency=%v): %s", page, resp.StatusCode, latency, strings.TrimSpace(string(body))), nil)
	}

	var doc playsDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, failure.Wrap(failure.ErrMalformed, component, "decode page", fmt.Sprintf("page %d", page), err)
	}

	logging.WithContext(ctx, c.logger).Debug("fetched plays page",
		logging.Int("page", page),
		logging.Int("plays", len(doc.Plays)),
		logging.Duration("latency", latency))
	return &doc, nil
}
