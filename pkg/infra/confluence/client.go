package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds every Confluence request
	DefaultTimeout = 30 * time.Second

	spacePageSize = 100
	maxRetries    = 1
)

type config struct {
	timeout   time.Duration
	rateLimit rate.Limit
	burst     int
	transport http.RoundTripper
}

// Option configures the client factory
type Option func(*config)

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithRateLimit sets requests per second and burst per client
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *config) {
		c.rateLimit = rate.Limit(perSecond)
		c.burst = burst
	}
}

// WithTransport sets the underlying HTTP transport
func WithTransport(rt http.RoundTripper) Option {
	return func(c *config) {
		c.transport = rt
	}
}

type client struct {
	wikiURL string
	cred    model.Credential
	http    *http.Client
	limiter *rate.Limiter
}

// NewFactory returns a factory building one rate limited client per
// credential
func NewFactory(opts ...Option) interfaces.ConfluenceClientFactory {
	cfg := &config{
		timeout:   DefaultTimeout,
		rateLimit: 5,
		burst:     5,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(cred model.Credential) (interfaces.ConfluenceClient, error) {
		if err := cred.Validate(); err != nil {
			return nil, err
		}
		return &client{
			wikiURL: wikiURL(cred.BaseURL()),
			cred:    cred,
			http: &http.Client{
				Timeout:   cfg.timeout,
				Transport: cfg.transport,
			},
			limiter: rate.NewLimiter(cfg.rateLimit, cfg.burst),
		}, nil
	}
}

// wikiURL appends the /wiki context path used by Confluence Cloud unless
// the site URL already carries it
func wikiURL(site string) string {
	if strings.HasSuffix(site, "/wiki") {
		return site
	}
	return site + "/wiki"
}

func (c *client) ListSpaces(ctx context.Context) ([]*model.Space, error) {
	var spaces []*model.Space

	for start := 0; ; start += spacePageSize {
		q := url.Values{}
		q.Set("start", strconv.Itoa(start))
		q.Set("limit", strconv.Itoa(spacePageSize))

		var page spacesResponse
		if err := c.do(ctx, http.MethodGet, "/rest/api/space?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}

		for _, s := range page.Results {
			spaces = append(spaces, &model.Space{ID: s.ID, Key: s.Key, Name: s.Name, Type: s.Type})
		}

		if len(page.Results) < spacePageSize || page.Links.Next == "" {
			break
		}
	}

	return spaces, nil
}

func (c *client) CreatePage(ctx context.Context, page *model.NewPage) (*model.Page, error) {
	req := contentRequest{
		Type:  "page",
		Title: page.Title,
		Space: spaceRef{Key: page.SpaceKey},
		Body: map[string]bodyValue{
			page.Body.Representation: {
				Value:          page.Body.Value,
				Representation: page.Body.Representation,
			},
		},
	}
	if page.ParentID != "" {
		req.Ancestors = []ancestorRef{{ID: page.ParentID}}
	}

	var resp contentResponse
	if err := c.do(ctx, http.MethodPost, "/rest/api/content", req, &resp); err != nil {
		return nil, goerr.Wrap(err, "failed to create Confluence page",
			goerr.V("space", page.SpaceKey), goerr.V("title", page.Title))
	}

	base := resp.Links.Base
	if base == "" {
		base = c.wikiURL
	}
	return &model.Page{
		ID:    resp.ID,
		Title: resp.Title,
		URL:   base + resp.Links.WebUI,
	}, nil
}

// do performs a rate limited request. 429 answers are retried for every
// method. Server errors are retried for GET only, since a failed POST may
// already have created the page.
func (c *client) do(ctx context.Context, method, path string, body, v any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return goerr.Wrap(err, "failed to marshal Confluence request")
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return goerr.Wrap(err, "rate limiter wait aborted")
		}

		err := c.doOnce(ctx, method, path, payload, v)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(method, model.StatusOf(err)) {
			return err
		}

		backoff := time.Duration(1<<uint(attempt)) * 200 * time.Millisecond
		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "Confluence request cancelled")
		case <-time.After(backoff):
		}
	}
	return lastErr
}

func retryable(method string, status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	return method == http.MethodGet && status >= 500
}

func (c *client) doOnce(ctx context.Context, method, path string, payload []byte, v any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.wikiURL+path, reader)
	if err != nil {
		return goerr.Wrap(err, "failed to build Confluence request", goerr.V("path", path))
	}
	req.SetBasicAuth(strings.TrimSpace(c.cred.Email), strings.TrimSpace(c.cred.Token))
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return goerr.Wrap(err, "Confluence request failed", goerr.V("path", path))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read Confluence response", goerr.V("path", path))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.Wrap(&model.UpstreamError{
			Service:    "Confluence",
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
		}, "Confluence request failed", goerr.V("path", path), goerr.V("status", resp.StatusCode))
	}

	if v != nil && len(data) > 0 {
		if err := json.Unmarshal(data, v); err != nil {
			return goerr.Wrap(err, "failed to decode Confluence response", goerr.V("path", path))
		}
	}
	return nil
}

func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(data))
}
