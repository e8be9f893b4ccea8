package translate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/model"
)

// DefaultTimeout bounds each provider call
const DefaultTimeout = 10 * time.Second

const defaultGoogleURL = "https://translate.googleapis.com/translate_a/single"

// Google uses the public gtx translate endpoint, which needs no API key
type Google struct {
	endpoint   string
	httpClient *http.Client
}

// GoogleOption configures Google
type GoogleOption func(*Google)

// WithGoogleEndpoint replaces the endpoint URL
func WithGoogleEndpoint(endpoint string) GoogleOption {
	return func(g *Google) {
		g.endpoint = endpoint
	}
}

// NewGoogle creates the provider
func NewGoogle(opts ...GoogleOption) *Google {
	g := &Google{
		endpoint:   defaultGoogleURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (x *Google) Name() string { return "google" }

func (x *Google) Translate(ctx context.Context, text, source, target string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	data, err := get(ctx, x.httpClient, "Google Translate", x.endpoint+"?"+q.Encode())
	if err != nil {
		return "", err
	}

	// The answer is a positional array; the first element lists
	// [translated, original, ...] segments.
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", goerr.Wrap(err, "failed to decode Google Translate response")
	}
	if len(raw) == 0 {
		return "", goerr.New("empty Google Translate response")
	}
	segments, ok := raw[0].([]any)
	if !ok {
		return "", goerr.New("unexpected Google Translate response shape")
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	return b.String(), nil
}

func get(ctx context.Context, client *http.Client, service, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build translate request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "translate request failed", goerr.V("service", service))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read translate response", goerr.V("service", service))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, goerr.Wrap(&model.UpstreamError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(data)),
		}, "translate request failed")
	}
	return data, nil
}
