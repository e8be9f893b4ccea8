package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
)

const defaultMyMemoryURL = "https://api.mymemory.translated.net/get"

// MyMemory uses the free MyMemory translation API
type MyMemory struct {
	endpoint   string
	httpClient *http.Client
}

// MyMemoryOption configures MyMemory
type MyMemoryOption func(*MyMemory)

// WithMyMemoryEndpoint replaces the endpoint URL
func WithMyMemoryEndpoint(endpoint string) MyMemoryOption {
	return func(m *MyMemory) {
		m.endpoint = endpoint
	}
}

// NewMyMemory creates the provider
func NewMyMemory(opts ...MyMemoryOption) *MyMemory {
	m := &MyMemory{
		endpoint:   defaultMyMemoryURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (x *MyMemory) Name() string { return "mymemory" }

func (x *MyMemory) Translate(ctx context.Context, text, source, target string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", source+"|"+target)

	data, err := get(ctx, x.httpClient, "MyMemory", x.endpoint+"?"+q.Encode())
	if err != nil {
		return "", err
	}

	var resp struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		ResponseStatus  any    `json:"responseStatus"`
		ResponseDetails string `json:"responseDetails"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", goerr.Wrap(err, "failed to decode MyMemory response")
	}

	// responseStatus is a number on success and sometimes a string on
	// failure
	if status, ok := resp.ResponseStatus.(float64); !ok || status != http.StatusOK {
		return "", goerr.New("MyMemory translation failed",
			goerr.V("status", resp.ResponseStatus), goerr.V("details", resp.ResponseDetails))
	}
	return resp.ResponseData.TranslatedText, nil
}
