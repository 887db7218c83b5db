// Package iowa scrapes the Iowa Legislature's BillBook portal. Bills
// are discovered through the bill tracking directory, full text comes
// from LGE/LGI attachments with the document viewer iframe as a
// fallback, and the action history table feeds the status classifier.
package iowa

import (
	"net/url"
	"time"

	"legiscrape-backend/lib/polite"
	"legiscrape-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("legiscrape.lib.scrapers.iowa")

const DefaultBaseURL = "https://www.legis.iowa.gov"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// bill types crawled from the directory listing
var LegTypes = []string{"HF", "SF", "HSB", "SSB"}

type Client struct {
	BaseURL *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	// defaults to DefaultBaseURL
	BaseURL string
	// nil disables pacing, only do that in tests
	Limiter *polite.Limiter
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetHeader("user-agent", userAgent)
	httpClient.SetHeader("accept-language", "en-US,en;q=0.9")
	httpClient.SetTimeout(time.Second * 45)
	polite.ConfigureRetry(httpClient)
	if opts.Limiter != nil {
		opts.Limiter.Attach(httpClient)
	}
	telemetry.InstrumentResty(httpClient, "legiscrape.lib.scrapers.iowa")

	return &Client{
		BaseURL: parsed,
		Http:    httpClient,
	}, nil
}
