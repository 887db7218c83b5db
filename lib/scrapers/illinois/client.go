// Package illinois scrapes the Illinois General Assembly's Bill
// Status pages. Bills are discovered from the regular session listing
// per document type, actions come from the Actions table where each
// row reads "M/D/YYYY  Chamber  action text", and full text is pulled
// from the FullText views for keyword matching.
package illinois

import (
	"net/url"
	"time"

	"legiscrape-backend/lib/polite"
	"legiscrape-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("legiscrape.lib.scrapers.illinois")

const DefaultBaseURL = "https://www.ilga.gov"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

// bills only, resolutions are omitted
var DocTypes = []string{"HB", "SB"}

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
	httpClient.SetHeader("referer", baseURL+"/Legislation/")
	httpClient.SetTimeout(time.Second * 45)
	polite.ConfigureRetry(httpClient)
	if opts.Limiter != nil {
		opts.Limiter.Attach(httpClient)
	}
	telemetry.InstrumentResty(httpClient, "legiscrape.lib.scrapers.illinois")

	return &Client{
		BaseURL: parsed,
		Http:    httpClient,
	}, nil
}
