// Package ohio scrapes the Ohio General Assembly's legislation site.
// Bills are discovered from the assembly listing page with a
// systematic number probe as backstop, full text comes from the
// Current Version document, and the status grid feeds the classifier.
package ohio

import (
	"net/url"
	"time"

	"legiscrape-backend/lib/polite"
	"legiscrape-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("legiscrape.lib.scrapers.ohio")

const DefaultBaseURL = "https://www.legislature.ohio.gov"

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

var BillTypes = []string{"SB", "HB"}

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
	httpClient.SetTimeout(time.Second * 30)
	polite.ConfigureRetry(httpClient)
	if opts.Limiter != nil {
		opts.Limiter.Attach(httpClient)
	}
	telemetry.InstrumentResty(httpClient, "legiscrape.lib.scrapers.ohio")

	return &Client{
		BaseURL: parsed,
		Http:    httpClient,
	}, nil
}
