// Package browser drives a headless browser for portals that only
// render their action history from script. The plain HTTP parsers in
// lib/scrapers stay the default; this is the fallback.
package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// New launches a headless chromium. Call Close when done.
func New() (*Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	chromium, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	return &Browser{pw: pw, browser: chromium}, nil
}

func (b *Browser) NewPage() (playwright.Page, error) {
	return b.browser.NewPage()
}

func (b *Browser) Close() error {
	err := b.browser.Close()
	stopErr := b.pw.Stop()
	if err != nil {
		return err
	}
	return stopErr
}
