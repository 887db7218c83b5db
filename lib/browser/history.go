package browser

import (
	"context"
	"log/slog"
	"net/url"

	"legiscrape-backend/lib/billstatus"
	"legiscrape-backend/lib/textutil"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("legiscrape.lib.browser")

// HistorySource reads a BillBook action table after letting the page
// run its scripts, expanding the collapsed action widget first. It
// satisfies the iowa scraper's HistorySource interface.
type HistorySource struct {
	Browser *Browser
}

func (s HistorySource) History(ctx context.Context, billURL string) ([]billstatus.ActionEntry, error) {
	ctx, span := tracer.Start(ctx, "History")
	defer span.End()
	span.SetAttributes(attribute.String("url", billURL))

	base, err := url.Parse(billURL)
	if err != nil {
		return nil, err
	}

	page, err := s.Browser.NewPage()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer page.Close()

	_, err = page.Goto(billURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(60000),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// the full action log sits behind an expand widget
	expand := page.Locator("a.actionWidgetExpand").First()
	if visible, _ := expand.IsVisible(); visible {
		if err := expand.Click(); err != nil {
			slog.Debug("could not expand action widget", "url", billURL, "err", err)
		}
	}

	table := page.Locator("div.billAction table.billActionTable")
	err = table.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(8000),
	})
	if err != nil {
		// no action table means no history, not a failure
		return nil, nil
	}

	rows, err := table.First().Locator("tbody tr").All()
	if err != nil {
		return nil, err
	}

	var entries []billstatus.ActionEntry
	for _, row := range rows {
		cells, err := row.Locator("td").All()
		if err != nil || len(cells) == 0 {
			continue
		}

		date, _ := cells[0].InnerText()
		text := ""
		if len(cells) > 1 {
			text, _ = cells[1].InnerText()
		} else {
			text, _ = row.InnerText()
		}

		var hrefs []string
		anchors, err := row.Locator("a[href]").All()
		if err == nil {
			for _, a := range anchors {
				href, err := a.GetAttribute("href")
				if err != nil || href == "" {
					continue
				}
				if ref, err := url.Parse(href); err == nil {
					href = base.ResolveReference(ref).String()
				}
				hrefs = append(hrefs, href)
			}
		}

		entries = append(entries, billstatus.ActionEntry{
			Date:  textutil.Sanitize(date),
			Text:  textutil.Sanitize(text),
			Hrefs: hrefs,
		})
	}

	span.SetAttributes(attribute.Int("entries", len(entries)))
	return entries, nil
}
