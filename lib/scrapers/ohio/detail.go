package ohio

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"legiscrape-backend/lib/billstatus"
	"legiscrape-backend/lib/htmlutil"
	"legiscrape-backend/lib/pdftext"
	"legiscrape-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

var documentHrefRegex = regexp.MustCompile(`(?i)\.(pdf|docx?)$`)

// DetailPage is a fetched bill landing page.
type DetailPage struct {
	URL *url.URL
	doc *goquery.Document
}

func (c *Client) FetchDetail(ctx context.Context, billURL string) (*DetailPage, error) {
	ctx, span := tracer.Start(ctx, "FetchDetail")
	defer span.End()
	span.SetAttributes(attribute.String("url", billURL))

	parsed, err := url.Parse(billURL)
	if err != nil {
		return nil, err
	}
	res, err := c.Http.R().
		SetContext(ctx).
		Get(billURL)
	if err != nil {
		return nil, fmt.Errorf("fetch bill detail: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, err
	}
	return &DetailPage{URL: parsed, doc: doc}, nil
}

// TextURL finds the bill text document, preferring the Current
// Version section and falling back to any document-looking link.
func (p *DetailPage) TextURL() string {
	href := ""
	p.eachSectionHeader("Current Version", func(hdr *goquery.Selection) {
		if href != "" {
			return
		}
		href = hdr.NextAllFiltered("p").First().Find("a[href]").First().AttrOr("href", "")
	})

	if href == "" {
		p.doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			h := a.AttrOr("href", "")
			if documentHrefRegex.MatchString(h) {
				href = h
				return false
			}
			return true
		})
	}
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return p.URL.ResolveReference(ref).String()
}

// Sponsors returns the primary sponsor names.
func (p *DetailPage) Sponsors() []string {
	return p.sectionNames("Primary Sponsors")
}

// Cosponsors returns the cosponsor names.
func (p *DetailPage) Cosponsors() []string {
	return p.sectionNames("Cosponsors")
}

func (p *DetailPage) sectionNames(title string) []string {
	var names []string
	p.eachSectionHeader(title, func(hdr *goquery.Selection) {
		anchors := htmlutil.GetAnchors(hdr.NextAllFiltered("div").First().Find("a"))
		for _, a := range anchors {
			if a.Name != "" {
				names = append(names, a.Name)
			}
		}
	})
	return names
}

func (p *DetailPage) eachSectionHeader(title string, fn func(hdr *goquery.Selection)) {
	p.doc.Find("h2").Each(func(_ int, hdr *goquery.Selection) {
		if strings.TrimSpace(hdr.Text()) == title {
			fn(hdr)
		}
	})
}

// FetchBillText downloads the bill's current version text, handling
// both PDF and HTML documents.
func (c *Client) FetchBillText(ctx context.Context, textURL string) (string, error) {
	ctx, span := tracer.Start(ctx, "FetchBillText")
	defer span.End()

	if textURL == "" {
		return "", nil
	}
	res, err := c.Http.R().
		SetContext(ctx).
		Get(textURL)
	if err != nil {
		return "", err
	}

	contentType := strings.ToLower(res.Header().Get("Content-Type"))
	if strings.Contains(contentType, "pdf") ||
		strings.HasSuffix(strings.ToLower(textURL), ".pdf") ||
		pdftext.IsPDF(res.Body()) {
		text, err := pdftext.Extract(res.Body())
		if err != nil {
			return "", err
		}
		return textutil.Clean(text), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	return textutil.Sanitize(doc.Text()), nil
}

// FetchStatus reads the status grid at <bill url>/status into history
// entries. Rows carry an explicit chamber cell, so the classifier can
// bucket passages without parsing the action text for a chamber name.
func (c *Client) FetchStatus(ctx context.Context, billURL string) ([]billstatus.ActionEntry, error) {
	ctx, span := tracer.Start(ctx, "FetchStatus")
	defer span.End()

	statusURL := strings.TrimRight(billURL, "/") + "/status"
	parsed, err := url.Parse(statusURL)
	if err != nil {
		return nil, err
	}
	res, err := c.Http.R().
		SetContext(ctx).
		Get(statusURL)
	if err != nil {
		return nil, fmt.Errorf("fetch bill status: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, err
	}

	var entries []billstatus.ActionEntry
	doc.Find("table.data-grid.legislation-status-table tbody tr").
		Each(func(_ int, tr *goquery.Selection) {
			dateSpan := tr.Find("th.date-cell span").First()
			if dateSpan.Length() == 0 {
				return
			}
			actionCell := tr.Find("td.action-cell").First()
			if actionCell.Length() == 0 {
				return
			}
			action := htmlutil.CellText(actionCell.Find("span").First())
			if action == "" {
				action = htmlutil.CellText(actionCell)
			}

			chamber := htmlutil.CellText(tr.Find("td.chamber-cell span").First())
			entries = append(entries, billstatus.ActionEntry{
				Date:    htmlutil.CellText(dateSpan),
				Chamber: billstatus.ParseChamber(chamber),
				Text:    action,
				Hrefs:   htmlutil.Hrefs(tr, parsed),
			})
		})
	return entries, nil
}
