package iowa

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"legiscrape-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

// BillLink is one entry discovered in the bill tracking directory.
type BillLink struct {
	Billno string
	URL    string
}

var billbookHrefRegex = regexp.MustCompile(`(?i)ba=([^&]+)`)

const directoryPathTmpl = "/legislation/billTracking/directory/index/listing" +
	"?ga=%d&legType=%s&min=%d&max=%d"

// maximum bill number probed per type
const directoryMaxNumber = 9999

// consecutive empty 100-number ranges before giving up on a bill type
const directoryEmptyCutoff = 3

// EnumerateDirectory walks the directory listings for one general
// assembly, by bill type and 100-number ranges, and returns the
// de-duplicated BillBook links it finds.
func (c *Client) EnumerateDirectory(ctx context.Context, ga int) ([]BillLink, error) {
	ctx, span := tracer.Start(ctx, "EnumerateDirectory")
	defer span.End()
	span.SetAttributes(attribute.Int("ga", ga))

	var all []BillLink
	for _, leg := range LegTypes {
		links, err := c.enumerateType(ctx, ga, leg)
		if err != nil {
			return nil, err
		}
		all = append(all, links...)
	}

	seen := map[string]bool{}
	var uniq []BillLink
	for _, link := range all {
		key := link.Billno + "|" + link.URL
		if seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, link)
	}

	span.SetAttributes(attribute.Int("bills", len(uniq)))
	return uniq, nil
}

func (c *Client) enumerateType(ctx context.Context, ga int, leg string) ([]BillLink, error) {
	var links []BillLink
	emptyRanges := 0

	for start := 1; start <= directoryMaxNumber; start += 100 {
		end := start + 99
		if end > directoryMaxNumber {
			end = directoryMaxNumber
		}

		res, err := c.Http.R().
			SetContext(ctx).
			Get(fmt.Sprintf(directoryPathTmpl, ga, leg, start, end))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			emptyRanges++
			if emptyRanges >= directoryEmptyCutoff {
				break
			}
			continue
		}

		found, err := c.parseDirectoryPage(res.Body(), ga)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			emptyRanges++
			if emptyRanges >= directoryEmptyCutoff {
				break
			}
			continue
		}

		emptyRanges = 0
		links = append(links, found...)
	}

	slog.Debug("enumerated directory type", "ga", ga, "leg", leg, "bills", len(links))
	return links, nil
}

func (c *Client) parseDirectoryPage(body []byte, ga int) ([]BillLink, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var links []BillLink
	doc.Find(`a[href*="/legislation/BillBook?ba="]`).Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" {
			return
		}
		billURL := href
		if strings.HasPrefix(href, "/") {
			billURL = c.BaseURL.String() + href
		}

		groups := billbookHrefRegex.FindStringSubmatch(billURL)
		if groups == nil {
			return
		}
		billno := strings.ToUpper(textutil.Clean(strings.ReplaceAll(groups[1], "+", " ")))

		if !strings.Contains(billURL, fmt.Sprintf("&ga=%d", ga)) {
			billURL = fmt.Sprintf("%s&ga=%d", billURL, ga)
		}
		links = append(links, BillLink{Billno: billno, URL: billURL})
	})
	return links, nil
}
