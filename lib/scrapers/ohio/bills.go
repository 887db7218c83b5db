package ohio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

// Bill is one discovered bill page.
type Bill struct {
	Assembly string
	Type     string
	Number   string
	URL      string
}

// consecutive missing bill numbers before the probe stops for a type
const probeMissCutoff = 50

// highest bill number the probe will try
const probeMaxNumber = 1500

// ListBills scrapes the assembly's listing page for bill links.
func (c *Client) ListBills(ctx context.Context, assembly string) ([]Bill, error) {
	ctx, span := tracer.Start(ctx, "ListBills")
	defer span.End()
	span.SetAttributes(attribute.String("assembly", assembly))

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/legislation/" + assembly)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, err
	}

	billHrefRegex := regexp.MustCompile(
		fmt.Sprintf(`(?i)/legislation/%s/(sb|hb)(\d+)`, regexp.QuoteMeta(assembly)),
	)

	var bills []Bill
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		groups := billHrefRegex.FindStringSubmatch(href)
		if groups == nil {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := c.BaseURL.ResolveReference(ref).String()
		if seen[abs] {
			return
		}
		seen[abs] = true
		bills = append(bills, Bill{
			Assembly: assembly,
			Type:     strings.ToUpper(groups[1]),
			Number:   groups[2],
			URL:      abs,
		})
	})

	span.SetAttributes(attribute.Int("bills", len(bills)))
	return bills, nil
}

// ProbeBills walks bill numbers sequentially per type, stopping a
// type after enough consecutive misses. Used when the listing page
// yields little, the site serves bill pages that were never linked.
func (c *Client) ProbeBills(ctx context.Context, assembly string) ([]Bill, error) {
	ctx, span := tracer.Start(ctx, "ProbeBills")
	defer span.End()
	span.SetAttributes(attribute.String("assembly", assembly))

	var bills []Bill
	for _, billType := range BillTypes {
		misses := 0
		for num := 1; num <= probeMaxNumber; num++ {
			if ctx.Err() != nil {
				return bills, ctx.Err()
			}

			path := fmt.Sprintf("/legislation/%s/%s%d", assembly, strings.ToLower(billType), num)
			res, err := c.Http.R().
				SetContext(ctx).
				Get(path)

			exists := err == nil &&
				res.StatusCode() == 200 &&
				len(res.Body()) >= 1000 &&
				!strings.Contains(strings.ToLower(string(res.Body())), "not found")
			if !exists {
				misses++
				if misses >= probeMissCutoff {
					slog.Info(
						"stopping probe after consecutive misses",
						"assembly", assembly,
						"type", billType,
						"last", num,
					)
					break
				}
				continue
			}

			misses = 0
			bills = append(bills, Bill{
				Assembly: assembly,
				Type:     billType,
				Number:   fmt.Sprintf("%d", num),
				URL:      c.BaseURL.String() + path,
			})
		}
	}

	span.SetAttributes(attribute.Int("bills", len(bills)))
	return bills, nil
}

// AllBills merges the listing page results with a probe when the
// listing looks too sparse to be trusted.
func (c *Client) AllBills(ctx context.Context, assembly string) ([]Bill, error) {
	bills, err := c.ListBills(ctx, assembly)
	if err != nil {
		return nil, err
	}
	if len(bills) >= 10 {
		return bills, nil
	}

	slog.Info("listing page sparse, probing bill numbers", "assembly", assembly, "listed", len(bills))
	probed, err := c.ProbeBills(ctx, assembly)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var merged []Bill
	for _, b := range append(bills, probed...) {
		if seen[b.URL] {
			continue
		}
		seen[b.URL] = true
		merged = append(merged, b)
	}
	return merged, nil
}
