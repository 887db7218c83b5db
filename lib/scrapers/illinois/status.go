package illinois

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"legiscrape-backend/lib/billstatus"
	"legiscrape-backend/lib/htmlutil"
	"legiscrape-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

// every Actions row renders as "M/D/YYYY  Chamber  action text"
var actionRowRegex = regexp.MustCompile(`^\s*(\d{1,2}/\d{1,2}/\d{4})\s+(\w+)\s+(.*)$`)

var (
	publicActRegex       = regexp.MustCompile(`Public Act\s+(\d{2,3}-\d{4})`)
	effectiveLiteralRegex = regexp.MustCompile(`Effective Date\s+([A-Za-z]+\s+\d{1,2},\s+\d{4})`)
	memberPartyRegex     = regexp.MustCompile(`\(([DRI])\)\s*-\s*\d{2,3}th General Assembly`)
)

// StatusPage is a fetched Bill Status page.
type StatusPage struct {
	URL *url.URL
	doc *goquery.Document
}

func (c *Client) FetchStatusPage(ctx context.Context, statusURL string) (*StatusPage, error) {
	ctx, span := tracer.Start(ctx, "FetchStatusPage")
	defer span.End()
	span.SetAttributes(attribute.String("url", statusURL))

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
	return &StatusPage{URL: parsed, doc: doc}, nil
}

// Actions parses the Actions table into history entries. Lines that
// do not carry a leading date are skipped, the site uses those for
// continuation notes.
func (p *StatusPage) Actions() []billstatus.ActionEntry {
	var entries []billstatus.ActionEntry
	p.eachSectionHeader("Actions", func(hdr *goquery.Selection) {
		table := hdr.NextAllFiltered("table").First()
		if table.Length() == 0 {
			table = hdr.Parent().Find("table").First()
		}
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			line := htmlutil.CellText(tr)
			groups := actionRowRegex.FindStringSubmatch(line)
			if groups == nil {
				return
			}
			entries = append(entries, billstatus.ActionEntry{
				Date:    groups[1],
				Chamber: billstatus.ParseChamber(groups[2]),
				Text:    groups[3],
				Hrefs:   htmlutil.Hrefs(tr, p.URL),
			})
		})
	})
	return entries
}

// PublicAct returns the "Public Act NNN-NNNN" identifier and the
// literal effective date from the status header, both empty when the
// bill was not enacted.
func (p *StatusPage) PublicAct() (string, string) {
	text := textutil.Sanitize(p.doc.Text())

	act := ""
	if m := publicActRegex.FindStringSubmatch(text); m != nil {
		act = m[1]
	}
	effective := ""
	if m := effectiveLiteralRegex.FindStringSubmatch(text); m != nil {
		effective = m[1]
	}
	return act, effective
}

// Sponsors returns the sponsor lists for both chambers joined with
// " | ", plus the primary sponsor's member page url when present.
func (p *StatusPage) Sponsors() (string, string) {
	var blocks []string
	primaryLink := ""

	p.eachSectionHeader("Senate Sponsors", func(hdr *goquery.Selection) {
		if ul := hdr.NextAllFiltered("ul").First(); ul.Length() > 0 {
			blocks = append(blocks, htmlutil.CellText(ul))
		}
		if primaryLink == "" {
			primaryLink = p.firstMemberLink(hdr)
		}
	})
	p.eachSectionHeader("House Sponsors", func(hdr *goquery.Selection) {
		if ul := hdr.NextAllFiltered("ul").First(); ul.Length() > 0 {
			blocks = append(blocks, htmlutil.CellText(ul))
		}
		if primaryLink == "" {
			primaryLink = p.firstMemberLink(hdr)
		}
	})

	return strings.Join(blocks, " | "), primaryLink
}

func (p *StatusPage) firstMemberLink(hdr *goquery.Selection) string {
	href := hdr.NextAllFiltered("ul").First().Find("a[href]").First().AttrOr("href", "")
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return p.URL.ResolveReference(ref).String()
}

func (p *StatusPage) eachSectionHeader(title string, fn func(hdr *goquery.Selection)) {
	p.doc.Find("h4, h5").Each(func(_ int, hdr *goquery.Selection) {
		if strings.TrimSpace(hdr.Text()) == title {
			fn(hdr)
		}
	})
}

// FetchMemberParty reads the (D)/(R)/(I) letter off a member page.
func (c *Client) FetchMemberParty(ctx context.Context, memberURL string) string {
	if memberURL == "" {
		return ""
	}
	res, err := c.Http.R().
		SetContext(ctx).
		Get(memberURL)
	if err != nil {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return ""
	}
	if m := memberPartyRegex.FindStringSubmatch(textutil.Sanitize(doc.Text())); m != nil {
		return m[1]
	}
	return ""
}

// FetchFullText concatenates every FullText version of the bill.
func (c *Client) FetchFullText(ctx context.Context, page *StatusPage) (string, error) {
	ctx, span := tracer.Start(ctx, "FetchFullText")
	defer span.End()

	first := ""
	page.doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := a.AttrOr("href", "")
		if strings.Contains(strings.ToLower(href), "/legislation/billstatus/fulltext") {
			first = href
			return false
		}
		return true
	})
	if first == "" {
		return "", nil
	}
	ref, err := url.Parse(first)
	if err != nil {
		return "", nil
	}
	ftURL := page.URL.ResolveReference(ref)

	res, err := c.Http.R().
		SetContext(ctx).
		Get(ftURL.String())
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", err
	}

	versionURLs := []string{}
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if !strings.Contains(strings.ToLower(href), "/legislation/billstatus/fulltext") {
			return
		}
		vref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := ftURL.ResolveReference(vref).String()
		if !seen[abs] {
			seen[abs] = true
			versionURLs = append(versionURLs, abs)
		}
	})
	if !seen[ftURL.String()] {
		versionURLs = append(versionURLs, ftURL.String())
	}

	var texts []string
	for _, vurl := range versionURLs {
		res, err := c.Http.R().
			SetContext(ctx).
			Get(vurl)
		if err != nil {
			slog.ErrorContext(ctx, "failed to fetch full text version", "url", vurl, "err", err)
			continue
		}
		vdoc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
		if err != nil {
			continue
		}
		if text := textutil.Sanitize(vdoc.Text()); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, " ")), nil
}
