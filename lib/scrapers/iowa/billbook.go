package iowa

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"legiscrape-backend/lib/pdftext"
	"legiscrape-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

// LGE documents are enrolled (final) versions, LGI introduced ones.
// Enrolled text wins when both exist.
var attachmentRegex = regexp.MustCompile(`(?i)/docs/publications/(LGE|LGI)/[^"'>]+?\.(?:html?|pdf)\b`)

var chapterRegex = regexp.MustCompile(`(?i)\bCHAPTER\s+(\d+)\b`)

// the sponsor line reads like "BY SMITH, JONES, and MILLER (R)"
var sponsorLineRegex = regexp.MustCompile(`(?i)\bBY\s+(.{0,200}?)\s{2}`)
var sponsorLineFallbackRegex = regexp.MustCompile(`(?i)\bBY\s+(.{0,200}?)(?:\s+A\s+BILL\s+FOR\b|\n)`)
var sponsorPartyRegex = regexp.MustCompile(`\(([RDI])\)`)

// BillBook holds the fetched landing page for one bill.
type BillBook struct {
	URL  *url.URL
	HTML []byte
}

func (c *Client) FetchBillBook(ctx context.Context, billURL string) (*BillBook, error) {
	ctx, span := tracer.Start(ctx, "FetchBillBook")
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
		return nil, fmt.Errorf("fetch billbook: %w", err)
	}
	return &BillBook{URL: parsed, HTML: res.Body()}, nil
}

// AttachmentURLs returns the LGE/LGI document urls on the page,
// enrolled versions first.
func (b *BillBook) AttachmentURLs() []string {
	type attachment struct {
		kind string
		url  string
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b.HTML))
	if err != nil {
		return nil
	}

	var found []attachment
	seen := map[string]bool{}
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := b.URL.ResolveReference(ref).String()
		groups := attachmentRegex.FindStringSubmatch(abs)
		if groups == nil || seen[abs] {
			return
		}
		seen[abs] = true
		found = append(found, attachment{kind: strings.ToUpper(groups[1]), url: abs})
	})

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].kind != found[j].kind {
			return found[i].kind == "LGE"
		}
		return found[i].url < found[j].url
	})

	urls := make([]string, len(found))
	for i, a := range found {
		urls[i] = a.url
	}
	return urls
}

// FetchBillText returns the bill's full text. Attachments are
// preferred, the bbContextDoc viewer iframe is the fallback. The
// second return value is the primary document's text on its own,
// which is what the sponsor line gets parsed from.
func (c *Client) FetchBillText(ctx context.Context, book *BillBook) (string, string, error) {
	ctx, span := tracer.Start(ctx, "FetchBillText")
	defer span.End()

	var texts []string
	for _, attachment := range book.AttachmentURLs() {
		text, err := c.fetchDocumentText(ctx, attachment)
		if err != nil {
			slog.ErrorContext(ctx, "failed to fetch attachment", "url", attachment, "err", err)
			continue
		}
		if text != "" {
			texts = append(texts, text)
		}
	}
	if len(texts) > 0 {
		return strings.TrimSpace(strings.Join(texts, " ")), texts[0], nil
	}

	text, err := c.fetchIframeText(ctx, book)
	if err != nil {
		return "", "", err
	}
	return text, text, nil
}

func (c *Client) fetchDocumentText(ctx context.Context, docURL string) (string, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(docURL)
	if err != nil {
		return "", err
	}

	contentType := strings.ToLower(res.Header().Get("Content-Type"))
	if strings.HasSuffix(strings.ToLower(docURL), ".pdf") || strings.Contains(contentType, "pdf") {
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
	return textutil.Clean(doc.Text()), nil
}

func (c *Client) fetchIframeText(ctx context.Context, book *BillBook) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(book.HTML))
	if err != nil {
		return "", err
	}

	src := doc.Find("iframe#bbContextDoc").AttrOr("src", "")
	if src == "" {
		return "", nil
	}
	ref, err := url.Parse(src)
	if err != nil {
		return "", nil
	}
	srcURL := book.URL.ResolveReference(ref)

	res, err := c.Http.R().
		SetContext(ctx).
		Get(srcURL.String())
	if err != nil {
		return "", err
	}

	contentType := strings.ToLower(res.Header().Get("Content-Type"))
	if strings.Contains(contentType, "pdf") || strings.HasSuffix(strings.ToLower(srcURL.Path), ".pdf") {
		text, err := pdftext.Extract(res.Body())
		if err != nil {
			return "", err
		}
		return textutil.Clean(text), nil
	}

	sub, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return "", err
	}

	// the viewer sometimes nests the actual document one iframe deeper
	if innerSrc := sub.Find("iframe").AttrOr("src", ""); innerSrc != "" {
		innerRef, err := url.Parse(innerSrc)
		if err == nil {
			text, err := c.fetchDocumentText(ctx, srcURL.ResolveReference(innerRef).String())
			if err == nil && text != "" {
				return text, nil
			}
		}
	}
	return textutil.Clean(sub.Text()), nil
}

// ParseSponsor pulls the "BY ..." sponsor line and party letter out
// of the bill text.
func ParseSponsor(billText string) (string, string) {
	groups := sponsorLineRegex.FindStringSubmatch(billText)
	if groups == nil {
		groups = sponsorLineFallbackRegex.FindStringSubmatch(billText)
	}
	if groups == nil {
		return "", ""
	}
	sponsor := textutil.Clean(groups[1])

	party := ""
	if pm := sponsorPartyRegex.FindStringSubmatch(sponsor); pm != nil {
		party = pm[1]
	}
	return sponsor, party
}

// ParseActIdentifier finds a "Chapter ####" reference in enacted bill
// text. Empty when the bill has not been assigned a chapter.
func ParseActIdentifier(billText string) string {
	groups := chapterRegex.FindStringSubmatch(billText)
	if groups == nil {
		return ""
	}
	return "Chapter " + groups[1]
}
