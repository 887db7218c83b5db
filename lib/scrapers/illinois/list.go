package illinois

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

// BillRef identifies one bill on the Bill Status site. SessionID is
// the site's internal session key, GA the general assembly number
// parsed from the listing header or url, they are not the same thing.
type BillRef struct {
	SessionID int
	DocType   string
	DocNum    string
	StatusURL string
	GA        string
}

var (
	docNumRegex   = regexp.MustCompile(`DocNum=(\d+)`)
	docTypeRegex  = regexp.MustCompile(`DocTypeID=([A-Z]+)`)
	gaURLRegex    = regexp.MustCompile(`[?&]GA=(\d+)\b`)
	gaHeaderRegex = regexp.MustCompile(`(?i)\b(\d{2,3})(?:st|nd|rd|th)\s+General Assembly\b`)
)

// the site is inconsistent about the session query parameter's casing
var listPathTmpls = []string{
	"/Legislation/RegularSession/%s?SessionId=%d",
	"/Legislation/RegularSession/%s?SessionID=%d",
}

// EnumerateBillList walks the regular session listing for one
// document type, trying both session parameter spellings. A listing
// that cannot be fetched yields an empty slice, not an error, so one
// flaky session does not kill a multi-session crawl.
func (c *Client) EnumerateBillList(ctx context.Context, docType string, sessionID int) ([]BillRef, error) {
	ctx, span := tracer.Start(ctx, "EnumerateBillList")
	defer span.End()
	span.SetAttributes(
		attribute.String("doctype", docType),
		attribute.Int("session_id", sessionID),
	)

	var refs []BillRef
	for _, tmpl := range listPathTmpls {
		res, err := c.Http.R().
			SetContext(ctx).
			Get(fmt.Sprintf(tmpl, docType, sessionID))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		refs, err = c.parseBillList(res.Body(), docType, sessionID)
		if err != nil {
			return nil, err
		}
		if len(refs) > 0 {
			break
		}
	}
	if len(refs) == 0 {
		slog.Warn("no bills found in listing", "doctype", docType, "session_id", sessionID)
	}

	seen := map[string]bool{}
	var uniq []BillRef
	for _, ref := range refs {
		key := fmt.Sprintf("%d|%s|%s", ref.SessionID, ref.DocType, ref.DocNum)
		if seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, ref)
	}

	span.SetAttributes(attribute.Int("bills", len(uniq)))
	return uniq, nil
}

func (c *Client) parseBillList(body []byte, docType string, sessionID int) ([]BillRef, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	detectedGA := ""
	if m := gaHeaderRegex.FindStringSubmatch(doc.Text()); m != nil {
		detectedGA = m[1]
	}

	var refs []BillRef
	doc.Find(`a[href*="/Legislation/BillStatus"]`).Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if !strings.Contains(href, "DocTypeID=") || !strings.Contains(href, "DocNum=") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := c.BaseURL.ResolveReference(ref).String()

		numGroups := docNumRegex.FindStringSubmatch(abs)
		typeGroups := docTypeRegex.FindStringSubmatch(abs)
		if numGroups == nil || typeGroups == nil {
			return
		}
		if !strings.EqualFold(typeGroups[1], docType) {
			return
		}

		ga := detectedGA
		if m := gaURLRegex.FindStringSubmatch(abs); m != nil {
			ga = m[1]
		}
		refs = append(refs, BillRef{
			SessionID: sessionID,
			DocType:   docType,
			DocNum:    numGroups[1],
			StatusURL: abs,
			GA:        ga,
		})
	})
	return refs, nil
}
