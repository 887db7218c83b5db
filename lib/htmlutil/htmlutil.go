package htmlutil

import (
	"bytes"
	"net/url"

	"legiscrape-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// CellText returns the cleaned visible text of a selection,
// suitable for matching against action predicates.
func CellText(sel *goquery.Selection) string {
	return textutil.Sanitize(sel.Text())
}

type Anchor struct {
	Name string
	Href string
}

// Hrefs returns the raw href values of every anchor under sel,
// resolved against base when base is non-nil.
func Hrefs(sel *goquery.Selection, base *url.URL) []string {
	var hrefs []string
	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		if href == "" {
			return
		}
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}
		hrefs = append(hrefs, href)
	})
	return hrefs
}

// GetAnchors extracts the (name, href) pair from every anchor node in
// sel, with names sanitized for matching.
func GetAnchors(sel *goquery.Selection) []Anchor {
	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}

		anchors = append(anchors, Anchor{
			Name: textutil.Sanitize(GetText(n)),
			Href: href,
		})
	}
	return anchors
}
