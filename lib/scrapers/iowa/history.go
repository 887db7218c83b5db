package iowa

import (
	"bytes"
	"context"

	"legiscrape-backend/lib/billstatus"
	"legiscrape-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// HistorySource produces a bill's action history. The plain HTTP
// parser below handles pages where the action table is server
// rendered, the browser package drives a headless browser for pages
// that only populate it from script.
type HistorySource interface {
	History(ctx context.Context, billURL string) ([]billstatus.ActionEntry, error)
}

// History implements HistorySource by parsing the already fetched
// BillBook page.
func (c *Client) History(ctx context.Context, billURL string) ([]billstatus.ActionEntry, error) {
	ctx, span := tracer.Start(ctx, "History")
	defer span.End()

	book, err := c.FetchBillBook(ctx, billURL)
	if err != nil {
		return nil, err
	}
	return ParseHistory(book)
}

// ParseHistory reads the action table out of a BillBook page. Rows
// are returned in document order. Iowa action rows carry no chamber
// column, the classifier infers chamber from the action text.
func ParseHistory(book *BillBook) ([]billstatus.ActionEntry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(book.HTML))
	if err != nil {
		return nil, err
	}

	var entries []billstatus.ActionEntry
	doc.Find("div.billAction table.billActionTable tbody tr").
		Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() == 0 {
				return
			}

			date := htmlutil.CellText(cells.Eq(0))
			text := ""
			if cells.Length() > 1 {
				text = htmlutil.CellText(cells.Eq(1))
			} else {
				text = htmlutil.CellText(tr)
			}

			entries = append(entries, billstatus.ActionEntry{
				Date:  date,
				Text:  text,
				Hrefs: htmlutil.Hrefs(tr, book.URL),
			})
		})
	return entries, nil
}
