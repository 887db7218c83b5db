package ohio

import (
	"context"
	"strings"

	"legiscrape-backend/lib/billstatus"
	"legiscrape-backend/lib/export"
	"legiscrape-backend/lib/pipeline"
	"legiscrape-backend/lib/textutil"
)

// Enumerator lists every bill in the configured assemblies.
type Enumerator struct {
	Client     *Client
	Assemblies []string
}

func (e Enumerator) Bills(ctx context.Context) ([]pipeline.BillRef, error) {
	var refs []pipeline.BillRef
	for _, assembly := range e.Assemblies {
		bills, err := e.Client.AllBills(ctx, assembly)
		if err != nil {
			return nil, err
		}
		for _, bill := range bills {
			refs = append(refs, pipeline.BillRef{
				Legislature: "ohio",
				Session:     bill.Assembly,
				Billno:      bill.Type + bill.Number,
				URL:         bill.URL,
			})
		}
	}
	return refs, nil
}

// Processor turns one bill page into an output row.
type Processor struct {
	Client   *Client
	Keywords []string
	// directory bill texts get saved under, empty disables saving
	TextDir string
}

func (p *Processor) Process(ctx context.Context, ref pipeline.BillRef) (*export.Row, error) {
	ctx, span := tracer.Start(ctx, "Process")
	defer span.End()

	page, err := p.Client.FetchDetail(ctx, ref.URL)
	if err != nil {
		return nil, err
	}

	billText, err := p.Client.FetchBillText(ctx, page.TextURL())
	if err != nil {
		return nil, err
	}

	hits := textutil.KeywordHits(billText, p.Keywords)
	if len(hits) == 0 {
		return nil, nil
	}

	textPath := ""
	if p.TextDir != "" && billText != "" {
		textPath, err = export.SaveBillText(p.TextDir, "GA"+ref.Session, ref.Billno, billText)
		if err != nil {
			return nil, err
		}
	}

	row := &export.Row{
		State:           "Ohio",
		GA:              ref.Session,
		Identifier:      ref.Billno,
		Sponsor:         strings.Join(page.Sponsors(), "; "),
		Link:            ref.URL,
		BillTextPath:    textPath,
		Cosponsor:       strings.Join(page.Cosponsors(), "; "),
		MatchedKeywords: strings.Join(hits, ", "),
	}

	entries, err := p.Client.FetchStatus(ctx, ref.URL)
	if err != nil {
		return nil, err
	}

	origin := billstatus.InferOrigin(ref.Billno, billstatus.OhioOrigins)
	rec := billstatus.Classify(entries, origin, billstatus.OhioRules())
	row.ApplyStatus(rec)

	return row, nil
}
