package iowa

import (
	"context"
	"strconv"
	"strings"

	"legiscrape-backend/lib/billstatus"
	"legiscrape-backend/lib/export"
	"legiscrape-backend/lib/pipeline"
	"legiscrape-backend/lib/textutil"
)

// Enumerator lists every bill in the configured general assemblies.
type Enumerator struct {
	Client *Client
	GAs    []int
}

func (e Enumerator) Bills(ctx context.Context) ([]pipeline.BillRef, error) {
	var refs []pipeline.BillRef
	for _, ga := range e.GAs {
		links, err := e.Client.EnumerateDirectory(ctx, ga)
		if err != nil {
			return nil, err
		}
		for _, link := range links {
			refs = append(refs, pipeline.BillRef{
				Legislature: "iowa",
				Session:     strconv.Itoa(ga),
				Billno:      link.Billno,
				URL:         link.URL,
			})
		}
	}
	return refs, nil
}

// Processor turns one BillBook page into an output row.
type Processor struct {
	Client *Client
	// overrides reading the history from the fetched page, used to
	// plug in the headless browser for script-rendered action tables
	History HistorySource
	// bills whose text matches none of these are dropped
	Keywords []string
	// directory bill texts get saved under, empty disables saving
	TextDir string
}

func (p *Processor) Process(ctx context.Context, ref pipeline.BillRef) (*export.Row, error) {
	ctx, span := tracer.Start(ctx, "Process")
	defer span.End()

	book, err := p.Client.FetchBillBook(ctx, ref.URL)
	if err != nil {
		return nil, err
	}

	billText, primaryText, err := p.Client.FetchBillText(ctx, book)
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

	sponsor, party := ParseSponsor(primaryText)

	row := &export.Row{
		State:           "Iowa",
		GA:              ref.Session,
		Identifier:      ref.Billno,
		Sponsor:         sponsor,
		SponsorParty:    party,
		Link:            ref.URL,
		BillTextPath:    textPath,
		ActIdentifier:   ParseActIdentifier(billText),
		MatchedKeywords: strings.Join(hits, ", "),
	}

	var entries []billstatus.ActionEntry
	if p.History != nil {
		entries, err = p.History.History(ctx, ref.URL)
	} else {
		entries, err = ParseHistory(book)
	}
	if err != nil {
		return nil, err
	}

	origin := billstatus.InferOrigin(ref.Billno, billstatus.IowaOrigins)
	rec := billstatus.Classify(entries, origin, billstatus.IowaRules())
	row.ApplyStatus(rec)

	return row, nil
}
