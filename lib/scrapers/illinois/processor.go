package illinois

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"legiscrape-backend/lib/billstatus"
	"legiscrape-backend/lib/export"
	"legiscrape-backend/lib/pipeline"
	"legiscrape-backend/lib/textutil"
)

// Enumerator lists every bill in the configured session ids.
type Enumerator struct {
	Client   *Client
	Sessions []int
}

func (e Enumerator) Bills(ctx context.Context) ([]pipeline.BillRef, error) {
	var refs []pipeline.BillRef
	for _, sid := range e.Sessions {
		for _, docType := range DocTypes {
			links, err := e.Client.EnumerateBillList(ctx, docType, sid)
			if err != nil {
				return nil, err
			}
			for _, link := range links {
				refs = append(refs, pipeline.BillRef{
					Legislature: "illinois",
					Session:     strconv.Itoa(link.SessionID),
					Billno:      Billno(link.DocType, link.DocNum),
					URL:         link.StatusURL,
				})
			}
		}
	}
	return refs, nil
}

// Billno renders the canonical zero-padded identifier, e.g. HB0042.
func Billno(docType, docNum string) string {
	n, err := strconv.Atoi(docNum)
	if err != nil {
		return docType + docNum
	}
	return fmt.Sprintf("%s%04d", docType, n)
}

// Processor turns one Bill Status page into an output row.
type Processor struct {
	Client   *Client
	Keywords []string
	// directory bill texts get saved under, empty disables saving
	TextDir string
}

func (p *Processor) Process(ctx context.Context, ref pipeline.BillRef) (*export.Row, error) {
	ctx, span := tracer.Start(ctx, "Process")
	defer span.End()

	page, err := p.Client.FetchStatusPage(ctx, ref.URL)
	if err != nil {
		return nil, err
	}

	fullText, err := p.Client.FetchFullText(ctx, page)
	if err != nil {
		return nil, err
	}

	hits := textutil.KeywordHits(fullText, p.Keywords)
	if len(hits) == 0 {
		return nil, nil
	}

	ga := gaFor(ref.URL, page)
	sponsors, primaryLink := page.Sponsors()
	party := p.Client.FetchMemberParty(ctx, primaryLink)

	textPath := ""
	if p.TextDir != "" && fullText != "" {
		textPath, err = export.SaveBillText(p.TextDir, "GA"+ga, ref.Billno, fullText)
		if err != nil {
			return nil, err
		}
	}

	row := &export.Row{
		State:           "Illinois",
		GA:              ga,
		Identifier:      ref.Billno,
		Sponsor:         sponsors,
		SponsorParty:    party,
		Link:            ref.URL,
		BillTextPath:    textPath,
		MatchedKeywords: strings.Join(hits, ", "),
	}

	origin := billstatus.InferOrigin(ref.Billno, billstatus.IllinoisOrigins)
	rec := billstatus.Classify(page.Actions(), origin, billstatus.IllinoisRules())
	row.ApplyStatus(rec)

	// a Public Act assignment means enacted even when the action log
	// never recorded the signature
	act, effectiveLiteral := page.PublicAct()
	if act != "" {
		row.ActIdentifier = act
		row.Enacted = "Y"
	}
	if effectiveLiteral != "" && row.EffectiveDate == "" {
		row.EffectiveDate = effectiveLiteral
	}

	return row, nil
}

func gaFor(statusURL string, page *StatusPage) string {
	if m := gaURLRegex.FindStringSubmatch(statusURL); m != nil {
		return m[1]
	}
	if m := gaHeaderRegex.FindStringSubmatch(page.doc.Text()); m != nil {
		return m[1]
	}
	return ""
}
