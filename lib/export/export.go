// Package export writes scrape results to the CSV layout the research
// team ingests, and saves full bill texts alongside.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"legiscrape-backend/lib/billstatus"
)

// Row is one output line. Column names follow the ingest sheet, so
// several are awkward as Go identifiers.
type Row struct {
	State           string
	GA              string
	Identifier      string
	Sponsor         string
	SponsorParty    string
	Link            string
	BillTextPath    string
	Cosponsor       string
	ActIdentifier   string
	MatchedKeywords string

	IntroducedDate   string
	EffectiveDate    string
	PassedFirstDate  string
	PassedSecondDate string
	DeadDate         string
	Enacted          string
	EnactedDate      string
}

func Columns() []string {
	return []string{
		"State",
		"GA",
		"Policy (bill) identifier",
		"Policy sponsor",
		"Policy sponsor party",
		"Link to bill",
		"bill text",
		"Cosponsor",
		"Act identifier",
		"Matched keywords",
		"Introduced date",
		"Effective date",
		"Passed introduced chamber date",
		"Passed second chamber date",
		"Dead date",
		"Enacted (Y/N)",
		"Enacted Date",
	}
}

func (r Row) record() []string {
	return []string{
		r.State,
		r.GA,
		r.Identifier,
		r.Sponsor,
		r.SponsorParty,
		r.Link,
		r.BillTextPath,
		r.Cosponsor,
		r.ActIdentifier,
		r.MatchedKeywords,
		r.IntroducedDate,
		r.EffectiveDate,
		r.PassedFirstDate,
		r.PassedSecondDate,
		r.DeadDate,
		r.Enacted,
		r.EnactedDate,
	}
}

// ApplyStatus copies classifier output into the row's status columns.
func (r *Row) ApplyStatus(rec billstatus.StatusRecord) {
	r.IntroducedDate = rec.Introduced
	r.EffectiveDate = rec.Effective
	r.PassedFirstDate = rec.PassedOrigin
	r.PassedSecondDate = rec.PassedOther
	r.DeadDate = rec.Dead
	r.EnactedDate = rec.EnactedDate
	if rec.Enacted == "Y" {
		r.Enacted = "Y"
	} else {
		r.Enacted = "N"
	}
	if len(rec.Cosponsors) > 0 {
		r.Cosponsor = strings.Join(rec.Cosponsors, "; ")
	}
}

// WriteCSV writes rows (with header) to path, creating parent
// directories as needed.
func WriteCSV(path string, rows []Row) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write(Columns())
	if err != nil {
		return err
	}
	for _, row := range rows {
		err = w.Write(row.record())
		if err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// SaveBillText stores a bill's full text under
// <dir>/<session>/<billno>.txt and returns the path written.
func SaveBillText(dir, session, billno, text string) (string, error) {
	sessionDir := filepath.Join(dir, sanitize(session))
	err := os.MkdirAll(sessionDir, 0755)
	if err != nil {
		return "", err
	}
	path := filepath.Join(sessionDir, sanitize(billno)+".txt")
	err = os.WriteFile(path, []byte(text), 0644)
	if err != nil {
		return "", err
	}
	return path, nil
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ' ':
			return '_'
		}
		return r
	}, s)
}
