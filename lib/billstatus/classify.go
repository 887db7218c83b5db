package billstatus

import "legiscrape-backend/lib/textutil"

// Classify runs a single forward pass over a bill's history and
// produces its status record. Every field is first-match-wins except
// Introduced, which collects all matches and keeps the earliest
// calendar date; legislatures sometimes log an introduction per chamber
// or duplicate filings, and the true event is not reliably first in
// page order.
//
// Entries with a blank date still classify; see RecoverDate. An empty
// entry list yields the all-empty, pending record.
func Classify(entries []ActionEntry, origin Chamber, rules Ruleset) StatusRecord {
	rec := StatusRecord{Pending: true}

	var introDates []string
	deadMatched := false
	seenCosponsors := map[string]bool{}

	for _, raw := range entries {
		e := raw
		e.Text = textutil.Sanitize(e.Text)
		if e.Date == "" {
			e.Date = RecoverDate(e)
		}
		if e.Text == "" {
			continue
		}

		if rules.Introduced != nil && rules.Introduced(e, origin) && e.Date != "" {
			introDates = append(introDates, e.Date)
		}

		if rules.Passage != nil {
			if ch, ok := rules.Passage(e); ok {
				if originBucket(ch, origin, rules.UnknownOriginPolicy) {
					if rec.PassedOrigin == "" {
						rec.PassedOrigin = e.Date
					}
				} else if rec.PassedOther == "" {
					rec.PassedOther = e.Date
				}
			}
		}

		if rules.Effective != nil && rules.Effective(e) && rec.Effective == "" {
			rec.Effective = e.Date
		}

		if rules.Enacted != nil && rules.Enacted(e) && rec.Enacted == "" {
			rec.Enacted = "Y"
			rec.EnactedDate = e.Date
		}

		if rules.Dead != nil && !deadMatched {
			if ch, ok := rules.Dead(e); ok {
				deadMatched = true
				rec.Dead = e.Date
				if ch == ChamberUnknown {
					ch = origin
				}
				rec.DeadChamber = ch
			}
		}

		if rules.Cosponsors != nil {
			for _, name := range rules.Cosponsors(e) {
				if !seenCosponsors[name] {
					seenCosponsors[name] = true
					rec.Cosponsors = append(rec.Cosponsors, name)
				}
			}
		}
	}

	rec.Introduced = earliestDate(introDates)
	rec.Pending = rec.Enacted != "Y" && !deadMatched
	return rec
}

// originBucket reports whether a passage by chamber ch belongs to the
// origin-chamber bucket. An unknown passage chamber can only happen via
// an unknown origin ruleset path and follows the same policy.
func originBucket(ch, origin Chamber, policy UnknownOriginPolicy) bool {
	switch origin {
	case ChamberUnknown:
		return policy == BucketFirst
	case ch.Other():
		return false
	}
	return ch == origin
}
