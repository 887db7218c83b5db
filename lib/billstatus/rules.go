package billstatus

import (
	"regexp"
	"strings"
)

// UnknownOriginPolicy decides which passage bucket an action falls into
// when the bill's origin chamber could not be inferred from its prefix.
// The source data gives no way to disambiguate, so the choice is an
// explicit configuration value rather than an implicit default.
type UnknownOriginPolicy int

const (
	// BucketSecond files passages of an unknown-origin bill under the
	// second chamber.
	BucketSecond UnknownOriginPolicy = iota
	// BucketFirst files them under the originating chamber instead.
	BucketFirst
)

// Ruleset is a declarative description of one legislature's action log
// vocabulary. Supporting a new legislature means writing a new Ruleset,
// not a new scraper.
type Ruleset struct {
	Name string

	// Introduced reports whether the entry is an introduction event.
	// All matches are collected; the earliest calendar date wins.
	Introduced func(e ActionEntry, origin Chamber) bool
	// Passage reports the chamber an entry records a passage for.
	Passage func(e ActionEntry) (Chamber, bool)
	// Effective reports whether the entry sets an effective date.
	Effective func(e ActionEntry) bool
	// Enacted reports whether the entry is a governor signature.
	Enacted func(e ActionEntry) bool
	// Dead reports whether the entry kills the bill, and the chamber it
	// died in when the text names one.
	Dead func(e ActionEntry) (Chamber, bool)
	// Cosponsors extracts cosponsor names added by the entry.
	Cosponsors func(e ActionEntry) []string

	UnknownOriginPolicy UnknownOriginPolicy
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func parseChamber(s string) Chamber {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "house", "h":
		return ChamberHouse
	case "senate", "s":
		return ChamberSenate
	}
	return ChamberUnknown
}

// ParseChamber maps free-text chamber labels to a Chamber.
func ParseChamber(s string) Chamber { return parseChamber(s) }

var (
	passedHouseRegex  = regexp.MustCompile(`(?i)\bPassed\s+House\b`)
	passedSenateRegex = regexp.MustCompile(`(?i)\bPassed\s+Senate\b`)
	signedGovRegex    = regexp.MustCompile(`(?i)\b(?:Signed|Approved)\s+by\s+(?:the\s+)?Governor\b`)
	diedInRegex       = regexp.MustCompile(`(?i)\bDied in (House|Senate)\b`)
	effectiveRegex    = regexp.MustCompile(`(?i)\bEffective(?:\s+(?:date|on))?\b`)
)

// IowaRules matches the BillBook action log vocabulary.
func IowaRules() Ruleset {
	return Ruleset{
		Name: "iowa",
		Introduced: func(e ActionEntry, _ Chamber) bool {
			return containsFold(e.Text, "introduced")
		},
		Passage: func(e ActionEntry) (Chamber, bool) {
			if passedHouseRegex.MatchString(e.Text) {
				return ChamberHouse, true
			}
			if passedSenateRegex.MatchString(e.Text) {
				return ChamberSenate, true
			}
			return ChamberUnknown, false
		},
		Effective: func(e ActionEntry) bool {
			return effectiveRegex.MatchString(e.Text)
		},
		Enacted: func(e ActionEntry) bool {
			return signedGovRegex.MatchString(e.Text)
		},
		Dead: func(e ActionEntry) (Chamber, bool) {
			if m := diedInRegex.FindStringSubmatch(e.Text); m != nil {
				return parseChamber(m[1]), true
			}
			if containsFold(e.Text, "withdrawn") || containsFold(e.Text, "failed") {
				return ChamberUnknown, true
			}
			return ChamberUnknown, false
		},
		Cosponsors:          sponsorsAddedNames,
		UnknownOriginPolicy: BucketSecond,
	}
}

var illinoisKillTags = []string{
	"Session Sine Die",
	"Re-referred to Rules Committee",
	"Rule 19(a)",
	"Rule 3-9(a)",
	"Vetoed",
	"Amendatory Veto Overridden - Fail",
}

// IllinoisRules matches the Bill Status action log vocabulary, where
// passage shows up as a third-reading vote in the acting chamber.
func IllinoisRules() Ruleset {
	return Ruleset{
		Name: "illinois",
		Introduced: func(e ActionEntry, origin Chamber) bool {
			if containsFold(e.Text, "Filed with Secretary") {
				return true
			}
			return containsFold(e.Text, "First Reading") && e.Chamber == origin
		},
		Passage: func(e ActionEntry) (Chamber, bool) {
			if containsFold(e.Text, "Third Reading") && containsFold(e.Text, "Passed") {
				return e.Chamber, e.Chamber != ChamberUnknown
			}
			return ChamberUnknown, false
		},
		Effective: func(e ActionEntry) bool {
			return containsFold(e.Text, "Effective Date")
		},
		Enacted: func(e ActionEntry) bool {
			return containsFold(e.Text, "Governor Approved")
		},
		Dead: func(e ActionEntry) (Chamber, bool) {
			for _, tag := range illinoisKillTags {
				if containsFold(e.Text, tag) {
					return e.Chamber, true
				}
			}
			return ChamberUnknown, false
		},
		Cosponsors:          illinoisCosponsorNames,
		UnknownOriginPolicy: BucketSecond,
	}
}

// OhioRules matches the legislation status grid vocabulary, which keys
// passage entirely off the row's chamber cell.
func OhioRules() Ruleset {
	return Ruleset{
		Name: "ohio",
		Introduced: func(e ActionEntry, _ Chamber) bool {
			return containsFold(e.Text, "introduced")
		},
		Passage: func(e ActionEntry) (Chamber, bool) {
			if containsFold(e.Text, "passed") {
				return e.Chamber, e.Chamber != ChamberUnknown
			}
			return ChamberUnknown, false
		},
		Effective: func(e ActionEntry) bool {
			return containsFold(e.Text, "effective")
		},
		Enacted: func(e ActionEntry) bool {
			return containsFold(e.Text, "signed by the governor")
		},
		Dead: func(e ActionEntry) (Chamber, bool) {
			for _, word := range []string{"withdrawn", "died", "failed", "rejected", "vetoed"} {
				if containsFold(e.Text, word) {
					return ChamberUnknown, true
				}
			}
			return ChamberUnknown, false
		},
		UnknownOriginPolicy: BucketSecond,
	}
}

var (
	cosponsorAddedRegex = regexp.MustCompile(`(?i)^.*Added as (?:Chief )?Co-Sponsor\s+`)
	sponsorsAddedRegex  = regexp.MustCompile(`(?i)\bSponsors?\s+added,\s*(.+)$`)
	bracketNoteRegex    = regexp.MustCompile(`\s*\[[^\]]+\]\s*$`)
)

// illinoisCosponsorNames pulls the member name out of an
// "Added as (Chief) Co-Sponsor Rep. Jane Doe" action.
func illinoisCosponsorNames(e ActionEntry) []string {
	if !containsFold(e.Text, "Added as Co-Sponsor") &&
		!containsFold(e.Text, "Added as Chief Co-Sponsor") {
		return nil
	}
	name := cosponsorAddedRegex.ReplaceAllString(e.Text, "")
	if i := strings.IndexByte(name, ';'); i >= 0 {
		name = name[:i]
	}
	name = bracketNoteRegex.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return []string{name}
}

// sponsorsAddedNames splits a "Sponsors added, A, B and C" style action
// into individual names.
func sponsorsAddedNames(e ActionEntry) []string {
	m := sponsorsAddedRegex.FindStringSubmatch(e.Text)
	if m == nil {
		return nil
	}
	list := strings.NewReplacer(";", ",", " and ", ",").Replace(m[1])
	var names []string
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}
