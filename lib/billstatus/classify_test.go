package billstatus

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyEmptyHistory(t *testing.T) {
	for _, origin := range []Chamber{ChamberHouse, ChamberSenate, ChamberUnknown} {
		rec := Classify(nil, origin, IowaRules())
		expected := StatusRecord{Pending: true}
		if diff := cmp.Diff(expected, rec); diff != "" {
			t.Errorf("origin %q: empty history mismatch:\n%s", origin, diff)
		}
	}
}

func TestClassifyNoPredicateMatches(t *testing.T) {
	entries := []ActionEntry{
		{Date: "1/5/2023", Chamber: ChamberHouse, Text: "Referred to committee on commerce"},
		{Date: "1/9/2023", Chamber: ChamberHouse, Text: "Subcommittee assigned"},
	}
	rec := Classify(entries, ChamberHouse, IowaRules())
	expected := StatusRecord{Pending: true}
	if diff := cmp.Diff(expected, rec); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestClassifyEarliestIntroducedWins(t *testing.T) {
	entries := []ActionEntry{
		{Date: "3/1/2023", Chamber: ChamberHouse, Text: "Introduced, referred to Judiciary"},
		{Date: "1/15/2023", Chamber: ChamberSenate, Text: "Introduced"},
	}
	rec := Classify(entries, ChamberHouse, IowaRules())
	if rec.Introduced != "1/15/2023" {
		t.Errorf("Introduced = %q, want 1/15/2023", rec.Introduced)
	}
}

func TestClassifyIntroducedIgnoresDatelessDuplicates(t *testing.T) {
	entries := []ActionEntry{
		{Date: "", Chamber: ChamberHouse, Text: "Introduced"},
		{Date: "2/20/2023", Chamber: ChamberHouse, Text: "Introduced, referred to Ways and Means"},
	}
	rec := Classify(entries, ChamberHouse, IowaRules())
	if rec.Introduced != "2/20/2023" {
		t.Errorf("Introduced = %q, want 2/20/2023", rec.Introduced)
	}
}

func TestClassifyPassageBuckets(t *testing.T) {
	testCases := []struct {
		name           string
		origin         Chamber
		entries        []ActionEntry
		expectedOrigin string
		expectedOther  string
	}{
		{
			name:   "origin chamber only",
			origin: ChamberHouse,
			entries: []ActionEntry{
				{Date: "2/1/2023", Chamber: ChamberHouse, Text: "Passed House, 80-10"},
			},
			expectedOrigin: "2/1/2023",
			expectedOther:  "",
		},
		{
			name:   "both chambers",
			origin: ChamberHouse,
			entries: []ActionEntry{
				{Date: "2/1/2023", Chamber: ChamberHouse, Text: "Passed House, 80-10"},
				{Date: "3/1/2023", Chamber: ChamberSenate, Text: "Passed Senate, 30-20"},
			},
			expectedOrigin: "2/1/2023",
			expectedOther:  "3/1/2023",
		},
		{
			name:   "senate origin flips buckets",
			origin: ChamberSenate,
			entries: []ActionEntry{
				{Date: "2/1/2023", Chamber: ChamberHouse, Text: "Passed House, 80-10"},
				{Date: "3/1/2023", Chamber: ChamberSenate, Text: "Passed Senate, 30-20"},
			},
			expectedOrigin: "3/1/2023",
			expectedOther:  "2/1/2023",
		},
		{
			name:   "first match wins per bucket",
			origin: ChamberHouse,
			entries: []ActionEntry{
				{Date: "2/1/2023", Chamber: ChamberHouse, Text: "Passed House, 80-10"},
				{Date: "4/1/2023", Chamber: ChamberHouse, Text: "Passed House, as amended, 85-5"},
			},
			expectedOrigin: "2/1/2023",
			expectedOther:  "",
		},
		{
			name:   "unknown origin defaults to second chamber bucket",
			origin: ChamberUnknown,
			entries: []ActionEntry{
				{Date: "2/1/2023", Chamber: ChamberHouse, Text: "Passed House, 80-10"},
			},
			expectedOrigin: "",
			expectedOther:  "2/1/2023",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			rec := Classify(test.entries, test.origin, IowaRules())
			if rec.PassedOrigin != test.expectedOrigin {
				t.Errorf("PassedOrigin = %q, want %q", rec.PassedOrigin, test.expectedOrigin)
			}
			if rec.PassedOther != test.expectedOther {
				t.Errorf("PassedOther = %q, want %q", rec.PassedOther, test.expectedOther)
			}
		})
	}
}

func TestClassifyUnknownOriginBucketFirst(t *testing.T) {
	rules := IowaRules()
	rules.UnknownOriginPolicy = BucketFirst
	entries := []ActionEntry{
		{Date: "2/1/2023", Chamber: ChamberHouse, Text: "Passed House, 80-10"},
	}
	rec := Classify(entries, ChamberUnknown, rules)
	if rec.PassedOrigin != "2/1/2023" {
		t.Errorf("PassedOrigin = %q, want 2/1/2023", rec.PassedOrigin)
	}
	if rec.PassedOther != "" {
		t.Errorf("PassedOther = %q, want empty", rec.PassedOther)
	}
}

func TestClassifyEnacted(t *testing.T) {
	entries := []ActionEntry{
		{Date: "4/12/2023", Chamber: ChamberSenate, Text: "Passed Senate, 30-18"},
		{Date: "5/1/2023", Chamber: "", Text: "Signed by Governor"},
	}
	rec := Classify(entries, ChamberSenate, IowaRules())
	if rec.Enacted != "Y" {
		t.Errorf("Enacted = %q, want Y", rec.Enacted)
	}
	if rec.EnactedDate != "5/1/2023" {
		t.Errorf("EnactedDate = %q, want 5/1/2023", rec.EnactedDate)
	}
	if rec.Pending {
		t.Error("Pending = true, want false")
	}
}

func TestClassifyDead(t *testing.T) {
	entries := []ActionEntry{
		{Date: "1/10/2023", Chamber: ChamberHouse, Text: "Introduced"},
		{Date: "3/4/2023", Chamber: ChamberHouse, Text: "Withdrawn"},
	}
	rec := Classify(entries, ChamberHouse, IowaRules())
	if rec.Dead != "3/4/2023" {
		t.Errorf("Dead = %q, want 3/4/2023", rec.Dead)
	}
	if rec.DeadChamber != ChamberHouse {
		t.Errorf("DeadChamber = %q, want House", rec.DeadChamber)
	}
	if rec.Pending {
		t.Error("Pending = true, want false")
	}
}

func TestClassifyDeadChamberFromText(t *testing.T) {
	entries := []ActionEntry{
		{Date: "4/30/2023", Chamber: "", Text: "Died in Senate"},
	}
	rec := Classify(entries, ChamberHouse, IowaRules())
	if rec.DeadChamber != ChamberSenate {
		t.Errorf("DeadChamber = %q, want Senate", rec.DeadChamber)
	}
}

func TestClassifyDateRecoveryFromHref(t *testing.T) {
	entries := []ActionEntry{
		{
			Date:    "",
			Chamber: ChamberHouse,
			Text:    "Introduced, journal entry",
			Hrefs:   []string{"https://www.legis.iowa.gov/docs/journal?hdate=20230415"},
		},
	}
	rec := Classify(entries, ChamberHouse, IowaRules())
	if rec.Introduced != "4/15/2023" {
		t.Errorf("Introduced = %q, want 4/15/2023", rec.Introduced)
	}
}

func TestClassifyMatchedStatusWithoutDate(t *testing.T) {
	entries := []ActionEntry{
		{Date: "", Chamber: "", Text: "Signed by Governor"},
	}
	rec := Classify(entries, ChamberHouse, IowaRules())
	if rec.Enacted != "Y" {
		t.Errorf("Enacted = %q, want Y", rec.Enacted)
	}
	if rec.EnactedDate != "" {
		t.Errorf("EnactedDate = %q, want empty", rec.EnactedDate)
	}
	if rec.Pending {
		t.Error("Pending = true, want false")
	}
}

func TestClassifyWhitespaceNoise(t *testing.T) {
	entries := []ActionEntry{
		{Date: "2/1/2023", Chamber: ChamberHouse, Text: "  Passed  House,\n\t 80-10 "},
	}
	rec := Classify(entries, ChamberHouse, IowaRules())
	if rec.PassedOrigin != "2/1/2023" {
		t.Errorf("PassedOrigin = %q, want 2/1/2023", rec.PassedOrigin)
	}
}

func TestClassifyIdempotent(t *testing.T) {
	entries := []ActionEntry{
		{Date: "1/15/2023", Chamber: ChamberHouse, Text: "Introduced"},
		{Date: "2/1/2023", Chamber: ChamberHouse, Text: "Passed House, 80-10"},
		{Date: "5/1/2023", Chamber: "", Text: "Signed by Governor"},
	}
	first := Classify(entries, ChamberHouse, IowaRules())
	second := Classify(entries, ChamberHouse, IowaRules())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("classify is not idempotent:\n%s", diff)
	}
}

func TestClassifyIllinois(t *testing.T) {
	entries := []ActionEntry{
		{Date: "1/20/2023", Chamber: ChamberHouse, Text: "Filed with the Clerk by Rep. Jane Doe"},
		{Date: "1/25/2023", Chamber: ChamberHouse, Text: "First Reading"},
		{Date: "1/26/2023", Chamber: ChamberHouse, Text: "Referred to Rules Committee"},
		{Date: "3/10/2023", Chamber: ChamberHouse, Text: "Third Reading - Short Debate - Passed 070-035-000"},
		{Date: "4/2/2023", Chamber: ChamberSenate, Text: "First Reading"},
		{Date: "5/5/2023", Chamber: ChamberSenate, Text: "Third Reading - Passed; 040-015-000"},
		{Date: "6/9/2023", Chamber: ChamberHouse, Text: "Governor Approved"},
		{Date: "1/1/2024", Chamber: ChamberHouse, Text: "Effective Date January 1, 2024"},
	}
	rec := Classify(entries, ChamberHouse, IllinoisRules())

	expected := StatusRecord{
		Introduced:   "1/25/2023",
		PassedOrigin: "3/10/2023",
		PassedOther:  "5/5/2023",
		Effective:    "1/1/2024",
		Enacted:      "Y",
		EnactedDate:  "6/9/2023",
		Pending:      false,
	}
	if diff := cmp.Diff(expected, rec); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}

func TestClassifyIllinoisSecondChamberFirstReadingNotIntroduction(t *testing.T) {
	entries := []ActionEntry{
		{Date: "4/2/2023", Chamber: ChamberSenate, Text: "First Reading"},
	}
	rec := Classify(entries, ChamberHouse, IllinoisRules())
	if rec.Introduced != "" {
		t.Errorf("Introduced = %q, want empty", rec.Introduced)
	}
}

func TestClassifyIllinoisKillTags(t *testing.T) {
	for _, tag := range []string{
		"Session Sine Die",
		"Re-referred to Rules Committee",
		"Rule 19(a) / Re-referred to Rules Committee",
		"Rule 3-9(a) / Re-referred to Assignments",
		"Vetoed by Governor",
		"Amendatory Veto Overridden - Fail",
	} {
		entries := []ActionEntry{{Date: "6/1/2023", Chamber: ChamberHouse, Text: tag}}
		rec := Classify(entries, ChamberHouse, IllinoisRules())
		if rec.Dead != "6/1/2023" {
			t.Errorf("tag %q: Dead = %q, want 6/1/2023", tag, rec.Dead)
		}
		if rec.Pending {
			t.Errorf("tag %q: Pending = true, want false", tag)
		}
	}
}

func TestClassifyIllinoisCosponsors(t *testing.T) {
	entries := []ActionEntry{
		{Date: "2/1/2023", Chamber: ChamberHouse, Text: "Added as Co-Sponsor Rep. Alice Smith"},
		{Date: "2/2/2023", Chamber: ChamberHouse, Text: "Added as Chief Co-Sponsor Rep. Bob Jones"},
		{Date: "2/3/2023", Chamber: ChamberHouse, Text: "Added as Co-Sponsor Rep. Alice Smith"},
	}
	rec := Classify(entries, ChamberHouse, IllinoisRules())
	expected := []string{"Rep. Alice Smith", "Rep. Bob Jones"}
	if diff := cmp.Diff(expected, rec.Cosponsors); diff != "" {
		t.Errorf("cosponsors mismatch:\n%s", diff)
	}
}

func TestClassifyOhio(t *testing.T) {
	entries := []ActionEntry{
		{Date: "2/14/2023", Chamber: ChamberSenate, Text: "Introduced"},
		{Date: "4/26/2023", Chamber: ChamberSenate, Text: "Passed"},
		{Date: "6/21/2023", Chamber: ChamberHouse, Text: "Passed"},
		{Date: "7/3/2023", Chamber: "", Text: "Signed by the Governor"},
	}
	rec := Classify(entries, ChamberSenate, OhioRules())

	expected := StatusRecord{
		Introduced:   "2/14/2023",
		PassedOrigin: "4/26/2023",
		PassedOther:  "6/21/2023",
		Enacted:      "Y",
		EnactedDate:  "7/3/2023",
		Pending:      false,
	}
	if diff := cmp.Diff(expected, rec); diff != "" {
		t.Errorf("mismatch:\n%s", diff)
	}
}
