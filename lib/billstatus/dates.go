package billstatus

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Journal links embed the action date as YYYYMMDD, either in a query
// parameter (?hdate=20230415) or in a journal-document path segment
// (/HJNL/20250304_...).
var (
	hrefQueryDate = regexp.MustCompile(`(?i)[?&](?:hdate|date|actionDate)=(\d{8})`)
	hrefPathDate  = regexp.MustCompile(`(?i)/(?:HJNL|SJNL|HJRNL|SJRNL)/(\d{8})`)
)

var literalDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([A-Za-z]+ \d{1,2}, \d{4})\b`),
	regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
}

func ymdToMDY(ymd string) string {
	y := ymd[:4]
	m, _ := strconv.Atoi(ymd[4:6])
	d, _ := strconv.Atoi(ymd[6:8])
	return fmt.Sprintf("%d/%d/%s", m, d, y)
}

func dateFromHref(href string) string {
	if m := hrefQueryDate.FindStringSubmatch(href); m != nil {
		return ymdToMDY(m[1])
	}
	if m := hrefPathDate.FindStringSubmatch(href); m != nil {
		return ymdToMDY(m[1])
	}
	return ""
}

// RecoverDate fills in a blank date cell from, in priority order, a
// same-row hyperlink and then a literal date inside the action text.
// Returns "" when neither yields one; the entry is still classified.
func RecoverDate(e ActionEntry) string {
	for _, href := range e.Hrefs {
		if d := dateFromHref(href); d != "" {
			return d
		}
	}
	for _, pat := range literalDatePatterns {
		if m := pat.FindStringSubmatch(e.Text); m != nil {
			return m[1]
		}
	}
	return ""
}

// dateKey orders date strings by calendar value. Unparseable dates sort
// last so they never win an earliest-date tie-break against a real one.
func dateKey(d string) time.Time {
	for _, layout := range []string{"1/2/2006", "January 2, 2006"} {
		if t, err := time.Parse(layout, d); err == nil {
			return t
		}
	}
	return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
}

func earliestDate(dates []string) string {
	earliest := ""
	var earliestKey time.Time
	for _, d := range dates {
		if d == "" {
			continue
		}
		k := dateKey(d)
		if earliest == "" || k.Before(earliestKey) {
			earliest = d
			earliestKey = k
		}
	}
	return earliest
}
