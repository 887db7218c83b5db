// Package billstatus turns a bill's legislative action history into a
// canonical status record. The classifier is a pure function: it owns no
// shared state and is safe to call concurrently across bills.
package billstatus

type Chamber string

const (
	ChamberHouse   Chamber = "House"
	ChamberSenate  Chamber = "Senate"
	ChamberUnknown Chamber = ""
)

func (c Chamber) Other() Chamber {
	switch c {
	case ChamberHouse:
		return ChamberSenate
	case ChamberSenate:
		return ChamberHouse
	}
	return ChamberUnknown
}

// ActionEntry is one row of a bill's history log, in document order.
// Date is M/D/YYYY or empty when the source row had no usable date cell.
// Chamber is the chamber performing the action, not the bill's origin.
// Hrefs carries any same-row hyperlink URLs, used for date recovery.
type ActionEntry struct {
	Date    string
	Chamber Chamber
	Text    string
	Hrefs   []string
}

// StatusRecord is the classifier output. Every date is an M/D/YYYY
// string; empty means unknown or not yet occurred. A matched status with
// an empty date means "occurred, date unknown", not "did not occur".
type StatusRecord struct {
	Introduced   string
	PassedOrigin string
	PassedOther  string
	Effective    string
	// Enacted is "Y" once a governor-signature action matched, else "".
	Enacted     string
	EnactedDate string
	Dead        string
	DeadChamber Chamber
	// Cosponsors is ordered by first appearance, de-duplicated.
	Cosponsors []string
	// Pending is derived: neither enacted nor dead.
	Pending bool
}
