package billstatus

import "strings"

// OriginTable maps bill-number prefixes to the chamber a bill
// originates in. Prefixes are matched case-insensitively.
type OriginTable struct {
	House  []string
	Senate []string
}

var IowaOrigins = OriginTable{
	House:  []string{"HF", "HSB", "HR", "HCR", "HCJ"},
	Senate: []string{"SF", "SSB", "SR", "SCR", "SCJ"},
}

var IllinoisOrigins = OriginTable{
	House:  []string{"HB", "HJR", "HR"},
	Senate: []string{"SB", "SJR", "SR"},
}

var OhioOrigins = OriginTable{
	House:  []string{"HB", "HJR", "HR"},
	Senate: []string{"SB", "SJR", "SR"},
}

// InferOrigin derives a bill's origin chamber from its identifier
// prefix. Unrecognized prefixes yield ChamberUnknown; how passage
// actions are bucketed in that case is decided by the ruleset's
// UnknownOriginPolicy, never implicitly.
func InferOrigin(billno string, table OriginTable) Chamber {
	bn := strings.ToUpper(strings.TrimSpace(billno))
	for _, p := range table.House {
		if strings.HasPrefix(bn, p) {
			return ChamberHouse
		}
	}
	for _, p := range table.Senate {
		if strings.HasPrefix(bn, p) {
			return ChamberSenate
		}
	}
	return ChamberUnknown
}
