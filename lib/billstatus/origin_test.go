package billstatus

import "testing"

func TestInferOrigin(t *testing.T) {
	testCases := []struct {
		billno   string
		table    OriginTable
		expected Chamber
	}{
		{billno: "HF 2034", table: IowaOrigins, expected: ChamberHouse},
		{billno: "hsb 102", table: IowaOrigins, expected: ChamberHouse},
		{billno: "HCR 3", table: IowaOrigins, expected: ChamberHouse},
		{billno: "SF 512", table: IowaOrigins, expected: ChamberSenate},
		{billno: "SSB 1001", table: IowaOrigins, expected: ChamberSenate},
		{billno: "XYZ 9", table: IowaOrigins, expected: ChamberUnknown},
		{billno: "", table: IowaOrigins, expected: ChamberUnknown},
		{billno: "HB1234", table: IllinoisOrigins, expected: ChamberHouse},
		{billno: "SB88", table: IllinoisOrigins, expected: ChamberSenate},
		{billno: "HJR12", table: IllinoisOrigins, expected: ChamberHouse},
		{billno: "HB 33", table: OhioOrigins, expected: ChamberHouse},
		{billno: "SB 104", table: OhioOrigins, expected: ChamberSenate},
	}

	for _, test := range testCases {
		got := InferOrigin(test.billno, test.table)
		if got != test.expected {
			t.Errorf("InferOrigin(%q) = %q, want %q", test.billno, got, test.expected)
		}
	}
}

func TestChamberOther(t *testing.T) {
	if ChamberHouse.Other() != ChamberSenate {
		t.Error("House.Other() != Senate")
	}
	if ChamberSenate.Other() != ChamberHouse {
		t.Error("Senate.Other() != House")
	}
	if ChamberUnknown.Other() != ChamberUnknown {
		t.Error("Unknown.Other() != Unknown")
	}
}

func TestSponsorsAddedNames(t *testing.T) {
	entry := ActionEntry{Text: "Sponsors added, Smith, Jones and Miller"}
	names := sponsorsAddedNames(entry)
	expected := []string{"Smith", "Jones", "Miller"}
	if len(names) != len(expected) {
		t.Fatalf("names = %v, want %v", names, expected)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], expected[i])
		}
	}
}
