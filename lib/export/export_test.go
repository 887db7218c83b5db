package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"legiscrape-backend/lib/billstatus"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestApplyStatus(t *testing.T) {
	row := Row{
		State:      "Iowa",
		GA:         "90",
		Identifier: "HF123",
	}
	row.ApplyStatus(billstatus.StatusRecord{
		Introduced:   "1/10/2023",
		PassedOrigin: "3/1/2023",
		PassedOther:  "4/2/2023",
		Enacted:      "Y",
		EnactedDate:  "5/3/2023",
		Cosponsors:   []string{"Smith", "Jones"},
	})

	require.Equal(t, "1/10/2023", row.IntroducedDate)
	require.Equal(t, "3/1/2023", row.PassedFirstDate)
	require.Equal(t, "4/2/2023", row.PassedSecondDate)
	require.Equal(t, "Y", row.Enacted)
	require.Equal(t, "5/3/2023", row.EnactedDate)
	require.Equal(t, "Smith; Jones", row.Cosponsor)
}

func TestApplyStatusNotEnacted(t *testing.T) {
	var row Row
	row.ApplyStatus(billstatus.StatusRecord{Pending: true})
	require.Equal(t, "N", row.Enacted)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "iowa.csv")

	rows := []Row{
		{State: "Iowa", GA: "90", Identifier: "HF123", MatchedKeywords: "water quality"},
		{State: "Iowa", GA: "90", Identifier: "SF45", Enacted: "Y"},
	}
	err := WriteCSV(path, rows)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	if diff := cmp.Diff(Columns(), records[0]); diff != "" {
		t.Fatalf("header mismatch:\n%s", diff)
	}
	require.Equal(t, "HF123", records[1][2])
	require.Equal(t, "water quality", records[1][9])
	require.Equal(t, "Y", records[2][15])
}

func TestSaveBillText(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveBillText(dir, "90", "HF 123", "A bill for an act.")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "90", "HF_123.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "A bill for an act.", string(data))
}
