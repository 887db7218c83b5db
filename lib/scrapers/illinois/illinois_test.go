package illinois

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"legiscrape-backend/lib/billstatus"
	"legiscrape-backend/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{BaseURL: server.URL})
	require.NoError(t, err)
	return client, server
}

const statusPageHTML = `<html><body>
<h3>Bill Status of HB0042</h3>
<p>104th General Assembly</p>
<p>Public Act 104-0123 Effective Date January 1, 2026</p>
<h4>House Sponsors</h4>
<ul><li><a href="/Members/Detail?id=77">Rep. Jane Doe</a> and <a href="/Members/Detail?id=78">Rep. Al Roe</a></li></ul>
<h4>Actions</h4>
<table>
<tr><td>1/11/2025</td><td>House</td><td>Filed with the Clerk by Rep. Jane Doe</td></tr>
<tr><td>1/14/2025</td><td>House</td><td>First Reading</td></tr>
<tr><td>2/2/2025</td><td>House</td><td>Added as Co-Sponsor Rep. Al Roe</td></tr>
<tr><td>3/9/2025</td><td>House</td><td>Third Reading - Short Debate - Passed 071-039-000</td></tr>
<tr><td>4/1/2025</td><td>Senate</td><td>First Reading</td></tr>
<tr><td>5/20/2025</td><td>Senate</td><td>Third Reading - Passed; 040-017-000</td></tr>
<tr><td>6/30/2025</td><td>House</td><td>Governor Approved</td></tr>
<tr><td>6/30/2025</td><td>House</td><td>Effective Date January 1, 2026</td></tr>
</table>
</body></html>`

func TestEnumerateBillList(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:lib/scrapers/illinois")
	defer cleanup()

	mux := http.NewServeMux()
	mux.HandleFunc("/Legislation/RegularSession/HB",
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("SessionId") != "114" {
				http.Error(w, "server error", http.StatusInternalServerError)
				return
			}
			fmt.Fprint(w, `<html><body>
				<h2>104th General Assembly</h2>
				<a href="/Legislation/BillStatus?DocNum=1&DocTypeID=HB&SessionID=114">HB0001</a>
				<a href="/Legislation/BillStatus?DocNum=2&DocTypeID=HB&GA=104&SessionID=114">HB0002</a>
				<a href="/Legislation/BillStatus?DocNum=1&DocTypeID=SB&SessionID=114">SB0001</a>
				<a href="/Legislation/BillStatus?DocNum=1&DocTypeID=HB&SessionID=114">HB0001 dup</a>
			</body></html>`)
		})

	client, server := newTestClient(t, mux)

	refs, err := client.EnumerateBillList(context.Background(), "HB", 114)
	require.NoError(t, err)

	expected := []BillRef{
		{
			SessionID: 114,
			DocType:   "HB",
			DocNum:    "1",
			StatusURL: server.URL + "/Legislation/BillStatus?DocNum=1&DocTypeID=HB&SessionID=114",
			GA:        "104",
		},
		{
			SessionID: 114,
			DocType:   "HB",
			DocNum:    "2",
			StatusURL: server.URL + "/Legislation/BillStatus?DocNum=2&DocTypeID=HB&GA=104&SessionID=114",
			GA:        "104",
		},
	}
	if diff := cmp.Diff(expected, refs); diff != "" {
		t.Fatalf("unexpected refs:\n%s", diff)
	}
}

func TestStatusPageActions(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:lib/scrapers/illinois")
	defer cleanup()

	mux := http.NewServeMux()
	mux.HandleFunc("/Legislation/BillStatus", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, statusPageHTML)
	})
	client, server := newTestClient(t, mux)

	page, err := client.FetchStatusPage(
		context.Background(),
		server.URL+"/Legislation/BillStatus?DocNum=42&DocTypeID=HB&GA=104",
	)
	require.NoError(t, err)

	entries := page.Actions()
	require.Len(t, entries, 8)
	require.Equal(t, "1/11/2025", entries[0].Date)
	require.Equal(t, billstatus.ChamberHouse, entries[0].Chamber)
	require.Equal(t, "Filed with the Clerk by Rep. Jane Doe", entries[0].Text)
	require.Equal(t, billstatus.ChamberSenate, entries[5].Chamber)

	rec := billstatus.Classify(entries, billstatus.ChamberHouse, billstatus.IllinoisRules())
	require.Equal(t, "1/14/2025", rec.Introduced)
	require.Equal(t, "3/9/2025", rec.PassedOrigin)
	require.Equal(t, "5/20/2025", rec.PassedOther)
	require.Equal(t, "Y", rec.Enacted)
	require.Equal(t, "6/30/2025", rec.EnactedDate)
	require.Equal(t, "6/30/2025", rec.Effective)
	require.Equal(t, []string{"Rep. Al Roe"}, rec.Cosponsors)
	require.False(t, rec.Pending)
}

func TestStatusPagePublicActAndSponsors(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:lib/scrapers/illinois")
	defer cleanup()

	mux := http.NewServeMux()
	mux.HandleFunc("/Legislation/BillStatus", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, statusPageHTML)
	})
	mux.HandleFunc("/Members/Detail", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>Rep. Jane Doe (D) - 104th General Assembly</body></html>`)
	})
	client, server := newTestClient(t, mux)

	page, err := client.FetchStatusPage(
		context.Background(),
		server.URL+"/Legislation/BillStatus?DocNum=42&DocTypeID=HB&GA=104",
	)
	require.NoError(t, err)

	act, effective := page.PublicAct()
	require.Equal(t, "104-0123", act)
	require.Equal(t, "January 1, 2026", effective)

	sponsors, primaryLink := page.Sponsors()
	require.Equal(t, "Rep. Jane Doe and Rep. Al Roe", sponsors)
	require.Equal(t, server.URL+"/Members/Detail?id=77", primaryLink)

	party := client.FetchMemberParty(context.Background(), primaryLink)
	require.Equal(t, "D", party)
}

func TestBillno(t *testing.T) {
	require.Equal(t, "HB0042", Billno("HB", "42"))
	require.Equal(t, "SB1234", Billno("SB", "1234"))
	require.Equal(t, "HBX", Billno("HB", "X"))
}
