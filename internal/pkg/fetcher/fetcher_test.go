package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	doc := "\uFEFFFIPS,Admin2,Confirmed\n35013,Doña Ana,10\n,,"

	rows, err := ParseCSV(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// The BOM must not leak into the first header name.
	assert.Equal(t, "35013", rows[0]["FIPS"])
	assert.Equal(t, "Doña Ana", rows[0]["Admin2"])
	assert.Equal(t, "10", rows[0]["Confirmed"])
	assert.Equal(t, "", rows[1]["FIPS"])
}

func TestParseCSVShortRecords(t *testing.T) {
	doc := "A,B,C\n1,2\n"

	rows, err := ParseCSV(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "2", rows[0]["B"])
	_, ok := rows[0]["C"]
	assert.False(t, ok)
}

func TestFetchReport(t *testing.T) {
	var requestedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestedPath = r.URL.Path
		_, _ = w.Write([]byte("Country_Region,Confirmed\nGermany,5\n"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(server.URL+"/lookup.csv", server.URL+"/reports/", server.URL+"/reports")

	day := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	rows, err := f.FetchReport(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "/reports/03-01-2020.csv", requestedPath)
	require.Len(t, rows, 1)
	assert.Equal(t, "Germany", rows[0]["Country_Region"])
}

func TestFetchReportNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewHTTPFetcher(server.URL+"/lookup.csv", server.URL+"/reports/", server.URL+"/reports")

	_, err := f.FetchReport(context.Background(), time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestFetchReferenceTableRetries(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("UID,Country_Region\n156,China\n"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(server.URL+"/lookup.csv", server.URL+"/reports/", server.URL+"/reports")

	rows, err := f.FetchReferenceTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, rows, 1)
	assert.Equal(t, "China", rows[0]["Country_Region"])
}

func TestLatestReportDate(t *testing.T) {
	listing := `<html><body>
		<a href="/reports/02-28-2020.csv">02-28-2020.csv</a>
		<a href="/reports/03-01-2020.csv">03-01-2020.csv</a>
		<a href="/reports/02-29-2020.csv">02-29-2020.csv</a>
		<a href="/reports/README.md">README.md</a>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listing))
	}))
	defer server.Close()

	f := NewHTTPFetcher(server.URL+"/lookup.csv", server.URL+"/reports/", server.URL+"/reports")

	latest, err := f.LatestReportDate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), latest)
}
