package census

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/censuskit/censuskit/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countyResponses maps year to the raw array-of-arrays payload the API
// returns: header row first, geoid last in each data row.
var countyResponses = map[int][][]string{
	2020: {
		{"NAME", "DP05_0001E", "ucgid"},
		{"Baldwin County, Alabama", "231767", "0500000US01003"},
		{"Autauga County, Alabama", "58805", "0500000US01001"},
	},
	2021: {
		{"NAME", "DP05_0001E", "ucgid"},
		{"Autauga County, Alabama", "59095", "0500000US01001"},
		{"Baldwin County, Alabama", "239294", "0500000US01003"},
	},
}

// newCountyAPIServer serves canned responses keyed by the year in the request
// path. Years in failYears get the given response instead.
func newCountyAPIServer(requested map[int]int, failYears map[int]func(w http.ResponseWriter)) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		var year int
		if _, err := fmt.Sscanf(parts[0], "%d", &year); err != nil {
			http.Error(w, "bad year in path", http.StatusBadRequest)
			return
		}
		if requested != nil {
			requested[year]++
		}

		if fail, ok := failYears[year]; ok {
			fail(w)
			return
		}

		resp, ok := countyResponses[year]
		if !ok {
			http.Error(w, "no canned response for year", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClient(serverURL string, opts ...ClientOption) *Client {
	opts = append([]ClientOption{WithBaseURL(serverURL), WithLimiter(nil)}, opts...)
	return NewClient(opts...)
}

func TestFetchCounties(t *testing.T) {
	server := newCountyAPIServer(nil, nil)
	defer server.Close()

	client := newTestClient(server.URL)
	got, err := client.FetchCounties(context.Background(), CountyQuery{
		Year:     2021,
		VarCodes: []string{"DP05_0001E"},
		VarNames: []string{"Total Population"},
	})
	require.NoError(t, err)

	// columns are NAME, the requested names, then geoid
	assert.Equal(t, []string{"NAME", "Total Population", "geoid"}, got.Columns)
	require.Equal(t, 2, got.RowCount())
	// the API's header row is discarded, values stay positional with geoid last
	assert.Equal(t, []string{"Autauga County, Alabama", "59095", "0500000US01001"}, got.Rows[0])
	assert.Equal(t, []string{"Baldwin County, Alabama", "239294", "0500000US01003"}, got.Rows[1])
}

func TestFetchCountiesRequestShape(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(countyResponses[2021])
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithAPIKey("abc123"))
	_, err := client.FetchCounties(context.Background(), CountyQuery{
		Year:     2021,
		VarCodes: []string{"DP05_0001E", "DP03_0062E"},
		VarNames: []string{"a", "b"},
	})
	// the canned response has fewer value columns than requested, so the
	// append fails - the request itself is what we are checking here
	require.Error(t, err)

	assert.Equal(t, "/2021/acs/acs5/profile", gotPath)
	assert.Contains(t, gotQuery, "get=NAME,DP05_0001E,DP03_0062E")
	assert.Contains(t, gotQuery, "ucgid=pseudo(0100000US$0500000)")
	assert.Contains(t, gotQuery, "key=abc123")
}

func TestFetchCountiesRemoteRequestError(t *testing.T) {
	failYears := map[int]func(w http.ResponseWriter){
		2021: func(w http.ResponseWriter) {
			// the API reports bad requests inside a 200 response
			w.Write([]byte(`{"error": "invalid variable code"}`))
		},
	}
	server := newCountyAPIServer(nil, failYears)
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchCounties(context.Background(), CountyQuery{Year: 2021, VarCodes: []string{"bogus"}, VarNames: []string{"bogus"}})
	require.Error(t, err)

	var remoteErr *RemoteRequestError
	require.True(t, errors.As(err, &remoteErr), "expected RemoteRequestError, got %T", err)
	assert.Equal(t, "invalid variable code", remoteErr.Message)

	var transportErr *TransportError
	assert.False(t, errors.As(err, &transportErr), "an upstream-reported error must not be a TransportError")
}

func TestFetchCountiesNonSuccessStatus(t *testing.T) {
	failYears := map[int]func(w http.ResponseWriter){
		2021: func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
	}
	server := newCountyAPIServer(nil, failYears)
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchCounties(context.Background(), CountyQuery{Year: 2021, VarCodes: []string{"DP05_0001E"}, VarNames: []string{"pop"}})
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
}

func TestFetchCountiesTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithTimeout(50*time.Millisecond))
	_, err := client.FetchCounties(context.Background(), CountyQuery{Year: 2021, VarCodes: []string{"DP05_0001E"}, VarNames: []string{"pop"}})
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, 0, transportErr.StatusCode)
}

func TestFetchCountyRange(t *testing.T) {
	server := newCountyAPIServer(nil, nil)
	defer server.Close()

	client := newTestClient(server.URL)
	got, err := client.FetchCountyRange(context.Background(), RangeQuery{
		StartYear: 2020,
		EndYear:   2021,
		VarCodes:  []string{"DP05_0001E"},
		VarNames:  []string{"Total Population"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"NAME", "Total Population", "geoid", "CEN_YR"}, got.Columns)
	// row count is the sum of the per-year counts
	require.Equal(t, 4, got.RowCount())

	// sorted by (geoid, CEN_YR) ascending
	geoidIdx := got.ColumnIndex(constants.ColumnGeoid)
	yearIdx := got.ColumnIndex(constants.ColumnYear)
	for i := 1; i < got.RowCount(); i++ {
		prev := got.Rows[i-1][geoidIdx] + got.Rows[i-1][yearIdx]
		cur := got.Rows[i][geoidIdx] + got.Rows[i][yearIdx]
		assert.LessOrEqual(t, prev, cur, "rows %d and %d out of order", i-1, i)
	}

	assert.Equal(t, []string{"Autauga County, Alabama", "58805", "0500000US01001", "2020"}, got.Rows[0])
	assert.Equal(t, []string{"Autauga County, Alabama", "59095", "0500000US01001", "2021"}, got.Rows[1])
}

func TestFetchCountyRangeAbortsOnFailure(t *testing.T) {
	requested := map[int]int{}
	failYears := map[int]func(w http.ResponseWriter){
		2021: func(w http.ResponseWriter) {
			w.Write([]byte(`{"error": "unknown variable"}`))
		},
	}
	server := newCountyAPIServer(requested, failYears)
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.FetchCountyRange(context.Background(), RangeQuery{
		StartYear: 2020,
		EndYear:   2022,
		VarCodes:  []string{"DP05_0001E"},
		VarNames:  []string{"Total Population"},
	})
	require.Error(t, err)

	var remoteErr *RemoteRequestError
	assert.True(t, errors.As(err, &remoteErr))

	// the failure in 2021 aborts the loop - 2022 is never requested
	assert.Equal(t, 1, requested[2020])
	assert.Equal(t, 1, requested[2021])
	assert.Equal(t, 0, requested[2022])
}

func TestFetchCountyRangeToFile(t *testing.T) {
	server := newCountyAPIServer(nil, nil)
	defer server.Close()

	chdirTemp(t)

	client := newTestClient(server.URL)
	q := RangeQuery{StartYear: 2020, EndYear: 2021, VarCodes: []string{"DP05_0001E"}, VarNames: []string{"Total Population"}}
	got, err := client.FetchCountyRangeToFile(context.Background(), q, "population.csv")
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(constants.DataDir, "population.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(contents)), "\n")
	// header plus one line per row, no index column
	require.Len(t, lines, got.RowCount()+1)
	assert.Equal(t, "NAME,Total Population,geoid,CEN_YR", lines[0])
}

func TestFetchCountyRangeToFileNoPartialOutput(t *testing.T) {
	failYears := map[int]func(w http.ResponseWriter){
		2021: func(w http.ResponseWriter) {
			w.Write([]byte(`{"error": "unknown variable"}`))
		},
	}
	server := newCountyAPIServer(nil, failYears)
	defer server.Close()

	chdirTemp(t)

	client := newTestClient(server.URL)
	q := RangeQuery{StartYear: 2020, EndYear: 2021, VarCodes: []string{"DP05_0001E"}, VarNames: []string{"Total Population"}}
	_, err := client.FetchCountyRangeToFile(context.Background(), q, "population.csv")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(constants.DataDir, "population.csv"))
	assert.True(t, os.IsNotExist(statErr), "a mid-range failure must not produce an output file")
}

func TestFetchCountyRangeInvalidRange(t *testing.T) {
	client := newTestClient("http://localhost:1")
	_, err := client.FetchCountyRange(context.Background(), RangeQuery{StartYear: 2022, EndYear: 2020})
	require.Error(t, err)
}

func chdirTemp(t *testing.T) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
	})
}
