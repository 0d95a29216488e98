package census

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/censuskit/censuskit/constants"
	"github.com/censuskit/censuskit/table"
)

// CountyQuery describes a single-year fetch. VarCodes are ACS variable codes
// from the profile variable catalog for that vintage; VarNames are the output
// column labels, aligned positionally with VarCodes. The caller is responsible
// for supplying lists of equal length.
type CountyQuery struct {
	Year     int
	VarCodes []string
	VarNames []string
}

// RangeQuery describes an inclusive multi-year fetch.
type RangeQuery struct {
	StartYear int
	EndYear   int
	VarCodes  []string
	VarNames  []string
}

// FetchCounties fetches one row per US county for the given year from the ACS
// 5-year profile. The returned table has columns NAME, <var names...>, geoid -
// the API returns the geographic identifier last and that ordering is
// preserved. Values are kept as opaque strings. No retry is performed.
func (c *Client) FetchCounties(ctx context.Context, q CountyQuery) (*table.Table, error) {
	apiURL := c.countyURL(q.Year, q.VarCodes)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		defer c.limiter.Release()
	}

	slog.Debug("fetching county data", "year", q.Year, "variables", q.VarCodes)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request, %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: apiURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: apiURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: apiURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	return parseCountyResponse(body, q)
}

// FetchCountyRange fetches every year in [StartYear, EndYear] in increasing
// order and returns the union table, each row tagged with its vintage in the
// CEN_YR column, sorted by (geoid, CEN_YR) ascending. A failure in any year
// aborts the whole operation - no partial result is ever returned.
func (c *Client) FetchCountyRange(ctx context.Context, q RangeQuery) (*table.Table, error) {
	if q.StartYear > q.EndYear {
		return nil, fmt.Errorf("start year %d is after end year %d", q.StartYear, q.EndYear)
	}

	var combined *table.Table
	for year := q.StartYear; year <= q.EndYear; year++ {
		yearTable, err := c.FetchCounties(ctx, CountyQuery{Year: year, VarCodes: q.VarCodes, VarNames: q.VarNames})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch year %d, %w", year, err)
		}
		yearTable.AddColumn(constants.ColumnYear, strconv.Itoa(year))

		if combined == nil {
			combined = yearTable
		} else if err := combined.Concat(yearTable); err != nil {
			return nil, err
		}
		slog.Debug("fetched year", "year", year, "rows", yearTable.RowCount())
	}

	if err := combined.SortByColumns(constants.ColumnGeoid, constants.ColumnYear); err != nil {
		return nil, err
	}
	return combined, nil
}

// FetchCountyRangeToFile fetches the range and writes the sorted aggregate to
// <data dir>/<filename> as CSV with a header row and no index column. The file
// is only written once the entire range has been fetched, so a mid-range
// failure produces no output at all.
func (c *Client) FetchCountyRangeToFile(ctx context.Context, q RangeQuery, filename string) (*table.Table, error) {
	t, err := c.FetchCountyRange(ctx, q)
	if err != nil {
		return nil, err
	}

	dest := filepath.Join(constants.DataDir, filename)
	if err := t.WriteFile(dest); err != nil {
		return nil, err
	}
	slog.Info("saved aggregate table", "file", dest, "rows", t.RowCount())
	return t, nil
}

// countyURL builds the API call for one year. ucgid=pseudo(0100000US$0500000)
// selects all counties in the US.
func (c *Client) countyURL(year int, varCodes []string) string {
	fields := append([]string{constants.ColumnName}, varCodes...)
	apiURL := fmt.Sprintf("%s/%d/%s?get=%s&ucgid=%s",
		c.baseURL, year, constants.ACSProfileDataset, strings.Join(fields, ","), constants.AllCountiesUCGID)
	if c.apiKey != "" {
		apiURL += "&key=" + c.apiKey
	}
	return apiURL
}

func parseCountyResponse(body []byte, q CountyQuery) (*table.Table, error) {
	body = bytes.TrimSpace(body)

	// the API signals a bad request (unknown variable code, invalid year) as a
	// JSON object with an "error" field rather than a failing status
	if len(body) > 0 && body[0] == '{' {
		var remoteErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &remoteErr); err == nil && remoteErr.Error != "" {
			return nil, &RemoteRequestError{Message: remoteErr.Error}
		}
	}

	var data [][]string
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to decode response, %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("response contained no header row")
	}

	columns := append([]string{constants.ColumnName}, q.VarNames...)
	columns = append(columns, constants.ColumnGeoid)
	t := table.NewTable(columns...)

	// the first row is the API's own header - discard it
	for _, row := range data[1:] {
		if err := t.AppendRow(row...); err != nil {
			return nil, err
		}
	}
	return t, nil
}
