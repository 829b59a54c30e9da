// Package fetcher pulls the raw lookup table and daily report CSVs
// from the upstream repository.
package fetcher

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/ougirez/covidtrack/internal/pkg/logger"
)

// Row is one CSV record keyed by (cleaned) header name.
type Row map[string]string

// ErrReportNotFound signals that a date's report is not published.
// For today's date this is expected; for earlier dates it is not.
var ErrReportNotFound = errors.New("report not published")

// ReferenceFetcher returns all rows of the canonical lookup table.
type ReferenceFetcher interface {
	FetchReferenceTable(ctx context.Context) ([]Row, error)
}

// ReportFetcher returns all rows of one day's report.
type ReportFetcher interface {
	FetchReport(ctx context.Context, day time.Time) ([]Row, error)
}

const reportDateLayout = "01-02-2006"

// HTTPFetcher fetches CSVs over HTTP with retries.
type HTTPFetcher struct {
	client        *http.Client
	lookupURL     string
	reportBaseURL string
	listingURL    string
}

func NewHTTPFetcher(lookupURL, reportBaseURL, listingURL string) *HTTPFetcher {
	return &HTTPFetcher{
		client:        &http.Client{Timeout: 30 * time.Second},
		lookupURL:     lookupURL,
		reportBaseURL: reportBaseURL,
		listingURL:    listingURL,
	}
}

func (f *HTTPFetcher) FetchReferenceTable(ctx context.Context) ([]Row, error) {
	rows, err := f.fetchCSV(ctx, f.lookupURL)
	if err != nil {
		return nil, fmt.Errorf("fetch lookup table: %w", err)
	}
	return rows, nil
}

func (f *HTTPFetcher) FetchReport(ctx context.Context, day time.Time) ([]Row, error) {
	url := fmt.Sprintf("%s%s.csv", f.reportBaseURL, day.Format(reportDateLayout))

	rows, err := f.fetchCSV(ctx, url)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("fetch report for %s: %w", day.Format(reportDateLayout), err)
	}
	return rows, nil
}

func (f *HTTPFetcher) fetchCSV(ctx context.Context, url string) (rows []Row, err error) {
	var resp *http.Response
	err = backoff.Retry(
		func() error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if reqErr != nil {
				return backoff.Permanent(reqErr)
			}

			var httpErr error
			resp, httpErr = f.client.Do(req)
			if httpErr != nil {
				return fmt.Errorf("http.Get: %w", httpErr)
			}

			if resp.StatusCode == http.StatusNotFound {
				_ = resp.Body.Close()
				return backoff.Permanent(ErrReportNotFound)
			}
			if resp.StatusCode != http.StatusOK {
				_ = resp.Body.Close()
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(500*time.Millisecond), 5),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	defer func() {
		closeErr := resp.Body.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close body: %w", closeErr)
		}
	}()

	return ParseCSV(resp.Body)
}

// ParseCSV reads a CSV document into header-keyed rows. Header names
// are cleaned of the BOM prefix some report files carry.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.TrimPrefix(name, "\uFEFF")
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}

		row := make(Row, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// LatestReportDate scrapes the published-report directory listing and
// returns the most recent report date found there.
func (f *HTTPFetcher) LatestReportDate(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.listingURL, nil)
	if err != nil {
		return time.Time{}, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("fetch report listing: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Errorf(ctx, "failed to close listing body: %s", closeErr.Error())
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
	}

	return latestDateFromListing(resp.Body)
}
