// Package scraper runs bulk scrapes through the Crawlbase API and writes
// the results into spreadsheet workbooks.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
	"github.com/jmylchreest/crawldesk-api/internal/crawlbase"
)

// Fetcher fetches one page through the upstream API.
type Fetcher interface {
	Scrape(ctx context.Context, pageURL string) (*crawlbase.Response, error)
}

// Result is the outcome of scraping one URL.
type Result struct {
	URL        string
	Success    bool
	StatusCode int // 0 when the request never completed
	Data       any
	Headers    map[string]string
	Error      string
}

// URLError records a failed URL in a report.
type URLError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Report summarizes a bulk scrape.
type Report struct {
	Success    bool       `json:"success"`
	TotalURLs  int        `json:"total_urls"`
	Successful int        `json:"successful"`
	Failed     int        `json:"failed"`
	ExcelPath  string     `json:"excel_path"`
	SheetName  string     `json:"sheet_name"`
	StorageKey string     `json:"storage_key,omitempty"`
	Message    string     `json:"message"`
	Errors     []URLError `json:"errors"`
}

// Options controls where results are written.
type Options struct {
	ExcelPath string
	SheetName string
}

// ValidateURLs trims the input and keeps http(s) URLs. It fails when the
// list is empty or nothing valid remains.
func ValidateURLs(urls []string) (valid, invalid []string, err error) {
	if len(urls) == 0 {
		return nil, nil, apperr.Validation("the URL list is empty")
	}
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
			valid = append(valid, u)
		} else {
			invalid = append(invalid, u)
		}
	}
	if len(valid) == 0 {
		return nil, invalid, apperr.Validation("there are no valid URLs to scrape")
	}
	return valid, invalid, nil
}

// Scraper fetches URLs one at a time and writes a workbook.
type Scraper struct {
	writer WorkbookWriter
	logger *slog.Logger
}

// New creates a scraper.
func New(writer WorkbookWriter, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scraper{writer: writer, logger: logger}
}

// Run validates urls, fetches each sequentially and saves the results.
// Per-URL failures are recorded in the report; only validation and
// workbook errors fail the run.
func (s *Scraper) Run(ctx context.Context, fetcher Fetcher, urls []string, opts Options) (*Report, error) {
	valid, invalid, err := ValidateURLs(urls)
	if err != nil {
		return nil, err
	}
	if len(invalid) > 0 {
		s.logger.Warn("ignoring invalid URLs", "count", len(invalid))
	}

	results := make([]Result, 0, len(valid))
	var failures []URLError
	for i, u := range valid {
		s.logger.Info("scraping URL", "index", i+1, "total", len(valid), "url", u)
		r := fetchOne(ctx, fetcher, u)
		if !r.Success {
			s.logger.Warn("scrape failed", "url", u, "status", r.StatusCode, "error", r.Error)
			failures = append(failures, URLError{URL: u, Error: r.Error})
		}
		results = append(results, r)
	}

	path, sheet, err := s.writer.Write(BuildTable(results), opts.ExcelPath, opts.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to save results workbook: %w", err)
	}
	s.logger.Info("workbook saved", "path", path, "sheet", sheet)

	successful := len(results) - len(failures)
	return &Report{
		Success:    true,
		TotalURLs:  len(valid),
		Successful: successful,
		Failed:     len(failures),
		ExcelPath:  path,
		SheetName:  sheet,
		Message:    fmt.Sprintf("Scraping finished: %d succeeded, %d failed", successful, len(failures)),
		Errors:     failures,
	}, nil
}

func fetchOne(ctx context.Context, fetcher Fetcher, pageURL string) Result {
	if err := ctx.Err(); err != nil {
		return Result{URL: pageURL, Headers: map[string]string{}, Error: err.Error()}
	}

	res, err := fetcher.Scrape(ctx, pageURL)
	if err != nil {
		return Result{URL: pageURL, Headers: map[string]string{}, Error: errorText(err)}
	}

	r := Result{
		URL:        pageURL,
		Success:    res.StatusCode == http.StatusOK,
		StatusCode: res.StatusCode,
		Data:       res.Data,
		Headers:    res.Headers,
	}
	if !r.Success {
		if msg, failed := res.Failure(); failed {
			r.Error = msg
		} else {
			r.Error = fmt.Sprintf("unexpected status %d", res.StatusCode)
		}
	}
	return r
}

func errorText(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Err != nil {
		return appErr.Message + ": " + appErr.Err.Error()
	}
	return err.Error()
}
