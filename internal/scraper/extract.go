package scraper

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

const (
	maxFieldLen = 500
	maxTitleLen = 200
)

// leadingColumns always open a results sheet, in this order.
var leadingColumns = []string{"url", "success", "status_code", "error"}

// Table is a sheet of string cells with a header row.
type Table struct {
	Columns []string
	Rows    [][]string
}

// BuildTable flattens results into a table. Columns are the leading
// columns followed by every other extracted key, sorted.
func BuildTable(results []Result) Table {
	extracted := make([]map[string]string, len(results))
	keys := make(map[string]bool)
	for i, r := range results {
		extracted[i] = Extract(r)
		for k := range extracted[i] {
			keys[k] = true
		}
	}

	columns := append([]string(nil), leadingColumns...)
	var rest []string
	for k := range keys {
		if !lo.Contains(leadingColumns, k) {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	columns = append(columns, rest...)

	rows := make([][]string, len(extracted))
	for i, m := range extracted {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = m[c]
		}
		rows[i] = row
	}
	return Table{Columns: columns, Rows: rows}
}

// Extract flattens a scrape result into named string fields.
func Extract(r Result) map[string]string {
	out := map[string]string{
		"url":     r.URL,
		"success": strconv.FormatBool(r.Success),
		"error":   r.Error,
	}
	if r.StatusCode != 0 {
		out["status_code"] = strconv.Itoa(r.StatusCode)
	} else {
		out["status_code"] = ""
	}

	if len(r.Headers) > 0 {
		out["content_type"] = r.Headers["content-type"]
		out["content_length"] = r.Headers["content-length"]
	}

	switch data := r.Data.(type) {
	case map[string]any:
		if body, ok := data["body"]; ok {
			html := scalarString(body)
			if _, ok := out["content_type"]; !ok {
				out["content_type"] = "text/html"
			}
			out["content_length"] = strconv.Itoa(len(html))
			if title := pageTitle(html); title != "" {
				out["page_title"] = title
			}
			break
		}
		for k, v := range data {
			if _, taken := out[k]; taken {
				continue
			}
			switch v.(type) {
			case map[string]any, []any:
				continue
			}
			out[k] = truncate(scalarString(v), maxFieldLen)
		}
	case string:
		out["content"] = truncate(data, maxFieldLen)
		out["content_length"] = strconv.Itoa(len(data))
		if title := pageTitle(data); title != "" {
			out["page_title"] = title
		}
	}
	return out
}

// pageTitle returns the trimmed <title> of an HTML document, if any.
func pageTitle(html string) string {
	if !strings.Contains(strings.ToLower(html), "<title") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return truncate(strings.TrimSpace(doc.Find("title").First().Text()), maxTitleLen)
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

