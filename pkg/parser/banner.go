package parser

import (
	"strings"
)

// Timekeeping exports (UKG/Kronos "MyTime" extracts and similar) often open
// with banner rows like "Hyperfind: Ad Hoc" or "Timeframe: Today" before the
// real header row. RepairBanner finds the true header and re-keys the sheet.

// bannerScanLimit is how many leading rows are scanned for the real header.
const bannerScanLimit = 30

// bannerTokens are header-cell substrings that mark a sheet as banner-prefixed.
var bannerTokens = []string{"hyperfind", "timeframe"}

// HasBanner reports whether the given headers look like export banner rows
// rather than a real header.
func HasBanner(headers []string) bool {
	for _, h := range headers {
		lh := strings.ToLower(h)
		for _, tok := range bannerTokens {
			if strings.Contains(lh, tok) {
				return true
			}
		}
	}
	return false
}

// RepairBanner re-parses CSV bytes whose first rows are banner text. It scans
// the top rows for one that contains both a person/employee token and a
// premise/present token, falls back to any person/employee row, and rebuilds
// the record set with that row as the header. Empty and "Unnamed" columns are
// dropped. Returns nil when no plausible header row is found.
func RepairBanner(data []byte) (*ParseResult, error) {
	rows, err := StreamParseRaw(data)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headerRow := findHeaderRow(rows, func(joined string) bool {
		return (strings.Contains(joined, "person id") || strings.Contains(joined, "employee id")) &&
			(strings.Contains(joined, "premise") || strings.Contains(joined, "present"))
	})
	if headerRow < 0 {
		headerRow = findHeaderRow(rows, func(joined string) bool {
			return strings.Contains(joined, "person") || strings.Contains(joined, "employee")
		})
	}
	if headerRow < 0 || headerRow+1 >= len(rows) {
		return nil, nil
	}

	// Keep only columns with a usable header name.
	rawHeaders := rows[headerRow]
	keep := make([]int, 0, len(rawHeaders))
	headers := make([]string, 0, len(rawHeaders))
	for i, h := range rawHeaders {
		name := trimCell(h)
		if name == "" || strings.Contains(strings.ToLower(name), "unnamed") {
			continue
		}
		keep = append(keep, i)
		headers = append(headers, name)
	}
	if len(headers) == 0 {
		return nil, nil
	}

	var records []map[string]string
	for _, row := range rows[headerRow+1:] {
		record := make(map[string]string, len(headers))
		empty := true
		for j, idx := range keep {
			val := ""
			if idx < len(row) {
				val = row[idx]
			}
			if strings.TrimSpace(val) != "" {
				empty = false
			}
			record[headers[j]] = val
		}
		if empty {
			continue
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return &ParseResult{Headers: headers, Records: records}, nil
}

// findHeaderRow returns the index of the first row within the scan limit
// whose lowercased, pipe-joined cells satisfy match, or -1.
func findHeaderRow(rows [][]string, match func(joined string) bool) int {
	limit := bannerScanLimit
	if len(rows) < limit {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		joined := strings.ToLower(strings.Join(rows[i], "|"))
		if match(joined) {
			return i
		}
	}
	return -1
}
