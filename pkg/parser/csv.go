package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseWarning represents a non-fatal issue encountered during CSV parsing.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseResult contains the parsed records alongside any warnings.
type ParseResult struct {
	Headers  []string            `json:"headers"`
	Records  []map[string]string `json:"records"`
	Warnings []ParseWarning      `json:"warnings"`
}

// StreamParse parses CSV bytes into a slice of maps (header -> value per row).
// It handles mismatched column counts (pad/truncate), empty files, and truncated rows.
func StreamParse(data []byte) ([]map[string]string, error) {
	result, err := StreamParseWithWarnings(data)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

// StreamParseWithWarnings parses CSV bytes and returns headers, records, and
// any warnings. The first row is taken as the header row; RepairBanner exists
// for exports where that assumption does not hold.
func StreamParseWithWarnings(data []byte) (*ParseResult, error) {
	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := newLooseReader(decoded)

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = trimCell(h)
	}

	headerCount := len(headers)
	var records []map[string]string
	var warnings []ParseWarning
	rowNum := 1 // 1-indexed, header is row 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			// Parse errors are recorded and the row skipped; a single bad
			// line must not sink a multi-thousand-row export.
			warnings = append(warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}

		row, warn := fitRow(row, headerCount, rowNum)
		if warn != nil {
			warnings = append(warnings, *warn)
		}

		record := make(map[string]string, headerCount)
		for i, h := range headers {
			record[h] = row[i]
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("file contains no data rows")
	}

	return &ParseResult{
		Headers:  headers,
		Records:  records,
		Warnings: warnings,
	}, nil
}

// StreamParseRaw parses CSV bytes into raw rows without treating any row as a
// header. Used by banner repair to inspect the top of a sheet.
func StreamParseRaw(data []byte) ([][]string, error) {
	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := newLooseReader(decoded)

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Skip unreadable lines; banner scanning only needs the rows
			// that do parse.
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// newLooseReader returns a csv.Reader configured for real-world exports:
// variable field counts and lazy quotes.
func newLooseReader(decoded []byte) *csv.Reader {
	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

// fitRow pads or truncates a row to the header width, returning a warning
// when it had to change anything.
func fitRow(row []string, headerCount, rowNum int) ([]string, *ParseWarning) {
	if len(row) == headerCount {
		return row, nil
	}
	if len(row) < headerCount {
		padded := make([]string, headerCount)
		copy(padded, row)
		return padded, &ParseWarning{
			Row:     rowNum,
			Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), headerCount),
		}
	}
	return row[:headerCount], &ParseWarning{
		Row:     rowNum,
		Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), headerCount),
	}
}

// trimCell trims whitespace and stray BOM bytes from a header cell.
func trimCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.TrimSpace(s)
}
