package schema

import (
	"strings"
	"time"
)

// Column candidate lists per canonical field. Exports from different sites
// use different header spellings; PickColumn tries exact matches first, then
// substring matches, in candidate order.
var (
	RosterEIDCandidates  = []string{"Employee ID", "Person ID", "Associate ID", "ID"}
	RosterDeptCandidates = []string{"Department ID", "Department"}
	EmploymentCandidates = []string{"Employment Type", "EmploymentType", "Emp Type"}
	OnPremiseCandidates  = []string{"On Premise", "OnPremise", "Present", "Status"}
	MgmtAreaCandidates   = []string{"Management Area ID", "ManagementAreaId", "MA ID", "Corner", "Management Area"}
	FirstNameCandidates  = []string{"First Name", "Given Name", "First"}
	LastNameCandidates   = []string{"Last Name", "Surname", "Last"}
	MyTimeEIDCandidates  = []string{"Person ID", "Employee ID", "ID"}
	VetVtoEIDCandidates  = []string{"employeeId", "Employee ID", "Person ID", "Associate ID", "ID"}
	VetVtoTypeCandidates = []string{"opportunity.type", "Type", "Opportunity Type"}
	AcceptedCandidates   = []string{"opportunity.acceptedCount", "Accepted Count", "acceptedCount"}
	ShiftStartCandidates = []string{"opportunity.shiftStart", "shiftStart", "Shift Start"}
	ShiftEndCandidates   = []string{"opportunity.shiftEnd", "shiftEnd", "Shift End"}
	SwapEIDCandidates    = []string{"Employee 1 ID", "Employee ID", "Person ID", "Associate ID", "ID"}
	SwapStatusCandidates = []string{"Status", "Swap Status"}
	SkipDateCandidates   = []string{"Date to Skip", "Skip Date", "Skip"}
	SwapWorkCandidates   = []string{"Date to Work", "Work Date", "Work"}
)

// PickColumn selects the header matching one of the candidate names.
// Matching cascade:
//  1. Exact match, case-insensitive, in candidate order
//  2. Substring match (candidate contained in header), in candidate order
//  3. No match -> ""
func PickColumn(headers []string, candidates []string) string {
	for _, want := range candidates {
		for _, h := range headers {
			if strings.EqualFold(want, h) {
				return h
			}
		}
	}
	for _, want := range candidates {
		lw := strings.ToLower(want)
		for _, h := range headers {
			if strings.Contains(strings.ToLower(h), lw) {
				return h
			}
		}
	}
	return ""
}

// NormalizeID canonicalizes an employee identifier: trims whitespace and
// zero-width spaces, removes interior spaces, and drops the ".0" suffix that
// spreadsheet round-trips append to numeric IDs.
func NormalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "\u200B", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSuffix(s, ".0")
	return s
}

// dateLayouts are the formats observed across the source exports, most
// specific first. All parsing is layout-table based; there is no fuzzy
// inference.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006 15:04",
	"1/2/2006",
	"01-02-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate parses a raw cell into a Date, trying each known layout.
// Blank cells and spreadsheet NaN artifacts yield the zero Date.
func ParseDate(raw string) Date {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Date{}
	}
	switch strings.ToLower(s) {
	case "nan", "nat", "none", "null":
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
		}
	}
	return Date{}
}
