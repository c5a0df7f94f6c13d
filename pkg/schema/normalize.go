package schema

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// CleanName tidies an employee display name: strips diacritics (Unicode NFD
// decompose, drop combining marks) and collapses whitespace. IDs are the
// join keys, so this is cosmetic only — but the rendered tables feed
// copy/paste workflows and stray accents break those.
func CleanName(name string) string {
	s := strings.TrimSpace(name)
	if s == "" {
		return s
	}
	s = stripDiacritics(s)
	return whitespaceRe.ReplaceAllString(s, " ")
}

// stripDiacritics removes diacritical marks by NFD-decomposing the string
// and dropping combining marks (unicode.Mn).
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var result strings.Builder
	result.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// RosterColumns holds the picked header names for a roster file.
type RosterColumns struct {
	EID      string `json:"eid"`
	Dept     string `json:"dept"`
	EmpType  string `json:"employment_type"`
	OnPrem   string `json:"on_prem"`
	MgmtArea string `json:"ma"`
	First    string `json:"first"`
	Last     string `json:"last"`
}

// PickRosterColumns resolves the roster file's columns from its headers.
func PickRosterColumns(headers []string) RosterColumns {
	return RosterColumns{
		EID:      PickColumn(headers, RosterEIDCandidates),
		Dept:     PickColumn(headers, RosterDeptCandidates),
		EmpType:  PickColumn(headers, EmploymentCandidates),
		OnPrem:   PickColumn(headers, OnPremiseCandidates),
		MgmtArea: PickColumn(headers, MgmtAreaCandidates),
		First:    PickColumn(headers, FirstNameCandidates),
		Last:     PickColumn(headers, LastNameCandidates),
	}
}

// NormalizeRoster converts raw roster rows into RosterRecords. Rows without
// a usable employee ID are skipped; the count of skipped rows is returned so
// the build can surface it in diagnostics.
func NormalizeRoster(records []map[string]string, cols RosterColumns) ([]RosterRecord, int) {
	out := make([]RosterRecord, 0, len(records))
	skipped := 0
	for _, r := range records {
		eid := NormalizeID(r[cols.EID])
		if eid == "" {
			skipped++
			continue
		}
		name := strings.TrimSpace(r[cols.First] + " " + r[cols.Last])
		out = append(out, RosterRecord{
			EID:              eid,
			Name:             CleanName(name),
			DeptID:           strings.TrimSpace(r[cols.Dept]),
			EmploymentType:   strings.TrimSpace(r[cols.EmpType]),
			ManagementAreaID: strings.TrimSpace(r[cols.MgmtArea]),
			OnRoster:         strings.ToUpper(strings.TrimSpace(r[cols.OnPrem])),
		})
	}
	return out, skipped
}

// MyTimeColumns holds the picked header names for a MyTime presence file.
type MyTimeColumns struct {
	EID    string `json:"eid"`
	OnPrem string `json:"on_prem"`
}

// PickMyTimeColumns resolves the presence file's columns from its headers.
func PickMyTimeColumns(headers []string) MyTimeColumns {
	return MyTimeColumns{
		EID:    PickColumn(headers, MyTimeEIDCandidates),
		OnPrem: PickColumn(headers, OnPremiseCandidates),
	}
}

// NormalizeMyTime converts raw presence rows into a map of employee ID to
// raw uppercased presence marker. Later rows win on duplicate IDs (the
// export is chronological, last punch is freshest).
func NormalizeMyTime(records []map[string]string, cols MyTimeColumns) (map[string]string, int) {
	out := make(map[string]string, len(records))
	skipped := 0
	for _, r := range records {
		eid := NormalizeID(r[cols.EID])
		if eid == "" {
			skipped++
			continue
		}
		out[eid] = strings.ToUpper(strings.TrimSpace(r[cols.OnPrem]))
	}
	return out, skipped
}

// NormalizeVetVto converts raw opportunity rows into VetVtoRows. The work
// date prefers shiftStart, falling back to shiftEnd. Rows without a usable
// employee ID are skipped.
func NormalizeVetVto(records []map[string]string, headers []string) ([]VetVtoRow, int) {
	eidCol := PickColumn(headers, VetVtoEIDCandidates)
	typeCol := PickColumn(headers, VetVtoTypeCandidates)
	accCol := PickColumn(headers, AcceptedCandidates)
	startCol := PickColumn(headers, ShiftStartCandidates)
	endCol := PickColumn(headers, ShiftEndCandidates)

	out := make([]VetVtoRow, 0, len(records))
	skipped := 0
	for _, r := range records {
		eid := NormalizeID(r[eidCol])
		if eid == "" {
			skipped++
			continue
		}
		work := ParseDate(r[startCol])
		if work.IsZero() {
			work = ParseDate(r[endCol])
		}
		out = append(out, VetVtoRow{
			EID:      eid,
			RawType:  r[typeCol],
			Accepted: IsAccepted(r[accCol]),
			WorkDate: work,
		})
	}
	return out, skipped
}

// NormalizeSwaps converts raw swap-request rows into SwapRows. Rows without
// a usable employee ID are skipped.
func NormalizeSwaps(records []map[string]string, headers []string) ([]SwapRow, int) {
	eidCol := PickColumn(headers, SwapEIDCandidates)
	statusCol := PickColumn(headers, SwapStatusCandidates)
	skipCol := PickColumn(headers, SkipDateCandidates)
	workCol := PickColumn(headers, SwapWorkCandidates)

	out := make([]SwapRow, 0, len(records))
	skipped := 0
	for _, r := range records {
		eid := NormalizeID(r[eidCol])
		if eid == "" {
			skipped++
			continue
		}
		out = append(out, SwapRow{
			EID:      eid,
			Status:   strings.ToUpper(strings.TrimSpace(r[statusCol])),
			SkipDate: ParseDate(r[skipCol]),
			WorkDate: ParseDate(r[workCol]),
		})
	}
	return out, skipped
}
