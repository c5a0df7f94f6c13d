package schema

import (
	"strings"
)

// FileKind identifies the role of an uploaded file, detected from its
// headers. Classification never looks at file names; sites rename exports
// freely but the column sets are stable.
type FileKind string

const (
	KindRoster  FileKind = "roster"
	KindMyTime  FileKind = "mytime"
	KindVetVto  FileKind = "vetvto"
	KindSwaps   FileKind = "swaps"
	KindUnknown FileKind = "unknown"
)

// Classify determines a file's role from its header row.
// Detection cascade:
//  1. opportunity.* or acceptedCount columns -> vetvto
//  2. any swap column, or a "date to skip" column -> swaps
//  3. a premise/present column: >=2 department-ish columns -> roster,
//     otherwise -> mytime (the presence punch list has no dept breakdown)
//  4. a department column -> roster
//  5. otherwise -> unknown
func Classify(headers []string) FileKind {
	if len(headers) == 0 {
		return KindUnknown
	}

	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(h)
	}

	for _, c := range lower {
		if strings.Contains(c, "opportunity.") || strings.Contains(c, "acceptedcount") {
			return KindVetVto
		}
	}

	joined := strings.Join(lower, " ")
	for _, c := range lower {
		if strings.Contains(c, "swap") {
			return KindSwaps
		}
	}
	if strings.Contains(joined, "date to skip") {
		return KindSwaps
	}

	hasPresence := false
	deptish := 0
	hasDept := false
	for _, c := range lower {
		if strings.Contains(c, "on premise") || strings.Contains(c, "onprem") || strings.Contains(c, "present") {
			hasPresence = true
		}
		if strings.Contains(c, "dept") || strings.Contains(c, "department") {
			deptish++
			hasDept = true
		}
	}
	if hasPresence {
		if deptish >= 2 {
			return KindRoster
		}
		return KindMyTime
	}
	if hasDept {
		return KindRoster
	}

	return KindUnknown
}
