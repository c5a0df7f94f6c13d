package schema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// BucketUnknown is the reserved department bucket for records whose
// department code has no settings mapping. Keeping them visible (instead of
// dropping the rows) is what lets summary totals reconcile with the inputs.
const BucketUnknown = "unknown"

// defaultPresentMarkers are the raw status values that count as "physically
// present". Sites can extend the set via settings.
var defaultPresentMarkers = []string{
	"X", "Y", "YES", "TRUE", "1", "ON PREMISE", "PRESENT", "YELLOW", "GREEN",
}

// defaultApprovedStatuses are the swap statuses that count as approved.
var defaultApprovedStatuses = []string{"APPROVED", "COMPLETED", "ACCEPTED"}

// FlexString unmarshals from a JSON string or number. Settings documents are
// hand-edited and numeric codes show up both quoted and bare.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	return fmt.Errorf("value %s is neither string nor number", data)
}

// FlexStrings is a list of FlexString values.
type FlexStrings []FlexString

// DeptBucket maps one reporting bucket to the raw department IDs it covers.
// When ManagementAreaID is set, a department ID only lands in this bucket if
// the record's management area matches too.
type DeptBucket struct {
	DeptIDs          FlexStrings `json:"dept_ids"`
	ManagementAreaID FlexString  `json:"management_area_id"`
}

// Settings is the static per-site configuration loaded once per session.
type Settings struct {
	Departments      map[string]DeptBucket `json:"departments"`
	PresentMarkers   []string              `json:"present_markers"`
	ApprovedStatuses []string              `json:"approved_statuses"`
	VetMarkers       []string              `json:"vet_markers"`
	VtoMarkers       []string              `json:"vto_markers"`

	bucketOrder    []string
	presentSet     map[string]bool
	approvedExtras map[string]bool
}

// ParseSettings parses a settings JSON document. A missing or malformed
// document degrades to empty settings (every department buckets to unknown);
// it never fails the build.
func ParseSettings(data []byte) *Settings {
	s := &Settings{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, s); err != nil {
			s = &Settings{}
		}
	}
	s.init()
	return s
}

func (s *Settings) init() {
	s.bucketOrder = make([]string, 0, len(s.Departments))
	for name := range s.Departments {
		s.bucketOrder = append(s.bucketOrder, name)
	}
	sort.Strings(s.bucketOrder)

	s.presentSet = make(map[string]bool, len(defaultPresentMarkers)+len(s.PresentMarkers))
	for _, m := range defaultPresentMarkers {
		s.presentSet[m] = true
	}
	for _, m := range s.PresentMarkers {
		s.presentSet[strings.ToUpper(strings.TrimSpace(m))] = true
	}

	s.approvedExtras = make(map[string]bool, len(defaultApprovedStatuses)+len(s.ApprovedStatuses))
	for _, m := range defaultApprovedStatuses {
		s.approvedExtras[m] = true
	}
	for _, m := range s.ApprovedStatuses {
		s.approvedExtras[strings.ToUpper(strings.TrimSpace(m))] = true
	}
}

// BucketNames returns the configured bucket names in stable (sorted) order,
// without the unknown bucket.
func (s *Settings) BucketNames() []string {
	return s.bucketOrder
}

// Bucket resolves a raw department ID (plus management area) to its
// reporting bucket. Unmapped codes resolve to BucketUnknown; they are never
// an error. Buckets are checked in sorted name order so resolution is
// deterministic regardless of settings map iteration.
func (s *Settings) Bucket(deptID, mgmtAreaID string) string {
	if strings.TrimSpace(deptID) == "" {
		return BucketUnknown
	}
	for _, name := range s.bucketOrder {
		b := s.Departments[name]
		for _, id := range b.DeptIDs {
			if string(id) != deptID {
				continue
			}
			if b.ManagementAreaID != "" && string(b.ManagementAreaID) != mgmtAreaID {
				return BucketUnknown
			}
			return name
		}
	}
	return BucketUnknown
}

// IsPresent reports whether a raw status value counts as present.
func (s *Settings) IsPresent(raw string) bool {
	return s.presentSet[strings.ToUpper(strings.TrimSpace(raw))]
}

// IsApprovedSwap reports whether a swap status counts as approved. Besides
// the configured words, anything containing APPROV or ACCEPT passes, which
// covers per-site phrasings like "Approved by manager".
func (s *Settings) IsApprovedSwap(status string) bool {
	st := strings.ToUpper(strings.TrimSpace(status))
	if st == "" {
		return false
	}
	if s.approvedExtras[st] {
		return true
	}
	return strings.Contains(st, "APPROV") || strings.Contains(st, "ACCEPT")
}

// ClassifyOpportunity maps a raw opportunity type to VET or VTO using the
// configured markers (defaults: substring VET / VTO). Unrecognized types are
// returned uppercased as-is so they stay visible in the detail table.
func (s *Settings) ClassifyOpportunity(rawType string) string {
	t := strings.ToUpper(strings.TrimSpace(rawType))
	vet := s.VetMarkers
	if len(vet) == 0 {
		vet = []string{TypeVET}
	}
	vto := s.VtoMarkers
	if len(vto) == 0 {
		vto = []string{TypeVTO}
	}
	for _, m := range vet {
		if strings.Contains(t, strings.ToUpper(m)) {
			return TypeVET
		}
	}
	for _, m := range vto {
		if strings.Contains(t, strings.ToUpper(m)) {
			return TypeVTO
		}
	}
	return t
}

// AcceptedCount values that mean "nobody accepted".
var acceptedFalsy = map[string]bool{
	"": true, "0": true, "0.0": true, "false": true, "nan": true,
}

// IsAccepted reports whether a raw accepted-count cell means the opportunity
// was accepted.
func IsAccepted(raw string) bool {
	return !acceptedFalsy[strings.ToLower(strings.TrimSpace(raw))]
}
