package schema

import (
	"fmt"
	"time"
)

// Date is a calendar day with no time-of-day component. The zero value
// marshals as null so renderers can treat a missing date as falsy.
type Date struct {
	time.Time
}

// NewDate builds a Date for the given year/month/day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (d Date) Equal(o Date) bool {
	if d.IsZero() || o.IsZero() {
		return d.IsZero() && o.IsZero()
	}
	return d.Year() == o.Year() && d.YearDay() == o.YearDay()
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(`"2006-01-02"`, s)
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", s, err)
	}
	*d = Date{t}
	return nil
}

// RosterRecord is one normalized row of the daily roster file. OnRoster keeps
// the raw uppercased presence marker from the roster itself; MyTime presence
// takes precedence over it when available.
type RosterRecord struct {
	EID              string
	Name             string
	DeptID           string
	EmploymentType   string
	ManagementAreaID string
	OnRoster         string
}

// PresenceEntry is one employee in the cross-referenced presence map. Field
// names are the fixed contract with the detail-table renderers.
type PresenceEntry struct {
	EID              string `json:"eid"`
	Name             string `json:"name"`
	DeptID           string `json:"dept_id"`
	EmploymentType   string `json:"employment_type"`
	ManagementAreaID string `json:"management_area_id"`
	Present          bool   `json:"present"`
}

// VetVtoRow is a normalized row from the VET/VTO opportunity export before
// presence cross-referencing.
type VetVtoRow struct {
	EID      string
	RawType  string
	Accepted bool
	WorkDate Date
}

// VetVtoRecord is an accepted VET/VTO instance enriched with the employee's
// department and presence, as rendered in the VET/VTO detail table.
type VetVtoRecord struct {
	EID              string `json:"eid"`
	Type             string `json:"type"`
	WorkDate         Date   `json:"work_date"`
	Present          bool   `json:"present"`
	DeptID           string `json:"dept_id"`
	EmploymentType   string `json:"employment_type"`
	ManagementAreaID string `json:"management_area_id"`
}

// SwapRow is a normalized row from the shift-swap export before approval
// filtering and presence cross-referencing.
type SwapRow struct {
	EID      string
	Status   string
	SkipDate Date
	WorkDate Date
}

// SwapRecord is an approved swap instance as rendered in the swaps detail
// tables. Kind distinguishes the out / in-expected / in-present views.
type SwapRecord struct {
	EID              string `json:"eid"`
	SkipDate         Date   `json:"skip_date"`
	WorkDate         Date   `json:"work_date"`
	Present          bool   `json:"present"`
	DeptID           string `json:"dept_id"`
	EmploymentType   string `json:"employment_type"`
	ManagementAreaID string `json:"management_area_id"`
	Kind             string `json:"kind"`
}

// Swap record kinds.
const (
	SwapKindOut       = "Swap OUT"
	SwapKindInExpect  = "Swap IN (expected)"
	SwapKindInPresent = "Swap IN (present)"
)

// VET/VTO record types.
const (
	TypeVET = "VET"
	TypeVTO = "VTO"
)
