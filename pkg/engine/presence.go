package engine

import (
	"shiftdash/pkg/schema"
)

// PresenceIndex cross-references the roster against the MyTime punch list
// and provides lookup of an employee's presence and department by ID.
type PresenceIndex struct {
	Entries []schema.PresenceEntry
	ByEID   map[string]*schema.PresenceEntry
	Stats   PresenceStats
}

// PresenceStats contains aggregate statistics about the presence index.
type PresenceStats struct {
	TotalEmployees    int `json:"total_employees"`
	PresentCount      int `json:"present_count"`
	AbsentCount       int `json:"absent_count"`
	UniqueDepartments int `json:"unique_departments"`
	MyTimeOverrides   int `json:"mytime_overrides"`
}

// BuildPresenceIndex constructs the presence index from normalized roster
// records and the MyTime punch map. When an employee has a MyTime punch it
// wins over the roster's own status column; the roster value is only a
// fallback for employees the punch export missed.
func BuildPresenceIndex(roster []schema.RosterRecord, punches map[string]string, settings *schema.Settings) *PresenceIndex {
	index := &PresenceIndex{
		Entries: make([]schema.PresenceEntry, 0, len(roster)),
		ByEID:   make(map[string]*schema.PresenceEntry, len(roster)),
	}

	depts := make(map[string]bool)
	for _, rec := range roster {
		marker := rec.OnRoster
		if punch, ok := punches[rec.EID]; ok {
			marker = punch
			index.Stats.MyTimeOverrides++
		}

		entry := schema.PresenceEntry{
			EID:              rec.EID,
			Name:             rec.Name,
			DeptID:           rec.DeptID,
			EmploymentType:   rec.EmploymentType,
			ManagementAreaID: rec.ManagementAreaID,
			Present:          settings.IsPresent(marker),
		}
		index.Entries = append(index.Entries, entry)

		if entry.Present {
			index.Stats.PresentCount++
		} else {
			index.Stats.AbsentCount++
		}
		if rec.DeptID != "" {
			depts[rec.DeptID] = true
		}
	}

	// First occurrence wins for duplicate IDs; every row still counts
	// toward the per-department expected totals.
	for i := range index.Entries {
		if _, exists := index.ByEID[index.Entries[i].EID]; !exists {
			index.ByEID[index.Entries[i].EID] = &index.Entries[i]
		}
	}

	index.Stats.TotalEmployees = len(index.Entries)
	index.Stats.UniqueDepartments = len(depts)
	return index
}

// Lookup returns the presence entry for an employee ID, or nil when the
// employee is not on the roster.
func (idx *PresenceIndex) Lookup(eid string) *schema.PresenceEntry {
	return idx.ByEID[eid]
}
