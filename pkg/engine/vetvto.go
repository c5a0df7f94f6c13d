package engine

import (
	"shiftdash/pkg/schema"
)

// ExtractVetVto filters opportunity rows down to accepted VET/VTO instances
// for the target date and enriches each with the employee's department and
// presence from the index.
//
// Rows with no parseable work date are kept when a target date is set: the
// opportunity export sometimes omits shift times, and dropping those rows
// would silently understate acceptance counts.
func ExtractVetVto(rows []schema.VetVtoRow, idx *PresenceIndex, settings *schema.Settings, target schema.Date) []schema.VetVtoRecord {
	out := make([]schema.VetVtoRecord, 0, len(rows))
	for _, row := range rows {
		if !row.Accepted {
			continue
		}
		if !target.IsZero() && !row.WorkDate.IsZero() && !row.WorkDate.Equal(target) {
			continue
		}

		rec := schema.VetVtoRecord{
			EID:      row.EID,
			Type:     settings.ClassifyOpportunity(row.RawType),
			WorkDate: row.WorkDate,
		}
		if p := idx.Lookup(row.EID); p != nil {
			rec.Present = p.Present
			rec.DeptID = p.DeptID
			rec.EmploymentType = p.EmploymentType
			rec.ManagementAreaID = p.ManagementAreaID
		}
		out = append(out, rec)
	}
	return out
}
