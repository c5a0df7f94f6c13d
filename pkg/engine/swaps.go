package engine

import (
	"shiftdash/pkg/schema"
)

// SwapSets holds the three swap views consumed by the renderers. A single
// approved swap can appear in Out (for its skip date) or in InExpected /
// InPresent (for its work date), but never both for the same query date.
type SwapSets struct {
	Out        []schema.SwapRecord
	InExpected []schema.SwapRecord
	InPresent  []schema.SwapRecord
}

// ExtractSwaps filters swap rows down to approved swaps relevant to the
// target date and splits them into out / in-expected / in-present sets.
func ExtractSwaps(rows []schema.SwapRow, idx *PresenceIndex, settings *schema.Settings, target schema.Date) SwapSets {
	var sets SwapSets
	sets.Out = make([]schema.SwapRecord, 0)
	sets.InExpected = make([]schema.SwapRecord, 0)
	sets.InPresent = make([]schema.SwapRecord, 0)

	for _, row := range rows {
		if !settings.IsApprovedSwap(row.Status) {
			continue
		}
		// Skip only when both dates are known and neither matches.
		if !target.IsZero() &&
			!row.SkipDate.IsZero() && !row.SkipDate.Equal(target) &&
			!row.WorkDate.IsZero() && !row.WorkDate.Equal(target) {
			continue
		}

		rec := schema.SwapRecord{
			EID:      row.EID,
			SkipDate: row.SkipDate,
			WorkDate: row.WorkDate,
		}
		if p := idx.Lookup(row.EID); p != nil {
			rec.Present = p.Present
			rec.DeptID = p.DeptID
			rec.EmploymentType = p.EmploymentType
			rec.ManagementAreaID = p.ManagementAreaID
		}

		if !row.SkipDate.IsZero() && (target.IsZero() || row.SkipDate.Equal(target)) {
			out := rec
			out.Kind = schema.SwapKindOut
			sets.Out = append(sets.Out, out)
		}
		if !row.WorkDate.IsZero() && (target.IsZero() || row.WorkDate.Equal(target)) {
			in := rec
			in.Kind = schema.SwapKindInExpect
			sets.InExpected = append(sets.InExpected, in)
			if rec.Present {
				present := rec
				present.Kind = schema.SwapKindInPresent
				sets.InPresent = append(sets.InPresent, present)
			}
		}
	}
	return sets
}
