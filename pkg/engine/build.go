package engine

import (
	"shiftdash/pkg/parser"
	"shiftdash/pkg/schema"
)

// Input is one uploaded file after CSV ingestion: its logical name plus the
// parsed rows. Kind is detected from the headers, never from the name.
type Input struct {
	Name     string
	Headers  []string
	Records  []map[string]string
	Warnings []parser.ParseWarning
	Kind     schema.FileKind
}

// ParseInput runs CSV ingestion for one file. Banner-prefixed exports are
// repaired before classification. A file whose bytes cannot be parsed at all
// becomes an unknown-kind input with a warning rather than an error: one
// stray upload must not block the other reports.
func ParseInput(name string, data []byte) Input {
	in := Input{Name: name, Kind: schema.KindUnknown}

	res, err := parser.StreamParseWithWarnings(data)
	if err != nil {
		in.Warnings = append(in.Warnings, parser.ParseWarning{Message: err.Error()})
		return in
	}

	if parser.HasBanner(res.Headers) {
		if fixed, ferr := parser.RepairBanner(data); ferr == nil && fixed != nil {
			res = fixed
		}
	}

	in.Headers = res.Headers
	in.Records = res.Records
	in.Warnings = res.Warnings
	in.Kind = schema.Classify(res.Headers)
	return in
}

// FileDiag describes one loaded file in the diagnostics block.
type FileDiag struct {
	Name string          `json:"name"`
	Kind schema.FileKind `json:"kind"`
	Rows int             `json:"rows"`
	Cols []string        `json:"cols"`
}

// maxDiagCols caps how many column names a file contributes to diagnostics.
const maxDiagCols = 25

// PickedColumns records which headers were resolved for each role, so a
// wrong report can be traced to a wrong column pick without re-running.
type PickedColumns struct {
	Roster schema.RosterColumns `json:"roster"`
	MyTime schema.MyTimeColumns `json:"mytime"`
}

// Extraction is everything the engine derives from one set of inputs. The
// report layer turns it into the wire-format BuildResult.
type Extraction struct {
	Presence   *PresenceIndex
	VetVto     []schema.VetVtoRecord
	Swaps      SwapSets
	TargetDate schema.Date

	Files       []FileDiag
	Picked      PickedColumns
	SkippedRows map[string]int
	Warnings    map[string][]parser.ParseWarning
}

// Extract runs the aggregation pipeline over parsed inputs. It is a pure
// function of its arguments: no clock, no globals, no I/O.
//
// targetDate filters which records count; when empty, the most recent work
// date observed across VET/VTO and swap rows is used, and when the data
// carries no dates at all the build is an unfiltered presence snapshot.
func Extract(inputs []Input, settings *schema.Settings, targetDate string) (*Extraction, error) {
	ex := &Extraction{
		SkippedRows: make(map[string]int),
		Warnings:    make(map[string][]parser.ParseWarning),
	}

	var roster, mytime, vetvto, swaps *Input
	for i := range inputs {
		in := &inputs[i]
		cols := in.Headers
		if len(cols) > maxDiagCols {
			cols = cols[:maxDiagCols]
		}
		ex.Files = append(ex.Files, FileDiag{
			Name: in.Name,
			Kind: in.Kind,
			Rows: len(in.Records),
			Cols: cols,
		})
		if len(in.Warnings) > 0 {
			ex.Warnings[in.Name] = in.Warnings
		}

		// First file of each kind wins; extras stay visible in diagnostics.
		switch in.Kind {
		case schema.KindRoster:
			if roster == nil {
				roster = in
			}
		case schema.KindMyTime:
			if mytime == nil {
				mytime = in
			}
		case schema.KindVetVto:
			if vetvto == nil {
				vetvto = in
			}
		case schema.KindSwaps:
			if swaps == nil {
				swaps = in
			}
		}
	}

	if roster == nil {
		return nil, schemaMismatch("", "no roster file among %d input(s): expected a file with department and presence columns", len(inputs))
	}

	ex.Picked.Roster = schema.PickRosterColumns(roster.Headers)
	if ex.Picked.Roster.EID == "" {
		return nil, schemaMismatch(roster.Name, "roster file has no employee-ID column (looked for %v)", schema.RosterEIDCandidates)
	}

	rosterRecs, skipped := schema.NormalizeRoster(roster.Records, ex.Picked.Roster)
	ex.SkippedRows[roster.Name] = skipped

	punches := map[string]string{}
	if mytime != nil {
		ex.Picked.MyTime = schema.PickMyTimeColumns(mytime.Headers)
		var mtSkipped int
		punches, mtSkipped = schema.NormalizeMyTime(mytime.Records, ex.Picked.MyTime)
		ex.SkippedRows[mytime.Name] = mtSkipped
	}

	var vetRows []schema.VetVtoRow
	if vetvto != nil {
		var vSkipped int
		vetRows, vSkipped = schema.NormalizeVetVto(vetvto.Records, vetvto.Headers)
		ex.SkippedRows[vetvto.Name] = vSkipped
	}

	var swapRows []schema.SwapRow
	if swaps != nil {
		var sSkipped int
		swapRows, sSkipped = schema.NormalizeSwaps(swaps.Records, swaps.Headers)
		ex.SkippedRows[swaps.Name] = sSkipped
	}

	ex.TargetDate = schema.ParseDate(targetDate)
	if ex.TargetDate.IsZero() {
		ex.TargetDate = latestWorkDate(vetRows, swapRows, settings)
	}

	ex.Presence = BuildPresenceIndex(rosterRecs, punches, settings)
	ex.VetVto = ExtractVetVto(vetRows, ex.Presence, settings, ex.TargetDate)
	ex.Swaps = ExtractSwaps(swapRows, ex.Presence, settings, ex.TargetDate)

	return ex, nil
}

// latestWorkDate returns the most recent work date across accepted VET/VTO
// rows and approved swap rows, or the zero Date when none of them carries
// one. Declined rows never make it into the report, so they must not steer
// the default target date either.
func latestWorkDate(vetRows []schema.VetVtoRow, swapRows []schema.SwapRow, settings *schema.Settings) schema.Date {
	var latest schema.Date
	consider := func(d schema.Date) {
		if d.IsZero() {
			return
		}
		if latest.IsZero() || d.After(latest.Time) {
			latest = d
		}
	}
	for _, r := range vetRows {
		if r.Accepted {
			consider(r.WorkDate)
		}
	}
	for _, r := range swapRows {
		if settings.IsApprovedSwap(r.Status) {
			consider(r.WorkDate)
		}
	}
	return latest
}
