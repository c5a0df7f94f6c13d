package report

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"shiftdash/pkg/engine"
	"shiftdash/pkg/parser"
	"shiftdash/pkg/schema"
)

// DeptCounters are the per-department summary counts. Key names are the
// fixed contract with the department-summary renderer.
type DeptCounters struct {
	RegularExpectedAMZN int `json:"regular_expected_AMZN"`
	RegularPresentAMZN  int `json:"regular_present_AMZN"`
	RegularExpectedTEMP int `json:"regular_expected_TEMP"`
	RegularPresentTEMP  int `json:"regular_present_TEMP"`
	SwapOut             int `json:"swap_out"`
	SwapInExpected      int `json:"swap_in_expected"`
	SwapInPresent       int `json:"swap_in_present"`
	VetAccept           int `json:"vet_accept"`
	VetPresent          int `json:"vet_present"`
	VtoAccept           int `json:"vto_accept"`
}

// DeptSummary is the department-summary report section.
type DeptSummary struct {
	GeneratedAt  string                   `json:"generated_at"`
	ByDepartment map[string]*DeptCounters `json:"by_department"`
}

// PresenceMap is the presence-lookup report section.
type PresenceMap struct {
	GeneratedAt string                 `json:"generated_at"`
	Presence    []schema.PresenceEntry `json:"presence"`
	Stats       engine.PresenceStats   `json:"stats"`
}

// VetVtoReport is the VET/VTO detail report section.
type VetVtoReport struct {
	GeneratedAt string                `json:"generated_at"`
	Records     []schema.VetVtoRecord `json:"records"`
}

// SwapsReport is the swaps detail report section.
type SwapsReport struct {
	GeneratedAt    string              `json:"generated_at"`
	SwapOut        []schema.SwapRecord `json:"swap_out"`
	SwapInExpected []schema.SwapRecord `json:"swap_in_expected"`
	SwapInPresent  []schema.SwapRecord `json:"swap_in_present"`
}

// Diagnostics stays visible in every build so wrong numbers can be traced
// to a misclassified file or a wrong column pick without re-running.
type Diagnostics struct {
	BuildID       string                           `json:"build_id"`
	BuildSeq      uint64                           `json:"build_seq,omitempty"`
	TargetDate    schema.Date                      `json:"target_date"`
	LoadedFiles   []engine.FileDiag                `json:"loaded_files"`
	PickedColumns engine.PickedColumns             `json:"picked_columns"`
	PresenceCount int                              `json:"presence_count"`
	SkippedRows   map[string]int                   `json:"skipped_rows,omitempty"`
	ParseWarnings map[string][]parser.ParseWarning `json:"parse_warnings,omitempty"`
}

// BuildResult is the top-level output consumed by the renderers. The shape
// and field names are a fixed contract; do not rename.
type BuildResult struct {
	GeneratedAt string        `json:"generated_at"`
	DeptSummary *DeptSummary  `json:"dept_summary"`
	PresenceMap *PresenceMap  `json:"presence_map"`
	VetVto      *VetVtoReport `json:"vet_vto"`
	Swaps       *SwapsReport  `json:"swaps"`
	Diagnostics *Diagnostics  `json:"diagnostics"`
}

// Options pins the non-deterministic inputs of a build. The zero value uses
// the wall clock and random build IDs; tests inject fixed ones.
type Options struct {
	Now      func() time.Time
	NewID    func() string
	BuildSeq uint64
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) newID() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return uuid.NewString()
}

// stampLayout matches what the renderers display verbatim.
const stampLayout = "2006-01-02 15:04:05"

// BuildAll runs the full aggregation pipeline over parsed inputs and
// assembles the renderer payload. Identical inputs and options always yield
// an identical result. On failure the error is an *engine.BuildError and no
// result is returned.
func BuildAll(inputs []engine.Input, settings *schema.Settings, targetDate string, opts Options) (*BuildResult, error) {
	ex, err := engine.Extract(inputs, settings, targetDate)
	if err != nil {
		return nil, err
	}
	return Assemble(ex, settings, opts), nil
}

// Assemble turns an extraction into the wire-format BuildResult.
func Assemble(ex *engine.Extraction, settings *schema.Settings, opts Options) *BuildResult {
	stamp := opts.now().Format(stampLayout)

	diag := &Diagnostics{
		BuildID:       opts.newID(),
		BuildSeq:      opts.BuildSeq,
		TargetDate:    ex.TargetDate,
		LoadedFiles:   ex.Files,
		PickedColumns: ex.Picked,
		PresenceCount: len(ex.Presence.Entries),
		SkippedRows:   ex.SkippedRows,
		ParseWarnings: ex.Warnings,
	}

	return &BuildResult{
		GeneratedAt: stamp,
		DeptSummary: summarize(ex, settings, stamp),
		PresenceMap: &PresenceMap{
			GeneratedAt: stamp,
			Presence:    ex.Presence.Entries,
			Stats:       ex.Presence.Stats,
		},
		VetVto: &VetVtoReport{
			GeneratedAt: stamp,
			Records:     ex.VetVto,
		},
		Swaps: &SwapsReport{
			GeneratedAt:    stamp,
			SwapOut:        ex.Swaps.Out,
			SwapInExpected: ex.Swaps.InExpected,
			SwapInPresent:  ex.Swaps.InPresent,
		},
		Diagnostics: diag,
	}
}

// summarize accumulates per-department counters. Every record lands in
// exactly one bucket; unmapped departments go to the reserved unknown
// bucket so totals reconcile with the detail tables.
func summarize(ex *engine.Extraction, settings *schema.Settings, stamp string) *DeptSummary {
	summary := &DeptSummary{
		GeneratedAt:  stamp,
		ByDepartment: make(map[string]*DeptCounters, len(settings.BucketNames())+1),
	}
	for _, name := range settings.BucketNames() {
		summary.ByDepartment[name] = &DeptCounters{}
	}
	summary.ByDepartment[schema.BucketUnknown] = &DeptCounters{}

	bucketOf := func(deptID, maID string) *DeptCounters {
		return summary.ByDepartment[settings.Bucket(deptID, maID)]
	}

	for _, p := range ex.Presence.Entries {
		c := bucketOf(p.DeptID, p.ManagementAreaID)
		if isAmazonBadge(p.EmploymentType) {
			c.RegularExpectedAMZN++
			if p.Present {
				c.RegularPresentAMZN++
			}
		} else {
			c.RegularExpectedTEMP++
			if p.Present {
				c.RegularPresentTEMP++
			}
		}
	}

	for _, r := range ex.Swaps.Out {
		bucketOf(r.DeptID, r.ManagementAreaID).SwapOut++
	}
	for _, r := range ex.Swaps.InExpected {
		bucketOf(r.DeptID, r.ManagementAreaID).SwapInExpected++
	}
	for _, r := range ex.Swaps.InPresent {
		bucketOf(r.DeptID, r.ManagementAreaID).SwapInPresent++
	}

	for _, r := range ex.VetVto {
		c := bucketOf(r.DeptID, r.ManagementAreaID)
		switch r.Type {
		case schema.TypeVET:
			c.VetAccept++
			if r.Present {
				c.VetPresent++
			}
		case schema.TypeVTO:
			c.VtoAccept++
		}
	}

	return summary
}

// isAmazonBadge splits employment types into the AMZN and TEMP columns.
// Anything that is not a blue badge counts as TEMP, matching how the sites
// read the report.
func isAmazonBadge(employmentType string) bool {
	return strings.Contains(strings.ToUpper(employmentType), "AMZN")
}
