package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftdash/pkg/schema"
)

const rosterCSV = "Employee ID,Department ID,Department,Employment Type,On Premise,Management Area ID,First Name,Last Name\n" +
	"101,1211,Pack,AMZN FT,N,22,Ana,Lima\n" +
	"102,1211,Pack,TEMP,N,22,Ben,Okafor\n" +
	",1211,Pack,TEMP,N,22,No,ID\n"

const mytimeCSV = "Person ID,On Premise\n101,Y\n"

const vetvtoCSV = "employeeId,opportunity.type,opportunity.acceptedCount,opportunity.shiftStart\n" +
	"101,VET,1,2025-10-04 06:30:00\n" +
	"102,VTO,0,2025-10-04 06:30:00\n"

const swapsCSV = "Employee 1 ID,Status,Date to Skip,Date to Work\n" +
	"102,Approved,2025-10-03,2025-10-04\n"

func testInputs(t *testing.T) []Input {
	t.Helper()
	return []Input{
		ParseInput("roster.csv", []byte(rosterCSV)),
		ParseInput("mytime.csv", []byte(mytimeCSV)),
		ParseInput("vetvto.csv", []byte(vetvtoCSV)),
		ParseInput("swaps.csv", []byte(swapsCSV)),
	}
}

func TestParseInputClassifies(t *testing.T) {
	inputs := testInputs(t)
	assert.Equal(t, schema.KindRoster, inputs[0].Kind)
	assert.Equal(t, schema.KindMyTime, inputs[1].Kind)
	assert.Equal(t, schema.KindVetVto, inputs[2].Kind)
	assert.Equal(t, schema.KindSwaps, inputs[3].Kind)
}

func TestParseInputRepairsBanner(t *testing.T) {
	banner := "Hyperfind: Ad Hoc,\nTimeframe: Today,\nPerson ID,On Premise\n101,Y\n"

	in := ParseInput("mytime.csv", []byte(banner))
	assert.Equal(t, schema.KindMyTime, in.Kind)
	require.Len(t, in.Records, 1)
	assert.Equal(t, "101", in.Records[0]["Person ID"])
}

func TestParseInputUnparseableBecomesUnknown(t *testing.T) {
	in := ParseInput("garbage.bin", nil)
	assert.Equal(t, schema.KindUnknown, in.Kind)
	assert.NotEmpty(t, in.Warnings)
}

func TestExtractPipeline(t *testing.T) {
	settings := schema.ParseSettings([]byte(`{"departments":{"Pack":{"dept_ids":["1211"]}}}`))

	ex, err := Extract(testInputs(t), settings, "2025-10-04")
	require.NoError(t, err)

	// Target date honored
	assert.True(t, ex.TargetDate.Equal(schema.NewDate(2025, time.October, 4)))

	// Presence: 101 present via MyTime punch, 102 absent; the ID-less
	// roster row is skipped and surfaced in diagnostics.
	assert.Equal(t, 2, len(ex.Presence.Entries))
	assert.Equal(t, 1, ex.SkippedRows["roster.csv"])
	assert.True(t, ex.Presence.Lookup("101").Present)
	assert.False(t, ex.Presence.Lookup("102").Present)

	// VET accepted for 101; the VTO row has acceptedCount 0
	require.Len(t, ex.VetVto, 1)
	assert.Equal(t, schema.TypeVET, ex.VetVto[0].Type)

	// Swap: work date matches the target, skip date does not
	assert.Empty(t, ex.Swaps.Out)
	require.Len(t, ex.Swaps.InExpected, 1)
	assert.Empty(t, ex.Swaps.InPresent) // 102 is absent

	// Diagnostics
	assert.Len(t, ex.Files, 4)
	assert.Equal(t, "Employee ID", ex.Picked.Roster.EID)
	assert.Equal(t, "Person ID", ex.Picked.MyTime.EID)
}

func TestExtractDefaultTargetDate(t *testing.T) {
	settings := schema.ParseSettings(nil)

	ex, err := Extract(testInputs(t), settings, "")
	require.NoError(t, err)

	// Most recent work date across VET/VTO and swaps
	assert.True(t, ex.TargetDate.Equal(schema.NewDate(2025, time.October, 4)))
}

func TestExtractDefaultTargetDateIgnoresDeclinedRows(t *testing.T) {
	settings := schema.ParseSettings(nil)

	// The latest work dates belong to a declined VET row and a denied swap.
	// Only the accepted/approved rows may steer the default target date.
	vetvto := "employeeId,opportunity.type,opportunity.acceptedCount,opportunity.shiftStart\n" +
		"101,VET,1,2025-10-04 06:30:00\n" +
		"102,VET,0,2025-10-09 06:30:00\n"
	swaps := "Employee 1 ID,Status,Date to Skip,Date to Work\n" +
		"102,Denied,2025-10-07,2025-10-08\n"
	inputs := []Input{
		ParseInput("roster.csv", []byte(rosterCSV)),
		ParseInput("vetvto.csv", []byte(vetvto)),
		ParseInput("swaps.csv", []byte(swaps)),
	}

	ex, err := Extract(inputs, settings, "")
	require.NoError(t, err)
	assert.True(t, ex.TargetDate.Equal(schema.NewDate(2025, time.October, 4)))
}

func TestExtractNoDatesMeansNoFilter(t *testing.T) {
	settings := schema.ParseSettings(nil)
	inputs := []Input{ParseInput("roster.csv", []byte(rosterCSV))}

	ex, err := Extract(inputs, settings, "")
	require.NoError(t, err)
	assert.True(t, ex.TargetDate.IsZero())
	assert.Len(t, ex.Presence.Entries, 2)
}

func TestExtractFailsWithoutRoster(t *testing.T) {
	settings := schema.ParseSettings(nil)
	inputs := []Input{ParseInput("mytime.csv", []byte(mytimeCSV))}

	_, err := Extract(inputs, settings, "")
	require.Error(t, err)

	be, ok := err.(*BuildError)
	require.True(t, ok)
	assert.Equal(t, ErrSchemaMismatch, be.Kind)
	assert.Contains(t, be.Message, "no roster file")
}

func TestExtractFailsOnRosterWithoutEmployeeID(t *testing.T) {
	settings := schema.ParseSettings(nil)
	// Classified as roster (department columns) but no ID column at all —
	// not even a substring match for one.
	csv := "Department,Dept Name,On Premise\nPack,Packing,Y\n"
	inputs := []Input{ParseInput("roster.csv", []byte(csv))}

	_, err := Extract(inputs, settings, "")
	require.Error(t, err)

	be, ok := err.(*BuildError)
	require.True(t, ok)
	assert.Equal(t, ErrSchemaMismatch, be.Kind)
	assert.Equal(t, "roster.csv", be.File)
}

func TestExtractFirstFileOfEachKindWins(t *testing.T) {
	settings := schema.ParseSettings(nil)
	second := "Employee ID,Department ID,Department,On Premise\n999,1,One,Y\n"
	inputs := []Input{
		ParseInput("roster-a.csv", []byte(rosterCSV)),
		ParseInput("roster-b.csv", []byte(second)),
	}

	ex, err := Extract(inputs, settings, "")
	require.NoError(t, err)
	assert.Nil(t, ex.Presence.Lookup("999"))
	assert.NotNil(t, ex.Presence.Lookup("101"))
	assert.Len(t, ex.Files, 2)
}
