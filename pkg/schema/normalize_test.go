package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Jose Nunez", CleanName("José  Núñez"))
	assert.Equal(t, "Ana Lima", CleanName("  Ana   Lima "))
	assert.Equal(t, "", CleanName("   "))
}

func rosterHeaders() []string {
	return []string{"Employee ID", "Department ID", "Department", "Employment Type", "On Premise", "Management Area ID", "First Name", "Last Name"}
}

func TestNormalizeRoster(t *testing.T) {
	cols := PickRosterColumns(rosterHeaders())
	require.Equal(t, "Employee ID", cols.EID)
	require.Equal(t, "Department ID", cols.Dept)
	require.Equal(t, "On Premise", cols.OnPrem)

	records := []map[string]string{
		{"Employee ID": "101.0", "Department ID": "1211", "Employment Type": "AMZN FT", "On Premise": "y", "Management Area ID": "22", "First Name": "José", "Last Name": "Núñez"},
		{"Employee ID": "", "Department ID": "1211"},
		{"Employee ID": "102", "Department ID": " 1299 ", "Employment Type": "TEMP", "On Premise": ""},
	}

	out, skipped := NormalizeRoster(records, cols)
	assert.Equal(t, 1, skipped)
	require.Len(t, out, 2)

	assert.Equal(t, "101", out[0].EID)
	assert.Equal(t, "Jose Nunez", out[0].Name)
	assert.Equal(t, "1211", out[0].DeptID)
	assert.Equal(t, "Y", out[0].OnRoster)
	assert.Equal(t, "1299", out[1].DeptID)
}

func TestNormalizeMyTimeLastPunchWins(t *testing.T) {
	cols := PickMyTimeColumns([]string{"Person ID", "On Premise"})
	punches, skipped := NormalizeMyTime([]map[string]string{
		{"Person ID": "101", "On Premise": "n"},
		{"Person ID": "101", "On Premise": "Y"},
		{"Person ID": "", "On Premise": "Y"},
	}, cols)

	assert.Equal(t, 1, skipped)
	assert.Equal(t, "Y", punches["101"])
}

func TestNormalizeVetVto(t *testing.T) {
	headers := []string{"employeeId", "opportunity.type", "opportunity.acceptedCount", "opportunity.shiftStart", "opportunity.shiftEnd"}
	rows, skipped := NormalizeVetVto([]map[string]string{
		{"employeeId": "101", "opportunity.type": "VET", "opportunity.acceptedCount": "1", "opportunity.shiftStart": "2025-10-04 06:30:00"},
		{"employeeId": "102", "opportunity.type": "VTO", "opportunity.acceptedCount": "0", "opportunity.shiftEnd": "2025-10-04"},
		{"employeeId": "", "opportunity.type": "VET"},
	}, headers)

	assert.Equal(t, 1, skipped)
	require.Len(t, rows, 2)

	assert.True(t, rows[0].Accepted)
	assert.True(t, rows[0].WorkDate.Equal(NewDate(2025, time.October, 4)))

	// shiftEnd is the fallback when shiftStart is missing
	assert.False(t, rows[1].Accepted)
	assert.True(t, rows[1].WorkDate.Equal(NewDate(2025, time.October, 4)))
}

func TestNormalizeSwaps(t *testing.T) {
	headers := []string{"Employee 1 ID", "Status", "Date to Skip", "Date to Work"}
	rows, skipped := NormalizeSwaps([]map[string]string{
		{"Employee 1 ID": "101", "Status": "approved", "Date to Skip": "2025-10-03", "Date to Work": "2025-10-04"},
		{"Employee 1 ID": "", "Status": "approved"},
	}, headers)

	assert.Equal(t, 1, skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, "APPROVED", rows[0].Status)
	assert.True(t, rows[0].SkipDate.Equal(NewDate(2025, time.October, 3)))
	assert.True(t, rows[0].WorkDate.Equal(NewDate(2025, time.October, 4)))
}
