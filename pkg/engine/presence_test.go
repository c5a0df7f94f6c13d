package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftdash/pkg/schema"
)

func TestBuildPresenceIndexMyTimeOverridesRoster(t *testing.T) {
	settings := schema.ParseSettings(nil)
	roster := []schema.RosterRecord{
		{EID: "101", DeptID: "1211", EmploymentType: "AMZN", OnRoster: "N"},
		{EID: "102", DeptID: "1211", EmploymentType: "TEMP", OnRoster: "Y"},
		{EID: "103", DeptID: "1299", EmploymentType: "AMZN", OnRoster: ""},
	}
	punches := map[string]string{
		"101": "Y", // roster said absent, punch says present
		"102": "N", // roster said present, punch says absent
	}

	idx := BuildPresenceIndex(roster, punches, settings)

	require.Len(t, idx.Entries, 3)
	assert.True(t, idx.Lookup("101").Present)
	assert.False(t, idx.Lookup("102").Present)
	assert.False(t, idx.Lookup("103").Present)
	assert.Nil(t, idx.Lookup("999"))

	assert.Equal(t, 3, idx.Stats.TotalEmployees)
	assert.Equal(t, 1, idx.Stats.PresentCount)
	assert.Equal(t, 2, idx.Stats.AbsentCount)
	assert.Equal(t, 2, idx.Stats.UniqueDepartments)
	assert.Equal(t, 2, idx.Stats.MyTimeOverrides)
}

func TestBuildPresenceIndexDuplicateIDFirstWins(t *testing.T) {
	settings := schema.ParseSettings(nil)
	roster := []schema.RosterRecord{
		{EID: "101", DeptID: "1211", OnRoster: "Y"},
		{EID: "101", DeptID: "1299", OnRoster: "N"},
	}

	idx := BuildPresenceIndex(roster, nil, settings)

	// Both rows count toward expected totals, lookup resolves to the first.
	assert.Len(t, idx.Entries, 2)
	assert.Equal(t, "1211", idx.Lookup("101").DeptID)
}
