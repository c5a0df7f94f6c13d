package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPickColumnExactBeatsSubstring(t *testing.T) {
	headers := []string{"Home Department ID", "Department ID"}

	// "Department ID" is an exact candidate; the substring match on
	// "Home Department ID" must not win.
	assert.Equal(t, "Department ID", PickColumn(headers, RosterDeptCandidates))
}

func TestPickColumnCaseInsensitive(t *testing.T) {
	headers := []string{"EMPLOYEE ID", "dept"}
	assert.Equal(t, "EMPLOYEE ID", PickColumn(headers, RosterEIDCandidates))
}

func TestPickColumnSubstringFallback(t *testing.T) {
	headers := []string{"Assoc. Employment Type Code"}
	assert.Equal(t, "Assoc. Employment Type Code", PickColumn(headers, EmploymentCandidates))
}

func TestPickColumnNoMatch(t *testing.T) {
	assert.Equal(t, "", PickColumn([]string{"foo"}, RosterEIDCandidates))
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  101 ", "101"},
		{"10 1", "101"},
		{"101.0", "101"},
		{"101\u200B", "101"},
		{"", ""},
		{"A-12", "A-12"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeID(tt.raw), "input %q", tt.raw)
	}
}

func TestParseDateLayouts(t *testing.T) {
	want := NewDate(2025, time.October, 4)

	for _, raw := range []string{
		"2025-10-04",
		"2025/10/04",
		"10/04/2025",
		"10/4/2025",
		"2025-10-04 06:30:00",
		"2025-10-04T06:30:00",
		"04-Oct-2025",
		"Oct 4, 2025",
	} {
		got := ParseDate(raw)
		assert.True(t, got.Equal(want), "input %q parsed as %s", raw, got)
	}
}

func TestParseDateBlanksAndArtifacts(t *testing.T) {
	for _, raw := range []string{"", "  ", "NaN", "nan", "NaT", "None", "null", "not a date"} {
		assert.True(t, ParseDate(raw).IsZero(), "input %q", raw)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.October, 4)
	data, err := d.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"2025-10-04"`, string(data))

	var back Date
	assert.NoError(t, back.UnmarshalJSON(data))
	assert.True(t, back.Equal(d))

	zero, err := Date{}.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, "null", string(zero))
}
