package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextEvaluatorID(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{
			name:     "empty set starts at one",
			existing: nil,
			want:     "JEVA01",
		},
		{
			name: "sequential set",
			existing: []string{
				"JEVA01", "JEVA02", "JEVA03", "JEVA04", "JEVA05",
				"JEVA06", "JEVA07", "JEVA08", "JEVA09",
			},
			want: "JEVA10",
		},
		{
			name:     "gaps use the maximum, not the count",
			existing: []string{"JEVA01", "JEVA07"},
			want:     "JEVA08",
		},
		{
			name:     "non-conforming ids are ignored",
			existing: []string{"JEVA03", "RQST-05", "JEVAXX", "JEVA", "admin"},
			want:     "JEVA04",
		},
		{
			name:     "suffixes above two digits are unpadded",
			existing: []string{"JEVA99", "JEVA100"},
			want:     "JEVA101",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextEvaluatorID(tt.existing))
		})
	}
}

// Seeding allocates by scanning existing IDs; registration formats straight
// from the store's counter. The counter has to sit at the maximum seeded
// suffix afterwards, or the first registrations reissue seeded IDs.
func TestCounterContinuesPastScanAllocatedIDs(t *testing.T) {
	seeded := []string{}
	for i := 0; i < 3; i++ {
		seeded = append(seeded, NextEvaluatorID(seeded))
	}
	assert.Equal(t, []string{"JEVA01", "JEVA02", "JEVA03"}, seeded)

	floor := MaxEvaluatorSuffix(seeded)
	assert.Equal(t, 3, floor)

	firstRegistered := FormatEvaluatorID(floor + 1)
	assert.NotContains(t, seeded, firstRegistered)
	assert.Equal(t, "JEVA04", firstRegistered)
}

func TestMaxEvaluatorSuffix(t *testing.T) {
	assert.Equal(t, 0, MaxEvaluatorSuffix(nil))
	assert.Equal(t, 0, MaxEvaluatorSuffix([]string{"RQST-05", "JEVAXX", "admin"}))
	assert.Equal(t, 100, MaxEvaluatorSuffix([]string{"JEVA02", "JEVA100", "JEVA99"}))
}

func TestFormatSequenceID(t *testing.T) {
	assert.Equal(t, "RQST-01", FormatSequenceID(RequestPrefix, 1))
	assert.Equal(t, "RASN-42", FormatSequenceID(ReassignmentPrefix, 42))
	assert.Equal(t, "RASN-100", FormatSequenceID(ReassignmentPrefix, 100))
}
