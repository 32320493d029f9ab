package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/symptomit/core"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("knee pain")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID(nil)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalConcept(t *testing.T) {
	concept := &core.Concept{
		Id:          core.IDFromContent("common cold"),
		Label:       "Common Cold",
		Synonyms:    []string{"runny nose", "sniffles"},
		Category:    "respiratory",
		Description: "tiredness headache runny nose cough sneezing",
		Outcomes: []core.Outcome{
			{Name: "Viral URI", Prior: 0.7, Suggestions: []string{"Dextromethorphan"}},
			{Name: "Allergy", Prior: 0.3, Suggestions: []string{"Antihistamines"}},
		},
		Vector: []float32{0.1, -0.2, 0.97},
	}

	data := MarshalConcept(concept)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalConcept(data)
	require.NoError(t, err)
	assert.Equal(t, concept, decoded)
}

func TestMarshalUnmarshalConcept_ZeroValue(t *testing.T) {
	decoded, err := UnmarshalConcept(MarshalConcept(&core.Concept{}))
	require.NoError(t, err)
	assert.Zero(t, decoded.Id)
	assert.Empty(t, decoded.Label)
	assert.Empty(t, decoded.Synonyms)
	assert.Empty(t, decoded.Outcomes)
	assert.Empty(t, decoded.Vector)
}

func TestUnmarshalConcept_Truncated(t *testing.T) {
	concept := &core.Concept{Id: 7, Label: "Asthma", Vector: []float32{1, 0}}
	data := MarshalConcept(concept)

	_, err := UnmarshalConcept(data[:len(data)/2])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalPatternRule(t *testing.T) {
	rule := &core.PatternRule{
		Id:          "hypothesis:orthostatic",
		Title:       "Orthostatic Hypotension / Dehydration",
		Triggers:    []string{"dizziness", "lightheaded", "postural change"},
		Rationale:   "Dizziness when standing quickly suggests reduced cerebral perfusion.",
		Suggestions: []string{"Oral Rehydration Salts", "Electrolytes"},
	}

	decoded, err := UnmarshalPatternRule(MarshalPatternRule(rule))
	require.NoError(t, err)
	assert.Equal(t, rule, decoded)
}
