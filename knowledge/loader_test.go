package knowledge

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const conceptMapJSON = `{
  "fever": {
    "synonyms": ["high temperature", "pyrexia"],
    "body_system": "general",
    "description": "elevated body temperature chills sweating",
    "diseases": [
      {"name": "Influenza-like Illness", "prior": 0.6, "suggestions": ["Oseltamivir"]},
      {"name": "Common Cold", "suggestions": ["Rest", "Fluids"]}
    ]
  },
  "headache": {
    "synonyms": ["head pain"],
    "body_system": "neurological",
    "diseases": [
      {"name": "Migraine", "prior": 0.4}
    ]
  }
}`

func TestParseConceptMap(t *testing.T) {
	t.Run("decodes entries in file order", func(t *testing.T) {
		concepts, err := ParseConceptMap(strings.NewReader(conceptMapJSON))
		require.NoError(t, err)
		require.Len(t, concepts, 2)
		assert.Equal(t, "fever", concepts[0].Label)
		assert.Equal(t, "headache", concepts[1].Label)
	})

	t.Run("maps fields", func(t *testing.T) {
		concepts, err := ParseConceptMap(strings.NewReader(conceptMapJSON))
		require.NoError(t, err)

		fever := concepts[0]
		assert.NotZero(t, fever.Id)
		assert.Equal(t, []string{"high temperature", "pyrexia"}, fever.Synonyms)
		assert.Equal(t, "general", fever.Category)
		assert.Equal(t, "elevated body temperature chills sweating", fever.Description)
		require.Len(t, fever.Outcomes, 2)
		assert.Equal(t, 0.6, fever.Outcomes[0].Prior)
		assert.Equal(t, defaultOutcomePrior, fever.Outcomes[1].Prior)
		assert.Equal(t, []string{"Rest", "Fluids"}, fever.Outcomes[1].Suggestions)
	})

	t.Run("deterministic ids", func(t *testing.T) {
		first, err := ParseConceptMap(strings.NewReader(conceptMapJSON))
		require.NoError(t, err)
		second, err := ParseConceptMap(strings.NewReader(conceptMapJSON))
		require.NoError(t, err)
		assert.Equal(t, first[0].Id, second[0].Id)
	})

	t.Run("empty input", func(t *testing.T) {
		concepts, err := ParseConceptMap(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, concepts)
	})

	t.Run("top-level array rejected", func(t *testing.T) {
		_, err := ParseConceptMap(strings.NewReader(`[]`))
		assert.ErrorIs(t, err, ErrMalformedConceptMap)
	})

	t.Run("truncated object rejected", func(t *testing.T) {
		_, err := ParseConceptMap(strings.NewReader(`{"fever": {"synonyms": []}`))
		assert.ErrorIs(t, err, ErrMalformedConceptMap)
	})
}

func TestLoadConceptMap_MissingFile(t *testing.T) {
	concepts, err := LoadConceptMap(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, concepts)
}

func TestParseCandidatesCSV(t *testing.T) {
	t.Run("standard headers", func(t *testing.T) {
		csvData := "Disease,Symptoms,Treatments\n" +
			"Gastroenteritis,stomach pain|diarrhea|vomiting,Oral Rehydration Salts; Ondansetron\n" +
			"Arthritis,joint pain swelling stiffness,NSAIDs\n"
		concepts, skipped, err := ParseCandidatesCSV(strings.NewReader(csvData))
		require.NoError(t, err)
		assert.Empty(t, skipped)
		require.Len(t, concepts, 2)

		gastro := concepts[0]
		assert.Equal(t, "Gastroenteritis", gastro.Label)
		assert.Equal(t, "stomach pain, diarrhea, vomiting", gastro.Description)
		require.Len(t, gastro.Outcomes, 1)
		assert.Equal(t, []string{"Oral Rehydration Salts", "Ondansetron"}, gastro.Outcomes[0].Suggestions)
	})

	t.Run("lowercase alias headers", func(t *testing.T) {
		csvData := "name,symptom,therapy\nAsthma,wheezing cough,Salbutamol\n"
		concepts, _, err := ParseCandidatesCSV(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Len(t, concepts, 1)
		assert.Equal(t, "Asthma", concepts[0].Label)
		assert.Equal(t, "wheezing cough", concepts[0].Description)
	})

	t.Run("missing label gets placeholder", func(t *testing.T) {
		csvData := "Disease,Symptoms\n,fever cough\n"
		concepts, _, err := ParseCandidatesCSV(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Len(t, concepts, 1)
		assert.Equal(t, "disease-0", concepts[0].Label)
	})

	t.Run("no treatments yields no outcomes", func(t *testing.T) {
		csvData := "Disease,Symptoms\nCOVID-19,loss of smell fever cough\n"
		concepts, _, err := ParseCandidatesCSV(strings.NewReader(csvData))
		require.NoError(t, err)
		require.Len(t, concepts, 1)
		assert.Empty(t, concepts[0].Outcomes)
	})

	t.Run("short row tolerated", func(t *testing.T) {
		csvData := "Disease,Symptoms,Treatments\nStroke\n"
		concepts, skipped, err := ParseCandidatesCSV(strings.NewReader(csvData))
		require.NoError(t, err)
		assert.Empty(t, skipped)
		require.Len(t, concepts, 1)
		assert.Equal(t, "Stroke", concepts[0].Label)
		assert.Empty(t, concepts[0].Description)
	})

	t.Run("empty input", func(t *testing.T) {
		concepts, skipped, err := ParseCandidatesCSV(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, concepts)
		assert.Empty(t, skipped)
	})
}

func TestLoadCandidatesCSV_MissingFile(t *testing.T) {
	concepts, skipped, err := LoadCandidatesCSV(filepath.Join(t.TempDir(), "absent.csv"))
	require.NoError(t, err)
	assert.Empty(t, concepts)
	assert.Empty(t, skipped)
}

const patternRulesYAML = `
- id: "hypothesis:caffeine"
  title: Caffeine Sensitivity
  triggers: [jittery, caffeine]
  rationale: Stimulant intake can produce tremor and restlessness.
  suggestions: [Hydration]
- id: ""
  title: Missing Id
  triggers: [broken]
- id: "hypothesis:no_triggers"
  title: No Triggers
  triggers: []
`

func TestParsePatternRules(t *testing.T) {
	t.Run("valid rules kept, invalid skipped", func(t *testing.T) {
		rules, err := ParsePatternRules(strings.NewReader(patternRulesYAML), nil)
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.Equal(t, "hypothesis:caffeine", rules[0].Id)
		assert.Equal(t, []string{"jittery", "caffeine"}, rules[0].Triggers)
	})

	t.Run("empty input", func(t *testing.T) {
		rules, err := ParsePatternRules(strings.NewReader(""), nil)
		require.NoError(t, err)
		assert.Empty(t, rules)
	})
}

func TestLoadPatternRules_MissingFile(t *testing.T) {
	rules, err := LoadPatternRules(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.NoError(t, err)
	assert.Empty(t, rules)
}
