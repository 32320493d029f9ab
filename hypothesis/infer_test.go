package hypothesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/normalize"
)

func TestInfer_BuiltinRules(t *testing.T) {
	inf := NewInferencer()

	t.Run("no trigger no hypothesis", func(t *testing.T) {
		hyps := inf.Infer("knee pain", []string{"knee", "pain"})
		assert.Empty(t, hyps)
	})

	t.Run("single token trigger", func(t *testing.T) {
		hyps := inf.Infer("fatigue", []string{"fatigue"})
		require.Len(t, hyps, 1)
		assert.Equal(t, "hypothesis:fatique_sleep", hyps[0].RuleId)
		assert.Equal(t, "Sleep Deprivation / Fatigue", hyps[0].Title)
		assert.Equal(t, DefaultScore, hyps[0].Score)
		assert.NotEmpty(t, hyps[0].Rationale)
		assert.Contains(t, hyps[0].Suggestions, "Magnesium")
	})

	t.Run("multi word trigger hits normalized text", func(t *testing.T) {
		// Tokens carry underscores, the normalized text does not.
		hyps := inf.Infer("dizzy postural change", []string{"dizzy", "postural_change"})
		require.Len(t, hyps, 1)
		assert.Equal(t, "hypothesis:orthostatic", hyps[0].RuleId)
	})

	t.Run("declaration order preserved", func(t *testing.T) {
		hyps := inf.Infer("pruritus and fatigue after meals", []string{"pruritus", "fatigue", "after_meals"})
		require.Len(t, hyps, 3)
		assert.Equal(t, "hypothesis:fatique_sleep", hyps[0].RuleId)
		assert.Equal(t, "hypothesis:postprandial_fatigue", hyps[1].RuleId)
		assert.Equal(t, "hypothesis:pruritus", hyps[2].RuleId)
	})

	t.Run("rule fires at most once", func(t *testing.T) {
		hyps := inf.Infer("itchy hives dermatitis", []string{"itchy", "hives", "dermatitis"})
		require.Len(t, hyps, 1)
		assert.Equal(t, "hypothesis:pruritus", hyps[0].RuleId)
	})
}

func TestInfer_AfterNormalization(t *testing.T) {
	norm, err := normalize.NewNormalizer()
	require.NoError(t, err)
	inf := NewInferencer()

	normText, tokens := norm.Normalize("I feel dizzy when standing up quickly")
	hyps := inf.Infer(normText, tokens)

	require.Len(t, hyps, 1)
	assert.Equal(t, "hypothesis:orthostatic", hyps[0].RuleId)
	assert.Contains(t, hyps[0].Suggestions, "Electrolytes")
}

func TestInfer_CustomRules(t *testing.T) {
	custom := append(DefaultRules(), core.PatternRule{
		Id:          "hypothesis:caffeine",
		Title:       "Caffeine Sensitivity",
		Triggers:    []string{"jittery", "caffeine"},
		Rationale:   "Stimulant intake can produce tremor and restlessness.",
		Suggestions: []string{"Hydration"},
	})
	inf := NewInferencer(WithRules(custom))

	hyps := inf.Infer("jittery after coffee", []string{"jittery", "coffee"})
	require.Len(t, hyps, 1)
	assert.Equal(t, "hypothesis:caffeine", hyps[0].RuleId)
	assert.Equal(t, DefaultScore, hyps[0].Score)
}

func TestInfer_EmptyInput(t *testing.T) {
	inf := NewInferencer()
	assert.Empty(t, inf.Infer("", nil))
}
