package hypothesis

import "github.com/poiesic/symptomit/core"

// DefaultScore is assigned to every triggered hypothesis. Rules are coarse
// pattern heuristics, not a ranked model, so a single confidence applies.
const DefaultScore = 0.75

// DefaultRules returns the built-in pattern rule table. Order matters:
// inference reports hypotheses in declaration order.
func DefaultRules() []core.PatternRule {
	return []core.PatternRule{
		{
			Id:        "hypothesis:fatique_sleep",
			Title:     "Sleep Deprivation / Fatigue",
			Triggers:  []string{"sleep deprivation", "fatigue", "somnolence", "long hours", "overtime"},
			Rationale: "Reported lack of sleep or prolonged work can disrupt circadian rhythm leading to fatigue, impaired attention, and mood changes.",
			Suggestions: []string{
				"Vitamin B12", "Magnesium", "Melatonin",
			},
		},
		{
			Id:        "hypothesis:postprandial_fatigue",
			Title:     "Postprandial Fatigue / Glucose Regulation",
			Triggers:  []string{"after meal", "after meals", "post meal", "post-meal", "postprandial", "heavy meals", "after eating"},
			Rationale: "Post-meal somnolence may relate to postprandial glucose and insulin dynamics and parasympathetic predominance.",
			Suggestions: []string{
				"Chromium", "Berberine", "Fiber",
			},
		},
		{
			Id:        "hypothesis:arrhythmia",
			Title:     "Arrhythmia Risk / Palpitations",
			Triggers:  []string{"irregular heartbeat", "palpitation", "skipping beat", "skipping beats", "heart racing"},
			Rationale: "Irregular heartbeat can reflect ectopy or arrhythmia; contributors include anxiety, stimulants, electrolyte imbalance.",
			Suggestions: []string{
				"Electrolytes", "Magnesium", "Omega-3",
			},
		},
		{
			Id:        "hypothesis:orthostatic",
			Title:     "Orthostatic Hypotension / Dehydration",
			Triggers:  []string{"dizziness", "lightheaded", "postural change", "standing up"},
			Rationale: "Dizziness when standing quickly suggests reduced cerebral perfusion due to low blood pressure or dehydration.",
			Suggestions: []string{
				"Oral Rehydration Salts", "Electrolytes",
			},
		},
		{
			Id:        "hypothesis:mood_motivation",
			Title:     "Low Mood / Stress / Neurotransmitter Changes",
			Triggers:  []string{"low mood", "low motivation", "inattention", "memory impairment", "stress"},
			Rationale: "Psychological stress can alter monoamine neurotransmitters contributing to low mood, decreased motivation, and cognitive issues.",
			Suggestions: []string{
				"Omega-3", "B-Complex", "Rhodiola",
			},
		},
		{
			Id:        "hypothesis:pruritus",
			Title:     "Dermatologic Irritation / Pruritus",
			Triggers:  []string{"pruritus", "itchiness", "itchy", "urticaria", "hives", "dermatitis", "skin rash"},
			Rationale: "Itching and rash suggest cutaneous irritation, allergy, or urticaria; histamine pathways often implicated.",
			Suggestions: []string{
				"Antihistamines", "Calamine", "Hydrocortisone (topical)",
			},
		},
	}
}
