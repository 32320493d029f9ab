package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/symptomit"
	"github.com/poiesic/symptomit/core"
)

// demoConcepts is a small deterministic disease set for local development and
// smoke testing. Treatments ride along as suggestions on a single outcome per
// concept.
var demoConcepts = []core.Concept{
	{
		Label:       "Influenza-like Illness",
		Category:    "respiratory",
		Description: "high fever dry cough sore throat muscle aches fatigue headache chills",
		Outcomes: []core.Outcome{
			{Name: "Influenza-like Illness", Prior: 0.5, Suggestions: []string{"Oseltamivir", "Ibuprofen"}},
		},
	},
	{
		Label:       "Common Cold",
		Category:    "respiratory",
		Description: "tiredness headache runny nose cough sneezing mild fever congestion",
		Outcomes: []core.Outcome{
			{Name: "Common Cold", Prior: 0.5, Suggestions: []string{"Dextromethorphan", "Ibuprofen"}},
		},
	},
	{
		Label:       "Asthma",
		Category:    "respiratory",
		Description: "shortness of breath chest tightness wheezing cough nighttime symptoms",
		Outcomes: []core.Outcome{
			{Name: "Asthma", Prior: 0.5, Suggestions: []string{"Salbutamol", "Inhaled Corticosteroids"}},
		},
	},
	{
		Label:       "Varicella (Chickenpox)",
		Category:    "infectious",
		Description: "itching rash vesicles blister painful blisters fever malaise",
		Outcomes: []core.Outcome{
			{Name: "Varicella (Chickenpox)", Prior: 0.5, Suggestions: []string{"Acyclovir"}},
		},
	},
	{
		Label:       "Herpes Zoster (Shingles)",
		Category:    "infectious",
		Description: "painful blisters rash burning tingling dermatomal vesicular eruption",
		Outcomes: []core.Outcome{
			{Name: "Herpes Zoster (Shingles)", Prior: 0.5, Suggestions: []string{"Acyclovir"}},
		},
	},
	{
		Label:       "Arthritis",
		Category:    "musculoskeletal",
		Description: "joint pain swelling redness stiffness limited range of motion",
		Outcomes: []core.Outcome{
			{Name: "Arthritis", Prior: 0.5, Suggestions: []string{"NSAIDs"}},
		},
	},
	{
		Label:       "Gastroenteritis",
		Category:    "gastrointestinal",
		Description: "stomach pain diarrhea vomiting nausea abdominal cramps dehydration",
		Outcomes: []core.Outcome{
			{Name: "Gastroenteritis", Prior: 0.5, Suggestions: []string{"Oral Rehydration Salts"}},
		},
	},
	{
		Label:       "COVID-19",
		Category:    "respiratory",
		Description: "loss of smell fever cough fatigue sore throat headache",
	},
	{
		Label:       "Allergic Rhinitis",
		Category:    "respiratory",
		Description: "sneezing itchy eyes nasal congestion runny nose rhinorrhea",
		Outcomes: []core.Outcome{
			{Name: "Allergic Rhinitis", Prior: 0.5, Suggestions: []string{"Antihistamines"}},
		},
	},
	{
		Label:       "Stroke",
		Category:    "neurological",
		Description: "numbness one side slurred speech facial droop weakness sudden onset",
	},
	{
		Label:       "Diabetes Mellitus",
		Category:    "endocrine",
		Description: "high blood sugar thirst frequent urination weight loss fatigue",
		Outcomes: []core.Outcome{
			{Name: "Diabetes Mellitus", Prior: 0.5, Suggestions: []string{"Metformin"}},
		},
	},
}

var (
	dbPath    = flag.String("db", "./symptoms_db", "badger database directory")
	skipIndex = flag.Bool("skip-index", false, "seed concepts without computing vectors")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	engine, err := symptomit.NewEngine(*dbPath)
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	ctx := context.Background()

	put := make([]*core.Concept, len(demoConcepts))
	for i := range demoConcepts {
		put[i] = &demoConcepts[i]
	}
	stored, err := engine.ConceptRepository().PutConcepts(ctx, put...)
	if err != nil {
		panic(err)
	}
	slog.Info("seeded concepts", "count", len(stored))

	if *skipIndex {
		return
	}

	pipeline, err := engine.NewIndexingPipeline(ctx)
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	if err := pipeline.Reindex(ctx); err != nil {
		panic(err)
	}
	slog.Info("indexed concepts", "count", len(stored))
}
