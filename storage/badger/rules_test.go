package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/storage"
)

func TestRuleBasics(t *testing.T) {
	_, ruleRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { ruleRepo.Close(); backend.Close() }()

	ctx := context.Background()

	rules := []*core.PatternRule{
		{
			Id:          "hypothesis:pruritus",
			Title:       "Dermatologic Irritation / Pruritus",
			Triggers:    []string{"itchy", "hives"},
			Rationale:   "Itching and rash suggest cutaneous irritation.",
			Suggestions: []string{"Antihistamines"},
		},
		{
			Id:          "hypothesis:arrhythmia",
			Title:       "Arrhythmia Risk / Palpitations",
			Triggers:    []string{"palpitation"},
			Rationale:   "Irregular heartbeat can reflect ectopy.",
			Suggestions: []string{"Magnesium"},
		},
	}

	if err := ruleRepo.PutRules(ctx, rules...); err != nil {
		t.Fatalf("Failed to put rules: %v", err)
	}

	all, err := ruleRepo.GetAllRules(ctx)
	if err != nil {
		t.Fatalf("Failed to list rules: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(all))
	}
	// Keys embed the rule id, so listing is id-ordered.
	if all[0].Id != "hypothesis:arrhythmia" {
		t.Fatalf("Expected id-ordered listing, got '%s' first", all[0].Id)
	}

	if err := ruleRepo.DeleteRules(ctx, "hypothesis:pruritus"); err != nil {
		t.Fatalf("Failed to delete rule: %v", err)
	}
	remaining, err := ruleRepo.GetAllRules(ctx)
	if err != nil {
		t.Fatalf("Failed to list rules: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("Expected 1 rule, got %d", len(remaining))
	}

	if err := ruleRepo.DeleteRules(ctx, "hypothesis:missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestPutRules_RejectsEmptyId(t *testing.T) {
	_, ruleRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { ruleRepo.Close(); backend.Close() }()

	err = ruleRepo.PutRules(context.Background(), &core.PatternRule{Title: "No Id"})
	if !errors.Is(err, storage.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery, got %v", err)
	}
}

func TestPutRules_Replace(t *testing.T) {
	_, ruleRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { ruleRepo.Close(); backend.Close() }()

	ctx := context.Background()
	rule := &core.PatternRule{Id: "hypothesis:caffeine", Title: "v1", Triggers: []string{"jittery"}}
	if err := ruleRepo.PutRules(ctx, rule); err != nil {
		t.Fatalf("Failed to put rule: %v", err)
	}

	rule.Title = "v2"
	if err := ruleRepo.PutRules(ctx, rule); err != nil {
		t.Fatalf("Failed to replace rule: %v", err)
	}

	all, err := ruleRepo.GetAllRules(ctx)
	if err != nil {
		t.Fatalf("Failed to list rules: %v", err)
	}
	if len(all) != 1 || all[0].Title != "v2" {
		t.Fatalf("Expected replaced rule, got %+v", all)
	}
}
