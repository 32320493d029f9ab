package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/storage"
)

func TestConceptBasics(t *testing.T) {
	conceptRepo, ruleRepo, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { ruleRepo.Close(); conceptRepo.Close(); backend.Close() }()

	ctx := context.Background()

	concept := &core.Concept{
		Label:       "Common Cold",
		Synonyms:    []string{"runny nose"},
		Category:    "respiratory",
		Description: "tiredness headache runny nose cough",
		Vector:      []float32{0.6, 0.8},
	}

	stored, err := conceptRepo.PutConcepts(ctx, concept)
	if err != nil {
		t.Fatalf("Failed to put concept: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("Expected 1 concept, got %d", len(stored))
	}
	if stored[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}

	retrieved, err := conceptRepo.GetConcept(ctx, stored[0].Id)
	if err != nil {
		t.Fatalf("Failed to get concept: %v", err)
	}
	if retrieved.Label != "Common Cold" {
		t.Fatalf("Expected 'Common Cold', got '%s'", retrieved.Label)
	}
	if len(retrieved.Vector) != 2 {
		t.Fatalf("Expected stored vector, got %v", retrieved.Vector)
	}

	found, err := conceptRepo.FindConceptByLabel(ctx, "common cold")
	if err != nil {
		t.Fatalf("Failed to find concept by label: %v", err)
	}
	if found.Id != stored[0].Id {
		t.Fatalf("Expected ID %d, got %d", stored[0].Id, found.Id)
	}
}

func TestConceptPutIsUpsert(t *testing.T) {
	conceptRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { conceptRepo.Close(); backend.Close() }()

	ctx := context.Background()

	stored, err := conceptRepo.PutConcepts(ctx, &core.Concept{Label: "Asthma"})
	if err != nil {
		t.Fatalf("Failed to put concept: %v", err)
	}

	// Replacing the same ID with a vector must not create a second record.
	updated := &core.Concept{Id: stored[0].Id, Label: "Asthma", Vector: []float32{1, 0}}
	if _, err := conceptRepo.PutConcepts(ctx, updated); err != nil {
		t.Fatalf("Failed to replace concept: %v", err)
	}

	all, err := conceptRepo.GetAllConcepts(ctx)
	if err != nil {
		t.Fatalf("Failed to list concepts: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("Expected 1 concept after upsert, got %d", len(all))
	}
	if len(all[0].Vector) != 2 {
		t.Fatalf("Expected updated vector, got %v", all[0].Vector)
	}
}

func TestConceptDelete(t *testing.T) {
	conceptRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { conceptRepo.Close(); backend.Close() }()

	ctx := context.Background()

	stored, err := conceptRepo.PutConcepts(ctx, &core.Concept{Label: "Arthritis"})
	if err != nil {
		t.Fatalf("Failed to put concept: %v", err)
	}

	if err := conceptRepo.DeleteConcepts(ctx, stored[0].Id); err != nil {
		t.Fatalf("Failed to delete concept: %v", err)
	}

	if _, err := conceptRepo.GetConcept(ctx, stored[0].Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if _, err := conceptRepo.FindConceptByLabel(ctx, "arthritis"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected label index cleanup, got %v", err)
	}
	if err := conceptRepo.DeleteConcepts(ctx, stored[0].Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestConceptGetConcepts_SkipsMissing(t *testing.T) {
	conceptRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { conceptRepo.Close(); backend.Close() }()

	ctx := context.Background()

	stored, err := conceptRepo.PutConcepts(ctx,
		&core.Concept{Label: "Influenza"},
		&core.Concept{Label: "Gastroenteritis"},
	)
	if err != nil {
		t.Fatalf("Failed to put concepts: %v", err)
	}

	concepts, err := conceptRepo.GetConcepts(ctx, stored[0].Id, core.ID(999), stored[1].Id)
	if err != nil {
		t.Fatalf("Failed to get concepts: %v", err)
	}
	if len(concepts) != 2 {
		t.Fatalf("Expected 2 concepts, got %d", len(concepts))
	}
}

func TestFindSimilar(t *testing.T) {
	conceptRepo, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { conceptRepo.Close(); backend.Close() }()

	ctx := context.Background()

	_, err = conceptRepo.PutConcepts(ctx,
		&core.Concept{Label: "Aligned", Vector: []float32{1, 0}},
		&core.Concept{Label: "Diagonal", Vector: []float32{0.7071, 0.7071}},
		&core.Concept{Label: "Orthogonal", Vector: []float32{0, 1}},
		&core.Concept{Label: "Unindexed"},
	)
	if err != nil {
		t.Fatalf("Failed to put concepts: %v", err)
	}

	results, err := conceptRepo.FindSimilar(ctx, []float32{1, 0}, 0.5, 10)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Concept.Label != "Aligned" {
		t.Fatalf("Expected 'Aligned' first, got '%s'", results[0].Concept.Label)
	}
	if results[1].Concept.Label != "Diagonal" {
		t.Fatalf("Expected 'Diagonal' second, got '%s'", results[1].Concept.Label)
	}

	limited, err := conceptRepo.FindSimilar(ctx, []float32{1, 0}, 0.0, 1)
	if err != nil {
		t.Fatalf("FindSimilar failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("Expected limit of 1, got %d", len(limited))
	}
}
