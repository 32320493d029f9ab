package badger

import (
	"context"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/storage"
)

// conceptRepository implements storage.ConceptRepository for BadgerDB.
type conceptRepository struct {
	backend *Backend
}

var _ storage.ConceptRepository = (*conceptRepository)(nil)

// NewConceptRepository creates a concept repository on top of an open backend.
// Closing the repository does not close the backend.
func NewConceptRepository(backend *Backend) (storage.ConceptRepository, error) {
	return &conceptRepository{backend: backend}, nil
}

// Close releases resources. The repository holds none of its own.
func (r *conceptRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend.
func (r *conceptRepository) FindSimilar(ctx context.Context, vector []float32, minSimilarity float32, limit int) ([]*core.SimilarConcept, error) {
	return r.backend.FindSimilar(ctx, vector, minSimilarity, limit)
}

// WithTransaction delegates to the backend.
func (r *conceptRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutConcepts inserts or replaces concepts and maintains the label index.
func (r *conceptRepository) PutConcepts(ctx context.Context, concepts ...*core.Concept) ([]*core.Concept, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, concept := range concepts {
			if concept.Id == 0 {
				concept.Id = core.IDFromContent(strings.ToLower(concept.Label))
			}

			key := makeConceptKey(concept.Id)

			// Clear a stale label index entry when the label changed.
			old, err := readConcept(tx, key)
			if err != nil {
				return err
			}
			if old != nil && !strings.EqualFold(old.Label, concept.Label) {
				if err := tx.Delete(makeConceptLabelKey(strings.ToLower(old.Label))); err != nil {
					return err
				}
			}

			if err := tx.Set(key, storage.MarshalConcept(concept)); err != nil {
				return err
			}
			labelKey := makeConceptLabelKey(strings.ToLower(concept.Label))
			if err := tx.Set(labelKey, storage.MarshalID(concept.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return concepts, err
}

// DeleteConcepts removes concepts by their IDs.
func (r *conceptRepository) DeleteConcepts(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeConceptKey(id)

			concept, err := readConcept(tx, key)
			if err != nil {
				return err
			}
			if concept == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeConceptLabelKey(strings.ToLower(concept.Label))); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetConcept retrieves a single concept by ID.
func (r *conceptRepository) GetConcept(ctx context.Context, id core.ID) (*core.Concept, error) {
	var result *core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readConcept(tx, makeConceptKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetConcepts retrieves multiple concepts by their IDs.
func (r *conceptRepository) GetConcepts(ctx context.Context, ids ...core.ID) ([]*core.Concept, error) {
	var result []*core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			concept, err := readConcept(tx, makeConceptKey(id))
			if err != nil {
				return err
			}
			if concept != nil {
				result = append(result, concept)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindConceptByLabel finds a concept through the label index.
func (r *conceptRepository) FindConceptByLabel(ctx context.Context, label string) (*core.Concept, error) {
	var result *core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeConceptLabelKey(strings.ToLower(label)))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var conceptID core.ID
		err = item.Value(func(val []byte) error {
			conceptID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		result, err = readConcept(tx, makeConceptKey(conceptID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetAllConcepts retrieves all concepts in key order.
func (r *conceptRepository) GetAllConcepts(ctx context.Context) ([]*core.Concept, error) {
	var results []*core.Concept
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(conceptRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var concept *core.Concept
			err := iter.Item().Value(func(val []byte) error {
				var err error
				concept, err = storage.UnmarshalConcept(val)
				return err
			})
			if err != nil {
				return err
			}
			if concept != nil {
				results = append(results, concept)
			}
		}
		return nil
	}, false)
	return results, err
}

// readConcept reads a concept from the transaction, nil when absent.
func readConcept(tx *badger.Txn, key []byte) (*core.Concept, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var concept *core.Concept
	err = item.Value(func(val []byte) error {
		var err error
		concept, err = storage.UnmarshalConcept(val)
		return err
	})
	return concept, err
}
