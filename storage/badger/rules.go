package badger

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/storage"
)

// ruleRepository implements storage.RuleRepository for BadgerDB.
type ruleRepository struct {
	backend *Backend
}

var _ storage.RuleRepository = (*ruleRepository)(nil)

// NewRuleRepository creates a pattern rule repository on top of an open
// backend. Closing the repository does not close the backend.
func NewRuleRepository(backend *Backend) (storage.RuleRepository, error) {
	return &ruleRepository{backend: backend}, nil
}

// Close releases resources. The repository holds none of its own.
func (r *ruleRepository) Close() error {
	return nil
}

// PutRules inserts or replaces rules keyed by rule id.
func (r *ruleRepository) PutRules(ctx context.Context, rules ...*core.PatternRule) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, rule := range rules {
			if rule.Id == "" {
				return storage.ErrInvalidQuery
			}
			if err := tx.Set(makePatternRuleKey(rule.Id), storage.MarshalPatternRule(rule)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetAllRules retrieves all rules. Keys embed the rule id, so iteration order
// is rule id order.
func (r *ruleRepository) GetAllRules(ctx context.Context) ([]*core.PatternRule, error) {
	var results []*core.PatternRule
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(patternRulePrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var rule *core.PatternRule
			err := iter.Item().Value(func(val []byte) error {
				var err error
				rule, err = storage.UnmarshalPatternRule(val)
				return err
			})
			if err != nil {
				return err
			}
			if rule != nil {
				results = append(results, rule)
			}
		}
		return nil
	}, false)
	return results, err
}

// DeleteRules removes rules by their ids.
func (r *ruleRepository) DeleteRules(ctx context.Context, ids ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makePatternRuleKey(id)
			if _, err := tx.Get(key); err != nil {
				if err == badger.ErrKeyNotFound {
					return storage.ErrNotFound
				}
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}
