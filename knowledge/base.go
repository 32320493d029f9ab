// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package knowledge

import (
	"log/slog"
	"strings"

	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/normalize"
)

// Entry is one indexed concept. The normalized label, label token set, and
// description blob are computed once at build time so per-query matching never
// re-normalizes knowledge-base text.
type Entry struct {
	Concept core.Concept

	// NormLabel is the concept label run through the normalizer.
	NormLabel string
	// LabelTokens is the set of normalized label tokens.
	LabelTokens map[string]struct{}
	// NormBlob is the normalized description text, used for snippet evidence.
	NormBlob string
	// BlobTokens is the set of normalized description tokens.
	BlobTokens map[string]struct{}
}

// Base is an immutable in-memory knowledge base. Build it once with NewBase
// and share it across queries; it is safe for concurrent reads.
type Base struct {
	entries  []Entry
	byId     map[core.ID]int
	synonyms map[string]core.ID
	vocab    []string
	skipped  []core.SkippedCandidate
}

type baseOptions struct {
	logger *slog.Logger
}

type BaseOption func(*baseOptions)

func WithLogger(logger *slog.Logger) BaseOption {
	return func(o *baseOptions) {
		o.logger = logger
	}
}

// NewBase indexes concepts in declaration order. Concepts that fail validation
// are skipped with a recorded reason rather than aborting the build; an empty
// or nil concept list yields a valid empty base.
func NewBase(normalizer *normalize.Normalizer, concepts []core.Concept, opts ...BaseOption) (*Base, error) {
	if normalizer == nil {
		return nil, ErrNormalizerRequired
	}
	options := baseOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&options)
	}
	logger := options.logger.With("component", "knowledge")

	base := &Base{
		byId:     make(map[core.ID]int, len(concepts)),
		synonyms: make(map[string]core.ID),
	}
	for _, concept := range concepts {
		if err := core.ValidateConcept(&concept); err != nil {
			logger.Warn("skipping invalid concept", "label", concept.Label, "error", err)
			base.skipped = append(base.skipped, core.SkippedCandidate{
				ConceptId: concept.Id,
				Label:     concept.Label,
				Reason:    err.Error(),
			})
			continue
		}
		if concept.Id == 0 {
			concept.Id = core.IDFromContent(strings.ToLower(concept.Label))
		}
		if _, dup := base.byId[concept.Id]; dup {
			logger.Warn("skipping duplicate concept", "label", concept.Label, "id", concept.Id)
			base.skipped = append(base.skipped, core.SkippedCandidate{
				ConceptId: concept.Id,
				Label:     concept.Label,
				Reason:    "duplicate concept id",
			})
			continue
		}

		normLabel, labelTokens := normalizer.Normalize(concept.Label)
		normBlob, blobTokens := normalizer.Normalize(concept.Description)
		base.byId[concept.Id] = len(base.entries)
		base.entries = append(base.entries, Entry{
			Concept:     concept,
			NormLabel:   normLabel,
			LabelTokens: tokenSet(labelTokens),
			NormBlob:    normBlob,
			BlobTokens:  tokenSet(blobTokens),
		})
		base.vocab = append(base.vocab, concept.Label)

		// Later declarations win on synonym collisions, matching declaration
		// order so rebuilds stay deterministic.
		for _, synonym := range concept.Synonyms {
			key := normalize.NormalizePhrase(synonym)
			if key == "" {
				continue
			}
			base.synonyms[key] = concept.Id
		}
	}
	logger.Debug("knowledge base built", "concepts", len(base.entries), "skipped", len(base.skipped))
	return base, nil
}

// Entries returns the indexed concepts in declaration order. Callers must not
// mutate the returned slice.
func (b *Base) Entries() []Entry {
	return b.entries
}

// Len returns the number of indexed concepts.
func (b *Base) Len() int {
	return len(b.entries)
}

// Vocabulary returns the concept labels in declaration order.
func (b *Base) Vocabulary() []string {
	return b.vocab
}

// Concept returns the concept with the given id.
func (b *Base) Concept(id core.ID) (core.Concept, bool) {
	idx, ok := b.byId[id]
	if !ok {
		return core.Concept{}, false
	}
	return b.entries[idx].Concept, true
}

// Lookup resolves a normalized phrase through the synonym table.
func (b *Base) Lookup(phrase string) (core.Concept, bool) {
	id, ok := b.synonyms[normalize.NormalizePhrase(phrase)]
	if !ok {
		return core.Concept{}, false
	}
	return b.Concept(id)
}

// ByLabel returns the concept whose label equals the given label,
// case-insensitively.
func (b *Base) ByLabel(label string) (core.Concept, bool) {
	want := strings.ToLower(strings.TrimSpace(label))
	for _, entry := range b.entries {
		if strings.ToLower(entry.Concept.Label) == want {
			return entry.Concept, true
		}
	}
	return core.Concept{}, false
}

// Category returns the category label for a concept, or "unknown" when the
// concept has none.
func (b *Base) Category(id core.ID) string {
	concept, ok := b.Concept(id)
	if !ok || concept.Category == "" {
		return "unknown"
	}
	return concept.Category
}

// Skipped returns the concepts rejected during the build, with reasons.
func (b *Base) Skipped() []core.SkippedCandidate {
	return b.skipped
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
