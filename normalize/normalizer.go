package normalize

import (
	"regexp"
	"strings"
)

// Lexicon provides related terms for a token, backing the optional
// lexical-expansion step. Implementations should return terms from the most
// common sense of the word first; the normalizer caps how many are used.
//
// A nil Lexicon disables expansion with no effect on correctness, only recall.
type Lexicon interface {
	Related(token string) []string
}

// MapLexicon is a static Lexicon backed by an in-memory map.
type MapLexicon map[string][]string

var _ Lexicon = (MapLexicon)(nil)

// Related returns the related terms for token, or nil if none are known.
func (m MapLexicon) Related(token string) []string {
	return m[token]
}

// suffixRule is one ordered lemmatization rule. The first rule whose suffix
// matches wins, applied once per token, never recursively.
type suffixRule struct {
	suffix  string
	replace string
}

var suffixRules = []suffixRule{
	{suffix: "ing", replace: ""},
	{suffix: "ies", replace: "y"},
	{suffix: "ed", replace: ""},
	{suffix: "s", replace: ""},
}

var nonWordPattern = regexp.MustCompile(`[^a-z0-9_\s]`)

// Normalizer canonicalizes free-text symptom descriptions into normalized
// text and a token sequence. It is pure: fixed configuration and input always
// produce the same output, with no network or disk access.
type Normalizer struct {
	phrases    []string
	stopwords  map[string]struct{}
	synonyms   []SynonymPair
	compiled   []compiledSynonym
	canonical  map[string]struct{}
	lexicon    Lexicon
	maxRelated int
}

// SynonymPair rewrites a colloquial phrase to a canonical domain term.
// Pairs are applied in declaration order so rewrites stay deterministic.
type SynonymPair struct {
	From string
	To   string
}

// compiledSynonym holds the boundary-aware patterns for one pair. Matching on
// word boundaries keeps rewriting idempotent: a canonical term is never
// rewritten again because it only matches as a whole token or phrase.
type compiledSynonym struct {
	underscored *regexp.Regexp
	plain       *regexp.Regexp
	to          string
}

// Option configures a Normalizer.
type Option func(*Normalizer) error

// WithPhrases replaces the multi-word phrase list. Phrases are underscored
// before punctuation stripping so they are never split apart.
func WithPhrases(phrases []string) Option {
	return func(n *Normalizer) error {
		n.phrases = phrases
		return nil
	}
}

// WithStopwords replaces the stopword set.
func WithStopwords(words []string) Option {
	return func(n *Normalizer) error {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[w] = struct{}{}
		}
		n.stopwords = set
		return nil
	}
}

// WithSynonyms replaces the ordered synonym table.
func WithSynonyms(pairs []SynonymPair) Option {
	return func(n *Normalizer) error {
		n.synonyms = pairs
		return nil
	}
}

// WithLexicon enables bounded related-term expansion.
// Default is no expansion.
func WithLexicon(lexicon Lexicon) Option {
	return func(n *Normalizer) error {
		n.lexicon = lexicon
		return nil
	}
}

// NewNormalizer creates a Normalizer with the built-in domain tables,
// customized by the provided options.
func NewNormalizer(opts ...Option) (*Normalizer, error) {
	n := &Normalizer{
		phrases:    defaultPhrases,
		stopwords:  defaultStopwords(),
		synonyms:   defaultSynonyms,
		maxRelated: maxRelatedTerms,
	}
	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}

	n.compiled = make([]compiledSynonym, 0, len(n.synonyms))
	n.canonical = make(map[string]struct{}, len(n.synonyms))
	seen := make(map[string]struct{}, len(n.synonyms))
	for _, pair := range n.synonyms {
		seen[pair.From] = struct{}{}
		n.canonical[underscore(pair.To)] = struct{}{}
		n.compiled = append(n.compiled, compiledSynonym{
			underscored: boundaryPattern(underscore(pair.From)),
			plain:       boundaryPattern(pair.From),
			to:          underscore(pair.To),
		})
	}
	// Multi-word canonical targets rewrite to themselves so they collapse to
	// a single token even when they appear verbatim, keeping normalization
	// idempotent.
	for _, pair := range n.synonyms {
		if !strings.Contains(pair.To, " ") {
			continue
		}
		if _, dup := seen[pair.To]; dup {
			continue
		}
		seen[pair.To] = struct{}{}
		n.compiled = append(n.compiled, compiledSynonym{
			underscored: boundaryPattern(underscore(pair.To)),
			plain:       boundaryPattern(pair.To),
			to:          underscore(pair.To),
		})
	}
	return n, nil
}

func boundaryPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `\b`)
}

// Normalize canonicalizes text and returns the normalized text plus the token
// sequence. Tokens keep underscores so multi-word concepts remain
// distinguishable from coincidental adjacent single words; the normalized
// text has underscores reverted to spaces.
func (n *Normalizer) Normalize(text string) (string, []string) {
	t := strings.ToLower(text)

	// Underscore known phrases before punctuation stripping so they survive
	// tokenization intact.
	for _, p := range n.phrases {
		if strings.Contains(t, p) {
			t = strings.ReplaceAll(t, p, underscore(p))
		}
	}

	t = nonWordPattern.ReplaceAllString(t, " ")

	raw := make([]string, 0, 8)
	for _, w := range strings.Fields(t) {
		if _, stop := n.stopwords[w]; stop {
			continue
		}
		raw = append(raw, w)
	}
	if len(raw) == 0 {
		return "", nil
	}
	joined := strings.Join(raw, " ")

	// Rewrite domain synonyms at the phrase level, preferring the underscored
	// form so preserved phrases are rewritten as a unit.
	for _, syn := range n.compiled {
		if syn.underscored.MatchString(joined) {
			joined = syn.underscored.ReplaceAllString(joined, syn.to)
		} else if syn.plain.MatchString(joined) {
			joined = syn.plain.ReplaceAllString(joined, syn.to)
		}
	}

	tokens := make([]string, 0, len(raw))
	for _, w := range strings.Fields(joined) {
		tokens = append(tokens, n.lemmatize(w))
	}

	if n.lexicon != nil {
		tokens = n.expand(tokens)
	}

	tokens = dedupe(tokens)
	normText := strings.ReplaceAll(strings.Join(tokens, " "), "_", " ")
	return normText, tokens
}

// expand appends up to maxRelated related terms per token.
func (n *Normalizer) expand(tokens []string) []string {
	expanded := make([]string, 0, len(tokens)*2)
	for _, tok := range tokens {
		expanded = append(expanded, tok)
		added := 0
		for _, rel := range n.lexicon.Related(tok) {
			if added >= n.maxRelated {
				break
			}
			rel = underscore(strings.ToLower(rel))
			if rel == "" || rel == tok {
				continue
			}
			expanded = append(expanded, rel)
			added++
		}
	}
	return expanded
}

// lemmatize applies the first matching suffix rule, once. Underscored phrase
// tokens and canonical synonym targets are terminal identifiers rather than
// inflected words, so suffix rules never touch them. For the rest, a rule
// only fires when its stem is a fixpoint under the rule set, so repeated
// normalization cannot strip a token twice.
func (n *Normalizer) lemmatize(token string) string {
	if strings.Contains(token, "_") {
		return token
	}
	if _, terminal := n.canonical[token]; terminal {
		return token
	}
	for _, rule := range suffixRules {
		if !strings.HasSuffix(token, rule.suffix) {
			continue
		}
		stem := strings.TrimSuffix(token, rule.suffix) + rule.replace
		if stableStem(stem) {
			return stem
		}
		return token
	}
	return token
}

// stableStem reports whether no suffix rule would fire on the stem.
func stableStem(stem string) bool {
	for _, rule := range suffixRules {
		if strings.HasSuffix(stem, rule.suffix) {
			return false
		}
	}
	return true
}

// dedupe removes duplicate tokens, preserving first occurrence order.
func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, tok := range tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func underscore(phrase string) string {
	return strings.ReplaceAll(phrase, " ", "_")
}
