// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package symptomit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/symptomit/ai"
	"github.com/poiesic/symptomit/ai/hashed"
	"github.com/poiesic/symptomit/ai/openai"
	"github.com/poiesic/symptomit/analyze"
	"github.com/poiesic/symptomit/core"
	"github.com/poiesic/symptomit/hypothesis"
	"github.com/poiesic/symptomit/indexing"
	"github.com/poiesic/symptomit/knowledge"
	"github.com/poiesic/symptomit/match"
	"github.com/poiesic/symptomit/normalize"
	"github.com/poiesic/symptomit/similarity"
	"github.com/poiesic/symptomit/storage"
	"github.com/poiesic/symptomit/storage/badger"
)

const providerProbeTimeout = 3 * time.Second

// Engine is the top-level facade. It owns the knowledge base, the embedding
// provider, and the matching, analysis, and hypothesis services built on top
// of them. Knowledge and embeddings are loaded lazily on first use, so
// constructing an Engine is cheap and never touches the network.
type Engine struct {
	logger *slog.Logger

	aiConfig       *ai.Config
	conceptMapPath string
	rulesPath      string
	storagePath    string
	seedConcepts   []core.Concept

	backend     *badger.Backend
	conceptRepo storage.ConceptRepository
	ruleRepo    storage.RuleRepository

	initOnce sync.Once
	initErr  error

	provider   ai.Provider
	embedder   ai.Embedder
	normalizer *normalize.Normalizer
	base       *knowledge.Base
	matcher    *match.Matcher
	analyzer   *analyze.Analyzer
	inferencer *hypothesis.Inferencer
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(e *Engine) {
		if config != nil {
			e.aiConfig = config
		}
	}
}

// WithConceptMap sets the path to a JSON concept map loaded on first use.
func WithConceptMap(path string) EngineOption {
	return func(e *Engine) {
		e.conceptMapPath = path
	}
}

// WithPatternRules sets the path to a YAML pattern rule file. When unset,
// the built-in rules are used.
func WithPatternRules(path string) EngineOption {
	return func(e *Engine) {
		e.rulesPath = path
	}
}

// WithConcepts seeds the knowledge base directly, in addition to any
// concept map file.
func WithConcepts(concepts []core.Concept) EngineOption {
	return func(e *Engine) {
		e.seedConcepts = concepts
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine. filePath is the badger database directory used
// for persisted concepts, rules, and precomputed vectors; pass an empty string
// to run without storage.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		logger:      slog.Default(),
		aiConfig:    ai.DefaultConfig(),
		storagePath: filePath,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.storagePath != "" {
		backend, err := badger.OpenBackend(e.storagePath, false)
		if err != nil {
			return nil, err
		}
		conceptRepo, err := badger.NewConceptRepository(backend)
		if err != nil {
			backend.Close()
			return nil, err
		}
		ruleRepo, err := badger.NewRuleRepository(backend)
		if err != nil {
			conceptRepo.Close()
			backend.Close()
			return nil, err
		}
		e.backend = backend
		e.conceptRepo = conceptRepo
		e.ruleRepo = ruleRepo
	}
	return e, nil
}

// init performs the lazy one-time setup: provider selection, knowledge base
// load, and service construction. Safe for concurrent first access; later
// calls return the memoized result.
func (e *Engine) init(ctx context.Context) error {
	e.initOnce.Do(func() {
		e.initErr = e.doInit(ctx)
	})
	return e.initErr
}

func (e *Engine) doInit(ctx context.Context) error {
	e.provider, e.embedder = e.selectProvider(ctx)

	cached, err := ai.NewCachedEmbedder(e.embedder, e.aiConfig.CacheSize)
	if err != nil {
		return err
	}
	e.embedder = cached

	e.normalizer, err = normalize.NewNormalizer()
	if err != nil {
		return err
	}

	concepts, err := e.loadConcepts(ctx)
	if err != nil {
		return err
	}
	e.base, err = knowledge.NewBase(e.normalizer, concepts, knowledge.WithLogger(e.logger))
	if err != nil {
		return err
	}
	for _, skipped := range e.base.Skipped() {
		e.logger.Warn("skipped concept", "label", skipped.Label, "reason", skipped.Reason)
	}

	e.matcher, err = match.NewMatcher(e.base, e.normalizer, e.embedder,
		match.WithLogger(e.logger))
	if err != nil {
		return err
	}

	scorer, err := similarity.NewScorer(e.embedder, similarity.WithLogger(e.logger))
	if err != nil {
		return err
	}
	e.analyzer, err = analyze.NewAnalyzer(e.base, scorer, analyze.WithLogger(e.logger))
	if err != nil {
		return err
	}

	rules, err := e.loadRules(ctx)
	if err != nil {
		return err
	}
	inferOpts := []hypothesis.Option{hypothesis.WithLogger(e.logger)}
	if len(rules) > 0 {
		inferOpts = append(inferOpts, hypothesis.WithRules(rules))
	}
	e.inferencer = hypothesis.NewInferencer(inferOpts...)

	e.logger.Info("engine initialized",
		"concepts", e.base.Len(),
		"rules", len(e.inferencer.Rules()))
	return nil
}

// selectProvider tries the configured trained embedding service and falls
// back to the deterministic hashed embedder when it is unreachable.
func (e *Engine) selectProvider(ctx context.Context) (ai.Provider, ai.Embedder) {
	provider, err := openai.NewProvider(e.aiConfig)
	if err == nil {
		probeCtx, cancel := context.WithTimeout(ctx, providerProbeTimeout)
		defer cancel()
		_, probeErr := provider.Embedder().EmbedText(probeCtx, "probe")
		if probeErr == nil {
			e.logger.Info("using trained embedding provider",
				"host", e.aiConfig.EmbeddingHost,
				"model", e.aiConfig.EmbeddingModel)
			return provider, provider.Embedder()
		}
		err = probeErr
		provider.Close()
	}

	e.logger.Warn("trained embedding provider unavailable, using hashed fallback",
		"err", err, "dimension", e.aiConfig.FallbackDimension)
	fallback := hashed.NewProvider(e.aiConfig.FallbackDimension)
	return fallback, fallback.Embedder()
}

// loadConcepts assembles the knowledge base content from seed concepts, the
// concept map file, and stored concepts, in that order.
func (e *Engine) loadConcepts(ctx context.Context) ([]core.Concept, error) {
	concepts := append([]core.Concept(nil), e.seedConcepts...)

	if e.conceptMapPath != "" {
		loaded, err := knowledge.LoadConceptMap(e.conceptMapPath)
		if err != nil {
			return nil, err
		}
		concepts = append(concepts, loaded...)
	}

	if len(concepts) == 0 && e.conceptRepo != nil {
		stored, err := e.conceptRepo.GetAllConcepts(ctx)
		if err != nil {
			return nil, err
		}
		for _, concept := range stored {
			concepts = append(concepts, *concept)
		}
	}
	return concepts, nil
}

// loadRules resolves pattern rules: an explicit YAML file wins, then stored
// rules, then nil so the inferencer keeps its built-in set.
func (e *Engine) loadRules(ctx context.Context) ([]core.PatternRule, error) {
	if e.rulesPath != "" {
		return knowledge.LoadPatternRules(e.rulesPath, e.logger)
	}
	if e.ruleRepo != nil {
		rules, err := e.ruleRepo.GetAllRules(ctx)
		if err != nil {
			return nil, err
		}
		if len(rules) > 0 {
			out := make([]core.PatternRule, len(rules))
			for i, rule := range rules {
				out[i] = *rule
			}
			return out, nil
		}
	}
	return nil, nil
}

// Match normalizes queryText and ranks knowledge-base concepts against it.
// A threshold of 0 or less selects the default.
func (e *Engine) Match(ctx context.Context, queryText string, threshold float64) ([]core.MatchResult, error) {
	if err := e.init(ctx); err != nil {
		return nil, err
	}
	return e.matcher.Match(ctx, queryText, threshold)
}

// Analyze splits queryText into phrases and resolves each against the
// knowledge base, flagging phrases that need further research.
func (e *Engine) Analyze(ctx context.Context, queryText string) ([]analyze.PhraseReport, error) {
	if err := e.init(ctx); err != nil {
		return nil, err
	}
	return e.analyzer.Analyze(ctx, queryText), nil
}

// Hypotheses runs pattern rules over the normalized queryText.
func (e *Engine) Hypotheses(ctx context.Context, queryText string) ([]core.Hypothesis, error) {
	if err := e.init(ctx); err != nil {
		return nil, err
	}
	normText, tokens := e.normalizer.Normalize(queryText)
	return e.inferencer.Infer(normText, tokens), nil
}

// Similar searches stored concepts by vector similarity to queryText. Unlike
// Match it works directly against the persistent vector index, so it scales
// past what the in-memory knowledge base holds. Requires a storage path.
func (e *Engine) Similar(ctx context.Context, queryText string, minSimilarity float32, limit int) ([]*core.SimilarConcept, error) {
	if e.conceptRepo == nil {
		return nil, ErrStorageRequired
	}
	if err := e.init(ctx); err != nil {
		return nil, err
	}
	normText, tokens := e.normalizer.Normalize(queryText)
	if len(tokens) == 0 {
		return nil, nil
	}
	vector, err := e.embedder.EmbedText(ctx, normText)
	if err != nil {
		return nil, err
	}
	return e.conceptRepo.FindSimilar(ctx, vector, minSimilarity, limit)
}

// KnowledgeBase returns the loaded knowledge base, initializing on demand.
func (e *Engine) KnowledgeBase(ctx context.Context) (*knowledge.Base, error) {
	if err := e.init(ctx); err != nil {
		return nil, err
	}
	return e.base, nil
}

// ConceptRepository returns the concept repository, or nil when the engine
// runs without storage.
func (e *Engine) ConceptRepository() storage.ConceptRepository {
	return e.conceptRepo
}

// RuleRepository returns the rule repository, or nil when the engine runs
// without storage.
func (e *Engine) RuleRepository() storage.RuleRepository {
	return e.ruleRepo
}

// NewIndexingPipeline creates a pipeline that precomputes concept vectors
// into this engine's storage. Requires a storage path.
func (e *Engine) NewIndexingPipeline(ctx context.Context, opts ...indexing.Option) (*indexing.Pipeline, error) {
	if e.conceptRepo == nil {
		return nil, ErrStorageRequired
	}
	if err := e.init(ctx); err != nil {
		return nil, err
	}
	return indexing.NewPipeline(e.conceptRepo, e.embedder, e.normalizer, opts...)
}

// Close releases the embedding provider and storage.
func (e *Engine) Close() error {
	if e.provider != nil {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing embedding provider", "err", err)
		}
	}
	if e.conceptRepo != nil {
		if err := e.conceptRepo.Close(); err != nil {
			e.logger.Error("error closing concept repository", "err", err)
			return err
		}
	}
	if e.ruleRepo != nil {
		if err := e.ruleRepo.Close(); err != nil {
			e.logger.Error("error closing rule repository", "err", err)
			return err
		}
	}
	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}
