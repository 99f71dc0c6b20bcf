// Package engine wires the tokenizer, inverted index, signature generator,
// candidate selector and verifier into the façade spec.md calls the Engine:
// a constructor over raw source sets plus configuration, a search/discover
// pair of operations, and mutators that reconfigure without a full rebuild
// when possible.
package engine

import (
	"fmt"
	"sort"
	"time"

	"silkmoth/internal/adapter/cache"
	"silkmoth/internal/adapter/index"
	"silkmoth/internal/adapter/selector"
	"silkmoth/internal/adapter/signature"
	"silkmoth/internal/adapter/similarity"
	"silkmoth/internal/adapter/tokenizer"
	"silkmoth/internal/adapter/verifier"
	"silkmoth/internal/domain"
	"silkmoth/internal/port"
)

// Config holds every construction parameter spec.md's §4.7/§6 enumerate,
// plus the ambient query-cache sizing.
type Config struct {
	Delta       float64
	Alpha       float64
	Q           int
	SimMetric   domain.SimMetric
	SimFunc     domain.SimFunc
	SigType     domain.SigType
	Reduction   bool
	CheckFilter bool
	NnFilter    bool
	CacheSize   int
	CacheTTL    time.Duration
}

// Engine is the set-relatedness search façade: an immutable inverted index
// over a fixed source collection, plus mutable configuration that rebuilds
// only the collaborators a given knob actually affects.
type Engine struct {
	cfg Config

	sources []domain.RawSet
	tsets   []domain.TokenizedSet

	tokenizer port.Tokenizer
	index     port.Index
	sigGen    port.SignatureGenerator
	selector  port.CandidateSelector
	verifier  port.Verifier

	elemSim   port.ElementSimilarity
	setMetric port.SetMetric

	cache *cache.QueryCache
}

// New builds an Engine over sources under cfg, tokenizing every source set
// and constructing the inverted index up front. Returns any tokenization
// warnings (domain.WarnEmptyElement) alongside the engine.
func New(sources []domain.RawSet, cfg Config) (*Engine, []string, error) {
	e := &Engine{sources: sources, cfg: cfg}

	warnings, err := e.rebuildTokensAndIndex()
	if err != nil {
		return nil, nil, err
	}
	if err := e.rebuildSimilarity(); err != nil {
		return nil, nil, err
	}
	if err := e.rebuildSigGen(); err != nil {
		return nil, nil, err
	}
	e.rebuildSelector()
	if w := e.rebuildVerifier(); w != "" {
		warnings = append(warnings, w)
	}
	e.cache = cache.NewQueryCache(cfg.CacheSize, cfg.CacheTTL)

	return e, warnings, nil
}

func (e *Engine) rebuildTokensAndIndex() ([]string, error) {
	tok, err := tokenizer.New(e.cfg.SimFunc, e.cfg.Q)
	if err != nil {
		return nil, err
	}
	e.tokenizer = tok

	tsets := make([]domain.TokenizedSet, len(e.sources))
	var warnings []string
	for i, raw := range e.sources {
		tset, warns, err := tok.Tokenize(raw)
		if err != nil {
			return nil, fmt.Errorf("tokenize source %d: %w", i, err)
		}
		tsets[i] = tset
		warnings = append(warnings, warns...)
	}
	e.tsets = tsets
	e.index = index.Build(tsets, e.cfg.SimFunc)
	return warnings, nil
}

func (e *Engine) rebuildSimilarity() error {
	elemSim, err := similarity.NewElementSimilarity(e.cfg.SimFunc)
	if err != nil {
		return err
	}
	setMetric, err := similarity.NewSetMetric(e.cfg.SimMetric)
	if err != nil {
		return err
	}
	e.elemSim = elemSim
	e.setMetric = setMetric
	return nil
}

func (e *Engine) rebuildSigGen() error {
	gen, err := signature.New(e.cfg.SigType, e.cfg.SimFunc, e.cfg.Q)
	if err != nil {
		return err
	}
	e.sigGen = gen
	return nil
}

func (e *Engine) rebuildSelector() {
	e.selector = selector.New(e.elemSim, e.setMetric, e.cfg.Delta, e.cfg.Alpha, e.cfg.Q)
}

// rebuildVerifier rebuilds the verifier, forcing reduction off whenever
// alpha > 0 per spec.md §4.6/§4.7 and returning the warning to emit when
// that override actually changes behavior.
func (e *Engine) rebuildVerifier() string {
	reduction := e.cfg.Reduction
	warning := ""
	if reduction && e.cfg.Alpha > 0 {
		reduction = false
		warning = domain.WarnReductionIncompatible
	}
	e.verifier = verifier.New(e.elemSim, e.setMetric, e.cfg.Alpha, reduction)
	return warning
}

// Search tokenizes r, computes its signature, selects candidates and
// verifies survivors, returning related source indices with their
// relatedness plus the candidate counts before/after filtering.
func (e *Engine) Search(r domain.RawSet) (domain.SearchResult, error) {
	if cached, ok := e.cache.Get(r); ok {
		return cached, nil
	}

	tset, warnings, err := e.tokenizer.Tokenize(r)
	if err != nil {
		return domain.SearchResult{}, err
	}

	result, err := e.searchTokenized(tset)
	if err != nil {
		return domain.SearchResult{}, err
	}
	result.Warnings = append(warnings, result.Warnings...)

	e.cache.Put(r, result)
	return result, nil
}

func (e *Engine) searchTokenized(r domain.TokenizedSet) (domain.SearchResult, error) {
	if len(r) == 0 {
		return domain.SearchResult{}, nil
	}

	sig, sigWarnings, err := e.sigGen.Generate(r, e.index, e.cfg.Delta, e.cfg.Alpha)
	if err != nil {
		return domain.SearchResult{}, err
	}

	candidates, err := e.selector.Probe(sig, e.index, len(r))
	if err != nil {
		return domain.SearchResult{}, err
	}
	candidatesBefore := len(candidates)

	var matchMap domain.MatchMap
	if e.cfg.CheckFilter {
		candidates, matchMap, err = e.selector.CheckFilter(r, sig, candidates, e.index)
		if err != nil {
			return domain.SearchResult{}, err
		}
	}

	if e.cfg.NnFilter {
		theta := e.cfg.Delta * float64(len(r))
		candidates, err = e.selector.NNFilter(r, sig, candidates, e.index, matchMap, theta)
		if err != nil {
			return domain.SearchResult{}, err
		}
	}
	candidatesAfter := len(candidates)

	ordered := make([]int, 0, len(candidates))
	for idx := range candidates {
		ordered = append(ordered, idx)
	}
	sort.Ints(ordered)

	var hits []domain.SearchHit
	for _, cIdx := range ordered {
		s, err := e.index.Set(cIdx)
		if err != nil {
			return domain.SearchResult{}, err
		}
		relatedness, err := e.verifier.Verify(r, s)
		if err != nil {
			return domain.SearchResult{}, err
		}
		if relatedness >= e.cfg.Delta {
			hits = append(hits, domain.SearchHit{Index: cIdx, Relatedness: relatedness})
		}
	}

	return domain.SearchResult{
		Hits:             hits,
		CandidatesBefore: candidatesBefore,
		CandidatesAfter:  candidatesAfter,
		Warnings:         sigWarnings,
	}, nil
}

// Discover treats the engine's own source collection as both sources and
// references, running search(source[i]) for every i and emitting
// (i,j,relatedness) pairs: every j != i for set-containment (asymmetric),
// only j > i for set-similarity (symmetric, so the reverse pair is
// redundant). onProgress, if given, is called after each source finishes
// with (sources completed, total sources) so a caller can drive a progress
// bar; it is optional so existing callers are unaffected.
func (e *Engine) Discover(onProgress ...func(done, total int)) ([]domain.DiscoverHit, []string, error) {
	var report func(done, total int)
	if len(onProgress) > 0 {
		report = onProgress[0]
	}

	var hits []domain.DiscoverHit
	var warnings []string

	for i, tset := range e.tsets {
		result, err := e.searchTokenized(tset)
		if err != nil {
			return nil, nil, fmt.Errorf("discover from source %d: %w", i, err)
		}
		warnings = append(warnings, result.Warnings...)

		for _, hit := range result.Hits {
			if hit.Index == i {
				continue
			}
			if e.cfg.SimMetric == domain.SetSimilarity && hit.Index <= i {
				continue
			}
			hits = append(hits, domain.DiscoverHit{I: i, J: hit.Index, Relatedness: hit.Relatedness})
		}

		if report != nil {
			report(i+1, len(e.tsets))
		}
	}

	return hits, warnings, nil
}

// NumSources reports the size of the indexed source collection.
func (e *Engine) NumSources() int { return e.index.NumSets() }

// NumTokens reports the number of distinct tokens in the inverted index.
func (e *Engine) NumTokens() int { return len(e.index.Tokens()) }

// SetDelta updates the relatedness threshold δ.
func (e *Engine) SetDelta(delta float64) {
	e.cfg.Delta = delta
	e.rebuildSelector()
	e.cache.Invalidate()
}

// SetAlpha updates the element-similarity slack α, disabling the
// triangle-inequality reduction with a warning if it was enabled.
func (e *Engine) SetAlpha(alpha float64) []string {
	e.cfg.Alpha = alpha
	e.rebuildSelector()
	warning := e.rebuildVerifier()
	e.cache.Invalidate()
	if warning != "" {
		return []string{warning}
	}
	return nil
}

// SetQ updates the q-gram length, which requires retokenizing every source
// set and rebuilding the inverted index, signature generator and selector.
func (e *Engine) SetQ(q int) ([]string, error) {
	e.cfg.Q = q
	warnings, err := e.rebuildTokensAndIndex()
	if err != nil {
		return nil, err
	}
	if err := e.rebuildSigGen(); err != nil {
		return nil, err
	}
	e.rebuildSelector()
	e.cache.Invalidate()
	return warnings, nil
}

// SetSigType switches the signature generation scheme.
func (e *Engine) SetSigType(sigType domain.SigType) error {
	e.cfg.SigType = sigType
	if err := e.rebuildSigGen(); err != nil {
		return err
	}
	e.cache.Invalidate()
	return nil
}

// SetCheckFilter toggles the check filter.
func (e *Engine) SetCheckFilter(enabled bool) {
	e.cfg.CheckFilter = enabled
	e.cache.Invalidate()
}

// SetNnFilter toggles the nearest-neighbour filter.
func (e *Engine) SetNnFilter(enabled bool) {
	e.cfg.NnFilter = enabled
	e.cache.Invalidate()
}

// SetReduction toggles the triangle-inequality reduction, disabling it with
// a warning if α > 0.
func (e *Engine) SetReduction(enabled bool) []string {
	e.cfg.Reduction = enabled
	warning := e.rebuildVerifier()
	e.cache.Invalidate()
	if warning != "" {
		return []string{warning}
	}
	return nil
}
