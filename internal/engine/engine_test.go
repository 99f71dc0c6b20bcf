package engine

import (
	"testing"
	"time"

	"silkmoth/internal/domain"
)

// addressBookSources reproduces the Table-2 address-book example: R is the
// reference set searched against source collection S = {S1, S2, S3, S4}.
// Elements are given as single space-joined strings so the Jaccard
// tokenizer's whitespace split reproduces the paper's token sets exactly.
func addressBookSources() []domain.RawSet {
	s1 := domain.RawSet{
		"Mass Ave St Boston 02115",
		"77 Mass 5th St Boston",
		"77 Mass Ave 5th 02115",
	}
	s2 := domain.RawSet{
		"77 Boston MA",
		"77 5th St Boston 02115",
		"77 Mass Ave 02115 Seattle",
	}
	s3 := domain.RawSet{
		"77 Mass Ave 5th Boston MA",
		"Mass Ave Chicago IL",
		"77 Mass Ave St",
	}
	s4 := domain.RawSet{
		"77 Mass Ave MA",
		"5th St 02115 Seattle WA",
		"77 5th St Boston Seattle",
	}
	return []domain.RawSet{s1, s2, s3, s4}
}

func addressBookReference() domain.RawSet {
	return domain.RawSet{
		"77 Mass Ave Boston MA",
		"5th St 02115 Seattle WA",
		"77 5th St Chicago IL",
	}
}

func baseConfig() Config {
	return Config{
		Delta:     0.7,
		Alpha:     0,
		Q:         3,
		SimMetric: domain.SetContainment,
		SimFunc:   domain.Jaccard,
		SigType:   domain.Weighted,
		CacheSize: 10,
		CacheTTL:  time.Minute,
	}
}

func TestSearchContainmentWeightedNoFilters(t *testing.T) {
	e, _, err := New(addressBookSources(), baseConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := e.Search(addressBookReference())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(result.Hits) != 1 || result.Hits[0].Index != 3 {
		t.Fatalf("Search() hits = %+v, want exactly {3}", result.Hits)
	}
	if got := result.Hits[0].Relatedness; got < 0.73 || got > 0.76 {
		t.Errorf("relatedness(S4) = %v, want ~0.743", got)
	}
}

func TestSearchLowerDeltaYieldsAllFour(t *testing.T) {
	cfg := baseConfig()
	cfg.Delta = 0.3
	e, _, err := New(addressBookSources(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := e.Search(addressBookReference())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(result.Hits) != 4 {
		t.Fatalf("Search() hits = %+v, want all 4 sets", result.Hits)
	}

	byIdx := map[int]float64{}
	for _, h := range result.Hits {
		byIdx[h.Index] = h.Relatedness
	}
	if got := byIdx[3]; got < 0.73 || got > 0.76 {
		t.Errorf("relatedness(S4) = %v, want ~0.743", got)
	}
	if got := byIdx[0]; got < 0.35 || got > 0.39 {
		t.Errorf("relatedness(S1) = %v, want ~0.369", got)
	}
}

func TestSearchCheckFilterKeepsCandidatesSuperset(t *testing.T) {
	cfg := baseConfig()
	cfg.CheckFilter = true
	e, _, err := New(addressBookSources(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := e.Search(addressBookReference())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if result.CandidatesAfter < 2 {
		t.Fatalf("CandidatesAfter = %d, want >= 2 (covering {2,3})", result.CandidatesAfter)
	}
}

func TestSearchCheckAndNNFilterNarrowToS4(t *testing.T) {
	cfg := baseConfig()
	cfg.CheckFilter = true
	cfg.NnFilter = true
	e, _, err := New(addressBookSources(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := e.Search(addressBookReference())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if result.CandidatesAfter != 1 {
		t.Fatalf("CandidatesAfter = %d, want 1 (only S4 surviving NN filter)", result.CandidatesAfter)
	}
	if len(result.Hits) != 1 || result.Hits[0].Index != 3 {
		t.Fatalf("Search() hits = %+v, want exactly {3}", result.Hits)
	}
}

func TestSearchDeltaAboveAllRelatednessIsEmpty(t *testing.T) {
	cfg := baseConfig()
	cfg.Delta = 0.8
	e, _, err := New(addressBookSources(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := e.Search(addressBookReference())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Hits) != 0 {
		t.Fatalf("Search() hits = %+v, want empty at delta=0.8", result.Hits)
	}
}

func TestSearchEditSkylineFindsARelatedSet(t *testing.T) {
	cfg := Config{
		Delta:     0.8,
		Alpha:     0.7,
		Q:         3,
		SimMetric: domain.SetContainment,
		SimFunc:   domain.Edit,
		SigType:   domain.Skyline,
		CacheSize: 10,
		CacheTTL:  time.Minute,
	}
	e, _, err := New(addressBookSources(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := e.Search(domain.RawSet{"77 Mas Ave Boston MA"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Hits) == 0 {
		t.Fatalf("Search() hits = %+v, want at least one related set (S3 or S4)", result.Hits)
	}
	foundExpected := false
	for _, h := range result.Hits {
		if h.Index == 2 || h.Index == 3 {
			foundExpected = true
		}
	}
	if !foundExpected {
		t.Errorf("Search() hits = %+v, want S3 (2) or S4 (3) among them", result.Hits)
	}
}

func TestSearchZeroDeltaYieldsEmptyList(t *testing.T) {
	cfg := baseConfig()
	cfg.Delta = 0
	e, _, err := New(addressBookSources(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	result, err := e.Search(addressBookReference())
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Hits) != 0 {
		t.Fatalf("Search() hits = %+v, want empty at delta=0", result.Hits)
	}
}

func TestSearchEmptyReferenceSetIsEmpty(t *testing.T) {
	e, _, err := New(addressBookSources(), baseConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	result, err := e.Search(domain.RawSet{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(result.Hits) != 0 {
		t.Fatalf("Search() hits = %+v, want empty for an empty reference set", result.Hits)
	}
}

func TestSearchIsIdempotent(t *testing.T) {
	e, _, err := New(addressBookSources(), baseConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	r := addressBookReference()

	first, err := e.Search(r)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	second, err := e.Search(r)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(first.Hits) != len(second.Hits) {
		t.Fatalf("Search() not idempotent: %+v vs %+v", first.Hits, second.Hits)
	}
	for i := range first.Hits {
		if first.Hits[i] != second.Hits[i] {
			t.Fatalf("Search() not idempotent at hit %d: %+v vs %+v", i, first.Hits[i], second.Hits[i])
		}
	}
}

func TestDiscoverEmitsAllPairsForContainment(t *testing.T) {
	e, _, err := New(addressBookSources(), baseConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	hits, _, err := e.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	for _, h := range hits {
		if h.I == h.J {
			t.Fatalf("Discover() emitted a self pair: %+v", h)
		}
	}
}

func TestDiscoverOnlyUpperTriangleForSimilarity(t *testing.T) {
	cfg := baseConfig()
	cfg.SimMetric = domain.SetSimilarity
	cfg.Delta = 0.1
	e, _, err := New(addressBookSources(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	hits, _, err := e.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	for _, h := range hits {
		if h.J <= h.I {
			t.Fatalf("Discover() emitted a non-upper-triangle pair under set-similarity: %+v", h)
		}
	}
}

func TestSetAlphaDisablesReductionWithWarning(t *testing.T) {
	cfg := baseConfig()
	cfg.Reduction = true
	e, _, err := New(addressBookSources(), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	warnings := e.SetAlpha(0.5)
	if len(warnings) != 1 || warnings[0] != domain.WarnReductionIncompatible {
		t.Fatalf("SetAlpha() warnings = %v, want [%s]", warnings, domain.WarnReductionIncompatible)
	}
}

func TestSetDeltaIsIdempotentNoOp(t *testing.T) {
	e, _, err := New(addressBookSources(), baseConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e.SetDelta(0.5)
	first := e.cfg.Delta
	e.SetDelta(0.5)
	if e.cfg.Delta != first {
		t.Fatalf("SetDelta() not idempotent: %v vs %v", first, e.cfg.Delta)
	}
}
