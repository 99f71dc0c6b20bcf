package port

import "silkmoth/internal/domain"

// SignatureGenerator produces a signature K for a tokenized reference set
// under one of the three schemes (WEIGHTED, SKYLINE, DICHOTOMY).
type SignatureGenerator interface {
	Generate(r domain.TokenizedSet, idx Index, delta, alpha float64) ([]string, []string, error)
}

// CandidateSelector probes the index for candidates and applies the size,
// check and nearest-neighbour filters.
type CandidateSelector interface {
	// Probe returns every setIdx reachable from a signature token whose
	// size passes the size filter for refSize under the configured metric.
	Probe(signature []string, idx Index, refSize int) (map[int]struct{}, error)

	// CheckFilter drops candidates that cannot offer any r_i a matching
	// element meeting the per-element loss bound, returning survivors and
	// the match map recorded along the way.
	CheckFilter(r domain.TokenizedSet, signature []string, candidates map[int]struct{}, idx Index) (map[int]struct{}, domain.MatchMap, error)

	// NNFilter enforces the global nearest-neighbour upper bound, given the
	// relatedness threshold theta = delta * |R|.
	NNFilter(r domain.TokenizedSet, signature []string, candidates map[int]struct{}, idx Index, matchMap domain.MatchMap, theta float64) (map[int]struct{}, error)
}

// Verifier computes the maximum weighted bipartite matching between a
// reference set and a candidate set and decides relatedness.
type Verifier interface {
	// Verify returns the relatedness ρ(|R|,|S|,m) for the matching between
	// r and s.
	Verify(r, s domain.TokenizedSet) (float64, error)
}
