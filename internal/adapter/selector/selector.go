// Package selector implements the size, check and nearest-neighbour filters
// of the candidate selection step, grounded on the reference
// CandidateSelector's get_candidates/check_filter/nn_filter algorithms.
package selector

import (
	"math"

	"silkmoth/internal/domain"
	"silkmoth/internal/port"
)

// Selector implements port.CandidateSelector.
type Selector struct {
	elemSim   port.ElementSimilarity
	setMetric port.SetMetric
	delta     float64
	alpha     float64
	q         int
}

// New builds a Selector. q is the q-gram length used in the edit-similarity
// threshold and base-loss formulas; it is ignored for Jaccard.
func New(elemSim port.ElementSimilarity, setMetric port.SetMetric, delta, alpha float64, q int) *Selector {
	return &Selector{elemSim: elemSim, setMetric: setMetric, delta: delta, alpha: alpha, q: q}
}

func (s *Selector) tokensOf(g domain.TokenGroup) []string {
	if s.elemSim.Func().IsEdit() {
		return g.QGrams
	}
	return g.Tokens
}

// Probe returns every setIdx reachable from a signature token whose size
// passes the size filter against refSize under the configured metric.
func (s *Selector) Probe(signature []string, idx port.Index, refSize int) (map[int]struct{}, error) {
	candidates := make(map[int]struct{})
	for _, token := range signature {
		postings, err := idx.Postings(token)
		if err != nil {
			return nil, err
		}
		for _, p := range postings {
			srcSize, err := idx.SetSize(p.SetIdx)
			if err != nil {
				return nil, err
			}
			if s.verifySize(refSize, srcSize) {
				candidates[p.SetIdx] = struct{}{}
			}
		}
	}
	return candidates, nil
}

// verifySize applies the size filter: set-containment requires |R| <= |S|;
// set-similarity requires the smaller set to be at least delta times the
// larger.
func (s *Selector) verifySize(refSize, srcSize int) bool {
	if s.setMetric.Metric() == domain.SetContainment && refSize > srcSize {
		return false
	}
	if s.setMetric.Metric() == domain.SetSimilarity {
		small, large := refSize, srcSize
		if large < small {
			small, large = large, small
		}
		if float64(small) < s.delta*float64(large) {
			return false
		}
	}
	return true
}

// elemKI intersects an element's token representation with the flattened
// signature K.
func elemKI(elem domain.TokenGroup, toks []string, k map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range toks {
		if _, ok := k[t]; ok {
			out[t] = struct{}{}
		}
	}
	_ = elem
	return out
}

func toSet(tokens []string) map[string]struct{} {
	s := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

// CheckFilter drops candidates that cannot offer any r_i a matching element
// meeting its per-element loss bound.
func (s *Selector) CheckFilter(r domain.TokenizedSet, signature []string, candidates map[int]struct{}, idx port.Index) (map[int]struct{}, domain.MatchMap, error) {
	filtered := make(map[int]struct{})
	matchMap := make(domain.MatchMap)
	if len(r) == 0 || len(signature) == 0 {
		return filtered, matchMap, nil
	}

	k := toSet(signature)
	kISets := make([]map[string]struct{}, len(r))
	for i, elem := range r {
		kISets[i] = elemKI(elem, s.tokensOf(elem), k)
	}

	for cIdx := range candidates {
		matched, err := s.createMatchMap(r, kISets, cIdx, idx)
		if err != nil {
			return nil, nil, err
		}
		if len(matched) > 0 {
			filtered[cIdx] = struct{}{}
			matchMap[cIdx] = matched
		}
	}
	return filtered, matchMap, nil
}

func (s *Selector) createMatchMap(r domain.TokenizedSet, kISets []map[string]struct{}, cIdx int, idx port.Index) (map[int]float64, error) {
	set, err := idx.Set(cIdx)
	if err != nil {
		return nil, err
	}
	matched := make(map[int]float64)

	for rIdx, elem := range r {
		kI := kISets[rIdx]
		if elem.Empty || len(kI) == 0 {
			continue
		}
		rToks := s.tokensOf(elem)
		threshold := s.threshold(len(rToks), len(kI))

		maxSim := 0.0
		for token := range kI {
			entries, err := idx.PostingsInSet(token, cIdx)
			if err != nil {
				return nil, err
			}
			for _, p := range entries {
				sElem := set[p.ElemIdx]
				sim := s.elemSim.Similarity(elem, sElem, s.alpha)
				if sim >= threshold {
					if sim > maxSim {
						maxSim = sim
					}
				}
			}
		}
		if maxSim >= threshold {
			matched[rIdx] = maxSim
		}
	}
	return matched, nil
}

// threshold computes the minimum similarity a matching element must reach
// to keep r_i's loss within its allotted share: the edit variant accounts
// for the extra q-gram chunk boundary via ceil(|r_i|/q).
func (s *Selector) threshold(rSize, kSize int) float64 {
	if s.elemSim.Func().IsEdit() {
		denom := rSize + int(math.Ceil(float64(rSize)/float64(s.q))) - kSize
		if denom == 0 {
			return 0
		}
		return float64(rSize) / float64(denom)
	}
	if rSize == 0 {
		return 0
	}
	return float64(rSize-kSize) / float64(rSize)
}

// baseLoss is the loss incurred by an unmatched element: 1 - B_i for edit
// similarity, or the plain (|r_i|-|k_i|)/|r_i| share for Jaccard.
func (s *Selector) baseLoss(rSize, kSize int) float64 {
	if s.elemSim.Func().IsEdit() {
		denom := rSize + int(math.Ceil(float64(rSize)/float64(s.q))) - kSize
		if denom == 0 {
			return 0
		}
		bI := float64(rSize) / float64(denom)
		return 1.0 - bI
	}
	if rSize == 0 {
		return 0
	}
	return float64(rSize-kSize) / float64(rSize)
}

// NNFilter enforces the global nearest-neighbour upper bound: it starts from
// the full-loss estimate, substitutes the check filter's recorded
// similarity for matched elements, and for unmatched elements either
// shortcuts to zero (when alpha-eligible and token-disjoint from the
// candidate) or performs a full nearest-neighbour search through the index.
func (s *Selector) NNFilter(r domain.TokenizedSet, signature []string, candidates map[int]struct{}, idx port.Index, matchMap domain.MatchMap, theta float64) (map[int]struct{}, error) {
	n := len(r)
	k := toSet(signature)
	kISets := make([]map[string]struct{}, n)
	for i, elem := range r {
		kISets[i] = elemKI(elem, s.tokensOf(elem), k)
	}

	totalInit := 0.0
	for i, elem := range r {
		if elem.Empty {
			continue
		}
		totalInit += s.baseLoss(len(s.tokensOf(elem)), len(kISets[i]))
	}

	final := make(map[int]struct{})

	for cIdx := range candidates {
		set, err := idx.Set(cIdx)
		if err != nil {
			return nil, err
		}

		var setTokens map[string]struct{}
		if s.alpha > 0 {
			setTokens = make(map[string]struct{})
			for _, sElem := range set {
				for _, t := range s.tokensOf(sElem) {
					setTokens[t] = struct{}{}
				}
			}
		}

		matched := matchMap[cIdx]

		total := totalInit
		for rIdx, sim := range matched {
			elem := r[rIdx]
			if elem.Empty {
				continue
			}
			bl := s.baseLoss(len(s.tokensOf(elem)), len(kISets[rIdx]))
			total += sim - bl
		}

		belowTheta := false
		for rIdx, elem := range r {
			if elem.Empty {
				continue
			}
			if _, ok := matched[rIdx]; ok {
				continue
			}
			rToks := s.tokensOf(elem)
			kI := kISets[rIdx]
			bl := s.baseLoss(len(rToks), len(kI))

			var nnSim float64
			if s.alpha > 0 && len(kI) >= int(math.Floor((1-s.alpha)*float64(len(rToks))))+1 && disjoint(kI, setTokens) {
				nnSim = 0
			} else {
				sim, err := s.nnSearch(elem, set, cIdx, idx)
				if err != nil {
					return nil, err
				}
				nnSim = sim
			}

			total += nnSim - bl
			if total < theta {
				belowTheta = true
				break
			}
		}

		if !belowTheta && total >= theta {
			final[cIdx] = struct{}{}
		}
	}
	return final, nil
}

// nnSearch finds the maximum similarity between r's element and any element
// of the candidate set S that shares at least one token with it, using the
// index's posting lists to avoid a full scan of S.
func (s *Selector) nnSearch(elem domain.TokenGroup, set domain.TokenizedSet, cIdx int, idx port.Index) (float64, error) {
	maxSim := 0.0
	for _, token := range s.tokensOf(elem) {
		entries, err := idx.PostingsInSet(token, cIdx)
		if err != nil {
			return 0, err
		}
		for _, p := range entries {
			sElem := set[p.ElemIdx]
			sim := s.elemSim.Similarity(elem, sElem, s.alpha)
			if sim > maxSim {
				maxSim = sim
			}
		}
	}
	return maxSim, nil
}

func disjoint(a, b map[string]struct{}) bool {
	for t := range a {
		if _, ok := b[t]; ok {
			return false
		}
	}
	return true
}
