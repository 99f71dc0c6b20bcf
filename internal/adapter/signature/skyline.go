package signature

import (
	"math"
	"sort"

	"silkmoth/internal/domain"
	"silkmoth/internal/port"
)

// Skyline implements the SKYLINE signature scheme: it starts from the
// WEIGHTED signature K, then per element takes K's intersection k_i with
// that element: all of k_i when it is smaller than the element's alpha
// threshold m_i, otherwise only the m_i tokens of k_i with the shortest
// posting lists.
type Skyline struct {
	base *Weighted
}

func NewSkyline(simFunc domain.SimFunc, q int) *Skyline {
	return &Skyline{base: NewWeighted(simFunc, q)}
}

func (s *Skyline) Generate(r domain.TokenizedSet, idx port.Index, delta, alpha float64) ([]string, []string, error) {
	weighted, warnings, err := s.base.generatePlain(r, idx, delta)
	if err != nil {
		return nil, warnings, err
	}
	weightedSet := toSet(weighted)

	skyline := make(map[string]struct{})
	for _, elem := range r {
		if elem.Empty {
			continue
		}
		elemSet := tokensOf(elem, s.base.simFunc)
		rhs := int(math.Floor((1-alpha)*float64(len(toSet(elemSet))))) + 1

		k := intersect(weightedSet, elemSet)
		if len(k) < rhs {
			for t := range k {
				skyline[t] = struct{}{}
			}
			continue
		}

		tokens := make([]string, 0, len(k))
		for t := range k {
			tokens = append(tokens, t)
		}
		sort.Slice(tokens, func(i, j int) bool {
			return gramCost(idx, tokens[i]) < gramCost(idx, tokens[j])
		})
		if rhs > len(tokens) {
			rhs = len(tokens)
		}
		for _, t := range tokens[:rhs] {
			skyline[t] = struct{}{}
		}
	}

	return toSlice(skyline), warnings, nil
}

func intersect(set map[string]struct{}, tokens []string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range tokens {
		if _, ok := set[t]; ok {
			out[t] = struct{}{}
		}
	}
	return out
}
