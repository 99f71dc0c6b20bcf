package signature

import (
	"math"
	"sort"

	"silkmoth/internal/domain"
	"silkmoth/internal/port"
)

// Dichotomy implements the DICHOTOMY signature scheme: for each element it
// chooses between the WEIGHTED signature's share of that element (k_i) and
// the element's full token set (r_i), keeping k_i only when it already sits
// inside the cheapest alpha-threshold subset of r_i (m_i).
type Dichotomy struct {
	base *Weighted
}

func NewDichotomy(simFunc domain.SimFunc, q int) *Dichotomy {
	return &Dichotomy{base: NewWeighted(simFunc, q)}
}

func (d *Dichotomy) Generate(r domain.TokenizedSet, idx port.Index, delta, alpha float64) ([]string, []string, error) {
	weighted, warnings, err := d.base.generatePlain(r, idx, delta)
	if err != nil {
		return nil, warnings, err
	}
	weightedSet := toSet(weighted)

	final := make(map[string]struct{})
	for _, elem := range r {
		if elem.Empty {
			continue
		}
		rToks := tokensOf(elem, d.base.simFunc)
		rSet := toSet(rToks)
		if len(rSet) == 0 {
			continue
		}

		kI := intersect(weightedSet, rToks)

		mSize := int(math.Floor((1-alpha)*float64(len(rSet)))) + 1
		tokens := make([]string, 0, len(rSet))
		for t := range rSet {
			tokens = append(tokens, t)
		}
		sort.Slice(tokens, func(i, j int) bool {
			return gramCost(idx, tokens[i]) < gramCost(idx, tokens[j])
		})
		if mSize > len(tokens) {
			mSize = len(tokens)
		}
		mI := toSet(tokens[:mSize])

		if isSubset(kI, mI) {
			for t := range kI {
				final[t] = struct{}{}
			}
		} else {
			for t := range rSet {
				final[t] = struct{}{}
			}
		}
	}

	return toSlice(final), warnings, nil
}

func isSubset(a, b map[string]struct{}) bool {
	for t := range a {
		if _, ok := b[t]; !ok {
			return false
		}
	}
	return true
}
