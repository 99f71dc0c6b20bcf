package verifier

import (
	"silkmoth/internal/domain"
	"silkmoth/internal/port"
)

// Verifier computes the relatedness of a reference/candidate pair via
// maximum weighted bipartite matching between their elements, with an
// optional triangle-inequality reduction pass.
type Verifier struct {
	elemSim   port.ElementSimilarity
	setMetric port.SetMetric
	alpha     float64
	reduction bool
}

// New builds a Verifier. reduction enables the triangle-inequality
// shortcut. The engine façade is responsible for forcing this off whenever
// alpha > 0, per spec §9 (identical-element removal is unsound once
// sub-threshold matches are allowed to score zero).
func New(elemSim port.ElementSimilarity, setMetric port.SetMetric, alpha float64, reduction bool) *Verifier {
	return &Verifier{elemSim: elemSim, setMetric: setMetric, alpha: alpha, reduction: reduction}
}

func (v *Verifier) Verify(r, s domain.TokenizedSet) (float64, error) {
	refSize, srcSize := len(r), len(s)

	workR, workS := r, s
	exact := 0
	if v.reduction {
		workR, workS, exact = reduce(r, s)
	}

	score := v.matchScore(workR, workS) + float64(exact)
	return v.setMetric.Relatedness(refSize, srcSize, score)
}

func (v *Verifier) matchScore(r, s domain.TokenizedSet) float64 {
	if len(r) == 0 || len(s) == 0 {
		return 0
	}
	weights := make([][]float64, len(r))
	for i, rElem := range r {
		weights[i] = make([]float64, len(s))
		for j, sElem := range s {
			weights[i][j] = v.elemSim.Similarity(rElem, sElem, v.alpha)
		}
	}
	return maxWeightMatching(weights)
}
