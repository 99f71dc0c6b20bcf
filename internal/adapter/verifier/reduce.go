package verifier

import "silkmoth/internal/domain"

// reduce applies the triangle-inequality reduction: every element that
// appears identically (same Raw text) in both sets is pulled out of both
// before matching and counted directly, since its similarity to itself is
// always 1 by the triangle inequality on φ.
func reduce(r, s domain.TokenizedSet) (domain.TokenizedSet, domain.TokenizedSet, int) {
	rReduced := make(domain.TokenizedSet, 0, len(r))
	sRemaining := append(domain.TokenizedSet(nil), s...)
	count := 0

	for _, elem := range r {
		idx := indexOfIdentical(sRemaining, elem)
		if idx < 0 {
			rReduced = append(rReduced, elem)
			continue
		}
		sRemaining = append(sRemaining[:idx], sRemaining[idx+1:]...)
		count++
	}
	return rReduced, sRemaining, count
}

func indexOfIdentical(set domain.TokenizedSet, elem domain.TokenGroup) int {
	for i, candidate := range set {
		if identical(candidate, elem) {
			return i
		}
	}
	return -1
}

func identical(a, b domain.TokenGroup) bool {
	if a.Raw != "" || b.Raw != "" {
		return a.Raw == b.Raw
	}
	return stringSliceEqual(a.Tokens, b.Tokens)
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, t := range a {
		seen[t]++
	}
	for _, t := range b {
		seen[t]--
		if seen[t] < 0 {
			return false
		}
	}
	return true
}
