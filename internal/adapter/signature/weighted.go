// Package signature implements the WEIGHTED, SKYLINE and DICHOTOMY signature
// schemes from spec §4.3, grounded on the reference greedy min-heap
// algorithm.
package signature

import (
	"container/heap"
	"math"

	"silkmoth/internal/domain"
	"silkmoth/internal/port"
)

// tokenCost is one entry of the greedy selection min-heap: a token and its
// cost/value ratio (lower is better — cheaper tokens that cover more
// elements are selected first). Equal ratios are ordered by posting-list
// cost, then by token, so the selection is deterministic.
type tokenCost struct {
	ratio float64
	cost  float64
	token string
}

type costHeap []tokenCost

func (h costHeap) Len() int { return len(h) }
func (h costHeap) Less(i, j int) bool {
	if h[i].ratio != h[j].ratio {
		return h[i].ratio < h[j].ratio
	}
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].token < h[j].token
}
func (h costHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *costHeap) Push(x interface{}) { *h = append(*h, x.(tokenCost)) }
func (h *costHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Weighted implements the WEIGHTED signature scheme for both Jaccard and
// edit-similarity token spaces.
type Weighted struct {
	simFunc domain.SimFunc
	q       int
}

// NewWeighted builds a WEIGHTED signature generator. q is only used for the
// edit-similarity variant's infeasibility check.
func NewWeighted(simFunc domain.SimFunc, q int) *Weighted {
	return &Weighted{simFunc: simFunc, q: q}
}

func tokensOf(g domain.TokenGroup, simFunc domain.SimFunc) []string {
	if simFunc.IsEdit() {
		return g.QGrams
	}
	return g.Tokens
}

func (w *Weighted) Generate(r domain.TokenizedSet, idx port.Index, delta, alpha float64) ([]string, []string, error) {
	if w.simFunc.IsEdit() {
		return w.generateEdit(r, idx, delta, alpha)
	}
	return w.generatePlain(r, idx, delta)
}

// generatePlain implements the greedy weighted scheme shared by Jaccard:
// each element contributes 1/|r_i| value to every distinct token it holds;
// tokens are pulled off a cost/value min-heap until the accumulated loss
// drops below theta = delta*n.
func (w *Weighted) generatePlain(r domain.TokenizedSet, idx port.Index, delta float64) ([]string, []string, error) {
	if delta <= 0 {
		return nil, nil, nil
	}

	n := len(r)
	theta := delta * float64(n)

	tokenValue := make(map[string]float64)
	rSizes := make([]int, n)
	elemTokenSets := make([]map[string]struct{}, n)

	for i, elem := range r {
		if elem.Empty {
			continue
		}
		set := tokensOf(elem, w.simFunc)
		elemTokenSets[i] = toSet(set)
		rSizes[i] = len(elemTokenSets[i])
		if rSizes[i] == 0 {
			continue
		}
		weight := 1.0 / float64(rSizes[i])
		for t := range elemTokenSets[i] {
			tokenValue[t] += weight
		}
	}

	h := &costHeap{}
	heap.Init(h)
	for t, val := range tokenValue {
		if val <= 0 {
			continue
		}
		postings, _ := idx.Postings(t)
		cost := math.Inf(1)
		if len(postings) > 0 {
			cost = float64(len(postings))
		}
		heap.Push(h, tokenCost{ratio: cost / val, cost: cost, token: t})
	}

	selected := make(map[string]struct{})
	totalLoss := float64(n)

	for h.Len() > 0 && totalLoss >= theta {
		item := heap.Pop(h).(tokenCost)
		if _, dup := selected[item.token]; dup {
			continue
		}
		if math.IsInf(item.ratio, 1) {
			break
		}
		selected[item.token] = struct{}{}

		totalLoss = 0
		for i := 0; i < n; i++ {
			if rSizes[i] == 0 {
				continue
			}
			kCount := 0
			for t := range elemTokenSets[i] {
				if _, ok := selected[t]; ok {
					kCount++
				}
			}
			totalLoss += float64(rSizes[i]-kCount) / float64(rSizes[i])
		}
	}

	return toSlice(selected), nil, nil
}

// generateEdit implements the edit-similarity WEIGHTED scheme on the
// non-overlapping q-chunk token space. If q is too large for delta to admit
// any valid weighted signature (q >= delta/(1-delta)), there is nothing
// prunable: fall back to returning every q-chunk of R, brute force, with a
// SignatureInfeasible warning. Otherwise selection stops once every
// element's alpha-threshold m_i is met and the aggregate loss has fallen
// under n - theta, with a safety pass afterward that tops up any element
// still short of its threshold.
func (w *Weighted) generateEdit(r domain.TokenizedSet, idx port.Index, delta, alpha float64) ([]string, []string, error) {
	if delta <= 0 {
		return nil, nil, nil
	}
	if delta >= 1 {
		return nil, nil, domain.ErrUnsupportedSimilarity
	}

	qBound := delta / (1 - delta)
	if float64(w.q) >= qBound {
		all := make(map[string]struct{})
		for _, elem := range r {
			for _, c := range elem.QChunks {
				all[c] = struct{}{}
			}
		}
		return toSlice(all), []string{domain.WarnSignatureInfeasible}, nil
	}

	n := len(r)
	theta := delta * float64(n)

	tokenValue := make(map[string]float64)
	rSizes := make([]int, n)
	elemChunkSets := make([]map[string]struct{}, n)

	for i, elem := range r {
		if elem.Empty {
			elemChunkSets[i] = map[string]struct{}{}
			continue
		}
		elemChunkSets[i] = toSet(elem.QChunks)
		rSizes[i] = len(elemChunkSets[i])
		if rSizes[i] == 0 {
			continue
		}
		weight := 1.0 / float64(rSizes[i])
		for t := range elemChunkSets[i] {
			tokenValue[t] += weight
		}
	}

	alphaThresholds := make([]int, n)
	for i := 0; i < n; i++ {
		if rSizes[i] > 0 {
			alphaThresholds[i] = int(math.Floor((1-alpha)*float64(rSizes[i]))) + 1
		}
	}

	h := &costHeap{}
	heap.Init(h)
	for t, val := range tokenValue {
		if val <= 0 {
			continue
		}
		postings, _ := idx.Postings(t)
		cost := math.Inf(1)
		if len(postings) > 0 {
			cost = float64(len(postings))
		}
		heap.Push(h, tokenCost{ratio: cost / val, cost: cost, token: t})
	}

	selected := make(map[string]struct{})
	kCounts := make([]int, n)
	totalLoss := float64(n)

	allMet := func() bool {
		for i := 0; i < n; i++ {
			if kCounts[i] < alphaThresholds[i] {
				return false
			}
		}
		return true
	}

	for h.Len() > 0 {
		if allMet() && totalLoss <= float64(n)-theta {
			break
		}
		item := heap.Pop(h).(tokenCost)
		if _, dup := selected[item.token]; dup || math.IsInf(item.ratio, 1) {
			continue
		}
		selected[item.token] = struct{}{}

		for i := 0; i < n; i++ {
			if rSizes[i] == 0 {
				continue
			}
			if _, ok := elemChunkSets[i][item.token]; ok {
				totalLoss -= 1.0 / float64(rSizes[i])
				kCounts[i]++
			}
		}
	}

	// Safety fallback: top up any element still short of its alpha
	// threshold with its cheapest remaining chunks.
	for i := 0; i < n; i++ {
		for kCounts[i] < alphaThresholds[i] {
			var remaining []string
			for t := range elemChunkSets[i] {
				if _, ok := selected[t]; !ok {
					remaining = append(remaining, t)
				}
			}
			if len(remaining) == 0 {
				break
			}
			best := remaining[0]
			bestCost := gramCost(idx, best)
			for _, t := range remaining[1:] {
				if c := gramCost(idx, t); c < bestCost {
					best, bestCost = t, c
				}
			}
			selected[best] = struct{}{}
			kCounts[i]++
		}
	}

	return toSlice(selected), nil, nil
}

func gramCost(idx port.Index, token string) int {
	postings, _ := idx.Postings(token)
	return len(postings)
}

func toSet(tokens []string) map[string]struct{} {
	s := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		s[t] = struct{}{}
	}
	return s
}

func toSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	return out
}
