package verifier

import "math"

// maxWeightMatching computes the maximum-weight bipartite matching score
// over a complete bipartite graph given by weights[i][j], the similarity
// between reference element i and source element j. No bipartite-matching
// or assignment-problem library exists anywhere in the reference corpus, so
// this implements the classic O(n^3) Hungarian (Kuhn-Munkres) algorithm
// directly on the standard library: a matrix with more rows than columns is
// transposed rather than padded, so min(|R|,|S|) pairs are matched when
// |R| != |S|.
func maxWeightMatching(weights [][]float64) float64 {
	if len(weights) == 0 {
		return 0
	}
	rows, cols := len(weights), len(weights[0])
	if cols == 0 {
		return 0
	}

	// hungarianMinCost requires rows <= cols; transpose otherwise.
	transposed := false
	cost := weights
	if rows > cols {
		cost = transpose(weights)
		rows, cols = cols, rows
		transposed = true
	}
	_ = transposed

	negCost := make([][]float64, rows)
	for i := range cost {
		negCost[i] = make([]float64, cols)
		for j := range cost[i] {
			negCost[i][j] = -cost[i][j]
		}
	}

	total, _ := hungarianMinCost(negCost)
	return -total
}

func transpose(m [][]float64) [][]float64 {
	rows, cols := len(m), len(m[0])
	out := make([][]float64, cols)
	for j := 0; j < cols; j++ {
		out[j] = make([]float64, rows)
		for i := 0; i < rows; i++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// hungarianMinCost solves the rectangular assignment problem (n rows, m
// columns, n <= m) via shortest augmenting paths with vertex potentials,
// returning the minimum total cost and the row->column assignment.
func hungarianMinCost(cost [][]float64) (float64, []int) {
	n := len(cost)
	m := len(cost[0])
	const inf = math.MaxFloat64 / 2

	u := make([]float64, n+1)
	v := make([]float64, m+1)
	p := make([]int, m+1)
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = inf
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= m; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	assignment := make([]int, n)
	for j := 1; j <= m; j++ {
		if p[j] != 0 {
			assignment[p[j]-1] = j - 1
		}
	}

	total := 0.0
	for i := 0; i < n; i++ {
		total += cost[i][assignment[i]]
	}
	return total, assignment
}
