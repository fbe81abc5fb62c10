// Package eigen computes eigendecompositions of small dense symmetric
// matrices using cyclic Jacobi rotations. Overlap graphs have one node per
// named set, so the matrices stay tiny; no sparse or blocked machinery is
// needed.
package eigen

import (
	"math"
	"sort"
)

const (
	tol      = 1e-10
	maxSweep = 100
)

// Decompose returns the eigenvalues of the symmetric matrix a in ascending
// order together with the matching eigenvectors (vectors[i] belongs to
// values[i]). The input is not modified.
func Decompose(a [][]float64) (values []float64, vectors [][]float64) {
	n := len(a)
	if n == 0 {
		return nil, nil
	}

	// Work on a copy; accumulate rotations in v.
	w := make([][]float64, n)
	v := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
		copy(w[i], a[i])
		v[i] = make([]float64, n)
		v[i][i] = 1.0
	}

	for sweep := 0; sweep < maxSweep; sweep++ {
		if offDiagonalNorm(w) < tol {
			break
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				rotate(w, v, p, q)
			}
		}
	}

	// Order eigenpairs ascending by eigenvalue.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return w[order[i]][order[i]] < w[order[j]][order[j]]
	})

	values = make([]float64, n)
	vectors = make([][]float64, n)
	for rank, col := range order {
		values[rank] = w[col][col]
		vec := make([]float64, n)
		for row := 0; row < n; row++ {
			vec[row] = v[row][col]
		}
		vectors[rank] = vec
	}
	return values, vectors
}

// rotate zeroes w[p][q] with a two-sided Jacobi rotation, updating v.
func rotate(w, v [][]float64, p, q int) {
	apq := w[p][q]
	if math.Abs(apq) < tol {
		return
	}

	theta := (w[q][q] - w[p][p]) / (2 * apq)
	var t float64
	if theta >= 0 {
		t = 1 / (theta + math.Sqrt(1+theta*theta))
	} else {
		t = -1 / (-theta + math.Sqrt(1+theta*theta))
	}
	c := 1 / math.Sqrt(1+t*t)
	s := c * t

	n := len(w)
	for k := 0; k < n; k++ {
		wkp, wkq := w[k][p], w[k][q]
		w[k][p] = c*wkp - s*wkq
		w[k][q] = s*wkp + c*wkq
	}
	for k := 0; k < n; k++ {
		wpk, wqk := w[p][k], w[q][k]
		w[p][k] = c*wpk - s*wqk
		w[q][k] = s*wpk + c*wqk
	}
	for k := 0; k < n; k++ {
		vkp, vkq := v[k][p], v[k][q]
		v[k][p] = c*vkp - s*vkq
		v[k][q] = s*vkp + c*vkq
	}
}

func offDiagonalNorm(w [][]float64) float64 {
	sum := 0.0
	for i := range w {
		for j := range w[i] {
			if i != j {
				sum += w[i][j] * w[i][j]
			}
		}
	}
	return math.Sqrt(sum)
}
