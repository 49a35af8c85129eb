// Package tmap implements the shared transfer-map algebra of spec.md §4.1:
// the 7×7 Courant-Snyder base R-matrix shared by every linear element,
// roll conjugation for tilted magnets, and the affine misalignment wrap.
//
// Map7 is a plain [7][7]float64 rather than a matrix-library type,
// grounded on the teacher's own preference for raw slices/fixed arrays
// for element-local matrices (ele/solid/beam.go's o.K [][]float64 with
// la.MatVecMul operating directly on it) — see DESIGN.md.
package tmap

import "gonum.org/v1/gonum/mat"

// Map7 is a 7x7 transfer map over the augmented canonical state
// (x, x', y, y', s, δ, 1).
type Map7 [7][7]float64

// Identity returns the 7x7 identity map.
func Identity() Map7 {
	var m Map7
	for i := 0; i < 7; i++ {
		m[i][i] = 1
	}
	return m
}

// Mul returns a*b (matrix product, a applied after b).
func Mul(a, b Map7) Map7 {
	var out Map7
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			var sum float64
			for k := 0; k < 7; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// MulVec returns m*v.
func MulVec(m Map7, v [7]float64) [7]float64 {
	var out [7]float64
	for i := 0; i < 7; i++ {
		var sum float64
		for k := 0; k < 7; k++ {
			sum += m[i][k] * v[k]
		}
		out[i] = sum
	}
	return out
}

// Transpose returns the transpose of m.
func Transpose(m Map7) Map7 {
	var out Map7
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Sandwich returns m * sigma * m^T, the second-moment propagation used by
// every linear element tracking a MomentBeam (spec.md §4.1).
func Sandwich(m Map7, sigma Map7) Map7 {
	return Mul(m, Mul(sigma, Transpose(m)))
}

// Dense returns m as a 7x7 gonum matrix, row-major, for use with
// mat.Dense's own BLAS-backed Mul.
func Dense(m Map7) *mat.Dense {
	data := make([]float64, 49)
	for i := 0; i < 7; i++ {
		for j := 0; j < 7; j++ {
			data[i*7+j] = m[i][j]
		}
	}
	return mat.NewDense(7, 7, data)
}

// ApplyRows propagates every particle row of P (N×7, one particle per
// row) through m in a single matrix product P' = P·mᵀ, rather than a
// per-row loop, via gonum's mat.Dense.Mul (spec.md §3, §4.3: every
// element's tracking step is a 7×7 linear map applied to each particle).
func ApplyRows(m Map7, P *mat.Dense) *mat.Dense {
	n, _ := P.Dims()
	mT := Dense(m).T()
	out := mat.NewDense(n, 7, nil)
	out.Mul(P, mT)
	return out
}
