package spacecharge

import "math"

// greenPotential evaluates the analytic free-space integrated Coulomb
// potential of spec.md §4.4 step 5:
//
//	G̃(x,y,s) = -½s²·atan(xy/(s·r)) - ½y²·atan(xs/(y·r)) - ½x²·atan(ys/(x·r))
//	          + y·s·asinh(x/√(y²+s²)) + x·s·asinh(y/√(x²+s²)) + x·y·asinh(s/√(x²+y²))
//
// with r=√(x²+y²+s²). Each term's prefactor vanishes exactly where its
// argument would be singular (an axis coordinate at zero), so those
// terms are skipped rather than evaluated as 0·NaN.
func greenPotential(x, y, s float64) float64 {
	r := math.Sqrt(x*x + y*y + s*s)
	if r == 0 {
		return 0
	}
	var g float64
	if s != 0 {
		g -= 0.5 * s * s * math.Atan2(x*y, s*r)
	}
	if y != 0 {
		g -= 0.5 * y * y * math.Atan2(x*s, y*r)
	}
	if x != 0 {
		g -= 0.5 * x * x * math.Atan2(y*s, x*r)
	}
	if d := math.Hypot(y, s); d != 0 {
		g += y * s * math.Asinh(x/d)
	}
	if d := math.Hypot(x, s); d != 0 {
		g += x * s * math.Asinh(y/d)
	}
	if d := math.Hypot(x, y); d != 0 {
		g += x * y * math.Asinh(s/d)
	}
	return g
}

// cellAveragedGreen returns the inclusion-exclusion sum of greenPotential
// over the eight corners of the cell centered at (x0,y0,s0) with
// half-widths (hx/2,hy/2,hs/2) — the cell-averaged kernel value for a
// grid offset of (x0,y0,s0) (spec.md §4.4 step 5).
func cellAveragedGreen(x0, y0, s0, hx, hy, hs float64) float64 {
	var sum float64
	for _, dp := range []float64{-1, 1} {
		for _, dq := range []float64{-1, 1} {
			for _, dr := range []float64{-1, 1} {
				sign := dp * dq * dr
				sum += sign * greenPotential(x0+dp*hx/2, y0+dq*hy/2, s0+dr*hs/2)
			}
		}
	}
	return sum
}

// BuildGreenKernel constructs the Integrated Green Function kernel on a
// (2Nx)x(2Ny)x(2Ns) buffer (spec.md §4.4 step 5), stored x-fastest,
// y-next, s-slowest, matching Grid.Deposit's layout. The grid's
// longitudinal cell size is Lorentz-stretched by γ here, per spec.md
// §4.4 step 5's "hₛ·γ".
func BuildGreenKernel(g Grid) []float64 {
	nx2, ny2, ns2 := 2*g.Nx, 2*g.Ny, 2*g.Ns
	hsStretched := g.Hs * g.Gamma
	out := make([]float64, nx2*ny2*ns2)

	base := make([]float64, g.Nx*g.Ny*g.Ns)
	bidx := func(i, j, k int) int { return (k*g.Ny+j)*g.Nx + i }
	for k := 0; k < g.Ns; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				base[bidx(i, j, k)] = cellAveragedGreen(
					float64(i)*g.Hx, float64(j)*g.Hy, float64(k)*hsStretched,
					g.Hx, g.Hy, hsStretched)
			}
		}
	}

	// reflect maps a doubled-grid index onto the base octant; the seam
	// index ii==n has no corresponding base sample and must read as zero
	// (spec.md §4.4 step 5: "reflecting ... skipping the seam index").
	reflect := func(ii, n int) (idx int, zero bool) {
		switch {
		case ii < n:
			return ii, false
		case ii == n:
			return 0, true
		default:
			return 2*n - ii, false
		}
	}
	idx := func(i, j, k int) int { return (k*ny2+j)*nx2 + i }
	for kk := 0; kk < ns2; kk++ {
		k, kZero := reflect(kk, g.Ns)
		for jj := 0; jj < ny2; jj++ {
			j, jZero := reflect(jj, g.Ny)
			for ii := 0; ii < nx2; ii++ {
				i, iZero := reflect(ii, g.Nx)
				if iZero || jZero || kZero {
					out[idx(ii, jj, kk)] = 0
					continue
				}
				out[idx(ii, jj, kk)] = base[bidx(i, j, k)]
			}
		}
	}
	return out
}
