// Package spacecharge implements the self-consistent, mesh-based,
// FFT-accelerated space-charge kick of spec.md §4.4: cloud-in-cell
// deposition, an integrated-Green-function Poisson solve, and
// trilinear force interpolation back onto particles.
//
// The teacher has no numerically analogous subsystem (FEM assembles a
// sparse stiffness matrix, not a dense Cartesian grid), so this package
// is grounded on the rest of the retrieval pack's gonum usage
// (gonum.org/v1/gonum/dsp/fourier, gonum.org/v1/gonum/mat) rather than
// on any one teacher file; see DESIGN.md.
package spacecharge

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"

	"github.com/greglenerd/cheetah/beam"
)

// fallbackSigma is the standard deviation (meters) substituted for any
// axis whose particle cloud has fewer than two particles (spec.md §4.4
// step 1).
const fallbackSigma = 175e-9

// Grid describes the Cartesian mesh a SpaceChargeKick solves the
// Poisson equation on.
type Grid struct {
	Nx, Ny, Ns int
	Hx, Hy, Hs float64 // cell size, meters (Hs from the lab-frame σ_s, not scaled by β or γ)
	Cx, Cy, Cs float64 // bunch centroid, meters (lab frame for x,y; s before compression)
	Beta       float64 // reference beta, used to compress s into the bunch frame
	Gamma      float64
}

// sigma returns the unweighted (population) standard deviation of a
// column, falling back to fallbackSigma when N<2 or the spread is zero
// (spec.md §4.4 step 1).
func sigma(col []float64) float64 {
	n := len(col)
	if n < 2 {
		return fallbackSigma
	}
	var mean float64
	for _, v := range col {
		mean += v
	}
	mean /= float64(n)
	var ss float64
	for _, v := range col {
		d := v - mean
		ss += d * d
	}
	v := ss / float64(n)
	if v <= 0 {
		return fallbackSigma
	}
	return math.Sqrt(v)
}

// NewGrid sizes a grid for the given particle cloud, resolution
// (nx,ny,ns), and half-width multiples (dx,dy,ds) of the transverse/
// longitudinal standard deviations (spec.md §4.4 step 1).
func NewGrid(pb *beam.ParticleBeam, nx, ny, ns int, dx, dy, ds float64) Grid {
	n := pb.N()
	xs := mat.Col(nil, 0, pb.P)
	ys := mat.Col(nil, 2, pb.P)
	ss := mat.Col(nil, 4, pb.P)

	sigX, sigY, sigS := sigma(xs), sigma(ys), sigma(ss)
	var cx, cy, cs float64
	if n > 0 {
		for i := 0; i < n; i++ {
			cx += xs[i]
			cy += ys[i]
			cs += ss[i]
		}
		cx, cy, cs = cx/float64(n), cy/float64(n), cs/float64(n)
	}

	gamma := beam.Gamma(pb.Energy)
	betaV := beam.Beta(gamma)

	Hx, Hy, Hs := dx*sigX, dy*sigY, ds*sigS
	return Grid{
		Nx: nx, Ny: ny, Ns: ns,
		Hx: 2 * Hx / float64(nx),
		Hy: 2 * Hy / float64(ny),
		Hs: 2 * Hs / float64(ns),
		Cx: cx, Cy: cy, Cs: cs,
		Beta: betaV, Gamma: gamma,
	}
}

// halfExtent returns the grid's physical half-width along an axis.
func (g Grid) halfExtent() (hxTot, hyTot, hsTot float64) {
	return g.Hx * float64(g.Nx) / 2, g.Hy * float64(g.Ny) / 2, g.Hs * float64(g.Ns) / 2
}

// frameCoords returns a particle's position in the bunch rest frame:
// relative to the centroid, with the longitudinal coordinate compressed
// by -β (spec.md §4.4 step 2).
func (g Grid) frameCoords(x, y, s float64) (fx, fy, fs float64) {
	return x - g.Cx, y - g.Cy, -g.Beta * (s - g.Cs)
}

// cicWeights returns the lower-corner grid index and the eight trilinear
// weights for a point at normalized grid coordinates (u,v,w), or ok=false
// if the point falls outside [0,n-1) on any axis, i.e. if any of its
// eight neighbors would lie off the grid (spec.md §4.4 step 3/8).
func cicWeights(u, v, w float64, nx, ny, ns int) (i0, j0, k0 int, wts [8]float64, ok bool) {
	if u < 0 || v < 0 || w < 0 {
		return
	}
	i0, j0, k0 = int(u), int(v), int(w)
	if i0 < 0 || i0 >= nx-1 || j0 < 0 || j0 >= ny-1 || k0 < 0 || k0 >= ns-1 {
		return
	}
	du, dv, dw := u-float64(i0), v-float64(j0), w-float64(k0)
	wts[0] = (1 - du) * (1 - dv) * (1 - dw)
	wts[1] = du * (1 - dv) * (1 - dw)
	wts[2] = (1 - du) * dv * (1 - dw)
	wts[3] = du * dv * (1 - dw)
	wts[4] = (1 - du) * (1 - dv) * dw
	wts[5] = du * (1 - dv) * dw
	wts[6] = (1 - du) * dv * dw
	wts[7] = du * dv * dw
	ok = true
	return
}

// corners returns the flat-index offsets of the eight CIC neighbors
// within a grid of shape (nx,ny,ns) stored x-fastest.
func corners(i0, j0, k0, nx, ny int) [8]int {
	idx := func(i, j, k int) int { return (k*ny+j)*nx + i }
	return [8]int{
		idx(i0, j0, k0), idx(i0+1, j0, k0),
		idx(i0, j0+1, k0), idx(i0+1, j0+1, k0),
		idx(i0, j0, k0+1), idx(i0+1, j0, k0+1),
		idx(i0, j0+1, k0+1), idx(i0+1, j0+1, k0+1),
	}
}

// Deposit accumulates the particle cloud's charge density onto the
// base (Nx,Ny,Ns) octant via cloud-in-cell weighting (spec.md §4.4
// step 3), returning ρ in C/m³ stored x-fastest, y-next, s-slowest.
func (g Grid) Deposit(pb *beam.ParticleBeam) []float64 {
	nx, ny, ns := g.Nx, g.Ny, g.Ns
	rho := make([]float64, nx*ny*ns)
	hxTot, hyTot, hsTot := g.halfExtent()
	n := pb.N()
	for p := 0; p < n; p++ {
		x, y, s := pb.P.At(p, 0), pb.P.At(p, 2), pb.P.At(p, 4)
		fx, fy, fs := g.frameCoords(x, y, s)
		u := (fx + hxTot) / g.Hx
		v := (fy + hyTot) / g.Hy
		w := (fs + hsTot) / g.Hs
		i0, j0, k0, wts, ok := cicWeights(u, v, w, nx, ny, ns)
		if !ok {
			continue
		}
		cs := corners(i0, j0, k0, nx, ny)
		q := pb.Q[p]
		for c := 0; c < 8; c++ {
			rho[cs[c]] += q * wts[c]
		}
	}
	cellVol := g.Hx * g.Hy * g.Hs
	if cellVol <= 0 {
		chk.Panic("spacecharge: degenerate grid cell volume")
	}
	for i := range rho {
		rho[i] /= cellVol
	}
	return rho
}

// Interpolate gathers a field (stored like Deposit's ρ) at a single
// particle position via the same eight-corner trilinear scheme
// (spec.md §4.4 step 8). Returns 0 if the point lies outside the grid.
func (g Grid) Interpolate(field []float64, x, y, s float64) float64 {
	hxTot, hyTot, hsTot := g.halfExtent()
	fx, fy, fs := g.frameCoords(x, y, s)
	u := (fx + hxTot) / g.Hx
	v := (fy + hyTot) / g.Hy
	w := (fs + hsTot) / g.Hs
	i0, j0, k0, wts, ok := cicWeights(u, v, w, g.Nx, g.Ny, g.Ns)
	if !ok {
		return 0
	}
	cs := corners(i0, j0, k0, g.Nx, g.Ny)
	var out float64
	for c := 0; c < 8; c++ {
		out += field[cs[c]] * wts[c]
	}
	return out
}
