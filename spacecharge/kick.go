package spacecharge

import (
	"math"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/physconst"
	"github.com/greglenerd/cheetah/tmap"
)

// SpaceChargeKick is the element of spec.md §4.4: a self-consistent,
// FFT-accelerated space-charge momentum kick over an integration length
// L. It lives in this package, not elem, because it is the sole element
// that needs the grid/Green-function/FFT machinery below; this
// package's init in register.go registers it via elem.SetAllocator, so
// elem.New can build it without an elem<->spacecharge import cycle.
type SpaceChargeKick struct {
	name       string
	L          float64
	Nx, Ny, Ns int
	Dx, Dy, Ds float64 // half-width multiples of the beam's standard deviations
}

// NewSpaceChargeKick returns a SpaceChargeKick with the given
// integration length, grid resolution, and half-width multiples.
func NewSpaceChargeKick(name string, length float64, nx, ny, ns int, dx, dy, ds float64) *SpaceChargeKick {
	return &SpaceChargeKick{name: name, L: length, Nx: nx, Ny: ny, Ns: ns, Dx: dx, Dy: dy, Ds: ds}
}

func (k *SpaceChargeKick) Kind() string    { return "SpaceChargeKick" }
func (k *SpaceChargeKick) Name() string    { return k.name }
func (k *SpaceChargeKick) Length() float64 { return k.L }

// Skippable is declared true at the API level per spec.md §9, even
// though the tracking step below is a nonlinear, state-dependent
// operation on the full particle cloud. Segment merging must not rely
// on this flag; see ForceNonMergeable.
func (k *SpaceChargeKick) Skippable() bool { return true }

// ForceNonMergeable reports that, despite Skippable()==true, this
// element must never be absorbed into a merged skippable run: segment's
// TransferMapsMerged checks for this interface (spec.md §9).
func (k *SpaceChargeKick) ForceNonMergeable() bool { return true }

// TransferMap is the identity: a SpaceChargeKick has no linear map of
// its own; Track always takes the nonlinear path below.
func (k *SpaceChargeKick) TransferMap(_ float64) tmap.Map7 { return tmap.Identity() }

// Track implements spec.md §4.4 steps 1-9. Non-particle beams pass
// through unchanged (a documented no-op); the incoming particle beam is
// never mutated, per spec.md §9 — all work happens on a fresh clone.
func (k *SpaceChargeKick) Track(in beam.Beam) (beam.Beam, error) {
	if in.IsEmpty() {
		return beam.Empty, nil
	}
	pb, ok := in.(*beam.ParticleBeam)
	if !ok {
		return in, nil
	}

	working := pb.Clone()
	grid := NewGrid(working, k.Nx, k.Ny, k.Ns, k.Dx, k.Dy, k.Ds)
	rho := grid.Deposit(working)
	phi := SolvePotential(grid, rho)
	ex, ey, es := Field(grid, phi)

	gamma := beam.Gamma(working.Energy)
	betaRef := beam.Beta(gamma)
	p0 := beam.ParticleMomentum(gamma)
	dt := k.L / (betaRef * physconst.C)

	n := working.N()
	out := working
	for i := 0; i < n; i++ {
		x, xp := out.P.At(i, 0), out.P.At(i, 1)
		y, yp := out.P.At(i, 2), out.P.At(i, 3)
		s, delta := out.P.At(i, 4), out.P.At(i, 5)
		q := out.Q[i]

		fx := grid.Interpolate(ex, x, y, s)
		fy := grid.Interpolate(ey, x, y, s)
		fs := grid.Interpolate(es, x, y, s)

		gammaI := beam.ParticleGamma(gamma, betaRef, delta)
		if gammaI < 1 {
			gammaI = 1
		}
		pI := beam.ParticleMomentum(gammaI)

		px := p0 * xp
		py := p0 * yp
		ps2 := pI*pI - px*px - py*py
		if ps2 < 0 {
			ps2 = 0
		}
		ps := math.Sqrt(ps2)

		dpx := q * fx * dt * physconst.C / physconst.ElementaryCharge
		dpy := q * fy * dt * physconst.C / physconst.ElementaryCharge
		dps := q * fs * dt * physconst.C / physconst.ElementaryCharge

		px, py, ps = px+dpx, py+dpy, ps+dps
		pNew := math.Sqrt(px*px + py*py + ps*ps)

		// Invert p = γβmc for γ via γ² = 1 + (p/mc)².
		gammaINew := math.Sqrt(1 + (pNew/physconst.ElectronMassEV)*(pNew/physconst.ElectronMassEV))
		deltaNew := delta
		if betaRef != 0 {
			deltaNew = (gammaINew/gamma - 1) / betaRef
		}

		out.P.Set(i, 1, px/p0)
		out.P.Set(i, 3, py/p0)
		out.P.Set(i, 5, deltaNew)
	}
	return out, nil
}
