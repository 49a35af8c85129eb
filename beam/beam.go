// Package beam implements the two beam representations tracked through a
// beamline: a Gaussian moment beam (mean + covariance) and a sampled
// particle beam (explicit coordinate cloud), plus the distinguished empty
// sentinel that every element passes through unchanged (spec.md §3, §7).
//
// Beams are values: every tracking step in elem/segment produces a new
// beam and never mutates the one it was given (spec.md §3 "Lifecycles").
package beam

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Dim is the dimension of the augmented canonical state (x, x', y, y', s,
// δ, 1); the 7th coordinate absorbs affine kicks (spec.md §3).
const Dim = 7

// Beam is the sum type of MomentBeam, ParticleBeam, and the empty
// sentinel. It carries only the observables every element needs to decide
// how to act; element-specific behavior type-switches on the concrete
// type.
type Beam interface {
	// IsEmpty reports whether this is the empty-beam sentinel.
	IsEmpty() bool

	// RefEnergy is the reference energy E, in eV.
	RefEnergy() float64

	// TotalCharge is the total bunch charge Q, in C.
	TotalCharge() float64
}

// Empty is the distinguished empty-beam sentinel (spec.md §3, §9): every
// element passes it through unchanged, never an error.
var Empty Beam = emptyBeam{}

type emptyBeam struct{}

func (emptyBeam) IsEmpty() bool        { return true }
func (emptyBeam) RefEnergy() float64   { return 0 }
func (emptyBeam) TotalCharge() float64 { return 0 }

// MomentBeam is the Gaussian moment representation: mean Mu and
// covariance Sigma over the canonical state, plus reference energy and
// total bunch charge (spec.md §3).
type MomentBeam struct {
	Mu     [Dim]float64
	Sigma  [Dim][Dim]float64
	Energy float64 // eV
	Charge float64 // C
}

func (b *MomentBeam) IsEmpty() bool        { return false }
func (b *MomentBeam) RefEnergy() float64   { return b.Energy }
func (b *MomentBeam) TotalCharge() float64 { return b.Charge }

// NewMomentBeam returns a MomentBeam at rest on the reference trajectory
// (zero mean, zero covariance) with the augmented seventh coordinate set
// to 1, as every transfer map's row 6 assumes (spec.md §3).
func NewMomentBeam(energy, charge float64) *MomentBeam {
	b := &MomentBeam{Energy: energy, Charge: charge}
	b.Mu[6] = 1
	return b
}

// Clone returns a value copy; Mu and Sigma are fixed-size arrays so the
// copy is automatic in Go's assignment semantics — kept as an explicit
// method so call sites document the no-mutation invariant the same way
// spec.md §8 requires it tested.
func (b *MomentBeam) Clone() *MomentBeam {
	cp := *b
	return &cp
}

// ParticleBeam is the sampled coordinate-cloud representation: P is an
// N×7 matrix whose 7th column is identically 1 (spec.md §3), Energy is
// the reference energy in eV, and Q holds the per-particle signed charge
// in C, summing to the total bunch charge.
type ParticleBeam struct {
	P      *mat.Dense
	Energy float64
	Q      []float64
}

func (b *ParticleBeam) IsEmpty() bool { return false }

func (b *ParticleBeam) RefEnergy() float64 { return b.Energy }

func (b *ParticleBeam) TotalCharge() float64 {
	var total float64
	for _, q := range b.Q {
		total += q
	}
	return total
}

// N returns the number of particles.
func (b *ParticleBeam) N() int {
	r, _ := b.P.Dims()
	return r
}

// NewParticleBeam allocates a particle beam for n particles, initializing
// the seventh column to the constant 1 as spec.md §3 requires.
func NewParticleBeam(n int, energy float64) *ParticleBeam {
	data := make([]float64, n*Dim)
	for i := 0; i < n; i++ {
		data[i*Dim+6] = 1
	}
	return &ParticleBeam{
		P:      mat.NewDense(n, Dim, data),
		Energy: energy,
		Q:      make([]float64, n),
	}
}

// Clone returns a deep copy: a fresh underlying matrix and charge slice,
// so callers may mutate the result without affecting the original
// (spec.md §9's "no in-place mutation" requirement for the space-charge
// kick relies on this).
func (b *ParticleBeam) Clone() *ParticleBeam {
	n, m := b.P.Dims()
	raw := mat.NewDense(n, m, nil)
	raw.Copy(b.P)
	q := make([]float64, len(b.Q))
	copy(q, b.Q)
	return &ParticleBeam{P: raw, Energy: b.Energy, Q: q}
}

// CheckColumn6 panics if the seventh column is not identically 1,
// guarding the invariant of spec.md §3 at diagnostic boundaries.
func (b *ParticleBeam) CheckColumn6() {
	n, _ := b.P.Dims()
	for i := 0; i < n; i++ {
		if v := b.P.At(i, 6); v != 1 {
			chk.Panic("particle beam: row %d column 6 must equal 1, got %g", i, v)
		}
	}
}
