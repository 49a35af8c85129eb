// Package elem implements the tagged-variant enumeration of beamline
// elements of spec.md §4.2: one Go type per physical device, each
// producing a 7×7 transfer map and/or a custom tracking step. The
// one-file-per-kind layout is grounded on the teacher's ele/solid
// one-element-per-file convention (elastrod.go, beam.go).
package elem

import (
	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/tmap"
)

// Element is the polymorphic variant of spec.md §4.2, §9 ("Polymorphism
// without inheritance"): every element dispatches transfer_map, track,
// is_skippable, length and split through this interface rather than a
// class hierarchy.
type Element interface {
	// Name returns the element's identifying name.
	Name() string

	// Length returns the element's geometric length in meters, or zero
	// for zero-length devices (markers, BPMs, screens, apertures, thin kicks).
	Length() float64

	// Skippable reports whether this element's effect is fully captured
	// by a state-independent linear 7×7 map (spec.md §3, §9).
	Skippable() bool

	// TransferMap returns the element's 7x7 transfer map evaluated at
	// the given reference energy (eV).
	TransferMap(energyEV float64) tmap.Map7

	// Track propagates a beam through the element, returning a new beam
	// and never mutating the one it was given (spec.md §3 "Lifecycles").
	Track(in beam.Beam) (beam.Beam, error)
}

// Splittable is implemented by elements whose Split subdivides them into
// pieces no longer than a given resolution (spec.md §3, §4.2).
type Splittable interface {
	Split(resolution float64) []Element
}

// trackLinear is the tracking behavior shared by every element whose
// Track step is nothing but "apply my transfer map", grounded on the
// teacher's habit of factoring a single shared helper out of near-
// identical per-element methods (e.g. ele/solid/elastrod.go's K/M
// assembly reused by every rod variant).
func trackLinear(e Element, in beam.Beam) (beam.Beam, error) {
	if in.IsEmpty() {
		return beam.Empty, nil
	}
	M := e.TransferMap(in.RefEnergy())
	switch b := in.(type) {
	case *beam.MomentBeam:
		out := &beam.MomentBeam{
			Mu:     tmap.MulVec(M, b.Mu),
			Sigma:  tmap.Sandwich(M, b.Sigma),
			Energy: b.Energy,
			Charge: b.Charge,
		}
		return out, nil
	case *beam.ParticleBeam:
		return trackParticlesLinear(M, b), nil
	default:
		return nil, errInvalidBeamType(e, in)
	}
}

// trackParticlesLinear applies M to every particle row: P' = P * M^T.
func trackParticlesLinear(M tmap.Map7, b *beam.ParticleBeam) *beam.ParticleBeam {
	n := b.N()
	out := beam.NewParticleBeam(n, b.Energy)
	copy(out.Q, b.Q)
	out.P = tmap.ApplyRows(M, b.P)
	return out
}
