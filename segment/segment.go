// Package segment implements the ordered composition of elem.Elements
// of spec.md §4.3: tracking dispatch (full-product fast path vs. run-
// interleaved walk), length accounting, and the structural
// transformations (flatten, drop inactive markers, merge skippable
// runs) that each return a new segment rather than mutating in place.
package segment

import (
	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/elem"
	"github.com/greglenerd/cheetah/tmap"
)

// Segment is an ordered sequence of elem.Elements, itself an
// elem.Element so segments may nest (spec.md §3, §9).
type Segment struct {
	name     string
	Children []elem.Element
}

// New returns a Segment wrapping the given ordered children.
func New(name string, children ...elem.Element) *Segment {
	return &Segment{name: name, Children: append([]elem.Element(nil), children...)}
}

func (s *Segment) Kind() string { return "Segment" }
func (s *Segment) Name() string { return s.name }

// Length is the sum of children lengths (spec.md §3).
func (s *Segment) Length() float64 {
	var total float64
	for _, c := range s.Children {
		total += c.Length()
	}
	return total
}

// Skippable is true iff every child is skippable (spec.md §3).
func (s *Segment) Skippable() bool {
	for _, c := range s.Children {
		if !c.Skippable() {
			return false
		}
	}
	return true
}

// forceNonMergeable reports whether an element must never be absorbed
// into a merged skippable run even though Skippable() reports true
// (spec.md §9 — SpaceChargeKick's declared-skippable-but-nonlinear
// behavior).
func forceNonMergeable(e elem.Element) bool {
	if nm, ok := e.(interface{ ForceNonMergeable() bool }); ok {
		return nm.ForceNonMergeable()
	}
	return false
}

func mergeable(e elem.Element) bool {
	return e.Skippable() && !forceNonMergeable(e)
}

// TransferMap returns the product of the children's maps, right-to-left
// (i.e. applied in element order), evaluated at the given reference
// energy. Only valid when the whole segment is skippable; callers
// needing an energy-accurate product over a non-skippable segment
// should use Track directly.
func (s *Segment) TransferMap(energyEV float64) tmap.Map7 {
	M := tmap.Identity()
	for _, c := range s.Children {
		M = tmap.Mul(c.TransferMap(energyEV), M)
	}
	return M
}

// Track walks the children, applying the full-product fast path when
// every child is mergeable and otherwise interleaving runs of mergeable
// children with non-mergeable children tracked individually (spec.md
// §4.3).
func (s *Segment) Track(in beam.Beam) (beam.Beam, error) {
	if in.IsEmpty() {
		return beam.Empty, nil
	}
	allMergeable := true
	for _, c := range s.Children {
		if !mergeable(c) {
			allMergeable = false
			break
		}
	}
	if allMergeable {
		M := s.TransferMap(in.RefEnergy())
		return applyMap(M, in)
	}

	cur := in
	i := 0
	for i < len(s.Children) {
		if mergeable(s.Children[i]) {
			j := i
			for j < len(s.Children) && mergeable(s.Children[j]) {
				j++
			}
			M := tmap.Identity()
			for k := i; k < j; k++ {
				M = tmap.Mul(s.Children[k].TransferMap(cur.RefEnergy()), M)
			}
			var err error
			cur, err = applyMap(M, cur)
			if err != nil {
				return nil, err
			}
			i = j
			continue
		}
		var err error
		cur, err = s.Children[i].Track(cur)
		if err != nil {
			return nil, err
		}
		i++
	}
	return cur, nil
}

// applyMap applies a 7x7 map to a moment or particle beam directly,
// shared by Segment's two tracking paths.
func applyMap(M tmap.Map7, in beam.Beam) (beam.Beam, error) {
	switch b := in.(type) {
	case *beam.MomentBeam:
		return &beam.MomentBeam{
			Mu:     tmap.MulVec(M, b.Mu),
			Sigma:  tmap.Sandwich(M, b.Sigma),
			Energy: b.Energy,
			Charge: b.Charge,
		}, nil
	case *beam.ParticleBeam:
		out := beam.NewParticleBeam(b.N(), b.Energy)
		copy(out.Q, b.Q)
		out.P = tmap.ApplyRows(M, b.P)
		return out, nil
	default:
		return nil, chk.Err("segment: cannot track beam of type %T", in)
	}
}

// Split is not meaningful for a Segment as a whole (spec.md §3 assigns
// splitting to length-bearing leaf elements); Segment does not
// implement elem.Splittable.
