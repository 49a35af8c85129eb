package segment

import (
	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/elem"
	"github.com/greglenerd/cheetah/tmap"
)

type activeFlag interface{ IsActive() bool }

func isInactive(e elem.Element) bool {
	if af, ok := e.(activeFlag); ok {
		return !af.IsActive()
	}
	return false
}

// Flatten recursively expands nested Segments into a single flat child
// list, returning a new Segment (spec.md §3, §4.3: "Nested Segment
// inside Segment is explicitly permitted").
func (s *Segment) Flatten() *Segment {
	var out []elem.Element
	var walk func([]elem.Element)
	walk = func(children []elem.Element) {
		for _, c := range children {
			if sub, ok := c.(*Segment); ok {
				walk(sub.Children)
			} else {
				out = append(out, c)
			}
		}
	}
	walk(s.Children)
	return New(s.name, out...)
}

// WithoutInactiveMarkers returns a new Segment with every inactive
// Marker removed, recursing into nested segments (spec.md §4.3). Other
// inactive elements are kept.
func (s *Segment) WithoutInactiveMarkers() *Segment {
	out := make([]elem.Element, 0, len(s.Children))
	for _, c := range s.Children {
		if _, ok := c.(*elem.Marker); ok && isInactive(c) {
			continue
		}
		if sub, ok := c.(*Segment); ok {
			out = append(out, sub.WithoutInactiveMarkers())
			continue
		}
		out = append(out, c)
	}
	return New(s.name, out...)
}

// WithoutInactiveZeroLengthElements returns a new Segment with every
// zero-length, inactive diagnostic element removed (spec.md §4.3).
func (s *Segment) WithoutInactiveZeroLengthElements() *Segment {
	out := make([]elem.Element, 0, len(s.Children))
	for _, c := range s.Children {
		if sub, ok := c.(*Segment); ok {
			out = append(out, sub.WithoutInactiveZeroLengthElements())
			continue
		}
		if c.Length() == 0 && isInactive(c) {
			continue
		}
		out = append(out, c)
	}
	return New(s.name, out...)
}

// InactiveElementsAsDrifts returns a new Segment with every inactive
// element replaced by a Drift of equal length (spec.md §4.3).
func (s *Segment) InactiveElementsAsDrifts() *Segment {
	out := make([]elem.Element, 0, len(s.Children))
	for _, c := range s.Children {
		if sub, ok := c.(*Segment); ok {
			out = append(out, sub.InactiveElementsAsDrifts())
			continue
		}
		if isInactive(c) {
			out = append(out, elem.NewDrift(c.Name(), c.Length()))
			continue
		}
		out = append(out, c)
	}
	return New(s.name, out...)
}

// TransferMapsMerged replaces every maximal run of mergeable children
// (excluding named exceptions and anything reporting ForceNonMergeable)
// with a single elem.CustomTransferMap built from the product of their
// maps evaluated at the beam energy at the run's start — tracking the
// incoming beam forward through each run to obtain the correct starting
// energy for the next run (spec.md §4.3).
func (s *Segment) TransferMapsMerged(incoming beam.Beam, exceptFor map[string]bool) (*Segment, error) {
	flat := s.Flatten()
	out := make([]elem.Element, 0, len(flat.Children))

	cur := incoming
	i := 0
	for i < len(flat.Children) {
		c := flat.Children[i]
		if mergeable(c) && !exceptFor[c.Name()] {
			j := i
			var length float64
			M := tmap.Identity()
			for j < len(flat.Children) && mergeable(flat.Children[j]) && !exceptFor[flat.Children[j].Name()] {
				M = tmap.Mul(flat.Children[j].TransferMap(cur.RefEnergy()), M)
				length += flat.Children[j].Length()
				var err error
				cur, err = flat.Children[j].Track(cur)
				if err != nil {
					return nil, err
				}
				j++
			}
			out = append(out, elem.NewCustomTransferMap(mergedName(flat.Children[i:j]), M, length))
			i = j
			continue
		}
		var err error
		cur, err = c.Track(cur)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
		i++
	}
	return New(s.name, out...), nil
}

func mergedName(run []elem.Element) string {
	if len(run) == 1 {
		return run[0].Name()
	}
	name := "merged"
	for _, e := range run {
		name += "_" + e.Name()
	}
	return name
}
