package spacecharge

import "github.com/greglenerd/cheetah/elem"

// init registers the SpaceChargeKick allocator with elem's factory, so
// lattice JSON loading can instantiate one by its "SpaceChargeKick" type
// tag without elem importing this package (spec.md §6).
func init() {
	elem.SetAllocator("SpaceChargeKick", func(s *elem.Spec) elem.Element {
		nx, ny, ns := intOr(s, "nx", 32), intOr(s, "ny", 32), intOr(s, "ns", 32)
		return NewSpaceChargeKick(s.Name, floatOr(s, "length", 0),
			nx, ny, ns,
			floatOr(s, "dx", 6), floatOr(s, "dy", 6), floatOr(s, "ds", 6))
	})
}

func floatOr(s *elem.Spec, key string, def float64) float64 {
	if s.Floats == nil {
		return def
	}
	if v, ok := s.Floats[key]; ok {
		return v
	}
	return def
}

func intOr(s *elem.Spec, key string, def int) int {
	if s.Floats == nil {
		return def
	}
	if v, ok := s.Floats[key]; ok {
		return int(v)
	}
	return def
}
