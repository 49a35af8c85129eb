package elem

import (
	"github.com/cpmech/gosl/chk"
)

// Spec is the flat attribute bag a factory allocator consumes: the
// lattice JSON representation (latticeio) and the foreign adapters
// build one of these per element before calling New. Undefined
// attributes default to zero, per spec.md §6.
type Spec struct {
	Type   string
	Name   string
	Floats map[string]float64
	Str    map[string]string
	Bool   map[string]bool
}

func (s *Spec) f(key string) float64 {
	if s.Floats == nil {
		return 0
	}
	return s.Floats[key]
}

func (s *Spec) b(key string) bool {
	if s.Bool == nil {
		return false
	}
	return s.Bool[key]
}

func (s *Spec) str(key string) string {
	if s.Str == nil {
		return ""
	}
	return s.Str[key]
}

// AllocatorType allocates an Element from a flat attribute Spec,
// grounded on ele/factory.go's AllocatorType func(sim, cell, edat, x)
// Element signature, simplified to this package's flat attribute model.
type AllocatorType func(s *Spec) Element

// allocators holds all element allocators, keyed by lattice JSON `type`
// tag (spec.md §6), mirroring ele/factory.go's allocators map.
var allocators = map[string]AllocatorType{
	"Drift": func(s *Spec) Element {
		return NewDrift(s.Name, s.f("length"))
	},
	"Quadrupole": func(s *Spec) Element {
		e := NewQuadrupole(s.Name, s.f("length"), s.f("k1"))
		e.MisalignX.Set(s.f("misalignment_x"))
		e.MisalignY.Set(s.f("misalignment_y"))
		e.Tilt.Set(s.f("tilt"))
		return e
	},
	"Dipole": func(s *Spec) Element {
		e := NewDipole(s.Name, s.f("length"), s.f("angle"))
		e.E1.Set(s.f("e1"))
		e.E2.Set(s.f("e2"))
		e.Tilt.Set(s.f("tilt"))
		e.FringeIn.Set(s.f("fringe_integral"))
		e.FringeOut.Set(s.f("fringe_integral_exit"))
		e.Gap.Set(s.f("gap"))
		return e
	},
	"RBend": func(s *Spec) Element {
		e := NewRBend(s.Name, s.f("length"), s.f("angle"))
		e.Tilt.Set(s.f("tilt"))
		e.Gap.Set(s.f("gap"))
		return e
	},
	"HorizontalCorrector": func(s *Spec) Element {
		return NewHorizontalCorrector(s.Name, s.f("length"), s.f("angle"))
	},
	"VerticalCorrector": func(s *Spec) Element {
		return NewVerticalCorrector(s.Name, s.f("length"), s.f("angle"))
	},
	"Solenoid": func(s *Spec) Element {
		e := NewSolenoid(s.Name, s.f("length"), s.f("k"))
		e.MisalignX.Set(s.f("misalignment_x"))
		e.MisalignY.Set(s.f("misalignment_y"))
		return e
	},
	"Cavity": func(s *Spec) Element {
		return NewCavity(s.Name, s.f("length"), s.f("voltage"), s.f("phase"), s.f("frequency"))
	},
	"Aperture": func(s *Spec) Element {
		shape := ApertureRectangular
		if s.str("shape") == "elliptical" {
			shape = ApertureElliptical
		}
		return NewAperture(s.Name, s.f("x_max"), s.f("y_max"), shape, s.b("active"))
	},
	"BPM": func(s *Spec) Element {
		return NewBPM(s.Name, s.b("active"))
	},
	"Marker": func(s *Spec) Element {
		return NewMarker(s.Name)
	},
	"Screen": func(s *Spec) Element {
		return NewScreen(s.Name, int(s.f("resolution_x")), int(s.f("resolution_y")),
			s.f("pixel_size_x"), s.f("pixel_size_y"), s.b("active"))
	},
	"Undulator": func(s *Spec) Element {
		return NewUndulator(s.Name, s.f("length"))
	},
}

// New returns a new Element from the factory, per spec.md §6's lattice
// JSON loading contract.
func New(s *Spec) (Element, error) {
	fcn, ok := allocators[s.Type]
	if !ok {
		return nil, chk.Err("cannot get allocator for element {type=%q, name=%q}", s.Type, s.Name)
	}
	e := fcn(s)
	if e == nil {
		return nil, chk.Err("element {type=%q, name=%q} is not available", s.Type, s.Name)
	}
	return e, nil
}

// SetAllocator registers a new allocator function, e.g. for
// SpaceChargeKick which lives in the spacecharge package to avoid an
// import cycle (spacecharge imports elem, so elem never imports
// spacecharge).
func SetAllocator(elementType string, fcn AllocatorType) {
	if _, ok := allocators[elementType]; ok {
		chk.Panic("cannot set allocator for %q because it exists already", elementType)
	}
	allocators[elementType] = fcn
}

// Types returns the registered element type names, in no particular
// order.
func Types() []string {
	out := make([]string, 0, len(allocators))
	for k := range allocators {
		out = append(out, k)
	}
	return out
}
