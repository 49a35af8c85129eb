package elem

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/param"
	"github.com/greglenerd/cheetah/tmap"
)

// ApertureShape selects the collimation boundary of an Aperture.
type ApertureShape int

const (
	ApertureRectangular ApertureShape = iota
	ApertureElliptical
)

// Aperture is a collimator that removes particles outside its half-
// extents (spec.md §4.2). Its map is always identity; only its tracking
// step depends on the beam's particle positions.
type Aperture struct {
	name   string
	Xmax   *param.Param
	Ymax   *param.Param
	Shape  ApertureShape
	Active bool

	lastLostCount   int
	lastLostCharges []float64
}

// NewAperture returns an Aperture with the given half-extents and shape.
func NewAperture(name string, xmax, ymax float64, shape ApertureShape, active bool) *Aperture {
	if xmax < 0 || ymax < 0 {
		chk.Panic("Aperture %q: half-extents must be non-negative, got xmax=%g ymax=%g", name, xmax, ymax)
	}
	return &Aperture{
		name:   name,
		Xmax:   param.New("x_max", xmax),
		Ymax:   param.New("y_max", ymax),
		Shape:  shape,
		Active: active,
	}
}

// IsActive reports whether this Aperture collimates the beam.
func (a *Aperture) IsActive() bool { return a.Active }

func (a *Aperture) Kind() string                    { return "Aperture" }
func (a *Aperture) Name() string                    { return a.name }
func (a *Aperture) Length() float64                 { return 0 }
func (a *Aperture) Skippable() bool                 { return !a.Active }
func (a *Aperture) TransferMap(_ float64) tmap.Map7 { return tmap.Identity() }

// LastLostCount and LastLostCharges report the diagnostic state written
// by the most recent tracking call (spec.md §5: a single write-only
// slot, overwritten never appended to).
func (a *Aperture) LastLostCount() int         { return a.lastLostCount }
func (a *Aperture) LastLostCharges() []float64 { return a.lastLostCharges }

func (a *Aperture) Track(in beam.Beam) (beam.Beam, error) {
	if in.IsEmpty() {
		return beam.Empty, nil
	}
	pb, ok := in.(*beam.ParticleBeam)
	if !ok || !a.Active {
		return trackLinear(a, in)
	}

	xmax, ymax := a.Xmax.Get(), a.Ymax.Get()
	n := pb.N()
	kept := make([]int, 0, n)
	lostCharges := make([]float64, 0)
	for i := 0; i < n; i++ {
		x, y := pb.P.At(i, 0), pb.P.At(i, 2)
		var inside bool
		switch a.Shape {
		case ApertureRectangular:
			inside = math.Abs(x) < xmax && math.Abs(y) < ymax
		case ApertureElliptical:
			inside = (x*x)/(xmax*xmax)+(y*y)/(ymax*ymax) <= 1
		default:
			return nil, chk.Err("Aperture %q: unknown shape %v", a.name, a.Shape)
		}
		if inside {
			kept = append(kept, i)
		} else {
			lostCharges = append(lostCharges, pb.Q[i])
		}
	}
	a.lastLostCount = len(lostCharges)
	a.lastLostCharges = lostCharges

	if len(kept) == 0 {
		return beam.Empty, nil
	}
	out := beam.NewParticleBeam(len(kept), pb.Energy)
	for dst, src := range kept {
		for k := 0; k < 7; k++ {
			out.P.Set(dst, k, pb.P.At(src, k))
		}
		out.Q[dst] = pb.Q[src]
	}
	return out, nil
}
