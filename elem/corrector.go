package elem

import (
	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/param"
	"github.com/greglenerd/cheetah/tmap"
)

// axis distinguishes the plane a corrector kicks in.
type axis int

const (
	axisHorizontal axis = iota
	axisVertical
)

// Corrector is a thin steering dipole: a Drift matrix with a constant
// kick angle θ placed in row 1 (horizontal) or row 3 (vertical) of
// column 6 (spec.md §4.2).
type Corrector struct {
	name  string
	L     float64
	Angle *param.Param
	axis  axis
}

// NewHorizontalCorrector returns a horizontal steering corrector.
func NewHorizontalCorrector(name string, length, angle float64) *Corrector {
	return &Corrector{name: name, L: length, Angle: param.New("angle", angle), axis: axisHorizontal}
}

// NewVerticalCorrector returns a vertical steering corrector.
func NewVerticalCorrector(name string, length, angle float64) *Corrector {
	return &Corrector{name: name, L: length, Angle: param.New("angle", angle), axis: axisVertical}
}

func (c *Corrector) Kind() string {
	if c.axis == axisHorizontal {
		return "HorizontalCorrector"
	}
	return "VerticalCorrector"
}

func (c *Corrector) Name() string    { return c.name }
func (c *Corrector) Length() float64 { return c.L }
func (c *Corrector) Skippable() bool { return true }

func (c *Corrector) TransferMap(energyEV float64) tmap.Map7 {
	drift := Drift{L: c.L}
	M := drift.TransferMap(energyEV)
	if c.axis == axisHorizontal {
		M[1][6] = c.Angle.Get()
	} else {
		M[3][6] = c.Angle.Get()
	}
	return M
}

func (c *Corrector) Track(in beam.Beam) (beam.Beam, error) {
	return trackLinear(c, in)
}

// Split divides length and kick proportionally (spec.md §4.2).
func (c *Corrector) Split(resolution float64) []Element {
	total := c.L
	return splitUniform(c.L, resolution, func(name string, length float64) Element {
		frac := 1.0
		if total > 0 {
			frac = length / total
		}
		piece := &Corrector{name: name, L: length, Angle: param.New("angle", c.Angle.Get()*frac), axis: c.axis}
		return piece
	}, c.name)
}
