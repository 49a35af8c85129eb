package elem

import (
	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/tmap"
)

// Undulator is modeled as a drift with no 1/β² factor in its
// longitudinal dispersion term (spec.md §4.2).
type Undulator struct {
	name string
	L    float64
}

// NewUndulator returns an Undulator of the given length.
func NewUndulator(name string, length float64) *Undulator {
	return &Undulator{name: name, L: length}
}

func (u *Undulator) Kind() string    { return "Undulator" }
func (u *Undulator) Name() string    { return u.name }
func (u *Undulator) Length() float64 { return u.L }
func (u *Undulator) Skippable() bool { return true }

func (u *Undulator) TransferMap(energyEV float64) tmap.Map7 {
	gamma := beam.Gamma(energyEV)
	M := tmap.Identity()
	M[0][1] = u.L
	M[2][3] = u.L
	if gamma > 0 {
		M[4][5] = u.L / (gamma * gamma)
	}
	return M
}

func (u *Undulator) Track(in beam.Beam) (beam.Beam, error) {
	return trackLinear(u, in)
}

func (u *Undulator) Split(resolution float64) []Element {
	return splitUniform(u.L, resolution, func(name string, length float64) Element {
		return NewUndulator(name, length)
	}, u.name)
}
