package elem

import (
	"github.com/cpmech/gosl/io"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/tmap"
)

// Drift is a field-free straight section (spec.md §4.2).
type Drift struct {
	name string
	L    float64
}

// NewDrift returns a Drift of the given length.
func NewDrift(name string, length float64) *Drift {
	return &Drift{name: name, L: length}
}

func (d *Drift) Kind() string    { return "Drift" }
func (d *Drift) Name() string    { return d.name }
func (d *Drift) Length() float64 { return d.L }
func (d *Drift) Skippable() bool { return true }

// TransferMap returns the identity map plus the drift and longitudinal
// dispersion terms: M[0,1]=M[2,3]=L, M[4,5]=-L/(β²γ²) (spec.md §4.2).
func (d *Drift) TransferMap(energyEV float64) tmap.Map7 {
	gamma := beam.Gamma(energyEV)
	betaV := beam.Beta(gamma)
	M := tmap.Identity()
	M[0][1] = d.L
	M[2][3] = d.L
	if gamma > 0 {
		M[4][5] = -d.L / (betaV * betaV * gamma * gamma)
	}
	return M
}

func (d *Drift) Track(in beam.Beam) (beam.Beam, error) {
	return trackLinear(d, in)
}

// Split emits ⌈L/resolution⌉ drifts of equal length summing to L
// (spec.md §4.2).
func (d *Drift) Split(resolution float64) []Element {
	return splitUniform(d.L, resolution, func(name string, length float64) Element {
		return NewDrift(name, length)
	}, d.name)
}

// splitUniform is the shared helper behind every element's length-only
// split: n = ceil(L/resolution) pieces of equal length L/n (the last
// absorbs floating-point rounding so the total is exactly L), named
// "<base>#k".
func splitUniform(length, resolution float64, build func(name string, length float64) Element, base string) []Element {
	if length <= 0 || resolution <= 0 {
		return []Element{build(base, length)}
	}
	n := int(length / resolution)
	if float64(n)*resolution < length {
		n++
	}
	if n < 1 {
		n = 1
	}
	piece := length / float64(n)
	out := make([]Element, 0, n)
	var acc float64
	for i := 0; i < n; i++ {
		l := piece
		if i == n-1 {
			l = length - acc
		}
		acc += l
		out = append(out, build(io.Sf("%s#%d", base, i), l))
	}
	return out
}
