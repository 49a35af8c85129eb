package elem

import (
	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/param"
	"github.com/greglenerd/cheetah/tmap"
)

// Quadrupole is a linear transverse focusing magnet (spec.md §4.2).
type Quadrupole struct {
	name      string
	L         float64
	K1        *param.Param
	MisalignX *param.Param
	MisalignY *param.Param
	Tilt      *param.Param
}

// NewQuadrupole returns a Quadrupole of the given length and normalized
// gradient k1.
func NewQuadrupole(name string, length, k1 float64) *Quadrupole {
	return &Quadrupole{
		name:      name,
		L:         length,
		K1:        param.New("k1", k1),
		MisalignX: param.New("misalignment_x", 0),
		MisalignY: param.New("misalignment_y", 0),
		Tilt:      param.New("tilt", 0),
	}
}

func (q *Quadrupole) Kind() string    { return "Quadrupole" }
func (q *Quadrupole) Name() string    { return q.name }
func (q *Quadrupole) Length() float64 { return q.L }

// Skippable is always true: a Quadrupole's effect is fully captured by
// its linear map regardless of k1 (spec.md §4.2 "Active iff k1≠0" only
// governs whether it focuses, not whether it can be merged).
func (q *Quadrupole) Skippable() bool { return true }

// TransferMap builds the base R-matrix with hx=0 and applies the
// misalignment wrap if nonzero (spec.md §4.1, §4.2).
func (q *Quadrupole) TransferMap(energyEV float64) tmap.Map7 {
	R := tmap.Base(q.L, q.K1.Get(), 0, q.Tilt.Get(), energyEV)
	dx, dy := q.MisalignX.Get(), q.MisalignY.Get()
	if dx != 0 || dy != 0 {
		exit, entry := tmap.Misalign(dx, dy)
		R = tmap.Mul(exit, tmap.Mul(R, entry))
	}
	return R
}

func (q *Quadrupole) Track(in beam.Beam) (beam.Beam, error) {
	return trackLinear(q, in)
}

func (q *Quadrupole) Split(resolution float64) []Element {
	return splitUniform(q.L, resolution, func(name string, length float64) Element {
		piece := NewQuadrupole(name, length, q.K1.Get())
		piece.MisalignX.Set(q.MisalignX.Get())
		piece.MisalignY.Set(q.MisalignY.Get())
		piece.Tilt.Set(q.Tilt.Get())
		return piece
	}, q.name)
}
