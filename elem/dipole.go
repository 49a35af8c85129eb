package elem

import (
	"math"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/param"
	"github.com/greglenerd/cheetah/tmap"
)

// Dipole is a sector bending magnet with pole-face rotations and fringe
// fields (spec.md §4.2).
type Dipole struct {
	name      string
	L         float64
	Angle     *param.Param
	E1        *param.Param
	E2        *param.Param
	Tilt      *param.Param
	FringeIn  *param.Param
	FringeOut *param.Param
	Gap       *param.Param
}

// NewDipole returns a Dipole of the given length and bend angle.
func NewDipole(name string, length, angle float64) *Dipole {
	return &Dipole{
		name:      name,
		L:         length,
		Angle:     param.New("angle", angle),
		E1:        param.New("e1", 0),
		E2:        param.New("e2", 0),
		Tilt:      param.New("tilt", 0),
		FringeIn:  param.New("fringe_integral", 0),
		FringeOut: param.New("fringe_integral_exit", 0),
		Gap:       param.New("gap", 0),
	}
}

func (d *Dipole) Kind() string    { return "Dipole" }
func (d *Dipole) Name() string    { return d.name }
func (d *Dipole) Length() float64 { return d.L }
func (d *Dipole) Skippable() bool { return true }

// hx returns the bending curvature 1/ρ = angle/L, or zero for a
// zero-length thin kick (spec.md §4.2).
func (d *Dipole) hx() float64 {
	if d.L > 0 {
		return d.Angle.Get() / d.L
	}
	return 0
}

// TransferMap composes the entry pole-face matrix, the core R-matrix,
// and the exit pole-face matrix, then conjugates by roll(tilt)
// (spec.md §4.2). A zero-length dipole degenerates to a thin kick: the
// angle is placed directly into column 6 of row 1 (the x' coordinate).
func (d *Dipole) TransferMap(energyEV float64) tmap.Map7 {
	hx := d.hx()
	if d.L <= 0 {
		M := tmap.Identity()
		M[1][6] = d.Angle.Get()
		return M
	}
	core := tmap.Base(d.L, 0, hx, 0, energyEV)
	enter := poleFace(hx, d.E1.Get(), d.FringeIn.Get(), d.Gap.Get())
	exit := poleFace(hx, d.E2.Get(), d.FringeOut.Get(), d.Gap.Get())
	R := tmap.Mul(exit, tmap.Mul(core, enter))
	if tilt := d.Tilt.Get(); tilt != 0 {
		R = tmap.Mul(tmap.Roll(-tilt), tmap.Mul(R, tmap.Roll(tilt)))
	}
	return R
}

// poleFace returns the edge-focusing matrix of spec.md §4.2: row 1
// gains hx·tan(e) in column 0; row 3 gains -hx·tan(e-φ) in column 2,
// where φ = f·hx·gap·sec(e)·(1+sin²e).
func poleFace(hx, e, fringeIntegral, gap float64) tmap.Map7 {
	M := tmap.Identity()
	if hx == 0 {
		return M
	}
	phi := fringeIntegral * hx * gap * (1 / math.Cos(e)) * (1 + math.Sin(e)*math.Sin(e))
	M[1][0] = hx * math.Tan(e)
	M[3][2] = -hx * math.Tan(e-phi)
	return M
}

func (d *Dipole) Track(in beam.Beam) (beam.Beam, error) {
	return trackLinear(d, in)
}

func (d *Dipole) Split(resolution float64) []Element {
	return splitUniform(d.L, resolution, func(name string, length float64) Element {
		frac := length / d.L
		piece := NewDipole(name, length, d.Angle.Get()*frac)
		piece.Tilt.Set(d.Tilt.Get())
		piece.Gap.Set(d.Gap.Get())
		return piece
	}, d.name)
}

// RBend is a Dipole whose pole faces are augmented by half the bend
// angle before construction (spec.md §4.2), matching a rectangular
// magnet specified by its straight-line chord.
type RBend struct {
	*Dipole
}

// NewRBend returns an RBend of the given length and bend angle.
func NewRBend(name string, length, angle float64) *RBend {
	d := NewDipole(name, length, angle)
	half := angle / 2
	d.E1.Set(d.E1.Get() + half)
	d.E2.Set(d.E2.Get() + half)
	return &RBend{Dipole: d}
}

func (r *RBend) Kind() string { return "RBend" }
