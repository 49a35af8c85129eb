package elem

import (
	"math"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/param"
	"github.com/greglenerd/cheetah/tmap"
)

// Solenoid is a coupled-plane focusing magnet; its R-matrix is the
// closed-form Chao 6×6 with coupled x-y blocks (spec.md §4.2).
type Solenoid struct {
	name      string
	L         float64
	K         *param.Param
	MisalignX *param.Param
	MisalignY *param.Param
}

// NewSolenoid returns a Solenoid of the given length and strength k.
func NewSolenoid(name string, length, k float64) *Solenoid {
	return &Solenoid{
		name:      name,
		L:         length,
		K:         param.New("k", k),
		MisalignX: param.New("misalignment_x", 0),
		MisalignY: param.New("misalignment_y", 0),
	}
}

func (s *Solenoid) Kind() string    { return "Solenoid" }
func (s *Solenoid) Name() string    { return s.name }
func (s *Solenoid) Length() float64 { return s.L }

// Skippable is a plain read-only method (spec.md §9: the source
// accidentally makes is_skippable a method with different semantics per
// instance; here it is uniformly true, consistent with every other
// linear element).
func (s *Solenoid) Skippable() bool { return true }

func (s *Solenoid) TransferMap(energyEV float64) tmap.Map7 {
	gamma := beam.Gamma(energyEV)
	betaV := beam.Beta(gamma)
	k := s.K.Get()

	var c, sn, sk float64
	if k == 0 {
		c, sn, sk = 1, 0, s.L
	} else {
		c = math.Cos(k * s.L)
		sn = math.Sin(k * s.L)
		sk = sn / k
	}
	cc := c * c
	ss := sn * sn
	cs := c * sn

	M := tmap.Identity()
	M[0][0] = cc
	M[0][1] = c * sk
	M[0][2] = cs
	M[0][3] = sn * sk
	M[1][0] = -k * cs
	M[1][1] = cc
	M[1][2] = -k * ss
	M[1][3] = cs
	M[2][0] = -cs
	M[2][1] = -sn * sk
	M[2][2] = cc
	M[2][3] = c * sk
	M[3][0] = k * ss
	M[3][1] = -cs
	M[3][2] = -k * cs
	M[3][3] = cc
	if gamma > 0 {
		M[4][5] = -s.L / (betaV * betaV * gamma * gamma)
	}

	dx, dy := s.MisalignX.Get(), s.MisalignY.Get()
	if dx != 0 || dy != 0 {
		exit, entry := tmap.Misalign(dx, dy)
		M = tmap.Mul(exit, tmap.Mul(M, entry))
	}
	return M
}

func (s *Solenoid) Track(in beam.Beam) (beam.Beam, error) {
	return trackLinear(s, in)
}

func (s *Solenoid) Split(resolution float64) []Element {
	return splitUniform(s.L, resolution, func(name string, length float64) Element {
		piece := NewSolenoid(name, length, s.K.Get())
		piece.MisalignX.Set(s.MisalignX.Get())
		piece.MisalignY.Set(s.MisalignY.Get())
		return piece
	}, s.name)
}
