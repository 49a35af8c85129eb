package tmap

import (
	"math"

	"github.com/greglenerd/cheetah/beam"
)

// Base builds the shared straight/curved-magnet R-matrix of spec.md §4.1
// from length L, normalized quadrupole gradient k1, bending curvature hx
// = 1/ρ, roll tilt, and reference energy E (eV).
//
// kx² = hx²+k1 and ky² = -k1 drive independent Courant-Snyder blocks for
// the horizontal and vertical planes; each block dispatches on the sign
// of its focusing term (real cos/sin for k²>0, cosh/sinh for k²<0, the
// drift limit for k²=0) rather than using a complex square root, which is
// the idiomatic Go rendering of the same closed form.
func Base(length, k1, hx, tilt, energyEV float64) Map7 {
	gamma := beam.Gamma(energyEV)
	beta := beam.Beta(gamma)
	igamma2 := 0.0
	if gamma > 0 {
		igamma2 = 1 / (gamma * gamma)
	}

	kx2 := hx*hx + k1
	ky2 := -k1

	cx, sx := cosSin(kx2, length)
	cy, sy := cosSin(ky2, length)

	var dx float64
	if kx2 != 0 {
		dx = hx / kx2 * (1 - cx)
	} else {
		dx = 0.5 * hx * length * length
	}

	var r56 float64
	if kx2 != 0 {
		r56 = hx * hx * (length - sx) / kx2 / (beta * beta)
	}
	r56 -= length / (beta * beta) * igamma2

	R := Identity()
	R[0][0] = cx
	R[0][1] = sx
	R[0][5] = dx / beta
	R[1][0] = -kx2 * sx
	R[1][1] = cx
	R[1][5] = hx * sx
	R[2][2] = cy
	R[2][3] = sy
	R[3][2] = -ky2 * sy
	R[3][3] = cy
	R[4][0] = hx * sx / beta
	R[4][1] = dx / beta
	R[4][5] = r56

	if tilt != 0 {
		R = Mul(Roll(-tilt), Mul(R, Roll(tilt)))
	}
	return R
}

// cosSin returns (cos(sqrt(k2)*L), sin(sqrt(k2)*L)/sqrt(k2)) for k2>0,
// the hyperbolic analogue for k2<0, and the drift limit (1, L) for k2=0.
func cosSin(k2, length float64) (c, s float64) {
	switch {
	case k2 > 0:
		k := math.Sqrt(k2)
		return math.Cos(k * length), math.Sin(k*length) / k
	case k2 < 0:
		k := math.Sqrt(-k2)
		return math.Cosh(k * length), math.Sinh(k*length) / k
	default:
		return 1, length
	}
}

// Roll returns the 7x7 rotation about the beam axis by the given angle,
// used to conjugate the base R-matrix for tilted magnets (spec.md §4.1).
func Roll(angle float64) Map7 {
	cs := math.Cos(angle)
	sn := math.Sin(angle)
	R := Identity()
	R[0][0] = cs
	R[0][2] = sn
	R[1][1] = cs
	R[1][3] = sn
	R[2][0] = -sn
	R[2][2] = cs
	R[3][1] = -sn
	R[3][3] = cs
	return R
}

// Misalign returns the exit and entry affine-shift maps for a transverse
// misalignment (Δx, Δy): the element's map is pre-multiplied by the exit
// shift and post-multiplied by the entry shift (spec.md §4.1).
func Misalign(dx, dy float64) (exit, entry Map7) {
	entry = Identity()
	entry[0][6] = -dx
	entry[2][6] = -dy

	exit = Identity()
	exit[0][6] = dx
	exit[2][6] = dy
	return
}
