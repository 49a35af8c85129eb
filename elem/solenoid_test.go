package elem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/tmap"
)

func TestSolenoidZeroStrengthBehavesAsDrift(t *testing.T) {
	chk.PrintTitle("Solenoid: k=0 behaves as a drift")
	L := 0.4
	s := NewSolenoid("s1", L, 0)
	d := NewDrift("d1", L)
	energy := 1e8
	M, D := s.TransferMap(energy), d.TransferMap(energy)
	for i := 0; i < 7; i++ {
		chk.Vector(t, "row", 1e-12, M[i][:], D[i][:])
	}
}

func TestSolenoidIsSymplecticInTransversePlane(t *testing.T) {
	chk.PrintTitle("Solenoid: the coupled transverse 4x4 block is symplectic (det=1)")
	s := NewSolenoid("s1", 0.3, 2.5)
	M := s.TransferMap(1e8)
	var block [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			block[i][j] = M[i][j]
		}
	}
	det := det4(block)
	chk.Scalar(t, "det", 1e-9, det, 1)
}

func det4(m [4][4]float64) float64 {
	// Laplace expansion along the first row; small enough to write out.
	sub := func(skipCol int) [3][3]float64 {
		var s [3][3]float64
		for i := 1; i < 4; i++ {
			c := 0
			for j := 0; j < 4; j++ {
				if j == skipCol {
					continue
				}
				s[i-1][c] = m[i][j]
				c++
			}
		}
		return s
	}
	det3 := func(s [3][3]float64) float64 {
		return s[0][0]*(s[1][1]*s[2][2]-s[1][2]*s[2][1]) -
			s[0][1]*(s[1][0]*s[2][2]-s[1][2]*s[2][0]) +
			s[0][2]*(s[1][0]*s[2][1]-s[1][1]*s[2][0])
	}
	var det float64
	sign := 1.0
	for j := 0; j < 4; j++ {
		det += sign * m[0][j] * det3(sub(j))
		sign = -sign
	}
	return det
}

func TestSolenoidSplitComposesToOriginal(t *testing.T) {
	chk.PrintTitle("Solenoid: split pieces compose back to the original map (spec.md §8)")
	s := NewSolenoid("s1", 0.3, 2.5)
	pieces := s.Split(0.05)
	M := tmap.Identity()
	for _, p := range pieces {
		M = tmap.Mul(p.TransferMap(1e8), M)
	}
	want := s.TransferMap(1e8)
	for i := 0; i < 7; i++ {
		chk.Vector(t, "row", 1e-9, M[i][:], want[i][:])
	}
}
