package elem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/tmap"
)

func TestDipoleZeroAngleBehavesAsDrift(t *testing.T) {
	chk.PrintTitle("Dipole: a zero-angle sector bend behaves as a drift")
	L := 0.5
	d := NewDipole("d1", L, 0)
	dr := NewDrift("dr1", L)
	energy := 1e8
	M, D := d.TransferMap(energy), dr.TransferMap(energy)
	for i := 0; i < 7; i++ {
		chk.Vector(t, "row", 1e-12, M[i][:], D[i][:])
	}
}

func TestDipoleSplitComposesToOriginal(t *testing.T) {
	chk.PrintTitle("Dipole: split pieces compose back to the original map for a plain sector bend (spec.md §8)")
	d := NewDipole("d1", 0.1, 0.1)
	pieces := d.Split(0.02)
	M := tmap.Identity()
	for _, p := range pieces {
		M = tmap.Mul(p.TransferMap(2.5e8), M)
	}
	want := d.TransferMap(2.5e8)
	for i := 0; i < 7; i++ {
		chk.Vector(t, "row", 1e-6, M[i][:], want[i][:])
	}
}

func TestDipoleZeroLengthIsAThinKick(t *testing.T) {
	chk.PrintTitle("Dipole: a zero-length dipole degenerates to a thin angle kick (spec.md §4.2)")
	d := NewDipole("d1", 0, 0.05)
	M := d.TransferMap(1e8)
	chk.Scalar(t, "thin kick angle", 1e-12, M[1][6], 0.05)
	want := tmap.Identity()
	want[1][6] = 0.05
	for i := 0; i < 7; i++ {
		chk.Vector(t, "row", 1e-12, M[i][:], want[i][:])
	}
}

func TestRBendAugmentsPoleFaces(t *testing.T) {
	chk.PrintTitle("RBend: pole-face angles are augmented by half the bend angle (spec.md §4.2)")
	angle := 0.2
	r := NewRBend("r1", 1.0, angle)
	chk.Scalar(t, "e1", 1e-12, r.E1.Get(), angle/2)
	chk.Scalar(t, "e2", 1e-12, r.E2.Get(), angle/2)
}
