package elem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/tmap"
)

func TestUndulatorLongitudinalTermOmitsBetaFactor(t *testing.T) {
	chk.PrintTitle("Undulator: R56 = L/gamma^2, with no 1/beta^2 factor (spec.md §4.2)")
	L := 1.5
	energy := 2.5e8
	u := NewUndulator("u1", L)
	M := u.TransferMap(energy)

	gamma := energy / 510998.95
	want := L / (gamma * gamma)
	chk.Scalar(t, "R56", 1e-15, M[4][5], want)
}

func TestUndulatorSplitSumsToLength(t *testing.T) {
	chk.PrintTitle("Undulator: split pieces sum to the original length")
	u := NewUndulator("u1", 2.0)
	pieces := u.Split(0.3)
	var total float64
	for _, p := range pieces {
		total += p.Length()
	}
	chk.Scalar(t, "total length", 1e-12, total, 2.0)
}

func TestUndulatorSplitComposesToOriginal(t *testing.T) {
	chk.PrintTitle("Undulator: split pieces compose back to the original map (spec.md §8)")
	u := NewUndulator("u1", 1.0)
	pieces := u.Split(0.2)
	M := tmap.Identity()
	for _, p := range pieces {
		M = tmap.Mul(p.TransferMap(1e8), M)
	}
	want := u.TransferMap(1e8)
	for i := 0; i < 7; i++ {
		chk.Vector(t, "row", 1e-9, M[i][:], want[i][:])
	}
}
