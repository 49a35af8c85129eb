package elem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/tmap"
)

func TestQuadrupoleFocusesATransverseOffset(t *testing.T) {
	chk.PrintTitle("Quadrupole: a horizontally-focusing quad bends x' toward the axis")
	q := NewQuadrupole("q1", 0.15, 4.2)
	M := q.TransferMap(1e8)
	var row [7]float64
	row[0] = 1e-3
	row[6] = 1
	out := tmap.MulVec(M, row)
	if out[1] >= 0 {
		t.Fatalf("expected a focusing kick (x' < 0) for k1>0, x>0, got x'=%g", out[1])
	}
}

func TestQuadrupoleSplitComposesToOriginal(t *testing.T) {
	chk.PrintTitle("Quadrupole: split pieces compose back to the original map (spec.md §8)")
	q := NewQuadrupole("q1", 0.3, 4.2)
	pieces := q.Split(0.1)
	M := tmap.Identity()
	for _, p := range pieces {
		M = tmap.Mul(p.TransferMap(1e8), M)
	}
	want := q.TransferMap(1e8)
	for i := 0; i < 7; i++ {
		chk.Vector(t, "row", 1e-9, M[i][:], want[i][:])
	}
}

func TestQuadrupoleMomentTrackMatchesSandwich(t *testing.T) {
	chk.PrintTitle("Quadrupole: moment-beam Track matches the R*Sigma*R^T sandwich of its transfer map")
	q := NewQuadrupole("q1", 0.15, 4.2)
	var sigma [7][7]float64
	sigma[0][0] = 1e-6
	momentIn := &beam.MomentBeam{Energy: 1e8, Sigma: sigma}

	M := q.TransferMap(1e8)
	want := tmap.Sandwich(M, momentIn.Sigma)

	out, err := q.Track(momentIn)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	mb := out.(*beam.MomentBeam)
	for i := 0; i < 7; i++ {
		chk.Vector(t, "sigma row", 1e-12, mb.Sigma[i][:], want[i][:])
	}
}
