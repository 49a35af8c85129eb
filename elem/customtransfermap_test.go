package elem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/tmap"
)

func TestCustomTransferMapReturnsStoredMapUnconditionally(t *testing.T) {
	chk.PrintTitle("CustomTransferMap: TransferMap ignores the reference energy argument (spec.md §4.2)")
	M := tmap.Identity()
	M[0][1] = 2.5
	c := NewCustomTransferMap("merged#0", M, 1.0)
	chk.Vector(t, "row at 1e8", 1e-15, c.TransferMap(1e8)[0][:], M[0][:])
	chk.Vector(t, "row at 1e9", 1e-15, c.TransferMap(1e9)[0][:], M[0][:])
}

func TestCustomTransferMapTracksLikeItsStoredMap(t *testing.T) {
	chk.PrintTitle("CustomTransferMap: Track applies the stored map to moment beams")
	M := tmap.Identity()
	M[0][1] = 2.0
	c := NewCustomTransferMap("merged#0", M, 1.0)
	in := beam.NewMomentBeam(1e8, 0)
	in.Sigma[1][1] = 1e-8
	out, err := c.Track(in)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	mb := out.(*beam.MomentBeam)
	chk.Scalar(t, "sigma_x", 1e-18, mb.Sigma[0][0], 4*1e-8)
}

func TestCustomTransferMapIsAlwaysSkippable(t *testing.T) {
	chk.PrintTitle("CustomTransferMap: always skippable, since it is itself a merge product (spec.md §4.3)")
	c := NewCustomTransferMap("merged#0", tmap.Identity(), 1.0)
	if !c.Skippable() {
		t.Fatal("expected a CustomTransferMap to be skippable")
	}
}
