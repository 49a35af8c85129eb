package elem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/beam"
)

func TestCavityAcceleration(t *testing.T) {
	chk.PrintTitle("Cavity: outgoing energy = incoming + V (spec.md scenario 3)")
	L, V, f, phi := 1.0377, 1.815975e7, 1.3e9, 0.0
	c := NewCavity("c1", L, V, phi, f)

	in := &beam.MomentBeam{Energy: 2.5e8}
	out, err := c.Track(in)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	mb := out.(*beam.MomentBeam)
	chk.Scalar(t, "outgoing energy", 1e-6, mb.Energy, in.Energy+V)
}

func TestCavitySkippableOnlyWhenInactive(t *testing.T) {
	chk.PrintTitle("Cavity: Skippable reflects voltage (spec.md §4.2)")
	off := NewCavity("c0", 1.0, 0, 0, 1e9)
	if !off.Skippable() {
		t.Fatal("a zero-voltage cavity must be skippable")
	}
	on := NewCavity("c1", 1.0, 1e6, 0, 1e9)
	if on.Skippable() {
		t.Fatal("an active cavity must not be skippable")
	}
}

func TestCavityOffBehavesAsDrift(t *testing.T) {
	chk.PrintTitle("Cavity: V=0 behaves as a drift")
	L := 2.0
	c := NewCavity("c0", L, 0, 0, 0)
	d := NewDrift("d0", L)
	energy := 1e8
	M := c.TransferMap(energy)
	D := d.TransferMap(energy)
	for i := 0; i < 7; i++ {
		chk.Vector(t, "row", 1e-12, M[i][:], D[i][:])
	}
}

func TestCavityOffCrestMomentTrackIsFinite(t *testing.T) {
	chk.PrintTitle("Cavity: off-crest (10 deg) moment-beam tracking gives a finite outgoing delta")
	c := NewCavity("c1", 1.0377, 1.815975e7, 10.0, 1.3e9)
	in := &beam.MomentBeam{Energy: 2.5e8}
	out, err := c.Track(in)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	mb := out.(*beam.MomentBeam)
	if math.IsNaN(mb.Mu[5]) {
		t.Fatal("outgoing delta must not be NaN")
	}
}
