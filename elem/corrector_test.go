package elem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/beam"
)

func TestHorizontalCorrectorKicksXPrime(t *testing.T) {
	chk.PrintTitle("Corrector: a horizontal corrector shifts the outgoing mean x' by its angle (spec.md §4.2)")
	c := NewHorizontalCorrector("c1", 0.2, 1e-3)
	in := beam.NewMomentBeam(1e8, 0)
	out, err := c.Track(in)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	mb := out.(*beam.MomentBeam)
	chk.Scalar(t, "mu x'", 1e-12, mb.Mu[1], 1e-3)
	chk.Scalar(t, "mu y'", 1e-12, mb.Mu[3], 0)
}

func TestVerticalCorrectorKicksYPrime(t *testing.T) {
	chk.PrintTitle("Corrector: a vertical corrector shifts the outgoing mean y' by its angle")
	c := NewVerticalCorrector("c1", 0.2, 2e-3)
	in := beam.NewMomentBeam(1e8, 0)
	out, err := c.Track(in)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	mb := out.(*beam.MomentBeam)
	chk.Scalar(t, "mu x'", 1e-12, mb.Mu[1], 0)
	chk.Scalar(t, "mu y'", 1e-12, mb.Mu[3], 2e-3)
}

func TestCorrectorSplitScalesAngleProportionally(t *testing.T) {
	chk.PrintTitle("Corrector: split divides the kick angle proportionally to length (spec.md §4.2)")
	c := NewHorizontalCorrector("c1", 1.0, 4e-3)
	pieces := c.Split(0.25)
	var total float64
	for _, p := range pieces {
		cp := p.(*Corrector)
		total += cp.Angle.Get()
	}
	chk.Scalar(t, "angle sum", 1e-9, total, 4e-3)
}
