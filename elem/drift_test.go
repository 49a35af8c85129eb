package elem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/beam"
)

func TestDriftDivergingBeamExpands(t *testing.T) {
	chk.PrintTitle("Drift: a diverging beam expands (spec.md scenario 1)")
	d := NewDrift("d1", 1.0)
	in := &beam.MomentBeam{Energy: 1e8}
	in.Sigma[0][0] = 1e-8
	in.Sigma[1][1] = (2e-7) * (2e-7)
	in.Sigma[2][2] = 1e-8
	in.Sigma[3][3] = (2e-7) * (2e-7)

	out, err := d.Track(in)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	mb := out.(*beam.MomentBeam)
	if mb.Sigma[0][0] <= in.Sigma[0][0] {
		t.Fatalf("expected sigma_x to increase, got %g <= %g", mb.Sigma[0][0], in.Sigma[0][0])
	}
	if mb.Sigma[2][2] <= in.Sigma[2][2] {
		t.Fatalf("expected sigma_y to increase, got %g <= %g", mb.Sigma[2][2], in.Sigma[2][2])
	}
}

func TestDriftDoesNotMutateIncoming(t *testing.T) {
	chk.PrintTitle("Drift: tracking does not mutate the incoming beam")
	d := NewDrift("d1", 1.0)
	in := &beam.MomentBeam{Energy: 1e8}
	in.Sigma[0][0] = 1e-8
	before := in.Clone()
	_, err := d.Track(in)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	chk.Scalar(t, "mu unchanged", 1e-15, in.Mu[0], before.Mu[0])
	chk.Scalar(t, "sigma unchanged", 1e-15, in.Sigma[0][0], before.Sigma[0][0])
}

func TestDriftSplitSumsToLength(t *testing.T) {
	chk.PrintTitle("Drift: split pieces sum to the original length")
	d := NewDrift("d1", 1.0)
	pieces := d.Split(0.3)
	var total float64
	for _, p := range pieces {
		total += p.Length()
	}
	chk.Scalar(t, "total length", 1e-12, total, 1.0)
}

func TestDriftParticleTracking(t *testing.T) {
	chk.PrintTitle("Drift: x advances by L*x' for a particle beam")
	d := NewDrift("d1", 1.0)
	in := beam.NewParticleBeam(5, 1e8)
	for i := 0; i < 5; i++ {
		in.P.Set(i, 1, 1e-6*float64(i))
	}
	direct, err := d.Track(in)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	db := direct.(*beam.ParticleBeam)
	for i := 0; i < 5; i++ {
		chk.Scalar(t, "x", 1e-15, db.P.At(i, 0), in.P.At(i, 1))
	}
}
