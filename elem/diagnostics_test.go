package elem

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/beam"
)

func TestMarkerIsAlwaysAnIdentityNoOp(t *testing.T) {
	chk.PrintTitle("Marker: identity map, passes any beam through unchanged (spec.md §4.2)")
	m := NewMarker("m1")
	in := beam.NewMomentBeam(1e8, 1e-9)
	in.Sigma[0][0] = 1e-6
	out, err := m.Track(in)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	mb := out.(*beam.MomentBeam)
	chk.Scalar(t, "sigma_x unchanged", 1e-15, mb.Sigma[0][0], in.Sigma[0][0])
}

func TestBPMRecordsCentroidOnlyWhenActive(t *testing.T) {
	chk.PrintTitle("BPM: records the incoming centroid only when active (spec.md §4.2, §5)")
	active := NewBPM("bpm1", true)
	in := beam.NewMomentBeam(1e8, 0)
	in.Mu[0] = 3e-4
	if _, err := active.Track(in); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	mu, has := active.LastReading()
	if !has {
		t.Fatal("expected an active BPM to have recorded a reading")
	}
	chk.Scalar(t, "recorded x", 1e-12, mu[0], 3e-4)

	inactive := NewBPM("bpm2", false)
	if _, err := inactive.Track(in); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	_, has = inactive.LastReading()
	if has {
		t.Fatal("expected an inactive BPM to never record a reading")
	}
}

func TestBPMRecordsParticleBeamCentroid(t *testing.T) {
	chk.PrintTitle("BPM: records the charge-weighted centroid of a particle beam")
	b := NewBPM("bpm1", true)
	in := beam.NewParticleBeam(2, 1e8)
	in.P.Set(0, 0, -1e-4)
	in.P.Set(1, 0, 3e-4)
	in.Q[0], in.Q[1] = 1e-12, 1e-12
	if _, err := b.Track(in); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	mu, has := b.LastReading()
	if !has {
		t.Fatal("expected a reading")
	}
	chk.Scalar(t, "recorded x", 1e-12, mu[0], 1e-4)
}

func TestScreenAbsorbsTheBeamWhenActive(t *testing.T) {
	chk.PrintTitle("Screen: an active screen records a histogram and absorbs the beam (spec.md §4.2, §9)")
	s := NewScreen("s1", 16, 16, 1e-5, 1e-5, true)
	in := beam.NewParticleBeam(4, 1e8)
	for i := 0; i < 4; i++ {
		in.Q[i] = 1e-12
	}
	out, err := s.Track(in)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if !out.IsEmpty() {
		t.Fatal("expected an active screen to absorb the beam")
	}
	reading := s.LastReading()
	if len(reading) != 16*16 {
		t.Fatalf("expected a 16x16 histogram, got %d entries", len(reading))
	}
}

func TestScreenBinningReducesEffectiveResolution(t *testing.T) {
	chk.PrintTitle("Screen: binning folds into the effective pixel grid (spec.md §4.2)")
	s := NewScreen("s1", 16, 8, 1e-5, 1e-5, true)
	s.Binning = 2
	in := beam.NewParticleBeam(4, 1e8)
	for i := 0; i < 4; i++ {
		in.Q[i] = 1e-12
	}
	if _, err := s.Track(in); err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	reading := s.LastReading()
	if len(reading) != (16/2)*(8/2) {
		t.Fatalf("expected an %dx%d histogram, got %d entries", 16/2, 8/2, len(reading))
	}
}

func TestScreenInactivePassesBeamThroughUnrecorded(t *testing.T) {
	chk.PrintTitle("Screen: an inactive screen is a no-op and records nothing")
	s := NewScreen("s1", 16, 16, 1e-5, 1e-5, false)
	in := beam.NewParticleBeam(2, 1e8)
	out, err := s.Track(in)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if out.IsEmpty() {
		t.Fatal("expected an inactive screen to pass the beam through")
	}
	if s.LastReading() != nil {
		t.Fatal("expected an inactive screen to record no reading")
	}
}
