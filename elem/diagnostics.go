package elem

import (
	"math"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/tmap"
)

// Marker is a zero-length, inert position marker (spec.md §4.2).
type Marker struct {
	name   string
	Active bool
}

// NewMarker returns a Marker.
func NewMarker(name string) *Marker { return &Marker{name: name} }

// IsActive reports whether this marker is active; markers for which it
// is false are dropped by segment.WithoutInactiveMarkers.
func (m *Marker) IsActive() bool { return m.Active }

func (m *Marker) Kind() string                    { return "Marker" }
func (m *Marker) Name() string                    { return m.name }
func (m *Marker) Length() float64                 { return 0 }
func (m *Marker) Skippable() bool                 { return true }
func (m *Marker) TransferMap(_ float64) tmap.Map7 { return tmap.Identity() }
func (m *Marker) Track(in beam.Beam) (beam.Beam, error) {
	return trackLinear(m, in)
}

// BPM is a beam position monitor: identity map, with a single write-only
// "last reading" slot recording the beam centroid when active
// (spec.md §4.2, §5).
type BPM struct {
	name      string
	Active    bool
	lastMu    [beam.Dim]float64
	lastHasMu bool
}

// NewBPM returns a BPM.
func NewBPM(name string, active bool) *BPM { return &BPM{name: name, Active: active} }

// IsActive reports whether this BPM records readings.
func (b *BPM) IsActive() bool { return b.Active }

func (b *BPM) Kind() string                    { return "BPM" }
func (b *BPM) Name() string                    { return b.name }
func (b *BPM) Length() float64                 { return 0 }
func (b *BPM) Skippable() bool                 { return true }
func (b *BPM) TransferMap(_ float64) tmap.Map7 { return tmap.Identity() }

// LastReading returns the most recently recorded centroid and whether a
// reading has been taken.
func (b *BPM) LastReading() ([beam.Dim]float64, bool) { return b.lastMu, b.lastHasMu }

func (b *BPM) Track(in beam.Beam) (beam.Beam, error) {
	if b.Active && !in.IsEmpty() {
		switch bm := in.(type) {
		case *beam.MomentBeam:
			b.lastMu = bm.Mu
			b.lastHasMu = true
		case *beam.ParticleBeam:
			mu, _ := beam.MomentsOf(bm)
			b.lastMu = mu
			b.lastHasMu = true
		}
	}
	return trackLinear(b, in)
}

// Screen is a transverse-profile diagnostic: identity map, but when
// active it absorbs the beam (returns empty) after recording a
// discretized transverse density (spec.md §4.2).
type Screen struct {
	name       string
	Active     bool
	Resolution [2]int
	PixelSize  [2]float64
	Binning    int
	MisalignX  float64
	MisalignY  float64

	lastReading []float64 // flattened Resolution[0]*Resolution[1] histogram
}

// NewScreen returns a Screen with the given pixel grid resolution and
// pixel size (meters).
func NewScreen(name string, resX, resY int, pixelSizeX, pixelSizeY float64, active bool) *Screen {
	return &Screen{
		name:       name,
		Active:     active,
		Resolution: [2]int{resX, resY},
		PixelSize:  [2]float64{pixelSizeX, pixelSizeY},
		Binning:    1,
	}
}

// IsActive reports whether this Screen absorbs and records the beam.
func (s *Screen) IsActive() bool { return s.Active }

func (s *Screen) Kind() string                    { return "Screen" }
func (s *Screen) Name() string                    { return s.name }
func (s *Screen) Length() float64                 { return 0 }
func (s *Screen) Skippable() bool                 { return true }
func (s *Screen) TransferMap(_ float64) tmap.Map7 { return tmap.Identity() }

// LastReading returns the most recently recorded pixel histogram.
func (s *Screen) LastReading() []float64 { return s.lastReading }

// Track, when the screen is active, records the transverse distribution
// (subtracting misalignment first) and absorbs the beam so downstream
// elements see the empty sentinel (spec.md §4.2, §9). An inactive screen
// records nothing and returns the incoming beam.
func (s *Screen) Track(in beam.Beam) (beam.Beam, error) {
	if !s.Active || in.IsEmpty() {
		return in, nil
	}
	binning := s.Binning
	if binning <= 0 {
		binning = 1
	}
	nx, ny := s.Resolution[0]/binning, s.Resolution[1]/binning
	if nx <= 0 || ny <= 0 {
		return beam.Empty, nil
	}
	pixelSize := [2]float64{s.PixelSize[0] * float64(binning), s.PixelSize[1] * float64(binning)}
	hist := make([]float64, nx*ny)
	switch bm := in.(type) {
	case *beam.MomentBeam:
		cx := bm.Mu[0] - s.MisalignX
		cy := bm.Mu[2] - s.MisalignY
		sx := screenSigma(bm.Sigma[0][0])
		sy := screenSigma(bm.Sigma[2][2])
		depositGaussian(hist, nx, ny, pixelSize, cx, cy, sx, sy)
	case *beam.ParticleBeam:
		n := bm.N()
		for i := 0; i < n; i++ {
			x := bm.P.At(i, 0) - s.MisalignX
			y := bm.P.At(i, 2) - s.MisalignY
			depositPixel(hist, nx, ny, pixelSize, x, y)
		}
	}
	s.lastReading = hist
	return beam.Empty, nil
}

func screenSigma(variance float64) float64 {
	if variance <= 0 {
		return 0
	}
	return variance
}

// depositPixel histograms a single point into the pixel grid centered on
// the screen's optical axis.
func depositPixel(hist []float64, nx, ny int, pixelSize [2]float64, x, y float64) {
	ix := int(x/pixelSize[0]) + nx/2
	iy := int(y/pixelSize[1]) + ny/2
	if ix < 0 || ix >= nx || iy < 0 || iy >= ny {
		return
	}
	hist[iy*nx+ix]++
}

// depositGaussian rasterizes a 2D Gaussian density (given as a variance,
// not standard deviation — callers pass Sigma[i][i] directly) onto the
// pixel grid.
func depositGaussian(hist []float64, nx, ny int, pixelSize [2]float64, cx, cy, varX, varY float64) {
	for iy := 0; iy < ny; iy++ {
		y := float64(iy-ny/2) * pixelSize[1]
		for ix := 0; ix < nx; ix++ {
			x := float64(ix-nx/2) * pixelSize[0]
			hist[iy*nx+ix] = gaussian2D(x-cx, y-cy, varX, varY)
		}
	}
}

func gaussian2D(dx, dy, varX, varY float64) float64 {
	if varX <= 0 || varY <= 0 {
		return 0
	}
	return math.Exp(-(0.5*dx*dx/varX+0.5*dy*dy/varY)) / (2 * math.Pi * math.Sqrt(varX*varY))
}
