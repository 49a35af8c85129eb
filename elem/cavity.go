package elem

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/param"
	"github.com/greglenerd/cheetah/physconst"
	"github.com/greglenerd/cheetah/tmap"
)

// Cavity is an RF accelerating cavity, including the nonlinear
// longitudinal second-order tracking terms (spec.md §4.2).
type Cavity struct {
	name      string
	L         float64
	Voltage   *param.Param // V
	Phase     *param.Param // degrees
	Frequency *param.Param // Hz
}

// NewCavity returns a Cavity of the given length, voltage, phase
// (degrees) and frequency.
func NewCavity(name string, length, voltage, phase, frequency float64) *Cavity {
	return &Cavity{
		name:      name,
		L:         length,
		Voltage:   param.New("voltage", voltage),
		Phase:     param.New("phase", phase),
		Frequency: param.New("frequency", frequency),
	}
}

func (c *Cavity) Kind() string    { return "Cavity" }
func (c *Cavity) Name() string    { return c.name }
func (c *Cavity) Length() float64 { return c.L }

// Skippable is false when the cavity is active (voltage != 0): an
// active cavity's tracking step is a nonlinear, state-dependent update
// to the longitudinal coordinate, not just a linear map (spec.md §4.2).
func (c *Cavity) Skippable() bool { return c.Voltage.Get() == 0 }

func (c *Cavity) phaseRad() float64 { return c.Phase.Get() * math.Pi / 180 }

// TransferMap returns the Rosenzweig/Serafini R-matrix when the voltage
// is positive, and the base drift map otherwise (spec.md §4.2).
func (c *Cavity) TransferMap(energyEV float64) tmap.Map7 {
	if c.Voltage.Get() > 0 {
		return c.cavityRMatrix(energyEV)
	}
	return tmap.Base(c.L, 0, 0, 0, energyEV)
}

// cavityRMatrix implements the Rosenzweig/Serafini pi-standing-wave
// model (spec.md §4.2).
func (c *Cavity) cavityRMatrix(energyEV float64) tmap.Map7 {
	phi := c.phaseRad()
	deltaE := c.Voltage.Get() * math.Cos(phi)
	const eta = 1.0
	mc2 := physconst.ElectronMassEV

	Ei := energyEV / mc2
	if Ei <= 0 {
		chk.Panic("Cavity %q: initial energy must be larger than 0", c.name)
	}
	Ef := (energyEV + deltaE) / mc2
	Ep := (Ef - Ei) / c.L

	alpha := math.Sqrt(eta/8) / math.Cos(phi) * math.Log(Ef/Ei)
	cosA, sinA := math.Cos(alpha), math.Sin(alpha)

	r11 := cosA - math.Sqrt(2/eta)*math.Cos(phi)*sinA
	r12 := math.Sqrt(8/eta) * Ei / Ep * math.Cos(phi) * sinA
	r21 := -Ep / Ef * (math.Cos(phi)/math.Sqrt(2*eta) + math.Sqrt(eta/8)/math.Cos(phi)) * sinA
	r22 := Ei / Ef * (cosA + math.Sqrt(2/eta)*math.Cos(phi)*sinA)

	var r56, r55Cor float64
	beta0, beta1 := 1.0, 1.0
	k := 2 * math.Pi * c.Frequency.Get() / physconst.C
	if c.Voltage.Get() != 0 && energyEV != 0 {
		beta0 = math.Sqrt(1 - 1/(Ei*Ei))
		beta1 = math.Sqrt(1 - 1/(Ef*Ef))
		r56 = -c.L / (Ef * Ef * Ei * beta1) * (Ef + Ei) / (beta1 + beta0)
		g0, g1 := Ei, Ef
		r55Cor = k * c.L * beta0 * c.Voltage.Get() / mc2 * math.Sin(phi) *
			(g0*g1*(beta0*beta1-1) + 1) / (beta1 * g1 * (g0-g1)*(g0-g1))
	}
	r66 := Ei / Ef * beta0 / beta1
	r65 := k * math.Sin(phi) * c.Voltage.Get() / (Ef * beta1 * mc2)

	R := tmap.Identity()
	R[0][0], R[0][1] = r11, r12
	R[1][0], R[1][1] = r21, r22
	R[2][2], R[2][3] = r11, r12
	R[3][2], R[3][3] = r21, r22
	R[4][4] = 1 + r55Cor
	R[4][5] = r56
	R[5][4] = r65
	R[5][5] = r66
	return R
}

// Track applies the linear map and then overwrites the longitudinal
// coordinate with the nonlinear update of spec.md §4.2: δ rescales by
// the energy/beta ratio and picks up the RF waveform term; s acquires
// the second-order T566/T556/T555 correction.
func (c *Cavity) Track(in beam.Beam) (beam.Beam, error) {
	if in.IsEmpty() {
		return beam.Empty, nil
	}

	energyIn := in.RefEnergy()
	gamma0 := 0.0
	beta0 := 1.0
	igamma2 := 0.0
	if energyIn != 0 {
		gamma0 = energyIn / physconst.ElectronMassEV
		igamma2 = 1 / (gamma0 * gamma0)
		beta0 = math.Sqrt(1 - igamma2)
	}
	phi := c.phaseRad()
	deltaE := c.Voltage.Get() * math.Cos(phi)
	outgoingEnergy := energyIn + deltaE

	T566 := 1.5 * c.L * igamma2 / (beta0 * beta0 * beta0)
	var T556, T555 float64

	var k, g1, beta1 float64
	active := outgoingEnergy > 0
	if active {
		k = 2 * math.Pi * c.Frequency.Get() / physconst.C
		g1 = outgoingEnergy / physconst.ElectronMassEV
		beta1 = math.Sqrt(1 - 1/(g1*g1))

		if deltaE > 0 {
			dgamma := c.Voltage.Get() / physconst.ElectronMassEV
			g0 := gamma0
			T566 = c.L * (beta0*beta0*beta0*g0*g0*g0 - beta1*beta1*beta1*g1*g1*g1) /
				(2 * beta0 * beta1 * beta1 * beta1 * g0 * (g0 - g1) * g1 * g1 * g1)
			T556 = beta0 * k * c.L * dgamma * g0 * (beta1*beta1*beta1*g1*g1*g1+beta0*(g0-g1*g1*g1)) *
				math.Sin(phi) / (beta1 * beta1 * beta1 * g1 * g1 * g1 * (g0-g1)*(g0-g1))
			T555 = beta0 * beta0 * k * k * c.L * dgamma / 2.0 * (
				dgamma*(2*g0*g1*g1*g1*(beta0*beta1*beta1*beta1-1)+g0*g0+3*g1*g1-2)/
					(beta1*beta1*beta1*g1*g1*g1*(g0-g1)*(g0-g1)*(g0-g1))*math.Sin(phi)*math.Sin(phi) -
				(g1*g0*(beta1*beta0-1)+1)/(beta1*g1*(g0-g1)*(g0-g1))*math.Cos(phi))
		}
	}

	switch b := in.(type) {
	case *beam.MomentBeam:
		M := c.TransferMap(energyIn)
		mu := tmap.MulVec(M, b.Mu)
		sigma := tmap.Sandwich(M, b.Sigma)
		if active {
			mu[5] = b.Mu[5]*energyIn*beta0/(outgoingEnergy*beta1) +
				c.Voltage.Get()*beta0/(outgoingEnergy*beta1)*(math.Cos(-b.Mu[4]*beta0*k+phi)-math.Cos(phi))
		}
		mu[4] = b.Mu[4] + T566*mu[5]*mu[5] + T556*mu[4]*mu[5] + T555*mu[4]*mu[4]
		// The source's second-moment update here reuses the first-moment
		// formula with squared Σ entries, conflating σ₄₄ and σ₄₅ into the
		// same expression (spec.md §9). That is not a consistent second-
		// moment propagation, so σ₄₄/σ₄₅/σ₅₅ are left at the values the
		// R-sandwich already produced above.
		return &beam.MomentBeam{Mu: mu, Sigma: sigma, Energy: outgoingEnergy, Charge: b.Charge}, nil

	case *beam.ParticleBeam:
		M := c.TransferMap(energyIn)
		out := trackParticlesLinear(M, b)
		n := b.N()
		for i := 0; i < n; i++ {
			s5 := b.P.At(i, 5)
			s4 := b.P.At(i, 4)
			newS5 := s5
			if active {
				newS5 = s5*energyIn*beta0/(outgoingEnergy*beta1) +
					c.Voltage.Get()*beta0/(outgoingEnergy*beta1)*(math.Cos(-s4*beta0*k+phi)-math.Cos(phi))
			}
			newS4 := s4 + T566*s5*s5 + T556*s4*s5 + T555*s4*s4
			out.P.Set(i, 5, newS5)
			out.P.Set(i, 4, newS4)
		}
		out.Energy = outgoingEnergy
		return out, nil

	default:
		return nil, errInvalidBeamType(c, in)
	}
}
