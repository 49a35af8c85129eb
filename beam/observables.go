package beam

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/greglenerd/cheetah/physconst"
)

// Gamma returns the reference Lorentz factor γ = E/mc² for a reference
// energy E in eV. γ=0 (zero or negative energy) falls back to the defined
// edge case of spec.md §7 rather than a division error.
func Gamma(energyEV float64) float64 {
	if energyEV <= 0 {
		return 0
	}
	return energyEV / physconst.ElectronMassEV
}

// Beta returns β = sqrt(1 - 1/γ²) for a given γ. The γ=0 edge case falls
// back to β=1, per spec.md §7's "Numerical edge cases".
func Beta(gamma float64) float64 {
	if gamma <= 0 {
		return 1
	}
	igamma2 := 1 / (gamma * gamma)
	if igamma2 > 1 {
		igamma2 = 1
	}
	return math.Sqrt(1 - igamma2)
}

// ParticleGamma returns the per-particle Lorentz factor γᵢ = γ(1+δᵢβ).
func ParticleGamma(gamma, beta, delta float64) float64 {
	return gamma * (1 + delta*beta)
}

// ParticleMomentum returns the per-particle mechanical momentum
// pᵢ = γᵢ m βᵢ c, in eV/c-consistent units (mc² in eV, so the result is
// in eV/c when multiplied by c is folded into physconst.ElectronMassEV).
// βᵢ is recomputed from γᵢ via Beta so the γ=0 fallback applies uniformly.
func ParticleMomentum(gammaI float64) float64 {
	betaI := Beta(gammaI)
	return gammaI * physconst.ElectronMassEV * betaI
}

// MomentsOf computes the sample mean and (biased) covariance of a
// ParticleBeam's seven canonical columns, weighted by |charge| so a
// beam with non-uniform macro-particle charge still yields a physically
// meaningful centroid/second moment. Used by BPM to record the centroid
// of a particle beam.
func MomentsOf(b *ParticleBeam) (mu [Dim]float64, sigma [Dim][Dim]float64) {
	n := b.N()
	if n == 0 {
		chk.Panic("beam.MomentsOf: cannot compute moments of an empty particle cloud")
	}
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = math.Abs(b.Q[i])
	}
	cols := make([][]float64, Dim)
	for k := 0; k < Dim; k++ {
		cols[k] = mat.Col(nil, k, b.P)
		mu[k], _ = stat.MeanVariance(cols[k], weights)
	}
	var wsum float64
	for _, w := range weights {
		wsum += w
	}
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			var acc float64
			for p := 0; p < n; p++ {
				acc += weights[p] * (cols[i][p] - mu[i]) * (cols[j][p] - mu[j])
			}
			sigma[i][j] = acc / wsum
		}
	}
	return
}
