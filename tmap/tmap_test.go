package tmap

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

func TestIdentityIsNeutral(t *testing.T) {
	chk.PrintTitle("tmap: identity is multiplicative neutral")
	I := Identity()
	M := Base(1.5, 0.3, 0.01, 0, 1e8)
	got := Mul(I, M)
	for i := 0; i < 7; i++ {
		chk.Vector(t, "row", 1e-14, got[i][:], M[i][:])
	}
}

func TestAugmentedRowIsPreserved(t *testing.T) {
	chk.PrintTitle("tmap: row/col 6 invariant")
	for _, M := range []Map7{
		Base(1.0, 0, 0, 0, 1e8),
		Base(0.15, 4.2, 0, 0, 1e8),
		Base(0.1, 0, 0.5, 0.2, 1e8),
	} {
		chk.Scalar(t, "M[6][6]", 1e-14, M[6][6], 1)
		for j := 0; j < 6; j++ {
			chk.Scalar(t, "M[6][j]", 1e-14, M[6][j], 0)
		}
	}
}

func TestDriftLimitAtZeroFocusing(t *testing.T) {
	chk.PrintTitle("tmap: drift limit at k=0")
	M := Base(2.0, 0, 0, 0, 1e8)
	chk.Scalar(t, "M[0][1]", 1e-12, M[0][1], 2.0)
	chk.Scalar(t, "M[2][3]", 1e-12, M[2][3], 2.0)
}

func TestRollConjugationRoundTrips(t *testing.T) {
	chk.PrintTitle("tmap: roll(-a)*roll(a) is identity")
	R := Mul(Roll(-0.37), Roll(0.37))
	I := Identity()
	for i := 0; i < 7; i++ {
		chk.Vector(t, "row", 1e-12, R[i][:], I[i][:])
	}
}

func TestApplyRowsMatchesPerRowMulVec(t *testing.T) {
	chk.PrintTitle("tmap: ApplyRows (mat.Dense.Mul) matches a per-row MulVec reference")
	M := Base(1.2, 0.4, -0.1, 0.05, 2e8)
	rows := [][7]float64{
		{1e-4, 2e-5, -3e-4, 1e-5, 0, 1e-3, 1},
		{-2e-4, 0, 1e-4, -1e-5, 0, 0, 1},
	}
	data := make([]float64, len(rows)*7)
	for i, r := range rows {
		copy(data[i*7:i*7+7], r[:])
	}
	P := mat.NewDense(len(rows), 7, data)
	out := ApplyRows(M, P)
	for i, r := range rows {
		want := MulVec(M, r)
		var got [7]float64
		for k := 0; k < 7; k++ {
			got[k] = out.At(i, k)
		}
		chk.Vector(t, "row", 1e-10, got[:], want[:])
	}
}

func TestSandwichPropagatesCovariance(t *testing.T) {
	chk.PrintTitle("tmap: sandwich propagation of a diagonal covariance")
	var sigma Map7
	sigma[0][0] = 1e-6
	sigma[1][1] = 4e-8
	M := Base(1.0, 0, 0, 0, 1e8) // pure drift
	out := Sandwich(M, sigma)
	// sigma'_00 = sigma_00 + 2*L*sigma_01 + L^2*sigma_11 = sigma_00 since sigma_01=0
	want := sigma[0][0] + M[0][1]*M[0][1]*sigma[1][1]
	chk.Scalar(t, "sigma'_00", 1e-15, out[0][0], want)
}
