package spacecharge

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/greglenerd/cheetah/physconst"
)

// fft3 performs an in-place 3D complex FFT (or its inverse) on data laid
// out x-fastest, y-next, z-slowest, by applying a 1D transform along
// each axis in turn — the teacher has no FFT of its own, so this is
// grounded on gonum.org/v1/gonum/dsp/fourier's 1D fourier.CmplxFFT,
// composed the way a separable 3D transform is built from 1D transforms
// in every textbook treatment (and the way the rest of the retrieval
// pack's gonum-based repo composes gonum primitives); see DESIGN.md.
func fft3(data []complex128, nx, ny, nz int, inverse bool) {
	fftAxis(data, nx, ny, nz, 0, inverse)
	fftAxis(data, nx, ny, nz, 1, inverse)
	fftAxis(data, nx, ny, nz, 2, inverse)
}

// fftAxis transforms every 1D line along the given axis (0=x,1=y,2=z).
func fftAxis(data []complex128, nx, ny, nz, axis int, inverse bool) {
	var n int
	switch axis {
	case 0:
		n = nx
	case 1:
		n = ny
	default:
		n = nz
	}
	t := fourier.NewCmplxFFT(n)
	line := make([]complex128, n)
	idx := func(i, j, k int) int { return (k*ny+j)*nx + i }

	switch axis {
	case 0:
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				for i := 0; i < n; i++ {
					line[i] = data[idx(i, j, k)]
				}
				transformLine(t, line, inverse)
				for i := 0; i < n; i++ {
					data[idx(i, j, k)] = line[i]
				}
			}
		}
	case 1:
		for k := 0; k < nz; k++ {
			for i := 0; i < nx; i++ {
				for j := 0; j < n; j++ {
					line[j] = data[idx(i, j, k)]
				}
				transformLine(t, line, inverse)
				for j := 0; j < n; j++ {
					data[idx(i, j, k)] = line[j]
				}
			}
		}
	default:
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				for k := 0; k < n; k++ {
					line[k] = data[idx(i, j, k)]
				}
				transformLine(t, line, inverse)
				for k := 0; k < n; k++ {
					data[idx(i, j, k)] = line[k]
				}
			}
		}
	}
}

func transformLine(t *fourier.CmplxFFT, line []complex128, inverse bool) {
	if inverse {
		t.Sequence(line, line)
	} else {
		t.Coefficients(line, line)
	}
}

// SolvePotential performs the FFT-accelerated Poisson solve of spec.md
// §4.4 steps 4-6: zero-pads ρ into the lower octant of a doubled grid,
// forward-transforms both ρ and the IGF kernel, multiplies element-wise,
// inverse-transforms, scales by 1/(4πε₀), and crops back to the base
// octant.
func SolvePotential(g Grid, rho []float64) []float64 {
	nx, ny, ns := g.Nx, g.Ny, g.Ns
	nx2, ny2, ns2 := 2*nx, 2*ny, 2*ns

	rhoPadded := make([]complex128, nx2*ny2*ns2)
	for k := 0; k < ns; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				rhoPadded[(k*ny2+j)*nx2+i] = complex(rho[(k*ny+j)*nx+i], 0)
			}
		}
	}

	green := BuildGreenKernel(g)
	greenC := make([]complex128, len(green))
	for i, v := range green {
		greenC[i] = complex(v, 0)
	}

	fft3(rhoPadded, nx2, ny2, ns2, false)
	fft3(greenC, nx2, ny2, ns2, false)

	prod := make([]complex128, len(rhoPadded))
	for i := range prod {
		prod[i] = rhoPadded[i] * greenC[i]
	}

	fft3(prod, nx2, ny2, ns2, true)

	total := float64(nx2 * ny2 * ns2)
	scale := 1 / (4 * math.Pi * physconst.Eps0) / total

	phi := make([]float64, nx*ny*ns)
	for k := 0; k < ns; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				phi[(k*ny+j)*nx+i] = real(prod[(k*ny2+j)*nx2+i]) * scale
			}
		}
	}
	return phi
}

// Field computes E = -∇φ by central differences with replicate-padding
// at the grid edges, then scales by 1/γ² (the lab-frame E+vB combination
// for a relativistic bunch), per spec.md §4.4 step 7.
func Field(g Grid, phi []float64) (ex, ey, es []float64) {
	nx, ny, ns := g.Nx, g.Ny, g.Ns
	ex = make([]float64, nx*ny*ns)
	ey = make([]float64, nx*ny*ns)
	es = make([]float64, nx*ny*ns)
	idx := func(i, j, k int) int { return (k*ny+j)*nx + i }
	clamp := func(v, n int) int {
		if v < 0 {
			return 0
		}
		if v >= n {
			return n - 1
		}
		return v
	}
	igamma2 := 0.0
	if g.Gamma > 0 {
		igamma2 = 1 / (g.Gamma * g.Gamma)
	}
	for k := 0; k < ns; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				xp, xm := phi[idx(clamp(i+1, nx), j, k)], phi[idx(clamp(i-1, nx), j, k)]
				yp, ym := phi[idx(i, clamp(j+1, ny), k)], phi[idx(i, clamp(j-1, ny), k)]
				sp, sm := phi[idx(i, j, clamp(k+1, ns))], phi[idx(i, j, clamp(k-1, ns))]
				ex[idx(i, j, k)] = -(xp - xm) / (2 * g.Hx) * igamma2
				ey[idx(i, j, k)] = -(yp - ym) / (2 * g.Hy) * igamma2
				es[idx(i, j, k)] = -(sp - sm) / (2 * g.Hs) * igamma2
			}
		}
	}
	return
}
