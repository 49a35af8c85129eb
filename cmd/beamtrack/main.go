// Command beamtrack loads a lattice JSON file and tracks a beam through
// it, reporting the outgoing moments. Modeled on the teacher's root
// main.go: flag-based CLI, chk.Panic on a missing argument, an
// io.PfWhite banner, and deferred recover+chk.CallerInfo error
// reporting — with MPI removed, since tracking here is single-threaded
// (spec.md §5).
package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/greglenerd/cheetah/beam"
	"github.com/greglenerd/cheetah/latticeio"
)

func main() {
	verbose := flag.Bool("verbose", false, "print the outgoing beam's full covariance")
	energy := flag.Float64("energy", 1e8, "incoming reference energy, eV")
	charge := flag.Float64("charge", 1e-9, "incoming total bunch charge, C")

	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	io.PfWhite("\nbeamtrack -- differentiable beamline tracker\n\n")

	flag.Parse()
	var latticePath string
	if len(flag.Args()) > 0 {
		latticePath = flag.Arg(0)
	} else {
		chk.Panic("Please provide a lattice JSON filename. Ex.: beamline.json")
	}

	data, err := io.ReadFile(latticePath)
	if err != nil {
		chk.Panic("cannot read lattice file %q: %v", latticePath, err)
	}

	seg, err := latticeio.Load(data)
	if err != nil {
		chk.Panic("cannot load lattice: %v", err)
	}

	in := beam.NewMomentBeam(*energy, *charge)
	in.Sigma[0][0], in.Sigma[1][1] = 1e-6, 1e-6
	in.Sigma[2][2], in.Sigma[3][3] = 1e-6, 1e-6
	in.Sigma[4][4], in.Sigma[5][5] = 1e-6, 1e-6

	out, err := seg.Track(in)
	if err != nil {
		chk.Panic("tracking failed: %v", err)
	}

	mb, ok := out.(*beam.MomentBeam)
	if !ok {
		chk.Panic("expected a moment beam out, got %T", out)
	}

	io.Pf("outgoing energy: %g eV\n", mb.Energy)
	io.Pf("outgoing mean:   %v\n", mb.Mu)
	if *verbose {
		io.Pf("outgoing covariance:\n")
		for i := 0; i < beam.Dim; i++ {
			io.Pf("  %v\n", mb.Sigma[i])
		}
	}
}
